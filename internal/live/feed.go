package live

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
)

// FeedPath is where the config server publishes live events
const FeedPath = "/api/events"

// Feed is a client of a config server's event feed. The feed is a stream of
// newline-delimited JSON messages in the format of Encode.
type Feed struct {
	url    string
	client *http.Client
}

// NewFeed creates a feed client for the server at baseURL
func NewFeed(baseURL string) *Feed {
	return &Feed{
		url: strings.TrimRight(baseURL, "/") + FeedPath,
		// No client timeout: the stream stays open until ctx ends
		client: &http.Client{},
	}
}

// Publish posts one event to the feed
func (f *Feed) Publish(ctx context.Context, ev Event) error {
	data, err := Encode(ev)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("publish event: server replied %d", resp.StatusCode)
	}
	return nil
}

// Subscribe reads the feed and hands every event to fn until ctx ends or
// the server closes the stream. Messages of unknown type are skipped.
func (f *Feed) Subscribe(ctx context.Context, fn func(Event)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("subscribe: server replied %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		ev, err := Decode(line)
		if errors.Is(err, ErrUnknownType) {
			log.Printf("Skipping live event: %v", err)
			continue
		}
		if err != nil {
			return err
		}
		fn(ev)
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("read feed: %w", err)
	}
	return nil
}
