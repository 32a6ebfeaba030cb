package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
)

// RemoteError is a non-2xx reply from the config server. Detail is the
// human-readable reason the server gave.
type RemoteError struct {
	Status int
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server replied %d %s", e.Status, http.StatusText(e.Status))
	}
	return e.Detail
}

// HTTP talks to the config server's /api/config resource
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates a REST store rooted at baseURL. A zero timeout leaves
// requests bounded only by their context.
func NewHTTP(baseURL string, timeout time.Duration) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTP) Load(ctx context.Context) (*config.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/api/config", nil)
	if err != nil {
		return nil, err
	}
	body, err := h.do(req)
	if err != nil {
		return nil, err
	}
	doc, err := config.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return doc, nil
}

func (h *HTTP) Save(ctx context.Context, doc *config.Document) error {
	data, err := config.Encode(doc)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, h.baseURL+"/api/config", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = h.do(req)
	return err
}

func (h *HTTP) do(req *http.Request) ([]byte, error) {
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{Status: resp.StatusCode, Detail: errorDetail(body)}
	}
	return body, nil
}

// errorDetail extracts {"error": "..."} from a reply, falling back to the
// raw body text
func errorDetail(body []byte) string {
	var reply struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err == nil && reply.Error != "" {
		return reply.Error
	}
	return strings.TrimSpace(string(body))
}

// IsRemote reports whether err is a reply from the server rather than a
// transport failure
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}
