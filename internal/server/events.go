package server

import (
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
)

// subscriberBuffer is how many messages a slow subscriber may lag behind
// before it starts missing events
const subscriberBuffer = 64

// hub fans encoded live events out to every open feed
type hub struct {
	mu   sync.Mutex
	subs map[chan []byte]struct{}
}

func newHub() *hub {
	return &hub{subs: map[chan []byte]struct{}{}}
}

func (h *hub) subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch, func() {
		h.mu.Lock()
		delete(h.subs, ch)
		h.mu.Unlock()
	}
}

func (h *hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			// full: drop rather than stall the publisher
		}
	}
}

// Publish sends ev to every subscriber of the event feed
func (s *Server) Publish(ev live.Event) error {
	msg, err := live.Encode(ev)
	if err != nil {
		return err
	}
	s.events.broadcast(append(msg, '\n'))
	return nil
}

func (s *Server) postEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "event too large")
		return
	}
	ev, err := live.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Publish(ev); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	msgs, unsubscribe := s.events.subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-msgs:
			if _, err := w.Write(msg); err != nil {
				log.Printf("Event feed closed: %v", err)
				return
			}
			flusher.Flush()
		}
	}
}
