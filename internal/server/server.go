// Package server exposes the configuration document over a small REST API.
// It is the remote copy the desktop app persists to.
package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/j0KZ/K2-controller-design-sub000/internal/store"
)

// maxBody caps the size of an uploaded document
const maxBody = 1 << 20

// ParamValidator checks the action-specific parameters of an entry
type ParamValidator interface {
	Validate(t actions.ActionType, params map[string]json.RawMessage) error
}

// Server serves the document held by a backing store and relays live
// events between clients
type Server struct {
	store  store.Store
	params ParamValidator
	events *hub
}

// New creates a server over st
func New(st store.Store) *Server {
	return &Server{
		store:  st,
		params: actions.NewExecutor(nil),
		events: newHub(),
	}
}

// Router returns the HTTP routes of the server
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/config", s.getConfig).Methods(http.MethodGet)
	api.HandleFunc("/config", s.putConfig).Methods(http.MethodPut)
	api.HandleFunc("/actions", s.listActions).Methods(http.MethodGet)
	api.HandleFunc("/events", s.streamEvents).Methods(http.MethodGet)
	api.HandleFunc("/events", s.postEvent).Methods(http.MethodPost)
	return r
}

func (s *Server) getConfig(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Load(r.Context())
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load config")
		return
	}
	data, err := config.Encode(doc)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) putConfig(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "config too large")
		return
	}
	doc, err := config.Decode(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid config: %v", err))
		return
	}
	if err := Validate(doc, s.params); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), doc); err != nil {
		log.Printf("Failed to save config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save config")
		return
	}
	log.Printf("Saved profile %q (%d bindings)", doc.Profile, doc.Mappings.Len())
	if err := s.Publish(live.Profile{Name: doc.Profile}); err != nil {
		log.Printf("Failed to publish profile: %v", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, actions.Catalog())
}

// Validate rejects documents with unbound or out-of-range entries, and
// entries whose parameters pv refuses. An entry without parameters is an
// unconfigured binding and passes.
func Validate(doc *config.Document, pv ParamValidator) error {
	for _, p := range mapping.Partitions {
		for key, e := range doc.Mappings.Entries(p) {
			if key < 0 || key > 127 {
				return fmt.Errorf("%s: trigger %d out of range", p, key)
			}
			if e.Action == "" {
				return fmt.Errorf("%s[%d]: missing action", p, key)
			}
			if len(e.Params) == 0 || pv == nil {
				continue
			}
			if err := pv.Validate(e.Action, e.Params); err != nil {
				return fmt.Errorf("%s[%d]: %w", p, key, err)
			}
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}
