// Package notify carries user-facing feedback from the engine to whatever
// surface presents it.
package notify

import (
	"log"
	"strings"
	"sync"
)

// Severity ranks a notification
type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// Notifier presents a message to the user
type Notifier interface {
	Notify(message string, severity Severity)
}

// Log writes notifications to the standard logger
type Log struct{}

func (Log) Notify(message string, severity Severity) {
	log.Printf("%s: %s", strings.ToUpper(severity.String()), message)
}

// Multi fans a notification out to several notifiers in order
type Multi []Notifier

func (m Multi) Notify(message string, severity Severity) {
	for _, n := range m {
		n.Notify(message, severity)
	}
}

// Note is one recorded notification
type Note struct {
	Message  string
	Severity Severity
}

// Recorder keeps every notification it receives
type Recorder struct {
	mu    sync.Mutex
	notes []Note
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, Note{Message: message, Severity: severity})
}

// Notes returns a copy of the recorded notifications
func (r *Recorder) Notes() []Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Note(nil), r.notes...)
}

// Count returns how many notifications of a severity were recorded
func (r *Recorder) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, note := range r.notes {
		if note.Severity == severity {
			n++
		}
	}
	return n
}

// Reset drops every recorded notification
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
