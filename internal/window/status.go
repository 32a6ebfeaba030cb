package window

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/j0KZ/K2-controller-design-sub000/internal/notify"
)

// Selection tracks the control shown in the details panel. It is written
// by the engine from background goroutines.
type Selection struct {
	mu       sync.Mutex
	current  mapping.Control
	onChange func(c mapping.Control, selected bool)
}

// NewSelection creates an empty selection
func NewSelection() *Selection {
	return &Selection{}
}

// SetOnChange registers the callback run after every change
func (s *Selection) SetOnChange(fn func(c mapping.Control, selected bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Current returns the selected control ID, empty when none
func (s *Selection) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.ID
}

// Control returns the selected control
func (s *Selection) Control() (mapping.Control, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current.ID != ""
}

func (s *Selection) Select(c mapping.Control) {
	s.set(c)
}

func (s *Selection) Clear() {
	s.set(mapping.Control{})
}

func (s *Selection) set(c mapping.Control) {
	s.mu.Lock()
	s.current = c
	fn := s.onChange
	s.mu.Unlock()
	if fn != nil {
		fn(c, c.ID != "")
	}
}

// StatusBar shows the latest notification at the bottom of the window
type StatusBar struct {
	label *widget.Label
}

// NewStatusBar creates a status bar showing "Ready"
func NewStatusBar() *StatusBar {
	label := widget.NewLabel("Ready")
	label.Truncation = fyne.TextTruncateEllipsis
	return &StatusBar{label: label}
}

// Notify implements notify.Notifier. It is safe to call from any goroutine.
func (s *StatusBar) Notify(message string, severity notify.Severity) {
	fyne.Do(func() {
		s.label.Importance = importance(severity)
		s.label.SetText(message)
	})
}

// CanvasObject returns the widget to place in the window
func (s *StatusBar) CanvasObject() fyne.CanvasObject {
	return s.label
}

func importance(severity notify.Severity) widget.Importance {
	switch severity {
	case notify.Success:
		return widget.SuccessImportance
	case notify.Warning:
		return widget.WarningImportance
	case notify.Error:
		return widget.DangerImportance
	default:
		return widget.MediumImportance
	}
}
