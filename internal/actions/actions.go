package actions

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ActionType identifies what a binding does when its control fires
type ActionType string

const (
	// CC-only: need a graduated value
	ActionTypeVolume      ActionType = "volume"
	ActionTypeAppVolume   ActionType = "app_volume"
	ActionTypeScrollV     ActionType = "scroll_vertical"
	ActionTypeScrollH     ActionType = "scroll_horizontal"
	ActionTypeZoom        ActionType = "zoom"
	ActionTypeBrightness  ActionType = "brightness"
	ActionTypeMouseMoveX  ActionType = "mouse_move_x"
	ActionTypeMouseMoveY  ActionType = "mouse_move_y"
	ActionTypeTimelineJog ActionType = "timeline_jog"

	// Note-only: discrete triggers
	ActionTypeHotkey         ActionType = "hotkey"
	ActionTypeLaunchApp      ActionType = "launch_app"
	ActionTypeOpenURL        ActionType = "open_url"
	ActionTypeShellCommand   ActionType = "shell"
	ActionTypeMediaPlayPause ActionType = "media_play_pause"
	ActionTypeMediaNext      ActionType = "media_next"
	ActionTypeMediaPrevious  ActionType = "media_previous"
	ActionTypeMute           ActionType = "mute"
	ActionTypeTypeText       ActionType = "type_text"
	ActionTypeProfileSwitch  ActionType = "profile_switch"

	// Dual-mode
	ActionTypeMidi  ActionType = "midi_out"
	ActionTypeMacro ActionType = "macro"
)

// Class is the trigger shape an action type can be bound to
type Class int

const (
	ClassDual Class = iota
	ClassCCOnly
	ClassNoteOnly
)

func (c Class) String() string {
	switch c {
	case ClassCCOnly:
		return "cc-only"
	case ClassNoteOnly:
		return "note-only"
	default:
		return "dual"
	}
}

var ccOnly = map[ActionType]struct{}{
	ActionTypeVolume:      {},
	ActionTypeAppVolume:   {},
	ActionTypeScrollV:     {},
	ActionTypeScrollH:     {},
	ActionTypeZoom:        {},
	ActionTypeBrightness:  {},
	ActionTypeMouseMoveX:  {},
	ActionTypeMouseMoveY:  {},
	ActionTypeTimelineJog: {},
}

var noteOnly = map[ActionType]struct{}{
	ActionTypeHotkey:         {},
	ActionTypeLaunchApp:      {},
	ActionTypeOpenURL:        {},
	ActionTypeShellCommand:   {},
	ActionTypeMediaPlayPause: {},
	ActionTypeMediaNext:      {},
	ActionTypeMediaPrevious:  {},
	ActionTypeMute:           {},
	ActionTypeTypeText:       {},
	ActionTypeProfileSwitch:  {},
}

// dualMode lists the dual-mode types offered in the palette. Types missing
// from every table are still treated as dual-mode.
var dualMode = []ActionType{ActionTypeMidi, ActionTypeMacro}

// Classify returns the class of an action type. Unknown types are dual-mode.
func Classify(t ActionType) Class {
	if _, ok := ccOnly[t]; ok {
		return ClassCCOnly
	}
	if _, ok := noteOnly[t]; ok {
		return ClassNoteOnly
	}
	return ClassDual
}

// IsCCOnly reports whether t can only be bound to CC-shaped controls
func IsCCOnly(t ActionType) bool {
	return Classify(t) == ClassCCOnly
}

// IsNoteOnly reports whether t can only be bound to note-shaped controls
func IsNoteOnly(t ActionType) bool {
	return Classify(t) == ClassNoteOnly
}

// Allowed reports whether t may be bound to a control of the given shape.
func Allowed(t ActionType, ccShaped bool) bool {
	switch Classify(t) {
	case ClassCCOnly:
		return ccShaped
	case ClassNoteOnly:
		return !ccShaped
	default:
		return true
	}
}

// Humanize turns an action type into a display name ("media_next" -> "Media Next")
func Humanize(t ActionType) string {
	words := strings.FieldsFunc(string(t), func(r rune) bool {
		return r == '_' || r == '-'
	})
	// Casers carry state, so each call gets its own
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// CatalogItem is one draggable entry of the action palette
type CatalogItem struct {
	Type  ActionType `json:"type"`
	Label string     `json:"label"`
	Class string     `json:"class"`
}

// Catalog returns every known action type, CC-only first, then note-only,
// then dual-mode, each group sorted by label
func Catalog() []CatalogItem {
	var items []CatalogItem
	add := func(types []ActionType) {
		group := make([]CatalogItem, 0, len(types))
		for _, t := range types {
			group = append(group, CatalogItem{Type: t, Label: Humanize(t), Class: Classify(t).String()})
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].Label < group[j].Label
		})
		items = append(items, group...)
	}
	add(keys(ccOnly))
	add(keys(noteOnly))
	add(dualMode)
	return items
}

func keys(set map[ActionType]struct{}) []ActionType {
	out := make([]ActionType, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return out
}
