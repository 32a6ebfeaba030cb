// Package layout describes the physical controls of the Xone:K2 and where
// they sit on the editor grid.
package layout

import (
	"fmt"

	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// Slot is a control together with its grid position
type Slot struct {
	Control  mapping.Control
	Row, Col int
}

const (
	// Columns is the width of the control grid
	Columns = 4

	encoderCCBase = 0  // relative CC 0-3
	pushNoteBase  = 52 // encoder push buttons 52-55
	potCCBase     = 4  // absolute CC 4-15
	faderCCBase   = 16 // absolute CC 16-19
	buttonNote    = 36 // button matrix 36-51
	layerNote     = 12

	// LayerID is the control ID of the layer selector
	LayerID = "layer"
)

// K2 layout, top to bottom:
// Row 0: encoders
// Rows 1-3: pots
// Row 4: faders
// Rows 5-8: button matrix
// Row 9: layer button
var slots = build()

func build() []Slot {
	var out []Slot
	for col := 0; col < Columns; col++ {
		out = append(out, Slot{Row: 0, Col: col, Control: mapping.Control{
			ID:       fmt.Sprintf("enc-%d", col+1),
			Label:    fmt.Sprintf("Encoder %d", col+1),
			Type:     mapping.ControlEncoder,
			CC:       mapping.Num(encoderCCBase + col),
			PushNote: mapping.Num(pushNoteBase + col),
		}})
	}
	for i := 0; i < 3*Columns; i++ {
		out = append(out, Slot{Row: 1 + i/Columns, Col: i % Columns, Control: mapping.Control{
			ID:    fmt.Sprintf("pot-%d", i+1),
			Label: fmt.Sprintf("Pot %d", i+1),
			Type:  mapping.ControlPot,
			CC:    mapping.Num(potCCBase + i),
		}})
	}
	for col := 0; col < Columns; col++ {
		out = append(out, Slot{Row: 4, Col: col, Control: mapping.Control{
			ID:    fmt.Sprintf("fader-%d", col+1),
			Label: fmt.Sprintf("Fader %d", col+1),
			Type:  mapping.ControlFader,
			CC:    mapping.Num(faderCCBase + col),
		}})
	}
	for i := 0; i < 4*Columns; i++ {
		out = append(out, Slot{Row: 5 + i/Columns, Col: i % Columns, Control: mapping.Control{
			ID:    fmt.Sprintf("btn-%d", i+1),
			Label: fmt.Sprintf("Button %c", 'A'+i),
			Type:  mapping.ControlButton,
			Note:  mapping.Num(buttonNote + i),
		}})
	}
	out = append(out, Slot{Row: 9, Col: 0, Control: mapping.Control{
		ID:      LayerID,
		Label:   "Layer",
		Type:    mapping.ControlButton,
		Note:    mapping.Num(layerNote),
		Special: "layer",
	}})
	return out
}

// GridSize returns the number of rows and columns of the grid
func GridSize() (rows, cols int) {
	return 10, Columns
}

// Slots returns every control with its grid position, in grid order
func Slots() []Slot {
	return append([]Slot(nil), slots...)
}

// Controls returns every control in grid order
func Controls() []mapping.Control {
	out := make([]mapping.Control, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Control)
	}
	return out
}

// Find returns the control with the given ID
func Find(id string) (mapping.Control, bool) {
	for _, s := range slots {
		if s.Control.ID == id {
			return s.Control, true
		}
	}
	return mapping.Control{}, false
}

// ByNote returns the control sending note n, either as its note or as the
// push of an encoder
func ByNote(n int) (mapping.Control, bool) {
	for _, s := range slots {
		c := s.Control
		if (c.Note != nil && *c.Note == n) || (c.PushNote != nil && *c.PushNote == n) {
			return c, true
		}
	}
	return mapping.Control{}, false
}

// ByCC returns the control sending CC number cc
func ByCC(cc int) (mapping.Control, bool) {
	for _, s := range slots {
		if c := s.Control; c.CC != nil && *c.CC == cc {
			return c, true
		}
	}
	return mapping.Control{}, false
}
