package mapping

// ControlType is the physical kind of an input control
type ControlType string

const (
	ControlButton  ControlType = "button"
	ControlEncoder ControlType = "encoder"
	ControlPot     ControlType = "pot"
	ControlFader   ControlType = "fader"
)

// Control describes one physical input. Controls come from the device
// layout and are never created or modified by the engine.
type Control struct {
	ID       string      `json:"id"`
	Label    string      `json:"label,omitempty"`
	Type     ControlType `json:"type"`
	Note     *int        `json:"note,omitempty"`
	PushNote *int        `json:"pushNote,omitempty"`
	CC       *int        `json:"cc,omitempty"`
	// Special marks reserved controls (layer selector) that never take part
	// in drag and drop.
	Special string `json:"special,omitempty"`
}

// Num returns a pointer to n, for building controls
func Num(n int) *int {
	return &n
}

// Name returns the display name of the control
func (c Control) Name() string {
	if c.Label != "" {
		return c.Label
	}
	return c.ID
}

// IsCCShaped reports whether the control sends continuous-controller values
func (c Control) IsCCShaped() bool {
	return c.CC != nil
}

// IsSpecial reports whether the control is reserved
func (c Control) IsSpecial() bool {
	return c.Special != ""
}

// Triggers returns every trigger the control can fire, in resolver order
func (c Control) Triggers() []Coordinates {
	var out []Coordinates
	if c.Note != nil {
		out = append(out, Coordinates{Partition: NoteOn, Key: *c.Note})
	}
	if c.PushNote != nil {
		out = append(out, Coordinates{Partition: NoteOn, Key: *c.PushNote})
	}
	if c.CC != nil {
		out = append(out,
			Coordinates{Partition: CCAbsolute, Key: *c.CC},
			Coordinates{Partition: CCRelative, Key: *c.CC},
		)
	}
	return out
}
