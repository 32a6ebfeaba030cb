package mapping

// Binding is an existing entry together with where it is stored
type Binding struct {
	Coordinates
	Entry Entry
}

// Resolve finds the entry currently bound to a control. Note triggers win
// over the push note, and cc_absolute wins over cc_relative for the same
// CC number; the first match is returned.
func Resolve(c Control, t *Table) (Binding, bool) {
	for _, coord := range c.Triggers() {
		if e, ok := t.Get(coord); ok {
			return Binding{Coordinates: coord, Entry: e}, true
		}
	}
	return Binding{}, false
}

// CoordinatesFor returns where a new binding for c is written: encoders
// rotate into cc_relative, other CC controls into cc_absolute, and
// note-shaped controls into note_on keyed by note (or push note). It
// returns false for a control with no trigger at all.
func CoordinatesFor(c Control) (Coordinates, bool) {
	switch {
	case c.CC != nil && c.Type == ControlEncoder:
		return Coordinates{Partition: CCRelative, Key: *c.CC}, true
	case c.CC != nil:
		return Coordinates{Partition: CCAbsolute, Key: *c.CC}, true
	case c.Note != nil:
		return Coordinates{Partition: NoteOn, Key: *c.Note}, true
	case c.PushNote != nil:
		return Coordinates{Partition: NoteOn, Key: *c.PushNote}, true
	}
	return Coordinates{}, false
}

// Target returns the coordinates a write to c lands on: the existing
// binding if there is one, otherwise CoordinatesFor(c).
func Target(c Control, t *Table) (Coordinates, bool) {
	if b, ok := Resolve(c, t); ok {
		return b.Coordinates, true
	}
	return CoordinatesFor(c)
}

// Shadowed returns the bindings of c that Resolve never reports because a
// higher-priority partition holds the same CC number. A control whose CC has
// entries in both cc_absolute and cc_relative only ever edits the absolute
// one; the relative one still fires on the hardware.
func Shadowed(c Control, t *Table) []Binding {
	if c.CC == nil {
		return nil
	}
	abs := Coordinates{Partition: CCAbsolute, Key: *c.CC}
	rel := Coordinates{Partition: CCRelative, Key: *c.CC}
	if _, ok := t.Get(abs); !ok {
		return nil
	}
	if e, ok := t.Get(rel); ok {
		return []Binding{{Coordinates: rel, Entry: e}}
	}
	return nil
}
