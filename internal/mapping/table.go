package mapping

import "fmt"

// Partition names one of the keyed collections of the mapping table
type Partition string

const (
	NoteOn     Partition = "note_on"
	CCAbsolute Partition = "cc_absolute"
	CCRelative Partition = "cc_relative"
)

// Partitions lists every partition in resolver order
var Partitions = []Partition{NoteOn, CCAbsolute, CCRelative}

// Coordinates address one slot of the table
type Coordinates struct {
	Partition Partition
	Key       int
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%s[%d]", c.Partition, c.Key)
}

// Table holds the bindings of a profile, keyed by trigger number within
// each partition
type Table struct {
	NoteOn     map[int]Entry `json:"note_on"`
	CCAbsolute map[int]Entry `json:"cc_absolute"`
	CCRelative map[int]Entry `json:"cc_relative"`
}

// NewTable creates an empty table
func NewTable() Table {
	return Table{
		NoteOn:     map[int]Entry{},
		CCAbsolute: map[int]Entry{},
		CCRelative: map[int]Entry{},
	}
}

func (t *Table) partition(p Partition) map[int]Entry {
	switch p {
	case NoteOn:
		if t.NoteOn == nil {
			t.NoteOn = map[int]Entry{}
		}
		return t.NoteOn
	case CCAbsolute:
		if t.CCAbsolute == nil {
			t.CCAbsolute = map[int]Entry{}
		}
		return t.CCAbsolute
	case CCRelative:
		if t.CCRelative == nil {
			t.CCRelative = map[int]Entry{}
		}
		return t.CCRelative
	}
	panic(fmt.Sprintf("mapping: unknown partition %q", p))
}

// view returns the partition map without allocating it; the result may be nil
func (t *Table) view(p Partition) map[int]Entry {
	switch p {
	case NoteOn:
		return t.NoteOn
	case CCAbsolute:
		return t.CCAbsolute
	case CCRelative:
		return t.CCRelative
	}
	return nil
}

// Entries returns the entries of one partition. The map must not be modified.
func (t *Table) Entries(p Partition) map[int]Entry {
	return t.view(p)
}

// Get returns the entry at c
func (t *Table) Get(c Coordinates) (Entry, bool) {
	e, ok := t.view(c.Partition)[c.Key]
	return e, ok
}

// Set stores e at c
func (t *Table) Set(c Coordinates, e Entry) {
	t.partition(c.Partition)[c.Key] = e
}

// Delete removes whatever is stored at c
func (t *Table) Delete(c Coordinates) {
	delete(t.view(c.Partition), c.Key)
}

// Len returns the number of bindings across all partitions
func (t *Table) Len() int {
	return len(t.NoteOn) + len(t.CCAbsolute) + len(t.CCRelative)
}

// Clone returns a deep copy of t
func (t *Table) Clone() Table {
	out := NewTable()
	for _, p := range Partitions {
		src := t.view(p)
		dst := out.partition(p)
		for k, e := range src {
			dst[k] = e.Clone()
		}
	}
	return out
}

// Equal reports whether two tables hold byte-identical bindings
func (t *Table) Equal(o *Table) bool {
	for _, p := range Partitions {
		a, b := t.view(p), o.view(p)
		if len(a) != len(b) {
			return false
		}
		for k, e := range a {
			f, ok := b[k]
			if !ok || !e.Equal(f) {
				return false
			}
		}
	}
	return true
}
