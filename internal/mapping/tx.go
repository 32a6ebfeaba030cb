package mapping

// Tx records the pre-image of every slot it writes so the whole set of
// writes can be undone. Only the first write to a slot is recorded.
type Tx struct {
	table *Table
	pre   []preimage
}

type preimage struct {
	coord   Coordinates
	entry   Entry
	present bool
}

// Begin starts recording writes against t
func Begin(t *Table) *Tx {
	return &Tx{table: t}
}

func (tx *Tx) record(c Coordinates) {
	for _, p := range tx.pre {
		if p.coord == c {
			return
		}
	}
	e, ok := tx.table.Get(c)
	tx.pre = append(tx.pre, preimage{coord: c, entry: e.Clone(), present: ok})
}

// Set writes a copy of e at c
func (tx *Tx) Set(c Coordinates, e Entry) {
	tx.record(c)
	tx.table.Set(c, e.Clone())
}

// Delete removes the entry at c
func (tx *Tx) Delete(c Coordinates) {
	tx.record(c)
	tx.table.Delete(c)
}

// Touched returns the slots written so far, in write order
func (tx *Tx) Touched() []Coordinates {
	out := make([]Coordinates, len(tx.pre))
	for i, p := range tx.pre {
		out[i] = p.coord
	}
	return out
}

// Rollback restores every written slot to its pre-image
func (tx *Tx) Rollback() {
	for i := len(tx.pre) - 1; i >= 0; i-- {
		p := tx.pre[i]
		if p.present {
			tx.table.Set(p.coord, p.entry)
		} else {
			tx.table.Delete(p.coord)
		}
	}
	tx.pre = nil
}
