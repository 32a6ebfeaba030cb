package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
)

// Entry binds an action to a trigger. Action-specific parameters are kept
// as raw JSON and flattened next to name and action on the wire.
type Entry struct {
	Name   string
	Action actions.ActionType
	Params map[string]json.RawMessage
}

// NewEntry creates an entry for a palette action with its display name
func NewEntry(t actions.ActionType) Entry {
	return Entry{Name: actions.Humanize(t), Action: t}
}

// Clone returns a deep copy of e
func (e Entry) Clone() Entry {
	out := Entry{Name: e.Name, Action: e.Action}
	if e.Params != nil {
		out.Params = make(map[string]json.RawMessage, len(e.Params))
		for k, v := range e.Params {
			out.Params[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// Equal reports whether two entries are byte-identical
func (e Entry) Equal(o Entry) bool {
	if e.Name != o.Name || e.Action != o.Action || len(e.Params) != len(o.Params) {
		return false
	}
	for k, v := range e.Params {
		w, ok := o.Params[k]
		if !ok || !bytes.Equal(v, w) {
			return false
		}
	}
	return true
}

func (e Entry) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(e.Params)+2)
	for k, v := range e.Params {
		out[k] = v
	}
	name, err := json.Marshal(e.Name)
	if err != nil {
		return nil, err
	}
	action, err := json.Marshal(e.Action)
	if err != nil {
		return nil, err
	}
	out["name"] = name
	out["action"] = action
	return json.Marshal(out)
}

func (e *Entry) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*e = Entry{}
	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &e.Name); err != nil {
			return fmt.Errorf("entry name: %w", err)
		}
		delete(fields, "name")
	}
	if raw, ok := fields["action"]; ok {
		if err := json.Unmarshal(raw, &e.Action); err != nil {
			return fmt.Errorf("entry action: %w", err)
		}
		delete(fields, "action")
	}
	if len(fields) > 0 {
		e.Params = fields
	}
	return nil
}
