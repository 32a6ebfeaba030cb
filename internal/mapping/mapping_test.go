package mapping

import (
	"encoding/json"
	"testing"

	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	button  = Control{ID: "btn-a", Type: ControlButton, Note: Num(36)}
	encoder = Control{ID: "enc-1", Type: ControlEncoder, CC: Num(0), PushNote: Num(52)}
	fader   = Control{ID: "fader-1", Type: ControlFader, CC: Num(16)}
)

func TestResolvePriority(t *testing.T) {
	tbl := NewTable()
	tbl.Set(Coordinates{CCRelative, 0}, Entry{Name: "Scroll", Action: actions.ActionTypeScrollV})

	b, ok := Resolve(encoder, &tbl)
	require.True(t, ok)
	assert.Equal(t, Coordinates{CCRelative, 0}, b.Coordinates)

	tbl.Set(Coordinates{CCAbsolute, 0}, Entry{Name: "Volume", Action: actions.ActionTypeVolume})
	b, _ = Resolve(encoder, &tbl)
	assert.Equal(t, CCAbsolute, b.Partition, "absolute wins over relative")

	tbl.Set(Coordinates{NoteOn, 52}, Entry{Name: "Mute", Action: actions.ActionTypeMute})
	b, _ = Resolve(encoder, &tbl)
	assert.Equal(t, Coordinates{NoteOn, 52}, b.Coordinates, "push note wins over rotation")
	assert.Equal(t, "Mute", b.Entry.Name)
}

func TestResolveNone(t *testing.T) {
	tbl := NewTable()
	tbl.Set(Coordinates{NoteOn, 37}, NewEntry(actions.ActionTypeHotkey))
	_, ok := Resolve(button, &tbl)
	assert.False(t, ok)
}

func TestNotePreferredOverPushNote(t *testing.T) {
	c := Control{ID: "x", Type: ControlButton, Note: Num(1), PushNote: Num(2)}
	tbl := NewTable()
	tbl.Set(Coordinates{NoteOn, 2}, NewEntry(actions.ActionTypeMute))
	tbl.Set(Coordinates{NoteOn, 1}, NewEntry(actions.ActionTypeHotkey))
	b, ok := Resolve(c, &tbl)
	require.True(t, ok)
	assert.Equal(t, 1, b.Key)
}

func TestCoordinatesFor(t *testing.T) {
	c, ok := CoordinatesFor(encoder)
	require.True(t, ok)
	assert.Equal(t, Coordinates{CCRelative, 0}, c)

	c, _ = CoordinatesFor(fader)
	assert.Equal(t, Coordinates{CCAbsolute, 16}, c)

	c, _ = CoordinatesFor(button)
	assert.Equal(t, Coordinates{NoteOn, 36}, c)

	c, _ = CoordinatesFor(Control{ID: "p", Type: ControlButton, PushNote: Num(9)})
	assert.Equal(t, Coordinates{NoteOn, 9}, c)

	_, ok = CoordinatesFor(Control{ID: "none", Type: ControlButton})
	assert.False(t, ok)
}

func TestIsCompatible(t *testing.T) {
	controls := []Control{button, encoder, fader}
	types := []actions.ActionType{
		actions.ActionTypeVolume, actions.ActionTypeHotkey, actions.ActionTypeMidi, "brand_new",
	}
	for _, c := range controls {
		for _, a := range types {
			want := !((!c.IsCCShaped() && actions.IsCCOnly(a)) || (c.IsCCShaped() && actions.IsNoteOnly(a)))
			assert.Equal(t, want, IsCompatible(a, c), "%s on %s", a, c.ID)
		}
	}
	assert.False(t, IsCompatible(actions.ActionTypeVolume, button))
	assert.False(t, IsCompatible(actions.ActionTypeHotkey, fader))
}

func TestShadowed(t *testing.T) {
	tbl := NewTable()
	assert.Empty(t, Shadowed(encoder, &tbl))

	tbl.Set(Coordinates{CCRelative, 0}, NewEntry(actions.ActionTypeScrollV))
	assert.Empty(t, Shadowed(encoder, &tbl))

	tbl.Set(Coordinates{CCAbsolute, 0}, NewEntry(actions.ActionTypeVolume))
	shadowed := Shadowed(encoder, &tbl)
	require.Len(t, shadowed, 1)
	assert.Equal(t, CCRelative, shadowed[0].Partition)
}

func TestEntryJSONFlattensParams(t *testing.T) {
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Run","action":"shell","command":"ls"}`), &e))
	assert.Equal(t, "Run", e.Name)
	assert.Equal(t, actions.ActionTypeShellCommand, e.Action)
	assert.JSONEq(t, `"ls"`, string(e.Params["command"]))

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Run","action":"shell","command":"ls"}`, string(data))
}

func TestTableJSON(t *testing.T) {
	tbl := NewTable()
	tbl.Set(Coordinates{NoteOn, 36}, NewEntry(actions.ActionTypeHotkey))
	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.JSONEq(t, `{"note_on":{"36":{"name":"Hotkey","action":"hotkey"}},"cc_absolute":{},"cc_relative":{}}`, string(data))

	var back Table
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, tbl.Equal(&back))
}

func TestCloneIsDeep(t *testing.T) {
	tbl := NewTable()
	e := Entry{Name: "Run", Action: actions.ActionTypeShellCommand, Params: map[string]json.RawMessage{"command": json.RawMessage(`"ls"`)}}
	tbl.Set(Coordinates{NoteOn, 1}, e)

	cp := tbl.Clone()
	cp.NoteOn[1].Params["command"][1] = 'X'
	assert.Equal(t, `"ls"`, string(tbl.NoteOn[1].Params["command"]))
	assert.False(t, tbl.Equal(&cp))
}

func TestTxRollback(t *testing.T) {
	tbl := NewTable()
	a := Coordinates{NoteOn, 36}
	b := Coordinates{NoteOn, 37}
	orig := NewEntry(actions.ActionTypeHotkey)
	tbl.Set(a, orig)
	before := tbl.Clone()

	tx := Begin(&tbl)
	tx.Set(b, orig)
	tx.Delete(a)
	tx.Set(b, NewEntry(actions.ActionTypeMute))
	assert.Equal(t, []Coordinates{b, a}, tx.Touched())

	tx.Rollback()
	assert.True(t, tbl.Equal(&before))
	_, ok := tbl.Get(b)
	assert.False(t, ok)
}
