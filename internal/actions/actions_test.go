package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyIsDisjoint(t *testing.T) {
	for a := range ccOnly {
		_, dup := noteOnly[a]
		assert.False(t, dup, "%s is in both tables", a)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassCCOnly, Classify(ActionTypeVolume))
	assert.Equal(t, ClassNoteOnly, Classify(ActionTypeHotkey))
	assert.Equal(t, ClassDual, Classify(ActionTypeMidi))
	assert.Equal(t, ClassDual, Classify("some_future_action"))
}

func TestAllowed(t *testing.T) {
	tests := []struct {
		action   ActionType
		ccShaped bool
		want     bool
	}{
		{ActionTypeVolume, true, true},
		{ActionTypeVolume, false, false},
		{ActionTypeHotkey, true, false},
		{ActionTypeHotkey, false, true},
		{ActionTypeMidi, true, true},
		{ActionTypeMidi, false, true},
		{"unknown", true, true},
		{"unknown", false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Allowed(tt.action, tt.ccShaped), "%s cc=%v", tt.action, tt.ccShaped)
	}
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Hotkey", Humanize(ActionTypeHotkey))
	assert.Equal(t, "Media Play Pause", Humanize(ActionTypeMediaPlayPause))
	assert.Equal(t, "Midi Out", Humanize(ActionTypeMidi))
	assert.Equal(t, "Foo Bar", Humanize("foo-bar"))
	assert.Equal(t, "", Humanize(""))
}

func TestCatalogOrder(t *testing.T) {
	items := Catalog()
	assert.Len(t, items, len(ccOnly)+len(noteOnly)+len(dualMode))

	// Groups come in class order
	rank := map[string]int{"cc-only": 0, "note-only": 1, "dual": 2}
	for i := 1; i < len(items); i++ {
		prev, cur := items[i-1], items[i]
		assert.LessOrEqual(t, rank[prev.Class], rank[cur.Class])
		if prev.Class == cur.Class {
			assert.Less(t, prev.Label, cur.Label)
		}
	}
}
