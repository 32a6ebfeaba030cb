package window

import (
	"image"
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/engine"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/stretchr/testify/assert"
)

func TestModifiersFor(t *testing.T) {
	assert.Equal(t, engine.ModCopy, modifiersFor(fyne.KeyModifierAlt))
	assert.Equal(t, engine.ModCopy, modifiersFor(fyne.KeyModifierControl))
	assert.Equal(t, engine.ModCopy, modifiersFor(fyne.KeyModifierAlt|fyne.KeyModifierShift))
	assert.Zero(t, modifiersFor(fyne.KeyModifierShift))
	assert.Zero(t, modifiersFor(0))
}

func TestContains(t *testing.T) {
	pos := fyne.NewPos(10, 20)
	size := fyne.NewSize(100, 50)
	assert.True(t, contains(pos, size, fyne.NewPos(10, 20)))
	assert.True(t, contains(pos, size, fyne.NewPos(109, 69)))
	assert.False(t, contains(pos, size, fyne.NewPos(110, 30)))
	assert.False(t, contains(pos, size, fyne.NewPos(50, 19)))
}

func TestSelection(t *testing.T) {
	s := NewSelection()
	var got []string
	s.SetOnChange(func(c mapping.Control, selected bool) {
		if selected {
			got = append(got, c.ID)
		} else {
			got = append(got, "-")
		}
	})

	s.Select(mapping.Control{ID: "btn-1"})
	assert.Equal(t, "btn-1", s.Current())
	c, ok := s.Control()
	assert.True(t, ok)
	assert.Equal(t, "btn-1", c.ID)

	s.Clear()
	assert.Empty(t, s.Current())
	_, ok = s.Control()
	assert.False(t, ok)
	assert.Equal(t, []string{"btn-1", "-"}, got)
}

func TestPortOptions(t *testing.T) {
	assert.Equal(t, noPort, portOption(""))
	assert.Equal(t, "K2", portOption("K2"))
	assert.Equal(t, "", portValue(noPort))
	assert.Equal(t, "K2", portValue("K2"))
}

func TestPaletteTitle(t *testing.T) {
	assert.Equal(t, "Knobs & Faders", paletteTitle(actions.ClassCCOnly.String()))
	assert.Equal(t, "Buttons", paletteTitle(actions.ClassNoteOnly.String()))
	assert.Equal(t, "Any Control", paletteTitle(actions.ClassDual.String()))
}

func TestRotateCCW(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Set(0, 0, color.White)
	dst := rotateCCW(src)
	assert.Equal(t, image.Rect(0, 0, 2, 3), dst.Bounds())
	// Top-left moves to bottom-left
	r, _, _, _ := dst.At(0, 2).RGBA()
	assert.NotZero(t, r)
}
