package window

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// ============ CONTROL TILE WIDGET ============

// controlTile is one physical control on the grid. It can be selected,
// dragged onto another tile, and receives drops from the palette.
type controlTile struct {
	widget.BaseWidget
	mw      *MainWindow
	control mapping.Control

	bg      *canvas.Rectangle
	title   fyne.CanvasObject
	binding *canvas.Text
	value   *canvas.Text

	// started is set once the engine accepted the drag; refused stops
	// retrying until the pointer is released
	started, refused bool
}

func newControlTile(mw *MainWindow, c mapping.Control) *controlTile {
	t := &controlTile{mw: mw, control: c}

	t.bg = canvas.NewRectangle(theme.Color(theme.ColorNameButton))
	t.bg.CornerRadius = 4
	t.bg.StrokeWidth = 2
	t.bg.SetMinSize(fyne.NewSize(96, 64))

	if c.Type == mapping.ControlFader {
		t.title = rotatedLabel(c.Name())
	} else {
		name := canvas.NewText(c.Name(), theme.Color(theme.ColorNameForeground))
		name.TextStyle = fyne.TextStyle{Bold: true}
		name.TextSize = theme.CaptionTextSize()
		t.title = name
	}

	t.binding = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	t.binding.TextSize = theme.CaptionTextSize()
	t.value = canvas.NewText("", theme.Color(theme.ColorNamePlaceHolder))
	t.value.TextSize = theme.CaptionTextSize()

	t.ExtendBaseWidget(t)
	return t
}

func (t *controlTile) CreateRenderer() fyne.WidgetRenderer {
	t.sync()
	body := container.NewVBox(t.title, t.binding, t.value)
	return widget.NewSimpleRenderer(container.NewStack(t.bg, container.NewPadded(body)))
}

// Refresh re-reads the tile's binding and drag state before redrawing
func (t *controlTile) Refresh() {
	t.sync()
	t.BaseWidget.Refresh()
}

func (t *controlTile) sync() {
	id := t.control.ID
	eng := t.mw.engine

	if b, ok := eng.Binding(t.control); ok {
		t.binding.Text = b.Entry.Name
	} else if t.control.IsSpecial() {
		t.binding.Text = "(reserved)"
	} else {
		t.binding.Text = "(empty)"
	}

	t.value.Text = ""
	if t.mw.state != nil {
		snap := t.mw.state.Snapshot()
		switch {
		case t.control.CC != nil:
			if v, ok := snap.Analog[uint8(*t.control.CC)]; ok {
				t.value.Text = fmt.Sprintf("%d", v)
			}
		case t.control.Note != nil && snap.Pressed[uint8(*t.control.Note)]:
			t.value.Text = "pressed"
		}
	}

	fill := theme.Color(theme.ColorNameButton)
	stroke := color.Color(color.Transparent)
	switch {
	case eng.IsHoverTarget(id):
		fill = theme.Color(theme.ColorNameHover)
		stroke = theme.Color(theme.ColorNamePrimary)
	case eng.IsDragSource(id):
		fill = theme.Color(theme.ColorNameDisabledButton)
	case t.mw.selection.Current() == id:
		stroke = theme.Color(theme.ColorNameFocus)
	}
	if t.control.IsSpecial() {
		fill = theme.Color(theme.ColorNameDisabledButton)
	}
	t.bg.FillColor = fill
	t.bg.StrokeColor = stroke
}

func (t *controlTile) Tapped(_ *fyne.PointEvent) {
	if t.control.IsSpecial() {
		return
	}
	t.mw.selection.Select(t.control)
}

func (t *controlTile) TappedSecondary(ev *fyne.PointEvent) {
	if t.control.IsSpecial() {
		return
	}
	c := fyne.CurrentApp().Driver().CanvasForObject(t)
	if c == nil {
		return
	}
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Test Binding", func() { t.mw.testBinding(t.control) }),
		fyne.NewMenuItem("Clear Binding", func() { t.mw.unassign(t.control) }),
	)
	widget.ShowPopUpMenuAtPosition(menu, c, ev.AbsolutePosition)
}

func (t *controlTile) Dragged(ev *fyne.DragEvent) {
	if t.refused {
		return
	}
	if !t.started {
		if !t.mw.engine.StartControlDrag(t.control) {
			t.refused = true
			return
		}
		t.started = true
		t.Refresh()
	}
	t.mw.dragMoved(ev.AbsolutePosition)
}

func (t *controlTile) DragEnd() {
	started := t.started
	t.started, t.refused = false, false
	if started {
		t.mw.dragEnded()
	}
}

// ============ PALETTE ITEM WIDGET ============

// paletteItem is one draggable action type of the palette
type paletteItem struct {
	widget.BaseWidget
	mw      *MainWindow
	item    actions.CatalogItem
	started bool
}

func newPaletteItem(mw *MainWindow, item actions.CatalogItem) *paletteItem {
	p := &paletteItem{mw: mw, item: item}
	p.ExtendBaseWidget(p)
	return p
}

func (p *paletteItem) CreateRenderer() fyne.WidgetRenderer {
	label := widget.NewLabel(p.item.Label)
	class := widget.NewLabel(p.item.Class)
	class.Importance = widget.LowImportance
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, nil, class, label))
}

func (p *paletteItem) Dragged(ev *fyne.DragEvent) {
	if !p.started {
		if !p.mw.engine.StartCatalogDrag(p.item.Type) {
			return
		}
		p.started = true
	}
	p.mw.dragMoved(ev.AbsolutePosition)
}

func (p *paletteItem) DragEnd() {
	if p.started {
		p.started = false
		p.mw.dragEnded()
	}
}

// contains reports whether p lies inside the rectangle at pos with size
func contains(pos fyne.Position, size fyne.Size, p fyne.Position) bool {
	return p.X >= pos.X && p.Y >= pos.Y &&
		p.X < pos.X+size.Width && p.Y < pos.Y+size.Height
}
