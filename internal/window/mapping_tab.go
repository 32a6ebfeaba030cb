package window

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	k2 "github.com/j0KZ/K2-controller-design-sub000/internal/layout"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
)

// ============ MAPPING TAB ============

func (mw *MainWindow) createMappingTab() fyne.CanvasObject {
	header := widget.NewLabel("Controls")
	header.TextStyle = fyne.TextStyle{Bold: true}

	subtitle := widget.NewLabel("Drag an action onto a control, or a control onto another. Hold Alt or Ctrl to copy.")
	subtitle.Wrapping = fyne.TextWrapWord

	reloadBtn := widget.NewButtonWithIcon("Reload", theme.ViewRefreshIcon(), func() {
		mw.Reload()
	})
	toolbar := container.NewBorder(nil, nil, header, reloadBtn)

	mw.details = newDetailsPanel(mw)

	split := container.NewHSplit(
		mw.createPalettePanel(),
		container.NewHSplit(container.NewScroll(mw.createControlGrid()), mw.details.container),
	)
	split.Offset = 0.22

	return container.NewBorder(
		container.NewVBox(toolbar, subtitle, widget.NewSeparator()),
		nil, nil, nil,
		split,
	)
}

func (mw *MainWindow) createControlGrid() fyne.CanvasObject {
	rows, cols := k2.GridSize()
	cells := make([]fyne.CanvasObject, rows*cols)
	for i := range cells {
		cells[i] = layout.NewSpacer()
	}

	mw.tiles = mw.tiles[:0]
	for _, slot := range k2.Slots() {
		t := newControlTile(mw, slot.Control)
		mw.tiles = append(mw.tiles, t)
		cells[slot.Row*cols+slot.Col] = t
	}

	return container.NewGridWithColumns(cols, cells...)
}

func (mw *MainWindow) tileFor(id string) *controlTile {
	for _, t := range mw.tiles {
		if t.control.ID == id {
			return t
		}
	}
	return nil
}

// ============ DETAILS PANEL ============

type detailsPanel struct {
	mw        *MainWindow
	container *fyne.Container

	title    *widget.Label
	kind     *widget.Label
	triggers *widget.Label
	action   *widget.Label
	slot     *widget.Label
	warning  *widget.Label

	testBtn, clearBtn *widget.Button
	control           mapping.Control
}

func newDetailsPanel(mw *MainWindow) *detailsPanel {
	d := &detailsPanel{mw: mw}

	d.title = widget.NewLabel("No control selected")
	d.title.TextStyle = fyne.TextStyle{Bold: true}
	d.kind = widget.NewLabel("")
	d.triggers = widget.NewLabel("")
	d.action = widget.NewLabel("")
	d.slot = widget.NewLabel("")
	d.warning = widget.NewLabel("")
	d.warning.Importance = widget.WarningImportance
	d.warning.Wrapping = fyne.TextWrapWord

	d.testBtn = widget.NewButtonWithIcon("Test", theme.MediaPlayIcon(), func() {
		mw.testBinding(d.control)
	})
	d.clearBtn = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() {
		mw.unassign(d.control)
	})
	d.clearBtn.Importance = widget.DangerImportance
	d.testBtn.Disable()
	d.clearBtn.Disable()

	form := widget.NewForm(
		widget.NewFormItem("Type", d.kind),
		widget.NewFormItem("Triggers", d.triggers),
		widget.NewFormItem("Action", d.action),
		widget.NewFormItem("Slot", d.slot),
	)

	d.container = container.NewVBox(
		d.title,
		widget.NewSeparator(),
		form,
		d.warning,
		container.NewHBox(d.testBtn, d.clearBtn),
	)
	return d
}

// show fills the panel with the current binding of c
func (d *detailsPanel) show(c mapping.Control, selected bool) {
	d.control = c
	if !selected {
		d.title.SetText("No control selected")
		for _, l := range []*widget.Label{d.kind, d.triggers, d.action, d.slot, d.warning} {
			l.SetText("")
		}
		d.testBtn.Disable()
		d.clearBtn.Disable()
		return
	}

	d.title.SetText(c.Name())
	d.kind.SetText(string(c.Type))

	var triggers []string
	for _, tr := range c.Triggers() {
		triggers = append(triggers, tr.String())
	}
	d.triggers.SetText(strings.Join(triggers, ", "))

	b, bound := d.mw.engine.Binding(c)
	if bound {
		d.action.SetText(fmt.Sprintf("%s (%s)", b.Entry.Name, b.Entry.Action))
		d.slot.SetText(b.Coordinates.String())
		d.testBtn.Enable()
		d.clearBtn.Enable()
	} else {
		d.action.SetText("(none)")
		d.slot.SetText("")
		d.testBtn.Disable()
		d.clearBtn.Disable()
	}

	d.warning.SetText("")
	for _, p := range d.mw.engine.PhantomBindings([]mapping.Control{c}) {
		for _, s := range p.Shadowed {
			d.warning.SetText(fmt.Sprintf("%s is also bound at %s and still fires on the hardware", s.Entry.Name, s.Coordinates))
		}
	}
}
