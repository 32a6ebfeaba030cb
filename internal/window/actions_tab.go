package window

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
)

// ============ ACTION PALETTE ============

func (mw *MainWindow) createPalettePanel() fyne.CanvasObject {
	header := widget.NewLabel("Actions")
	header.TextStyle = fyne.TextStyle{Bold: true}

	groups := map[string]*fyne.Container{}
	var order []string
	for _, item := range actions.Catalog() {
		box, ok := groups[item.Class]
		if !ok {
			box = container.NewVBox()
			groups[item.Class] = box
			order = append(order, item.Class)
		}
		box.Add(newPaletteItem(mw, item))
	}

	items := make([]*widget.AccordionItem, 0, len(order))
	for _, class := range order {
		items = append(items, widget.NewAccordionItem(paletteTitle(class), groups[class]))
	}
	acc := widget.NewAccordion(items...)
	acc.MultiOpen = true
	acc.OpenAll()

	return container.NewBorder(header, nil, nil, nil, container.NewVScroll(acc))
}

func paletteTitle(class string) string {
	switch class {
	case actions.ClassCCOnly.String():
		return "Knobs & Faders"
	case actions.ClassNoteOnly.String():
		return "Buttons"
	default:
		return "Any Control"
	}
}
