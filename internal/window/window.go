package window

import (
	"context"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/j0KZ/K2-controller-design-sub000/internal/engine"
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"github.com/j0KZ/K2-controller-design-sub000/internal/mapping"
	"github.com/j0KZ/K2-controller-design-sub000/internal/midi"
	"github.com/j0KZ/K2-controller-design-sub000/internal/notify"
)

// Deps are the collaborators of the main window
type Deps struct {
	Engine      *engine.Engine
	Selection   *Selection
	Status      *StatusBar
	MIDIManager *midi.Manager
	Dispatcher  *live.Dispatcher
	State       *live.State
	Runner      live.Runner

	InPort, OutPort string
	Channel         int // 1-16
}

// MainWindow manages the main application window
type MainWindow struct {
	window      fyne.Window
	app         fyne.App
	engine      *engine.Engine
	selection   *Selection
	status      *StatusBar
	midiManager *midi.Manager
	dispatcher  *live.Dispatcher
	state       *live.State
	runner      live.Runner

	inPort, outPort string
	channel         int

	// Mapping tab state
	tiles     []*controlTile
	hoverTile *controlTile
	details   *detailsPanel

	// Devices tab state
	connLabel, layerLabel, profileLabel *widget.Label

	// MIDI input listener
	midiStop func()
}

// NewMainWindow creates the main application window
func NewMainWindow(app fyne.App, deps Deps) *MainWindow {
	win := app.NewWindow("K2 Controller")

	mw := &MainWindow{
		window:      win,
		app:         app,
		engine:      deps.Engine,
		selection:   deps.Selection,
		status:      deps.Status,
		midiManager: deps.MIDIManager,
		dispatcher:  deps.Dispatcher,
		state:       deps.State,
		runner:      deps.Runner,
		inPort:      deps.InPort,
		outPort:     deps.OutPort,
		channel:     deps.Channel,
	}

	mw.setupUI()

	// Engine callbacks arrive off the UI thread
	mw.selection.SetOnChange(func(c mapping.Control, selected bool) {
		fyne.Do(func() {
			mw.details.show(c, selected)
			mw.refreshTiles()
			mw.sendBindingsToDevice()
		})
	})

	win.Resize(fyne.NewSize(980, 720))
	win.CenterOnScreen()

	win.SetCloseIntercept(func() {
		win.Hide()
	})

	return mw
}

func (mw *MainWindow) setupUI() {
	mappingTab := container.NewTabItem("Mapping", mw.createMappingTab())
	devicesTab := container.NewTabItem("Device", mw.createDevicesTab())

	tabs := container.NewAppTabs(mappingTab, devicesTab)
	tabs.SetTabLocation(container.TabLocationTop)

	mw.window.SetContent(container.NewBorder(nil, mw.status.CanvasObject(), nil, nil, tabs))
}

// ============ DRAG AND DROP ============

// dragMoved tracks the tile under the pointer of a live drag
func (mw *MainWindow) dragMoved(abs fyne.Position) {
	target := mw.tileAt(abs)
	prev := mw.hoverTile

	if target == prev {
		if target != nil {
			mw.engine.HoverMove(target.control)
		}
		return
	}

	if prev != nil {
		mw.engine.HoverLeave(prev.control, nil)
		prev.Refresh()
	}
	mw.hoverTile = target
	if target != nil {
		mw.engine.HoverEnter(target.control)
		target.Refresh()
	}
}

// dragEnded drops the gesture on the tile under the pointer, if any
func (mw *MainWindow) dragEnded() {
	target := mw.hoverTile
	mw.hoverTile = nil
	if target == nil {
		mw.engine.EndDrag()
		mw.refreshTiles()
		return
	}

	mods := mw.modifiers()
	go func() {
		if _, err := mw.engine.Drop(context.Background(), target.control, mods); err != nil {
			log.Printf("Drop on %s: %v", target.control.ID, err)
		}
		fyne.Do(mw.refreshTiles)
	}()
	mw.refreshTiles()
}

func (mw *MainWindow) tileAt(abs fyne.Position) *controlTile {
	driver := mw.app.Driver()
	for _, t := range mw.tiles {
		if !t.Visible() {
			continue
		}
		if contains(driver.AbsolutePositionForObject(t), t.Size(), abs) {
			return t
		}
	}
	return nil
}

// modifiers reads the keys held at drop time
func (mw *MainWindow) modifiers() engine.Modifiers {
	d, ok := mw.app.Driver().(desktop.Driver)
	if !ok {
		return 0
	}
	return modifiersFor(d.CurrentKeyModifiers())
}

// modifiersFor maps held keys to engine modifiers: Alt or Ctrl copies
func modifiersFor(keys fyne.KeyModifier) engine.Modifiers {
	var mods engine.Modifiers
	if keys&(fyne.KeyModifierAlt|fyne.KeyModifierControl) != 0 {
		mods |= engine.ModCopy
	}
	return mods
}

func (mw *MainWindow) refreshTiles() {
	for _, t := range mw.tiles {
		t.Refresh()
	}
}

// ============ DOCUMENT ============

// Reload fetches the document from the store and redraws the grid
func (mw *MainWindow) Reload() {
	go func() {
		if err := mw.engine.Load(context.Background()); err != nil {
			log.Printf("Failed to load config: %v", err)
			mw.status.Notify("Failed to load config: "+err.Error(), notify.Error)
			return
		}
		fyne.Do(func() {
			mw.refreshTiles()
			if c, ok := mw.selection.Control(); ok {
				mw.details.show(c, true)
			}
			mw.sendBindingsToDevice()
		})
	}()
}

func (mw *MainWindow) unassign(c mapping.Control) {
	go func() {
		if _, err := mw.engine.Unassign(context.Background(), c); err != nil {
			log.Printf("Clear %s: %v", c.ID, err)
		}
		fyne.Do(mw.refreshTiles)
	}()
}

// Show displays the window
func (mw *MainWindow) Show() {
	mw.refreshTiles()
	mw.window.Show()
}

// Hide hides the window
func (mw *MainWindow) Hide() {
	mw.window.Hide()
}

// Window returns the underlying fyne.Window
func (mw *MainWindow) Window() fyne.Window {
	return mw.window
}
