package main

import (
	"context"
	"log"

	"fyne.io/fyne/v2/app"
	"github.com/j0KZ/K2-controller-design-sub000/internal/actions"
	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
	"github.com/j0KZ/K2-controller-design-sub000/internal/drag"
	"github.com/j0KZ/K2-controller-design-sub000/internal/engine"
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"github.com/j0KZ/K2-controller-design-sub000/internal/midi"
	"github.com/j0KZ/K2-controller-design-sub000/internal/notify"
	"github.com/j0KZ/K2-controller-design-sub000/internal/store"
	"github.com/j0KZ/K2-controller-design-sub000/internal/tray"
	"github.com/j0KZ/K2-controller-design-sub000/internal/window"
)

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// Persist through the config server when one is configured
	var st store.Store
	if settings.ServerURL != "" {
		st = store.NewHTTP(settings.ServerURL, settings.RequestTimeout)
		log.Printf("Using config server at %s", settings.ServerURL)
	} else {
		st = store.NewFile(settings.DocumentPath)
		log.Printf("Using config file %s", settings.DocumentPath)
	}

	// Initialize MIDI manager
	midiManager := midi.NewManager(midi.DeviceType(settings.DeviceType))
	defer midiManager.Close()

	// Create Fyne app
	fyneApp := app.NewWithID("io.k2controller.editor")

	selection := window.NewSelection()
	status := window.NewStatusBar()
	eng := engine.New(st, selection, notify.Multi{notify.Log{}, status}, drag.NewSession())

	inPort, outPort, channel := settings.MidiIn, settings.MidiOut, 0
	if err := eng.Load(context.Background()); err != nil {
		log.Printf("Failed to load config: %v", err)
	}

	state := live.NewState()
	if doc := eng.Document(); doc != nil {
		if inPort == "" {
			inPort = doc.Device.InPort
		}
		if outPort == "" {
			outPort = doc.Device.OutPort
		}
		channel = doc.Device.Channel
		state.Apply(live.Profile{Name: doc.Profile})
	}

	executor := actions.NewExecutor(midiManager)
	dispatcher := live.NewDispatcher(eng, executor, state)
	dispatcher.Channel = channel

	mainWindow := window.NewMainWindow(fyneApp, window.Deps{
		Engine:      eng,
		Selection:   selection,
		Status:      status,
		MIDIManager: midiManager,
		Dispatcher:  dispatcher,
		State:       state,
		Runner:      executor,
		InPort:      inPort,
		OutPort:     outPort,
		Channel:     channel,
	})

	tray.Setup(fyneApp, tray.Callbacks{
		OnOpen:   mainWindow.Show,
		OnReload: mainWindow.Reload,
		OnQuit:   fyneApp.Quit,
	})

	// Light the bound buttons and start listening
	mainWindow.InitializeDevice()
	feedCtx, stopFeed := context.WithCancel(context.Background())
	if settings.ServerURL != "" {
		go mainWindow.FollowFeed(feedCtx, live.NewFeed(settings.ServerURL))
	}
	mainWindow.Show()

	// Run the Fyne app (this blocks until app.Quit is called)
	fyneApp.Run()
	stopFeed()
	mainWindow.StopMIDIListener()
}
