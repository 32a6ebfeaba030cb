package window

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	k2 "github.com/j0KZ/K2-controller-design-sub000/internal/layout"
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
)

const noPort = "(None)"

// ============ DEVICE TAB ============

func (mw *MainWindow) createDevicesTab() fyne.CanvasObject {
	header := widget.NewLabel("MIDI Device")
	header.TextStyle = fyne.TextStyle{Bold: true}

	inPortSelect := widget.NewSelect(nil, nil)
	outPortSelect := widget.NewSelect(nil, nil)
	refreshPorts := func() {
		inPortSelect.Options = append([]string{noPort}, mw.midiManager.ListInPorts()...)
		outPortSelect.Options = append([]string{noPort}, mw.midiManager.ListOutPorts()...)
		inPortSelect.SetSelected(portOption(mw.inPort))
		outPortSelect.SetSelected(portOption(mw.outPort))
	}
	refreshPorts()

	channels := make([]string, 16)
	for i := range channels {
		channels[i] = strconv.Itoa(i + 1)
	}
	channelSelect := widget.NewSelect(channels, nil)
	channelSelect.SetSelected(strconv.Itoa(mw.channel))

	rescanBtn := widget.NewButtonWithIcon("Rescan", theme.ViewRefreshIcon(), refreshPorts)
	connectBtn := widget.NewButtonWithIcon("Connect", theme.ConfirmIcon(), func() {
		mw.inPort = portValue(inPortSelect.Selected)
		mw.outPort = portValue(outPortSelect.Selected)
		if ch, err := strconv.Atoi(channelSelect.Selected); err == nil {
			mw.channel = ch
			mw.dispatcher.Channel = ch
		}
		mw.InitializeDevice()
	})
	connectBtn.Importance = widget.HighImportance

	form := widget.NewForm(
		widget.NewFormItem("Input Port", inPortSelect),
		widget.NewFormItem("Output Port", outPortSelect),
		widget.NewFormItem("Channel", channelSelect),
	)

	statusHeader := widget.NewLabel("Live State")
	statusHeader.TextStyle = fyne.TextStyle{Bold: true}
	mw.connLabel = widget.NewLabel("Disconnected")
	mw.layerLabel = widget.NewLabel("-")
	mw.profileLabel = widget.NewLabel("-")
	status := widget.NewForm(
		widget.NewFormItem("Connection", mw.connLabel),
		widget.NewFormItem("Layer", mw.layerLabel),
		widget.NewFormItem("Profile", mw.profileLabel),
	)

	return container.NewVBox(
		header,
		widget.NewSeparator(),
		form,
		container.NewHBox(rescanBtn, connectBtn),
		widget.NewSeparator(),
		statusHeader,
		status,
	)
}

func portOption(port string) string {
	if port == "" {
		return noPort
	}
	return port
}

func portValue(option string) string {
	if option == noPort {
		return ""
	}
	return option
}

// ============ MIDI ============

// InitializeDevice clears the controller's LEDs, lights the bound buttons
// and starts listening for input
func (mw *MainWindow) InitializeDevice() {
	if mw.outPort != "" {
		if err := mw.midiManager.Reset(mw.outPort, mw.channel); err != nil {
			log.Printf("Failed to reset %s: %v", mw.outPort, err)
		}
	}
	mw.sendBindingsToDevice()
	mw.StartMIDIListener()
}

// StartMIDIListener begins listening on the configured input port
func (mw *MainWindow) StartMIDIListener() {
	mw.StopMIDIListener() // Stop any existing listener

	if mw.inPort == "" {
		return
	}
	stop, err := mw.midiManager.StartListening(mw.inPort, mw.handleLiveEvent)
	if err != nil {
		log.Printf("Failed to start listener for %s: %v", mw.inPort, err)
		mw.connLabel.SetText("Failed: " + err.Error())
		return
	}
	mw.midiStop = stop
}

// StopMIDIListener stops the MIDI input listener
func (mw *MainWindow) StopMIDIListener() {
	if mw.midiStop != nil {
		mw.midiStop()
		mw.midiStop = nil
	}
}

// feedRetry is the pause before resubscribing to a dropped event feed
const feedRetry = 5 * time.Second

// FollowFeed handles the events of a config server's feed the same way as
// local MIDI input, resubscribing until ctx ends
func (mw *MainWindow) FollowFeed(ctx context.Context, feed *live.Feed) {
	for {
		err := feed.Subscribe(ctx, mw.handleLiveEvent)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Printf("Event feed: %v", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(feedRetry):
		}
	}
}

// handleLiveEvent runs on the MIDI driver's or the feed's goroutine
func (mw *MainWindow) handleLiveEvent(ev live.Event) {
	mw.dispatcher.Handle(ev)

	switch ev := ev.(type) {
	case live.NoteOn:
		mw.pressFeedback(ev.Note, ev.Velocity > 0)
	case live.NoteOff:
		mw.pressFeedback(ev.Note, false)
	}

	fyne.Do(func() {
		mw.refreshLiveTile(ev)
		mw.refreshLiveStatus()
	})
}

// pressFeedback lights a held button green and restores its resting colour
// on release
func (mw *MainWindow) pressFeedback(note uint8, pressed bool) {
	if mw.outPort == "" {
		return
	}
	led := live.LEDState{Note: note, On: true, Color: "green"}
	if !pressed {
		led = mw.restingLED(note)
	}
	if err := mw.midiManager.SetLED(mw.outPort, mw.channel, led); err != nil {
		log.Printf("Failed to set LED: %v", err)
	}
}

// restingLED is amber for bound buttons and off otherwise
func (mw *MainWindow) restingLED(note uint8) live.LEDState {
	c, ok := k2.ByNote(int(note))
	if !ok {
		return live.LEDState{Note: note}
	}
	if _, bound := mw.engine.Binding(c); bound {
		return live.LEDState{Note: note, On: true, Color: "amber"}
	}
	return live.LEDState{Note: note}
}

// sendBindingsToDevice lights every bound button
func (mw *MainWindow) sendBindingsToDevice() {
	if mw.outPort == "" {
		return
	}
	for _, c := range k2.Controls() {
		for _, n := range []*int{c.Note, c.PushNote} {
			if n == nil || c.IsSpecial() {
				continue
			}
			led := mw.restingLED(uint8(*n))
			if err := mw.midiManager.SetLED(mw.outPort, mw.channel, led); err != nil {
				log.Printf("Failed to set LED: %v", err)
				return
			}
			if mw.state != nil {
				mw.state.Apply(led)
			}
		}
	}
}

func (mw *MainWindow) refreshLiveTile(ev live.Event) {
	var id string
	switch ev := ev.(type) {
	case live.NoteOn:
		if c, ok := k2.ByNote(int(ev.Note)); ok {
			id = c.ID
		}
	case live.NoteOff:
		if c, ok := k2.ByNote(int(ev.Note)); ok {
			id = c.ID
		}
	case live.ControlChange:
		if c, ok := k2.ByCC(int(ev.CC)); ok {
			id = c.ID
		}
	}
	if t := mw.tileFor(id); t != nil {
		t.Refresh()
	}
}

func (mw *MainWindow) refreshLiveStatus() {
	if mw.state == nil {
		return
	}
	snap := mw.state.Snapshot()
	if snap.Connected {
		mw.connLabel.SetText("Connected to " + snap.Port)
	} else {
		mw.connLabel.SetText("Disconnected")
	}
	mw.layerLabel.SetText(fmt.Sprintf("%d", snap.Layer))
	if snap.Profile != "" {
		mw.profileLabel.SetText(snap.Profile)
	}
}
