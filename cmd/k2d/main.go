// k2d is the config server of the K2 controller editor. It keeps the
// mapping document in a JSON file and serves it over a small REST API:
//
//	GET  /health       liveness
//	GET  /api/config   the whole document
//	PUT  /api/config   replace the document
//	GET  /api/actions  the action palette
//	GET  /api/events   live event stream (newline-delimited JSON)
//	POST /api/events   publish one live event
//
// With --midi-in, k2d also bridges a locally attached controller onto the
// event stream.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/j0KZ/K2-controller-design-sub000/internal/config"
	"github.com/j0KZ/K2-controller-design-sub000/internal/live"
	"github.com/j0KZ/K2-controller-design-sub000/internal/midi"
	"github.com/j0KZ/K2-controller-design-sub000/internal/server"
	"github.com/j0KZ/K2-controller-design-sub000/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flagSet := pflag.NewFlagSet("k2d", pflag.ContinueOnError)
	flagSet.StringVar(&settings.ListenAddr, "addr", settings.ListenAddr, "address to listen on")
	flagSet.StringVar(&settings.DocumentPath, "config", settings.DocumentPath, "path of the mapping document")
	flagSet.StringVar(&settings.MidiIn, "midi-in", settings.MidiIn, "MIDI input port to publish on the event stream")
	flagSet.StringVar(&settings.DeviceType, "device", settings.DeviceType, "controller type (k2, generic)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	api := server.New(store.NewFile(settings.DocumentPath))
	srv := &http.Server{
		Addr:              settings.ListenAddr,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	if settings.MidiIn != "" {
		manager := midi.NewManager(midi.DeviceType(settings.DeviceType))
		defer manager.Close()
		stopListening, err := manager.StartListening(settings.MidiIn, func(ev live.Event) {
			if err := api.Publish(ev); err != nil {
				log.Printf("Failed to publish event: %v", err)
			}
		})
		if err != nil {
			return fmt.Errorf("bridge %s: %w", settings.MidiIn, err)
		}
		defer stopListening()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Serving %s on %s", settings.DocumentPath, settings.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
