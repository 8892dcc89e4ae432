package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register rtmidi driver
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/PixPMusic/nanokontrol-bridge/internal/config"
	"github.com/PixPMusic/nanokontrol-bridge/internal/host/osc"
	"github.com/PixPMusic/nanokontrol-bridge/internal/logging"
	"github.com/PixPMusic/nanokontrol-bridge/internal/midi"
	"github.com/PixPMusic/nanokontrol-bridge/internal/surface"
	"github.com/PixPMusic/nanokontrol-bridge/internal/timer"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	configPath := flag.String("config", "", "config file (default: user config dir)")
	listPorts := flag.Bool("list", false, "print MIDI ports and exit")
	writeConfig := flag.Bool("write-config", false, "write the effective config and exit")
	flag.Parse()

	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if *configPath == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(*configPath)
	}
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	if *writeConfig {
		if *configPath == "" {
			err = cfg.Save()
		} else {
			err = cfg.SaveFile(*configPath)
		}
		if err != nil {
			log.Printf("Failed to save config: %v", err)
			return 1
		}
		return 0
	}

	midiManager := midi.NewManager()
	defer midiManager.Close()

	if *listPorts {
		printPorts(midiManager)
		return 0
	}

	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid config: %v", err)
		return 1
	}
	mask, err := cfg.DebugMask()
	if err != nil {
		log.Printf("Invalid config: %v", err)
		return 1
	}
	logger, err := logging.New(cfg.Log.Level, mask)
	if err != nil {
		log.Printf("Failed to create logger: %v", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting",
		zap.String("device", cfg.Device.Name),
		zap.String("deviceId", cfg.Device.ID))
	if err := run(ctx, cfg, midiManager, logger); err != nil {
		logger.Error("bridge stopped", zap.Error(err))
		return 1
	}
	logger.Info("stopped")
	return 0
}

// run wires the surface between the MIDI ports and the OSC host and blocks
// until ctx is cancelled or the notification server fails
func run(ctx context.Context, cfg *config.Config, midiManager *midi.Manager, logger *zap.Logger) error {
	send, err := midiManager.Sender(cfg.Device.OutPort)
	if err != nil {
		return err
	}

	client, err := osc.NewClient(cfg.Host.SendAddr, logger.Named("host"))
	if err != nil {
		return err
	}

	timers := timer.NewService()
	defer timers.Close()

	opts, err := cfg.SurfaceOptions()
	if err != nil {
		return err
	}
	s := surface.New(client, send, timers, append(opts, surface.WithLogger(logger))...)

	server, err := osc.NewServer(cfg.Host.ListenAddr, s, logger.Named("notifications"))
	if err != nil {
		return err
	}

	stopListening, err := midiManager.StartListening(cfg.Device.InPort, func(msg gomidi.Message) {
		s.Dispatch(msg)
	})
	if err != nil {
		return err
	}

	s.Initialize()
	s.InitializeDevice()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx)
	}()

	var errs error
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		errs = multierr.Append(errs, <-serveErr)
	case err := <-serveErr:
		errs = multierr.Append(errs, err)
	}

	s.Shutdown()
	stopListening()
	return errs
}

func printPorts(m *midi.Manager) {
	fmt.Println("MIDI inputs:")
	for _, name := range m.ListInPorts() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("MIDI outputs:")
	for _, name := range m.ListOutPorts() {
		fmt.Printf("  %s\n", name)
	}
}
