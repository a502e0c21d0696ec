// ABOUTME: Entry point for the binaural beat engine
// ABOUTME: Wires config, engine, TUI, control API, discovery and lifecycle
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/config"
	"github.com/Binaural-Lab/binaural-go/internal/device"
	"github.com/Binaural-Lab/binaural-go/internal/discovery"
	"github.com/Binaural-Lab/binaural-go/internal/engine"
	"github.com/Binaural-Lab/binaural-go/internal/lifecycle"
	"github.com/Binaural-Lab/binaural-go/internal/remote"
	"github.com/Binaural-Lab/binaural-go/internal/stream"
	"github.com/Binaural-Lab/binaural-go/internal/ui"
	"github.com/Binaural-Lab/binaural-go/internal/version"
	"github.com/Binaural-Lab/binaural-go/internal/wakelock"
)

func main() {
	cfg := config.Load()

	flag.StringVar(&cfg.HTTPAddr, "addr", cfg.HTTPAddr, "Control API listen address, empty disables it")
	flag.StringVar(&cfg.Name, "name", cfg.Name, "Instance name for discovery and the TUI header")
	flag.StringVar(&cfg.PresetFile, "presets", cfg.PresetFile, "YAML preset file merged over the built-ins")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path (default binaural.log with the TUI)")
	flag.BoolVar(&cfg.BackgroundMode, "background-mode", cfg.BackgroundMode, "Keep playing when the terminal loses focus")
	flag.BoolVar(&cfg.WakeLock, "wake-lock", cfg.WakeLock, "Hold a system idle inhibitor while playing")
	flag.IntVar(&cfg.SampleRate, "sample-rate", cfg.SampleRate, "Output sample rate in Hz")
	flag.IntVar(&cfg.BufferMs, "buffer-ms", cfg.BufferMs, "Device buffer depth in milliseconds")
	noTUI := flag.Bool("no-tui", false, "Disable the TUI, stream logs instead")
	noMDNS := flag.Bool("no-mdns", !cfg.Advertise, "Disable mDNS advertisement")
	preset := flag.String("preset", "", "Apply a named preset at startup")
	play := flag.Bool("play", false, "Start playback immediately")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	useTUI := !*noTUI
	if useTUI && cfg.LogFile == "" {
		cfg.LogFile = "binaural.log"
	}

	logger, err := buildLogger(cfg.LogFile, useTUI, *debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("binaural engine starting",
		zap.String("version", version.Version),
		zap.String("name", cfg.Name),
		zap.Int("sampleRate", cfg.SampleRate),
		zap.String("addr", cfg.HTTPAddr),
	)

	catalog := band.BuiltinCatalog()
	if cfg.PresetFile != "" {
		if err := catalog.LoadFile(cfg.PresetFile); err != nil {
			logger.Fatal("failed to load presets", zap.Error(err))
		}
		logger.Info("loaded preset file",
			zap.String("path", cfg.PresetFile),
			zap.Int("presets", catalog.Len()),
		)
	}

	locker := wakelock.Locker(wakelock.Noop{})
	if cfg.WakeLock {
		locker = wakelock.New(logger)
	}

	caster := stream.NewBroadcaster()
	eng := engine.New(engine.Config{
		SampleRate:  cfg.SampleRate,
		RampMs:      cfg.RampMs,
		Device:      device.NewOto(cfg.SampleRate, cfg.BufferMs, logger),
		Locker:      locker,
		Catalog:     catalog,
		Logger:      logger,
		Broadcaster: caster,
	})

	if *preset != "" && !eng.SetPreset(*preset) {
		logger.Warn("unknown preset", zap.String("name", *preset))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var srv *remote.Server
	remoteAddr := ""
	if cfg.HTTPAddr != "" {
		srv = remote.New(remote.Config{
			Addr:        cfg.HTTPAddr,
			Engine:      eng,
			Broadcaster: caster,
			Logger:      logger,
		})
		if err := srv.Start(); err != nil {
			logger.Fatal("control API failed to start", zap.Error(err))
		}
		remoteAddr = srv.Addr()
		logger.Info("control API listening", zap.String("addr", remoteAddr))
	}

	var disc *discovery.Manager
	if srv != nil && !*noMDNS {
		if port, err := listenPort(srv.Addr()); err != nil {
			logger.Warn("cannot derive mdns port", zap.Error(err))
		} else {
			disc = discovery.NewManager(discovery.Config{
				InstanceName: cfg.Name,
				Port:         port,
				Logger:       logger,
			})
			if err := disc.Advertise(); err != nil {
				logger.Warn("mdns advertisement failed", zap.Error(err))
				disc = nil
			}
		}
	}

	monitor := lifecycle.New(lifecycle.Config{
		Engine:         eng,
		Logger:         logger,
		BackgroundMode: cfg.BackgroundMode,
	})

	if *play {
		if err := eng.Start(); err != nil {
			logger.Error("initial playback failed", zap.Error(err))
		}
	}

	if useTUI {
		runTUI(ctx, eng, monitor, cfg.Name, remoteAddr, logger)
	} else {
		runHeadless(ctx, monitor, logger)
	}

	logger.Info("shutting down")
	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("control API shutdown failed", zap.Error(err))
		}
		cancel()
	}
	if disc != nil {
		disc.Stop()
	}
	if err := eng.Close(); err != nil {
		logger.Error("engine close failed", zap.Error(err))
	}
	logger.Info("stopped")
}

// runTUI owns the terminal until the user quits or the context ends.
func runTUI(ctx context.Context, eng *engine.Engine, monitor *lifecycle.Monitor, name, addr string, logger *zap.Logger) {
	visibility := lifecycle.NewChanSource()
	defer visibility.Close()
	go monitor.Run(ctx, visibility)

	prog := ui.Run(ui.NewModel(eng, visibility, name, addr))

	sub := eng.Subscribe()
	defer eng.Unsubscribe(sub)
	go ui.Forward(prog, sub)

	// Events published before the subscription, like a -play start, never
	// reach the forwarder. Seed the display with a snapshot instead.
	go func() {
		snap := eng.Snapshot()
		prog.Send(ui.StatusMsg{
			State:   snap.State,
			Params:  &snap.Params,
			LeftHz:  snap.LeftHz,
			RightHz: snap.RightHz,
			Elapsed: snap.Elapsed,
		})
	}()

	go func() {
		<-ctx.Done()
		prog.Quit()
	}()

	if _, err := prog.Run(); err != nil {
		logger.Error("tui failed", zap.Error(err))
	}
}

// runHeadless blocks until a shutdown signal arrives. SIGUSR1 and SIGUSR2
// drive the visibility monitor in place of terminal focus events.
func runHeadless(ctx context.Context, monitor *lifecycle.Monitor, logger *zap.Logger) {
	signals := lifecycle.NewSignalSource()
	defer signals.Close()
	go monitor.Run(ctx, signals)

	logger.Info("running headless")
	<-ctx.Done()
}

// buildLogger routes logs away from the terminal while the TUI owns it.
func buildLogger(logFile string, useTUI, debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	if useTUI {
		cfg.OutputPaths = []string{logFile}
		cfg.ErrorOutputPaths = []string{logFile}
	} else if logFile != "" {
		cfg.OutputPaths = []string{"stdout", logFile}
		cfg.ErrorOutputPaths = []string{"stderr", logFile}
	}
	return cfg.Build()
}

func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
