// ABOUTME: Applies visibility transitions to the engine: suspend, resume, warn
// ABOUTME: Sources feed it; policy lives here, device mechanics in the engine
package lifecycle

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/internal/engine"
)

// Visibility is the host application's foreground/background state.
type Visibility int

const (
	Foreground Visibility = iota
	Background
)

func (v Visibility) String() string {
	switch v {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return "unknown"
	}
}

// Source emits visibility transitions from wherever the host learns about
// them: terminal focus events, process signals, or platform callbacks.
type Source interface {
	Changes() <-chan Visibility
}

// Config assembles a monitor.
type Config struct {
	Engine *engine.Engine
	Logger *zap.Logger

	// BackgroundMode keeps audio playing while backgrounded. When false,
	// going to the background suspends output and returning resumes it.
	BackgroundMode bool

	// GOOS overrides the platform check. Empty means runtime.GOOS.
	GOOS string
}

// Monitor turns visibility transitions into engine actions. Backgrounding
// either suspends output or keeps playing per policy; foregrounding always
// resumes and then reconciles, because platforms can kill audio behind a
// backgrounded process without any notification.
type Monitor struct {
	engine         *engine.Engine
	logger         *zap.Logger
	backgroundMode bool
	goos           string
}

// New creates a monitor. A nil logger is replaced with a no-op one.
func New(cfg Config) *Monitor {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	return &Monitor{
		engine:         cfg.Engine,
		logger:         cfg.Logger,
		backgroundMode: cfg.BackgroundMode,
		goos:           cfg.GOOS,
	}
}

// Run consumes transitions until the context ends or the source closes.
func (m *Monitor) Run(ctx context.Context, src Source) {
	for {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-src.Changes():
			if !ok {
				return
			}
			m.Apply(v)
		}
	}
}

// Apply handles a single visibility transition.
func (m *Monitor) Apply(v Visibility) {
	switch v {
	case Background:
		m.onBackground()
	case Foreground:
		m.onForeground()
	}
}

func (m *Monitor) onBackground() {
	if !m.engine.IsRunning() {
		return
	}
	if !m.backgroundMode {
		m.logger.Info("backgrounded with background playback disabled, suspending output")
		m.engine.SuspendOutput()
		return
	}
	if mobilePlatform(m.goos) {
		// Mobile platforms reserve the right to stop audio from a
		// backgrounded process. We keep playing and warn instead of
		// preemptively stopping.
		m.logger.Warn("backgrounded on a platform that may stop audio",
			zap.String("goos", m.goos))
		m.engine.Notify(engine.NoticeWarning, "audio may stop while in the background")
		return
	}
	m.logger.Debug("backgrounded, continuing playback")
}

func (m *Monitor) onForeground() {
	m.logger.Debug("foregrounded, resuming and reconciling")
	m.engine.ResumeOutput()
	m.engine.Reconcile()
}

func mobilePlatform(goos string) bool {
	return goos == "android" || goos == "ios"
}
