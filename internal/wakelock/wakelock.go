// ABOUTME: Best-effort display/idle wake lock held during playback
// ABOUTME: Backed by a platform inhibitor child process, no-op elsewhere
package wakelock

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrUnavailable indicates the platform offers no usable inhibitor.
var ErrUnavailable = errors.New("wake lock unavailable")

// Locker is an optional capability: failures are logged by callers and
// never fatal. The platform may revoke a held lock at any time; Release
// on a revoked lock succeeds silently, and no implementation re-acquires
// on its own.
type Locker interface {
	Acquire() error
	Release() error
	Held() bool
}

// Noop is the Locker used when the capability is absent or disabled.
type Noop struct{}

func (Noop) Acquire() error { return nil }
func (Noop) Release() error { return nil }
func (Noop) Held() bool     { return false }

// New picks the platform inhibitor: systemd-inhibit on Linux, caffeinate
// on macOS, nothing elsewhere.
func New(logger *zap.Logger) Locker {
	switch runtime.GOOS {
	case "linux":
		if path, err := exec.LookPath("systemd-inhibit"); err == nil {
			return NewExec(path, []string{
				"--what=idle",
				"--who=Binaural Engine",
				"--why=Audio playback active",
				"--mode=block",
				"sleep", "infinity",
			}, logger)
		}
	case "darwin":
		if path, err := exec.LookPath("caffeinate"); err == nil {
			return NewExec(path, []string{"-d", "-i"}, logger)
		}
	}
	logger.Info("no wake lock backend available, running without one")
	return Noop{}
}

// Exec holds the lock by keeping an inhibitor child process alive.
type Exec struct {
	path   string
	args   []string
	logger *zap.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	cancel context.CancelFunc
	exited atomic.Bool
}

// NewExec creates a process-backed locker. Exported for tests that
// substitute an arbitrary long-running command.
func NewExec(path string, args []string, logger *zap.Logger) *Exec {
	return &Exec{path: path, args: args, logger: logger}
}

// Acquire starts the inhibitor process. Holding twice is a no-op.
func (l *Exec) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd != nil && !l.exited.Load() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, l.path, l.args...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	l.cmd = cmd
	l.cancel = cancel
	l.exited.Store(false)

	// Reap the child. An external exit means the platform revoked the
	// lock; that is tolerated and not re-acquired.
	go func() {
		err := cmd.Wait()
		if l.exited.CompareAndSwap(false, true) && err != nil {
			l.logger.Debug("wake lock process exited", zap.Error(err))
		}
	}()

	l.logger.Info("wake lock acquired", zap.String("backend", l.path))
	return nil
}

// Release kills the inhibitor process if it is still ours to kill.
func (l *Exec) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cmd == nil {
		return nil
	}
	l.cancel()
	l.cmd = nil
	l.cancel = nil
	l.logger.Info("wake lock released")
	return nil
}

// Held reports whether the inhibitor process is currently alive.
func (l *Exec) Held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cmd != nil && !l.exited.Load()
}
