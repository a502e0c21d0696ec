// ABOUTME: Tests for the wake lock implementations
// ABOUTME: Uses plain sleep processes in place of platform inhibitors
package wakelock

import (
	"errors"
	"os/exec"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestNoop(t *testing.T) {
	var l Locker = Noop{}
	if err := l.Acquire(); err != nil {
		t.Errorf("Acquire failed: %v", err)
	}
	if l.Held() {
		t.Error("expected Noop to never report held")
	}
	if err := l.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
}

func TestExecAcquireRelease(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	l := NewExec(path, []string{"60"}, zap.NewNop())

	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !l.Held() {
		t.Error("expected lock held after acquire")
	}

	// Second acquire while held is a no-op.
	if err := l.Acquire(); err != nil {
		t.Errorf("re-acquire failed: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Errorf("Release failed: %v", err)
	}
	if l.Held() {
		t.Error("expected lock not held after release")
	}

	// Releasing again stays silent.
	if err := l.Release(); err != nil {
		t.Errorf("double release failed: %v", err)
	}
}

func TestExecToleratesRevocation(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}

	// A short-lived process simulates the platform revoking the lock.
	l := NewExec(path, []string{"0.05"}, zap.NewNop())
	if err := l.Acquire(); err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for l.Held() {
		select {
		case <-deadline:
			t.Fatal("expected revoked lock to report not held")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Release after revocation must not error.
	if err := l.Release(); err != nil {
		t.Errorf("Release after revocation failed: %v", err)
	}
}

func TestExecMissingBinary(t *testing.T) {
	l := NewExec("/nonexistent/inhibitor", nil, zap.NewNop())
	err := l.Acquire()
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if l.Held() {
		t.Error("expected lock not held after failed acquire")
	}
}
