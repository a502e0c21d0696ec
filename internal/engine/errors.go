// ABOUTME: Sentinel errors for invalid transitions and missing capabilities
// ABOUTME: Callers branch with errors.Is; none of these are fatal
package engine

import "errors"

var (
	// ErrAlreadyRunning is returned by Start while a session is active.
	// The live session is left untouched.
	ErrAlreadyRunning = errors.New("playback already running")

	// ErrNotRunning is returned by operations that require an active
	// session. Stop and Pause deliberately do not use it; stopping an
	// idle engine is a defined no-op.
	ErrNotRunning = errors.New("playback not running")

	// ErrAudioUnavailable wraps output device failures. Recoverable: the
	// engine stays Idle and the user can retry.
	ErrAudioUnavailable = errors.New("audio output unavailable")

	// ErrInvalidParameter marks values the model had to clamp. Parameters
	// are corrected and playback continues; the error is informational.
	ErrInvalidParameter = errors.New("invalid parameter")
)
