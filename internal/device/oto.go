// ABOUTME: Audio output device backed by the oto library
// ABOUTME: Opens pull-model lines that render float32 frames on demand
package device

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"go.uber.org/zap"

	"github.com/Binaural-Lab/binaural-go/pkg/audio"
)

// Oto is the hardware output device. The underlying oto context is
// created lazily on the first Start, so a machine without usable audio
// fails at playback time with a recoverable error instead of at program
// start. oto contexts cannot be destroyed, only suspended, so Close maps
// to Suspend.
type Oto struct {
	sampleRate int
	bufferSize time.Duration
	logger     *zap.Logger

	mu     sync.Mutex
	otoCtx *oto.Context
}

// NewOto creates a device for the given sample rate and buffer depth.
func NewOto(sampleRate, bufferMs int, logger *zap.Logger) *Oto {
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	return &Oto{
		sampleRate: sampleRate,
		bufferSize: time.Duration(bufferMs) * time.Millisecond,
		logger:     logger,
	}
}

func (d *Oto) context() (*oto.Context, error) {
	if d.otoCtx != nil {
		return d.otoCtx, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   d.sampleRate,
		ChannelCount: audio.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   d.bufferSize,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	d.otoCtx = ctx
	d.logger.Info("audio output initialized",
		zap.Int("sample_rate", d.sampleRate),
		zap.Int("channels", audio.Channels))

	return ctx, nil
}

// Start opens a new output line pulling from render.
func (d *Oto) Start(render audio.RenderFunc) (audio.Line, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	ctx, err := d.context()
	if err != nil {
		return nil, err
	}

	player := ctx.NewPlayer(&pullReader{render: render})
	player.Play()

	return &otoLine{player: player}, nil
}

// Suspend halts the device without destroying open lines.
func (d *Oto) Suspend() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.otoCtx == nil {
		return nil
	}
	return d.otoCtx.Suspend()
}

// Resume restarts a suspended device.
func (d *Oto) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.otoCtx == nil {
		return nil
	}
	return d.otoCtx.Resume()
}

// Close suspends the device; oto offers no way to tear a context down.
func (d *Oto) Close() error {
	return d.Suspend()
}

// otoLine wraps one oto player. Closed players cannot be restarted.
type otoLine struct {
	mu     sync.Mutex
	player *oto.Player
	closed bool
}

func (l *otoLine) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	return l.player.IsPlaying()
}

func (l *otoLine) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.player.Close(); err != nil {
		return fmt.Errorf("failed to close output line: %w", err)
	}
	return nil
}

// pullReader adapts a RenderFunc to the io.Reader oto players consume,
// encoding float32 samples little-endian.
type pullReader struct {
	render audio.RenderFunc
	buf    []float32
}

const bytesPerSample = 4

func (r *pullReader) Read(p []byte) (int, error) {
	frames := len(p) / (bytesPerSample * audio.Channels)
	if frames == 0 {
		return 0, nil
	}

	n := frames * audio.Channels
	if cap(r.buf) < n {
		r.buf = make([]float32, n)
	}
	samples := r.buf[:n]
	r.render(samples)

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(s))
	}
	return n * bytesPerSample, nil
}
