// ABOUTME: Bubbletea model for the tone generator TUI
// ABOUTME: Keys drive the engine; state flows back in through StatusMsg
package ui

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Binaural-Lab/binaural-go/internal/band"
	"github.com/Binaural-Lab/binaural-go/internal/lifecycle"
)

// Controller is the slice of engine behavior the keyboard needs. The real
// engine satisfies it; tests substitute a recorder.
type Controller interface {
	TogglePlayback() error
	Stop()
	SetCarrier(hz float64)
	SetBeat(hz float64)
	SetVolume(percent float64)
	SetBand(name string) bool
	SetPreset(name string) bool
	Parameters() band.Parameters
	Presets() []band.Preset
}

const (
	volumeStep  = 5.0
	beatStep    = 0.5
	carrierStep = 10.0
)

// Model represents the TUI state. Keys issue engine commands; the model
// itself only changes when engine events arrive as StatusMsg, so what the
// screen shows is always what the engine is actually doing.
type Model struct {
	ctrl       Controller
	visibility *lifecycle.ChanSource

	// Identity
	name string
	addr string

	// Engine state
	state   string
	carrier float64
	beat    float64
	volume  float64
	leftHz  float64
	rightHz float64
	elapsed string

	// Transient message line
	notice      string
	noticeLevel string

	// Dimensions
	width  int
	height int
}

// NewModel creates a model seeded from the controller's current readings.
// visibility may be nil when no lifecycle monitor is attached.
func NewModel(ctrl Controller, visibility *lifecycle.ChanSource, name, addr string) Model {
	m := Model{
		ctrl:       ctrl,
		visibility: visibility,
		name:       name,
		addr:       addr,
		state:      "idle",
		elapsed:    "00:00",
	}
	if ctrl != nil {
		p := ctrl.Parameters()
		m.carrier = p.CarrierHz
		m.beat = p.BeatHz
		m.volume = p.VolumePercent
		m.leftHz, m.rightHz = p.Channels()
	}
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.FocusMsg:
		if m.visibility != nil {
			m.visibility.Push(lifecycle.Foreground)
		}
	case tea.BlurMsg:
		if m.visibility != nil {
			m.visibility.Push(lifecycle.Background)
		}
	case StatusMsg:
		m.applyStatus(msg)
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.ctrl == nil {
		if s := msg.String(); s == "q" || s == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.ctrl.TogglePlayback()
	case "s":
		m.ctrl.Stop()
	case "up":
		m.ctrl.SetVolume(m.volume + volumeStep)
	case "down":
		m.ctrl.SetVolume(m.volume - volumeStep)
	case "right":
		m.ctrl.SetBeat(m.beat + beatStep)
	case "left":
		m.ctrl.SetBeat(m.beat - beatStep)
	case "]":
		m.ctrl.SetCarrier(m.carrier + carrierStep)
	case "[":
		m.ctrl.SetCarrier(m.carrier - carrierStep)
	case "b":
		m.ctrl.SetBand(m.nextBand())
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		presets := m.ctrl.Presets()
		idx := int(msg.String()[0] - '1')
		if idx < len(presets) {
			m.ctrl.SetPreset(presets[idx].Name)
		}
	}

	return m, nil
}

// nextBand cycles through the band list from the current beat frequency.
func (m Model) nextBand() string {
	current, ok := band.For(m.beat)
	if !ok {
		return band.Bands[0].Name
	}
	for i, b := range band.Bands {
		if b.Name == current.Name {
			return band.Bands[(i+1)%len(band.Bands)].Name
		}
	}
	return band.Bands[0].Name
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.State != "" {
		m.state = msg.State
	}
	if msg.Params != nil {
		m.carrier = msg.Params.CarrierHz
		m.beat = msg.Params.BeatHz
		m.volume = msg.Params.VolumePercent
		m.leftHz = msg.LeftHz
		m.rightHz = msg.RightHz
	}
	if msg.Elapsed != "" {
		m.elapsed = msg.Elapsed
	}
	if msg.Notice != "" {
		m.notice = msg.Notice
		m.noticeLevel = msg.NoticeLevel
	}
}

// StatusMsg updates TUI state. Zero fields leave the model untouched so
// partial event payloads can be forwarded as-is.
type StatusMsg struct {
	State       string
	Params      *band.Parameters
	LeftHz      float64
	RightHz     float64
	Elapsed     string
	Notice      string
	NoticeLevel string
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	s := ""
	s += m.renderHeader()
	s += m.renderTone()
	s += m.renderWave()
	s += m.renderNotice()
	s += m.renderHelp()

	return s
}

// interiorWidth is the box interior in terminal cells. Every glyph the
// view emits is single-cell, so runes count as cells.
const interiorWidth = 52

// row frames one interior line of the box.
func row(content string) string {
	r := []rune(content)
	if len(r) > interiorWidth {
		r = append(r[:interiorWidth-3], []rune("...")...)
	}
	return "│ " + string(r) + strings.Repeat(" ", interiorWidth-len(r)) + " │\n"
}

func separator(left, right string) string {
	return left + strings.Repeat("─", interiorWidth+2) + right + "\n"
}

// renderHeader renders the title bar and playback state
func (m Model) renderHeader() string {
	stateIcon := "■"
	if m.state == "running" {
		stateIcon = "▶"
	}

	title := m.name
	if title == "" {
		title = "Binaural Engine"
	}

	dashes := max(0, interiorWidth-1-utf8.RuneCountInString(title))
	s := "┌─ " + title + " " + strings.Repeat("─", dashes) + "┐\n"
	s += row(fmt.Sprintf("State:   %s %-8s          Elapsed: %s", stateIcon, m.state, m.elapsed))
	s += row(m.bandLine())
	if m.addr != "" {
		s += row("Remote:  http://" + m.addr)
	}
	s += separator("├", "┤")
	return s
}

// bandLine names the band the current beat falls in.
func (m Model) bandLine() string {
	b, ok := band.For(m.beat)
	if !ok {
		return fmt.Sprintf("Band:    custom (%.1f Hz beat)", m.beat)
	}
	return fmt.Sprintf("Band:    %s (%g-%g Hz)", b.Name, b.MinHz, b.MaxHz)
}

// renderTone renders the frequency and volume readouts
func (m Model) renderTone() string {
	volumeBar := renderBar(int(m.volume), 100, 10)

	s := row(fmt.Sprintf("Carrier: %7.1f Hz", m.carrier))
	s += row(fmt.Sprintf("Beat:    %7.1f Hz   (L %.1f Hz / R %.1f Hz)", m.beat, m.leftHz, m.rightHz))
	s += row(fmt.Sprintf("Volume:  [%s] %3.0f%%", volumeBar, m.volume))
	return s
}

// waveGlyphs maps a 0..1 amplitude onto eighth-block characters.
var waveGlyphs = []rune("▁▂▃▄▅▆▇█")

// renderWave draws a decorative trace of each channel's tone, plotted
// from the parameters rather than the rendered audio.
func (m Model) renderWave() string {
	amp := m.volume / 100
	if m.state != "running" {
		amp = 0
	}
	s := row("L " + waveString(m.leftHz, amp, interiorWidth-2))
	s += row("R " + waveString(m.rightHz, amp, interiorWidth-2))
	return s
}

// waveString plots width cells of a sine at the given amplitude. The
// cycle count scales with frequency, so higher tones read as denser
// traces and the two channels drift apart as the beat widens.
func waveString(hz, amp float64, width int) string {
	cycles := hz / 100
	if cycles < 1 {
		cycles = 1
	}
	if cycles > 12 {
		cycles = 12
	}
	out := make([]rune, width)
	for x := range out {
		phase := 2 * math.Pi * cycles * float64(x) / float64(width)
		v := (math.Sin(phase)*amp + 1) / 2
		out[x] = waveGlyphs[int(v*float64(len(waveGlyphs)-1)+0.5)]
	}
	return string(out)
}

// renderNotice renders the transient message line
func (m Model) renderNotice() string {
	if m.notice == "" {
		return row("")
	}
	icon := ""
	switch m.noticeLevel {
	case "warning":
		icon = "⚠ "
	case "error":
		icon = "✗ "
	}
	return row(icon + m.notice)
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	s := separator("├", "┤")
	s += row("space:Play/Pause  s:Stop  ↑/↓:Volume  ←/→:Beat")
	s += row("[/]:Carrier  b:Band  1-4:Preset  q:Quit")
	s += separator("└", "┘")
	return s
}

// Utility functions
func renderBar(value, max, width int) string {
	if value > max {
		value = max
	}
	if value < 0 {
		value = 0
	}
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}
