// ABOUTME: TUI program setup and the engine-event to StatusMsg bridge
// ABOUTME: Focus reporting feeds the lifecycle monitor's visibility source
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Binaural-Lab/binaural-go/internal/engine"
)

// Run builds the bubbletea program in the alternate screen. Focus
// reporting is enabled so terminal focus drives the lifecycle monitor.
func Run(m Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
}

// StatusFromEvent converts an engine event into the TUI's status message.
func StatusFromEvent(ev engine.Event) StatusMsg {
	msg := StatusMsg{}
	switch ev.Kind {
	case engine.EventState:
		msg.State = ev.State.String()
		p := ev.Params
		msg.Params = &p
		msg.LeftHz = ev.LeftHz
		msg.RightHz = ev.RightHz
		msg.Elapsed = ev.Elapsed
	case engine.EventParams:
		p := ev.Params
		msg.Params = &p
		msg.LeftHz = ev.LeftHz
		msg.RightHz = ev.RightHz
	case engine.EventElapsed:
		msg.Elapsed = ev.Elapsed
	case engine.EventNotice:
		msg.Notice = ev.Notice
		msg.NoticeLevel = ev.Level.String()
	}
	return msg
}

// Forward pumps engine events into a running program until the
// subscription is closed. Run it on its own goroutine.
func Forward(p *tea.Program, sub *engine.Subscription) {
	for {
		select {
		case <-sub.Done():
			return
		case ev := <-sub.C:
			p.Send(StatusFromEvent(ev))
		}
	}
}
