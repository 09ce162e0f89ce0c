package feed

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalframes/frames"
)

// runEffects turns controller effects into commands. A start request is
// issued ahead of a fetch so playback is never delayed by paging.
func (m Model) runEffects(eff frames.Effects) tea.Cmd {
	var cmds []tea.Cmd
	if eff.Start != nil {
		cmds = append(cmds, m.startPlayback(*eff.Start))
	}
	if eff.Fetch != nil {
		cmds = append(cmds, m.fetchPage(*eff.Fetch))
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchPage(ticket frames.FetchTicket) tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	return func() tea.Msg {
		page, err := ctrl.FetchPage(ctx, ticket)
		if err != nil {
			return PageErrorMsg{Ticket: ticket, Err: err}
		}
		return PageLoadedMsg{Ticket: ticket, Page: page}
	}
}

func (m Model) startPlayback(req frames.StartRequest) tea.Cmd {
	ctrl := m.ctrl
	ctx := m.ctx
	return func() tea.Msg {
		return PlaybackSettledMsg{Req: req, Err: ctrl.StartPlayback(ctx, req)}
	}
}

func (m Model) scheduleFlush(seq int) tea.Cmd {
	return tea.Tick(m.debounce.Interval(), func(time.Time) tea.Msg {
		return scrollFlushMsg{seq: seq}
	})
}

func (m Model) emitAutoplayChanged(on bool) tea.Cmd {
	return func() tea.Msg { return AutoplayChangedMsg{On: on} }
}
