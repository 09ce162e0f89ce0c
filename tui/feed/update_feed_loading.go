package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
)

const endOfFeedNotice = "End of feed reached."

func (m Model) handleFeedLoadingMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		before := m.ctrl.Len()
		cmd := m.runEffects(m.ctrl.SettleFetch(msg.Ticket, msg.Page, nil))
		view := m.ctrl.Snapshot()
		switch {
		case view.LastErr != nil:
			// Stale page; the controller logged it.
		case !view.HasMore && len(view.Items) > 0:
			m.notice = endOfFeedNotice
		case len(view.Items) > before:
			m.notice = ""
		}
		if before == 0 {
			m.snap()
		}
		return m, cmd

	case PageErrorMsg:
		return m, m.runEffects(m.ctrl.SettleFetch(msg.Ticket, domain.Page{}, msg.Err))

	case PlaybackSettledMsg:
		outcome := m.ctrl.SettlePlayback(msg.Req, msg.Err)
		if outcome != frames.OutcomeStale {
			m.outcomes[msg.Req.Item.ID] = outcome
		}
		return m, nil
	}

	return m, nil
}
