package feed

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalframes/frames"
)

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showKeys {
		switch {
		case key.Matches(msg, m.keys.ToggleHints), msg.String() == "esc", key.Matches(msg, m.keys.Quit), msg.String() == "enter":
			m.showKeys = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleHints):
		m.showKeys = true
		return m, nil

	case key.Matches(msg, m.keys.Down):
		cmd := m.moveBy(1)
		return m, cmd

	case key.Matches(msg, m.keys.Up):
		cmd := m.moveBy(-1)
		return m, cmd

	case key.Matches(msg, m.keys.PageDown):
		cmd := m.moveBy(pageJump)
		return m, cmd

	case key.Matches(msg, m.keys.PageUp):
		cmd := m.moveBy(-pageJump)
		return m, cmd

	case key.Matches(msg, m.keys.Top):
		cmd := m.scrollTo(0)
		return m, cmd

	case key.Matches(msg, m.keys.Bottom):
		cmd := m.scrollTo(m.maxOffset())
		return m, cmd

	case key.Matches(msg, m.keys.Toggle):
		idx := m.targetIndex()
		view := m.ctrl.Snapshot()
		if idx < 0 || idx >= len(view.Items) {
			return m, nil
		}
		return m.toggle(view.Items[idx].ID)

	case key.Matches(msg, m.keys.Autoplay):
		on := !m.screen.Autoplay()
		m.screen.SetAutoplay(on)
		if on {
			m.notice = "Autoplay on."
		} else {
			m.notice = "Autoplay off. Press space to play."
		}
		return m, m.emitAutoplayChanged(on)

	case key.Matches(msg, m.keys.Retry):
		if m.ctrl.Snapshot().LastErr == nil {
			return m, nil
		}
		m.notice = ""
		return m, m.runEffects(m.ctrl.Retry())
	}

	return m, nil
}

// moveBy scrolls by delta whole items from the item the offset points at.
func (m *Model) moveBy(delta int) tea.Cmd {
	idx := m.targetIndex()
	if idx == frames.NoIndex {
		return nil
	}
	return m.scrollTo(float64(idx+delta) * m.extent())
}

// toggle plays or pauses itemID, bringing it into view first when needed.
func (m Model) toggle(itemID string) (Model, tea.Cmd) {
	cmd := m.runEffects(m.ctrl.TogglePlayback(itemID))
	m.snap()
	return m, cmd
}
