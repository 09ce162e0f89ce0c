package feed

import (
	"math"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalframes/frames"
)

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		m.screen.Advance()
		return m, cmd
	}

	if m.closed {
		return m, nil
	}

	switch msg := msg.(type) {
	case PageLoadedMsg, PageErrorMsg, PlaybackSettledMsg:
		return m.handleFeedLoadingMsg(msg)

	case scrollFlushMsg:
		s, ok := m.debounce.Flush(msg.seq, m.now())
		if !ok {
			return m, nil
		}
		cmd := m.runEffects(m.ctrl.ReportScroll(s.Offset, s.Extent))
		m.snap()
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	extent := m.extent()
	m.screen.SetSize(max(msg.Width/2-4, 4), max(int(extent)-5, 2))
	if m.closed {
		return m, nil
	}

	// The feed re-snaps to the item in view, so the offset is rescaled
	// rather than reinterpreted against the new extent.
	if idx := m.ctrl.ActiveIndex(); idx != frames.NoIndex {
		m.offset = float64(idx) * extent
		return m, m.runEffects(m.ctrl.ReportScroll(m.offset, extent))
	}
	return m, m.runEffects(m.ctrl.Resize(extent))
}

// scrollTo moves the local scroll position and offers the sample to the
// debouncer. Samples that pass through reach the controller immediately.
func (m *Model) scrollTo(offset float64) tea.Cmd {
	m.offset = math.Max(0, math.Min(offset, m.maxOffset()))
	sample := frames.ScrollSample{Offset: m.offset, Extent: m.extent()}
	ready, ok, seq, schedule := m.debounce.Offer(sample, m.now())
	if ok {
		return m.runEffects(m.ctrl.ReportScroll(ready.Offset, ready.Extent))
	}
	if schedule {
		return m.scheduleFlush(seq)
	}
	return nil
}

// snap aligns the local offset to the item the controller considers active.
func (m *Model) snap() {
	if idx := m.ctrl.ActiveIndex(); idx != frames.NoIndex {
		m.offset = float64(idx) * m.extent()
	}
}

// targetIndex is the item the local offset currently points at.
func (m Model) targetIndex() int {
	return frames.ComputeActiveIndex(m.offset, m.extent(), m.ctrl.Len())
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		cmd := m.scrollTo(m.offset + wheelStep)
		return m, cmd
	case tea.MouseButtonWheelUp:
		cmd := m.scrollTo(m.offset - wheelStep)
		return m, cmd
	case tea.MouseButtonLeft:
		if item, ok := m.ctrl.Snapshot().Active(); ok {
			return m.toggle(item.ID)
		}
	}
	return m, nil
}
