package feed

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
)

// Init mounts the controller and starts the animation clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.runEffects(m.ctrl.Mount()),
		m.spinner.Tick,
	)
}

// Update handles messages for the feed view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m.update(msg)
}

// Close unmounts the feed. Work still in flight is cancelled and its results
// are ignored.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
	m.ctrl.Unmount()
}

// Snapshot exposes the controller state.
func (m Model) Snapshot() frames.View {
	return m.ctrl.Snapshot()
}

// SelectedItem returns the item in view, if any.
func (m Model) SelectedItem() (domain.Item, bool) {
	return m.ctrl.Snapshot().Active()
}

// Autoplay reports the current autoplay policy.
func (m Model) Autoplay() bool {
	return m.screen.Autoplay()
}

// Offset returns the local scroll position in rows.
func (m Model) Offset() float64 {
	return m.offset
}

// ShowingKeys reports whether the key dialog is open.
func (m Model) ShowingKeys() bool {
	return m.showKeys
}
