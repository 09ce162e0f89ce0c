package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/tui/common"
)

// View renders the feed as a string.
func (m Model) View() string {
	if m.showKeys {
		return m.renderKeyDialog()
	}

	view := m.ctrl.Snapshot()
	var b strings.Builder
	b.WriteString(m.renderHeader(view) + "\n")

	body := m.renderBody(view)
	b.WriteString(clipLines(body, int(m.extent())))
	b.WriteString("\n")
	b.WriteString(m.renderStatus(view))
	b.WriteString(m.helpView())

	if m.width > 0 {
		return clampLinesToWidth(b.String(), m.width)
	}
	return b.String()
}

func (m Model) renderHeader(view frames.View) string {
	title := common.AppTitleStyle.Padding(1, 0, 0, 1).Render("▶ TerminalFrames")
	tagline := common.TaglineStyle.Render("<one frame at a time>")

	badge := ""
	if view.Cursor.Page > 0 {
		badge = fmt.Sprintf("page %d/%d", view.Cursor.Page, view.Cursor.TotalPages)
		if view.ActiveIndex != frames.NoIndex {
			badge += fmt.Sprintf(" • %d/%d", view.ActiveIndex+1, len(view.Items))
		}
		badge = "  " + common.PageBadgeStyle.Render(badge)
	}
	return title + tagline + badge
}

func (m Model) renderBody(view frames.View) string {
	switch {
	case view.IsInitialLoading:
		return fmt.Sprintf("  %s Loading frames...", m.spinner.View())
	case len(view.Items) == 0 && view.LastErr != nil:
		return common.ErrorStyle.Render(fmt.Sprintf("  Error: %v", view.LastErr)) + "\n\n  Press r to retry."
	case len(view.Items) == 0 && view.Cursor.Page > 0:
		return "  Nothing here yet."
	case len(view.Items) == 0:
		return ""
	}

	idx := m.targetIndex()
	if idx == frames.NoIndex {
		idx = max(view.ActiveIndex, 0)
	}
	return m.renderCard(view, idx)
}

func (m Model) renderStatus(view frames.View) string {
	var line string
	switch {
	case view.IsFetchingNext:
		line = fmt.Sprintf("  %s Loading more...", m.spinner.View())
	case view.LastErr != nil && len(view.Items) > 0:
		msg := common.Truncate(fmt.Sprintf("Error: %v", view.LastErr), max(m.width-16, 24))
		line = "  " + common.ErrorStyle.Render(msg) + "  (r: retry)"
	case m.notice != "":
		line = "  " + common.NoticeStyle.Render(m.notice)
	}
	return line
}

func (m Model) helpView() string {
	wrapWidth := max(m.width-2, 16)
	return common.StatusBarStyle.
		Width(wrapWidth).
		Render("  " + m.help.ShortHelpView(m.keys.ShortHelp()))
}

func (m Model) renderKeyDialog() string {
	body := "Keyboard Shortcuts\n\n" + m.help.FullHelpView(m.keys.FullHelp()) +
		"\n\nmouse wheel     scroll (snaps to the nearest frame)" +
		"\nclick           play/pause the frame in view" +
		"\n\nPress ?, esc, q, or enter to close."
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#FF8700")).
		Padding(1, 2).
		Margin(1, 2).
		Render(body)
}
