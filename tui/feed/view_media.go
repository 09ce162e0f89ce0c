package feed

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/tui/common"
)

// renderCard draws the item at idx: media on the left, details on the right.
func (m Model) renderCard(view frames.View, idx int) string {
	item := view.Items[idx]
	width := max(m.width-4, 30)

	media := m.renderMediaPane(item)
	details := m.renderDetails(view, item, max(width-lipgloss.Width(media)-6, 20))
	content := lipgloss.JoinHorizontal(lipgloss.Top, media, "  ", details)
	return common.CardStyle.MarginLeft(1).Render(content)
}

func (m Model) renderMediaPane(item domain.Item) string {
	if frame, ok := m.screen.Frame(item.ID); ok {
		return frame
	}
	label := "no media"
	if item.Media.URL != "" {
		label = item.Media.Kind.String()
	}
	return lipgloss.NewStyle().
		Width(24).
		Height(6).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#45475A")).
		Foreground(lipgloss.Color("#6E738D")).
		Render(label)
}

func (m Model) renderDetails(view frames.View, item domain.Item, width int) string {
	var b strings.Builder
	b.WriteString(renderAuthor(item.Author))
	if !item.CreatedAt.IsZero() {
		b.WriteString("  " + common.TimestampStyle.Render(item.CreatedAt.Format("Jan 02 15:04")))
	}
	b.WriteString("\n\n")
	if item.Caption != "" {
		b.WriteString(common.ContentStyle.Width(width).Render(clipLines(wrapText(item.Caption, width), 6)))
		b.WriteString("\n\n")
	}
	b.WriteString(m.playbackBadge(view, item))
	return b.String()
}

func (m Model) playbackBadge(view frames.View, item domain.Item) string {
	if view.Playback.ItemID != item.ID {
		return common.PausedStyle.Render("○ not selected")
	}
	if view.Playback.Phase == frames.PhasePlaying {
		return common.PlayingStyle.Render("▶ playing")
	}
	switch m.outcomes[item.ID] {
	case frames.OutcomeRejected:
		return common.PausedStyle.Render("❚❚ autoplay blocked • space to play")
	case frames.OutcomeFailed:
		return common.ErrorStyle.Render(fmt.Sprintf("✕ media unavailable (%s)", item.Media.Kind))
	}
	return common.PausedStyle.Render("❚❚ paused")
}
