package feed

import (
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func wrapText(text string, width int) string {
	if width < 12 {
		width = 12
	}
	return ansi.Wrap(strings.TrimSpace(text), width, "")
}

func authorStyleFor(author string) lipgloss.Style {
	palette := []string{
		"#7DC4E4", "#8BD5CA", "#F5A97F", "#C6A0F6", "#EBA0AC",
		"#A6DA95", "#F9E2AF", "#89B4FA", "#F38BA8", "#94E2D5",
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(author))))
	idx := int(h.Sum32() % uint32(len(palette)))
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(palette[idx]))
}

func renderAuthor(author string) string {
	local, domain := splitUsernameDomain(author)
	if local == "" {
		local = "unknown"
	}
	out := authorStyleFor(author).Render("@" + local)
	if domain != "" {
		out += " " + lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E8E8E")).
			Faint(true).
			Render("@" + domain)
	}
	return out
}

func splitUsernameDomain(username string) (local, domain string) {
	u := strings.TrimPrefix(strings.TrimSpace(username), "@")
	if u == "" {
		return "", ""
	}
	parts := strings.SplitN(u, "@", 2)
	local = strings.TrimSpace(parts[0])
	if local == "" {
		local = u
	}
	if len(parts) > 1 {
		domain = strings.TrimSpace(parts[1])
	}
	return local, domain
}

func clipLines(text string, maxLines int) string {
	if maxLines < 1 {
		return ""
	}
	lines := strings.Split(text, "\n")
	if len(lines) <= maxLines {
		return text
	}
	return strings.Join(lines[:maxLines], "\n")
}

func clampLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, ln := range lines {
		if ansi.StringWidth(ln) <= width {
			continue
		}
		lines[i] = ansi.Cut(ln, 0, width)
	}
	return strings.Join(lines, "\n")
}
