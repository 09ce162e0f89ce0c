package feed

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/tui/common"
)

const (
	headerLines = 3
	footerLines = 4
	pageJump    = 5
	wheelStep   = 3
)

// PageLoadedMsg carries a fetched page back to the event loop.
type PageLoadedMsg struct {
	Ticket frames.FetchTicket
	Page   domain.Page
}

// PageErrorMsg is sent when a page fetch fails.
type PageErrorMsg struct {
	Ticket frames.FetchTicket
	Err    error
}

// PlaybackSettledMsg reports the result of a playback start attempt.
type PlaybackSettledMsg struct {
	Req frames.StartRequest
	Err error
}

// AutoplayChangedMsg is emitted when the user flips autoplay, so the root
// model can persist it.
type AutoplayChangedMsg struct {
	On bool
}

type scrollFlushMsg struct {
	seq int
}

// Screen is the read side of the media player used for rendering.
type Screen interface {
	Frame(itemID string) (string, bool)
	Advance()
	Autoplay() bool
	SetAutoplay(on bool)
	SetSize(w, h int)
}

// Model is the Bubble Tea model for the snap feed.
type Model struct {
	ctrl     *frames.Controller
	screen   Screen
	debounce *frames.ScrollDebouncer
	ctx      context.Context
	cancel   context.CancelFunc
	keys     common.KeyMap
	help     help.Model
	spinner  spinner.Model
	now      func() time.Time

	width    int
	height   int
	offset   float64 // Local scroll position in rows
	showKeys bool
	notice   string
	outcomes map[string]frames.StartOutcome // Last start outcome per item
	closed   bool
}

// New creates a feed model around ctrl. screen must be the same player the
// controller was built with.
func New(ctrl *frames.Controller, screen Screen, scrollInterval time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6600"))

	ctx, cancel := context.WithCancel(context.Background())
	return Model{
		ctrl:     ctrl,
		screen:   screen,
		debounce: frames.NewScrollDebouncer(scrollInterval),
		ctx:      ctx,
		cancel:   cancel,
		keys:     common.DefaultKeyMap(),
		help:     help.New(),
		spinner:  s,
		now:      time.Now,
		outcomes: make(map[string]frames.StartOutcome),
	}
}

// extent is the height of one item in rows.
func (m Model) extent() float64 {
	return float64(max(m.height-headerLines-footerLines, 1))
}

func (m Model) maxOffset() float64 {
	n := m.ctrl.Len()
	if n == 0 {
		return 0
	}
	return float64(n-1) * m.extent()
}
