package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/infra/config"
	"github.com/CrestNiraj12/terminalframes/tui/common"
	"github.com/CrestNiraj12/terminalframes/tui/feed"
)

// Deps holds all dependencies the TUI needs. Plain struct, not a DI container.
type Deps struct {
	Controller     *frames.Controller
	Screen         feed.Screen
	ScrollInterval time.Duration
	Source         string // Remembered alongside autoplay
	StatePath      string
	Logger         log.Logger
}

// PrefsSavedMsg reports the result of persisting UI preferences.
type PrefsSavedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	deps   Deps
	feed   feed.Model
	keys   common.KeyMap
	status string // Transient status message
	log    *log.Helper
}

// NewApp creates the root model with all dependencies wired.
func NewApp(deps Deps) App {
	return App{
		deps: deps,
		feed: feed.New(deps.Controller, deps.Screen, deps.ScrollInterval),
		keys: common.DefaultKeyMap(),
		log:  log.NewHelper(log.With(deps.Logger, "component", "tui")),
	}
}

// Init delegates to the feed.
func (a App) Init() tea.Cmd {
	return a.feed.Init()
}

// Update handles global messages and routes the rest to the feed.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			a.feed.Close()
			return a, tea.Quit
		}
		if key.Matches(msg, a.keys.Quit) && !a.feedShowsKeys() {
			a.feed.Close()
			return a, tea.Quit
		}

	case feed.AutoplayChangedMsg:
		return a, a.savePrefs(msg.On)

	case PrefsSavedMsg:
		if msg.Err != nil {
			a.log.Warnw("msg", "saving preferences failed", "error", msg.Err)
			a.status = "Could not save preferences: " + msg.Err.Error()
		} else {
			a.status = ""
		}
		return a, nil
	}

	updated, cmd := a.feed.Update(msg)
	a.feed = updated
	return a, cmd
}

func (a App) feedShowsKeys() bool {
	return a.feed.ShowingKeys()
}

func (a App) savePrefs(autoplay bool) tea.Cmd {
	path := a.deps.StatePath
	st := config.UIState{Source: a.deps.Source, Autoplay: "off"}
	if autoplay {
		st.Autoplay = "on"
	}
	return func() tea.Msg {
		if path == "" {
			return PrefsSavedMsg{}
		}
		return PrefsSavedMsg{Err: config.SaveUIState(path, st)}
	}
}

// View renders the feed plus any transient status.
func (a App) View() string {
	s := a.feed.View()
	if a.status != "" {
		s += "\n" + common.ErrorStyle.Render(a.status)
	}
	return s
}
