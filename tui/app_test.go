package tui

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
	"github.com/CrestNiraj12/terminalframes/infra/config"
	"github.com/CrestNiraj12/terminalframes/tui/feed"
)

type emptySource struct{}

func (emptySource) FetchPage(context.Context, int, int) (domain.Page, error) {
	return domain.Page{Meta: domain.PageMeta{Page: 1, TotalPages: 1}}, nil
}

type nopPlayer struct{ autoplay bool }

func (*nopPlayer) Play(context.Context, domain.Item, bool) error { return nil }
func (*nopPlayer) Pause(string)                                  {}
func (*nopPlayer) Reset(string)                                  {}
func (*nopPlayer) Frame(string) (string, bool)                   { return "", false }
func (*nopPlayer) Advance()                                      {}
func (p *nopPlayer) Autoplay() bool                              { return p.autoplay }
func (p *nopPlayer) SetAutoplay(on bool)                         { p.autoplay = on }
func (*nopPlayer) SetSize(int, int)                              {}

func newTestApp(t *testing.T, statePath string) App {
	t.Helper()
	logger := log.NewStdLogger(io.Discard)
	player := &nopPlayer{autoplay: true}
	return NewApp(Deps{
		Controller:     frames.NewController(emptySource{}, player, frames.Options{}, logger),
		Screen:         player,
		ScrollInterval: time.Millisecond,
		Source:         config.SourceCatalog,
		StatePath:      statePath,
		Logger:         logger,
	})
}

func TestApp_QuitUnmountsFeed(t *testing.T) {
	a := newTestApp(t, "")
	model, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
	app := model.(App)
	if eff := app.deps.Controller.Mount(); !eff.Empty() {
		t.Fatalf("unmounted controller must not fetch on mount")
	}
}

func TestApp_AutoplayChangePersistsPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_state.json")
	a := newTestApp(t, path)

	_, cmd := a.Update(feed.AutoplayChangedMsg{On: false})
	if cmd == nil {
		t.Fatalf("expected save command")
	}
	msg, ok := cmd().(PrefsSavedMsg)
	if !ok || msg.Err != nil {
		t.Fatalf("expected successful PrefsSavedMsg, got %#v", msg)
	}

	st, err := config.LoadUIState(path)
	if err != nil {
		t.Fatalf("load ui state: %v", err)
	}
	if st.Autoplay != "off" || st.Source != config.SourceCatalog {
		t.Fatalf("unexpected saved state: %+v", st)
	}
}

func TestApp_PrefsSaveErrorShowsStatus(t *testing.T) {
	a := newTestApp(t, "")
	model, _ := a.Update(PrefsSavedMsg{Err: errors.New("disk full")})
	if got := model.(App).status; got == "" {
		t.Fatalf("expected status for failed save")
	}
}
