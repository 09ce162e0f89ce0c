package feed

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
	"github.com/CrestNiraj12/terminalframes/frames"
)

type stubSource struct {
	mu       sync.Mutex
	total    int
	perPage  int
	errs     map[int]error
	requests []int
}

func (s *stubSource) FetchPage(_ context.Context, page, _ int) (domain.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, page)
	if err := s.errs[page]; err != nil {
		return domain.Page{}, err
	}
	items := make([]domain.Item, s.perPage)
	for i := range items {
		items[i] = domain.Item{
			ID:      fmt.Sprintf("p%d-%d", page, i),
			Author:  "alice@frames.test",
			Caption: fmt.Sprintf("frame %d of page %d", i, page),
			Media:   domain.MediaRef{URL: "https://cdn.test/v.mp4", Kind: domain.MediaVideo},
		}
	}
	return domain.Page{Items: items, Meta: domain.PageMeta{Page: page, TotalPages: s.total}}, nil
}

func (s *stubSource) requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.requests...)
}

type fakePlayer struct {
	mu       sync.Mutex
	autoplay bool
	playing  map[string]bool
	advanced int
}

func newFakePlayer(autoplay bool) *fakePlayer {
	return &fakePlayer{autoplay: autoplay, playing: make(map[string]bool)}
}

func (p *fakePlayer) Play(_ context.Context, item domain.Item, gesture bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.autoplay && !gesture {
		return domain.ErrPlaybackStartRejected
	}
	p.playing[item.ID] = true
	return nil
}

func (p *fakePlayer) Pause(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.playing, id)
}

func (p *fakePlayer) Reset(id string) { p.Pause(id) }

func (p *fakePlayer) Frame(string) (string, bool) { return "", false }

func (p *fakePlayer) Advance() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.advanced++
}

func (p *fakePlayer) Autoplay() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.autoplay
}

func (p *fakePlayer) SetAutoplay(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.autoplay = on
}

func (p *fakePlayer) SetSize(int, int) {}

func (p *fakePlayer) playingIDs() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.playing))
	for id := range p.playing {
		out = append(out, id)
	}
	return out
}

// newTestModel builds a sized feed whose scroll samples are never held back.
func newTestModel(src *stubSource, player *fakePlayer) Model {
	ctrl := frames.NewController(src, player, frames.Options{PageSize: src.perPage, Lookahead: 3}, log.NewStdLogger(io.Discard))
	m := New(ctrl, player, time.Millisecond)
	clock := time.Unix(0, 0)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// drain runs cmd and every command it produces, feeding messages back into m.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatalf("command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case spinner.TickMsg, AutoplayChangedMsg:
		default:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, next)
		}
	}
	return m
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}
