package frames

import (
	"context"
	"fmt"
	"io"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
)

var testLogger = log.NewStdLogger(io.Discard)

// recordingPlayer logs every call and tracks which items it believes are playing.
type recordingPlayer struct {
	events  []string
	playing map[string]bool
	reject  bool
	fail    error
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{playing: make(map[string]bool)}
}

func (p *recordingPlayer) Play(_ context.Context, item domain.Item, gesture bool) error {
	p.events = append(p.events, fmt.Sprintf("play:%s", item.ID))
	if p.fail != nil {
		return p.fail
	}
	if p.reject && !gesture {
		return domain.ErrPlaybackStartRejected
	}
	p.playing[item.ID] = true
	return nil
}

func (p *recordingPlayer) Pause(id string) {
	p.events = append(p.events, "pause:"+id)
	delete(p.playing, id)
}

func (p *recordingPlayer) Reset(id string) {
	p.events = append(p.events, "reset:"+id)
	delete(p.playing, id)
}

func (p *recordingPlayer) playingIDs() []string {
	out := make([]string, 0, len(p.playing))
	for id := range p.playing {
		out = append(out, id)
	}
	return out
}

type stubSource struct {
	pages    map[int]domain.Page
	errs     map[int]error
	requests []int
}

func (s *stubSource) FetchPage(_ context.Context, page, _ int) (domain.Page, error) {
	s.requests = append(s.requests, page)
	if err := s.errs[page]; err != nil {
		return domain.Page{}, err
	}
	return s.pages[page], nil
}

func makeItems(prefix string, n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range n {
		items[i] = domain.Item{
			ID:    fmt.Sprintf("%s%d", prefix, i),
			Media: domain.MediaRef{URL: "https://cdn.example/" + prefix, Kind: domain.MediaVideo},
		}
	}
	return items
}

func makePage(num, total int, items []domain.Item) domain.Page {
	return domain.Page{Items: items, Meta: domain.PageMeta{Page: num, TotalPages: total}}
}
