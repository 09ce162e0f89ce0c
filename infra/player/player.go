// Package player renders feed media as ANSI frames in the terminal.
package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
)

var errStartSuperseded = errors.New("start superseded by pause or reset")

// LoadFunc turns an item's media into renderable frames.
type LoadFunc func(ctx context.Context, item domain.Item, w, h int) ([]string, error)

type track struct {
	frames  []string
	pos     int
	playing bool
}

// Terminal is an app.MediaPlayer that animates pre-rendered ANSI frames.
// Safe for concurrent use: Play runs in a command goroutine while the event
// loop reads frames.
type Terminal struct {
	mu       sync.Mutex
	autoplay bool
	width    int
	height   int
	tracks   map[string]*track
	stops    map[string]uint64 // Pause/Reset count per item
	load     LoadFunc
	log      *log.Helper
}

// New creates a terminal player. When autoplay is false, starts that are not
// caused by a user gesture are rejected.
func New(autoplay bool, logger log.Logger) *Terminal {
	client := &http.Client{Timeout: 6 * time.Second}
	return &Terminal{
		autoplay: autoplay,
		width:    24,
		height:   12,
		tracks:   make(map[string]*track),
		stops:    make(map[string]uint64),
		load: func(ctx context.Context, item domain.Item, w, h int) ([]string, error) {
			return loadFrames(ctx, client, item, w, h)
		},
		log: log.NewHelper(log.With(logger, "component", "player")),
	}
}

// WithLoader replaces the media loader.
func (t *Terminal) WithLoader(load LoadFunc) *Terminal {
	t.load = load
	return t
}

// SetAutoplay changes the autoplay policy for later starts.
func (t *Terminal) SetAutoplay(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.autoplay = on
}

// Autoplay reports the current policy.
func (t *Terminal) Autoplay() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.autoplay
}

// SetSize sets the frame size (in cells) for media loaded from now on.
func (t *Terminal) SetSize(w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.width = max(w, 4)
	t.height = max(h, 2)
}

func (t *Terminal) Play(ctx context.Context, item domain.Item, gesture bool) error {
	t.mu.Lock()
	if !t.autoplay && !gesture {
		t.mu.Unlock()
		return domain.ErrPlaybackStartRejected
	}
	tr, cached := t.tracks[item.ID]
	w, h := t.width, t.height
	stops := t.stops[item.ID]
	t.mu.Unlock()

	if !cached {
		frames, err := t.load(ctx, item, w, h)
		if err != nil {
			t.log.Warnw("msg", "media load failed", "item", item.ID, "url", item.Media.URL, "error", err)
			return fmt.Errorf("loading media for %s: %w", item.ID, err)
		}
		if len(frames) == 0 {
			return fmt.Errorf("loading media for %s: no frames", item.ID)
		}
		tr = &track{frames: frames}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.tracks[item.ID]; ok {
		tr = existing
	} else {
		t.tracks[item.ID] = tr
	}
	// A stop or cancellation that arrived during the load wins.
	if t.stops[item.ID] != stops {
		return errStartSuperseded
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tr.playing = true
	return nil
}

func (t *Terminal) Pause(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stops[itemID]++
	if tr, ok := t.tracks[itemID]; ok {
		tr.playing = false
	}
}

func (t *Terminal) Reset(itemID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stops[itemID]++
	if tr, ok := t.tracks[itemID]; ok {
		tr.playing = false
		tr.pos = 0
	}
}

// Advance moves every playing track to its next frame.
func (t *Terminal) Advance() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, tr := range t.tracks {
		if tr.playing && len(tr.frames) > 1 {
			tr.pos = (tr.pos + 1) % len(tr.frames)
		}
	}
}

// Frame returns the current frame of an item whose media has been loaded.
func (t *Terminal) Frame(itemID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	tr, ok := t.tracks[itemID]
	if !ok || len(tr.frames) == 0 {
		return "", false
	}
	return tr.frames[tr.pos], true
}

// PlayingCount reports how many tracks are animating.
func (t *Terminal) PlayingCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, tr := range t.tracks {
		if tr.playing {
			n++
		}
	}
	return n
}

func loadFrames(ctx context.Context, client *http.Client, item domain.Item, w, h int) ([]string, error) {
	var firstErr error
	if item.Media.Kind == domain.MediaVideo && item.Media.URL != "" {
		frames, err := renderANSIFramesFromVideo(ctx, item.Media.URL, w, h)
		if err == nil && len(frames) > 0 {
			return frames, nil
		}
		firstErr = err
	} else if item.Media.URL != "" {
		frames, err := loadStaticFrames(ctx, client, item.Media.URL, w, h)
		if err == nil {
			return frames, nil
		}
		firstErr = err
	}
	if item.Media.PreviewURL != "" && item.Media.PreviewURL != item.Media.URL {
		if frames, err := loadStaticFrames(ctx, client, item.Media.PreviewURL, w, h); err == nil {
			return frames, nil
		}
	}
	if firstErr == nil {
		firstErr = fmt.Errorf("item has no media")
	}
	return nil, firstErr
}
