package frames

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/app"
	"github.com/CrestNiraj12/terminalframes/domain"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 10

// Options configures a Controller.
type Options struct {
	PageSize  int
	Lookahead int
}

// Effects are the asynchronous operations the caller must perform on behalf
// of the controller. Run them off the event loop and report the results back
// through SettleFetch and SettlePlayback.
type Effects struct {
	Fetch *FetchTicket
	Start *StartRequest
}

// Empty reports whether there is nothing to perform.
func (e Effects) Empty() bool { return e.Fetch == nil && e.Start == nil }

// View is the state exposed to the rendering layer.
type View struct {
	Items            []domain.Item
	ActiveIndex      int // NoIndex while the feed is empty
	IsInitialLoading bool
	IsFetchingNext   bool
	Playback         PlaybackState
	Cursor           PageCursor
	HasMore          bool
	LastErr          error
}

// Active returns the active item.
func (v View) Active() (domain.Item, bool) {
	if v.ActiveIndex < 0 || v.ActiveIndex >= len(v.Items) {
		return domain.Item{}, false
	}
	return v.Items[v.ActiveIndex], true
}

// Controller composes the store, scheduler, tracker and playback coordinator
// into the feed's behaviour. It is not safe for concurrent use.
type Controller struct {
	source    app.PageSource
	pageSize  int
	store     *FeedStore
	scheduler *FetchScheduler
	tracker   *ActiveIndexTracker
	playback  *PlaybackCoordinator
	lastErr   error
	retry     bool // Last fetch failed; the next sample re-evaluates prefetch once
	mounted   bool
	unmounted bool
	log       *log.Helper
}

// NewController wires a controller. The player is handed to the playback
// coordinator and must not be used elsewhere.
func NewController(source app.PageSource, player app.MediaPlayer, opts Options, logger log.Logger) *Controller {
	if opts.PageSize < 1 {
		opts.PageSize = DefaultPageSize
	}
	store := NewFeedStore()
	return &Controller{
		source:    source,
		pageSize:  opts.PageSize,
		store:     store,
		scheduler: NewFetchScheduler(store, opts.Lookahead, logger),
		tracker:   NewActiveIndexTracker(),
		playback:  NewPlaybackCoordinator(player, logger),
		log:       log.NewHelper(log.With(logger, "component", "controller")),
	}
}

// Mount requests the first page if nothing is loaded yet.
func (c *Controller) Mount() Effects {
	if c.unmounted || c.mounted {
		return Effects{}
	}
	c.mounted = true
	if !c.store.IsEmpty() {
		return Effects{}
	}
	return Effects{Fetch: c.begin()}
}

// ReportScroll feeds one (debounced) scroll sample.
func (c *Controller) ReportScroll(offset, extent float64) Effects {
	if c.unmounted {
		return Effects{}
	}
	idx, changed := c.tracker.OnScroll(offset, extent, c.store.Len())
	return c.afterSample(idx, changed)
}

// Resize handles a viewport extent change.
func (c *Controller) Resize(extent float64) Effects {
	if c.unmounted {
		return Effects{}
	}
	idx, changed := c.tracker.OnResize(extent, c.store.Len())
	return c.afterSample(idx, changed)
}

func (c *Controller) afterSample(idx int, changed bool) Effects {
	if changed {
		c.retry = false
		return c.activate(idx)
	}
	if c.retry {
		// One re-evaluation per failure; a sample that does not qualify
		// consumes it.
		c.retry = false
		if c.store.IsEmpty() {
			return c.Retry()
		}
		return Effects{Fetch: c.maybePrefetch(idx)}
	}
	return Effects{}
}

// TogglePlayback handles a tap on an item. Tapping an item that is not
// active first brings it into view.
func (c *Controller) TogglePlayback(itemID string) Effects {
	if c.unmounted {
		return Effects{}
	}
	idx, ok := c.store.IndexOf(itemID)
	if !ok {
		return Effects{}
	}
	item, _ := c.store.At(idx)
	focused, changed := c.tracker.Focus(idx)
	var eff Effects
	if req, ok := c.playback.Toggle(item); ok {
		eff.Start = &req
	}
	if changed {
		eff.Fetch = c.maybePrefetch(focused)
	}
	return eff
}

// Retry re-requests the next page after a failure. It is the only way to
// recover when the very first page failed, since an empty feed has no
// scroll positions to re-evaluate.
func (c *Controller) Retry() Effects {
	if c.unmounted || c.scheduler.InFlight() {
		return Effects{}
	}
	if c.store.IsEmpty() {
		if cur := c.store.Cursor(); cur.Page > 0 && !cur.HasMore() {
			return Effects{}
		}
		return Effects{Fetch: c.begin()}
	}
	return Effects{Fetch: c.maybePrefetch(c.tracker.Current())}
}

// activate runs playback first, then prefetch, for a newly active index.
func (c *Controller) activate(idx int) Effects {
	var eff Effects
	if item, ok := c.store.At(idx); ok {
		if req, ok := c.playback.SetActive(item); ok {
			eff.Start = &req
		}
	}
	eff.Fetch = c.maybePrefetch(idx)
	return eff
}

func (c *Controller) maybePrefetch(idx int) *FetchTicket {
	if !c.scheduler.ShouldFetchNext(idx, c.store.Len(), c.store.HasMore(), c.scheduler.InFlight()) {
		return nil
	}
	return c.begin()
}

func (c *Controller) begin() *FetchTicket {
	t, err := c.scheduler.BeginFetch(c.store.Cursor().Next())
	if err != nil {
		c.log.Warnw("msg", "fetch not started", "error", err)
		return nil
	}
	c.retry = false
	return &t
}

// FetchPage performs the request described by ticket. It only reads
// immutable configuration and is safe to call outside the event loop.
func (c *Controller) FetchPage(ctx context.Context, ticket FetchTicket) (domain.Page, error) {
	return c.source.FetchPage(ctx, ticket.Page, c.pageSize)
}

// SettleFetch applies the result of FetchPage. Appending a page never touches
// playback, except that the first items make index 0 active.
func (c *Controller) SettleFetch(ticket FetchTicket, page domain.Page, err error) Effects {
	if c.unmounted {
		return Effects{}
	}
	settleErr := c.scheduler.SettleFetch(ticket, page, err)
	switch {
	case settleErr == nil:
		c.lastErr = nil
	case errors.Is(settleErr, domain.ErrUnknownTicket):
		return Effects{}
	default:
		c.lastErr = settleErr
		var fe *FetchError
		c.retry = errors.As(settleErr, &fe)
		return Effects{}
	}
	if c.tracker.Current() == NoIndex {
		if idx, changed := c.tracker.Recompute(c.store.Len()); changed {
			return c.activate(idx)
		}
	}
	return Effects{}
}

// StartPlayback performs a start request. Safe to call outside the event loop.
func (c *Controller) StartPlayback(ctx context.Context, req StartRequest) error {
	return c.playback.Start(ctx, req)
}

// SettlePlayback applies the result of StartPlayback.
func (c *Controller) SettlePlayback(req StartRequest, err error) StartOutcome {
	return c.playback.SettleStart(req, err)
}

// Unmount tears the feed down. Results of work still in flight are ignored.
func (c *Controller) Unmount() {
	if c.unmounted {
		return
	}
	c.unmounted = true
	c.scheduler.Abandon()
	c.playback.Close()
	c.log.Debugw("msg", "feed unmounted", "items", c.store.Len(), "page", c.store.Cursor().Page)
}

// Snapshot returns the state for rendering.
func (c *Controller) Snapshot() View {
	inFlight := c.scheduler.InFlight()
	return View{
		Items:            c.store.Items(),
		ActiveIndex:      c.tracker.Current(),
		IsInitialLoading: inFlight && c.store.IsEmpty(),
		IsFetchingNext:   inFlight && !c.store.IsEmpty(),
		Playback:         c.playback.State(),
		Cursor:           c.store.Cursor(),
		HasMore:          c.store.HasMore(),
		LastErr:          c.lastErr,
	}
}

// Len returns the number of loaded items.
func (c *Controller) Len() int { return c.store.Len() }

// ActiveIndex returns the active index.
func (c *Controller) ActiveIndex() int { return c.tracker.Current() }

// ScrollOffset returns the last sampled scroll offset.
func (c *Controller) ScrollOffset() float64 { return c.tracker.Offset() }

// Lookahead returns the configured prefetch threshold.
func (c *Controller) Lookahead() int { return c.scheduler.Lookahead() }
