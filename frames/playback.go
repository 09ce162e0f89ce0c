package frames

import (
	"context"
	"errors"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/app"
	"github.com/CrestNiraj12/terminalframes/domain"
)

// PlaybackPhase is the coordinator's state.
type PlaybackPhase int

const (
	PhaseIdle PlaybackPhase = iota
	PhasePaused
	PhasePlaying
)

func (p PlaybackPhase) String() string {
	switch p {
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "idle"
	}
}

// PlaybackState names the selected item and whether it plays.
type PlaybackState struct {
	Phase  PlaybackPhase
	ItemID string // Empty while idle
}

// Playing returns the ID of the playing item.
func (s PlaybackState) Playing() (string, bool) {
	if s.Phase != PhasePlaying {
		return "", false
	}
	return s.ItemID, true
}

// StartRequest is one attempt to start playback of an item.
type StartRequest struct {
	Item    domain.Item
	Gesture bool // Caused by an explicit user interaction
	gen     uint64
	ctx     context.Context // Cancelled as soon as the request is superseded
	cancel  context.CancelFunc
}

// StartOutcome is the result of settling a StartRequest.
type StartOutcome int

const (
	OutcomePlaying StartOutcome = iota
	OutcomeRejected
	OutcomeFailed
	OutcomeStale
)

func (o StartOutcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeRejected:
		return "rejected"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// PlaybackCoordinator keeps at most one item playing, and only the selected one.
// It is the sole owner of the media player.
type PlaybackCoordinator struct {
	player  app.MediaPlayer
	state   PlaybackState
	gen     uint64
	pending context.CancelFunc // Cancels the newest start request
	closed  bool
	log     *log.Helper
}

// NewPlaybackCoordinator takes exclusive ownership of player.
func NewPlaybackCoordinator(player app.MediaPlayer, logger log.Logger) *PlaybackCoordinator {
	return &PlaybackCoordinator{
		player: player,
		log:    log.NewHelper(log.With(logger, "component", "playback")),
	}
}

// State returns the current playback state.
func (c *PlaybackCoordinator) State() PlaybackState { return c.state }

// SetActive selects item. The previously selected item is paused and rewound
// before the start request for item is returned, so two items never play at once.
// It returns false when item is already selected or the coordinator is closed.
func (c *PlaybackCoordinator) SetActive(item domain.Item) (StartRequest, bool) {
	if c.closed || (c.state.Phase != PhaseIdle && c.state.ItemID == item.ID) {
		return StartRequest{}, false
	}
	c.supersede()
	if c.state.Phase != PhaseIdle {
		c.player.Reset(c.state.ItemID)
	}
	c.state = PlaybackState{Phase: PhasePaused, ItemID: item.ID}
	return c.request(item, false), true
}

// Toggle flips playback of item. A non-selected item is selected first and
// then started. The returned request, if any, is marked as a user gesture.
func (c *PlaybackCoordinator) Toggle(item domain.Item) (StartRequest, bool) {
	if c.closed {
		return StartRequest{}, false
	}
	if c.state.Phase == PhaseIdle || c.state.ItemID != item.ID {
		req, ok := c.SetActive(item)
		req.Gesture = true
		return req, ok
	}
	c.supersede()
	if c.state.Phase == PhasePlaying {
		c.player.Pause(item.ID)
		c.state.Phase = PhasePaused
		return StartRequest{}, false
	}
	return c.request(item, true), true
}

// supersede invalidates the outstanding start request. Its context is
// cancelled before the caller stops the player, so a start still loading
// media cannot mark its item playing afterwards.
func (c *PlaybackCoordinator) supersede() {
	c.gen++
	if c.pending != nil {
		c.pending()
		c.pending = nil
	}
}

func (c *PlaybackCoordinator) request(item domain.Item, gesture bool) StartRequest {
	ctx, cancel := context.WithCancel(context.Background())
	c.pending = cancel
	return StartRequest{Item: item, Gesture: gesture, gen: c.gen, ctx: ctx, cancel: cancel}
}

// Start performs the start attempt. It touches only the player and is safe to
// run outside the event loop. The player sees a context that is cancelled
// when either ctx ends or the request is superseded.
func (c *PlaybackCoordinator) Start(ctx context.Context, req StartRequest) error {
	if req.ctx == nil {
		return c.player.Play(ctx, req.Item, req.Gesture)
	}
	stop := context.AfterFunc(ctx, req.cancel)
	defer stop()
	return c.player.Play(req.ctx, req.Item, req.Gesture)
}

// SettleStart applies the result of Start. Results of superseded requests are
// dropped and, if they managed to start anyway, stopped again.
func (c *PlaybackCoordinator) SettleStart(req StartRequest, err error) StartOutcome {
	if c.closed || req.gen != c.gen || c.state.ItemID != req.Item.ID {
		if err == nil {
			c.quiesce(req.Item.ID)
		}
		return OutcomeStale
	}
	switch {
	case err == nil:
		c.state.Phase = PhasePlaying
		c.log.Debugw("msg", "playback started", "item", req.Item.ID, "gesture", req.Gesture)
		return OutcomePlaying
	case errors.Is(err, domain.ErrPlaybackStartRejected):
		c.log.Infow("msg", "autoplay rejected, waiting for user", "item", req.Item.ID)
		return OutcomeRejected
	default:
		c.log.Warnw("msg", "playback start failed", "item", req.Item.ID, "error", err)
		return OutcomeFailed
	}
}

// Close rewinds the selected item and ignores every later settlement.
func (c *PlaybackCoordinator) Close() {
	if c.closed {
		return
	}
	c.supersede()
	if c.state.Phase != PhaseIdle {
		c.player.Reset(c.state.ItemID)
	}
	c.closed = true
	c.state = PlaybackState{}
}

// quiesce stops an item whose superseded start went through anyway.
func (c *PlaybackCoordinator) quiesce(itemID string) {
	if c.closed || itemID != c.state.ItemID {
		c.player.Reset(itemID)
		return
	}
	if c.state.Phase != PhasePlaying {
		c.player.Pause(itemID)
	}
}
