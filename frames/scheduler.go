package frames

import (
	"errors"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// DefaultLookahead is how close to the end of the loaded feed the active item
// may get before the next page is requested.
const DefaultLookahead = 3

// FetchTicket identifies one outstanding page request.
type FetchTicket struct {
	ID       string
	Page     int
	IssuedAt time.Time
}

// FetchScheduler decides when to request the next page and guarantees that at
// most one request is outstanding.
type FetchScheduler struct {
	store     *FeedStore
	lookahead int
	inFlight  *FetchTicket
	now       func() time.Time
	log       *log.Helper
}

// NewFetchScheduler creates a scheduler that applies settled pages to store.
// A lookahead below 1 falls back to DefaultLookahead.
func NewFetchScheduler(store *FeedStore, lookahead int, logger log.Logger) *FetchScheduler {
	if lookahead < 1 {
		lookahead = DefaultLookahead
	}
	return &FetchScheduler{
		store:     store,
		lookahead: lookahead,
		now:       time.Now,
		log:       log.NewHelper(log.With(logger, "component", "fetch_scheduler")),
	}
}

// Lookahead returns the configured threshold.
func (s *FetchScheduler) Lookahead() int { return s.lookahead }

// ShouldFetchNext reports whether the next page should be requested now.
// An empty feed never qualifies: the first page is requested by the controller.
func (s *FetchScheduler) ShouldFetchNext(activeIndex, itemCount int, hasMore, fetchInFlight bool) bool {
	if !hasMore || fetchInFlight {
		return false
	}
	if itemCount == 0 || activeIndex < 0 {
		return false
	}
	return activeIndex >= itemCount-s.lookahead
}

// InFlight reports whether a ticket is outstanding.
func (s *FetchScheduler) InFlight() bool { return s.inFlight != nil }

// Outstanding returns the outstanding ticket, if any.
func (s *FetchScheduler) Outstanding() (FetchTicket, bool) {
	if s.inFlight == nil {
		return FetchTicket{}, false
	}
	return *s.inFlight, true
}

// BeginFetch marks a request for page as outstanding.
func (s *FetchScheduler) BeginFetch(page int) (FetchTicket, error) {
	if s.inFlight != nil {
		return FetchTicket{}, domain.ErrAlreadyInFlight
	}
	t := FetchTicket{ID: uuid.NewString(), Page: page, IssuedAt: s.now()}
	s.inFlight = &t
	s.log.Debugw("msg", "fetch started", "ticket", t.ID, "page", page)
	return t, nil
}

// SettleFetch clears the outstanding ticket and applies the result.
// A failed fetch leaves the cursor unchanged so a later scroll sample can
// request the same page again. A stale page is discarded and returned as an error.
func (s *FetchScheduler) SettleFetch(ticket FetchTicket, page domain.Page, fetchErr error) error {
	if s.inFlight == nil || s.inFlight.ID != ticket.ID {
		s.log.Warnw("msg", "ignoring settlement for unknown ticket", "ticket", ticket.ID, "page", ticket.Page)
		return domain.ErrUnknownTicket
	}
	s.inFlight = nil
	elapsed := s.now().Sub(ticket.IssuedAt)

	if fetchErr != nil {
		s.log.Warnw("msg", "fetch failed", "ticket", ticket.ID, "page", ticket.Page, "elapsed", elapsed, "error", fetchErr)
		return &FetchError{Page: ticket.Page, Err: fetchErr}
	}
	if err := s.store.Append(page); err != nil {
		var stale *StaleCursorError
		if errors.As(err, &stale) {
			s.log.Errorw("msg", "discarding stale page", "ticket", ticket.ID, "page", stale.Page, "cursor", stale.Cursor)
		}
		return err
	}
	s.log.Infow("msg", "page applied", "page", page.Meta.Page, "total_pages", page.Meta.TotalPages,
		"items", len(page.Items), "elapsed", elapsed)
	return nil
}

// Abandon forgets the outstanding ticket. Its eventual settlement is ignored.
func (s *FetchScheduler) Abandon() {
	if s.inFlight != nil {
		s.log.Debugw("msg", "abandoning fetch", "ticket", s.inFlight.ID, "page", s.inFlight.Page)
	}
	s.inFlight = nil
}
