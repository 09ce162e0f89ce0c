package frames

import "github.com/CrestNiraj12/terminalframes/domain"

// PageCursor tracks how much of the feed has been fetched.
type PageCursor struct {
	Page       int // Last applied page, 0 before the first page
	TotalPages int // As reported by the last applied page
}

// HasMore reports whether pages beyond the cursor exist.
func (c PageCursor) HasMore() bool {
	return c.Page < c.TotalPages
}

// Next is the page number to request next.
func (c PageCursor) Next() int {
	return c.Page + 1
}

// FeedStore is the append-only sequence of items fetched so far.
type FeedStore struct {
	items  []domain.Item
	index  map[string]int
	cursor PageCursor
}

// NewFeedStore creates an empty store.
func NewFeedStore() *FeedStore {
	return &FeedStore{index: make(map[string]int)}
}

// Append applies a page. Pages must arrive with strictly increasing numbers;
// anything else is rejected with a *StaleCursorError and leaves the store untouched.
func (s *FeedStore) Append(page domain.Page) error {
	if page.Meta.Page <= s.cursor.Page {
		return &StaleCursorError{Page: page.Meta.Page, Cursor: s.cursor.Page}
	}
	for _, it := range page.Items {
		s.index[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
	s.cursor = PageCursor{Page: page.Meta.Page, TotalPages: page.Meta.TotalPages}
	return nil
}

func (s *FeedStore) HasMore() bool { return s.cursor.HasMore() }

func (s *FeedStore) IsEmpty() bool { return len(s.items) == 0 }

func (s *FeedStore) Len() int { return len(s.items) }

func (s *FeedStore) Cursor() PageCursor { return s.cursor }

// At returns the item at i.
func (s *FeedStore) At(i int) (domain.Item, bool) {
	if i < 0 || i >= len(s.items) {
		return domain.Item{}, false
	}
	return s.items[i], true
}

// IndexOf returns the position of the item with the given ID.
func (s *FeedStore) IndexOf(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// Items returns a copy of the accumulated items in feed order.
func (s *FeedStore) Items() []domain.Item {
	out := make([]domain.Item, len(s.items))
	copy(out, s.items)
	return out
}
