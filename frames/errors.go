package frames

import (
	"fmt"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// StaleCursorError reports a page that is not newer than the cursor.
type StaleCursorError struct {
	Page   int // Page number that arrived
	Cursor int // Last applied page number
}

func (e *StaleCursorError) Error() string {
	return fmt.Sprintf("page %d is not after applied page %d", e.Page, e.Cursor)
}

func (e *StaleCursorError) Unwrap() error { return domain.ErrStaleCursor }

// FetchError is a failed page fetch. The cursor is left where it was.
type FetchError struct {
	Page int
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
