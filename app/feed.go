package app

import (
	"context"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// PageSource fetches pages of the frame feed.
type PageSource interface {
	// FetchPage returns page pageNumber (1-based) holding at most pageSize items.
	FetchPage(ctx context.Context, pageNumber, pageSize int) (domain.Page, error)
}
