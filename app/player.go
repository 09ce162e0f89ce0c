package app

import (
	"context"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// MediaPlayer is the media handle behind the feed.
// Only the playback coordinator may call it.
type MediaPlayer interface {
	// Play starts playback of item. gesture reports whether the start was
	// caused by an explicit user interaction. Implementations return
	// domain.ErrPlaybackStartRejected when their autoplay policy refuses.
	Play(ctx context.Context, item domain.Item, gesture bool) error

	// Pause stops playback of the item, keeping its position.
	Pause(itemID string)

	// Reset pauses the item and rewinds it to the start.
	Reset(itemID string)
}
