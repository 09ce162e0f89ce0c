package domain

import "errors"

var (
	// ErrUnauthorized indicates missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStaleCursor indicates a page arrived out of order or twice.
	ErrStaleCursor = errors.New("stale page cursor")

	// ErrAlreadyInFlight indicates a fetch was requested while another is outstanding.
	ErrAlreadyInFlight = errors.New("fetch already in flight")

	// ErrUnknownTicket indicates a settlement for a fetch that is not outstanding.
	ErrUnknownTicket = errors.New("unknown fetch ticket")

	// ErrPlaybackStartRejected indicates the autoplay policy refused to start media.
	ErrPlaybackStartRejected = errors.New("playback start rejected")
)
