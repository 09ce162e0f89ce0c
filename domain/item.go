package domain

import "time"

// MediaKind classifies the media attached to a feed item.
type MediaKind int

const (
	MediaOther MediaKind = iota
	MediaVideo
)

func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "other"
}

// ParseMediaKind maps a transport media type onto a MediaKind.
func ParseMediaKind(s string) MediaKind {
	switch s {
	case "video", "gifv":
		return MediaVideo
	default:
		return MediaOther
	}
}

// MediaRef points at the progressive media for an item.
type MediaRef struct {
	URL        string
	PreviewURL string // Still image used when the media cannot be played
	Kind       MediaKind
}

// Item is a single entry in the frame feed.
type Item struct {
	ID        string
	Author    string
	Caption   string // Plain text, HTML stripped
	CreatedAt time.Time
	Media     MediaRef
}

// PageMeta is the pagination metadata returned with every page.
type PageMeta struct {
	Page       int
	TotalPages int
}

// Page is the result of one fetch.
type Page struct {
	Items []Item
	Meta  PageMeta
}
