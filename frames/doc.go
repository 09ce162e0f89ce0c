// Package frames drives a snap-scrolling, one-item-at-a-time media feed.
//
// All types in this package are single-threaded: they are meant to be called
// from one event loop (the Bubble Tea update function). The two operations
// that may block, fetching a page and starting playback, are handed back to
// the caller as Effects and settled later through the Controller.
package frames
