package frames

import "math"

// NoIndex is the active index of an empty feed.
const NoIndex = -1

// ActiveIndexTracker turns scroll samples into the index of the item in view.
// Every item occupies exactly one viewport extent of scrollable space.
type ActiveIndexTracker struct {
	last   int
	offset float64
	extent float64
}

// NewActiveIndexTracker creates a dormant tracker.
func NewActiveIndexTracker() *ActiveIndexTracker {
	return &ActiveIndexTracker{last: NoIndex}
}

// ComputeActiveIndex returns the item nearest to the viewport for a snap feed
// of itemCount items, or NoIndex when there is nothing to show.
func ComputeActiveIndex(offset, extent float64, itemCount int) int {
	if itemCount <= 0 || extent <= 0 || math.IsNaN(offset) {
		return NoIndex
	}
	// Clamp before converting: huge quotients overflow int.
	q := math.Round(offset / extent)
	if math.IsNaN(q) || q < 0 {
		return 0
	}
	if last := float64(itemCount - 1); q > last {
		return itemCount - 1
	}
	return int(q)
}

// OnScroll records a sample and returns the new index when it changed.
func (t *ActiveIndexTracker) OnScroll(offset, extent float64, itemCount int) (int, bool) {
	if extent <= 0 || math.IsNaN(offset) || math.IsNaN(extent) {
		return t.last, false
	}
	t.offset = max(offset, 0)
	t.extent = extent
	return t.emit(ComputeActiveIndex(t.offset, t.extent, itemCount))
}

// OnResize recomputes the index for a new extent at the last known offset.
func (t *ActiveIndexTracker) OnResize(extent float64, itemCount int) (int, bool) {
	return t.OnScroll(t.offset, extent, itemCount)
}

// Recompute re-evaluates the last sample, e.g. after the first items arrived.
func (t *ActiveIndexTracker) Recompute(itemCount int) (int, bool) {
	if t.extent <= 0 {
		return t.emit(ComputeActiveIndex(0, 1, itemCount))
	}
	return t.emit(ComputeActiveIndex(t.offset, t.extent, itemCount))
}

// Focus jumps to index as if the user had scrolled it into view.
func (t *ActiveIndexTracker) Focus(index int) (int, bool) {
	if t.extent > 0 {
		t.offset = float64(index) * t.extent
	}
	return t.emit(index)
}

func (t *ActiveIndexTracker) emit(idx int) (int, bool) {
	if idx == t.last {
		return t.last, false
	}
	t.last = idx
	return idx, true
}

// Current returns the last emitted index.
func (t *ActiveIndexTracker) Current() int { return t.last }

// Offset returns the last sampled scroll offset.
func (t *ActiveIndexTracker) Offset() float64 { return t.offset }

// Extent returns the last sampled viewport extent.
func (t *ActiveIndexTracker) Extent() float64 { return t.extent }
