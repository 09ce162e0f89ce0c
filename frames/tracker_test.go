package frames

import (
	"math"
	"testing"
)

func TestComputeActiveIndex_RoundsToNearestAndClamps(t *testing.T) {
	cases := []struct {
		offset, extent float64
		count, want    int
	}{
		{0, 40, 5, 0},
		{19, 40, 5, 0},
		{20, 40, 5, 1},
		{61, 40, 5, 2},
		{1000, 40, 5, 4},
		{-30, 40, 5, 0},
		{10, 40, 0, NoIndex},
		{10, 0, 5, NoIndex},
		{1e20, 1, 5, 4},
		{math.Inf(1), 40, 5, 4},
		{math.MaxFloat64, 1e-300, 5, 4},
		{math.NaN(), 40, 5, NoIndex},
	}
	for _, tc := range cases {
		if got := ComputeActiveIndex(tc.offset, tc.extent, tc.count); got != tc.want {
			t.Fatalf("ComputeActiveIndex(%v,%v,%d)=%d want %d", tc.offset, tc.extent, tc.count, got, tc.want)
		}
	}
}

func TestOnScroll_EmitsOnlyOnChange(t *testing.T) {
	tr := NewActiveIndexTracker()

	idx, changed := tr.OnScroll(80, 40, 10)
	if !changed || idx != 2 {
		t.Fatalf("first sample: got %d,%v", idx, changed)
	}
	if _, changed := tr.OnScroll(80, 40, 10); changed {
		t.Fatalf("identical sample must not emit")
	}
	if _, changed := tr.OnScroll(83, 40, 10); changed {
		t.Fatalf("jitter within the same item must not emit")
	}
	if idx, changed := tr.OnScroll(120, 40, 10); !changed || idx != 3 {
		t.Fatalf("next item: got %d,%v", idx, changed)
	}
}

func TestOnScroll_EmptyFeedStaysDormant(t *testing.T) {
	tr := NewActiveIndexTracker()
	if _, changed := tr.OnScroll(0, 40, 0); changed {
		t.Fatalf("empty feed must not emit")
	}
	if tr.Current() != NoIndex {
		t.Fatalf("expected NoIndex, got %d", tr.Current())
	}
	if _, changed := tr.OnScroll(0, 0, 3); changed {
		t.Fatalf("zero extent sample must be ignored")
	}
}

func TestOnResize_RemapsSameOffset(t *testing.T) {
	tr := NewActiveIndexTracker()
	tr.OnScroll(120, 40, 10) // index 3

	idx, changed := tr.OnResize(60, 10)
	if !changed || idx != 2 {
		t.Fatalf("resize to 60 should map offset 120 to index 2, got %d,%v", idx, changed)
	}
	if tr.Extent() != 60 || tr.Offset() != 120 {
		t.Fatalf("resize must keep offset and record extent: %v %v", tr.Offset(), tr.Extent())
	}
}

func TestFocus_MovesOffset(t *testing.T) {
	tr := NewActiveIndexTracker()
	tr.OnScroll(0, 40, 10)
	if idx, changed := tr.Focus(4); !changed || idx != 4 {
		t.Fatalf("focus: got %d,%v", idx, changed)
	}
	if tr.Offset() != 160 {
		t.Fatalf("focus should align offset, got %v", tr.Offset())
	}
	if _, changed := tr.OnScroll(160, 40, 10); changed {
		t.Fatalf("sample at focused offset must not emit again")
	}
}

func TestOnScroll_NaNSampleKeepsIndex(t *testing.T) {
	tr := NewActiveIndexTracker()
	tr.OnScroll(80, 40, 10)

	if idx, changed := tr.OnScroll(math.NaN(), 40, 10); changed || idx != 2 {
		t.Fatalf("NaN offset must not move the index: got %d,%v", idx, changed)
	}
	if idx, changed := tr.OnScroll(math.Inf(1), 40, 10); !changed || idx != 9 {
		t.Fatalf("infinite offset must clamp to the last item: got %d,%v", idx, changed)
	}
	if tr.Offset() < 0 {
		t.Fatalf("offset must stay non-negative, got %v", tr.Offset())
	}
}
