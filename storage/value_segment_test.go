package storage

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/predicate"
)

func TestValueSegmentAppendAndAt(t *testing.T) {
	seg := NewValueSegment[int32](coltype.Int32)
	for _, v := range []int32{1, 2, 3, 4, 5} {
		if err := seg.Append(v); err != nil {
			t.Fatalf("Append(%d): %v", v, err)
		}
	}
	if seg.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", seg.Size())
	}
	got, err := seg.At(3)
	if err != nil {
		t.Fatal(err)
	}
	if got != int32(4) {
		t.Errorf("At(3) = %v, want 4", got)
	}
}

func TestValueSegmentAppendTypeMismatch(t *testing.T) {
	seg := NewValueSegment[int32](coltype.Int32)
	if err := seg.Append("not an int32"); err == nil {
		t.Fatal("expected type mismatch error")
	}
}

func TestValueSegmentAtOutOfRange(t *testing.T) {
	seg := NewValueSegment[int32](coltype.Int32)
	if _, err := seg.At(0); err == nil {
		t.Fatal("expected out-of-range error on empty segment")
	}
}

// A single int column [1,2,3,4,5] scanned with predicate > 2 yields
// [2,3,4] (local offsets within the single chunk).
func TestValueSegmentScanGreaterThan(t *testing.T) {
	seg := NewValueSegment[int32](coltype.Int32)
	for _, v := range []int32{1, 2, 3, 4, 5} {
		_ = seg.Append(v)
	}

	offsets := []int{0, 1, 2, 3, 4}
	matched, err := seg.ScanPositions(predicate.GreaterThan, int32(2), offsets)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{2, 3, 4}
	if !equalInts(matched, want) {
		t.Errorf("matched = %v, want %v\n%s", matched, want, spew.Sdump(seg))
	}
}

func TestValueSegmentScanSparsePreservesOrder(t *testing.T) {
	seg := NewValueSegment[int32](coltype.Int32)
	for _, v := range []int32{10, 20, 30, 40} {
		_ = seg.Append(v)
	}

	// offsets deliberately out of ascending order
	offsets := []int{3, 1, 0, 2}
	matched, err := seg.ScanPositions(predicate.GreaterThanEquals, int32(20), offsets)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{3, 1, 2}
	if !equalInts(matched, want) {
		t.Errorf("matched = %v, want %v", matched, want)
	}
}

func TestValueSegmentFloatEqualityNaNNeverMatches(t *testing.T) {
	seg := NewValueSegment[float64](coltype.Float64)
	nan := math.NaN()
	for _, v := range []float64{1.0, nan, 2.0} {
		_ = seg.Append(v)
	}
	matched, err := seg.ScanPositions(predicate.Equals, nan, []int{0, 1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(matched) != 0 {
		t.Errorf("expected no matches against NaN, got %v", matched)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
