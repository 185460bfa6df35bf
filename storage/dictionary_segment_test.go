package storage

import (
	"testing"

	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/predicate"
	"github.com/oss-dyod/coredb/rowid"
)

// Builds a dictionary over already-sorted, already-distinct values.
func TestDictionarySegmentBuild(t *testing.T) {
	vs := NewValueSegment[int32](coltype.Int32)
	for _, v := range []int32{0, 2, 4, 6, 8, 10} {
		_ = vs.Append(v)
	}

	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}

	if got := d.UniqueValuesCount(); got != 6 {
		t.Errorf("UniqueValuesCount() = %d, want 6", got)
	}
	want := []int32{0, 2, 4, 6, 8, 10}
	if !equalInt32s(d.Dictionary(), want) {
		t.Errorf("Dictionary() = %v, want %v", d.Dictionary(), want)
	}
	if got := d.AttributeVector().Width(); got != 1 {
		t.Errorf("attribute vector width = %d, want 1", got)
	}

	if got := d.LowerBound(4); got != 2 {
		t.Errorf("LowerBound(4) = %d, want 2", got)
	}
	if got := d.UpperBound(4); got != 3 {
		t.Errorf("UpperBound(4) = %d, want 3", got)
	}
	if got := d.LowerBound(5); got != 3 {
		t.Errorf("LowerBound(5) = %d, want 3", got)
	}
	if got := d.UpperBound(5); got != 3 {
		t.Errorf("UpperBound(5) = %d, want 3", got)
	}
	if got := d.LowerBound(15); got != rowid.InvalidValueID {
		t.Errorf("LowerBound(15) = %d, want INVALID", got)
	}

	if got, err := d.At(1); err != nil || got != int32(2) {
		t.Errorf("[1] = %v, err %v, want 2", got, err)
	}
	if got, err := d.At(3); err != nil || got != int32(6) {
		t.Errorf("[3] = %v, err %v, want 6", got, err)
	}
	if got, err := d.ValueOf(5); err != nil || got != int32(10) {
		t.Errorf("value_of(5) = %v, err %v, want 10", got, err)
	}

	if got := d.EstimateMemoryUsage(); got != 6*4+6*1 {
		t.Errorf("EstimateMemoryUsage() = %d, want %d", got, 6*4+6*1)
	}
}

// Attribute vector width escalates as the dictionary grows past each
// power-of-two boundary.
func TestDictionarySegmentWidthEscalation(t *testing.T) {
	vs := NewValueSegment[int32](coltype.Int32)
	for i := int32(0); i <= 257; i++ {
		_ = vs.Append(i)
	}
	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}
	if got := d.AttributeVector().Width(); got != 2 {
		t.Errorf("width after 258 distinct values = %d, want 2", got)
	}

	vs2 := NewValueSegment[int32](coltype.Int32)
	for i := int32(0); i <= 65537; i++ {
		_ = vs2.Append(i)
	}
	d2, err := BuildDictionarySegment(vs2)
	if err != nil {
		t.Fatal(err)
	}
	if got := d2.AttributeVector().Width(); got != 4 {
		t.Errorf("width after 65538 distinct values = %d, want 4", got)
	}
}

// String dictionaries sort and dedupe lexicographically.
func TestDictionarySegmentStringOrdering(t *testing.T) {
	vs := NewValueSegment[string](coltype.String)
	for _, v := range []string{"Bill", "Steve", "Alexander", "Steve", "Hasso", "Bill"} {
		_ = vs.Append(v)
	}
	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Alexander", "Bill", "Hasso", "Steve"}
	if !equalStrings(d.Dictionary(), want) {
		t.Errorf("Dictionary() = %v, want %v", d.Dictionary(), want)
	}
	if got := d.Size(); got != 6 {
		t.Errorf("Size() = %d, want 6", got)
	}
	if got := d.UniqueValuesCount(); got != 4 {
		t.Errorf("UniqueValuesCount() = %d, want 4", got)
	}
}

// Compressing and reading back via At(i) must yield the original
// values at every position.
func TestDictionarySegmentRoundTrip(t *testing.T) {
	raw := []int64{5, 1, 5, 3, 9, 1, 3, 3}
	vs := NewValueSegment[int64](coltype.Int64)
	for _, v := range raw {
		_ = vs.Append(v)
	}
	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range raw {
		got, err := d.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != want {
			t.Errorf("At(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestDictionarySegmentAppendRejected(t *testing.T) {
	vs := NewValueSegment[int32](coltype.Int32)
	_ = vs.Append(int32(1))
	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Append(int32(2)); err == nil {
		t.Fatal("expected error appending to a dictionary segment")
	}
}

// Every predicate against an empty dictionary emits nothing.
func TestDictionarySegmentScanEmptyDictionaryEmitsNothing(t *testing.T) {
	vs := NewValueSegment[int32](coltype.Int32)
	d, err := BuildDictionarySegment(vs)
	if err != nil {
		t.Fatal(err)
	}
	if d.UniqueValuesCount() != 0 {
		t.Fatalf("UniqueValuesCount() = %d, want 0", d.UniqueValuesCount())
	}

	for _, pred := range []predicate.Condition{
		predicate.Equals, predicate.NotEquals,
		predicate.LessThan, predicate.LessThanEquals,
		predicate.GreaterThan, predicate.GreaterThanEquals,
	} {
		matched, err := d.ScanPositions(pred, int32(5), nil)
		if err != nil {
			t.Fatalf("ScanPositions(%v): %v", pred, err)
		}
		if len(matched) != 0 {
			t.Errorf("ScanPositions(%v) against empty dictionary = %v, want none", pred, matched)
		}
	}
}

func equalInt32s(a, b []int32) bool {
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

func equalStrings(a, b []string) bool {
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
