package attrvector

import (
	"testing"

	"github.com/oss-dyod/coredb/rowid"
)

func TestSelectWidth(t *testing.T) {
	cases := []struct {
		n    int
		want int
	}{
		{0, 8},
		{1, 8},
		{256, 8},
		{257, 16},
		{65536, 16},
		{65537, 32},
	}
	for _, c := range cases {
		got, err := SelectWidth(c.n)
		if err != nil {
			t.Fatalf("SelectWidth(%d): unexpected error: %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("SelectWidth(%d) = %d, want %d", c.n, got, c.want)
		}
	}
}

func TestSelectWidthExceedsCapacity(t *testing.T) {
	_, err := SelectWidth(1 << 33)
	if err == nil {
		t.Fatal("expected error for cardinality exceeding 2^32")
	}
}

func TestVectorAppendAndOverwrite(t *testing.T) {
	v, err := New(8)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		if err := v.Set(i, rowid.ValueID(i*2)); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
	}
	if v.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", v.Size())
	}

	if err := v.Set(2, rowid.ValueID(99)); err != nil {
		t.Fatalf("overwrite Set(2): %v", err)
	}
	got, err := v.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 99 {
		t.Errorf("Get(2) = %d, want 99", got)
	}
}

func TestVectorSetPastSizeFails(t *testing.T) {
	v, err := New(16)
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Set(0, 1); err != nil {
		t.Fatal(err)
	}
	if err := v.Set(5, 1); err == nil {
		t.Fatal("expected error writing past size")
	}
}

func TestVectorWidths(t *testing.T) {
	widths := map[int]int{8: 1, 16: 2, 32: 4}
	for bits, bytes := range widths {
		v, err := New(bits)
		if err != nil {
			t.Fatal(err)
		}
		if v.Width() != bytes {
			t.Errorf("width(%d bits) = %d bytes, want %d", bits, v.Width(), bytes)
		}
	}
}

func TestVectorGetOutOfRange(t *testing.T) {
	v, _ := New(8)
	if _, err := v.Get(0); err == nil {
		t.Fatal("expected error reading empty vector")
	}
}
