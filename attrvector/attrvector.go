// Package attrvector implements the bit-packed unsigned-integer code
// sequence backing a dictionary segment's attribute vector. Three
// monomorphic variants exist, one per supported width; width is chosen at
// construction and fixed thereafter.
package attrvector

import (
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/rowid"
)

// AttributeVector addresses a sequence of dictionary codes by position.
// Set only ever extends the vector by one (at index == Size()) or
// overwrites an existing entry; writing past Size() fails.
type AttributeVector interface {
	Get(i int) (rowid.ValueID, error)
	Set(i int, code rowid.ValueID) error
	Size() int
	Width() int // bytes per element: 1, 2, or 4
}

// New allocates an empty attribute vector of the given width in bits.
// Widths other than 8, 16, 32 are rejected.
func New(widthBits int) (AttributeVector, error) {
	switch widthBits {
	case 8:
		return &vector8{}, nil
	case 16:
		return &vector16{}, nil
	case 32:
		return &vector32{}, nil
	default:
		return nil, coreerr.New(coreerr.PreconditionViolation, "unsupported attribute vector width %d bits", widthBits)
	}
}

type vector8 struct{ data []uint8 }

func (v *vector8) Get(i int) (rowid.ValueID, error) {
	if i < 0 || i >= len(v.data) {
		return 0, coreerr.New(coreerr.OutOfRange, "index %d out of range (size %d)", i, len(v.data))
	}
	return rowid.ValueID(v.data[i]), nil
}

func (v *vector8) Set(i int, code rowid.ValueID) error {
	switch {
	case i == len(v.data):
		v.data = append(v.data, uint8(code))
	case i >= 0 && i < len(v.data):
		v.data[i] = uint8(code)
	default:
		return coreerr.New(coreerr.PreconditionViolation, "cannot set index %d past size %d", i, len(v.data))
	}
	return nil
}

func (v *vector8) Size() int  { return len(v.data) }
func (v *vector8) Width() int { return 1 }

type vector16 struct{ data []uint16 }

func (v *vector16) Get(i int) (rowid.ValueID, error) {
	if i < 0 || i >= len(v.data) {
		return 0, coreerr.New(coreerr.OutOfRange, "index %d out of range (size %d)", i, len(v.data))
	}
	return rowid.ValueID(v.data[i]), nil
}

func (v *vector16) Set(i int, code rowid.ValueID) error {
	switch {
	case i == len(v.data):
		v.data = append(v.data, uint16(code))
	case i >= 0 && i < len(v.data):
		v.data[i] = uint16(code)
	default:
		return coreerr.New(coreerr.PreconditionViolation, "cannot set index %d past size %d", i, len(v.data))
	}
	return nil
}

func (v *vector16) Size() int  { return len(v.data) }
func (v *vector16) Width() int { return 2 }

type vector32 struct{ data []uint32 }

func (v *vector32) Get(i int) (rowid.ValueID, error) {
	if i < 0 || i >= len(v.data) {
		return 0, coreerr.New(coreerr.OutOfRange, "index %d out of range (size %d)", i, len(v.data))
	}
	return rowid.ValueID(v.data[i]), nil
}

func (v *vector32) Set(i int, code rowid.ValueID) error {
	switch {
	case i == len(v.data):
		v.data = append(v.data, uint32(code))
	case i >= 0 && i < len(v.data):
		v.data[i] = uint32(code)
	default:
		return coreerr.New(coreerr.PreconditionViolation, "cannot set index %d past size %d", i, len(v.data))
	}
	return nil
}

func (v *vector32) Size() int  { return len(v.data) }
func (v *vector32) Width() int { return 4 }

// SelectWidth returns the minimum width in bits that can encode n distinct
// codes, per the rule W=8 if n<=2^8, else 16 if n<=2^16, else 32 if
// n<=2^32, else fails with CapacityExceeded.
func SelectWidth(n int) (int, error) {
	switch {
	case n <= 1<<8:
		return 8, nil
	case n <= 1<<16:
		return 16, nil
	case uint64(n) <= uint64(1)<<32:
		return 32, nil
	default:
		return 0, coreerr.New(coreerr.CapacityExceeded, "dictionary cardinality %d exceeds 2^32", n)
	}
}
