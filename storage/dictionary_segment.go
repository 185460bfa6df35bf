package storage

import (
	"cmp"
	"slices"

	"github.com/oss-dyod/coredb/attrvector"
	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
	"github.com/oss-dyod/coredb/predicate"
	"github.com/oss-dyod/coredb/rowid"
)

// DictionarySegment owns a strictly-increasing sequence of distinct values
// (the dictionary) and an attribute vector mapping each source position to
// its dictionary code. Immutable once built.
type DictionarySegment[T cmp.Ordered] struct {
	typ        coltype.ValueType
	dictionary []T
	codes      attrvector.AttributeVector
}

// BuildDictionarySegment sorts and deduplicates src's values, picks the
// minimum code width that can address the result, and encodes every
// source position against it.
func BuildDictionarySegment[T cmp.Ordered](src *ValueSegment[T]) (*DictionarySegment[T], error) {
	working := make([]T, src.Size())
	copy(working, src.values)
	slices.Sort(working)
	dict := slices.Clip(slices.Compact(working))

	widthBits, err := attrvector.SelectWidth(len(dict))
	if err != nil {
		return nil, err
	}

	codes, err := attrvector.New(widthBits)
	if err != nil {
		return nil, err
	}

	for i, v := range src.values {
		pos, found := slices.BinarySearch(dict, v)
		if !found {
			return nil, coreerr.New(coreerr.PreconditionViolation, "value %v missing from its own dictionary", v)
		}
		if err := codes.Set(i, rowid.ValueID(pos)); err != nil {
			return nil, err
		}
	}

	return &DictionarySegment[T]{typ: src.typ, dictionary: dict, codes: codes}, nil
}

func (d *DictionarySegment[T]) Size() int               { return d.codes.Size() }
func (d *DictionarySegment[T]) Type() coltype.ValueType { return d.typ }

func (d *DictionarySegment[T]) Dictionary() []T                             { return d.dictionary }
func (d *DictionarySegment[T]) AttributeVector() attrvector.AttributeVector { return d.codes }
func (d *DictionarySegment[T]) UniqueValuesCount() int                     { return len(d.dictionary) }

func (d *DictionarySegment[T]) At(i int) (any, error) {
	code, err := d.codes.Get(i)
	if err != nil {
		return nil, err
	}
	return d.ValueOf(code)
}

func (d *DictionarySegment[T]) Append(any) error {
	return coreerr.New(coreerr.PreconditionViolation, "dictionary segments are immutable")
}

func (d *DictionarySegment[T]) EstimateMemoryUsage() int {
	return len(d.dictionary)*elementSize[T]() + d.Size()*d.codes.Width()
}

// LowerBound returns the position of the first dictionary entry >= v, or
// InvalidValueID if every entry is < v.
func (d *DictionarySegment[T]) LowerBound(v T) rowid.ValueID {
	idx, _ := slices.BinarySearch(d.dictionary, v)
	if idx >= len(d.dictionary) {
		return rowid.InvalidValueID
	}
	return rowid.ValueID(idx)
}

// UpperBound returns the position of the first dictionary entry > v, or
// InvalidValueID if none.
func (d *DictionarySegment[T]) UpperBound(v T) rowid.ValueID {
	idx, found := slices.BinarySearch(d.dictionary, v)
	if found {
		idx++
	}
	if idx >= len(d.dictionary) {
		return rowid.InvalidValueID
	}
	return rowid.ValueID(idx)
}

// ValueOf reverse-looks-up a code, range-checked.
func (d *DictionarySegment[T]) ValueOf(code rowid.ValueID) (T, error) {
	if int(code) >= len(d.dictionary) {
		var zero T
		return zero, coreerr.New(coreerr.OutOfRange, "code %d out of range (dictionary size %d)", code, len(d.dictionary))
	}
	return d.dictionary[code], nil
}

func (d *DictionarySegment[T]) ScanPositions(pred predicate.Condition, literal any, offsets []int) ([]int, error) {
	lit, ok := literal.(T)
	if !ok {
		return nil, coreerr.New(coreerr.TypeMismatch, "search literal %v (%T) does not match column type %s", literal, literal, d.typ)
	}

	lb := d.LowerBound(lit)
	ub := d.UpperBound(lit)
	present := lb != rowid.InvalidValueID && d.dictionary[lb] == lit

	var matches func(code rowid.ValueID) bool
	switch pred {
	case predicate.Equals:
		matches = func(code rowid.ValueID) bool { return present && code == lb }
	case predicate.NotEquals:
		matches = func(code rowid.ValueID) bool {
			if present {
				return code != lb
			}
			return true
		}
	case predicate.LessThan:
		matches = func(code rowid.ValueID) bool {
			if lb != rowid.InvalidValueID {
				return code < lb
			}
			return true
		}
	case predicate.LessThanEquals:
		matches = func(code rowid.ValueID) bool {
			switch {
			case ub == 0:
				return false
			case ub == rowid.InvalidValueID:
				return true
			default:
				return code <= ub-1
			}
		}
	case predicate.GreaterThan:
		matches = func(code rowid.ValueID) bool {
			if ub == rowid.InvalidValueID {
				return false
			}
			return code >= ub
		}
	case predicate.GreaterThanEquals:
		matches = func(code rowid.ValueID) bool {
			if lb == rowid.InvalidValueID {
				return false
			}
			return code >= lb
		}
	default:
		return nil, coreerr.New(coreerr.PreconditionViolation, "unsupported predicate %v", pred)
	}

	out := make([]int, 0, len(offsets))
	for _, i := range offsets {
		code, err := d.codes.Get(i)
		if err != nil {
			return nil, err
		}
		if matches(code) {
			out = append(out, i)
		}
	}
	return out, nil
}
