package storage

import (
	"github.com/oss-dyod/coredb/coltype"
	"github.com/oss-dyod/coredb/coreerr"
)

// newValueSegmentFor and compressSegment are this package's dispatch sites
// for column element types: each switches on coltype.ValueType and
// delegates to the matching generic instantiation, rather than routing
// per-cell through reflection. Adding an element type adds a case to both.
func newValueSegmentFor(typ coltype.ValueType) Segment {
	switch typ {
	case coltype.Int32:
		return NewValueSegment[int32](typ)
	case coltype.Int64:
		return NewValueSegment[int64](typ)
	case coltype.Float32:
		return NewValueSegment[float32](typ)
	case coltype.Float64:
		return NewValueSegment[float64](typ)
	case coltype.String:
		return NewValueSegment[string](typ)
	default:
		panic("unhandled column type in newValueSegmentFor")
	}
}

// compressSegment builds the dictionary-encoded replacement for s, which
// must be the *ValueSegment[T] matching typ.
func compressSegment(s Segment, typ coltype.ValueType) (Segment, error) {
	switch typ {
	case coltype.Int32:
		vs, ok := s.(*ValueSegment[int32])
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "segment is not an uncompressed int32 value segment")
		}
		return BuildDictionarySegment(vs)
	case coltype.Int64:
		vs, ok := s.(*ValueSegment[int64])
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "segment is not an uncompressed int64 value segment")
		}
		return BuildDictionarySegment(vs)
	case coltype.Float32:
		vs, ok := s.(*ValueSegment[float32])
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "segment is not an uncompressed float32 value segment")
		}
		return BuildDictionarySegment(vs)
	case coltype.Float64:
		vs, ok := s.(*ValueSegment[float64])
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "segment is not an uncompressed float64 value segment")
		}
		return BuildDictionarySegment(vs)
	case coltype.String:
		vs, ok := s.(*ValueSegment[string])
		if !ok {
			return nil, coreerr.New(coreerr.PreconditionViolation, "segment is not an uncompressed string value segment")
		}
		return BuildDictionarySegment(vs)
	default:
		panic("unhandled column type in compressSegment")
	}
}
