// Package coltype names the closed set of column element types the engine
// is parameterized over: 32/64-bit signed integers, single/double precision
// floats, and variable-length text.
package coltype

import "fmt"

type ValueType uint8

const (
	Int32 ValueType = iota
	Int64
	Float32
	Float64
	String
)

func (t ValueType) String() string {
	switch t {
	case Int32:
		return "int"
	case Int64:
		return "long"
	case Float32:
		return "float"
	case Float64:
		return "double"
	case String:
		return "string"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// FromTag resolves one of the schema type tag strings ("int", "long",
// "float", "double", "string") to its ValueType.
func FromTag(tag string) (ValueType, error) {
	switch tag {
	case "int":
		return Int32, nil
	case "long":
		return Int64, nil
	case "float":
		return Float32, nil
	case "double":
		return Float64, nil
	case "string":
		return String, nil
	default:
		return 0, fmt.Errorf("unknown column type tag %q", tag)
	}
}
