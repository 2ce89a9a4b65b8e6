package vm

import (
	"fmt"
	"math"
	"strconv"
)

type ValueType uint8

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	TypeEmpty // internal "no value" marker, never visible to script
)

// String returns a human-readable string representation of the ValueType
func (vt ValueType) String() string {
	switch vt {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Value is the engine's tagged value representation. The zero Value is
// undefined.
type Value struct {
	typ ValueType
	num float64
	str string
	b   bool
	obj *Object
}

var (
	Undefined = Value{typ: TypeUndefined}
	Null      = Value{typ: TypeNull}
	True      = Value{typ: TypeBoolean, b: true}
	False     = Value{typ: TypeBoolean, b: false}
	// Empty marks "no value yet" in internal slots.
	Empty = Value{typ: TypeEmpty}
)

func NumberValue(f float64) Value  { return Value{typ: TypeNumber, num: f} }
func BooleanValue(b bool) Value    { return Value{typ: TypeBoolean, b: b} }
func StringValue(s string) Value   { return Value{typ: TypeString, str: s} }
func ObjectValue(o *Object) Value  { return Value{typ: TypeObject, obj: o} }

func (v Value) Type() ValueType   { return v.typ }
func (v Value) IsUndefined() bool { return v.typ == TypeUndefined }
func (v Value) IsNull() bool      { return v.typ == TypeNull }
func (v Value) IsNumber() bool    { return v.typ == TypeNumber }
func (v Value) IsString() bool    { return v.typ == TypeString }
func (v Value) IsObject() bool    { return v.typ == TypeObject }
func (v Value) IsEmpty() bool     { return v.typ == TypeEmpty }

func (v Value) AsNumber() float64 {
	if v.typ != TypeNumber {
		panic(fmt.Sprintf("vm: AsNumber on %s value", v.typ))
	}
	return v.num
}

func (v Value) AsBoolean() bool {
	if v.typ != TypeBoolean {
		panic(fmt.Sprintf("vm: AsBoolean on %s value", v.typ))
	}
	return v.b
}

func (v Value) AsString() string {
	if v.typ != TypeString {
		panic(fmt.Sprintf("vm: AsString on %s value", v.typ))
	}
	return v.str
}

func (v Value) AsObject() *Object {
	if v.typ != TypeObject {
		panic(fmt.Sprintf("vm: AsObject on %s value", v.typ))
	}
	return v.obj
}

// IsCallable reports whether the value is an object with [[Call]].
func (v Value) IsCallable() bool {
	return v.typ == TypeObject && v.obj.kind != KindOrdinary
}

// SameValue implements identity comparison as used for singleton checks:
// objects compare by pointer, numbers by bits (NaN equals NaN here).
func (v Value) SameValue(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeUndefined, TypeNull, TypeEmpty:
		return true
	case TypeBoolean:
		return v.b == other.b
	case TypeNumber:
		return math.Float64bits(v.num) == math.Float64bits(other.num)
	case TypeString:
		return v.str == other.str
	case TypeObject:
		return v.obj == other.obj
	default:
		return false
	}
}

// String renders the value for diagnostics and the REPL.
func (v Value) String() string {
	switch v.typ {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return strconv.FormatBool(v.b)
	case TypeNumber:
		return FormatNumber(v.num)
	case TypeString:
		return v.str
	case TypeObject:
		if v.obj.kind != KindOrdinary {
			return "function " + v.obj.class.String() + "() { [native code] }"
		}
		return "[object " + v.obj.class.String() + "]"
	case TypeEmpty:
		return "<empty>"
	default:
		return "<unknown>"
	}
}
