package catalog

import (
	"fmt"
	"strconv"
)

// Kind identifies the type of a cell value.
type Kind int

// Supported cell kinds. KindMissing marks a value explicitly absent,
// distinct from a zero of any other kind.
const (
	KindMissing Kind = iota
	KindFloat
	KindInt
	KindString
	KindBool
)

// Value is one cell of a catalog table: a tagged union of the supported
// kinds with an explicit missing state.
type Value struct {
	kind Kind
	f    float64
	i    int64
	s    string
	b    bool
}

// Missing returns the explicitly-absent value.
func Missing() Value { return Value{} }

// Float returns a float cell value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Int returns an integer cell value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Str returns a string cell value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean cell value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is explicitly absent.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Float returns the value as a float64. Integer cells are widened; any
// other kind reports false.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Int returns the value as an int64. Only integer cells report true.
func (v Value) Int() (int64, bool) {
	if v.kind == KindInt {
		return v.i, true
	}
	return 0, false
}

// Str returns the value as a string. Only string cells report true.
func (v Value) Str() (string, bool) {
	if v.kind == KindString {
		return v.s, true
	}
	return "", false
}

// Bool returns the value as a bool. Integer cells are truthy when nonzero,
// matching 0/1 flag columns.
func (v Value) Bool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt:
		return v.i != 0, true
	}
	return false, false
}

// Equal reports whether two values have the same kind and contents.
func (v Value) Equal(o Value) bool { return v == o }

// String formats the value for display. Missing values format as "--",
// the way masked table entries print.
func (v Value) String() string {
	switch v.kind {
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	}
	return "--"
}

// FromAny converts a decoded YAML/JSON scalar into a Value. Nil becomes
// the missing value.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Missing(), nil
	case float64:
		return Float(t), nil
	case float32:
		return Float(float64(t)), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Int(int64(t)), nil
	case string:
		return Str(t), nil
	case bool:
		return Bool(t), nil
	}
	return Value{}, fmt.Errorf("unsupported cell type %T", x)
}

// ToAny converts a Value to a plain scalar for encoding. Missing values
// become nil.
func (v Value) ToAny() any {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	case KindString:
		return v.s
	case KindBool:
		return v.b
	}
	return nil
}
