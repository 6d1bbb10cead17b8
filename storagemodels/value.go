/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
)

// Kind identifies the dynamic type carried by a Value.
type Kind uint8

const (
	// KindNull is the kind of the empty, unset Value.
	KindNull Kind = iota
	KindInt
	KindInt64
	KindString
	KindBool
	KindFloat64
	KindDateTime
)

var kindNames = map[Kind]string{
	KindNull:     "null",
	KindInt:      "int",
	KindInt64:    "int64",
	KindString:   "string",
	KindBool:     "bool",
	KindFloat64:  "float64",
	KindDateTime: "datetime",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a kind by the name returned from Kind.String.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return KindNull, fmt.Errorf("unknown kind %q", name)
}

// Scalar lists the Go types that can be stored in a Value.
type Scalar interface {
	int | int64 | string | bool | float64 | strfmt.DateTime
}

// Value is a type-erased cell. Only the field matching kind is meaningful.
type Value struct {
	kind Kind

	i  int64
	s  string
	b  bool
	f  float64
	dt strfmt.DateTime
}

// Null returns the empty Value.
func Null() Value { return Value{} }

func IntValue(v int) Value { return Value{kind: KindInt, i: int64(v)} }

func Int64Value(v int64) Value { return Value{kind: KindInt64, i: v} }

func StringValue(v string) Value { return Value{kind: KindString, s: v} }

func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

func Float64Value(v float64) Value { return Value{kind: KindFloat64, f: v} }

func DateTimeValue(v strfmt.DateTime) Value { return Value{kind: KindDateTime, dt: v} }

// ValueOf erases a typed scalar.
func ValueOf[F Scalar](v F) Value {
	switch tv := any(v).(type) {
	case int:
		return IntValue(tv)
	case int64:
		return Int64Value(tv)
	case string:
		return StringValue(tv)
	case bool:
		return BoolValue(tv)
	case float64:
		return Float64Value(tv)
	case strfmt.DateTime:
		return DateTimeValue(tv)
	}
	panic(fmt.Sprintf("storagemodels: unreachable scalar type %T", v))
}

// KindOf returns the kind a scalar type erases to.
func KindOf[F Scalar]() Kind {
	var zero F
	return ValueOf(zero).kind
}

// As recovers the typed scalar from v. ok is false when v does not carry
// exactly the kind of F; a null Value never casts.
func As[F Scalar](v Value) (F, bool) {
	var zero F
	if v.kind != KindOf[F]() {
		return zero, false
	}
	out, _ := v.Interface().(F)
	return out, true
}

// FromInterface erases a Go value of one of the scalar types. A nil input
// yields the null Value.
func FromInterface(x any) (Value, bool) {
	switch tv := x.(type) {
	case nil:
		return Null(), true
	case Value:
		return tv, true
	case int:
		return IntValue(tv), true
	case int64:
		return Int64Value(tv), true
	case string:
		return StringValue(tv), true
	case bool:
		return BoolValue(tv), true
	case float64:
		return Float64Value(tv), true
	case strfmt.DateTime:
		return DateTimeValue(tv), true
	}
	return Null(), false
}

func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the empty Value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Interface returns the payload as a Go value, or nil for a null Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return int(v.i)
	case KindInt64:
		return v.i
	case KindString:
		return v.s
	case KindBool:
		return v.b
	case KindFloat64:
		return v.f
	case KindDateTime:
		return v.dt
	}
	return nil
}

// Same reports whether v and o carry the same kind and an equal payload.
func (v Value) Same(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindInt, KindInt64:
		return v.i == o.i
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.b == o.b
	case KindFloat64:
		return v.f == o.f
	case KindDateTime:
		return time.Time(v.dt).Equal(time.Time(o.dt))
	}
	return false
}

// String renders the payload. Keys are encoded with it, so the form for a
// given kind must stay stable.
func (v Value) String() string {
	switch v.kind {
	case KindInt, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindString:
		return v.s
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDateTime:
		return v.dt.String()
	}
	return "<null>"
}

// IntPayload returns the integer payload of an Int or Int64 value.
func (v Value) IntPayload() (int64, bool) {
	if v.kind != KindInt && v.kind != KindInt64 {
		return 0, false
	}
	return v.i, true
}

// WithInt builds a value of kind k (KindInt or KindInt64) from n.
func WithInt(k Kind, n int64) (Value, bool) {
	switch k {
	case KindInt:
		return IntValue(int(n)), true
	case KindInt64:
		return Int64Value(n), true
	}
	return Null(), false
}
