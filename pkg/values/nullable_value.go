package values

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	voxi "github.com/vaniusrb/voxi-core"
)

// NullableValue is a typed literal that may be SQL NULL. A null keeps the
// ValueType it was declared with.
type NullableValue struct {
	value Value
	valid bool
}

// Null creates a null of type t.
func Null(t ValueType) NullableValue {
	return NullableValue{value: Value{typ: t}}
}

// Nullable wraps v as a non-null NullableValue.
func Nullable(v Value) NullableValue {
	return v.Nullable()
}

// NullableOf narrows a Go value into a NullableValue. Besides every input
// accepted by ValueOf, it accepts NullableValue and pointers to the supported
// payload types, where a nil pointer becomes a typed null.
func NullableOf(x any) (NullableValue, error) {
	switch v := x.(type) {
	case NullableValue:
		return v, nil
	case *string:
		return fromPtr(v, ValueTypeString, String), nil
	case *int32:
		return fromPtr(v, ValueTypeInt32, Int32), nil
	case *int64:
		return fromPtr(v, ValueTypeInt64, Int64), nil
	case *bool:
		return fromPtr(v, ValueTypeBoolean, Bool), nil
	case *uuid.UUID:
		return fromPtr(v, ValueTypeUUID, UUID), nil
	case *decimal.Decimal:
		return fromPtr(v, ValueTypeDecimal, Decimal), nil
	case *time.Time:
		return fromPtr(v, ValueTypeDateTime, DateTime), nil
	}
	val, err := ValueOf(x)
	if err != nil {
		return NullableValue{}, err
	}
	return Nullable(val), nil
}

func fromPtr[T any](p *T, t ValueType, build func(T) Value) NullableValue {
	if p == nil {
		return Null(t)
	}
	return Nullable(build(*p))
}

// IsNull reports whether n holds no payload.
func (n NullableValue) IsNull() bool { return !n.valid }

// Type returns the declared tag of n, null or not.
func (n NullableValue) Type() ValueType { return n.value.typ }

// AsValue returns the payload of n, failing with a ConversionError that wraps
// ErrValueIsNull when n is null.
func (n NullableValue) AsValue() (Value, error) {
	if !n.valid {
		return Value{}, &voxi.ConversionError{Source: "NULL", Type: n.value.typ.String(), Err: voxi.ErrValueIsNull}
	}
	return n.value, nil
}

// AsString narrows n to a string.
func (n NullableValue) AsString() (string, error) {
	v, err := n.AsValue()
	if err != nil {
		return "", err
	}
	return v.AsString()
}

// AsUUID narrows n to a uuid.UUID.
func (n NullableValue) AsUUID() (uuid.UUID, error) {
	v, err := n.AsValue()
	if err != nil {
		return uuid.Nil, err
	}
	return v.AsUUID()
}

// AsInt32 narrows n to an int32.
func (n NullableValue) AsInt32() (int32, error) {
	v, err := n.AsValue()
	if err != nil {
		return 0, err
	}
	return v.AsInt32()
}

// AsInt64 narrows n to an int64.
func (n NullableValue) AsInt64() (int64, error) {
	v, err := n.AsValue()
	if err != nil {
		return 0, err
	}
	return v.AsInt64()
}

// AsDecimal narrows n to a decimal.Decimal.
func (n NullableValue) AsDecimal() (decimal.Decimal, error) {
	v, err := n.AsValue()
	if err != nil {
		return decimal.Zero, err
	}
	return v.AsDecimal()
}

// AsBool narrows n to a bool.
func (n NullableValue) AsBool() (bool, error) {
	v, err := n.AsValue()
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// AsDate narrows n to a date at midnight UTC.
func (n NullableValue) AsDate() (time.Time, error) {
	v, err := n.AsValue()
	if err != nil {
		return time.Time{}, err
	}
	return v.AsDate()
}

// AsDateTime narrows n to a time.Time.
func (n NullableValue) AsDateTime() (time.Time, error) {
	v, err := n.AsValue()
	if err != nil {
		return time.Time{}, err
	}
	return v.AsDateTime()
}

// AsJSON narrows n to its raw JSON document.
func (n NullableValue) AsJSON() (json.RawMessage, error) {
	v, err := n.AsValue()
	if err != nil {
		return nil, err
	}
	return v.AsJSON()
}

func (n NullableValue) String() string {
	if !n.valid {
		return "NULL"
	}
	return n.value.String()
}

// SQL renders n as an inline literal, or NULL.
func (n NullableValue) SQL() string {
	if !n.valid {
		return "NULL"
	}
	return n.value.SQL()
}

// Value implements driver.Valuer.
func (n NullableValue) Value() (driver.Value, error) {
	if !n.valid {
		return nil, nil
	}
	return n.value.Value()
}

// Equal reports whether n and o have the same tag, nullness and payload.
func (n NullableValue) Equal(o NullableValue) bool {
	return n.Compare(o) == 0
}

// Compare orders by tag, then nulls before non-nulls, then payload.
func (n NullableValue) Compare(o NullableValue) int {
	if n.value.typ != o.value.typ {
		return cmpInt(int(n.value.typ), int(o.value.typ))
	}
	switch {
	case !n.valid && !o.valid:
		return 0
	case !n.valid:
		return -1
	case !o.valid:
		return 1
	}
	return n.value.Compare(o.value)
}
