package values

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	voxi "github.com/vaniusrb/voxi-core"
)

// Layouts used to format and parse Date and DateTime payloads.
const (
	FormatDate     = "2006-01-02"
	FormatDateTime = "2006-01-02T15:04:05"
)

// Value is an immutable, non-null typed literal. The zero Value is an empty
// String.
type Value struct {
	typ ValueType
	v   any
}

// String creates a String value.
func String(s string) Value { return Value{typ: ValueTypeString, v: s} }

// UUID creates a Uuid value.
func UUID(u uuid.UUID) Value { return Value{typ: ValueTypeUUID, v: u} }

// Int32 creates an Int32 value.
func Int32(i int32) Value { return Value{typ: ValueTypeInt32, v: i} }

// Int64 creates an Int64 value.
func Int64(i int64) Value { return Value{typ: ValueTypeInt64, v: i} }

// Decimal creates a Decimal value.
func Decimal(d decimal.Decimal) Value { return Value{typ: ValueTypeDecimal, v: d} }

// Bool creates a Boolean value.
func Bool(b bool) Value { return Value{typ: ValueTypeBoolean, v: b} }

// Date creates a Date value. Only the calendar day of t is kept.
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{typ: ValueTypeDate, v: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// DateTime creates a DateTime value with second precision and no zone.
func DateTime(t time.Time) Value {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return Value{typ: ValueTypeDateTime, v: time.Date(y, mo, d, h, mi, s, 0, time.UTC)}
}

// JSON creates a Json value holding a copy of raw.
func JSON(raw json.RawMessage) Value {
	return Value{typ: ValueTypeJSON, v: json.RawMessage(bytes.Clone(raw))}
}

// ValueOf narrows a Go value into a Value. Supported inputs are Value,
// string, int, int32, int64, bool, float64 (as Decimal), uuid.UUID,
// decimal.Decimal, time.Time (as DateTime) and json.RawMessage.
func ValueOf(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case string:
		return String(v), nil
	case int:
		return Int64(int64(v)), nil
	case int32:
		return Int32(v), nil
	case int64:
		return Int64(v), nil
	case bool:
		return Bool(v), nil
	case float64:
		return Decimal(decimal.NewFromFloat(v)), nil
	case uuid.UUID:
		return UUID(v), nil
	case decimal.Decimal:
		return Decimal(v), nil
	case time.Time:
		return DateTime(v), nil
	case json.RawMessage:
		return JSON(v), nil
	default:
		return Value{}, &voxi.ConversionError{Source: fmt.Sprintf("%T", x), Type: "Value"}
	}
}

// Parse converts text into a Value of type t.
func Parse(t ValueType, text string) (Value, error) {
	fail := func(err error) (Value, error) {
		return Value{}, &voxi.ConversionError{Source: text, Type: t.String(), Err: err}
	}
	switch t {
	case ValueTypeString:
		return String(text), nil
	case ValueTypeUUID:
		u, err := uuid.Parse(text)
		if err != nil {
			return fail(err)
		}
		return UUID(u), nil
	case ValueTypeInt32:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 32)
		if err != nil {
			return fail(err)
		}
		return Int32(int32(i)), nil
	case ValueTypeInt64:
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return fail(err)
		}
		return Int64(i), nil
	case ValueTypeDecimal:
		d, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return fail(err)
		}
		return Decimal(d), nil
	case ValueTypeBoolean:
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return fail(err)
		}
		return Bool(b), nil
	case ValueTypeDate:
		d, err := time.Parse(FormatDate, text)
		if err != nil {
			return fail(err)
		}
		return Date(d), nil
	case ValueTypeDateTime:
		dt, err := time.Parse(FormatDateTime, text)
		if err != nil {
			var rfcErr error
			dt, rfcErr = time.Parse(time.RFC3339, text)
			if rfcErr != nil {
				return fail(err)
			}
		}
		return DateTime(dt), nil
	case ValueTypeJSON:
		if !json.Valid([]byte(text)) {
			return fail(fmt.Errorf("invalid json"))
		}
		return JSON(json.RawMessage(text)), nil
	default:
		return fail(fmt.Errorf("unknown value type"))
	}
}

// Type returns the tag of v.
func (v Value) Type() ValueType { return v.typ }

// Any returns the payload as its Go type.
func (v Value) Any() any {
	if v.v == nil && v.typ == ValueTypeString {
		return ""
	}
	return v.v
}

func (v Value) mismatch(want ValueType) error {
	return &voxi.ConversionError{
		Source: v.String(),
		Type:   want.String(),
		Err:    fmt.Errorf("value type is %s", v.typ),
	}
}

// AsString narrows v to a string.
func (v Value) AsString() (string, error) {
	if v.typ != ValueTypeString {
		return "", v.mismatch(ValueTypeString)
	}
	s, _ := v.v.(string)
	return s, nil
}

// AsUUID narrows v to a uuid.UUID.
func (v Value) AsUUID() (uuid.UUID, error) {
	if v.typ != ValueTypeUUID {
		return uuid.Nil, v.mismatch(ValueTypeUUID)
	}
	return v.v.(uuid.UUID), nil
}

// AsInt32 narrows v to an int32.
func (v Value) AsInt32() (int32, error) {
	if v.typ != ValueTypeInt32 {
		return 0, v.mismatch(ValueTypeInt32)
	}
	return v.v.(int32), nil
}

// AsInt64 narrows v to an int64.
func (v Value) AsInt64() (int64, error) {
	if v.typ != ValueTypeInt64 {
		return 0, v.mismatch(ValueTypeInt64)
	}
	return v.v.(int64), nil
}

// AsDecimal narrows v to a decimal.Decimal.
func (v Value) AsDecimal() (decimal.Decimal, error) {
	if v.typ != ValueTypeDecimal {
		return decimal.Zero, v.mismatch(ValueTypeDecimal)
	}
	return v.v.(decimal.Decimal), nil
}

// AsBool narrows v to a bool.
func (v Value) AsBool() (bool, error) {
	if v.typ != ValueTypeBoolean {
		return false, v.mismatch(ValueTypeBoolean)
	}
	return v.v.(bool), nil
}

// AsDate narrows v to a time.Time at midnight UTC.
func (v Value) AsDate() (time.Time, error) {
	if v.typ != ValueTypeDate {
		return time.Time{}, v.mismatch(ValueTypeDate)
	}
	return v.v.(time.Time), nil
}

// AsDateTime narrows v to a time.Time.
func (v Value) AsDateTime() (time.Time, error) {
	if v.typ != ValueTypeDateTime {
		return time.Time{}, v.mismatch(ValueTypeDateTime)
	}
	return v.v.(time.Time), nil
}

// AsJSON narrows v to its raw JSON document.
func (v Value) AsJSON() (json.RawMessage, error) {
	if v.typ != ValueTypeJSON {
		return nil, v.mismatch(ValueTypeJSON)
	}
	return bytes.Clone(v.v.(json.RawMessage)), nil
}

// String returns the plain text form of the payload, without SQL quoting.
func (v Value) String() string {
	switch p := v.v.(type) {
	case nil:
		return ""
	case string:
		return p
	case uuid.UUID:
		return p.String()
	case int32:
		return strconv.FormatInt(int64(p), 10)
	case int64:
		return strconv.FormatInt(p, 10)
	case decimal.Decimal:
		return p.String()
	case bool:
		return strconv.FormatBool(p)
	case time.Time:
		if v.typ == ValueTypeDate {
			return p.Format(FormatDate)
		}
		return p.Format(FormatDateTime)
	case json.RawMessage:
		return string(p)
	default:
		return fmt.Sprint(p)
	}
}

// SQL renders v as an inline SQL literal. Text-like payloads are single
// quoted with embedded quotes doubled; numbers and booleans are bare.
func (v Value) SQL() string {
	switch v.typ {
	case ValueTypeInt32, ValueTypeInt64, ValueTypeDecimal, ValueTypeBoolean:
		return v.String()
	default:
		return quoteLiteral(v.String())
	}
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Value implements driver.Valuer so a Value can be passed as a statement
// argument to database/sql drivers.
func (v Value) Value() (driver.Value, error) {
	switch p := v.v.(type) {
	case nil:
		return "", nil
	case int32:
		return int64(p), nil
	case uuid.UUID, decimal.Decimal:
		return v.String(), nil
	case json.RawMessage:
		return string(p), nil
	default:
		return p, nil
	}
}

// Equal reports whether v and o have the same tag and payload.
func (v Value) Equal(o Value) bool {
	return v.Compare(o) == 0
}

// Compare orders values by tag first and payload second. It returns -1, 0
// or +1.
func (v Value) Compare(o Value) int {
	if v.typ != o.typ {
		return cmpInt(int(v.typ), int(o.typ))
	}
	switch a := v.Any().(type) {
	case string:
		return strings.Compare(a, o.Any().(string))
	case uuid.UUID:
		b := o.v.(uuid.UUID)
		return bytes.Compare(a[:], b[:])
	case int32:
		return cmpInt(int(a), int(o.v.(int32)))
	case int64:
		b := o.v.(int64)
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	case decimal.Decimal:
		return a.Cmp(o.v.(decimal.Decimal))
	case bool:
		b := o.v.(bool)
		switch {
		case a == b:
			return 0
		case !a:
			return -1
		}
		return 1
	case time.Time:
		return a.Compare(o.v.(time.Time))
	case json.RawMessage:
		return bytes.Compare(a, o.v.(json.RawMessage))
	}
	return 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Nullable lifts v into a non-null NullableValue of the same type.
func (v Value) Nullable() NullableValue {
	return NullableValue{value: v, valid: true}
}
