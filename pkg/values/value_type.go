// Package values is the typed literal model used by query expressions.
//
// A Value always carries one of the ValueType tags and a payload of the
// matching Go type. A NullableValue carries the same tags with an optional
// payload, so a SQL NULL keeps its declared type.
package values

import (
	"fmt"
	"strings"

	voxi "github.com/vaniusrb/voxi-core"
)

// ValueType is the tag of a Value. The declaration order is the total order
// used by Compare.
type ValueType int

const (
	ValueTypeString ValueType = iota
	ValueTypeUUID
	ValueTypeInt32
	ValueTypeInt64
	ValueTypeDecimal
	ValueTypeBoolean
	ValueTypeDate
	ValueTypeDateTime
	ValueTypeJSON
)

var valueTypeNames = [...]string{
	ValueTypeString:   "String",
	ValueTypeUUID:     "Uuid",
	ValueTypeInt32:    "Int32",
	ValueTypeInt64:    "Int64",
	ValueTypeDecimal:  "Decimal",
	ValueTypeBoolean:  "Boolean",
	ValueTypeDate:     "Date",
	ValueTypeDateTime: "DateTime",
	ValueTypeJSON:     "Json",
}

// ValueTypes lists every tag in declaration order.
func ValueTypes() []ValueType {
	return []ValueType{
		ValueTypeString, ValueTypeUUID, ValueTypeInt32, ValueTypeInt64, ValueTypeDecimal,
		ValueTypeBoolean, ValueTypeDate, ValueTypeDateTime, ValueTypeJSON,
	}
}

func (t ValueType) String() string {
	if t < 0 || int(t) >= len(valueTypeNames) {
		return fmt.Sprintf("ValueType(%d)", int(t))
	}
	return valueTypeNames[t]
}

// ParseValueType looks a tag up by name, ignoring case.
func ParseValueType(name string) (ValueType, error) {
	for _, t := range ValueTypes() {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, &voxi.ConversionError{Source: name, Type: "ValueType"}
}

// MarshalText implements encoding.TextMarshaler.
func (t ValueType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ValueType) UnmarshalText(text []byte) error {
	parsed, err := ParseValueType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
