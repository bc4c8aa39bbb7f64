package values

import (
	"strings"

	"github.com/lib/pq"

	voxi "github.com/vaniusrb/voxi-core"
)

// ValidateIdentifier rejects names that would break out of double-quoted
// identifier rendering or be truncated by it.
func ValidateIdentifier(name string) error {
	if strings.ContainsAny(name, "\"\x00") {
		return &voxi.ConversionError{Source: name, Type: "identifier", Err: voxi.ErrInvalidIdentifier}
	}
	return nil
}

// QuoteIdentifier renders name as a double-quoted SQL identifier. The star
// wildcard is returned unquoted.
func QuoteIdentifier(name string) string {
	if name == "*" {
		return name
	}
	return pq.QuoteIdentifier(name)
}

// FieldName is a validated column name.
type FieldName struct {
	name string
}

// NewFieldName validates name and wraps it.
func NewFieldName(name string) (FieldName, error) {
	if err := ValidateIdentifier(name); err != nil {
		return FieldName{}, err
	}
	return FieldName{name: name}, nil
}

// MustFieldName is like NewFieldName but panics on an invalid name. Use it
// for names known at compile time.
func MustFieldName(name string) FieldName {
	f, err := NewFieldName(name)
	if err != nil {
		panic(err)
	}
	return f
}

// AllFields is the `*` wildcard.
var AllFields = FieldName{name: "*"}

func (f FieldName) String() string { return f.name }

// IsAll reports whether f is the `*` wildcard.
func (f FieldName) IsAll() bool { return f.name == "*" }

// SQL renders the quoted identifier.
func (f FieldName) SQL() string { return QuoteIdentifier(f.name) }

// BindName identifies a named parameter. Binds never render as identifiers,
// so any string is accepted.
type BindName string

func (b BindName) String() string { return string(b) }

// FieldNameType pairs a field name with its declared value type.
type FieldNameType struct {
	Name FieldName
	Type ValueType
}

// NewFieldNameType validates name and pairs it with t.
func NewFieldNameType(name string, t ValueType) (FieldNameType, error) {
	f, err := NewFieldName(name)
	if err != nil {
		return FieldNameType{}, err
	}
	return FieldNameType{Name: f, Type: t}, nil
}
