package selections

import (
	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// FieldAttribs describes one field of a result set.
type FieldAttribs struct {
	Name     values.FieldName
	Title    string
	Type     values.ValueType
	Nullable bool
	// Source is the expression that produces the field. When nil the field
	// is selected by name.
	Source ValueWhere
}

// FieldsAttribs is an ordered set of field descriptions.
type FieldsAttribs struct {
	fields []FieldAttribs
}

// FieldsAttribsBuilder collects field descriptions.
type FieldsAttribsBuilder struct {
	fields []FieldAttribs
	err    error
}

// NewFieldsAttribsBuilder returns an empty builder.
func NewFieldsAttribsBuilder() *FieldsAttribsBuilder {
	return &FieldsAttribsBuilder{}
}

// Add describes a field. source may be nil.
func (b *FieldsAttribsBuilder) Add(t values.ValueType, name, title string, source ValueWhere, nullable bool) *FieldsAttribsBuilder {
	f, err := values.NewFieldName(name)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	b.fields = append(b.fields, FieldAttribs{Name: f, Title: title, Type: t, Nullable: nullable, Source: source})
	return b
}

// Build returns the field set, or the first invalid name.
func (b *FieldsAttribsBuilder) Build() (FieldsAttribs, error) {
	if b.err != nil {
		return FieldsAttribs{}, b.err
	}
	return FieldsAttribs{fields: append([]FieldAttribs(nil), b.fields...)}, nil
}

// Fields returns the descriptions in order.
func (fa FieldsAttribs) Fields() []FieldAttribs {
	return append([]FieldAttribs(nil), fa.fields...)
}

// Len returns the number of fields.
func (fa FieldsAttribs) Len() int { return len(fa.fields) }

// Names returns the field names in order.
func (fa FieldsAttribs) Names() []string {
	names := make([]string, len(fa.fields))
	for i, f := range fa.fields {
		names[i] = f.Name.String()
	}
	return names
}

// Find looks a field up by name.
func (fa FieldsAttribs) Find(name string) (FieldAttribs, error) {
	for _, f := range fa.fields {
		if f.Name.String() == name {
			return f, nil
		}
	}
	return FieldAttribs{}, &voxi.FieldNameNotFoundError{Name: name, Available: fa.Names()}
}

// FieldNameTypes returns the name and type of every field.
func (fa FieldsAttribs) FieldNameTypes() []values.FieldNameType {
	out := make([]values.FieldNameType, len(fa.fields))
	for i, f := range fa.fields {
		out[i] = values.FieldNameType{Name: f.Name, Type: f.Type}
	}
	return out
}

// Columns returns one output column per field. Fields with a Source are
// selected as `source AS "name"`.
func (fa FieldsAttribs) Columns() []ValueSelect {
	cols := make([]ValueSelect, len(fa.fields))
	for i, f := range fa.fields {
		if f.Source == nil {
			cols[i] = Column(FieldOf(f.Name))
			continue
		}
		cols[i] = ColumnAs(f.Source, f.Name.String())
	}
	return cols
}

// Query starts a builder selecting every field from source.
func (fa FieldsAttribs) Query(source any) *QueryBuilder {
	b := NewQueryBuilder().From(source)
	for _, c := range fa.Columns() {
		b.Select(c)
	}
	return b
}
