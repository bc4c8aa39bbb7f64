package selections

import (
	"strings"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// TableName is a validated table name.
type TableName struct {
	name string
}

// NewTableName validates name and wraps it.
func NewTableName(name string) (TableName, error) {
	if err := values.ValidateIdentifier(name); err != nil {
		return TableName{}, err
	}
	return TableName{name: name}, nil
}

// String returns the unquoted name.
func (t TableName) String() string { return t.name }

// SQL renders the quoted identifier.
func (t TableName) SQL() string { return values.QuoteIdentifier(t.name) }

// Alias is a validated table, sub-query or column alias.
type Alias struct {
	name string
}

// NewAlias validates name and wraps it.
func NewAlias(name string) (Alias, error) {
	if err := values.ValidateIdentifier(name); err != nil {
		return Alias{}, err
	}
	return Alias{name: name}, nil
}

// String returns the unquoted alias.
func (a Alias) String() string { return a.name }

// IsZero reports whether a is unset.
func (a Alias) IsZero() bool { return a.name == "" }

// SQL renders the quoted identifier.
func (a Alias) SQL() string { return values.QuoteIdentifier(a.name) }

// Table is a table name with an optional alias.
type Table struct {
	name  TableName
	alias Alias
	err   error
}

// NewTable parses "NAME" or "NAME ALIAS".
func NewTable(spec string) (Table, error) {
	t := tableOf(spec)
	return t, t.err
}

// MustTable is like NewTable but panics on an invalid name.
func MustTable(spec string) Table {
	t, err := NewTable(spec)
	if err != nil {
		panic(err)
	}
	return t
}

// tableOf parses spec and keeps any validation error in the result, so it
// surfaces when the table is rendered.
func tableOf(spec string) Table {
	name, alias, _ := strings.Cut(strings.TrimSpace(spec), " ")
	tn, err := NewTableName(name)
	if err != nil {
		return Table{err: err}
	}
	t := Table{name: tn}
	if alias = strings.TrimSpace(alias); alias != "" {
		return t.WithAlias(alias)
	}
	return t
}

// WithAlias returns a copy of t with alias set.
func (t Table) WithAlias(alias string) Table {
	a, err := NewAlias(alias)
	if err != nil && t.err == nil {
		t.err = err
	}
	t.alias = a
	return t
}

// Name returns the table name.
func (t Table) Name() TableName { return t.name }

// Alias returns the alias and whether one is set.
func (t Table) Alias() (Alias, bool) { return t.alias, !t.alias.IsZero() }

// Err returns the identifier error captured at construction, if any.
func (t Table) Err() error { return t.err }

// Field returns a field qualified by t.
func (t Table) Field(name string) TableField {
	f, err := values.NewFieldName(name)
	tt := t
	return TableField{table: &tt, field: f, err: firstErr(t.err, err)}
}

// ToSQL renders `"NAME"` or `"NAME" "ALIAS"`.
func (t Table) ToSQL(_ resolvers.ArgsResolver) (string, error) {
	if t.err != nil {
		return "", t.err
	}
	if t.alias.IsZero() {
		return t.name.SQL(), nil
	}
	return t.name.SQL() + " " + t.alias.SQL(), nil
}

// qualifier is the prefix used when a field of t is referenced.
func (t Table) qualifier() string {
	if !t.alias.IsZero() {
		return t.alias.SQL()
	}
	return t.name.SQL()
}

// TableField is a column reference, optionally qualified by a table.
type TableField struct {
	table *Table
	field values.FieldName
	err   error
}

// Field parses "FIELD" or "TABLE.FIELD". An invalid identifier is reported
// when the field is rendered or passed to a builder.
func Field(spec string) TableField {
	tf, _ := NewTableField(spec)
	return tf
}

// NewTableField parses "FIELD" or "TABLE.FIELD". Only the first dot splits:
// "S.T.F" is table S with the field named "T.F", rendered `"S"."T.F"`.
func NewTableField(spec string) (TableField, error) {
	if table, field, ok := strings.Cut(spec, "."); ok {
		t := tableOf(table)
		tf := t.Field(field)
		return tf, tf.err
	}
	f, err := values.NewFieldName(spec)
	return TableField{field: f, err: err}, err
}

// FieldOf wraps a field name without a table.
func FieldOf(name values.FieldName) TableField {
	return TableField{field: name}
}

// Table returns the qualifying table and whether there is one.
func (f TableField) Table() (Table, bool) {
	if f.table == nil {
		return Table{}, false
	}
	return *f.table, true
}

// Name returns the field name.
func (f TableField) Name() values.FieldName { return f.field }

// Err returns the identifier error captured at construction, if any.
func (f TableField) Err() error { return f.err }

// String returns `FIELD` or `TABLE.FIELD` unquoted.
func (f TableField) String() string {
	if f.table == nil {
		return f.field.String()
	}
	return f.table.name.String() + "." + f.field.String()
}

// ToSQL renders `"FIELD"` or `"TABLE_OR_ALIAS"."FIELD"`.
func (f TableField) ToSQL(_ resolvers.ArgsResolver) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.table == nil {
		return f.field.SQL(), nil
	}
	return f.table.qualifier() + "." + f.field.SQL(), nil
}

func (f TableField) collectTables(set tableSet) {
	if f.table != nil {
		set.add(f.table.name)
	}
}

func (TableField) isValueWhere() {}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
