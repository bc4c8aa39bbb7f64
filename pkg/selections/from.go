package selections

import (
	"fmt"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// FromSelect is a FROM or JOIN source: a table or a nested select.
type FromSelect struct {
	table *Table
	query *Select
	alias Alias
	err   error
}

// FromTable uses t as a source.
func FromTable(t Table) FromSelect {
	return FromSelect{table: &t}
}

// FromQuery uses q as a source, rendered as `(SELECT ...) AS "alias"`. An
// empty alias leaves the sub-query unnamed. A nil q is kept as an error.
func FromQuery(q *Select, alias string) FromSelect {
	f := FromSelect{query: q}
	if q == nil {
		f.err = errNilQuery
	}
	if alias != "" {
		f = f.WithAlias(alias)
	}
	return f
}

// FromOf converts a string ("NAME" or "NAME ALIAS"), Table, TableName,
// *Select or FromSelect into a source.
func FromOf(x any) FromSelect {
	switch v := x.(type) {
	case FromSelect:
		return v
	case string:
		return FromTable(tableOf(v))
	case Table:
		return FromTable(v)
	case TableName:
		return FromTable(Table{name: v})
	case *Select:
		return FromQuery(v, "")
	}
	return FromSelect{err: fmt.Errorf("unsupported FROM source %T", x)}
}

// WithAlias names the source. For a table it sets the table alias; for a
// sub-query it sets the sub-query alias.
func (f FromSelect) WithAlias(alias string) FromSelect {
	if f.table != nil {
		t := f.table.WithAlias(alias)
		f.table = &t
		return f
	}
	a, err := NewAlias(alias)
	f.alias = a
	f.err = firstErr(f.err, err)
	return f
}

// Table returns the source table and whether the source is a table.
func (f FromSelect) Table() (Table, bool) {
	if f.table == nil {
		return Table{}, false
	}
	return *f.table, true
}

// Query returns the nested select, or nil for a table source.
func (f FromSelect) Query() *Select { return f.query }

// ToSQL renders the table, or the sub-query in parentheses followed by its
// alias when one is set.
func (f FromSelect) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.table != nil {
		return f.table.ToSQL(r)
	}
	s, err := f.query.ToSQL(r)
	if err != nil {
		return "", err
	}
	s = "(" + s + ")"
	if !f.alias.IsZero() {
		s += " AS " + f.alias.SQL()
	}
	return s, nil
}

func (f FromSelect) collectTables(set tableSet) {
	switch {
	case f.table != nil:
		set.add(f.table.name)
	case f.query != nil:
		for _, t := range f.query.TablesNames() {
			set.add(t)
		}
	}
}
