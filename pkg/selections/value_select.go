package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// ValueSelect is one output column: a value with an optional alias.
type ValueSelect struct {
	value ValueWhere
	alias Alias
	err   error
}

// Column selects x with ValueOf semantics.
func Column(x any) ValueSelect {
	if vs, ok := x.(ValueSelect); ok {
		return vs
	}
	return ValueSelect{value: ValueOf(x)}
}

// ColumnAs selects x under alias.
func ColumnAs(x any, alias string) ValueSelect {
	return Column(x).WithAlias(alias)
}

// WithAlias returns a copy of c rendered as `value AS "alias"`.
func (c ValueSelect) WithAlias(alias string) ValueSelect {
	a, err := NewAlias(alias)
	c.alias = a
	c.err = firstErr(c.err, err)
	return c
}

// Value returns the selected value.
func (c ValueSelect) Value() ValueWhere { return c.value }

// Alias returns the alias and whether one is set.
func (c ValueSelect) Alias() (Alias, bool) { return c.alias, !c.alias.IsZero() }

// ToSQL renders the value, followed by `AS "alias"` when one is set.
func (c ValueSelect) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	s, err := c.value.ToSQL(r)
	if err != nil {
		return "", err
	}
	if c.alias.IsZero() {
		return s, nil
	}
	return s + " AS " + c.alias.SQL(), nil
}

func (c ValueSelect) collectTables(set tableSet) { c.value.collectTables(set) }
