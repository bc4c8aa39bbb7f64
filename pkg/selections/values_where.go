package selections

import (
	"fmt"
	"reflect"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// ValuesListWhere is the right-hand side of IN: a literal list or a
// sub-query.
type ValuesListWhere interface {
	resolvers.Renderer
	collectTables(set tableSet)
	isValuesListWhere()
}

// ValuesList renders its values joined with a comma.
type ValuesList struct {
	values []ValueWhere
}

// List converts every x with ValueOf.
func List(xs ...any) ValuesList {
	return ValuesList{values: valuesOf(xs)}
}

// Values returns the list items.
func (l ValuesList) Values() []ValueWhere { return l.values }

// ToSQL renders the items separated by commas.
func (l ValuesList) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return renderJoined(r, l.values, ",")
}

func (l ValuesList) collectTables(set tableSet) {
	for _, v := range l.values {
		v.collectTables(set)
	}
}

func (ValuesList) isValuesListWhere() {}

// SubQueryList renders a sub-query without its own parentheses, for use
// inside IN (...).
type SubQueryList struct {
	query SingleQuery
}

// SubQuery wraps q as the source of an IN list.
func SubQuery(q SingleQuery) SubQueryList {
	return SubQueryList{query: q}
}

// ToSQL renders the sub-query without parentheses.
func (l SubQueryList) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return l.query.selectSQL(r)
}

func (l SubQueryList) collectTables(set tableSet) { l.query.collectTables(set) }
func (SubQueryList) isValuesListWhere()           {}

func valuesListOf(x any) ValuesListWhere {
	switch v := x.(type) {
	case ValuesListWhere:
		return v
	case SingleQuery:
		return SubQuery(v)
	case *Select:
		return SubQuery(SingleQuery{query: v})
	case []any:
		return List(v...)
	case []ValueWhere:
		return ValuesList{values: v}
	}
	rv := reflect.ValueOf(x)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return ValuesList{values: []ValueWhere{invalidValue{err: fmt.Errorf("IN list must be a slice or sub-query, got %T", x)}}}
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return List(items...)
}
