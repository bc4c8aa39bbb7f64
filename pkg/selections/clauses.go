package selections

import (
	"strconv"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// GroupBy is one GROUP BY item.
type GroupBy struct {
	field TableField
}

// Group groups by field.
func Group(field TableField) GroupBy { return GroupBy{field: field} }

// Field returns the grouped field.
func (g GroupBy) Field() TableField { return g.field }

// ToSQL renders the grouped field.
func (g GroupBy) ToSQL(r resolvers.ArgsResolver) (string, error) { return g.field.ToSQL(r) }

// OrderBy is one ORDER BY item.
type OrderBy struct {
	field TableField
	desc  bool
}

// Asc orders by field ascending.
func Asc(field TableField) OrderBy { return OrderBy{field: field} }

// Desc orders by field descending.
func Desc(field TableField) OrderBy { return OrderBy{field: field, desc: true} }

// Field returns the sorted field.
func (o OrderBy) Field() TableField { return o.field }

// IsDesc reports whether the order is descending.
func (o OrderBy) IsDesc() bool { return o.desc }

// ToSQL renders `field ASC` or `field DESC`.
func (o OrderBy) ToSQL(r resolvers.ArgsResolver) (string, error) {
	f, err := o.field.ToSQL(r)
	if err != nil {
		return "", err
	}
	if o.desc {
		return f + " DESC", nil
	}
	return f + " ASC", nil
}

// LimitOffset is the LIMIT/OFFSET pair of a paged query.
type LimitOffset struct {
	Limit  uint64
	Offset uint64
}

// Page returns the 1-based page that Offset falls on.
func (l LimitOffset) Page() uint64 {
	if l.Limit == 0 {
		return 1
	}
	return l.Offset/l.Limit + 1
}

// SetPage moves Offset to the first row of page. Pages start at 1.
func (l *LimitOffset) SetPage(page uint64) {
	if page < 1 {
		page = 1
	}
	l.Offset = l.Limit * (page - 1)
}

// ToSQL renders `LIMIT n OFFSET m`.
func (l LimitOffset) ToSQL(resolvers.ArgsResolver) (string, error) {
	return "LIMIT " + strconv.FormatUint(l.Limit, 10) + " OFFSET " + strconv.FormatUint(l.Offset, 10), nil
}

// CombinationType selects the set operation.
type CombinationType int

const (
	Union CombinationType = iota
	UnionAll
	Intersect
	Except
)

// String returns the SQL set operator.
func (c CombinationType) String() string {
	switch c {
	case UnionAll:
		return "UNION ALL"
	case Intersect:
		return "INTERSECT"
	case Except:
		return "EXCEPT"
	default:
		return "UNION"
	}
}

// Combination appends a set operation with another select.
type Combination struct {
	kind  CombinationType
	query *Select
}

// Type returns the set operation.
func (c Combination) Type() CombinationType { return c.kind }

// Query returns the combined select.
func (c Combination) Query() *Select { return c.query }

// ToSQL renders the set operator followed by the combined query.
func (c Combination) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.query.ToSQL(r)
	if err != nil {
		return "", err
	}
	return c.kind.String() + " " + s, nil
}
