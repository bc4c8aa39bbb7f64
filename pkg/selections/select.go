package selections

import (
	"slices"
	"strings"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// BindValue is a query-local bind.
type BindValue struct {
	Name  values.BindName
	Value values.NullableValue
}

// Select is a built, immutable SELECT query. Create one with QueryBuilder.
type Select struct {
	distinct    bool
	columns     []ValueSelect
	from        []FromSelect
	joins       []Join
	where       LogicalExprWhere
	groupBy     []GroupBy
	having      LogicalExprWhere
	orderBy     []OrderBy
	limitOffset *LimitOffset
	combination *Combination
	binds       []BindValue
}

// Distinct reports whether the query is SELECT DISTINCT.
func (s *Select) Distinct() bool { return s.distinct }

// Columns returns the output columns.
func (s *Select) Columns() []ValueSelect { return slices.Clone(s.columns) }

// From returns the FROM sources.
func (s *Select) From() []FromSelect { return slices.Clone(s.from) }

// Joins returns the joins in order.
func (s *Select) Joins() []Join { return slices.Clone(s.joins) }

// Where returns the WHERE expression, or nil.
func (s *Select) Where() LogicalExprWhere { return s.where }

// GroupBy returns the GROUP BY items.
func (s *Select) GroupBy() []GroupBy { return slices.Clone(s.groupBy) }

// Having returns the HAVING expression, or nil.
func (s *Select) Having() LogicalExprWhere { return s.having }

// OrderBy returns the ORDER BY items.
func (s *Select) OrderBy() []OrderBy { return slices.Clone(s.orderBy) }

// LimitOffset returns the paging clause and whether it is set.
func (s *Select) LimitOffset() (LimitOffset, bool) {
	if s.limitOffset == nil {
		return LimitOffset{}, false
	}
	return *s.limitOffset, true
}

// Combination returns the set operation and whether one is set.
func (s *Select) Combination() (Combination, bool) {
	if s.combination == nil {
		return Combination{}, false
	}
	return *s.combination, true
}

// Binds returns the query-local binds in insertion order.
func (s *Select) Binds() []BindValue { return slices.Clone(s.binds) }

// ToSQL renders the query. Query-local binds shadow the binds of r for this
// query and every node inside it. A nil query is a configuration error.
func (s *Select) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if s == nil {
		return "", errNilQuery
	}
	if len(s.columns) == 0 {
		return "", &voxi.ConfigurationError{Reason: "no column has been defined"}
	}
	if len(s.from) == 0 {
		return "", &voxi.ConfigurationError{Reason: "no from source has been defined"}
	}

	local := make(resolvers.Binds, len(s.binds))
	for _, b := range s.binds {
		local[b.Name] = b.Value
	}
	r = resolvers.NewBindsDecorator(r, local)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	if s.distinct {
		sb.WriteString("DISTINCT ")
	}

	cols, err := renderJoined(r, s.columns, ",")
	if err != nil {
		return "", err
	}
	sb.WriteString(cols)

	from, err := renderJoined(r, s.from, ", ")
	if err != nil {
		return "", err
	}
	sb.WriteString(" FROM " + from)

	if len(s.joins) > 0 {
		joins, err := renderJoined(r, s.joins, " ")
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + joins)
	}

	if s.where != nil {
		w, err := s.where.ToSQL(r)
		if err != nil {
			return "", err
		}
		sb.WriteString(" WHERE " + w)
	}

	if len(s.groupBy) > 0 {
		g, err := renderJoined(r, s.groupBy, ", ")
		if err != nil {
			return "", err
		}
		sb.WriteString(" GROUP BY " + g)
	}

	if s.having != nil {
		h, err := s.having.ToSQL(r)
		if err != nil {
			return "", err
		}
		sb.WriteString(" HAVING " + h)
	}

	if len(s.orderBy) > 0 {
		o, err := renderJoined(r, s.orderBy, ", ")
		if err != nil {
			return "", err
		}
		sb.WriteString(" ORDER BY " + o)
	}

	if s.limitOffset != nil {
		l, err := s.limitOffset.ToSQL(r)
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + l)
	}

	if s.combination != nil {
		c, err := s.combination.ToSQL(r)
		if err != nil {
			return "", err
		}
		sb.WriteString(" " + c)
	}

	return sb.String(), nil
}

var errNilQuery = &voxi.ConfigurationError{Reason: "sub-query is nil"}

// String renders the query with every literal inlined. Binds that only an
// outer resolver could provide make it print an error marker.
func (s *Select) String() string {
	sql, err := s.ToSQL(resolvers.NewStringResolver())
	if err != nil {
		return "<error: " + err.Error() + ">"
	}
	return sql
}

// TablesNames returns the tables referenced by the columns, the WHERE clause
// and the FROM sources, minus the tables that are join sources. The result is
// sorted and has no duplicates.
func (s *Select) TablesNames() []TableName {
	set := tableSet{}
	for _, c := range s.columns {
		c.collectTables(set)
	}
	if s.where != nil {
		s.where.collectTables(set)
	}
	for _, f := range s.from {
		f.collectTables(set)
	}
	joined := tableSet{}
	for _, j := range s.joins {
		j.from.collectTables(joined)
	}
	for t := range joined {
		delete(set, t)
	}
	return set.sorted()
}

// TableNameStrings is TablesNames as plain strings.
func (s *Select) TableNameStrings() []string {
	names := s.TablesNames()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = n.String()
	}
	return out
}
