package selections

import (
	"fmt"
	"slices"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// QueryBuilder assembles a Select. Methods record the first invalid input and
// Build reports it.
type QueryBuilder struct {
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
	err         error
}

// NewQueryBuilder returns an empty builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// NewQueryBuilderFrom reopens s for modification. s is not changed.
func NewQueryBuilderFrom(s *Select) *QueryBuilder {
	b := &QueryBuilder{
		distinct: s.distinct,
		columns:  slices.Clone(s.columns),
		from:     slices.Clone(s.from),
		joins:    slices.Clone(s.joins),
		where:    s.where,
		groupBy:  slices.Clone(s.groupBy),
		having:   s.having,
		orderBy:  slices.Clone(s.orderBy),
		binds:    slices.Clone(s.binds),
	}
	if s.limitOffset != nil {
		lo := *s.limitOffset
		b.limitOffset = &lo
	}
	if s.combination != nil {
		c := *s.combination
		b.combination = &c
	}
	return b
}

func (b *QueryBuilder) fail(err error) {
	if b.err == nil && err != nil {
		b.err = err
	}
}

// Field adds field columns ("FIELD" or "TABLE.FIELD").
func (b *QueryBuilder) Field(names ...string) *QueryBuilder {
	for _, name := range names {
		f := Field(name)
		b.fail(f.err)
		b.columns = append(b.columns, Column(f))
	}
	return b
}

// Fields adds field columns.
func (b *QueryBuilder) Fields(fields ...TableField) *QueryBuilder {
	for _, f := range fields {
		b.fail(f.err)
		b.columns = append(b.columns, Column(f))
	}
	return b
}

// Select adds columns. Each item may be a ValueSelect or anything ValueOf
// accepts.
func (b *QueryBuilder) Select(cols ...any) *QueryBuilder {
	for _, c := range cols {
		vs := Column(c)
		b.fail(nodeErr(vs.value))
		b.fail(vs.err)
		b.columns = append(b.columns, vs)
	}
	return b
}

// SelectAs adds v rendered as `v AS "alias"`.
func (b *QueryBuilder) SelectAs(v any, alias string) *QueryBuilder {
	return b.Select(ColumnAs(v, alias))
}

// ReplaceSelect drops the current columns and adds cols.
func (b *QueryBuilder) ReplaceSelect(cols ...any) *QueryBuilder {
	b.columns = nil
	return b.Select(cols...)
}

// Literal adds a literal column.
func (b *QueryBuilder) Literal(v any) *QueryBuilder {
	return b.Select(Lit(v))
}

// Bind adds a bind parameter column.
func (b *QueryBuilder) Bind(name string) *QueryBuilder {
	return b.Select(Bind(name))
}

func (b *QueryBuilder) aggregate(agg AggregateType, field string) *QueryBuilder {
	f := Field(field)
	b.fail(f.err)
	b.columns = append(b.columns, Column(Aggregate(agg, f)))
	return b
}

// Count adds COUNT(field).
func (b *QueryBuilder) Count(field string) *QueryBuilder { return b.aggregate(AggCount, field) }

// Sum adds SUM(field).
func (b *QueryBuilder) Sum(field string) *QueryBuilder { return b.aggregate(AggSum, field) }

// Max adds MAX(field).
func (b *QueryBuilder) Max(field string) *QueryBuilder { return b.aggregate(AggMax, field) }

// Min adds MIN(field).
func (b *QueryBuilder) Min(field string) *QueryBuilder { return b.aggregate(AggMin, field) }

// Avg adds AVG(field).
func (b *QueryBuilder) Avg(field string) *QueryBuilder { return b.aggregate(AggAvg, field) }

// All adds the `*` column.
func (b *QueryBuilder) All() *QueryBuilder {
	b.columns = append(b.columns, Column(FieldOf(values.AllFields)))
	return b
}

// From adds FROM sources; see FromOf for accepted types.
func (b *QueryBuilder) From(sources ...any) *QueryBuilder {
	for _, s := range sources {
		f := FromOf(s)
		b.fail(f.err)
		if f.table != nil {
			b.fail(f.table.err)
		}
		b.from = append(b.from, f)
	}
	return b
}

// FromQuery adds q as a sub-query source named alias.
func (b *QueryBuilder) FromQuery(q *Select, alias string) *QueryBuilder {
	return b.From(FromQuery(q, alias))
}

// Join adds joins.
func (b *QueryBuilder) Join(joins ...Join) *QueryBuilder {
	for _, j := range joins {
		b.fail(j.from.err)
		if j.from.table != nil {
			b.fail(j.from.table.err)
		}
		if j.on == nil {
			b.fail(&voxi.ConfigurationError{Reason: "join has no ON condition"})
		}
	}
	b.joins = append(b.joins, joins...)
	return b
}

// Where sets the WHERE expression. A second call AND-combines with the
// previous expression.
func (b *QueryBuilder) Where(e LogicalExprWhere) *QueryBuilder {
	b.fail(existsErr(e))
	b.where = And(b.where, e)
	return b
}

// Having sets the HAVING expression. A second call AND-combines with the
// previous expression.
func (b *QueryBuilder) Having(e LogicalExprWhere) *QueryBuilder {
	b.fail(existsErr(e))
	b.having = And(b.having, e)
	return b
}

// Distinct makes the query SELECT DISTINCT.
func (b *QueryBuilder) Distinct() *QueryBuilder {
	b.distinct = true
	return b
}

// Order adds ORDER BY items.
func (b *QueryBuilder) Order(items ...OrderBy) *QueryBuilder {
	for _, o := range items {
		b.fail(o.field.err)
	}
	b.orderBy = append(b.orderBy, items...)
	return b
}

// OrderBy adds ascending ORDER BY fields.
func (b *QueryBuilder) OrderBy(fields ...string) *QueryBuilder {
	for _, name := range fields {
		b.Order(Asc(Field(name)))
	}
	return b
}

// LimitOffset sets LIMIT and OFFSET.
func (b *QueryBuilder) LimitOffset(limit, offset uint64) *QueryBuilder {
	b.limitOffset = &LimitOffset{Limit: limit, Offset: offset}
	return b
}

// Group adds GROUP BY items. Each item is a TableField or a field string.
func (b *QueryBuilder) Group(fields ...any) *QueryBuilder {
	for _, x := range fields {
		var f TableField
		switch v := x.(type) {
		case TableField:
			f = v
		case string:
			f = Field(v)
		default:
			b.fail(fmt.Errorf("unsupported GROUP BY item %T", x))
			continue
		}
		b.fail(f.err)
		b.groupBy = append(b.groupBy, Group(f))
	}
	return b
}

func (b *QueryBuilder) combine(kind CombinationType, q *Select) *QueryBuilder {
	if q == nil {
		b.fail(errNilQuery)
		return b
	}
	b.combination = &Combination{kind: kind, query: q}
	return b
}

// Union appends `UNION q`.
func (b *QueryBuilder) Union(q *Select) *QueryBuilder { return b.combine(Union, q) }

// UnionAll appends `UNION ALL q`.
func (b *QueryBuilder) UnionAll(q *Select) *QueryBuilder { return b.combine(UnionAll, q) }

// Except appends `EXCEPT q`.
func (b *QueryBuilder) Except(q *Select) *QueryBuilder { return b.combine(Except, q) }

// Intersect appends `INTERSECT q`.
func (b *QueryBuilder) Intersect(q *Select) *QueryBuilder { return b.combine(Intersect, q) }

// AddBind registers a query-local bind. v is converted with
// values.NullableOf; a later bind with the same name wins.
func (b *QueryBuilder) AddBind(name string, v any) *QueryBuilder {
	n, err := values.NullableOf(v)
	if err != nil {
		b.fail(fmt.Errorf("bind %q: %w", name, err))
		return b
	}
	b.binds = append(b.binds, BindValue{Name: values.BindName(name), Value: n})
	return b
}

// WithoutSort clears ORDER BY.
func (b *QueryBuilder) WithoutSort() *QueryBuilder {
	b.orderBy = nil
	return b
}

// WithoutOffset clears LIMIT/OFFSET.
func (b *QueryBuilder) WithoutOffset() *QueryBuilder {
	b.limitOffset = nil
	return b
}

// Build validates the builder and returns the query.
func (b *QueryBuilder) Build() (*Select, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.columns) == 0 {
		return nil, &voxi.ConfigurationError{Reason: "no column has been defined"}
	}
	if len(b.from) == 0 {
		return nil, &voxi.ConfigurationError{Reason: "no from source has been defined"}
	}
	return b.snapshot(), nil
}

// MustBuild is like Build but panics on error.
func (b *QueryBuilder) MustBuild() *Select {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

func (b *QueryBuilder) snapshot() *Select {
	s := &Select{
		distinct: b.distinct,
		columns:  slices.Clone(b.columns),
		from:     slices.Clone(b.from),
		joins:    slices.Clone(b.joins),
		where:    b.where,
		groupBy:  slices.Clone(b.groupBy),
		having:   b.having,
		orderBy:  slices.Clone(b.orderBy),
		binds:    slices.Clone(b.binds),
	}
	if b.limitOffset != nil {
		lo := *b.limitOffset
		s.limitOffset = &lo
	}
	if b.combination != nil {
		c := *b.combination
		s.combination = &c
	}
	return s
}

// existsErr reports a top-level EXISTS without a sub-query. Nested ones
// surface when the query is rendered.
func existsErr(e LogicalExprWhere) error {
	if c, ok := e.(ExistsCondition); ok && c.query == nil {
		return errNilQuery
	}
	return nil
}

// nodeErr returns the construction error carried by a leaf node.
func nodeErr(v ValueWhere) error {
	switch n := v.(type) {
	case TableField:
		return n.err
	case invalidValue:
		return n.err
	}
	return nil
}
