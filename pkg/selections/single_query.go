package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// SingleQuery is a select with exactly one column, used as a scalar
// sub-query `(SELECT ...)` or as the source of an IN list.
type SingleQuery struct {
	query *Select
	err   error
}

// Query returns the underlying select.
func (q SingleQuery) Query() *Select { return q.query }

// ToSQL renders `(SELECT ...)`.
func (q SingleQuery) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := q.selectSQL(r)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (q SingleQuery) selectSQL(r resolvers.ArgsResolver) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	return q.query.ToSQL(r)
}

func (q SingleQuery) collectTables(set tableSet) {
	if q.query == nil {
		return
	}
	for _, t := range q.query.TablesNames() {
		set.add(t)
	}
}

func (SingleQuery) isValueWhere() {}

// SingleQueryBuilder builds a SingleQuery. The column is fixed when the
// builder is created; the rest mirrors QueryBuilder.
type SingleQueryBuilder struct {
	qb *QueryBuilder
}

func newSingle(column ValueSelect) *SingleQueryBuilder {
	qb := NewQueryBuilder()
	qb.columns = []ValueSelect{column}
	return &SingleQueryBuilder{qb: qb}
}

// SingleField selects one field ("FIELD" or "TABLE.FIELD").
func SingleField(field string) *SingleQueryBuilder {
	return newSingle(Column(Field(field)))
}

// SingleLiteral selects one literal.
func SingleLiteral(v any) *SingleQueryBuilder {
	return newSingle(Column(Lit(v)))
}

// SingleSelect selects one value with ValueOf semantics.
func SingleSelect(v any) *SingleQueryBuilder {
	return newSingle(Column(v))
}

// SingleCount selects COUNT(field).
func SingleCount(field string) *SingleQueryBuilder { return newSingle(Column(Count(Field(field)))) }

// SingleSum selects SUM(field).
func SingleSum(field string) *SingleQueryBuilder { return newSingle(Column(Sum(Field(field)))) }

// SingleMax selects MAX(field).
func SingleMax(field string) *SingleQueryBuilder { return newSingle(Column(Max(Field(field)))) }

// SingleMin selects MIN(field).
func SingleMin(field string) *SingleQueryBuilder { return newSingle(Column(Min(Field(field)))) }

// SingleAvg selects AVG(field).
func SingleAvg(field string) *SingleQueryBuilder { return newSingle(Column(Avg(Field(field)))) }

// Distinct makes the query SELECT DISTINCT.
func (b *SingleQueryBuilder) Distinct() *SingleQueryBuilder { b.qb.Distinct(); return b }

// From adds FROM sources.
func (b *SingleQueryBuilder) From(sources ...any) *SingleQueryBuilder {
	b.qb.From(sources...)
	return b
}

// Join adds joins.
func (b *SingleQueryBuilder) Join(joins ...Join) *SingleQueryBuilder { b.qb.Join(joins...); return b }

// Where sets or AND-extends the WHERE expression.
func (b *SingleQueryBuilder) Where(e LogicalExprWhere) *SingleQueryBuilder {
	b.qb.Where(e)
	return b
}

// Having sets or AND-extends the HAVING expression.
func (b *SingleQueryBuilder) Having(e LogicalExprWhere) *SingleQueryBuilder {
	b.qb.Having(e)
	return b
}

// Group adds GROUP BY fields.
func (b *SingleQueryBuilder) Group(fields ...any) *SingleQueryBuilder {
	b.qb.Group(fields...)
	return b
}

// Order adds ORDER BY items.
func (b *SingleQueryBuilder) Order(items ...OrderBy) *SingleQueryBuilder {
	b.qb.Order(items...)
	return b
}

// LimitOffset sets LIMIT and OFFSET.
func (b *SingleQueryBuilder) LimitOffset(limit, offset uint64) *SingleQueryBuilder {
	b.qb.LimitOffset(limit, offset)
	return b
}

// WithoutSort clears ORDER BY.
func (b *SingleQueryBuilder) WithoutSort() *SingleQueryBuilder { b.qb.WithoutSort(); return b }

// AddBind adds a query-local bind.
func (b *SingleQueryBuilder) AddBind(name string, v any) *SingleQueryBuilder {
	b.qb.AddBind(name, v)
	return b
}

// Build returns the sub-query. It never fails: a missing FROM or an invalid
// input is reported when the sub-query is rendered.
func (b *SingleQueryBuilder) Build() SingleQuery {
	return SingleQuery{query: b.qb.snapshot(), err: b.qb.err}
}
