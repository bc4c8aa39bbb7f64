package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// ConditionWhere is a predicate over values.
type ConditionWhere interface {
	LogicalExprWhere
	isConditionWhere()
}

// ComparisonOperator is a binary comparison.
type ComparisonOperator int

const (
	OpEq ComparisonOperator = iota
	OpNe
	OpGt
	OpLt
	OpGe
	OpLe
	OpLike
)

var comparisonSQL = [...]string{
	OpEq:   "=",
	OpNe:   "<>",
	OpGt:   ">",
	OpLt:   "<",
	OpGe:   ">=",
	OpLe:   "<=",
	OpLike: "LIKE",
}

// String returns the SQL operator.
func (o ComparisonOperator) String() string { return comparisonSQL[o] }

// Comparison renders `left op right`.
type Comparison struct {
	op          ComparisonOperator
	left, right ValueWhere
}

// Operator returns the comparison operator.
func (c Comparison) Operator() ComparisonOperator { return c.op }

// ToSQL renders `left op right`.
func (c Comparison) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return renderBinary(r, c.left, " "+c.op.String()+" ", c.right)
}

// And renders `c AND o`.
func (c Comparison) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c Comparison) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c Comparison) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c Comparison) Exp() LogicalExprWhere { return Exp(c) }

func (Comparison) isLogicalExprWhere() {}
func (Comparison) isConditionWhere()   {}

func (c Comparison) collectTables(set tableSet) {
	c.left.collectTables(set)
	c.right.collectTables(set)
}

func compare(op ComparisonOperator, a, b any) ConditionWhere {
	return Comparison{op: op, left: ValueOf(a), right: ValueOf(b)}
}

// Eq renders `a = b`.
func Eq(a, b any) ConditionWhere { return compare(OpEq, a, b) }

// Ne renders `a <> b`.
func Ne(a, b any) ConditionWhere { return compare(OpNe, a, b) }

// Gt renders `a > b`.
func Gt(a, b any) ConditionWhere { return compare(OpGt, a, b) }

// Lt renders `a < b`.
func Lt(a, b any) ConditionWhere { return compare(OpLt, a, b) }

// Ge renders `a >= b`.
func Ge(a, b any) ConditionWhere { return compare(OpGe, a, b) }

// Le renders `a <= b`.
func Le(a, b any) ConditionWhere { return compare(OpLe, a, b) }

// Like renders `a LIKE b`.
func Like(a, b any) ConditionWhere { return compare(OpLike, a, b) }

// IsNullCondition renders `value IS NULL`.
type IsNullCondition struct {
	value ValueWhere
}

// Null renders `x IS NULL`.
func Null(x any) ConditionWhere { return IsNullCondition{value: ValueOf(x)} }

// ToSQL renders `value IS NULL`.
func (c IsNullCondition) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.value.ToSQL(r)
	if err != nil {
		return "", err
	}
	return s + " IS NULL", nil
}

// And renders `c AND o`.
func (c IsNullCondition) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c IsNullCondition) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c IsNullCondition) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c IsNullCondition) Exp() LogicalExprWhere { return Exp(c) }

func (c IsNullCondition) collectTables(set tableSet) { c.value.collectTables(set) }
func (IsNullCondition) isLogicalExprWhere()          {}
func (IsNullCondition) isConditionWhere()            {}

// NullExpression renders `expr IS NULL` for an arithmetic expression.
type NullExpression struct {
	expr ArithmeticExprWhere
}

// NullExpr renders `x IS NULL` where x is an arithmetic expression.
func NullExpr(x any) ConditionWhere { return NullExpression{expr: arithOf(x)} }

// ToSQL renders `expr IS NULL`.
func (c NullExpression) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.expr.ToSQL(r)
	if err != nil {
		return "", err
	}
	return s + " IS NULL", nil
}

// And renders `c AND o`.
func (c NullExpression) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c NullExpression) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c NullExpression) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c NullExpression) Exp() LogicalExprWhere { return Exp(c) }

func (c NullExpression) collectTables(set tableSet) { c.expr.collectTables(set) }
func (NullExpression) isLogicalExprWhere()          {}
func (NullExpression) isConditionWhere()            {}

// InCondition renders `value IN (list)`.
type InCondition struct {
	value ValueWhere
	list  ValuesListWhere
}

// Inc renders `x IN (...)`. list may be a ValuesListWhere, a *Select or
// SingleQuery (sub-query), or a slice of values.
func Inc(x any, list any) ConditionWhere {
	return InCondition{value: ValueOf(x), list: valuesListOf(list)}
}

// ToSQL renders `value IN (list)`.
func (c InCondition) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.value.ToSQL(r)
	if err != nil {
		return "", err
	}
	l, err := c.list.ToSQL(r)
	if err != nil {
		return "", err
	}
	return s + " IN (" + l + ")", nil
}

// And renders `c AND o`.
func (c InCondition) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c InCondition) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c InCondition) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c InCondition) Exp() LogicalExprWhere { return Exp(c) }

func (InCondition) isLogicalExprWhere() {}
func (InCondition) isConditionWhere()   {}

func (c InCondition) collectTables(set tableSet) {
	c.value.collectTables(set)
	c.list.collectTables(set)
}

// BetweenCondition renders `value BETWEEN low AND high`.
type BetweenCondition struct {
	value, low, high ValueWhere
}

// Between renders `x BETWEEN low AND high`.
func Between(x, low, high any) ConditionWhere {
	return BetweenCondition{value: ValueOf(x), low: ValueOf(low), high: ValueOf(high)}
}

// ToSQL renders `value BETWEEN low AND high`.
func (c BetweenCondition) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.value.ToSQL(r)
	if err != nil {
		return "", err
	}
	bounds, err := renderBinary(r, c.low, " AND ", c.high)
	if err != nil {
		return "", err
	}
	return s + " BETWEEN " + bounds, nil
}

// And renders `c AND o`.
func (c BetweenCondition) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c BetweenCondition) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c BetweenCondition) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c BetweenCondition) Exp() LogicalExprWhere { return Exp(c) }

func (BetweenCondition) isLogicalExprWhere() {}
func (BetweenCondition) isConditionWhere()   {}

func (c BetweenCondition) collectTables(set tableSet) {
	c.value.collectTables(set)
	c.low.collectTables(set)
	c.high.collectTables(set)
}

// ExistsCondition renders `EXISTS (query)`.
type ExistsCondition struct {
	query *Select
}

// ExistsQuery renders `EXISTS (SELECT ...)`.
func ExistsQuery(q *Select) ConditionWhere { return ExistsCondition{query: q} }

// ToSQL renders `EXISTS (query)`. A nil query is a configuration error.
func (c ExistsCondition) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := c.query.ToSQL(r)
	if err != nil {
		return "", err
	}
	return "EXISTS (" + s + ")", nil
}

// And renders `c AND o`.
func (c ExistsCondition) And(o LogicalExprWhere) LogicalExprWhere { return And(c, o) }

// Or renders `c OR o`.
func (c ExistsCondition) Or(o LogicalExprWhere) LogicalExprWhere { return Or(c, o) }

// Not renders `NOT c`.
func (c ExistsCondition) Not() LogicalExprWhere { return Not(c) }

// Exp wraps c in parentheses.
func (c ExistsCondition) Exp() LogicalExprWhere { return Exp(c) }

func (ExistsCondition) isLogicalExprWhere() {}
func (ExistsCondition) isConditionWhere()   {}

// The correlated sub-query keeps its own tables.
func (ExistsCondition) collectTables(tableSet) {}

// Equal renders `f = x`.
func (f TableField) Equal(x any) ConditionWhere { return Eq(f, x) }

// Diff renders `f <> x`.
func (f TableField) Diff(x any) ConditionWhere { return Ne(f, x) }

// Greater renders `f > x`.
func (f TableField) Greater(x any) ConditionWhere { return Gt(f, x) }

// Less renders `f < x`.
func (f TableField) Less(x any) ConditionWhere { return Lt(f, x) }

// GreaterOrEqual renders `f >= x`.
func (f TableField) GreaterOrEqual(x any) ConditionWhere { return Ge(f, x) }

// LessOrEqual renders `f <= x`.
func (f TableField) LessOrEqual(x any) ConditionWhere { return Le(f, x) }

// Like renders `f LIKE x`.
func (f TableField) Like(x any) ConditionWhere { return Like(f, x) }

// Include renders `f IN (...)`.
func (f TableField) Include(list any) ConditionWhere { return Inc(f, list) }

// IsNull renders `f IS NULL`.
func (f TableField) IsNull() ConditionWhere { return Null(f) }

// Between renders `f BETWEEN low AND high`.
func (f TableField) Between(low, high any) ConditionWhere { return Between(f, low, high) }
