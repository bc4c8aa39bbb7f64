package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// LogicalExprWhere is a boolean expression: a condition, or NOT, parentheses,
// AND and OR over other logical expressions. Every ConditionWhere is also a
// LogicalExprWhere.
type LogicalExprWhere interface {
	resolvers.Renderer

	// And renders `e AND other`.
	And(other LogicalExprWhere) LogicalExprWhere
	// Or renders `e OR other`.
	Or(other LogicalExprWhere) LogicalExprWhere
	// Not renders `NOT e`.
	Not() LogicalExprWhere
	// Exp renders `(e)`.
	Exp() LogicalExprWhere

	collectTables(set tableSet)
	isLogicalExprWhere()
}

// And renders `a AND b`. A nil operand yields the other one.
func And(a, b LogicalExprWhere) LogicalExprWhere {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return AndExpr{left: a, right: b}
}

// Or renders `a OR b`. A nil operand yields the other one.
func Or(a, b LogicalExprWhere) LogicalExprWhere {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return OrExpr{left: a, right: b}
}

// Not renders `NOT e`.
func Not(e LogicalExprWhere) LogicalExprWhere {
	return NotExpr{expr: e}
}

// Exp wraps e in parentheses.
func Exp(e LogicalExprWhere) LogicalExprWhere {
	return Expression{expr: e}
}

// AllOf folds exprs left to right with AND. It returns nil for no input.
func AllOf(exprs ...LogicalExprWhere) LogicalExprWhere {
	var out LogicalExprWhere
	for _, e := range exprs {
		out = And(out, e)
	}
	return out
}

// NotExpr negates an expression.
type NotExpr struct {
	expr LogicalExprWhere
}

// ToSQL renders `NOT expr`.
func (n NotExpr) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := n.expr.ToSQL(r)
	if err != nil {
		return "", err
	}
	return "NOT " + s, nil
}

// And renders `n AND o`.
func (n NotExpr) And(o LogicalExprWhere) LogicalExprWhere { return And(n, o) }

// Or renders `n OR o`.
func (n NotExpr) Or(o LogicalExprWhere) LogicalExprWhere { return Or(n, o) }

// Not renders `NOT n`.
func (n NotExpr) Not() LogicalExprWhere { return Not(n) }

// Exp wraps n in parentheses.
func (n NotExpr) Exp() LogicalExprWhere { return Exp(n) }

func (n NotExpr) collectTables(set tableSet) { n.expr.collectTables(set) }
func (NotExpr) isLogicalExprWhere()          {}

// Expression groups an expression in parentheses.
type Expression struct {
	expr LogicalExprWhere
}

// ToSQL renders `(expr)`.
func (e Expression) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := e.expr.ToSQL(r)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

// And renders `e AND o`.
func (e Expression) And(o LogicalExprWhere) LogicalExprWhere { return And(e, o) }

// Or renders `e OR o`.
func (e Expression) Or(o LogicalExprWhere) LogicalExprWhere { return Or(e, o) }

// Not renders `NOT e`.
func (e Expression) Not() LogicalExprWhere { return Not(e) }

// Exp wraps e in parentheses.
func (e Expression) Exp() LogicalExprWhere { return Exp(e) }

func (e Expression) collectTables(set tableSet) { e.expr.collectTables(set) }
func (Expression) isLogicalExprWhere()          {}

// AndExpr is a conjunction.
type AndExpr struct {
	left, right LogicalExprWhere
}

// ToSQL renders `left AND right` without parentheses.
func (a AndExpr) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return renderBinary(r, a.left, " AND ", a.right)
}

// And renders `a AND o`.
func (a AndExpr) And(o LogicalExprWhere) LogicalExprWhere { return And(a, o) }

// Or renders `a OR o`.
func (a AndExpr) Or(o LogicalExprWhere) LogicalExprWhere { return Or(a, o) }

// Not renders `NOT a`.
func (a AndExpr) Not() LogicalExprWhere { return Not(a) }

// Exp wraps a in parentheses.
func (a AndExpr) Exp() LogicalExprWhere { return Exp(a) }

func (AndExpr) isLogicalExprWhere() {}

func (a AndExpr) collectTables(set tableSet) {
	a.left.collectTables(set)
	a.right.collectTables(set)
}

// OrExpr is a disjunction.
type OrExpr struct {
	left, right LogicalExprWhere
}

// ToSQL renders `left OR right` without parentheses.
func (o OrExpr) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return renderBinary(r, o.left, " OR ", o.right)
}

// And renders `o AND x`.
func (o OrExpr) And(x LogicalExprWhere) LogicalExprWhere { return And(o, x) }

// Or renders `o OR x`.
func (o OrExpr) Or(x LogicalExprWhere) LogicalExprWhere { return Or(o, x) }

// Not renders `NOT o`.
func (o OrExpr) Not() LogicalExprWhere { return Not(o) }

// Exp wraps o in parentheses.
func (o OrExpr) Exp() LogicalExprWhere { return Exp(o) }

func (OrExpr) isLogicalExprWhere() {}

func (o OrExpr) collectTables(set tableSet) {
	o.left.collectTables(set)
	o.right.collectTables(set)
}

func renderBinary(r resolvers.ArgsResolver, left resolvers.Renderer, op string, right resolvers.Renderer) (string, error) {
	l, err := left.ToSQL(r)
	if err != nil {
		return "", err
	}
	rs, err := right.ToSQL(r)
	if err != nil {
		return "", err
	}
	return l + op + rs, nil
}
