package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// ArithmeticExprWhere is an arithmetic expression over values.
type ArithmeticExprWhere interface {
	resolvers.Renderer
	collectTables(set tableSet)
	isArithmeticExprWhere()
}

// ArithmeticOperator is one of the four binary operators.
type ArithmeticOperator int

const (
	OpAdd ArithmeticOperator = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the SQL operator.
func (o ArithmeticOperator) String() string {
	switch o {
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	default:
		return "+"
	}
}

// ArithmeticValue is a value used as an arithmetic operand.
type ArithmeticValue struct {
	value ValueWhere
}

// ToSQL renders the operand.
func (a ArithmeticValue) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return a.value.ToSQL(r)
}

func (a ArithmeticValue) collectTables(set tableSet) { a.value.collectTables(set) }
func (ArithmeticValue) isArithmeticExprWhere()       {}

// ArithmeticExpression wraps an expression in parentheses.
type ArithmeticExpression struct {
	expr ArithmeticExprWhere
}

// ToSQL renders `(expr)`.
func (a ArithmeticExpression) ToSQL(r resolvers.ArgsResolver) (string, error) {
	s, err := a.expr.ToSQL(r)
	if err != nil {
		return "", err
	}
	return "(" + s + ")", nil
}

func (a ArithmeticExpression) collectTables(set tableSet) { a.expr.collectTables(set) }
func (ArithmeticExpression) isArithmeticExprWhere()       {}

// ArithmeticOperation applies a binary operator.
type ArithmeticOperation struct {
	op          ArithmeticOperator
	left, right ArithmeticExprWhere
}

// Operator returns the operator.
func (a ArithmeticOperation) Operator() ArithmeticOperator { return a.op }

// ToSQL renders `left op right`.
func (a ArithmeticOperation) ToSQL(r resolvers.ArgsResolver) (string, error) {
	l, err := a.left.ToSQL(r)
	if err != nil {
		return "", err
	}
	rs, err := a.right.ToSQL(r)
	if err != nil {
		return "", err
	}
	return l + " " + a.op.String() + " " + rs, nil
}

func (a ArithmeticOperation) collectTables(set tableSet) {
	a.left.collectTables(set)
	a.right.collectTables(set)
}

func (ArithmeticOperation) isArithmeticExprWhere() {}

func arithOf(x any) ArithmeticExprWhere {
	if a, ok := x.(ArithmeticExprWhere); ok {
		return a
	}
	return ArithmeticValue{value: ValueOf(x)}
}

// Add renders `a + b`.
func Add(a, b any) ArithmeticExprWhere {
	return ArithmeticOperation{op: OpAdd, left: arithOf(a), right: arithOf(b)}
}

// Subtract renders `a - b`.
func Subtract(a, b any) ArithmeticExprWhere {
	return ArithmeticOperation{op: OpSubtract, left: arithOf(a), right: arithOf(b)}
}

// Multiply renders `a * b`.
func Multiply(a, b any) ArithmeticExprWhere {
	return ArithmeticOperation{op: OpMultiply, left: arithOf(a), right: arithOf(b)}
}

// Divide renders `a / b`.
func Divide(a, b any) ArithmeticExprWhere {
	return ArithmeticOperation{op: OpDivide, left: arithOf(a), right: arithOf(b)}
}

// ArithExp wraps x in parentheses.
func ArithExp(x any) ArithmeticExprWhere {
	return ArithmeticExpression{expr: arithOf(x)}
}

// Plus renders `f + x`.
func (f TableField) Plus(x any) ArithmeticExprWhere { return Add(f, x) }

// Minus renders `f - x`.
func (f TableField) Minus(x any) ArithmeticExprWhere { return Subtract(f, x) }

// Times renders `f * x`.
func (f TableField) Times(x any) ArithmeticExprWhere { return Multiply(f, x) }

// Over renders `f / x`.
func (f TableField) Over(x any) ArithmeticExprWhere { return Divide(f, x) }
