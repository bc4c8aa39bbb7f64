package selections

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// ValueWhere is a scalar operand: a field, a literal, a bind, a scalar
// sub-query, an aggregate, a CASE, a string function or an arithmetic
// expression used as a value.
type ValueWhere interface {
	resolvers.Renderer
	collectTables(set tableSet)
	isValueWhere()
}

// ValueOf converts x into a ValueWhere. ValueWhere values pass through,
// arithmetic expressions and selects are wrapped, field names become
// table-less fields, bind names become binds and everything else is a
// literal. Strings are literals; use Field for columns. A value that cannot
// be converted yields a node that fails to render.
func ValueOf(x any) ValueWhere {
	switch v := x.(type) {
	case ValueWhere:
		return v
	case ArithmeticExprWhere:
		return ExpressionValue{expr: v}
	case *Select:
		return SingleQuery{query: v}
	case values.FieldName:
		return FieldOf(v)
	case values.BindName:
		return BindParameter{name: v}
	case nil:
		return invalidValue{err: fmt.Errorf("nil is not a value, use values.Null for NULL")}
	}
	return Lit(x)
}

func valuesOf(xs []any) []ValueWhere {
	out := make([]ValueWhere, len(xs))
	for i, x := range xs {
		out[i] = ValueOf(x)
	}
	return out
}

// LiteralValue is a typed literal, rendered through the resolver.
type LiteralValue struct {
	value values.NullableValue
}

// Lit converts x into a literal. It accepts values.Value,
// values.NullableValue and every Go type values.NullableOf accepts.
func Lit(x any) ValueWhere {
	n, err := values.NullableOf(x)
	if err != nil {
		return invalidValue{err: err}
	}
	return LiteralValue{value: n}
}

// Value returns the literal payload.
func (l LiteralValue) Value() values.NullableValue { return l.value }

// ToSQL hands the literal to the resolver.
func (l LiteralValue) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return r.AddArg(l.value), nil
}

func (LiteralValue) collectTables(tableSet) {}
func (LiteralValue) isValueWhere()          {}

// BindParameter is a named parameter whose value is looked up at render time.
type BindParameter struct {
	name values.BindName
}

// Bind references a named parameter.
func Bind(name string) BindParameter {
	return BindParameter{name: values.BindName(name)}
}

// Name returns the bind name.
func (b BindParameter) Name() values.BindName { return b.name }

// ToSQL resolves the bind and renders its value as an argument.
func (b BindParameter) ToSQL(r resolvers.ArgsResolver) (string, error) {
	v, err := r.ResolveBind(b.name)
	if err != nil {
		return "", err
	}
	return r.AddArg(v), nil
}

func (BindParameter) collectTables(tableSet) {}
func (BindParameter) isValueWhere()          {}

// ExpressionValue uses an arithmetic expression as an operand.
type ExpressionValue struct {
	expr ArithmeticExprWhere
}

// Expr returns the wrapped expression.
func (e ExpressionValue) Expr() ArithmeticExprWhere { return e.expr }

// ToSQL renders the wrapped expression.
func (e ExpressionValue) ToSQL(r resolvers.ArgsResolver) (string, error) {
	return e.expr.ToSQL(r)
}

func (e ExpressionValue) collectTables(set tableSet) { e.expr.collectTables(set) }
func (ExpressionValue) isValueWhere()                {}

type invalidValue struct {
	err error
}

func (v invalidValue) ToSQL(resolvers.ArgsResolver) (string, error) { return "", v.err }
func (invalidValue) collectTables(tableSet)                         {}
func (invalidValue) isValueWhere()                                  {}

type tableSet map[TableName]struct{}

func (s tableSet) add(t TableName) { s[t] = struct{}{} }

func (s tableSet) sorted() []TableName {
	out := make([]TableName, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b TableName) int { return strings.Compare(a.name, b.name) })
	return out
}

// renderJoined renders every node and joins the results with sep, stopping at
// the first error.
func renderJoined[T resolvers.Renderer](r resolvers.ArgsResolver, nodes []T, sep string) (string, error) {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := n.ToSQL(r)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, sep), nil
}
