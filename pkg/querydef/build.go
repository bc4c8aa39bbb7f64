package querydef

import (
	"fmt"
	"strings"

	"github.com/vaniusrb/voxi-core/pkg/selections"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

var aggregateTypes = map[string]selections.AggregateType{
	"min":   selections.AggMin,
	"max":   selections.AggMax,
	"avg":   selections.AggAvg,
	"sum":   selections.AggSum,
	"count": selections.AggCount,
}

var joinTypes = map[string]selections.JoinType{
	"":      selections.JoinInner,
	"inner": selections.JoinInner,
	"left":  selections.JoinLeft,
	"right": selections.JoinRight,
	"full":  selections.JoinFull,
}

var combinationTypes = map[string]selections.CombinationType{
	"union":     selections.Union,
	"union_all": selections.UnionAll,
	"intersect": selections.Intersect,
	"except":    selections.Except,
}

// Build builds the query called name.
func (f *File) Build(name string) (*selections.Select, error) {
	q, err := f.Find(name)
	if err != nil {
		return nil, err
	}
	return q.Build()
}

// Build assembles the definition into a Select. Errors are prefixed with the
// query name and the path of the offending node.
func (q *QueryDef) Build() (*selections.Select, error) {
	s, err := buildQuery(q, "")
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", q.Name, err)
	}
	return s, nil
}

func key(path, k string) string {
	if path == "" {
		return k
	}
	return path + "." + k
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func at(path string, err error) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}

func buildQuery(q *QueryDef, path string) (*selections.Select, error) {
	if q == nil {
		return nil, invalid(path, "empty query")
	}

	b := selections.NewQueryBuilder()
	if q.Distinct {
		b.Distinct()
	}

	for i, c := range q.Columns {
		p := index(key(path, "columns"), i)
		v, err := buildOperand(&c.OperandDef, p)
		if err != nil {
			return nil, err
		}
		if c.Alias != "" {
			b.SelectAs(v, c.Alias)
		} else {
			b.Select(v)
		}
	}

	for i := range q.From {
		src, err := buildFrom(&q.From[i], index(key(path, "from"), i))
		if err != nil {
			return nil, err
		}
		b.From(src)
	}

	for i := range q.Joins {
		j := &q.Joins[i]
		p := index(key(path, "joins"), i)
		jt, ok := joinTypes[strings.ToLower(j.Type)]
		if !ok {
			return nil, invalid(key(p, "type"), "unknown join type %q", j.Type)
		}
		src, err := buildFrom(&j.FromDef, p)
		if err != nil {
			return nil, err
		}
		if j.On == nil {
			return nil, invalid(p, "missing join condition")
		}
		on, err := buildCondition(j.On, key(p, "condition"))
		if err != nil {
			return nil, err
		}
		b.Join(selections.NewJoin(jt, src, on))
	}

	if q.Where != nil {
		w, err := buildCondition(q.Where, key(path, "where"))
		if err != nil {
			return nil, err
		}
		b.Where(w)
	}

	for i, g := range q.GroupBy {
		f, err := selections.NewTableField(g)
		if err != nil {
			return nil, at(index(key(path, "group_by"), i), err)
		}
		b.Group(f)
	}

	if q.Having != nil {
		h, err := buildCondition(q.Having, key(path, "having"))
		if err != nil {
			return nil, err
		}
		b.Having(h)
	}

	for i, o := range q.OrderBy {
		f, err := selections.NewTableField(o.Field)
		if err != nil {
			return nil, at(index(key(path, "order_by"), i), err)
		}
		if o.Desc {
			b.Order(selections.Desc(f))
		} else {
			b.Order(selections.Asc(f))
		}
	}

	if l := q.Limit; l != nil {
		lo := selections.LimitOffset{Limit: l.Limit, Offset: l.Offset}
		if l.Page > 0 {
			lo.SetPage(l.Page)
		}
		b.LimitOffset(lo.Limit, lo.Offset)
	}

	if c := q.Combine; c != nil {
		p := key(path, "combine")
		ct, ok := combinationTypes[strings.ToLower(c.Type)]
		if !ok {
			return nil, invalid(key(p, "type"), "unknown combination %q", c.Type)
		}
		other, err := buildQuery(c.Query, key(p, "query"))
		if err != nil {
			return nil, err
		}
		switch ct {
		case selections.UnionAll:
			b.UnionAll(other)
		case selections.Intersect:
			b.Intersect(other)
		case selections.Except:
			b.Except(other)
		default:
			b.Union(other)
		}
	}

	for i, bd := range q.Binds {
		p := index(key(path, "binds"), i)
		if bd.Name == "" {
			return nil, invalid(p, "missing bind name")
		}
		v, err := literal(bd.Type, bd.Text, bd.Null)
		if err != nil {
			return nil, at(p, err)
		}
		b.AddBind(bd.Name, v)
	}

	s, err := b.Build()
	if err != nil {
		return nil, at(path, err)
	}
	return s, nil
}

func buildFrom(f *FromDef, path string) (selections.FromSelect, error) {
	switch {
	case f.Table != "" && f.Query != nil:
		return selections.FromSelect{}, invalid(path, "table and query are mutually exclusive")
	case f.Table != "":
		t, err := selections.NewTable(f.Table)
		if err != nil {
			return selections.FromSelect{}, at(key(path, "table"), err)
		}
		if f.Alias != "" {
			t = t.WithAlias(f.Alias)
			if err := t.Err(); err != nil {
				return selections.FromSelect{}, at(key(path, "alias"), err)
			}
		}
		return selections.FromTable(t), nil
	case f.Query != nil:
		if f.Alias == "" {
			return selections.FromSelect{}, invalid(path, "sub-query source needs an alias")
		}
		q, err := buildQuery(f.Query, key(path, "query"))
		if err != nil {
			return selections.FromSelect{}, err
		}
		if _, err := selections.NewAlias(f.Alias); err != nil {
			return selections.FromSelect{}, at(key(path, "alias"), err)
		}
		return selections.FromQuery(q, f.Alias), nil
	default:
		return selections.FromSelect{}, invalid(path, "missing table or query")
	}
}

func literal(t values.ValueType, text string, null bool) (values.NullableValue, error) {
	if null {
		return values.Null(t), nil
	}
	v, err := values.Parse(t, text)
	if err != nil {
		return values.NullableValue{}, err
	}
	return v.Nullable(), nil
}

func (o *OperandDef) keys() []string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("field", o.Field != "")
	add("value", o.Value != nil)
	add("bind", o.Bind != "")
	add("query", o.Query != nil)
	add("upper", o.Upper != nil)
	add("lower", o.Lower != nil)
	add("concat", o.Concat != nil)
	add("agg", o.Agg != nil)
	add("add", o.Add != nil)
	add("sub", o.Sub != nil)
	add("mul", o.Mul != nil)
	add("div", o.Div != nil)
	add("group", o.Group != nil)
	return set
}

func buildOperand(o *OperandDef, path string) (selections.ValueWhere, error) {
	if o == nil {
		return nil, invalid(path, "empty operand")
	}
	set := o.keys()
	switch len(set) {
	case 0:
		return nil, invalid(path, "empty operand")
	case 1:
	default:
		return nil, invalid(path, "operand sets more than one of %s", strings.Join(set, ", "))
	}

	switch set[0] {
	case "field":
		f, err := selections.NewTableField(o.Field)
		if err != nil {
			return nil, at(key(path, "field"), err)
		}
		return f, nil
	case "value":
		v, err := literal(o.Value.Type, o.Value.Text, o.Value.Null)
		if err != nil {
			return nil, at(key(path, "value"), err)
		}
		return selections.Lit(v), nil
	case "bind":
		return selections.Bind(o.Bind), nil
	case "query":
		q, err := buildQuery(o.Query, key(path, "query"))
		if err != nil {
			return nil, err
		}
		return selections.ValueOf(q), nil
	case "upper":
		v, err := buildOperand(o.Upper, key(path, "upper"))
		if err != nil {
			return nil, err
		}
		return selections.Upper(v), nil
	case "lower":
		v, err := buildOperand(o.Lower, key(path, "lower"))
		if err != nil {
			return nil, err
		}
		return selections.Lower(v), nil
	case "concat":
		args, err := buildOperands(o.Concat, key(path, "concat"), 1)
		if err != nil {
			return nil, err
		}
		return selections.Concat(args...), nil
	case "agg":
		agg, ok := aggregateTypes[strings.ToLower(o.Agg.Func)]
		if !ok {
			return nil, invalid(key(path, "agg.func"), "unknown aggregate %q", o.Agg.Func)
		}
		f, err := selections.NewTableField(o.Agg.Field)
		if err != nil {
			return nil, at(key(path, "agg.field"), err)
		}
		return selections.Aggregate(agg, f), nil
	case "add":
		return arithmetic(o.Add, key(path, "add"), selections.Add)
	case "sub":
		return arithmetic(o.Sub, key(path, "sub"), selections.Subtract)
	case "mul":
		return arithmetic(o.Mul, key(path, "mul"), selections.Multiply)
	case "div":
		return arithmetic(o.Div, key(path, "div"), selections.Divide)
	default: // group
		v, err := buildOperand(o.Group, key(path, "group"))
		if err != nil {
			return nil, err
		}
		return selections.ValueOf(selections.ArithExp(v)), nil
	}
}

func buildOperands(defs []OperandDef, path string, minimum int) ([]any, error) {
	if len(defs) < minimum {
		return nil, invalid(path, "needs at least %d operand(s), got %d", minimum, len(defs))
	}
	out := make([]any, len(defs))
	for i := range defs {
		v, err := buildOperand(&defs[i], index(path, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func exactly(defs []OperandDef, path string, n int) ([]any, error) {
	if len(defs) != n {
		return nil, invalid(path, "needs %d operands, got %d", n, len(defs))
	}
	return buildOperands(defs, path, n)
}

func arithmetic(defs []OperandDef, path string, op func(a, b any) selections.ArithmeticExprWhere) (selections.ValueWhere, error) {
	args, err := exactly(defs, path, 2)
	if err != nil {
		return nil, err
	}
	return selections.ValueOf(op(args[0], args[1])), nil
}

func (c *ConditionDef) keys() []string {
	var set []string
	add := func(name string, ok bool) {
		if ok {
			set = append(set, name)
		}
	}
	add("and", c.And != nil)
	add("or", c.Or != nil)
	add("not", c.Not != nil)
	add("exp", c.Exp != nil)
	add("eq", c.Eq != nil)
	add("ne", c.Ne != nil)
	add("gt", c.Gt != nil)
	add("lt", c.Lt != nil)
	add("ge", c.Ge != nil)
	add("le", c.Le != nil)
	add("like", c.Like != nil)
	add("is_null", c.IsNull != nil)
	add("in", c.In != nil)
	add("between", c.Between != nil)
	add("exists", c.Exists != nil)
	return set
}

var comparisons = map[string]func(a, b any) selections.ConditionWhere{
	"eq":   selections.Eq,
	"ne":   selections.Ne,
	"gt":   selections.Gt,
	"lt":   selections.Lt,
	"ge":   selections.Ge,
	"le":   selections.Le,
	"like": selections.Like,
}

func (c *ConditionDef) operands(name string) []OperandDef {
	switch name {
	case "eq":
		return c.Eq
	case "ne":
		return c.Ne
	case "gt":
		return c.Gt
	case "lt":
		return c.Lt
	case "ge":
		return c.Ge
	case "le":
		return c.Le
	case "like":
		return c.Like
	}
	return nil
}

func buildCondition(c *ConditionDef, path string) (selections.LogicalExprWhere, error) {
	set := c.keys()
	switch len(set) {
	case 0:
		return nil, invalid(path, "empty condition")
	case 1:
	default:
		return nil, invalid(path, "condition sets more than one of %s", strings.Join(set, ", "))
	}

	name := set[0]
	p := key(path, name)
	if cmp, ok := comparisons[name]; ok {
		args, err := exactly(c.operands(name), p, 2)
		if err != nil {
			return nil, err
		}
		return cmp(args[0], args[1]), nil
	}

	switch name {
	case "and", "or":
		items := c.And
		if name == "or" {
			items = c.Or
		}
		if len(items) == 0 {
			return nil, invalid(p, "needs at least one condition")
		}
		var out selections.LogicalExprWhere
		for i := range items {
			e, err := buildCondition(&items[i], index(p, i))
			if err != nil {
				return nil, err
			}
			if name == "and" {
				out = selections.And(out, e)
			} else {
				out = selections.Or(out, e)
			}
		}
		return out, nil
	case "not", "exp":
		inner := c.Not
		if name == "exp" {
			inner = c.Exp
		}
		e, err := buildCondition(inner, p)
		if err != nil {
			return nil, err
		}
		if name == "not" {
			return selections.Not(e), nil
		}
		return selections.Exp(e), nil
	case "is_null":
		v, err := buildOperand(c.IsNull, p)
		if err != nil {
			return nil, err
		}
		return selections.Null(v), nil
	case "in":
		return buildIn(c.In, p)
	case "between":
		args, err := exactly(c.Between, p, 3)
		if err != nil {
			return nil, err
		}
		return selections.Between(args[0], args[1], args[2]), nil
	default: // exists
		q, err := buildQuery(c.Exists, p)
		if err != nil {
			return nil, err
		}
		return selections.ExistsQuery(q), nil
	}
}

func buildIn(in *InDef, path string) (selections.LogicalExprWhere, error) {
	v, err := buildOperand(&in.Value, key(path, "value"))
	if err != nil {
		return nil, err
	}
	switch {
	case in.Values != nil && in.Query != nil:
		return nil, invalid(path, "values and query are mutually exclusive")
	case in.Query != nil:
		q, err := buildQuery(in.Query, key(path, "query"))
		if err != nil {
			return nil, err
		}
		return selections.Inc(v, q), nil
	default:
		items, err := buildOperands(in.Values, key(path, "values"), 1)
		if err != nil {
			return nil, err
		}
		return selections.Inc(v, selections.List(items...)), nil
	}
}
