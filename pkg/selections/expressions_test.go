package selections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

func TestExpressionSQL(t *testing.T) {
	orders, err := NewQueryBuilder().Field("CUSTOMER").From("ORDERS").Build()
	require.NoError(t, err)

	tests := []struct {
		name string
		node resolvers.Renderer
		want string
	}{
		{"plain field", Field("ID"), `"ID"`},
		{"qualified field", Field("ORD.ID"), `"ORD"."ID"`},
		{"dotted field name", Field("S.T.F"), `"S"."T.F"`},
		{"alias preferred", MustTable("DETAIL DET").Field("MASTER"), `"DET"."MASTER"`},
		{"star", Field("*"), `*`},
		{"standalone table", MustTable("DETAIL DET"), `"DETAIL" "DET"`},
		{"not equal", Ne(Field("A"), 1), `"A" <> 1`},
		{"greater", Field("A").Greater(1), `"A" > 1`},
		{"less", Field("A").Less(1), `"A" < 1`},
		{"greater or equal", Field("A").GreaterOrEqual(1), `"A" >= 1`},
		{"less or equal", Field("A").LessOrEqual(1), `"A" <= 1`},
		{"diff", Field("A").Diff("x"), `"A" <> 'x'`},
		{"like", Field("NAME").Like("A%"), `"NAME" LIKE 'A%'`},
		{"is null", Field("X").IsNull(), `"X" IS NULL`},
		{"null literal", Eq(Field("X"), values.Null(values.ValueTypeInt32)), `"X" = NULL`},
		{"between", Field("AGE").Between(18, 65), `"AGE" BETWEEN 18 AND 65`},
		{"in sub-query", Field("ID").Include(orders), `"ID" IN (SELECT "CUSTOMER" FROM "ORDERS")`},
		{"exists", ExistsQuery(orders), `EXISTS (SELECT "CUSTOMER" FROM "ORDERS")`},
		{"scalar sub-query", Eq(Field("ID"), orders), `"ID" = (SELECT "CUSTOMER" FROM "ORDERS")`},
		{"not", Not(Field("X").IsNull()), `NOT "X" IS NULL`},
		{"fluent not", Field("X").IsNull().Not(), `NOT "X" IS NULL`},
		{"or without grouping", Field("A").Equal(1).Or(Field("B").Equal(2)).And(Field("C").Equal(3)), `"A" = 1 OR "B" = 2 AND "C" = 3`},
		{"all of", AllOf(Field("A").Equal(1), Field("B").Equal(2), Field("C").Equal(3)), `"A" = 1 AND "B" = 2 AND "C" = 3`},
		{"null expression", NullExpr(Add(Field("A"), 1)), `"A" + 1 IS NULL`},
		{"arithmetic grouping", Multiply(ArithExp(Field("A").Plus(1)), 2), `("A" + 1) * 2`},
		{"subtract and divide", Divide(Field("A").Minus(Field("B")), 2), `"A" - "B" / 2`},
		{"times", Field("QTY").Times(Field("PRICE")), `"QTY" * "PRICE"`},
		{"over", Field("TOTAL").Over(4), `"TOTAL" / 4`},
		{"upper", Upper(Field("NAME")), `UPPER("NAME")`},
		{"lower", Lower("ABC"), `LOWER('ABC')`},
		{"substring", Substring(Field("NAME"), 1, 3), `SUBSTRING("NAME" FROM 1 FOR 3)`},
		{"replace", Replace(Field("NAME"), "a", "b"), `REPLACE("NAME", 'a', 'b')`},
		{"concat", Concat(Field("A"), "-", Field("B")), `CONCAT("A",'-',"B")`},
		{"count star", Count(Field("*")), `COUNT(*)`},
		{"min", Min(Field("T.PRICE")), `MIN("T"."PRICE")`},
		{"max", Max(Field("PRICE")), `MAX("PRICE")`},
		{"avg", Avg(Field("PRICE")), `AVG("PRICE")`},
		{"sum", Sum(Field("PRICE")), `SUM("PRICE")`},
		{
			"simple case with else",
			NewCaseValue(Field("STATUS")).When(1, "One").When(2, "Two").Else("Other").Build(),
			`CASE "STATUS" WHEN 1 THEN 'One' WHEN 2 THEN 'Two' ELSE 'Other' END`,
		},
		{
			"searched case with else",
			NewCaseCondition().When(Field("A").IsNull(), 0).Else(Field("A")).Build(),
			`CASE WHEN "A" IS NULL THEN 0 ELSE "A" END`,
		},
		{"column alias", ColumnAs(Upper(Field("NAME")), "N"), `UPPER("NAME") AS "N"`},
		{"left join", LeftJoin("ADDRESS", Field("ADDRESS.CUSTOMER").Equal(Field("CUSTOMER.ID"))), `LEFT JOIN "ADDRESS" ON "ADDRESS"."CUSTOMER" = "CUSTOMER"."ID"`},
		{"right join", RightJoin("A", Eq(Field("A.ID"), Field("B.ID"))), `RIGHT JOIN "A" ON "A"."ID" = "B"."ID"`},
		{"full join", FullJoin("A", Eq(Field("A.ID"), Field("B.ID"))), `FULL JOIN "A" ON "A"."ID" = "B"."ID"`},
		{"order desc", Desc(Field("ID")), `"ID" DESC`},
		{"sub-query source", FromQuery(orders, "Q"), `(SELECT "CUSTOMER" FROM "ORDERS") AS "Q"`},
		{"table source with alias", FromOf("ORDERS").WithAlias("O"), `"ORDERS" "O"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvers.ArgsToStr(tt.node)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("ToSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name  string
		node  resolvers.Renderer
		check func(error) bool
	}{
		{"quoted field", Field(`A"B`), voxi.IsInvalidIdentifierErr},
		{"quoted table", Field(`T"X.ID`), voxi.IsInvalidIdentifierErr},
		{"quoted alias", ColumnAs(Field("A"), `x"y`), voxi.IsInvalidIdentifierErr},
		{"unsupported literal", Eq(Field("A"), struct{}{}), voxi.IsConversionErr},
		{"missing bind", Eq(Field("A"), Bind("nope")), voxi.IsBindNameNotFoundErr},
		{"case without branches", NewCaseCondition().Build(), voxi.IsInvalidQueryBuilderConfigurationErr},
		{"sub-query without from", SingleField("ID").Build(), voxi.IsInvalidQueryBuilderConfigurationErr},
		{"join without condition", InnerJoin("T", nil), voxi.IsInvalidQueryBuilderConfigurationErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvers.ArgsToStr(tt.node)
			require.Error(t, err)
			assert.Empty(t, got)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
		})
	}
}

func TestExpressionPlaceholders(t *testing.T) {
	cond := Field("NAME").Equal("a").And(Field("AGE").Between(18, Bind("max_age")))

	sql, args, err := resolvers.ArgsToParams(cond, resolvers.Dollar, resolvers.Binds{
		"max_age": values.Nullable(values.Int32(65)),
	})
	require.NoError(t, err)
	assert.Equal(t, `"NAME" = $1 AND "AGE" BETWEEN $2 AND $3`, sql)
	assert.Equal(t, []any{"a", int64(18), int64(65)}, args)

	sql, _, err = resolvers.ArgsToParams(cond, resolvers.Question, resolvers.Binds{
		"max_age": values.Nullable(values.Int32(65)),
	})
	require.NoError(t, err)
	assert.Equal(t, `"NAME" = ? AND "AGE" BETWEEN ? AND ?`, sql)
}

func TestIdentifierConstructors(t *testing.T) {
	_, err := NewTable(`ORDERS "O`)
	assert.True(t, voxi.IsInvalidIdentifierErr(err))

	tbl, err := NewTable("ORDERS ORD")
	require.NoError(t, err)
	assert.Equal(t, "ORDERS", tbl.Name().String())
	alias, ok := tbl.Alias()
	require.True(t, ok)
	assert.Equal(t, "ORD", alias.String())

	f, err := NewTableField("ORD.TOTAL")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", f.Name().String())
	assert.Equal(t, "ORD.TOTAL", f.String())

	_, err = NewTableField(`ORD.TO"TAL`)
	assert.True(t, voxi.IsInvalidIdentifierErr(err))

	_, err = NewAlias(`"`)
	assert.True(t, voxi.IsConversionErr(err))

	assert.Panics(t, func() { MustTable(`"`) })
}
