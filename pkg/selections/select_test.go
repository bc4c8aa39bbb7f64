package selections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

func TestSelectSQL(t *testing.T) {
	legacy := NewQueryBuilder().Field("ID").Literal(0).From("LEGACY").MustBuild()
	inner := NewQueryBuilder().Field("ID").From("TABLE").MustBuild()

	tests := []struct {
		name    string
		builder *QueryBuilder
		want    string
	}{
		{
			name: "join where order limit",
			builder: NewQueryBuilder().
				Field("MAS.ID", "DET.NAME").
				From("MASTER MAS").
				Join(InnerJoin("DETAIL DET", Eq(Field("DET.MASTER"), Field("MAS.ID")))).
				Where(Field("MAS.ACTIVE").Equal(true)).
				OrderBy("MAS.ID").
				LimitOffset(10, 20),
			want: `SELECT "MAS"."ID","DET"."NAME" FROM "MASTER" "MAS" INNER JOIN "DETAIL" "DET" ON "DET"."MASTER" = "MAS"."ID" WHERE "MAS"."ACTIVE" = true ORDER BY "MAS"."ID" ASC LIMIT 10 OFFSET 20`,
		},
		{
			name: "distinct group having union",
			builder: NewQueryBuilder().
				Distinct().
				Field("ORD.CUSTOMER").
				Sum("ORD.TOTAL").
				From("ORDERS ORD").
				Group("ORD.CUSTOMER").
				Having(Gt(Sum(Field("ORD.TOTAL")), 100)).
				Union(legacy),
			want: `SELECT DISTINCT "ORD"."CUSTOMER",SUM("ORD"."TOTAL") FROM "ORDERS" "ORD" GROUP BY "ORD"."CUSTOMER" HAVING SUM("ORD"."TOTAL") > 100 UNION SELECT "ID",0 FROM "LEGACY"`,
		},
		{
			name:    "union all",
			builder: NewQueryBuilder().Field("ID").From("A").UnionAll(legacy),
			want:    `SELECT "ID" FROM "A" UNION ALL SELECT "ID",0 FROM "LEGACY"`,
		},
		{
			name:    "intersect",
			builder: NewQueryBuilder().Field("ID").From("A").Intersect(inner),
			want:    `SELECT "ID" FROM "A" INTERSECT SELECT "ID" FROM "TABLE"`,
		},
		{
			name:    "except",
			builder: NewQueryBuilder().Field("ID").From("A").Except(inner),
			want:    `SELECT "ID" FROM "A" EXCEPT SELECT "ID" FROM "TABLE"`,
		},
		{
			name:    "sub-query source",
			builder: NewQueryBuilder().All().FromQuery(inner, "Q"),
			want:    `SELECT * FROM (SELECT "ID" FROM "TABLE") AS "Q"`,
		},
		{
			name:    "several sources",
			builder: NewQueryBuilder().Count("*").From("A", MustTable("B BB")),
			want:    `SELECT COUNT(*) FROM "A", "B" "BB"`,
		},
		{
			name: "aliases and aggregates",
			builder: NewQueryBuilder().
				SelectAs(Upper(Field("NAME")), "N").
				Max("PRICE").Min("PRICE").Avg("PRICE").
				From("PRODUCT").
				Group("NAME", Field("CATEGORY")),
			want: `SELECT UPPER("NAME") AS "N",MAX("PRICE"),MIN("PRICE"),AVG("PRICE") FROM "PRODUCT" GROUP BY "NAME", "CATEGORY"`,
		},
		{
			name: "where called twice is combined with AND",
			builder: NewQueryBuilder().Field("ID").From("T").
				Where(Field("A").Equal(1)).
				Where(Field("B").Equal(2)),
			want: `SELECT "ID" FROM "T" WHERE "A" = 1 AND "B" = 2`,
		},
		{
			name: "order mixed directions",
			builder: NewQueryBuilder().Field("ID").From("T").
				Order(Asc(Field("A")), Desc(Field("B"))),
			want: `SELECT "ID" FROM "T" ORDER BY "A" ASC, "B" DESC`,
		},
		{
			name:    "query-local bind",
			builder: NewQueryBuilder().Bind("x").From("T").AddBind("x", "v"),
			want:    `SELECT 'v' FROM "T"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.builder.Build()
			require.NoError(t, err)
			got, err := resolvers.ArgsToStr(q)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("Select.ToSQL() = %q, want %q", got, tt.want)
			}
			assert.Equal(t, tt.want, q.String())
		})
	}
}

func TestQueryBuilderValidation(t *testing.T) {
	tests := []struct {
		name    string
		builder *QueryBuilder
		check   func(error) bool
		message string
	}{
		{
			name:    "no columns",
			builder: NewQueryBuilder().From("T"),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
			message: "voxi: query builder invalid configuration: no column has been defined",
		},
		{
			name:    "no from",
			builder: NewQueryBuilder().Field("ID"),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
			message: "voxi: query builder invalid configuration: no from source has been defined",
		},
		{
			name:    "invalid field",
			builder: NewQueryBuilder().Field(`A"B`).From("T"),
			check:   voxi.IsInvalidIdentifierErr,
		},
		{
			name:    "invalid table",
			builder: NewQueryBuilder().Field("ID").From(`T"`),
			check:   voxi.IsInvalidIdentifierErr,
		},
		{
			name:    "unsupported bind value",
			builder: NewQueryBuilder().Field("ID").From("T").AddBind("b", []int{1}),
			check:   voxi.IsConversionErr,
		},
		{
			name:    "nil union",
			builder: NewQueryBuilder().Field("A").From("T").Union(nil),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
			message: "voxi: query builder invalid configuration: sub-query is nil",
		},
		{
			name:    "nil union all",
			builder: NewQueryBuilder().Field("A").From("T").UnionAll(nil),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil intersect",
			builder: NewQueryBuilder().Field("A").From("T").Intersect(nil),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil except",
			builder: NewQueryBuilder().Field("A").From("T").Except(nil),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil from query",
			builder: NewQueryBuilder().All().FromQuery(nil, "Q"),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil from source",
			builder: NewQueryBuilder().All().From((*Select)(nil)),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil exists in where",
			builder: NewQueryBuilder().Field("A").From("T").Where(ExistsQuery(nil)),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:    "nil exists in having",
			builder: NewQueryBuilder().Count("A").From("T").Having(ExistsQuery(nil)),
			check:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := tt.builder.Build()
			require.Error(t, err)
			assert.Nil(t, q)
			assert.True(t, tt.check(err), "unexpected error kind: %v", err)
			if tt.message != "" {
				assert.EqualError(t, err, tt.message)
			}
		})
	}
}

func TestNilSubQueryRender(t *testing.T) {
	r := resolvers.NewStringResolver()
	tests := []struct {
		name string
		node resolvers.Renderer
	}{
		{"select", (*Select)(nil)},
		{"exists", ExistsQuery(nil)},
		{"nested exists", Field("A").Equal(1).And(ExistsQuery(nil))},
		{"from query", FromQuery(nil, "Q")},
		{"scalar sub-query", ValueOf((*Select)(nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.node.ToSQL(r)
			require.Error(t, err)
			assert.True(t, voxi.IsInvalidQueryBuilderConfigurationErr(err), "unexpected error kind: %v", err)
		})
	}
}

func TestBindShadowing(t *testing.T) {
	inner := NewQueryBuilder().Bind("x").From("T2").AddBind("x", 2).MustBuild()
	outer := NewQueryBuilder().Bind("x").Select(inner).From("T1").MustBuild()
	external := resolvers.Binds{"x": values.Nullable(values.Int64(1))}

	got, err := outer.ToSQL(resolvers.NewStringResolver().WithBinds(external))
	require.NoError(t, err)
	assert.Equal(t, `SELECT 1,(SELECT 2 FROM "T2") FROM "T1"`, got)

	sql, args, err := resolvers.ArgsToParams(outer, resolvers.Dollar, external)
	require.NoError(t, err)
	assert.Equal(t, `SELECT $1,(SELECT $2 FROM "T2") FROM "T1"`, sql)
	assert.Equal(t, []any{int64(1), int64(2)}, args)

	// without the external bind the outer reference fails, the inner one does not
	_, err = resolvers.ArgsToStr(outer)
	assert.True(t, voxi.IsBindNameNotFoundErr(err))
	assert.Contains(t, outer.String(), "<error: ")

	innerSQL, err := resolvers.ArgsToStr(inner)
	require.NoError(t, err)
	assert.Equal(t, `SELECT 2 FROM "T2"`, innerSQL)
}

func TestTablesNames(t *testing.T) {
	master := MustTable("MASTER MAS")
	detail := MustTable("DETAIL DET")

	q := NewQueryBuilder().
		Fields(master.Field("ID"), detail.Field("NAME")).
		From(master).
		Join(InnerJoin(detail, detail.Field("MASTER").Equal(master.Field("ID")))).
		Where(master.Field("ACTIVE").Equal(true)).
		MustBuild()

	assert.Equal(t, `SELECT "MAS"."ID","DET"."NAME" FROM "MASTER" "MAS" INNER JOIN "DETAIL" "DET" ON "DET"."MASTER" = "MAS"."ID" WHERE "MAS"."ACTIVE" = true`, q.String())
	assert.Equal(t, []string{"MASTER"}, q.TableNameStrings())

	withSub := NewQueryBuilder().
		Field("C.NAME").
		Select(SingleCount("*").From("ORDERS").Where(Field("ORDERS.CUSTOMER").Equal(Field("C.ID"))).Build()).
		From("CUSTOMER C").
		Where(Field("Z.ID").IsNull()).
		MustBuild()
	assert.Equal(t, []string{"C", "CUSTOMER", "ORDERS", "Z"}, withSub.TableNameStrings())
}

func TestLimitOffsetPaging(t *testing.T) {
	lo := LimitOffset{Limit: 10, Offset: 30}
	assert.Equal(t, uint64(4), lo.Page())

	lo.SetPage(2)
	assert.Equal(t, uint64(10), lo.Offset)

	lo.SetPage(0)
	assert.Equal(t, uint64(0), lo.Offset)

	assert.Equal(t, uint64(1), LimitOffset{Offset: 30}.Page())
}

func TestReopenQuery(t *testing.T) {
	base := NewQueryBuilder().
		Field("ID").From("T").
		OrderBy("ID").
		LimitOffset(5, 0).
		MustBuild()

	reopened := NewQueryBuilderFrom(base).
		WithoutSort().
		WithoutOffset().
		ReplaceSelect(Count(Field("*"))).
		MustBuild()

	assert.Equal(t, `SELECT COUNT(*) FROM "T"`, reopened.String())
	assert.Equal(t, `SELECT "ID" FROM "T" ORDER BY "ID" ASC LIMIT 5 OFFSET 0`, base.String())

	lo, ok := base.LimitOffset()
	require.True(t, ok)
	assert.Equal(t, uint64(5), lo.Limit)
	_, ok = reopened.LimitOffset()
	assert.False(t, ok)
}

func TestSelectAccessors(t *testing.T) {
	q := NewQueryBuilder().
		Distinct().
		Field("A.ID").
		From("A").
		Join(LeftJoin("B", Field("B.ID").Equal(Field("A.ID")))).
		Where(Field("A.ID").Greater(0)).
		Group("A.ID").
		Having(Gt(Count(Field("*")), 1)).
		Order(Desc(Field("A.ID"))).
		Union(NewQueryBuilder().Field("ID").From("C").MustBuild()).
		AddBind("b", 1).
		MustBuild()

	assert.True(t, q.Distinct())
	assert.Len(t, q.Columns(), 1)
	assert.Len(t, q.From(), 1)
	require.Len(t, q.Joins(), 1)
	assert.Equal(t, JoinLeft, q.Joins()[0].Type())
	assert.NotNil(t, q.Where())
	assert.Len(t, q.GroupBy(), 1)
	assert.NotNil(t, q.Having())
	require.Len(t, q.OrderBy(), 1)
	assert.True(t, q.OrderBy()[0].IsDesc())
	c, ok := q.Combination()
	require.True(t, ok)
	assert.Equal(t, Union, c.Type())
	require.Len(t, q.Binds(), 1)
	assert.Equal(t, values.BindName("b"), q.Binds()[0].Name)

	cols := q.Columns()
	cols[0] = Column(Field("OTHER"))
	assert.Equal(t, `SELECT DISTINCT "A"."ID" FROM "A" LEFT JOIN "B" ON "B"."ID" = "A"."ID" WHERE "A"."ID" > 0 GROUP BY "A"."ID" HAVING COUNT(*) > 1 ORDER BY "A"."ID" DESC UNION SELECT "ID" FROM "C"`, q.String())
}

func TestSingleQuery(t *testing.T) {
	tests := []struct {
		name string
		q    SingleQuery
		want string
	}{
		{"count", SingleCount("*").From("ORDERS").Build(), `(SELECT COUNT(*) FROM "ORDERS")`},
		{"sum", SingleSum("TOTAL").From("ORDERS").Build(), `(SELECT SUM("TOTAL") FROM "ORDERS")`},
		{"max with where", SingleMax("TOTAL").From("ORDERS").Where(Field("STATUS").Equal(1)).Build(), `(SELECT MAX("TOTAL") FROM "ORDERS" WHERE "STATUS" = 1)`},
		{"min ordered", SingleMin("TOTAL").From("ORDERS").Order(Asc(Field("ID"))).LimitOffset(1, 0).Build(), `(SELECT MIN("TOTAL") FROM "ORDERS" ORDER BY "ID" ASC LIMIT 1 OFFSET 0)`},
		{"avg grouped", SingleAvg("TOTAL").From("ORDERS").Group("CUSTOMER").Having(Gt(Count(Field("*")), 2)).Build(), `(SELECT AVG("TOTAL") FROM "ORDERS" GROUP BY "CUSTOMER" HAVING COUNT(*) > 2)`},
		{"literal", SingleLiteral(1).From("DUAL").Build(), `(SELECT 1 FROM "DUAL")`},
		{"distinct field", SingleField("NAME").Distinct().From("T").Build(), `(SELECT DISTINCT "NAME" FROM "T")`},
		{"select with bind", SingleSelect(Bind("v")).From("T").AddBind("v", "x").Build(), `(SELECT 'x' FROM "T")`},
		{"joined", SingleField("A.ID").From("A").Join(InnerJoin("B", Field("B.ID").Equal(Field("A.ID")))).WithoutSort().Build(), `(SELECT "A"."ID" FROM "A" INNER JOIN "B" ON "B"."ID" = "A"."ID")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolvers.ArgsToStr(tt.q)
			require.NoError(t, err)
			if got != tt.want {
				t.Errorf("SingleQuery.ToSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFieldsAttribs(t *testing.T) {
	fa, err := NewFieldsAttribsBuilder().
		Add(values.ValueTypeString, "NAME", "Name", nil, false).
		Add(values.ValueTypeDecimal, "TOTAL", "Total", Sum(Field("ORD.TOTAL")), true).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 2, fa.Len())
	assert.Equal(t, []string{"NAME", "TOTAL"}, fa.Names())

	total, err := fa.Find("TOTAL")
	require.NoError(t, err)
	assert.True(t, total.Nullable)
	assert.Equal(t, values.ValueTypeDecimal, total.Type)

	_, err = fa.Find("PRICE")
	require.Error(t, err)
	assert.True(t, voxi.IsFieldNameNotFoundErr(err))
	assert.EqualError(t, err, "voxi: field name not found: `PRICE` (available: NAME, TOTAL)")

	types := fa.FieldNameTypes()
	require.Len(t, types, 2)
	assert.Equal(t, values.ValueTypeString, types[0].Type)

	q, err := fa.Query("ORDERS ORD").Group("NAME").Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "NAME",SUM("ORD"."TOTAL") AS "TOTAL" FROM "ORDERS" "ORD" GROUP BY "NAME"`, q.String())

	_, err = NewFieldsAttribsBuilder().Add(values.ValueTypeString, `"`, "", nil, true).Build()
	assert.True(t, voxi.IsInvalidIdentifierErr(err))
}
