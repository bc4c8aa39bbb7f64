package querydef

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

const ordersYAML = `
queries:
  - name: active_orders
    columns:
      - field: ORD.ID
      - field: ORD.TOTAL
        alias: total
      - agg: {func: count, field: "*"}
    from:
      - table: ORDERS ORD
    joins:
      - type: inner
        table: CUSTOMER CUS
        condition: {eq: [{field: CUS.ID}, {field: ORD.CUSTOMER_ID}]}
    where:
      and:
        - {eq: [{field: ORD.STATUS}, {value: {type: Int32, text: "1"}}]}
        - {gt: [{field: ORD.TOTAL}, {bind: min_total}]}
    group_by: [ORD.ID, ORD.TOTAL]
    order_by: [{field: ORD.ID, desc: true}]
    limit: {limit: 10, page: 3}
    binds:
      - {name: min_total, type: Decimal, text: "12.5"}
`

func TestBuildRendersDefinition(t *testing.T) {
	f, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	q, err := f.Build("active_orders")
	require.NoError(t, err)

	want := `SELECT "ORD"."ID","ORD"."TOTAL" AS "total",COUNT(*) FROM "ORDERS" "ORD" ` +
		`INNER JOIN "CUSTOMER" "CUS" ON "CUS"."ID" = "ORD"."CUSTOMER_ID" ` +
		`WHERE "ORD"."STATUS" = 1 AND "ORD"."TOTAL" > 12.5 ` +
		`GROUP BY "ORD"."ID", "ORD"."TOTAL" ORDER BY "ORD"."ID" DESC LIMIT 10 OFFSET 20`
	assert.Equal(t, want, q.String())

	sql, args, err := resolvers.ArgsToParams(q, resolvers.Dollar, nil)
	require.NoError(t, err)
	assert.Contains(t, sql, `WHERE "ORD"."STATUS" = $1 AND "ORD"."TOTAL" > $2`)
	assert.Equal(t, []any{int64(1), "12.5"}, args)

	assert.Equal(t, []string{"ORD", "ORDERS"}, q.TableNameStrings())
}

func TestBuildExpressions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "string functions and arithmetic",
			yaml: `
columns:
  - upper: {field: NAME}
  - lower: {value: {text: ABC}}
  - concat: [{field: FIRST}, {value: {text: " "}}, {field: LAST}]
  - mul: [{group: {add: [{field: A}, {field: B}]}}, {value: {type: Int64, text: "2"}}]
from:
  - table: PERSON`,
			want: `SELECT UPPER("NAME"),LOWER('ABC'),CONCAT("FIRST",' ',"LAST"),("A" + "B") * 2 FROM "PERSON"`,
		},
		{
			name: "or not exp and null",
			yaml: `
columns: [{field: ID}]
from: [{table: T}]
where:
  exp:
    or:
      - {is_null: {field: A}}
      - {not: {like: [{field: B}, {value: {text: "x%"}}]}}`,
			want: `SELECT "ID" FROM "T" WHERE ("A" IS NULL OR NOT "B" LIKE 'x%')`,
		},
		{
			name: "in list between and typed null",
			yaml: `
columns: [{field: ID}]
from: [{table: T}]
where:
  and:
    - in: {value: {field: ID}, values: [{value: {type: Int64, text: "1"}}, {value: {type: Int64, text: "2"}}]}
    - between: [{field: D}, {value: {type: Date, text: "2024-01-01"}}, {value: {type: Date, text: "2024-12-31"}}]
    - ne: [{field: X}, {value: {type: Int32, is_null: true}}]`,
			want: `SELECT "ID" FROM "T" WHERE "ID" IN (1,2) AND "D" BETWEEN '2024-01-01' AND '2024-12-31' AND "X" <> NULL`,
		},
		{
			name: "sub-queries",
			yaml: `
columns:
  - field: C.NAME
  - query:
      columns: [{agg: {func: sum, field: TOTAL}}]
      from: [{table: ORDERS}]
      where: {eq: [{field: ORDERS.CUSTOMER}, {field: C.ID}]}
    alias: spent
from:
  - table: CUSTOMER
    alias: C
where:
  and:
    - exists:
        columns: [{value: {type: Int32, text: "1"}}]
        from: [{table: ORDERS}]
    - in:
        value: {field: C.ID}
        query:
          columns: [{field: CUSTOMER}]
          from: [{table: VIP}]`,
			want: `SELECT "C"."NAME",(SELECT SUM("TOTAL") FROM "ORDERS" WHERE "ORDERS"."CUSTOMER" = "C"."ID") AS "spent" FROM "CUSTOMER" "C" ` +
				`WHERE EXISTS (SELECT 1 FROM "ORDERS") AND "C"."ID" IN (SELECT "CUSTOMER" FROM "VIP")`,
		},
		{
			name: "sub-query source and union",
			yaml: `
distinct: true
columns: [{field: Q.ID}]
from:
  - alias: Q
    query:
      columns: [{field: ID}]
      from: [{table: A}]
joins:
  - type: left
    table: B
    condition: {eq: [{field: B.ID}, {field: Q.ID}]}
combine:
  type: union_all
  query:
    columns: [{field: ID}]
    from: [{table: C}]`,
			want: `SELECT DISTINCT "Q"."ID" FROM (SELECT "ID" FROM "A") AS "Q" LEFT JOIN "B" ON "B"."ID" = "Q"."ID" UNION ALL SELECT "ID" FROM "C"`,
		},
		{
			name: "having",
			yaml: `
columns: [{field: CUSTOMER}, {agg: {func: max, field: TOTAL}}]
from: [{table: ORDERS}]
group_by: [CUSTOMER]
having: {ge: [{agg: {func: count, field: "*"}}, {value: {type: Int64, text: "3"}}]}`,
			want: `SELECT "CUSTOMER",MAX("TOTAL") FROM "ORDERS" GROUP BY "CUSTOMER" HAVING COUNT(*) >= 3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte("queries:\n  - name: q\n" + indent(tt.yaml)))
			require.NoError(t, err)
			q, err := f.Queries[0].Build()
			require.NoError(t, err)
			if got := q.String(); got != tt.want {
				t.Errorf("Build().String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		is       func(error) bool
		contains string
	}{
		{
			name:     "operand with two keys",
			yaml:     "columns: [{field: A, bind: b}]\nfrom: [{table: T}]",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: `query "q": querydef: invalid definition: columns[0]: operand sets more than one of field, bind`,
		},
		{
			name:     "empty condition",
			yaml:     "columns: [{field: A}]\nfrom: [{table: T}]\nwhere: {}",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: "where: empty condition",
		},
		{
			name:     "comparison arity",
			yaml:     "columns: [{field: A}]\nfrom: [{table: T}]\nwhere: {eq: [{field: A}]}",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: "where.eq: needs 2 operands, got 1",
		},
		{
			name:     "invalid identifier",
			yaml:     "columns: [{field: 'A\"B'}]\nfrom: [{table: T}]",
			is:       voxi.IsInvalidIdentifierErr,
			contains: "columns[0].field",
		},
		{
			name:     "invalid literal",
			yaml:     "columns: [{value: {type: Int32, text: abc}}]\nfrom: [{table: T}]",
			is:       voxi.IsConversionErr,
			contains: "columns[0].value",
		},
		{
			name: "missing from",
			yaml: "columns: [{field: A}]",
			is:   voxi.IsInvalidQueryBuilderConfigurationErr,
		},
		{
			name:     "unknown aggregate",
			yaml:     "columns: [{agg: {func: median, field: A}}]\nfrom: [{table: T}]",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: `unknown aggregate "median"`,
		},
		{
			name:     "sub-query source without alias",
			yaml:     "columns: [{field: A}]\nfrom: [{query: {columns: [{field: A}], from: [{table: T}]}}]",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: "from[0]: sub-query source needs an alias",
		},
		{
			name:     "join without on",
			yaml:     "columns: [{field: A}]\nfrom: [{table: T}]\njoins: [{table: U}]",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: "joins[0]: missing join condition",
		},
		{
			name:     "nested error keeps its path",
			yaml:     "columns: [{field: A}]\nfrom: [{table: T}]\nwhere: {exists: {columns: [{field: A}], from: [{table: T}], where: {in: {value: {field: A}}}}}",
			is:       func(err error) bool { return errors.Is(err, ErrInvalidDefinition) },
			contains: "where.exists.where.in.values: needs at least 1 operand(s), got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte("queries:\n  - name: q\n" + indent(tt.yaml)))
			require.NoError(t, err)
			_, err = f.Queries[0].Build()
			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error kind: %v", err)
			if tt.contains != "" {
				assert.Contains(t, err.Error(), tt.contains)
			}
		})
	}
}

func TestFileFind(t *testing.T) {
	f, err := Parse([]byte(ordersYAML))
	require.NoError(t, err)

	_, err = f.Build("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryNotFound)
	assert.EqualError(t, err, `querydef: query not found: "missing" (available: active_orders)`)
}

// indent nests a query body under a "- name:" list item.
func indent(body string) string {
	var sb strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if line != "" {
			sb.WriteString("    " + line + "\n")
		}
	}
	return sb.String()
}
