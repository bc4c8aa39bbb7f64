// Package selections models SELECT queries as typed expression trees and
// renders them to SQL text.
//
// # Overview
//
// Queries are assembled from small nodes that each know how to render
// themselves through a resolvers.ArgsResolver. The resolver decides whether
// literals are inlined or turned into positional parameters, so the same tree
// can be printed for humans or handed to a database driver.
//
// # Node Families
//
// Every node belongs to one closed family, modelled as an interface with an
// unexported marker method:
//
//   - ValueWhere: scalar operands (fields, literals, binds, sub-queries,
//     aggregates, CASE, string functions, arithmetic wrapped as a value)
//   - ConditionWhere: predicates (comparisons, IS NULL, IN, BETWEEN, EXISTS)
//   - LogicalExprWhere: NOT, parentheses, AND, OR over conditions
//   - ArithmeticExprWhere: +, -, *, / and parentheses over values
//
// # Expression Helpers
//
//	Field("ORD.TOTAL")                        // "ORD"."TOTAL"
//	Eq("TEXT_1", "TEXT_2")                    // 'TEXT_1' = 'TEXT_2'
//	Field("ORD.STATUS").Include(List(1, 2))   // "ORD"."STATUS" IN (1,2)
//	Exp(Or(a, b)).And(c)                      // (a OR b) AND c
//	Add(1000, Field("P.DISCOUNT"))            // 1000 + "P"."DISCOUNT"
//
// Strings passed where a value is expected are literals. Use Field for
// column references.
//
// # Building Queries
//
// QueryBuilder validates and freezes a Select:
//
//	query, err := NewQueryBuilder().
//	    Field("MAS.ID", "DET.NAME").
//	    From("MASTER MAS").
//	    Join(InnerJoin("DETAIL DET", Eq(Field("DET.MASTER"), Field("MAS.ID")))).
//	    Where(Field("MAS.ACTIVE").Equal(true)).
//	    OrderBy("MAS.ID").
//	    Build()
//
// Rendering never reorders or groups operands on its own: the tree is
// printed exactly as built.
package selections
