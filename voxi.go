// Package voxi builds relational queries as typed expression trees and renders
// them into SQL text.
//
// # Module Structure
//
//   - pkg/values: typed literal values (Value, NullableValue) and the
//     FieldName/BindName identifiers.
//   - pkg/resolvers: the ArgsResolver contract that decides how literals and
//     binds end up in the SQL text (inline or placeholders).
//   - pkg/selections: the expression AST, the Select query model and the
//     builders that validate and freeze a Select.
//   - pkg/querydef: YAML query definitions decoded into Select values.
//
// This root package holds the error kinds shared by all of them.
//
// # Basic Usage
//
//	query, err := selections.NewQueryBuilder().
//	    Field("ID").
//	    From("TABLE").
//	    Build()
//	sql, err := resolvers.ArgsToStr(query)
//	// SELECT "ID" FROM "TABLE"
//
// # Parameterized Rendering
//
//	sql, args, err := resolvers.ArgsToParams(query, resolvers.Dollar, nil)
//	rows, err := db.QueryContext(ctx, sql, args...)
//
// # Grouping
//
// Rendering never infers operator precedence. A OR B AND C renders exactly in
// the order the tree was built; wrap a sub-tree with Exp (logical) or
// ArithExp (arithmetic) to get parentheses.
package voxi
