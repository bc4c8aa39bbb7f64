// Package querydef reads named query definitions from YAML and builds them
// into selections.Select values.
//
// A definition file holds a list of queries:
//
//	queries:
//	  - name: active_orders
//	    columns:
//	      - field: ORD.ID
//	      - agg: {func: count, field: "*"}
//	        alias: total
//	    from:
//	      - table: ORDERS ORD
//	    where:
//	      gt: [{field: ORD.TOTAL}, {bind: min_total}]
//	    binds:
//	      - {name: min_total, type: Decimal, text: "10.50"}
//
// Every node is a small struct where exactly one key is set. Operands and
// conditions nest, so sub-queries (scalar, IN lists, EXISTS and FROM
// sources) are written inline as full query definitions.
package querydef

import (
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// File is the top-level document of a definition file.
type File struct {
	Queries []*QueryDef `json:"queries"`
}

// QueryDef describes one query.
type QueryDef struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Distinct    bool          `json:"distinct,omitempty"`
	Columns     []ColumnDef   `json:"columns"`
	From        []FromDef     `json:"from"`
	Joins       []JoinDef     `json:"joins,omitempty"`
	Where       *ConditionDef `json:"where,omitempty"`
	GroupBy     []string      `json:"group_by,omitempty"`
	Having      *ConditionDef `json:"having,omitempty"`
	OrderBy     []OrderDef    `json:"order_by,omitempty"`
	Limit       *LimitDef     `json:"limit,omitempty"`
	Combine     *CombineDef   `json:"combine,omitempty"`
	Binds       []BindDef     `json:"binds,omitempty"`
}

// ColumnDef is an output column: an operand with an optional alias.
type ColumnDef struct {
	OperandDef
	Alias string `json:"alias,omitempty"`
}

// OperandDef is a value expression. Exactly one field must be set.
type OperandDef struct {
	Field  string       `json:"field,omitempty"`
	Value  *ValueDef    `json:"value,omitempty"`
	Bind   string       `json:"bind,omitempty"`
	Query  *QueryDef    `json:"query,omitempty"`
	Upper  *OperandDef  `json:"upper,omitempty"`
	Lower  *OperandDef  `json:"lower,omitempty"`
	Concat []OperandDef `json:"concat,omitempty"`
	Agg    *AggDef      `json:"agg,omitempty"`
	Add    []OperandDef `json:"add,omitempty"`
	Sub    []OperandDef `json:"sub,omitempty"`
	Mul    []OperandDef `json:"mul,omitempty"`
	Div    []OperandDef `json:"div,omitempty"`
	// Group wraps an arithmetic operand in parentheses.
	Group *OperandDef `json:"group,omitempty"`
}

// ValueDef is a typed literal given as text, parsed with values.Parse.
type ValueDef struct {
	Type values.ValueType `json:"type"`
	Text string           `json:"text,omitempty"`
	Null bool             `json:"is_null,omitempty"`
}

// AggDef is an aggregate call over one field.
type AggDef struct {
	Func  string `json:"func"`
	Field string `json:"field"`
}

// FromDef is a FROM source: a table ("NAME" or "NAME ALIAS") or an inline
// sub-query with an alias.
type FromDef struct {
	Table string    `json:"table,omitempty"`
	Query *QueryDef `json:"query,omitempty"`
	Alias string    `json:"alias,omitempty"`
}

// JoinDef is a join. Type is one of inner, left, right or full and defaults
// to inner. The ON expression is read from the "condition" key, since YAML
// decodes a bare on as a boolean.
type JoinDef struct {
	FromDef
	Type string        `json:"type,omitempty"`
	On   *ConditionDef `json:"condition"`
}

// ConditionDef is a logical expression. Exactly one field must be set.
type ConditionDef struct {
	And []ConditionDef `json:"and,omitempty"`
	Or  []ConditionDef `json:"or,omitempty"`
	Not *ConditionDef  `json:"not,omitempty"`
	Exp *ConditionDef  `json:"exp,omitempty"`

	Eq   []OperandDef `json:"eq,omitempty"`
	Ne   []OperandDef `json:"ne,omitempty"`
	Gt   []OperandDef `json:"gt,omitempty"`
	Lt   []OperandDef `json:"lt,omitempty"`
	Ge   []OperandDef `json:"ge,omitempty"`
	Le   []OperandDef `json:"le,omitempty"`
	Like []OperandDef `json:"like,omitempty"`

	IsNull  *OperandDef  `json:"is_null,omitempty"`
	In      *InDef       `json:"in,omitempty"`
	Between []OperandDef `json:"between,omitempty"`
	Exists  *QueryDef    `json:"exists,omitempty"`
}

// InDef is `value IN (...)` over either a list of operands or a one-column
// sub-query.
type InDef struct {
	Value  OperandDef   `json:"value"`
	Values []OperandDef `json:"values,omitempty"`
	Query  *QueryDef    `json:"query,omitempty"`
}

// OrderDef is one ORDER BY item.
type OrderDef struct {
	Field string `json:"field"`
	Desc  bool   `json:"desc,omitempty"`
}

// LimitDef is the paging clause. When Page is set it overrides Offset.
type LimitDef struct {
	Limit  uint64 `json:"limit"`
	Offset uint64 `json:"offset,omitempty"`
	Page   uint64 `json:"page,omitempty"`
}

// CombineDef appends a set operation. Type is one of union, union_all,
// intersect or except.
type CombineDef struct {
	Type  string    `json:"type"`
	Query *QueryDef `json:"query"`
}

// BindDef is a query-local bind value.
type BindDef struct {
	Name string           `json:"name"`
	Type values.ValueType `json:"type"`
	Text string           `json:"text,omitempty"`
	Null bool             `json:"is_null,omitempty"`
}

// Find returns the query called name.
func (f *File) Find(name string) (*QueryDef, error) {
	for _, q := range f.Queries {
		if q.Name == name {
			return q, nil
		}
	}
	return nil, &NotFoundError{Name: name, Available: f.Names()}
}

// Names lists the query names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Queries))
	for i, q := range f.Queries {
		names[i] = q.Name
	}
	return names
}
