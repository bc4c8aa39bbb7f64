package selections

import (
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// AggregateType names an aggregate function.
type AggregateType int

const (
	AggMin AggregateType = iota
	AggMax
	AggAvg
	AggSum
	AggCount
)

// String returns the SQL function name.
func (a AggregateType) String() string {
	switch a {
	case AggMin:
		return "MIN"
	case AggMax:
		return "MAX"
	case AggAvg:
		return "AVG"
	case AggSum:
		return "SUM"
	default:
		return "COUNT"
	}
}

// AggFunction applies an aggregate to a field.
type AggFunction struct {
	agg   AggregateType
	field TableField
}

// Aggregate returns agg applied to field.
func Aggregate(agg AggregateType, field TableField) AggFunction {
	return AggFunction{agg: agg, field: field}
}

// Min renders `MIN(field)`.
func Min(field TableField) AggFunction { return Aggregate(AggMin, field) }

// Max renders `MAX(field)`.
func Max(field TableField) AggFunction { return Aggregate(AggMax, field) }

// Avg renders `AVG(field)`.
func Avg(field TableField) AggFunction { return Aggregate(AggAvg, field) }

// Sum renders `SUM(field)`.
func Sum(field TableField) AggFunction { return Aggregate(AggSum, field) }

// Count renders `COUNT(field)`. Count(Field("*")) renders `COUNT(*)`.
func Count(field TableField) AggFunction { return Aggregate(AggCount, field) }

// Type returns the aggregate function.
func (a AggFunction) Type() AggregateType { return a.agg }

// Field returns the aggregated field.
func (a AggFunction) Field() TableField { return a.field }

// ToSQL renders `AGG(field)`.
func (a AggFunction) ToSQL(r resolvers.ArgsResolver) (string, error) {
	f, err := a.field.ToSQL(r)
	if err != nil {
		return "", err
	}
	return a.agg.String() + "(" + f + ")", nil
}

func (a AggFunction) collectTables(set tableSet) { a.field.collectTables(set) }
func (AggFunction) isValueWhere()                {}
