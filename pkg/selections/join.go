package selections

import (
	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

// JoinType selects the JOIN keyword.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinFull
)

// String returns the SQL join keyword.
func (j JoinType) String() string {
	switch j {
	case JoinLeft:
		return "LEFT JOIN"
	case JoinRight:
		return "RIGHT JOIN"
	case JoinFull:
		return "FULL JOIN"
	default:
		return "INNER JOIN"
	}
}

// Join renders `TYPE JOIN source ON condition`.
type Join struct {
	joinType JoinType
	from     FromSelect
	on       LogicalExprWhere
}

// NewJoin joins source (see FromOf) on cond.
func NewJoin(t JoinType, source any, on LogicalExprWhere) Join {
	return Join{joinType: t, from: FromOf(source), on: on}
}

// InnerJoin renders `INNER JOIN source ON cond`.
func InnerJoin(source any, on LogicalExprWhere) Join { return NewJoin(JoinInner, source, on) }

// LeftJoin renders `LEFT JOIN source ON cond`.
func LeftJoin(source any, on LogicalExprWhere) Join { return NewJoin(JoinLeft, source, on) }

// RightJoin renders `RIGHT JOIN source ON cond`.
func RightJoin(source any, on LogicalExprWhere) Join { return NewJoin(JoinRight, source, on) }

// FullJoin renders `FULL JOIN source ON cond`.
func FullJoin(source any, on LogicalExprWhere) Join { return NewJoin(JoinFull, source, on) }

// Type returns the join type.
func (j Join) Type() JoinType { return j.joinType }

// From returns the joined source.
func (j Join) From() FromSelect { return j.from }

// On returns the join condition.
func (j Join) On() LogicalExprWhere { return j.on }

// ToSQL renders `TYPE JOIN source ON condition`.
func (j Join) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if j.on == nil {
		return "", &voxi.ConfigurationError{Reason: "join has no ON condition"}
	}
	src, err := renderBinary(r, j.from, " ON ", j.on)
	if err != nil {
		return "", err
	}
	return j.joinType.String() + " " + src, nil
}
