package selections

import (
	"strings"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
)

type whenCondition struct {
	cond LogicalExprWhere
	then ValueWhere
}

// CaseCondition is a searched CASE: `CASE WHEN cond THEN v ... [ELSE e] END`.
type CaseCondition struct {
	whens []whenCondition
	els   ValueWhere
}

// CaseConditionBuilder collects the branches of a searched CASE.
type CaseConditionBuilder struct {
	c CaseCondition
}

// NewCaseCondition starts a searched CASE.
func NewCaseCondition() *CaseConditionBuilder {
	return &CaseConditionBuilder{}
}

// When adds a `WHEN cond THEN then` branch.
func (b *CaseConditionBuilder) When(cond LogicalExprWhere, then any) *CaseConditionBuilder {
	b.c.whens = append(b.c.whens, whenCondition{cond: cond, then: ValueOf(then)})
	return b
}

// Else sets the ELSE value.
func (b *CaseConditionBuilder) Else(v any) *CaseConditionBuilder {
	b.c.els = ValueOf(v)
	return b
}

// Build returns the CASE expression.
func (b *CaseConditionBuilder) Build() CaseCondition {
	c := b.c
	c.whens = append([]whenCondition(nil), b.c.whens...)
	return c
}

// ToSQL renders the searched CASE. It fails when no WHEN branch was added.
func (c CaseCondition) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if len(c.whens) == 0 {
		return "", &voxi.ConfigurationError{Reason: "case expression has no WHEN branch"}
	}
	var sb strings.Builder
	sb.WriteString("CASE ")
	for i, w := range c.whens {
		cond, err := w.cond.ToSQL(r)
		if err != nil {
			return "", err
		}
		then, err := w.then.ToSQL(r)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("WHEN " + cond + " THEN " + then)
	}
	if err := writeElse(&sb, r, c.els); err != nil {
		return "", err
	}
	sb.WriteString(" END")
	return sb.String(), nil
}

func (c CaseCondition) collectTables(set tableSet) {
	for _, w := range c.whens {
		w.cond.collectTables(set)
		w.then.collectTables(set)
	}
	if c.els != nil {
		c.els.collectTables(set)
	}
}

func (CaseCondition) isValueWhere() {}

type whenValue struct {
	when, then ValueWhere
}

// CaseValue is a simple CASE: `CASE input WHEN w THEN v ... [ELSE e] END`.
type CaseValue struct {
	input ValueWhere
	whens []whenValue
	els   ValueWhere
}

// CaseValueBuilder collects the branches of a simple CASE.
type CaseValueBuilder struct {
	c CaseValue
}

// NewCaseValue starts a simple CASE over input.
func NewCaseValue(input any) *CaseValueBuilder {
	return &CaseValueBuilder{c: CaseValue{input: ValueOf(input)}}
}

// When adds a `WHEN when THEN then` branch.
func (b *CaseValueBuilder) When(when, then any) *CaseValueBuilder {
	b.c.whens = append(b.c.whens, whenValue{when: ValueOf(when), then: ValueOf(then)})
	return b
}

// Else sets the ELSE value.
func (b *CaseValueBuilder) Else(v any) *CaseValueBuilder {
	b.c.els = ValueOf(v)
	return b
}

// Build returns the CASE expression.
func (b *CaseValueBuilder) Build() CaseValue {
	c := b.c
	c.whens = append([]whenValue(nil), b.c.whens...)
	return c
}

// ToSQL renders the simple CASE over the input value. It fails when no WHEN
// branch was added.
func (c CaseValue) ToSQL(r resolvers.ArgsResolver) (string, error) {
	if len(c.whens) == 0 {
		return "", &voxi.ConfigurationError{Reason: "case expression has no WHEN branch"}
	}
	input, err := c.input.ToSQL(r)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("CASE " + input + " ")
	for i, w := range c.whens {
		s, err := renderBinary(r, w.when, " THEN ", w.then)
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("WHEN " + s)
	}
	if err := writeElse(&sb, r, c.els); err != nil {
		return "", err
	}
	sb.WriteString(" END")
	return sb.String(), nil
}

func (c CaseValue) collectTables(set tableSet) {
	c.input.collectTables(set)
	for _, w := range c.whens {
		w.when.collectTables(set)
		w.then.collectTables(set)
	}
	if c.els != nil {
		c.els.collectTables(set)
	}
}

func (CaseValue) isValueWhere() {}

func writeElse(sb *strings.Builder, r resolvers.ArgsResolver, els ValueWhere) error {
	if els == nil {
		return nil
	}
	s, err := els.ToSQL(r)
	if err != nil {
		return err
	}
	sb.WriteString(" ELSE " + s)
	return nil
}
