package resolvers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vaniusrb/voxi-core/pkg/values"
)

// PlaceholderStyle selects the positional parameter syntax.
type PlaceholderStyle int

const (
	// Dollar numbers parameters as $1, $2 (PostgreSQL, pgx, lib/pq).
	Dollar PlaceholderStyle = iota
	// Question uses ? for every parameter (SQLite, MySQL).
	Question
)

func (s PlaceholderStyle) String() string {
	switch s {
	case Dollar:
		return "dollar"
	case Question:
		return "question"
	default:
		return fmt.Sprintf("PlaceholderStyle(%d)", int(s))
	}
}

// ParsePlaceholderStyle maps a style name to its value.
func ParsePlaceholderStyle(name string) (PlaceholderStyle, error) {
	switch strings.ToLower(name) {
	case "dollar", "$":
		return Dollar, nil
	case "question", "?":
		return Question, nil
	default:
		return 0, fmt.Errorf("unknown placeholder style %q (want dollar or question)", name)
	}
}

// PlaceholderResolver replaces literals with positional parameters and keeps
// their driver values in order. It is not safe for concurrent use.
type PlaceholderResolver struct {
	style PlaceholderStyle
	args  []any
	binds Binds
}

// NewPlaceholderResolver creates a resolver for style.
func NewPlaceholderResolver(style PlaceholderStyle) *PlaceholderResolver {
	return &PlaceholderResolver{style: style}
}

// WithBinds sets the binds used when a query does not define a name itself.
func (r *PlaceholderResolver) WithBinds(binds Binds) *PlaceholderResolver {
	r.binds = binds
	return r
}

// AddArg records v and returns its placeholder.
func (r *PlaceholderResolver) AddArg(v values.NullableValue) string {
	arg, err := v.Value()
	if err != nil {
		// driver conversion of voxi values never fails; keep the text form
		arg = v.String()
	}
	r.args = append(r.args, arg)
	if r.style == Question {
		return "?"
	}
	return "$" + strconv.Itoa(len(r.args))
}

// ResolveBind looks name up in the external binds.
func (r *PlaceholderResolver) ResolveBind(name values.BindName) (values.NullableValue, error) {
	return lookupBind(r.binds, name)
}

// Args returns the recorded arguments in placeholder order.
func (r *PlaceholderResolver) Args() []any {
	return r.args
}
