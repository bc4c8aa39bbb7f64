package resolvers

import (
	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// StringResolver inlines every argument as a SQL literal.
type StringResolver struct {
	binds Binds
}

// NewStringResolver creates a resolver without external binds.
func NewStringResolver() *StringResolver {
	return &StringResolver{}
}

// WithBinds sets the binds used when a query does not define a name itself.
func (r *StringResolver) WithBinds(binds Binds) *StringResolver {
	r.binds = binds
	return r
}

// AddArg returns the literal text of v.
func (r *StringResolver) AddArg(v values.NullableValue) string {
	return v.SQL()
}

// ResolveBind looks name up in the external binds.
func (r *StringResolver) ResolveBind(name values.BindName) (values.NullableValue, error) {
	return lookupBind(r.binds, name)
}

func lookupBind(binds Binds, name values.BindName) (values.NullableValue, error) {
	if v, ok := binds[name]; ok {
		return v, nil
	}
	return values.NullableValue{}, &voxi.BindNameNotFoundError{Name: string(name)}
}
