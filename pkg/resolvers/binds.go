package resolvers

import (
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// BindsDecorator resolves binds from a query-local map before falling back to
// the wrapped resolver. Arguments always go to the wrapped resolver, so
// placeholder numbering stays global across nested queries.
type BindsDecorator struct {
	binds Binds
	next  ArgsResolver
}

// NewBindsDecorator wraps next with the local binds.
func NewBindsDecorator(next ArgsResolver, binds Binds) *BindsDecorator {
	return &BindsDecorator{binds: binds, next: next}
}

// AddArg delegates to the wrapped resolver.
func (d *BindsDecorator) AddArg(v values.NullableValue) string {
	return d.next.AddArg(v)
}

// ResolveBind checks the local binds first.
func (d *BindsDecorator) ResolveBind(name values.BindName) (values.NullableValue, error) {
	if v, ok := d.binds[name]; ok {
		return v, nil
	}
	return d.next.ResolveBind(name)
}
