// Package resolvers decides how literal values and named binds end up in the
// rendered SQL text.
//
// Every expression node renders itself through an ArgsResolver. The resolver
// either inlines a literal (StringResolver) or records it as a positional
// statement argument and returns a placeholder (PlaceholderResolver). Named
// binds are looked up through ResolveBind; a Select wraps the resolver in a
// BindsDecorator so its query-local binds shadow the outer ones.
package resolvers

import (
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// ArgsResolver receives the literal arguments of a render.
type ArgsResolver interface {
	// AddArg registers v and returns the text that stands for it in the SQL.
	AddArg(v values.NullableValue) string

	// ResolveBind returns the value registered for name, or a
	// *voxi.BindNameNotFoundError.
	ResolveBind(name values.BindName) (values.NullableValue, error)
}

// Renderer is implemented by every node that can be rendered to SQL.
type Renderer interface {
	ToSQL(r ArgsResolver) (string, error)
}

// Binds maps bind names to their values.
type Binds map[values.BindName]values.NullableValue

// ArgsToStr renders r with every literal inlined.
func ArgsToStr(r Renderer) (string, error) {
	return r.ToSQL(NewStringResolver())
}

// ArgsToParams renders r with placeholders of the given style and returns the
// statement arguments in placeholder order. binds resolves bind names the
// query does not define itself and may be nil.
func ArgsToParams(r Renderer, style PlaceholderStyle, binds Binds) (string, []any, error) {
	pr := NewPlaceholderResolver(style).WithBinds(binds)
	sql, err := r.ToSQL(pr)
	if err != nil {
		return "", nil, err
	}
	return sql, pr.Args(), nil
}
