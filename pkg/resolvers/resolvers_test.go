package resolvers_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/resolvers"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

// eqNode renders `arg = arg` for a literal and a bind, enough to drive a
// resolver without the selections package.
type eqNode struct {
	literal values.Value
	bind    values.BindName
}

func (n eqNode) ToSQL(r resolvers.ArgsResolver) (string, error) {
	left := r.AddArg(n.literal.Nullable())
	v, err := r.ResolveBind(n.bind)
	if err != nil {
		return "", err
	}
	return left + " = " + r.AddArg(v), nil
}

func TestArgsToStr(t *testing.T) {
	node := eqNode{literal: values.String("TEXT_1"), bind: "b"}

	_, err := resolvers.ArgsToStr(node)
	require.Error(t, err)
	assert.True(t, voxi.IsBindNameNotFoundErr(err))
	assert.EqualError(t, err, "voxi: bind name not found: `b`")

	r := resolvers.NewStringResolver().WithBinds(resolvers.Binds{
		"b": values.Nullable(values.String("TEXT_2")),
	})
	got, err := node.ToSQL(r)
	require.NoError(t, err)
	assert.Equal(t, "'TEXT_1' = 'TEXT_2'", got)
}

func TestArgsToParams(t *testing.T) {
	node := eqNode{literal: values.Int32(1), bind: "total"}
	binds := resolvers.Binds{"total": values.Null(values.ValueTypeDecimal)}

	tests := []struct {
		name     string
		style    resolvers.PlaceholderStyle
		wantSQL  string
		wantArgs []any
	}{
		{"dollar", resolvers.Dollar, "$1 = $2", []any{int64(1), nil}},
		{"question", resolvers.Question, "? = ?", []any{int64(1), nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := resolvers.ArgsToParams(node, tt.style, binds)
			require.NoError(t, err)
			if sql != tt.wantSQL {
				t.Errorf("ArgsToParams() sql = %q, want %q", sql, tt.wantSQL)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}

	t.Run("missing bind", func(t *testing.T) {
		_, args, err := resolvers.ArgsToParams(node, resolvers.Dollar, nil)
		assert.True(t, voxi.IsBindNameNotFoundErr(err))
		assert.Nil(t, args)
	})
}

func TestBindsDecorator(t *testing.T) {
	outer := resolvers.NewPlaceholderResolver(resolvers.Dollar).WithBinds(resolvers.Binds{
		"a": values.Nullable(values.Int32(1)),
		"b": values.Nullable(values.Int32(2)),
	})
	d := resolvers.NewBindsDecorator(outer, resolvers.Binds{
		"a": values.Nullable(values.Int32(10)),
	})

	a, err := d.ResolveBind("a")
	require.NoError(t, err)
	assert.Equal(t, "10", a.SQL(), "local bind shadows the outer one")

	b, err := d.ResolveBind("b")
	require.NoError(t, err)
	assert.Equal(t, "2", b.SQL(), "misses fall through to the wrapped resolver")

	_, err = d.ResolveBind("c")
	assert.True(t, voxi.IsBindNameNotFoundErr(err))

	assert.Equal(t, "$1", d.AddArg(a))
	assert.Equal(t, "$2", outer.AddArg(b))
	assert.Equal(t, []any{int64(10), int64(2)}, outer.Args())
}

func TestParsePlaceholderStyle(t *testing.T) {
	for _, name := range []string{"dollar", "DOLLAR", "$"} {
		style, err := resolvers.ParsePlaceholderStyle(name)
		require.NoError(t, err)
		assert.Equal(t, resolvers.Dollar, style)
	}
	style, err := resolvers.ParsePlaceholderStyle("question")
	require.NoError(t, err)
	assert.Equal(t, "question", style.String())

	_, err = resolvers.ParsePlaceholderStyle("colon")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "colon"))
}
