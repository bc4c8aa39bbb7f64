package querydef

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaniusrb/voxi-core/pkg/values"
)

func TestParse(t *testing.T) {
	data := `
queries:
  - name: by_customer
    description: orders of some customers
    columns:
      - field: NAME
        alias: customer
    from:
      - table: CUSTOMER
    where:
      in:
        value: {field: ID}
        values:
          - value: {type: Int64, text: "1"}
          - bind: other
    order_by:
      - field: NAME
    binds:
      - {name: other, type: Int64, is_null: true}
`
	got, err := Parse([]byte(data))
	require.NoError(t, err)

	want := &File{Queries: []*QueryDef{{
		Name:        "by_customer",
		Description: "orders of some customers",
		Columns:     []ColumnDef{{OperandDef: OperandDef{Field: "NAME"}, Alias: "customer"}},
		From:        []FromDef{{Table: "CUSTOMER"}},
		Where: &ConditionDef{In: &InDef{
			Value: OperandDef{Field: "ID"},
			Values: []OperandDef{
				{Value: &ValueDef{Type: values.ValueTypeInt64, Text: "1"}},
				{Bind: "other"},
			},
		}},
		OrderBy: []OrderDef{{Field: "NAME"}},
		Binds:   []BindDef{{Name: "other", Type: values.ValueTypeInt64, Null: true}},
	}}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}

	q, err := got.Build("by_customer")
	require.NoError(t, err)
	assert.Equal(t, `SELECT "NAME" AS "customer" FROM "CUSTOMER" WHERE "ID" IN (1,NULL) ORDER BY "NAME" ASC`, q.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		contains string
	}{
		{"unknown key", "queries:\n  - name: a\n    colums: []\n", "colums"},
		{"missing name", "queries:\n  - columns: []\n", "queries[0]: missing name"},
		{"duplicate name", "queries:\n  - name: a\n  - name: a\n", `duplicate query name "a"`},
		{"unknown value type", "queries:\n  - name: a\n    binds: [{name: b, type: Money}]\n", "Money"},
		{"not yaml", "queries: [", "parsing definitions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("queries/nested", 0o755))
	files := map[string]string{
		"queries/b.yml":         "queries:\n  - name: second\n    columns: [{field: ID}]\n    from: [{table: B}]\n",
		"queries/a.yaml":        "queries:\n  - name: first\n    columns: [{field: ID}]\n    from: [{table: A}]\n",
		"queries/notes.txt":     "not a definition",
		"queries/nested/c.yaml": "queries:\n  - name: nested\n",
	}
	for path, body := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(body), 0o644))
	}

	paths, err := DefinitionFiles(fs, "queries")
	require.NoError(t, err)
	assert.Equal(t, []string{"queries/a.yaml", "queries/b.yml"}, paths)

	f, err := LoadDir(fs, "queries")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, f.Names())

	q, err := f.Build("second")
	require.NoError(t, err)
	assert.Equal(t, `SELECT "ID" FROM "B"`, q.String())
}

func TestLoadDirDuplicateAcrossFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	body := []byte("queries:\n  - name: same\n")
	require.NoError(t, afero.WriteFile(fs, "q/one.yaml", body, 0o644))
	require.NoError(t, afero.WriteFile(fs, "q/two.yaml", body, 0o644))

	_, err := LoadDir(fs, "q")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDefinition))
	assert.Contains(t, err.Error(), `duplicate query name "same"`)
}

func TestLoadFileErrors(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := LoadFile(fs, "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading missing.yaml")

	require.NoError(t, afero.WriteFile(fs, "bad.yaml", []byte("queries:\n  - name: ''\n"), 0o644))
	_, err = LoadFile(fs, "bad.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml: querydef: invalid definition: queries[0]: missing name")

	_, err = LoadDir(fs, "nowhere")
	require.Error(t, err)
}
