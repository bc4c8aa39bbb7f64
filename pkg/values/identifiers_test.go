package values_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	voxi "github.com/vaniusrb/voxi-core"
	"github.com/vaniusrb/voxi-core/pkg/values"
)

func TestFieldName(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantSQL string
		wantErr bool
	}{
		{"plain", "ID", `"ID"`, false},
		{"lower case kept", "price", `"price"`, false},
		{"star unquoted", "*", "*", false},
		{"space kept", "FIRST NAME", `"FIRST NAME"`, false},
		{"double quote rejected", `A"B`, "", true},
		{"nul rejected", "A\x00B", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := values.NewFieldName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, voxi.IsInvalidIdentifierErr(err))
				assert.True(t, voxi.IsConversionErr(err))
				return
			}
			require.NoError(t, err)
			if got := f.SQL(); got != tt.wantSQL {
				t.Errorf("FieldName.SQL() = %q, want %q", got, tt.wantSQL)
			}
			assert.Equal(t, tt.in, f.String())
		})
	}
}

func TestMustFieldNamePanics(t *testing.T) {
	assert.Panics(t, func() { values.MustFieldName(`"`) })
	assert.True(t, values.AllFields.IsAll())
}

func TestFieldNameType(t *testing.T) {
	ft, err := values.NewFieldNameType("TOTAL", values.ValueTypeDecimal)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL", ft.Name.String())
	assert.Equal(t, values.ValueTypeDecimal, ft.Type)
}
