package ohada_test

import (
	"testing"

	"github.com/plancompta/ohada_chart_app/internal/ohada"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		want    string
		wantErr bool
	}{
		{name: "short code padded", code: "21", want: "21000000"},
		{name: "six digits padded", code: "401000", want: "40100000"},
		{name: "full length untouched", code: "21311234", want: "21311234"},
		{name: "surrounding spaces trimmed", code: " 52 ", want: "52000000"},
		{name: "empty rejected", code: "", wantErr: true},
		{name: "blank rejected", code: "   ", wantErr: true},
		{name: "too long rejected", code: "213112345", wantErr: true},
		{name: "non digit rejected", code: "21A1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ohada.NormalizeCode(tt.code)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHierarchy(t *testing.T) {
	tests := []struct {
		code       string
		level      int
		parentCode string
	}{
		{code: "21000000", level: 1, parentCode: ""},
		{code: "21310000", level: 2, parentCode: "21000000"},
		{code: "21311200", level: 3, parentCode: "21310000"},
		{code: "21311234", level: 4, parentCode: "21311200"},
		// Short codes resolve on their padded form.
		{code: "21", level: 1, parentCode: ""},
		{code: "2131", level: 2, parentCode: "21000000"},
		{code: "401000", level: 2, parentCode: "40000000"},
		{code: "40100001", level: 4, parentCode: "40100000"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			h, err := ohada.ResolveHierarchy(tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.level, h.Level)
			assert.Equal(t, tt.parentCode, h.ParentCode)
		})
	}
}

func TestResolveHierarchyInvalidCode(t *testing.T) {
	_, err := ohada.ResolveHierarchy("ABC")
	require.Error(t, err)
	_, err = ohada.ResolveHierarchy("")
	require.Error(t, err)
}

// The resolver is pure: the same code always yields the same result.
func TestResolveHierarchyDeterministic(t *testing.T) {
	first, err := ohada.ResolveHierarchy("21311234")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ohada.ResolveHierarchy("21311234")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
