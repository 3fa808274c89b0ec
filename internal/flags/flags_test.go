package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{
			name:     "enabled flag",
			registry: New(map[string]bool{FlagEnvHints: true}),
			flag:     FlagEnvHints,
			expected: true,
		},
		{
			name:     "disabled flag",
			registry: New(map[string]bool{FlagSQLiteBackup: false}),
			flag:     FlagSQLiteBackup,
			expected: false,
		},
		{
			name:     "unknown flag",
			registry: New(map[string]bool{FlagEnvHints: true}),
			flag:     "no-such-flag",
			expected: false,
		},
		{
			name:     "nil registry",
			registry: nil,
			flag:     FlagEnvHints,
			expected: false,
		},
		{
			name:     "nil map",
			registry: New(nil),
			flag:     FlagEnvHints,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := map[string]bool{FlagEnvHints: true}
	r := New(in)

	in[FlagEnvHints] = false
	in[FlagSQLiteBackup] = true

	require.True(t, r.Enabled(FlagEnvHints))
	require.False(t, r.Enabled(FlagSQLiteBackup))
}

func TestRegistry_All(t *testing.T) {
	r := New(map[string]bool{FlagEnvHints: true, FlagSQLiteBackup: false})

	all := r.All()
	require.Equal(t, map[string]bool{FlagEnvHints: true, FlagSQLiteBackup: false}, all)

	all[FlagSQLiteBackup] = true
	require.False(t, r.Enabled(FlagSQLiteBackup), "All must return a copy")

	var nilRegistry *Registry
	require.Empty(t, nilRegistry.All())
}
