package command

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/pr-gatekeeper/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistry_LoadKeepsConfigurationOrder(t *testing.T) {
	r := NewRegistry(DefaultCatalog(), discardLogger())

	cmds, err := r.Load(config.CommandBindings{
		{Key: KeyRetest, Pattern: "/retest"},
		{Key: KeyWhitelistAdd, Pattern: "/approve"},
		{Key: KeyOkToTest, Pattern: "/ok-to-test"},
	})
	require.NoError(t, err)
	require.Len(t, cmds, 3)

	assert.Equal(t, KeyRetest, cmds[0].Key())
	assert.Equal(t, KeyWhitelistAdd, cmds[1].Key())
	assert.Equal(t, KeyOkToTest, cmds[2].Key())
	assert.Equal(t, "/approve", cmds[1].CommandRegex())
}

func TestRegistry_LoadSkipsUnknownKeys(t *testing.T) {
	r := NewRegistry(DefaultCatalog(), discardLogger())

	cmds, err := r.Load(config.CommandBindings{
		{Key: "deploy", Pattern: "/deploy"},
		{Key: KeyWhitelistAdd, Pattern: "/approve"},
		{Key: "lgtm", Pattern: "/lgtm"},
	})
	require.NoError(t, err)
	require.Len(t, cmds, 1)
	assert.Equal(t, KeyWhitelistAdd, cmds[0].Key())
}

func TestRegistry_LoadRejectsInvalidPattern(t *testing.T) {
	r := NewRegistry(DefaultCatalog(), discardLogger())

	cmds, err := r.Load(config.CommandBindings{
		{Key: KeyWhitelistAdd, Pattern: "/approve("},
	})
	require.Error(t, err)
	assert.Nil(t, cmds)
	assert.Contains(t, err.Error(), KeyWhitelistAdd)
}

func TestRegistry_ResolveReturnsFreshInstances(t *testing.T) {
	r := NewRegistry(DefaultCatalog(), discardLogger())

	a, ok := r.Resolve(KeyRetest)
	require.True(t, ok)
	b, ok := r.Resolve(KeyRetest)
	require.True(t, ok)

	require.NoError(t, a.SetCommandRegex("/retest"))
	require.NoError(t, b.SetCommandRegex("/rerun"))
	assert.NotEqual(t, a.CommandRegex(), b.CommandRegex())

	_, ok = r.Resolve("unknown")
	assert.False(t, ok)
}

func TestRegistry_RetestVariantsKeepTheirKeys(t *testing.T) {
	r := NewRegistry(DefaultCatalog(), discardLogger())

	for key := range DefaultCatalog() {
		cmd, ok := r.Resolve(key)
		require.True(t, ok)
		assert.Equal(t, key, cmd.Key())
	}
}

func TestPattern_MatchesWholeBody(t *testing.T) {
	tests := []struct {
		pattern string
		body    string
		want    bool
	}{
		{pattern: "/approve", body: "/approve", want: true},
		{pattern: "/approve", body: "/approve please", want: false},
		{pattern: "/approve", body: "please /approve", want: false},
		{pattern: "/approve", body: "/approve\n", want: false},
		{pattern: `/approve\s*`, body: "/approve  ", want: true},
		{pattern: "/retest|/rerun", body: "/rerun", want: true},
		{pattern: "/retest|/rerun", body: "/retest now", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.body, func(t *testing.T) {
			var p pattern
			require.NoError(t, p.SetCommandRegex(tt.pattern))
			assert.Equal(t, tt.want, p.Matches(tt.body))
		})
	}
}

func TestPattern_SetOnce(t *testing.T) {
	var p pattern
	assert.False(t, p.Matches(""), "an unset pattern matches nothing")

	require.NoError(t, p.SetCommandRegex("/approve"))
	err := p.SetCommandRegex("/other")
	assert.ErrorIs(t, err, ErrPatternAlreadySet)
	assert.Equal(t, "/approve", p.CommandRegex())
}
