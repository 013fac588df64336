package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	cmd := InitCommand(BuildInfo{AppName: "otzindex"})

	assert.Equal(t, "otzindex", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	require.Len(t, cmd.Commands(), 3)

	subCmds := cmd.Commands()
	names := make([]string, 0, len(subCmds))

	for _, sub := range subCmds {
		names = append(names, sub.Use)
	}

	assert.Contains(t, names, "build")
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "health")

	assert.Equal(t, "info", cmd.PersistentFlags().Lookup("log-level").DefValue)
	assert.Equal(t, "true", cmd.PersistentFlags().Lookup("log-text").DefValue)
	assert.Equal(t, "runtime/config.yml", cmd.PersistentFlags().Lookup("config").DefValue)
}
