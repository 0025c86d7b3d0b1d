package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/painpoint-cli/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"research", "discover", "batch", "runs", "export", "catalog", "publish", "serve"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "painpoint", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestResearchCommand_Flags(t *testing.T) {
	for _, name := range []string{"company", "url", "start-date", "end-date", "mode", "format", "out"} {
		assert.NotNil(t, researchCmd.Flags().Lookup(name), "research should have --%s flag", name)
	}
}

func TestDiscoverCommand_Flags(t *testing.T) {
	flag := discoverCmd.Flags().Lookup("industry")
	require.NotNil(t, flag)
	assert.Equal(t, "insurance", flag.DefValue)

	flag = discoverCmd.Flags().Lookup("region")
	require.NotNil(t, flag)
	assert.Equal(t, "global", flag.DefValue)

	flag = discoverCmd.Flags().Lookup("min-relevance")
	require.NotNil(t, flag)
	assert.Equal(t, "30", flag.DefValue)
}

func TestBatchCommand_Flags(t *testing.T) {
	for _, name := range []string{"file", "limit", "concurrency", "out-dir", "format", "mode"} {
		assert.NotNil(t, batchCmd.Flags().Lookup(name), "batch should have --%s flag", name)
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestRunsCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range runsCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["list"])
	assert.True(t, names["show"])
	assert.True(t, names["stats"])
}

func TestExportAndPublish_RunFlag(t *testing.T) {
	require.NotNil(t, exportCmd.Flags().Lookup("run"))
	require.NotNil(t, exportCmd.Flags().Lookup("format"))
	require.NotNil(t, publishCmd.Flags().Lookup("run"))
}

func TestApplyGlobalFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().String("log-level", "", "")
	cmd.Flags().String("store", "", "")

	c := &config.Config{Log: config.LogConfig{Level: "info"}, Store: config.StoreConfig{Driver: "sqlite"}}
	applyGlobalFlags(cmd, c)
	assert.Equal(t, "info", c.Log.Level, "unchanged flags keep config values")
	assert.Equal(t, "sqlite", c.Store.Driver)

	require.NoError(t, cmd.Flags().Set("log-level", "debug"))
	require.NoError(t, cmd.Flags().Set("store", "none"))
	applyGlobalFlags(cmd, c)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "none", c.Store.Driver)
}
