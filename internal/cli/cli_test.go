package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/modhost/internal/cli"
)

func TestParse_NoInputsPrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, shouldExit, err := cli.Parse(nil, out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_UnknownFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	_, _, err := cli.Parse([]string{"-bogus"}, out)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParse_PositionalConfigPath(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, shouldExit, err := cli.Parse([]string{"host.hcl"}, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "host.hcl", cfg.HostConfigPath)
}

func TestParse_FlagsPopulateConfig(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	args := []string{
		"-config", "host.hcl",
		"-load", "modules.txt",
		"-dump", "report.xml",
		"-log-format", "JSON",
		"-log-level", "Debug",
	}

	cfg, shouldExit, err := cli.Parse(args, out)

	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "host.hcl", cfg.HostConfigPath)
	assert.Equal(t, "modules.txt", cfg.ModuleListPath)
	assert.Equal(t, "report.xml", cfg.ReportPath)
	assert.Equal(t, "json", cfg.LogFormat, "log format should be lowercased")
	assert.Equal(t, "debug", cfg.LogLevel, "log level should be lowercased")
}

func TestParse_ShorthandConfigFlag(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, _, err := cli.Parse([]string{"-c", "host.hcl"}, out)

	require.NoError(t, err)
	assert.Equal(t, "host.hcl", cfg.HostConfigPath)
}

func TestParse_LoadListAloneIsEnough(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	cfg, shouldExit, err := cli.Parse([]string{"-load", "modules.txt"}, out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Empty(t, cfg.HostConfigPath)
	assert.Equal(t, "modules.txt", cfg.ModuleListPath)
}

func TestParse_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	_, _, err := cli.Parse([]string{"-log-level", "loud", "-load", "modules.txt"}, out)

	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}
