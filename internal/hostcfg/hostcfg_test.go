package hostcfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/modhost/internal/hostcfg"
)

func TestParse_FullConfiguration(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	src := `
log_level    = "debug"
log_format   = "json"
search_paths = ["/opt/modhost/modules", "/usr/lib/modhost"]

module "pathfinder" {}

module "mapper" {
  config {
    rate  = 5
    label = "primary"
  }
}
`

	// --- Act ---
	cfg, err := hostcfg.Parse([]byte(src), "host.hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	if diff := cmp.Diff([]string{"/opt/modhost/modules", "/usr/lib/modhost"}, cfg.SearchPaths); diff != "" {
		t.Errorf("search paths mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, cfg.Modules, 2)
	assert.Equal(t, "pathfinder", cfg.Modules[0].Name)
	assert.Nil(t, cfg.Modules[0].Config, "a module without a config block has no payload")

	assert.Equal(t, "mapper", cfg.Modules[1].Name)
	require.NotNil(t, cfg.Modules[1].Config)
	want := cty.ObjectVal(map[string]cty.Value{
		"rate":  cty.NumberIntVal(5),
		"label": cty.StringVal("primary"),
	})
	assert.True(t, want.RawEquals(*cfg.Modules[1].Config),
		"payload mismatch: want %#v, got %#v", want, *cfg.Modules[1].Config)
}

func TestParse_ModulesKeepDeclarationOrder(t *testing.T) {
	t.Parallel()

	src := `
module "c" {}
module "a" {}
module "b" {}
`

	cfg, err := hostcfg.Parse([]byte(src), "host.hcl")

	require.NoError(t, err)
	var names []string
	for _, m := range cfg.Modules {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"c", "a", "b"}, names)
}

func TestParse_EmptyConfigBlockYieldsEmptyObject(t *testing.T) {
	t.Parallel()

	src := `
module "alpha" {
  config {}
}
`

	cfg, err := hostcfg.Parse([]byte(src), "host.hcl")

	require.NoError(t, err)
	require.Len(t, cfg.Modules, 1)
	require.NotNil(t, cfg.Modules[0].Config)
	assert.True(t, cty.EmptyObjectVal.RawEquals(*cfg.Modules[0].Config))
}

func TestParse_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := hostcfg.Parse([]byte(`module "alpha" {`), "broken.hcl")

	require.Error(t, err)
}

func TestParse_NonConstantPayloadAttribute(t *testing.T) {
	t.Parallel()

	// Payloads are data; variable references have no evaluation context.
	src := `
module "alpha" {
  config {
    rate = var.rate
  }
}
`

	_, err := hostcfg.Parse([]byte(src), "host.hcl")

	require.Error(t, err)
}

func TestLoadFile_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := hostcfg.LoadFile(filepath.Join(t.TempDir(), "absent.hcl"))

	require.Error(t, err)
}

func TestLoadFile_ReadsFromDisk(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "host.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`log_level = "warn"`), 0o600))

	cfg, err := hostcfg.LoadFile(path)

	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}
