// Package hostcfg parses the host's own HCL configuration: logging knobs,
// extra module search paths, and the list of modules to load at startup
// with their optional configuration payloads.
package hostcfg

import (
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Config is the decoded host configuration.
type Config struct {
	LogLevel    string
	LogFormat   string
	SearchPaths []string
	Modules     []ModuleEntry
}

// ModuleEntry is one module block: the logical name to load and, when a
// config block is present, the payload handed to the module's
// configuration-accepting factory. A nil Config selects the plain factory.
type ModuleEntry struct {
	Name   string
	Config *cty.Value
}

// fileSchema mirrors the top level of the HCL file for gohcl.
type fileSchema struct {
	LogLevel    string        `hcl:"log_level,optional"`
	LogFormat   string        `hcl:"log_format,optional"`
	SearchPaths []string      `hcl:"search_paths,optional"`
	Modules     []moduleBlock `hcl:"module,block"`
}

type moduleBlock struct {
	Name   string       `hcl:"name,label"`
	Config *configBlock `hcl:"config,block"`
}

// configBlock swallows arbitrary attributes; they become the payload object.
type configBlock struct {
	Remain hcl.Body `hcl:",remain"`
}

// LoadFile parses and decodes the HCL host configuration at path.
func LoadFile(path string) (*Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read host config: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes src as an HCL host configuration. filename is used only in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse host config %s: %w", filename, diags)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode host config %s: %w", filename, diags)
	}

	cfg := &Config{
		LogLevel:    raw.LogLevel,
		LogFormat:   raw.LogFormat,
		SearchPaths: raw.SearchPaths,
	}
	for _, mod := range raw.Modules {
		entry := ModuleEntry{Name: mod.Name}
		if mod.Config != nil {
			payload, err := payloadValue(mod.Config.Remain)
			if err != nil {
				return nil, fmt.Errorf("module %q config: %w", mod.Name, err)
			}
			entry.Config = &payload
		}
		cfg.Modules = append(cfg.Modules, entry)
	}
	return cfg, nil
}

// payloadValue evaluates every attribute of a config block into one cty
// object. Attributes must be constant expressions; the payload is data, not
// a template.
func payloadValue(body hcl.Body) (cty.Value, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%w", diags)
	}

	// Deterministic evaluation order keeps diagnostics stable.
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	values := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return cty.NilVal, fmt.Errorf("attribute %q: %w", name, diags)
		}
		values[name] = val
	}
	if len(values) == 0 {
		return cty.EmptyObjectVal, nil
	}
	return cty.ObjectVal(values), nil
}
