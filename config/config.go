// Package config loads, validates and merges optimizer configuration.
//
// Configuration files are JSON or YAML. User settings are merged over
// built-in defaults with JSON merge-patch semantics, then validated
// against a schema so mistakes surface with a field path instead of a
// zero value.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/goccy/go-yaml"

	"github.com/vecdoc/svgopt/debug"
	"github.com/vecdoc/svgopt/encode"
	"github.com/vecdoc/svgopt/pass"
)

// Plugin is one pipeline entry: either a bare pass name or a name with
// parameters.
type Plugin struct {
	Name   string
	Params json.RawMessage
}

func (p *Plugin) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		p.Name = name
		p.Params = nil
		return nil
	}
	var obj struct {
		Name   string          `json:"name"`
		Params json.RawMessage `json:"params"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("plugin entry must be a name or {name, params}: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("plugin entry missing name")
	}
	p.Name = obj.Name
	p.Params = obj.Params
	return nil
}

func (p Plugin) MarshalJSON() ([]byte, error) {
	if len(p.Params) == 0 {
		return json.Marshal(p.Name)
	}
	return json.Marshal(struct {
		Name   string          `json:"name"`
		Params json.RawMessage `json:"params,omitempty"`
	}{p.Name, p.Params})
}

// ErrMalformed marks configuration that is not valid JSON or YAML;
// ErrSchema marks configuration that parses but violates the schema.
var (
	ErrMalformed = errors.New("malformed config")
	ErrSchema    = errors.New("config schema violation")
)

// Config is the full optimizer configuration. Parallel is a worker
// count: values above one enable concurrent subtree dispatch.
type Config struct {
	Multipass    bool     `json:"multipass"`
	Parallel     int      `json:"parallel"`
	Pretty       bool     `json:"pretty"`
	Indent       int      `json:"indent"`
	EOL          string   `json:"eol"`
	FinalNewline bool     `json:"finalNewline"`
	Datauri      string   `json:"datauri,omitempty"`
	Plugins      []Plugin `json:"plugins"`
}

// defaultJSON is the built-in configuration user files merge over.
// A "plugins" key in the user file replaces the whole list.
const defaultJSON = `{
	"multipass": false,
	"parallel": 0,
	"pretty": false,
	"indent": 2,
	"eol": "lf",
	"finalNewline": false,
	"plugins": [
		"removeDoctype",
		"removeComments",
		"removeMetadata",
		"cleanupIds",
		"convertPathData",
		"cleanupNumericValues",
		"removeEmptyContainers"
	]
}`

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := fromJSON([]byte(defaultJSON))
	if err != nil {
		panic(err)
	}
	return cfg
}

// Parse merges data over the defaults and validates the result. YAML
// input is accepted when yamlIn is set.
func Parse(data []byte, yamlIn bool) (*Config, error) {
	if yamlIn {
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("config: %w: %w", ErrMalformed, err)
		}
		data = j
	}
	merged, err := jsonpatch.MergePatch([]byte(defaultJSON), data)
	if err != nil {
		return nil, fmt.Errorf("config: merging defaults: %w: %w", ErrMalformed, err)
	}
	if err := Validate(merged); err != nil {
		return nil, err
	}
	return fromJSON(merged)
}

// Load reads and parses the file at path. Files with a .yaml or .yml
// extension are YAML; everything else is JSON.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	cfg, err := Parse(data, ext == ".yaml" || ext == ".yml")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if debug.Config() {
		debug.Logf("loaded config from %s\n", path)
	}
	return cfg, nil
}

func fromJSON(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %w: %w", ErrMalformed, err)
	}
	return cfg, nil
}

// Instances converts the plugin list to runner form.
func (c *Config) Instances() []pass.Instance {
	insts := make([]pass.Instance, len(c.Plugins))
	for i, p := range c.Plugins {
		insts[i] = pass.Instance{Name: p.Name, Params: p.Params}
	}
	return insts
}

// RunnerOptions derives runner options from the configuration.
func (c *Config) RunnerOptions() []pass.RunnerOption {
	return []pass.RunnerOption{
		pass.RunParallel(c.Parallel),
		pass.RunMultipass(c.Multipass),
	}
}

// EncodeOptions derives encoder options from the configuration.
func (c *Config) EncodeOptions() []encode.EncodeOption {
	eol := encode.EOLLF
	switch c.EOL {
	case "crlf":
		eol = encode.EOLCRLF
	case "cr":
		eol = encode.EOLCR
	}
	return []encode.EncodeOption{
		encode.EncodePretty(c.Pretty),
		encode.EncodeIndent(strings.Repeat(" ", c.Indent)),
		encode.EncodeEOL(eol),
		encode.EncodeFinalNewline(c.FinalNewline),
	}
}
