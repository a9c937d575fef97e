package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Indent != 2 || cfg.EOL != "lf" || cfg.Multipass {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if len(cfg.Plugins) == 0 {
		t.Error("default plugin list empty")
	}
}

func TestParseMergesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"pretty": true, "indent": 4}`), false)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Pretty || cfg.Indent != 4 {
		t.Errorf("user settings lost: %+v", cfg)
	}
	// untouched defaults survive the merge
	if cfg.EOL != "lf" || len(cfg.Plugins) == 0 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestParsePlugins(t *testing.T) {
	src := `{"plugins": ["removeComments", {"name": "convertPathData", "params": {"precision": 2}}]}`
	cfg, err := Parse([]byte(src), false)
	if err != nil {
		t.Fatal(err)
	}
	insts := cfg.Instances()
	if len(insts) != 2 {
		t.Fatalf("instances = %+v", insts)
	}
	if insts[0].Name != "removeComments" || len(insts[0].Params) != 0 {
		t.Errorf("bare entry = %+v", insts[0])
	}
	if insts[1].Name != "convertPathData" || !strings.Contains(string(insts[1].Params), "precision") {
		t.Errorf("parameterized entry = %+v", insts[1])
	}
}

func TestParseYAML(t *testing.T) {
	src := "pretty: true\nplugins:\n  - removeComments\n  - name: cleanupIds\n    params:\n      minify: true\n"
	cfg, err := Parse([]byte(src), true)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Pretty || len(cfg.Plugins) != 2 || cfg.Plugins[1].Name != "cleanupIds" {
		t.Errorf("yaml config = %+v", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", `{"prety": true}`},
		{"bad eol", `{"eol": "mixed"}`},
		{"bad indent type", `{"indent": "two"}`},
		{"indent out of range", `{"indent": 99}`},
		{"plugin entry missing name", `{"plugins": [{"params": {}}]}`},
		{"bad datauri", `{"datauri": "hex"}`},
		{"bad parallel type", `{"parallel": true}`},
		{"parallel out of range", `{"parallel": 1000}`},
	}
	for _, tc := range tests {
		_, err := Parse([]byte(tc.src), false)
		if err == nil {
			t.Errorf("%s: accepted", tc.name)
			continue
		}
		if !errors.Is(err, ErrSchema) {
			t.Errorf("%s: err = %v, want ErrSchema", tc.name, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse([]byte(`{"pretty":`), false); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
	if _, err := Parse([]byte(": ["), true); !errors.Is(err, ErrMalformed) {
		t.Errorf("yaml err = %v, want ErrMalformed", err)
	}
}

func TestConfigJSONRoundTrip(t *testing.T) {
	cfg, err := Parse([]byte(`{"plugins": ["removeComments", {"name": "cleanupIds", "params": {"minify": true}}], "datauri": "base64"}`), false)
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg2, err := Parse(data, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(cfg, cfg2); d != "" {
		t.Errorf("round trip (-first +second):\n%s", d)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, ".svgoptrc.json")
	if err := os.WriteFile(jsonPath, []byte(`{"multipass": true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Multipass {
		t.Error("multipass lost")
	}

	yamlPath := filepath.Join(dir, "svgopt.config.yaml")
	if err := os.WriteFile(yamlPath, []byte("eol: crlf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.EOL != "crlf" {
		t.Error("yaml eol lost")
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, ".svgoptrc")
	if err := os.WriteFile(cfgPath, []byte(`{}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Discover(nested); got != cfgPath {
		t.Errorf("Discover = %q, want %q", got, cfgPath)
	}
	empty := t.TempDir()
	if got := Discover(empty); got != "" && strings.HasPrefix(got, empty) {
		t.Errorf("Discover in empty dir = %q", got)
	}
}
