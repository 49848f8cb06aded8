package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits != standards.DefaultLimitBounds() {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.DuplicatePolicy != string(standards.DuplicateReplace) {
		t.Fatalf("policy = %q", cfg.DuplicatePolicy)
	}
	if len(cfg.Plugins) == 0 {
		t.Fatal("defaults must include the bundled packs")
	}
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
limits:
  default: 25
  max: 60
duplicate_policy: reject
plugins:
  - name: drupal
    version: 2.0.0
    description: Test pack
    data_dir: packs/drupal
    categories:
      drupal_security: Security best practices
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.Default != 25 || cfg.Limits.Max != 60 {
		t.Fatalf("limits = %+v", cfg.Limits)
	}
	if cfg.Limits.Min != 1 {
		t.Fatalf("unset min must default to 1, got %d", cfg.Limits.Min)
	}
	if cfg.DuplicatePolicy != "reject" {
		t.Fatalf("policy = %q", cfg.DuplicatePolicy)
	}
	if len(cfg.Plugins) != 1 || cfg.Plugins[0].Name != "drupal" {
		t.Fatalf("plugins = %+v", cfg.Plugins)
	}
	if cfg.Plugins[0].Categories["drupal_security"] != "Security best practices" {
		t.Fatalf("categories = %+v", cfg.Plugins[0].Categories)
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad duplicate policy", "duplicate_policy: merge\n"},
		{"plugin without data_dir", "plugins:\n  - name: drupal\n"},
		{"plugin without name", "plugins:\n  - data_dir: packs/x\n"},
		{"non-integer limit", "limits:\n  default: fifty\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected schema validation error")
			} else if !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestBuildRegistryResolvesSources(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "packs", "drupal", "nested")
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{
		filepath.Join(dir, "packs", "drupal", "standards.csv"),
		filepath.Join(dataDir, "extra.csv"),
		filepath.Join(dir, "packs", "drupal", "notes.txt"),
	} {
		if err := os.WriteFile(name, []byte("x"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	path := writeConfig(t, dir, `
plugins:
  - name: drupal
    data_dir: packs/drupal
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	registry, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry: %v", err)
	}

	sources := registry.Sources()
	if len(sources) != 2 {
		t.Fatalf("sources = %v, want only the two CSV files", sources)
	}
	for _, src := range sources {
		if !strings.HasSuffix(src, ".csv") {
			t.Fatalf("non-CSV source resolved: %s", src)
		}
	}
}

func TestResolvePath(t *testing.T) {
	if got := ResolvePath("explicit.yaml"); got != "explicit.yaml" {
		t.Fatalf("explicit path = %q", got)
	}

	t.Setenv(EnvConfigPath, "/etc/devstandards.yaml")
	if got := ResolvePath(""); got != "/etc/devstandards.yaml" {
		t.Fatalf("env path = %q", got)
	}

	t.Setenv(EnvConfigPath, "")
	if got := ResolvePath(""); got != DefaultConfigFile {
		t.Fatalf("default path = %q", got)
	}
}
