package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/docsite/internal/errors"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, DefaultPort)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.Build.Output != DefaultOutput {
		t.Errorf("Build.Output = %q, want %q", cfg.Build.Output, DefaultOutput)
	}
	if cfg.Docs.RouteBasePath != DefaultRouteBasePath {
		t.Errorf("Docs.RouteBasePath = %q, want %q", cfg.Docs.RouteBasePath, DefaultRouteBasePath)
	}
	if !cfg.HotReload() {
		t.Error("HotReload should default to true")
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if errors.Code(err) != "E141" {
		t.Errorf("Expected E141 for missing config, got %v", err)
	}

	writeConfig(t, tmpDir, `{
  "title": "Support Tools",
  "baseURL": "/automation-suite-support-tools",
  "dev": {
    "port": 8080,
    "host": "0.0.0.0",
    "hotReload": false
  },
  "build": {
    "output": "public",
    "concurrency": 4
  },
  "render": {
    "classes": {"pre": "code-block"}
  },
  "publish": {
    "bucket": "acme-docs"
  }
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Title != "Support Tools" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.BaseURL != "/automation-suite-support-tools/" {
		t.Errorf("BaseURL = %q, want trailing slash", cfg.BaseURL)
	}
	if cfg.Dev.Port != 8080 {
		t.Errorf("Dev.Port = %d, want %d", cfg.Dev.Port, 8080)
	}
	if cfg.Dev.Host != "0.0.0.0" {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, "0.0.0.0")
	}
	if cfg.HotReload() {
		t.Error("HotReload should be false")
	}
	if cfg.Build.Output != "public" || cfg.Build.Concurrency != 4 {
		t.Errorf("Build = %+v", cfg.Build)
	}
	if cfg.Render.Classes["pre"] != "code-block" {
		t.Errorf("Render.Classes = %v", cfg.Render.Classes)
	}

	// Unset fields fall back to defaults.
	if cfg.Paths.Docs != DefaultDocs {
		t.Errorf("Paths.Docs = %q, want %q", cfg.Paths.Docs, DefaultDocs)
	}
	if cfg.Lang != "en" {
		t.Errorf("Lang = %q, want %q", cfg.Lang, "en")
	}
	if cfg.Publish.CacheControl == "" {
		t.Error("Publish.CacheControl should have a default")
	}
	if cfg.OutputPath() != filepath.Join(tmpDir, "public") {
		t.Errorf("OutputPath = %q", cfg.OutputPath())
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"dev": {"port": 8080}, "publish": {"bucket": "from-file", "prefix": "docs"}}`)

	t.Setenv("DOCSITE_DEV_PORT", "9090")
	t.Setenv("DOCSITE_PUBLISH_BUCKET", "from-env")
	t.Setenv("DOCSITE_BUILD_CONCURRENCY", "2")
	t.Setenv("DOCSITE_DEV_HOT_RELOAD", "false")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Dev.Port != 9090 {
		t.Errorf("Dev.Port = %d, want env value 9090", cfg.Dev.Port)
	}
	if cfg.Publish.Bucket != "from-env" {
		t.Errorf("Publish.Bucket = %q, want env value", cfg.Publish.Bucket)
	}
	if cfg.Publish.Prefix != "docs" {
		t.Errorf("Publish.Prefix = %q, want file value", cfg.Publish.Prefix)
	}
	if cfg.Build.Concurrency != 2 {
		t.Errorf("Build.Concurrency = %d, want 2", cfg.Build.Concurrency)
	}
	if cfg.HotReload() {
		t.Error("HotReload should be disabled by env")
	}
}

func TestLoad_EnvFalseOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{"docs": {"includeDrafts": true}, "render": {"pretty": true}, "build": {"concurrency": 4}}`)

	t.Setenv("DOCSITE_DOCS_INCLUDE_DRAFTS", "false")
	t.Setenv("DOCSITE_RENDER_PRETTY", "false")
	t.Setenv("DOCSITE_BUILD_CONCURRENCY", "0")

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Docs.IncludeDrafts {
		t.Error("Docs.IncludeDrafts should be disabled by env")
	}
	if cfg.Render.Pretty {
		t.Error("Render.Pretty should be disabled by env")
	}
	if cfg.Build.Concurrency != 0 {
		t.Errorf("Build.Concurrency = %d, want env value 0", cfg.Build.Concurrency)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DOCSITE_BASE_URL", "/docs")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv error: %v", err)
	}
	if cfg.BaseURL != "/docs/" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "/docs/")
	}
	if cfg.Dev.Port != DefaultPort {
		t.Errorf("Dev.Port = %d, want default", cfg.Dev.Port)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `{}`)
	t.Setenv("DOCSITE_DEV_PORT", "not-a-port")

	_, err := Load(tmpDir)
	if errors.Code(err) != "E121" {
		t.Errorf("Expected E121 error, got: %v", err)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "not valid json")

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E120") {
		t.Errorf("Expected E120 error, got: %v", err)
	}
}

func TestSave(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)

	cfg := New()
	cfg.Dev.Port = 9000
	cfg.Publish.Bucket = "acme-docs"

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Dev.Port != 9000 {
		t.Errorf("Dev.Port = %d, want %d", loaded.Dev.Port, 9000)
	}
	if loaded.Publish.Bucket != "acme-docs" {
		t.Errorf("Publish.Bucket = %q", loaded.Publish.Bucket)
	}

	loaded.Dev.Port = 9001
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Dev.Port != 9001 {
		t.Errorf("Dev.Port = %d, want %d", reloaded.Dev.Port, 9001)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"port too high", func(c *Config) { c.Dev.Port = 70000 }, false},
		{"negative port", func(c *Config) { c.Dev.Port = -1 }, false},
		{"negative concurrency", func(c *Config) { c.Build.Concurrency = -2 }, false},
		{"relative baseURL", func(c *Config) { c.BaseURL = "docs/" }, false},
		{"otlp exporter", func(c *Config) { c.Tracing.Exporter = "otlp" }, true},
		{"unknown exporter", func(c *Config) { c.Tracing.Exporter = "jaeger" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && errors.Code(err) != "E122" {
				t.Errorf("Validate() = %v, want E122", err)
			}
		})
	}
}

func TestDevAddressAndURL(t *testing.T) {
	cfg := New()
	cfg.Dev.Host = "127.0.0.1"
	cfg.Dev.Port = 4000
	cfg.BaseURL = "/tools/"

	if got := cfg.DevAddress(); got != "127.0.0.1:4000" {
		t.Errorf("DevAddress = %q", got)
	}
	if got := cfg.DevURL(); got != "http://127.0.0.1:4000/tools/" {
		t.Errorf("DevURL = %q", got)
	}
}

func TestPaths(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := writeConfig(t, tmpDir, `{"paths": {"docs": "content", "static": "/srv/static"}}`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatal(err)
	}

	if got := cfg.DocsPath(); got != filepath.Join(tmpDir, "content") {
		t.Errorf("DocsPath = %q", got)
	}
	if got := cfg.StaticPath(); got != "/srv/static" {
		t.Errorf("StaticPath = %q", got)
	}
	if cfg.Dir() != tmpDir || cfg.Path() != configPath {
		t.Errorf("Dir/Path = %q %q", cfg.Dir(), cfg.Path())
	}
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	if Exists(tmpDir) {
		t.Error("Exists should be false for empty directory")
	}

	writeConfig(t, tmpDir, "{}")

	if !Exists(tmpDir) {
		t.Error("Exists should be true after creating config")
	}
}

func TestFindProjectRoot(t *testing.T) {
	// Create nested directory structure
	tmpDir := t.TempDir()
	nestedDir := filepath.Join(tmpDir, "a", "b", "c")
	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}

	// Should fail when no config exists
	_, err := FindProjectRoot(nestedDir)
	if errors.Code(err) != "E141" {
		t.Errorf("FindProjectRoot should fail with E141, got %v", err)
	}

	writeConfig(t, tmpDir, "{}")

	root, err := FindProjectRoot(nestedDir)
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}

	root, err = FindProjectRoot(filepath.Join(tmpDir, "a"))
	if err != nil {
		t.Fatalf("FindProjectRoot error: %v", err)
	}
	if root != tmpDir {
		t.Errorf("FindProjectRoot = %q, want %q", root, tmpDir)
	}
}

func TestApplyDefaults(t *testing.T) {
	off := false
	cfg := &Config{Dev: DevConfig{Port: 5000, HotReload: &off}, BaseURL: "/x"}
	if err := cfg.applyDefaults(); err != nil {
		t.Fatalf("applyDefaults error: %v", err)
	}
	cfg.normalize()

	if cfg.Dev.Port != 5000 {
		t.Errorf("Dev.Port = %d, want 5000", cfg.Dev.Port)
	}
	if cfg.Dev.Host != DefaultHost {
		t.Errorf("Dev.Host = %q, want %q", cfg.Dev.Host, DefaultHost)
	}
	if cfg.BaseURL != "/x/" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "/x/")
	}
	if cfg.Dev.PollInterval != "200ms" {
		t.Errorf("Dev.PollInterval = %q", cfg.Dev.PollInterval)
	}
	if cfg.HotReload() {
		t.Error("HotReload set by the caller should survive defaults")
	}
}
