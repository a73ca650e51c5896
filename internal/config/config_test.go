package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func validConfig() Config {
	return Config{
		LogLevel:   "warn",
		Format:     "plaintext",
		Extensions: []string{".md"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "extension without dot", mutate: func(c *Config) { c.Extensions = []string{"md", "markdown"} }},
		{name: "depth limit", mutate: func(c *Config) { c.MaxDepth = 10 }},
		{name: "unknown log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "unsupported format", mutate: func(c *Config) { c.Format = "html" }, wantErr: true},
		{name: "no extensions", mutate: func(c *Config) { c.Extensions = nil }, wantErr: true},
		{name: "blank extension", mutate: func(c *Config) { c.Extensions = []string{".md", ""} }, wantErr: true},
		{name: "extension with path", mutate: func(c *Config) { c.Extensions = []string{"docs/.md"} }, wantErr: true},
		{name: "negative depth", mutate: func(c *Config) { c.MaxDepth = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestInit_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if GetLogLevel() != slog.LevelWarn {
		t.Errorf("expected warn level, got %v", GetLogLevel())
	}
	if GetFormat() != "plaintext" {
		t.Errorf("expected plaintext, got %q", GetFormat())
	}
	if exts := GetExtensions(); len(exts) != 1 || exts[0] != ".md" {
		t.Errorf("expected [.md], got %v", exts)
	}
	if GetMaxDepth() != 0 || GetSkipVisited() || GetDryRun() {
		t.Error("recursion guards and dry run must be off by default")
	}
}

func TestInit_ConfigFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TANGLE_MAX_DEPTH", "7")

	yml := "log_level: debug\nextensions:\n  - md\n  - markdown\nskip_visited: true\n"
	if err := os.WriteFile(filepath.Join(dir, "tangle.yaml"), []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if GetLogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", GetLogLevel())
	}
	exts := GetExtensions()
	if len(exts) != 2 || exts[0] != ".md" || exts[1] != ".markdown" {
		t.Errorf("expected [.md .markdown], got %v", exts)
	}
	if !GetSkipVisited() {
		t.Error("expected skip_visited from file")
	}
	if GetMaxDepth() != 7 || C.MaxDepth != 7 {
		t.Errorf("expected max depth 7 from env, got %d / %d", GetMaxDepth(), C.MaxDepth)
	}
}

func TestInit_InvalidConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, "tangle.yaml"), []byte("format: html\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(); err == nil {
		t.Fatal("expected invalid format to be rejected")
	}
}

func TestInit_EnvExtensions(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{name: "comma separated", env: "md,markdown"},
		{name: "space separated", env: "md markdown"},
		{name: "mixed with dots", env: ".md, .markdown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			t.Chdir(t.TempDir())
			t.Setenv("HOME", t.TempDir())
			t.Setenv("TANGLE_EXTENSIONS", tt.env)

			if err := Init(); err != nil {
				t.Fatalf("Init: %v", err)
			}
			exts := GetExtensions()
			if len(exts) != 2 || exts[0] != ".md" || exts[1] != ".markdown" {
				t.Errorf("expected [.md .markdown], got %q", exts)
			}
		})
	}
}

func TestInit_LogLevelAnyCase(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TANGLE_LOG_LEVEL", "DEBUG")

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if GetLogLevel() != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", GetLogLevel())
	}
}

func TestLoad_ReplacesPreviousValues(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TANGLE_EXTENSIONS", "md,markdown,mdx")

	if err := Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	viper.Set("extensions", []string{"txt"})
	if err := Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exts := GetExtensions(); len(exts) != 1 || exts[0] != ".txt" {
		t.Errorf("expected [.txt], got %q", exts)
	}
}
