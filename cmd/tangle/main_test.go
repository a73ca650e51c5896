package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/gubarz/tangle/internal/tangle"
	"github.com/spf13/viper"
)

// cliEnv isolates config lookup and returns a directory holding a sample document
func cliEnv(t *testing.T) (string, string) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", t.TempDir())

	doc := filepath.Join(dir, "dotfile.md")
	sample := "# Dotfiles\n\n```bash > bashrc.sh\nexport EDITOR=vim\n```\n\n[More](more.md)\n"
	if err := os.WriteFile(doc, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	more := "```yaml > conf/alacritty.yml\nfont: 12\n```\n"
	if err := os.WriteFile(filepath.Join(dir, "more.md"), []byte(more), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, doc
}

func TestRootCommand_Tangles(t *testing.T) {
	dir, doc := cliEnv(t)

	rootCmd.SetArgs([]string{doc})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "bashrc.sh"))
	if err != nil || string(got) != "export EDITOR=vim\n" {
		t.Errorf("bashrc.sh = %q, %v", got, err)
	}
	got, err = os.ReadFile(filepath.Join(dir, "conf", "alacritty.yml"))
	if err != nil || string(got) != "font: 12\n" {
		t.Errorf("alacritty.yml = %q, %v", got, err)
	}
}

func TestRootCommand_MissingFile(t *testing.T) {
	dir, _ := cliEnv(t)

	rootCmd.SetArgs([]string{filepath.Join(dir, "nope.md")})
	rootCmd.SetErr(&bytes.Buffer{})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a missing entry file")
	}
}

func TestListCommand_JSON(t *testing.T) {
	dir, doc := cliEnv(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	t.Cleanup(func() { rootCmd.SetOut(nil) })
	rootCmd.SetArgs([]string{"list", "--output", "json", doc})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	var report tangle.Report
	if err := json.Unmarshal(out.Bytes(), &report); err != nil {
		t.Fatalf("invalid json %q: %v", out.String(), err)
	}
	if !report.DryRun || len(report.Writes) != 2 || len(report.Documents) != 2 {
		t.Errorf("unexpected report %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dir, "bashrc.sh")); !os.IsNotExist(err) {
		t.Error("list must not write files")
	}
}
