package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/ptable/internal/config"
	"github.com/raphi011/ptable/internal/output"
)

// TestConfigInitLocal tests creating a local config.
//
// Scenario: User runs `ptable config init --local` twice, then with -f
// Expected: The file is created, kept, then overwritten
func TestConfigInitLocal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, config.LocalConfigFileName)
	_, buf := testContext(t)
	out := output.New(buf)

	if err := initLocalConfig(out, dir, false, false); err != nil {
		t.Fatalf("initLocalConfig() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("local config not created: %v", err)
	}
	if string(data) != config.DefaultLocalConfig() {
		t.Error("local config does not hold the default template")
	}

	if err := os.WriteFile(path, []byte("interactive = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := initLocalConfig(out, dir, false, false); err == nil {
		t.Error("initLocalConfig() overwrote an existing file without -f")
	}
	if err := initLocalConfig(out, dir, true, false); err != nil {
		t.Fatalf("initLocalConfig(force) error = %v", err)
	}
	if data, _ := os.ReadFile(path); string(data) != config.DefaultLocalConfig() {
		t.Error("forced init kept the old content")
	}
}

func TestConfigInitStdout(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, buf := testContext(t)
	if err := initLocalConfig(output.New(buf), dir, false, true); err != nil {
		t.Fatalf("initLocalConfig() error = %v", err)
	}
	if buf.String() != config.DefaultLocalConfig() {
		t.Errorf("stdout = %q, want the local template", buf.String())
	}
	if _, err := os.Stat(filepath.Join(dir, config.LocalConfigFileName)); !os.IsNotExist(err) {
		t.Error("--stdout wrote a file")
	}
}

// TestConfigShowJSON tests printing the effective config.
//
// Scenario: User runs `ptable config show --json`
// Expected: JSON of the loaded config on stdout
func TestConfigShowJSON(t *testing.T) {
	// Not parallel - sets the shared config

	c := testConfig()
	c.Table.Style = "ascii"
	cfg = &c
	t.Cleanup(func() { cfg = nil })

	ctx, buf := testContext(t)
	cmd := newConfigShowCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{"--json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var got config.Config
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got.Table.Style != "ascii" || got.Interactive != 0 {
		t.Errorf("config show = %+v", got)
	}
}

func TestConfigShowTOML(t *testing.T) {
	// Not parallel - sets the shared config

	c := testConfig()
	cfg = &c
	t.Cleanup(func() { cfg = nil })

	ctx, buf := testContext(t)
	configPath = filepath.Join(t.TempDir(), "config.toml")
	workDir = t.TempDir()
	t.Cleanup(func() { configPath, workDir = "", "" })

	cmd := newConfigShowCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	parsed, err := config.Parse([]byte(buf.String()))
	if err != nil {
		t.Fatalf("output does not parse as config: %v\n%s", err, buf.String())
	}
	if parsed.Interactive != 0 || parsed.Color != "never" {
		t.Errorf("parsed config = %+v", parsed)
	}
	if !strings.Contains(buf.String(), "(none)") {
		t.Errorf("missing files not reported:\n%s", buf.String())
	}
}
