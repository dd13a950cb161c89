package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/ptable/internal/storage"
)

// TestRenderCmd renders CSV from stdin and exports it.
//
// Scenario: User runs `ptable render --export out.json < metrics.csv`
// Expected: One table row per record on stdout, records in out.json
func TestRenderCmd(t *testing.T) {
	// Not parallel - sets the shared config

	c := testConfig()
	cfg = &c
	t.Cleanup(func() { cfg = nil })

	ctx, buf := testContext(t)
	exportPath := filepath.Join(t.TempDir(), "out.json")

	cmd := newRenderCmd()
	cmd.SetContext(ctx)
	cmd.SetIn(strings.NewReader("epoch,loss,note\n1,0.5,warmup\n2,0.25,\n"))
	cmd.SetArgs([]string{"--export", exportPath})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("render command failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"epoch", "0.5000", "0.2500", "warmup"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("append-only output contains escape sequences:\n%q", out)
	}

	var got []map[string]any
	if err := storage.LoadJSON(exportPath, &got); err != nil {
		t.Fatalf("LoadJSON() error = %v", err)
	}
	want := []map[string]any{
		{"epoch": 1.0, "loss": 0.5, "note": "warmup"},
		{"epoch": 2.0, "loss": 0.25, "note": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("exported records mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderCmdMissingFile(t *testing.T) {
	// Not parallel - sets the shared config

	c := testConfig()
	cfg = &c
	t.Cleanup(func() { cfg = nil })

	ctx, _ := testContext(t)
	cmd := newRenderCmd()
	cmd.SetContext(ctx)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing.csv")})
	if err := cmd.Execute(); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("render of a missing file: error = %v, want not exist", err)
	}
}
