//go:build integration

package main

// Notes:
// - These runs write sqlite databases, metrics textfiles, and config files
//   to temp directories and run the full converter twice per case.

import (
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunMain_Integration - Cache, metrics, and config files
// ---------------------------------------------------------------------------

func TestRunMain_SQLiteCacheAndMetrics(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "a.md")
	writeFile(t, in, "# Cached")
	db := filepath.Join(dir, "cache.db")
	prom := filepath.Join(dir, "hubdown.prom")
	args := []string{"hubdown", "--cache-driver", "sqlite", "--cache-path", db, "--metrics-textfile", prom, in}

	for run := 0; run < 2; run++ {
		env, _, stderr := testEnv()
		if code := runMain(args, env); code != ExitSuccess {
			t.Fatalf("run %d: runMain() = %d, stderr: %s", run, code, stderr.String())
		}
	}

	metrics := readOutput(t, prom)
	for _, want := range []string{
		`hubdown_cache_lookups_total{outcome="hit"} 1`,
		`hubdown_conversions_total{outcome="cached"} 1`,
	} {
		if !strings.Contains(metrics, want) {
			t.Errorf("metrics should contain %q, got:\n%s", want, metrics)
		}
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "src", "a.md"), "---\ntitle: Cfg\n---\nText")
	cfgPath := filepath.Join(dir, "hubdown.yaml")
	writeFile(t, cfgPath, "input:\n  defaultDir: "+filepath.Join(dir, "src")+
		"\noutput:\n  defaultDir: "+filepath.Join(dir, "out")+"\n  format: json\nconvert:\n  frontmatter: true\n")

	env, _, stderr := testEnv()
	if code := runMain([]string{"hubdown", "-c", cfgPath, "-q"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}
	if got := readOutput(t, filepath.Join(dir, "out", "a.json")); !strings.Contains(got, `"title": "Cfg"`) {
		t.Errorf("a.json = %q", got)
	}
}
