// Package testutil provides golden-file comparison and structural-diff
// helpers for _test.go files. Built on go-cmp rather than reflect.DeepEqual.
package testutil

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alir-lang/alirc/internal/diag"
)

// update controls whether golden files are written instead of compared.
// Usage: go test -update ./internal/...
var update = flag.Bool("update", false, "update golden files")

// GoldenCompare compares got against testdata/<name>.golden, or writes it
// when -update is passed.
func GoldenCompare(t *testing.T, name string, got string) {
	t.Helper()

	path := filepath.Join("testdata", name+".golden")
	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("testutil: create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("testutil: write %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil: read %s: %v\nrun with -update to create it", path, err)
	}
	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s (-want +got):\n%s", name, diff)
	}
}

// DumpDiagnostics renders a Recorder's diagnostics as one sorted line per
// entry: "<severity> <code> <span>: <message>".
func DumpDiagnostics(rec *diag.Recorder) string {
	lines := make([]string, 0, len(rec.Diagnostics))
	for _, d := range rec.Diagnostics {
		lines = append(lines, fmt.Sprintf("%s %s %s: %s\n", d.Severity, d.Code, d.Span, d.Message))
	}
	sort.Strings(lines)
	return strings.Join(lines, "")
}

// DiffTypes reports a *testing.T error if a and b differ structurally,
// using go-cmp rather than == so the failure message shows which field.
func DiffTypes(t *testing.T, label string, want, got interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", label, diff)
	}
}
