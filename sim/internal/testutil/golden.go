// Package testutil provides shared test infrastructure for the WISS
// simulation kernel: golden-file comparison for sim/simx's report writer,
// and a float tolerance assertion reused across sim/ test packages.
package testutil

import (
	"flag"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// update, when set via "-update", rewrites golden files with the actual
// output instead of comparing against them. Run `go test ./sim/simx -update`
// after an intentional report-format change (the flag is only defined in
// test binaries that import this package).
var update = flag.Bool("update", false, "rewrite golden files with actual output")

// GoldenPath resolves name relative to the caller's package's testdata/
// directory, mirroring the teacher's runtime.Caller-based path resolution
// for its testdata/goldendataset.json.
func GoldenPath(t *testing.T, name string) string {
	t.Helper()
	return goldenPath(t, 2, name)
}

// goldenPath does the runtime.Caller walk, landing two frames up from
// itself: past goldenPath's own frame and its direct wrapper's (GoldenPath
// or AssertGolden, both called straight from the test function).
func goldenPath(t *testing.T, skip int, name string) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(skip)
	if !ok {
		t.Fatal("testutil.GoldenPath : failed to get caller's file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "testdata", name)
}

// AssertGolden compares actual against the golden file at name (resolved
// under the caller's testdata/ directory), rewriting it first when -update
// is passed.
func AssertGolden(t *testing.T, name string, actual []byte) {
	t.Helper()
	path := goldenPath(t, 2, name)

	if *update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("testutil.AssertGolden : %v", err)
		}
		if err := os.WriteFile(path, actual, 0o644); err != nil {
			t.Fatalf("testutil.AssertGolden : %v", err)
		}
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("testutil.AssertGolden : reading %s : %v (run with -update to create it)", path, err)
	}
	if string(want) != string(actual) {
		t.Errorf("testutil.AssertGolden : %s does not match actual output\n--- want ---\n%s\n--- got ---\n%s", path, want, actual)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance,
// treating two NaNs as equal (aggregated/sparse dynamic variables are
// frequently NaN by design, not by error).
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if math.IsNaN(want) && math.IsNaN(got) {
		return
	}
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
