package tt

import (
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// AssertTextEqual compares two multi-line strings and fails the test with a
// unified diff when they differ. Plain equality assertions are unreadable
// for prompt-sized text; the diff pins down the offending line.
func AssertTextEqual(t *testing.T, expected, actual string) {
	t.Helper()

	if expected == actual {
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	})
	if err != nil {
		t.Fatalf("building diff: %v", err)
	}
	t.Errorf("text mismatch (-expected +actual):\n%s", diff)
}
