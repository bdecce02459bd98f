package editor

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/sourcegraph/go-diff/diff"
)

// DiffStat counts the lines a unified diff adds and removes
type DiffStat struct {
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

// unifiedDiff renders before and after as a unified diff of name.
// An empty string means no difference.
func unifiedDiff(name string, before, after []string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        terminated(before),
		B:        terminated(after),
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  3,
	})
}

// diffStat parses a unified diff and counts its changed lines
func diffStat(unified string) (DiffStat, error) {
	if unified == "" {
		return DiffStat{}, nil
	}
	fd, err := diff.ParseFileDiff([]byte(unified))
	if err != nil {
		return DiffStat{}, err
	}
	st := fd.Stat()
	// a changed line is one removal paired with one addition
	return DiffStat{
		Added:   int(st.Added + st.Changed),
		Removed: int(st.Deleted + st.Changed),
	}, nil
}

// terminated returns lines with a trailing newline on each, so a final
// line without one still renders on its own row
func terminated(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if !strings.HasSuffix(l, "\n") {
			l += "\n"
		}
		out[i] = l
	}
	return out
}
