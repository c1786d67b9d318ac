package glob

import (
	"errors"
	"strings"
)

// ErrNoRoot is returned when Run is invoked without a root directory.
var ErrNoRoot = errors.New("glob: root directory required")

// Run is the top-level entry point: it expands every pattern against root
// and returns the sorted, duplicate-free result with exclusions applied.
// Patterns prefixed with "!" remove their matches from the result; all other
// patterns add theirs. A fresh engine (cache plus worker pool) is created
// for the call and torn down before it returns, so the filesystem is read at
// most once per directory within the call but never cached across calls.
//
// Matches are collected while patterns expand, but nothing is returned until
// every pattern has fully completed; a failed directory read partway through
// can therefore never corrupt an already-returned result, it only yields an
// empty listing for that directory.
func Run(root string, patterns []string, opts Options) ([]string, error) {
	if root == "" {
		return nil, ErrNoRoot
	}

	eng := NewEngine(root, opts)
	defer eng.Close()

	var col Collector
	for _, pattern := range patterns {
		if rest, ok := strings.CutPrefix(pattern, "!"); ok {
			eng.Glob(rest, col.Exclude)
		} else {
			eng.Glob(pattern, col.Include)
		}
	}

	return col.Result(), nil
}
