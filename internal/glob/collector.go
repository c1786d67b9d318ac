package glob

import (
	"sort"
	"sync"
)

// Collector accumulates matches from concurrent callbacks into an include
// set and an exclude set, then merges them into one deterministic result.
// The zero value is ready to use.
type Collector struct {
	mu       sync.Mutex
	includes []string
	excludes []string
}

// Include records a match for an include pattern. Safe for concurrent use.
func (c *Collector) Include(path string, isDir bool) {
	c.mu.Lock()
	c.includes = append(c.includes, path)
	c.mu.Unlock()
}

// Exclude records a match for a "!"-prefixed pattern. Safe for concurrent
// use.
func (c *Collector) Exclude(path string, isDir bool) {
	c.mu.Lock()
	c.excludes = append(c.excludes, path)
	c.mu.Unlock()
}

// Result sorts and deduplicates both sets and returns includes minus
// excludes. The output feeds a build description that must be reproducible,
// so it is sorted by byte value and duplicate-free regardless of the order
// callbacks arrived in.
func (c *Collector) Result() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Merge(sortUnique(c.includes), sortUnique(c.excludes))
}

// Merge computes includes minus excludes over two sorted, duplicate-free
// slices with a linear two-pointer walk. A path in both sets is consumed
// from both and dropped.
func Merge(includes, excludes []string) []string {
	out := make([]string, 0, len(includes))

	i, j := 0, 0
	for i < len(includes) && j < len(excludes) {
		switch {
		case includes[i] < excludes[j]:
			// Only in the includes.
			out = append(out, includes[i])
			i++
		case includes[i] > excludes[j]:
			// Only in the excludes.
			j++
		default:
			// In both.
			i++
			j++
		}
	}

	// Whatever remains in the includes cannot be excluded.
	return append(out, includes[i:]...)
}

// sortUnique sorts in place and drops adjacent duplicates.
func sortUnique(paths []string) []string {
	sort.Strings(paths)

	out := paths[:0]
	for _, p := range paths {
		if len(out) == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}
