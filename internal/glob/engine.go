package glob

import (
	"github.com/harrison/girder/internal/deps"
	"github.com/harrison/girder/internal/dircache"
	"github.com/harrison/girder/internal/pathutil"
	"github.com/harrison/girder/internal/workerpool"
)

// MatchFunc receives every matched path, tagged with whether it names a
// directory. Paths are relative to the engine root, built by joining pattern
// segments during expansion. During recursive descent callbacks arrive
// concurrently from multiple workers, so implementations must serialize any
// shared accumulation.
type MatchFunc func(path string, isDir bool)

// Options configures a glob session.
type Options struct {
	// Workers is the size of the worker pool used for recursive descent.
	// Zero or negative selects DefaultWorkers.
	Workers int

	// CaseSensitive selects exact or ASCII-case-folded segment matching.
	// It is an explicit choice, never inferred from the host OS, so both
	// modes behave identically everywhere.
	CaseSensitive bool

	// Recorder, when non-nil, is told each directory whose listing was
	// read.
	Recorder deps.Recorder
}

// DefaultWorkers is the pool size used when Options.Workers is unset.
const DefaultWorkers = 8

// Engine expands glob patterns against a filesystem root. It owns a
// directory cache and a worker pool, both scoped to the engine: construct
// one per top-level glob session and Close it when done.
type Engine struct {
	root          string
	cache         *dircache.Cache
	pool          *workerpool.Pool
	caseSensitive bool
}

// NewEngine creates an engine rooted at the given directory. Matched paths
// are reported relative to root.
func NewEngine(root string, opts Options) *Engine {
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	return &Engine{
		root:          root,
		cache:         dircache.New(opts.Recorder),
		pool:          workerpool.New(workers),
		caseSensitive: opts.CaseSensitive,
	}
}

// Glob expands one pattern, calling fn for every match. It does not return
// until every worker task spawned by recursive descent, including tasks
// spawned by other tasks, has completed: synchronous from the caller's view
// despite the internal fan-out.
func (e *Engine) Glob(pattern string, fn MatchFunc) {
	e.glob(pattern, fn)
	e.pool.Wait()
}

// Stats reports directory cache activity for this session.
func (e *Engine) Stats() dircache.Stats {
	return e.cache.Stats()
}

// Close drains outstanding work and stops the worker pool. The engine must
// not be used afterwards.
func (e *Engine) Close() {
	e.pool.Close()
}

// glob dispatches one pattern without waiting for the pool. Expansion works
// on the final path segment:
//
//   - a head containing wildcards is expanded first, level by level, and the
//     tail re-globbed under every matched directory
//   - a "**" tail starts recursive descent at the head
//   - a wildcard tail is matched against the head's directory listing
//   - a fully literal pattern is reported as-is, without consulting the
//     filesystem at all
func (e *Engine) glob(pattern string, fn MatchFunc) {
	head, tail := pathutil.Split(pattern)

	switch {
	case pathutil.HasMeta(head):
		e.glob(head, func(dir string, isDir bool) {
			if isDir {
				e.glob(pathutil.Join(dir, tail), fn)
			}
		})

	case pathutil.IsRecursive(tail):
		e.descend(head, fn)

	case pathutil.HasMeta(tail):
		e.listMatch(head, tail, fn)

	default:
		// Literal path. Existence is deliberately not checked; the
		// caller asked for this exact path and gets it back. An empty
		// tail means the pattern named a directory.
		if tail != "" {
			fn(pattern, false)
		} else {
			fn(head, true)
		}
	}
}

// listMatch lists one directory and reports every entry whose name matches
// the pattern segment.
func (e *Engine) listMatch(dir, pattern string, fn MatchFunc) {
	for _, ent := range e.cache.Entries(pathutil.Join(e.root, dir)) {
		if Match(ent.Name, pattern, e.caseSensitive) {
			fn(pathutil.Join(dir, ent.Name), ent.IsDir)
		}
	}
}

// descend implements "**": the starting directory itself matches (the
// zero-subdirectories case), every entry beneath it matches, and each
// subdirectory continues the descent as an independent task on the pool.
// Fanning out across the pool instead of recursing keeps wide trees off the
// call stack and lets subtrees list in parallel; Glob's barrier picks up the
// transitive closure of tasks scheduled here.
func (e *Engine) descend(dir string, fn MatchFunc) {
	fn(dir, true)

	for _, ent := range e.cache.Entries(pathutil.Join(e.root, dir)) {
		sub := pathutil.Join(dir, ent.Name)
		fn(sub, ent.IsDir)

		if ent.IsDir {
			e.pool.Enqueue(func() { e.descend(sub, fn) })
		}
	}
}
