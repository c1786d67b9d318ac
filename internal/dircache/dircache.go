// Package dircache memoizes directory listings for the duration of one glob
// session. The filesystem is assumed stable for that long, so every distinct
// normalized directory is read from the OS at most once, and reported to the
// dependency recorder at most once, no matter how many patterns touch it.
package dircache

import (
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/harrison/girder/internal/deps"
	"github.com/harrison/girder/internal/pathutil"
)

// Entry is one name within a directory listing.
type Entry struct {
	Name  string
	IsDir bool
}

// listing holds the cached contents of one directory. The Once guarantees a
// single OS read per cache key even when multiple workers ask for the same
// directory before the first read finishes.
type listing struct {
	once    sync.Once
	entries []Entry
}

// Stats counts cache activity, for logging and for verifying the
// one-listing-per-directory invariant in tests.
type Stats struct {
	Listings int64 // directories read from the OS
	Hits     int64 // lookups served from the cache
}

// Cache is a thread-safe memoizing directory lister. A Cache is constructed
// per glob session and must outlive every worker task of that session.
type Cache struct {
	mu   sync.Mutex
	dirs map[string]*listing
	rec  deps.Recorder

	listings atomic.Int64
	hits     atomic.Int64
}

// New creates an empty cache. rec may be nil, in which case dependency
// reporting is skipped.
func New(rec deps.Recorder) *Cache {
	return &Cache{
		dirs: make(map[string]*listing),
		rec:  rec,
	}
}

// Entries returns the sorted contents of the directory. The path is
// normalized first; the normalized form is the cache key and the name
// reported to the dependency recorder. A missing or unreadable directory
// yields an empty listing, not an error: absent paths simply match nothing.
//
// The returned slice is shared and must not be modified.
func (c *Cache) Entries(dir string) []Entry {
	key := pathutil.Norm(dir)

	c.mu.Lock()
	l, ok := c.dirs[key]
	if !ok {
		l = &listing{}
		c.dirs[key] = l
	}
	c.mu.Unlock()

	if ok {
		c.hits.Add(1)
	}

	// The map lock is released before the OS read so that distinct
	// directories list in parallel; the Once serializes only callers of
	// the same key.
	l.once.Do(func() {
		l.entries = readDir(key)
		c.listings.Add(1)
		if c.rec != nil {
			c.rec.AddInput(key)
		}
	})

	return l.entries
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Listings: c.listings.Load(),
		Hits:     c.hits.Load(),
	}
}

// readDir lists a directory and sorts the result by (name, isDir), since the
// order of OS enumeration is not deterministic across platforms or runs.
func readDir(dir string) []Entry {
	if dir == "" {
		dir = "."
	}

	osEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	entries := make([]Entry, 0, len(osEntries))
	for _, e := range osEntries {
		entries = append(entries, Entry{Name: e.Name(), IsDir: e.IsDir()})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return !entries[i].IsDir && entries[j].IsDir
	})

	return entries
}
