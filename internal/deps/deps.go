// Package deps records the implicit dependencies of a glob session: the
// directories whose listings influenced the result. A downstream build
// system uses these to decide when a cached build description must be
// regenerated because directory contents changed.
//
// Two recorders are provided. Pipe streams dependencies back to a parent
// build system over inherited file descriptors, and Store persists them into
// a local SQLite database for standalone use.
package deps

// Recorder receives each directory whose listing was read. The directory
// cache guarantees at most one AddInput call per distinct normalized path
// per session, but calls may arrive concurrently from worker goroutines, so
// implementations must serialize their own writes.
type Recorder interface {
	AddInput(path string)
}

// multi fans each call out to several recorders.
type multi []Recorder

func (m multi) AddInput(path string) {
	for _, r := range m {
		r.AddInput(path)
	}
}

// Multi combines recorders into one, dropping nils. It returns nil when
// nothing remains, and the sole recorder unchanged when only one does.
func Multi(recorders ...Recorder) Recorder {
	var out multi
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	}
	return out
}
