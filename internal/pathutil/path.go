// Package pathutil manipulates the slash-separated paths used in build
// descriptions. Patterns and matched paths always use '/' regardless of the
// host platform; only the final filesystem access goes through the OS path
// rules.
package pathutil

import "strings"

// Separator is the path separator for build paths on every platform.
const Separator = '/'

// Recursive is the whole-segment token that matches a directory and all of
// its transitive subdirectories.
const Recursive = "**"

// rootLen returns the length of the root portion of the path: 1 if the path
// is absolute, 0 otherwise.
func rootLen(p string) int {
	if len(p) > 0 && p[0] == Separator {
		return 1
	}
	return 0
}

// IsAbs reports whether the path is absolute.
func IsAbs(p string) bool {
	return rootLen(p) > 0
}

// Split splits a path at its final separator into a head (the parent
// directory, with trailing separators trimmed) and a tail (the last path
// component). The split never happens inside the root, so Split("/a")
// returns ("/", "a"). A path without separators has an empty head.
func Split(p string) (head, tail string) {
	root := rootLen(p)

	// Find where the last path component begins.
	tailStart := len(p)
	for tailStart > root {
		tailStart--
		if p[tailStart] == Separator {
			tailStart++
			break
		}
	}

	// Trim separators off the end of the head.
	headEnd := tailStart
	for headEnd > root {
		headEnd--
		if p[headEnd] != Separator {
			headEnd++
			break
		}
	}

	return p[:headEnd], p[tailStart:]
}

// Join appends a path to a base path, inserting a separator when the base
// does not already end in one. An absolute path replaces the base entirely.
// Joining an empty path returns the base unchanged.
func Join(base, p string) string {
	if IsAbs(p) {
		return p
	}
	if p == "" {
		return base
	}
	if base == "" {
		return p
	}
	if base[len(base)-1] == Separator {
		return base + p
	}
	return base + string(Separator) + p
}

// Norm canonicalizes a path: "." components are dropped, ".." components
// consume the preceding component where possible, and redundant separators
// are removed. The result of normalizing an empty or fully-cancelled path is
// ".". Norm is total and idempotent; the directory cache relies on it as the
// notion of path identity.
func Norm(p string) string {
	abs := IsAbs(p)

	stack := make([]string, 0, strings.Count(p, "/")+1)
	for _, seg := range strings.Split(p, "/") {
		switch seg {
		case "", ".":
			// Redundant separator or current directory.
		case "..":
			if n := len(stack); n > 0 && stack[n-1] != ".." {
				stack = stack[:n-1]
			} else if !abs {
				// ".." above the root of an absolute path is
				// discarded; above a relative path it is kept.
				stack = append(stack, seg)
			}
		default:
			stack = append(stack, seg)
		}
	}

	if abs {
		return "/" + strings.Join(stack, "/")
	}
	if len(stack) == 0 {
		return "."
	}
	return strings.Join(stack, "/")
}

// HasMeta reports whether the path contains any glob metacharacters. A '['
// counts even without a closing ']'; such a pattern deterministically fails
// to match rather than being treated as a literal.
func HasMeta(p string) bool {
	return strings.ContainsAny(p, "?*[")
}

// IsRecursive reports whether the segment is the recursive glob token.
func IsRecursive(seg string) bool {
	return seg == Recursive
}
