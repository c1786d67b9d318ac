// Package glob implements pattern matching and expansion for build
// description paths: per-segment wildcards (?, *, character classes), the
// whole-segment recursive token "**", and deterministic include/exclude
// merging of the matched set.
package glob

// Match reports whether a single path segment matches a wildcard pattern.
// Neither argument may contain a path separator. Pattern syntax:
//
//	?        matches exactly one character
//	*        matches zero or more characters
//	[abc]    matches one character from the set
//	[!abc]   matches one character not in the set
//
// Any other character matches itself, case-folded when caseSensitive is
// false. A '[' with no closing ']' makes the whole match fail; a typo in one
// pattern must not abort the patterns around it, so it is a non-match rather
// than an error.
//
// '*' backtracks over every split point, which is exponential in the number
// of stars in the worst case. Segments are short, so this is acceptable.
//
// Match is pure and safe for unsynchronized concurrent use.
func Match(name, pattern string, caseSensitive bool) bool {
	i := 0

	for j := 0; j < len(pattern); j++ {
		switch pattern[j] {
		case '?':
			// Any single character.
			if i == len(name) {
				return false
			}
			i++

		case '*':
			// Zero or more characters. A trailing star matches the
			// rest unconditionally.
			if j+1 == len(pattern) {
				return true
			}

			// Try the rest of the pattern at every split point.
			for ; i < len(name); i++ {
				if Match(name[i:], pattern[j+1:], caseSensitive) {
					return true
				}
			}
			return false

		case '[':
			if i == len(name) {
				return false
			}

			// Skip past the opening bracket.
			j++
			if j == len(pattern) {
				return false
			}

			invert := false
			if pattern[j] == '!' {
				invert = true
				j++
				if j == len(pattern) {
					return false
				}
			}

			// Find the closing bracket. Without one the pattern
			// can never match.
			end := j
			for end < len(pattern) && pattern[end] != ']' {
				end++
			}
			if end == len(pattern) {
				return false
			}

			matched := false
			for ; j < end; j++ {
				if charEq(name[i], pattern[j], caseSensitive) {
					matched = true
				}
			}

			if matched == invert {
				return false
			}
			i++

		default:
			if i == len(name) || !charEq(name[i], pattern[j], caseSensitive) {
				return false
			}
			i++
		}
	}

	// Both the pattern and the name must be fully consumed.
	return i == len(name)
}

// charEq compares two bytes, folding ASCII case when insensitive.
func charEq(a, b byte, caseSensitive bool) bool {
	if caseSensitive {
		return a == b
	}
	return lower(a) == lower(b)
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
