package enumerate

import (
	"fmt"
	"path"
	"strings"
)

// Match reports whether the slash-separated relPath matches pattern.
//
// Patterns use path.Match syntax per segment, plus "**" as a whole segment
// matching zero or more segments: "lib/**/*.dart" matches "lib/main.dart"
// and "lib/src/ui/home.dart", "assets/fonts/**" matches "assets/fonts" and
// everything below it. A pattern without any "/" is matched against the
// base name only, so "*.g.dart" applies in every directory.
func Match(pattern, relPath string) bool {
	if pattern == "" {
		return false
	}
	if !strings.Contains(pattern, "/") && pattern != "**" {
		ok, err := path.Match(pattern, path.Base(relPath))
		return err == nil && ok
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(relPath, "/"))
}

// MatchAny reports whether relPath matches at least one pattern.
func MatchAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if Match(p, relPath) {
			return true
		}
	}
	return false
}

func matchSegments(pat, segs []string) bool {
	for len(pat) > 0 {
		if pat[0] == "**" {
			// Collapse runs of "**".
			for len(pat) > 1 && pat[1] == "**" {
				pat = pat[1:]
			}
			if len(pat) == 1 {
				return true
			}
			for i := 0; i <= len(segs); i++ {
				if matchSegments(pat[1:], segs[i:]) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		ok, err := path.Match(pat[0], segs[0])
		if err != nil || !ok {
			return false
		}
		pat, segs = pat[1:], segs[1:]
	}
	return len(segs) == 0
}

// staticDir returns the leading directory segments of pattern that contain
// no glob metacharacters. The last segment is always treated as a file
// pattern. "lib/**/*.dart" yields "lib", "*.dart" yields "".
func staticDir(pattern string) string {
	if !strings.Contains(pattern, "/") {
		return ""
	}
	segs := strings.Split(pattern, "/")
	var fixed []string
	for _, s := range segs[:len(segs)-1] {
		if s == "**" || strings.ContainsAny(s, "*?[\\") {
			break
		}
		fixed = append(fixed, s)
	}
	return strings.Join(fixed, "/")
}

// ValidatePattern reports a malformed segment in pattern, such as an
// unterminated character class.
func ValidatePattern(pattern string) error {
	for _, seg := range strings.Split(pattern, "/") {
		if seg == "**" {
			continue
		}
		if _, err := path.Match(seg, ""); err != nil {
			return fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
	}
	return nil
}
