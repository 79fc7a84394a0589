package matcher

import (
	"path"
	"strings"
)

// Match reports whether name satisfies pattern using common CLI semantics
// adopted across the project: "*" matches everything, patterns with glob
// meta characters are matched as globs, anything else as a name prefix.
func Match(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	if pattern == "" {
		return false
	}
	if strings.ContainsAny(pattern, "*?[") {
		matched, err := path.Match(pattern, name)
		return err == nil && matched
	}
	return strings.HasPrefix(name, pattern)
}
