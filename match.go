package disksearch

import "strings"

// NameMatcher selects files by base name. Both checks are case-sensitive
// and literal: no globbing, no regular expressions.
type NameMatcher struct {
	Pattern   string // must occur somewhere in the name
	Extension string // must end the name
}

// Match reports whether name contains Pattern and ends with Extension.
// Empty fields match everything.
func (m NameMatcher) Match(name string) bool {
	return strings.HasSuffix(name, m.Extension) && strings.Contains(name, m.Pattern)
}
