package paths

import (
	"strings"
)

const Placeholder = '%'

// Substitute replaces every '%' in pattern with name; "%%" stands for a literal '%'.
func Substitute(pattern string, name string) string {
	var sb strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != Placeholder {
			sb.WriteByte(c)
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == Placeholder {
			sb.WriteByte(Placeholder)
			i++
			continue
		}
		sb.WriteString(name)
	}
	return strings.TrimSpace(sb.String())
}

// Candidates expands a ':'-separated pattern list in order, skipping empty patterns.
func Candidates(name string, list string) []string {
	var ret []string
	for _, pattern := range strings.Split(list, ":") {
		if strings.TrimSpace(pattern) == "" {
			continue
		}
		ret = append(ret, Substitute(pattern, name))
	}
	return ret
}
