package hosts

import "strings"

// IsIgnorable reports whether a line carries no host definition: it is blank
// or a comment.
func IsIgnorable(line string) bool {
	line = strings.TrimSpace(line)
	return line == "" || line[0] == '#'
}

// StripComment drops everything from the first '#' on.
func StripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

// NormalizeHostname returns the registry key for a hostname. Hostnames are
// lower-cased before both the duplicate check and the write.
func NormalizeHostname(hostname string) string {
	return strings.ToLower(strings.TrimSpace(hostname))
}
