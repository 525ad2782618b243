package shell

import "strings"

// Matches reports whether id passes the application search query. An empty
// query matches everything; otherwise the match is a case-insensitive
// substring test.
func Matches(query, id string) bool {
	if query == "" {
		return true
	}

	return strings.Contains(strings.ToLower(id), strings.ToLower(query))
}
