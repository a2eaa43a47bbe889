package cmd

import "strings"

// pyQuote renders s as a single-quoted Python string literal, escaping
// backslashes and embedded single quotes. The result is safe to substitute
// into the generated companion script.
func pyQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// pyStringList renders a slice as a Python list literal of quoted strings.
func pyStringList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, s := range items {
		quoted = append(quoted, pyQuote(s))
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
