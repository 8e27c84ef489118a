// Package textutil holds small text helpers shared by the printers.
package textutil

import "strings"

// Indent prefixes every line of s with n spaces. A trailing newline is
// preserved and not followed by indentation.
func Indent(s string, n int) string {
	if s == "" || n <= 0 {
		return s
	}
	pad := strings.Repeat(" ", n)
	trailing := strings.HasSuffix(s, "\n")
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = pad + l
	}
	out := strings.Join(lines, "\n")
	if trailing {
		out += "\n"
	}
	return out
}
