package cmd

import "strings"

// shellQuote minimally quotes one argument for a POSIX shell. Common safe
// characters stay unquoted; anything else gets single-quoting with the
// standard `'\''` escape for embedded single quotes. Used when tracing the
// constructed ssh invocation so the line can be copy-pasted back into a
// shell.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if strings.IndexFunc(s, func(r rune) bool {
		// Safe chars: alnum, - _ . / @ : , + =
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		switch r {
		case '-', '_', '.', '/', '@', ':', ',', '+', '=':
			return false
		}
		return true
	}) == -1 {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}
