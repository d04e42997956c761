package stringtest

import "strings"

// Input normalizes an indented raw string literal for use as test input.
// It trims exactly one leading and one trailing newline, removes the
// longest common leading whitespace from the remaining lines, and blanks
// whitespace-only lines.
//
// Example:
//
//	in := stringtest.Input(`
//	    key: value
//	    nested:
//	      child: data`)
//	// -> "key: value\nnested:\n  child: data"
func Input(s string) string {
	s = strings.TrimPrefix(s, "\n")
	s = strings.TrimSuffix(s, "\n")

	lines := strings.Split(s, "\n")

	var indent string

	first := true

	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}

		prefix := line[:len(line)-len(trimmed)]

		if first {
			indent = prefix
			first = false

			continue
		}

		indent = commonPrefix(indent, prefix)
	}

	for i, line := range lines {
		if strings.TrimLeft(line, " \t") == "" {
			lines[i] = ""

			continue
		}

		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines, "\n")
}

// commonPrefix returns the longest shared leading substring of a and b.
func commonPrefix(a, b string) string {
	n := min(len(a), len(b))

	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}

// JoinLF joins multiple strings with LF line endings.
// Use this to construct expected test output with explicit line endings.
//
// Example:
//
//	want := stringtest.JoinLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\nline2\nline3"
func JoinLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}

// JoinCRLF joins multiple strings with CRLF line endings.
// Use this to construct expected test output with explicit line endings on
// Windows.
//
// Example:
//
//	want := stringtest.JoinCRLF(
//		"line1",
//		"line2",
//		"line3",
//	) // -> "line1\r\nline2\r\nline3"
func JoinCRLF(ss ...string) string {
	var sb strings.Builder
	for i, s := range ss {
		if i > 0 {
			sb.WriteByte('\r')
			sb.WriteByte('\n')
		}

		sb.WriteString(s)
	}

	return sb.String()
}
