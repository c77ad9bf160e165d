// Package strutil collects the small string helpers shared by the
// foundation: trimming, ASCII case transforms, splitting without empty
// tokens, and byte-level ASCII classification.
package strutil

import "strings"

// TrimLeft removes leading whitespace.
func TrimLeft(s string) string {
	return strings.TrimLeft(s, " \t\r\n\v\f")
}

// TrimRight removes trailing whitespace.
func TrimRight(s string) string {
	return strings.TrimRight(s, " \t\r\n\v\f")
}

// Trim removes leading and trailing whitespace.
func Trim(s string) string {
	return strings.Trim(s, " \t\r\n\v\f")
}

// ToLower lowercases ASCII letters only; other bytes pass through untouched,
// so multi-byte sequences are never corrupted by locale-style folding.
func ToLower(s string) string {
	return mapASCII(s, ToLowerASCII)
}

// ToUpper uppercases ASCII letters only.
func ToUpper(s string) string {
	return mapASCII(s, ToUpperASCII)
}

func mapASCII(s string, f func(byte) byte) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if m := f(c); m != c {
			b[i] = m
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// Split cuts s on sep, dropping empty tokens. Split("a,,b", ",") is
// ["a", "b"], and splitting the empty string yields nil.
func Split(s, sep string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, sep)
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Join concatenates parts with sep between them.
func Join(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// HasPrefix reports whether s begins with prefix.
func HasPrefix(s, prefix string) bool { return strings.HasPrefix(s, prefix) }

// HasSuffix reports whether s ends with suffix.
func HasSuffix(s, suffix string) bool { return strings.HasSuffix(s, suffix) }

// ASCII classification, byte at a time. These mirror the C-locale ctype
// predicates without pulling locale machinery into hot paths.

// IsASCII reports whether c is a 7-bit byte.
func IsASCII(c byte) bool { return c <= 127 }

// IsPrintableASCII reports whether c is a printable 7-bit byte (space
// through tilde).
func IsPrintableASCII(c byte) bool { return c >= 32 && c <= 126 }

// IsDigitASCII reports whether c is '0'..'9'.
func IsDigitASCII(c byte) bool { return c >= '0' && c <= '9' }

// IsAlphaASCII reports whether c is an ASCII letter.
func IsAlphaASCII(c byte) bool { return IsUpperASCII(c) || IsLowerASCII(c) }

// IsUpperASCII reports whether c is 'A'..'Z'.
func IsUpperASCII(c byte) bool { return c >= 'A' && c <= 'Z' }

// IsLowerASCII reports whether c is 'a'..'z'.
func IsLowerASCII(c byte) bool { return c >= 'a' && c <= 'z' }

// ToUpperASCII uppercases a single ASCII letter; other bytes pass through.
func ToUpperASCII(c byte) byte {
	if IsLowerASCII(c) {
		return c - ('a' - 'A')
	}
	return c
}

// ToLowerASCII lowercases a single ASCII letter; other bytes pass through.
func ToLowerASCII(c byte) byte {
	if IsUpperASCII(c) {
		return c + ('a' - 'A')
	}
	return c
}
