package util

import "strings"

// Coalesce returns the first non-zero value.
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}

// StringInSlice reports whether s is one of list.
func StringInSlice(s string, list []string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// NormalizeExtensions lower-cases extensions and ensures a leading dot.
// Blank entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		out = append(out, e)
	}
	return out
}

// MaskSecret keeps the first visible bytes of s and hides the rest. Secrets
// no longer than visible are hidden entirely.
func MaskSecret(s string, visible int) string {
	const mask = "***"
	if len(s) <= visible {
		return mask
	}
	return s[:visible] + mask
}
