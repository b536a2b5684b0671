package util

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxExtensionLen bounds extensions taken from client-supplied file names.
const maxExtensionLen = 10

// FileExtension returns the lower-cased extension of a client-supplied file
// name including the leading dot, or "" when it has none or it looks unsafe.
// Directory components are ignored.
func FileExtension(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	if len(ext) < 2 || len(ext) > maxExtensionLen {
		return ""
	}
	for _, r := range ext[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return ""
		}
	}
	return ext
}
