package transcription

import (
	"mime"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
)

const octetStream = "application/octet-stream"

// AudioContentType sniffs the media type of the file at path, falling back
// to its extension and then to application/octet-stream.
func AudioContentType(path string) string {
	if m, err := mimetype.DetectFile(path); err == nil && !m.Is(octetStream) {
		return m.String()
	}
	if t := mime.TypeByExtension(filepath.Ext(path)); t != "" {
		return t
	}
	return octetStream
}
