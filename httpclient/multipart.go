package httpclient

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
)

// MultipartBody is a multipart/form-data request body. The body is streamed
// so large audio files are never held in memory.
type MultipartBody struct {
	Fields map[string]string
	Files  []FileField
}

// FileField is a file part of a multipart body.
type FileField struct {
	FieldName string
	FileName  string
	// ContentType defaults to application/octet-stream.
	ContentType string
	// Data is used when Reader is nil.
	Data   []byte
	Reader io.Reader
}

// encode returns a reader producing the encoded body and its Content-Type.
// Encoding runs in a goroutine that stops when the reader is closed.
func (m *MultipartBody) encode() (io.ReadCloser, string) {
	pr, pw := io.Pipe()
	w := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(m.writeParts(w))
	}()
	return pr, w.FormDataContentType()
}

func (m *MultipartBody) writeParts(w *multipart.Writer) error {
	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return fmt.Errorf("write field %s: %w", k, err)
		}
	}

	for _, f := range m.Files {
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.FieldName), escapeQuotes(f.FileName)))
		header.Set("Content-Type", contentType)

		part, err := w.CreatePart(header)
		if err != nil {
			return fmt.Errorf("create part %s: %w", f.FieldName, err)
		}
		if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return fmt.Errorf("copy part %s: %w", f.FieldName, err)
			}
		} else if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("write part %s: %w", f.FieldName, err)
		}
	}
	return w.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
