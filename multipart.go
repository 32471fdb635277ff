package jsonform

import (
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
)

// Multipart adapts a [*multipart.Writer] as a [Destination], writing each
// entry as a part as soon as it is appended. Since [Destination] methods
// cannot fail, the first write error is recorded and every later append is
// dropped; check [Multipart.Err] once the conversion is done.
type Multipart struct {
	w   *multipart.Writer
	err error
}

// NewMultipart returns a [Multipart] destination writing to w.
func NewMultipart(w *multipart.Writer) *Multipart {
	return &Multipart{w: w}
}

// Append implements [Destination].
func (m *Multipart) Append(key, value string) {
	if m.err != nil {
		return
	}
	m.err = m.w.WriteField(key, value)
}

// AppendBlob implements [Destination]. An empty filename is written as
// "blob".
func (m *Multipart) AppendBlob(key string, blob *Blob, filename string) {
	if m.err != nil {
		return
	}
	if filename == "" {
		filename = defaultBlobName
	}
	m.err = writeBlobPart(m.w, key, blob, filename)
}

// Err returns the first error encountered while writing a part.
func (m *Multipart) Err() error {
	return m.err
}

// Writer returns the underlying writer.
func (m *Multipart) Writer() *multipart.Writer {
	return m.w
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// writeBlobPart writes blob as a file part. Unlike
// [multipart.Writer.CreateFormFile] it keeps the blob's own content type.
func writeBlobPart(w *multipart.Writer, key string, blob *Blob, filename string) error {
	contentType := blob.Type
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(key), escapeQuotes(filename)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("form: failed to create part %q: %w", key, err)
	}
	if _, err := part.Write(blob.Data); err != nil {
		return fmt.Errorf("form: failed to write part %q: %w", key, err)
	}
	return nil
}
