package jsonform

import (
	"fmt"
	"io"
	"mime/multipart"
)

// Encoder writes values to an [io.Writer] as multipart/form-data bodies.
type Encoder struct {
	mw   *multipart.Writer
	opts []Option
}

// NewEncoder creates a new [Encoder] that writes to w. The options apply to
// every call to [Encoder.Encode]; [WithDestination] is ignored since the
// encoder writes to its own multipart writer.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{mw: multipart.NewWriter(w), opts: opts}
}

// SetBoundary overrides the randomly generated multipart boundary. It must be
// called before [Encoder.Encode].
func (e *Encoder) SetBoundary(boundary string) error {
	return e.mw.SetBoundary(boundary)
}

// FormDataContentType returns the Content-Type header value of the encoded
// body, including its boundary.
func (e *Encoder) FormDataContentType() string {
	return e.mw.FormDataContentType()
}

// Encode flattens v and writes it to the underlying [io.Writer] as a
// complete multipart body, closing the body once every entry is written.
func (e *Encoder) Encode(v interface{}) error {
	dst := NewMultipart(e.mw)
	if err := flatten(dst, v, newOptions(e.opts)); err != nil {
		return err
	}
	if err := dst.Err(); err != nil {
		return err
	}
	if err := e.mw.Close(); err != nil {
		return fmt.Errorf("form: failed to close multipart body: %w", err)
	}
	return nil
}
