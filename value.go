package jsonform

import (
	"bytes"
	"io"
)

type undefined struct{}

// Undefined marks a value that is absent rather than null. Fields holding
// Undefined never produce an entry, whatever [WithNullValues] says.
var Undefined = undefined{}

// Field is a single key-value pair of an [Object].
type Field struct {
	Key   string
	Value interface{}
}

// Object is a keyed mapping that preserves the order of its fields. Use it
// instead of a map when the order of the emitted entries matters.
type Object []Field

// Get returns the value of the first field named key.
func (o Object) Get(key string) (interface{}, bool) {
	for _, f := range o {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Blob is an opaque binary payload with an optional filename and MIME type.
// A Blob is always a leaf, never traversed.
type Blob struct {
	Name string
	Type string
	Data []byte
}

// NewBlob returns a [Blob] without a filename.
func NewBlob(data []byte, contentType string) *Blob {
	return &Blob{Type: contentType, Data: data}
}

// NewFile returns a [Blob] carrying a filename.
func NewFile(data []byte, name, contentType string) *Blob {
	return &Blob{Name: name, Type: contentType, Data: data}
}

// Size reports the length of the payload in bytes.
func (b *Blob) Size() int {
	return len(b.Data)
}

// Reader returns a reader over the payload.
func (b *Blob) Reader() io.Reader {
	return bytes.NewReader(b.Data)
}

// FileList is a container of blobs, emitted as one entry per element under
// "key[0]", "key[1]" and so on.
type FileList []*Blob
