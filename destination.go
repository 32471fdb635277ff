package jsonform

import (
	"mime/multipart"
	"net/url"
	"reflect"
)

// Destination is an append-only multi-map that receives flattened entries.
// Keys may repeat and implementations decide what a repeated key means.
type Destination interface {
	// Append adds a text entry.
	Append(key, value string)

	// AppendBlob adds a binary entry. filename is a hint and may be empty.
	AppendBlob(key string, blob *Blob, filename string)
}

// Values adapts [url.Values] as a [Destination]. Blob entries are stored as
// their filename, as browsers do when a form is submitted without a
// multipart encoding.
type Values url.Values

// Append implements [Destination].
func (v Values) Append(key, value string) {
	url.Values(v).Add(key, value)
}

// AppendBlob implements [Destination].
func (v Values) AppendBlob(key string, _ *Blob, filename string) {
	url.Values(v).Add(key, filename)
}

// asDestination resolves the native container types accepted by
// WithDestination.
func asDestination(d interface{}) (Destination, error) {
	switch d := d.(type) {
	case url.Values:
		if d != nil {
			return Values(d), nil
		}
	case Values:
		if d != nil {
			return d, nil
		}
	case *multipart.Writer:
		if d != nil {
			return NewMultipart(d), nil
		}
	case Destination:
		if !isNil(d) {
			return d, nil
		}
	}
	return nil, &InvalidDestinationError{Type: reflect.TypeOf(d)}
}

func isNil(v interface{}) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
