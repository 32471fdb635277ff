package jsonform

import (
	"reflect"
	"strconv"
	"time"
)

// Convert flattens v into a destination and returns the destination.
//
// v must be a keyed mapping ([Object], a struct or a map) or a sequence (a
// slice or array). Nested mappings are keyed "parent[child]", or
// "parent.child" with [WithDotSeparator]; sequence elements are keyed
// "parent[i]". A nil or [Undefined] v produces no entries.
//
// The destination is the one given with [WithDestination], or a new [Form]
// otherwise. Configuration errors match [ErrConfiguration] and are reported
// before anything is written. Write errors recorded by the destination, as
// with a [*multipart.Writer], are returned once the conversion is done.
func Convert(v interface{}, opts ...Option) (Destination, error) {
	o := newOptions(opts)
	dst, err := o.resolve()
	if err != nil {
		return nil, err
	}
	if err := flatten(dst, v, o); err != nil {
		return nil, err
	}
	// Streaming destinations such as [Multipart] record write failures
	// instead of returning them from Append.
	if e, ok := dst.(interface{ Err() error }); ok {
		if err := e.Err(); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// ConvertForm is like [Convert] but always appends to a new [Form]. Any
// [WithDestination] option is ignored.
func ConvertForm(v interface{}, opts ...Option) (*Form, error) {
	f := NewForm()
	if err := flatten(f, v, newOptions(opts)); err != nil {
		return nil, err
	}
	return f, nil
}

// EncodeToString is a convenience function that returns the url-encoded form
// of v as a string.
func EncodeToString(v interface{}, opts ...Option) (string, error) {
	f, err := ConvertForm(v, opts...)
	if err != nil {
		return "", err
	}
	return f.Encode(), nil
}

// Marshal returns the application/x-www-form-urlencoded encoding of v, with
// entries in traversal order. Blobs are encoded as their filename.
func Marshal(v interface{}, opts ...Option) ([]byte, error) {
	s, err := EncodeToString(v, opts...)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func flatten(dst Destination, v interface{}, o *options) error {
	value, kind := normalize(v)
	switch kind {
	case Absent, Null:
		return nil
	case Mapping, Sequence:
	default:
		return &InvalidValueError{Type: reflect.TypeOf(v), Kind: kind}
	}

	w := &walker{opts: o, dst: dst}

	// A top-level array of primitives has no parent key to prefix, so each
	// element is keyed by its bracketed index alone. Null elements keep their
	// index whatever WithNullValues says.
	if kind == Sequence && primitiveElements(value) {
		eachElement(value, func(i int, raw interface{}) {
			value, kind := w.resolve(raw)
			if kind == Null {
				w.dst.Append(indexKey("", i), "null")
				return
			}
			w.emit(indexKey("", i), value, kind)
		})
		return nil
	}

	w.walk(value, kind, "", false)
	return nil
}

// walker carries the state of a single conversion through the recursion.
type walker struct {
	opts *options
	dst  Destination
}

// resolve applies the mapping function to a raw child value and classifies
// the result.
func (w *walker) resolve(raw interface{}) (interface{}, Kind) {
	return normalize(w.opts.mapping(indirect(raw)))
}

// walk emits the children of the container node. nested is false at the top
// level, where a child's own name is its key.
func (w *walker) walk(node interface{}, kind Kind, parent string, nested bool) {
	switch kind {
	case Mapping:
		eachField(node, func(name string, raw interface{}) {
			value, kind := w.resolve(raw)
			key := name
			if nested {
				key = fieldKey(parent, name, w.opts.dot)
			}
			w.emit(key, value, kind)
		})
	case Sequence:
		eachElement(node, func(i int, raw interface{}) {
			value, kind := w.resolve(raw)
			key := strconv.Itoa(i)
			if nested {
				key = elementKey(parent, i, kind.container() || w.opts.leafIndexes)
			}
			w.emit(key, value, kind)
		})
	}
}

// emit writes the entries of a resolved value at key, recursing into
// containers.
func (w *walker) emit(key string, value interface{}, kind Kind) {
	switch kind {
	case Mapping, Sequence:
		w.walk(value, kind, key, true)
	case FileListKind:
		for j, blob := range value.(FileList) {
			if blob == nil {
				continue
			}
			w.dst.AppendBlob(indexKey(key, j), blob, blob.Name)
		}
	case BlobKind:
		blob := value.(*Blob)
		w.dst.AppendBlob(key, blob, blob.Name)
	case Temporal:
		w.dst.Append(key, formatTime(value.(time.Time)))
	case Null:
		if w.opts.includeNulls {
			w.dst.Append(key, "null")
		}
	case Scalar:
		w.dst.Append(key, scalarText(value))
	}
}
