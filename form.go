package jsonform

import (
	"mime/multipart"
	"net/url"
	"strings"
)

// defaultBlobName is the filename given to blobs appended without one,
// matching browser FormData.
const defaultBlobName = "blob"

// Entry is a single entry of a [Form]. Blob is nil for text entries.
type Entry struct {
	Key      string
	Value    string
	Blob     *Blob
	Filename string
}

// IsBlob reports whether e holds binary content.
func (e Entry) IsBlob() bool {
	return e.Blob != nil
}

// text returns the value of e when rendered as url-encoded text.
func (e Entry) text() string {
	if e.IsBlob() {
		return e.Filename
	}
	return e.Value
}

// Form is an ordered multi-map of form entries. It is the default
// [Destination] of [Convert].
//
// A Form is not safe for concurrent use.
type Form struct {
	entries []Entry
}

// NewForm returns an empty [Form].
func NewForm() *Form {
	return &Form{}
}

// Append implements [Destination].
func (f *Form) Append(key, value string) {
	f.entries = append(f.entries, Entry{Key: key, Value: value})
}

// AppendBlob implements [Destination]. An empty filename is stored as
// "blob".
func (f *Form) AppendBlob(key string, blob *Blob, filename string) {
	if filename == "" {
		filename = defaultBlobName
	}
	f.entries = append(f.entries, Entry{Key: key, Blob: blob, Filename: filename})
}

// Len returns the number of entries.
func (f *Form) Len() int {
	return len(f.entries)
}

// Entries returns a copy of the entries in insertion order.
func (f *Form) Entries() []Entry {
	return append([]Entry(nil), f.entries...)
}

// Get returns the first entry stored under key.
func (f *Form) Get(key string) (Entry, bool) {
	for _, e := range f.entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// GetAll returns every entry stored under key in insertion order.
func (f *Form) GetAll(key string) []Entry {
	var out []Entry
	for _, e := range f.entries {
		if e.Key == key {
			out = append(out, e)
		}
	}
	return out
}

// Has reports whether any entry is stored under key.
func (f *Form) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Keys returns the key of every entry in insertion order. Repeated keys
// appear once per entry.
func (f *Form) Keys() []string {
	keys := make([]string, len(f.entries))
	for i, e := range f.entries {
		keys[i] = e.Key
	}
	return keys
}

// Values returns the entries as [url.Values]. Blob entries are rendered as
// their filename.
func (f *Form) Values() url.Values {
	values := url.Values{}
	for _, e := range f.entries {
		values.Add(e.Key, e.text())
	}
	return values
}

// Encode renders the entries as application/x-www-form-urlencoded text.
// Unlike [url.Values.Encode] the entries keep their insertion order.
func (f *Form) Encode() string {
	var b strings.Builder
	for i, e := range f.entries {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(e.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(e.text()))
	}
	return b.String()
}

// WriteMultipart writes every entry as a part of w. It does not close w.
func (f *Form) WriteMultipart(w *multipart.Writer) error {
	for _, e := range f.entries {
		var err error
		if e.IsBlob() {
			err = writeBlobPart(w, e.Key, e.Blob, e.Filename)
		} else {
			err = w.WriteField(e.Key, e.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
