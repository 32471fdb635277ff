package jsonform_test

import (
	"testing"

	"github.com/tomasbasham/jsonform"
)

type Person struct {
	Name     string   `form:"name"`
	Age      int      `form:"age,omitempty"`
	Pronouns []string `form:"pronouns"`
}

type Profile struct {
	ID       int            `json:"id"`
	Email    string         `json:"email,omitempty"`
	Avatar   *jsonform.Blob `form:"avatar"`
	Address  Address        `form:"address"`
	Tags     []string       `form:"tags,omitempty"`
	Private  string         `form:"-"`
	Ignored  string         `form:",ignore"`
	NoTag    string
	internal string
}

type Address struct {
	Street string `form:"street"`
	City   string `form:"city"`
}

// entry is a comparable view of a form entry. For blob entries Value holds
// the blob content and File its filename.
type entry struct {
	Key   string
	Value string
	File  string
}

func entriesOf(t *testing.T, d jsonform.Destination) []entry {
	t.Helper()

	f, ok := d.(*jsonform.Form)
	if !ok {
		t.Fatalf("expected *jsonform.Form destination, got %T", d)
	}
	return formEntries(f)
}

func formEntries(f *jsonform.Form) []entry {
	var out []entry
	for _, e := range f.Entries() {
		if e.IsBlob() {
			out = append(out, entry{Key: e.Key, Value: string(e.Blob.Data), File: e.Filename})
			continue
		}
		out = append(out, entry{Key: e.Key, Value: e.Value})
	}
	return out
}

func textFile(contents, name string) *jsonform.Blob {
	return jsonform.NewFile([]byte(contents), name, "text/plain")
}

func intPointer(i int) *int {
	return &i
}

func boolPointer(b bool) *bool {
	return &b
}
