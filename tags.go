package jsonform

import (
	"reflect"
	"strings"
	"sync"
)

// cache of the emitted fields of each struct type, keyed by [reflect.Type].
// The value is a []field in declaration order.
//
// This cache is safe for concurrent use.
var fieldCache sync.Map

// field is a struct field that takes part in flattening.
type field struct {
	Name  string
	Index int
	Omit  bool
}

// fields returns the emitted fields of the struct type t. Names come from the
// "form" tag, then the "json" tag, then the Go field name. Unexported fields
// and fields tagged "-" are skipped.
func fields(t reflect.Type) []field {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]field)
	}

	fs := make([]field, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tag, ok := sf.Tag.Lookup("form")
		if !ok {
			tag = sf.Tag.Get("json")
		}
		name, omit, skip := parseTag(tag)
		if skip {
			continue
		}
		if name == "" {
			name = sf.Name
		}
		fs = append(fs, field{Name: name, Index: i, Omit: omit})
	}

	cached, _ := fieldCache.LoadOrStore(t, fs)
	return cached.([]field)
}

// parseTag splits a struct tag of the form "name,opt1,opt2". The options
// "omitempty" and "ignore" are recognised; a bare "-" skips the field.
func parseTag(tag string) (name string, omit, skip bool) {
	tag = strings.TrimSpace(tag)
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	name = strings.TrimSpace(name)
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		switch strings.TrimSpace(opt) {
		case "omitempty":
			omit = true
		case "ignore":
			skip = true
		}
	}
	return name, omit, skip
}
