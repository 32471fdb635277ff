package jsonform_test

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tomasbasham/jsonform"
)

func TestConvert_Destination(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts    []jsonform.Option
		wantErr error
	}{
		"default destination": {},
		"nil destination falls back to the default": {
			opts: []jsonform.Option{jsonform.WithDestination(nil)},
		},
		"explicit form": {
			opts: []jsonform.Option{jsonform.WithDestination(jsonform.NewForm())},
		},
		"explicit destination without a default": {
			opts: []jsonform.Option{
				jsonform.WithDefaultDestination(nil),
				jsonform.WithDestination(jsonform.NewForm()),
			},
		},
		"url values": {
			opts: []jsonform.Option{jsonform.WithDestination(url.Values{})},
		},
		"multipart writer": {
			opts: []jsonform.Option{jsonform.WithDestination(multipart.NewWriter(&bytes.Buffer{}))},
		},
		"no append method": {
			opts:    []jsonform.Option{jsonform.WithDestination(map[string]string{})},
			wantErr: jsonform.ErrInvalidDestination,
		},
		"not a container": {
			opts:    []jsonform.Option{jsonform.WithDestination(42)},
			wantErr: jsonform.ErrInvalidDestination,
		},
		"nil form": {
			opts:    []jsonform.Option{jsonform.WithDestination((*jsonform.Form)(nil))},
			wantErr: jsonform.ErrInvalidDestination,
		},
		"nil url values": {
			opts:    []jsonform.Option{jsonform.WithDestination(url.Values(nil))},
			wantErr: jsonform.ErrInvalidDestination,
		},
		"no default destination": {
			opts:    []jsonform.Option{jsonform.WithDefaultDestination(nil)},
			wantErr: jsonform.ErrNoDestination,
		},
		"default constructor returning nil": {
			opts: []jsonform.Option{jsonform.WithDefaultDestination(func() jsonform.Destination {
				return (*jsonform.Form)(nil)
			})},
			wantErr: jsonform.ErrNoDestination,
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dst, err := jsonform.Convert(jsonform.Object{{"a", 1}}, tt.opts...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if dst == nil {
					t.Fatalf("expected a destination")
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got: %v", tt.wantErr, err)
			}
			if !errors.Is(err, jsonform.ErrConfiguration) {
				t.Errorf("expected %v to match ErrConfiguration", err)
			}
			if dst != nil {
				t.Errorf("expected no destination, got %T", dst)
			}
		})
	}
}

func TestConvert_InvalidDestinationError(t *testing.T) {
	t.Parallel()

	_, err := jsonform.Convert(jsonform.Object{{"a", 1}}, jsonform.WithDestination("form"))

	var target *jsonform.InvalidDestinationError
	if !errors.As(err, &target) {
		t.Fatalf("expected *InvalidDestinationError, got: %v", err)
	}
	if diff := cmp.Diff("string", target.Type.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConvert_InvalidValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input interface{}
		kind  jsonform.Kind
	}{
		"string":    {input: "text", kind: jsonform.Scalar},
		"number":    {input: 42, kind: jsonform.Scalar},
		"blob":      {input: textFile("x", "x.txt"), kind: jsonform.BlobKind},
		"time":      {input: baseTime, kind: jsonform.Temporal},
		"file list": {input: jsonform.FileList{}, kind: jsonform.FileListKind},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			form := jsonform.NewForm()
			_, err := jsonform.Convert(tt.input, jsonform.WithDestination(form))

			var target *jsonform.InvalidValueError
			if !errors.As(err, &target) {
				t.Fatalf("expected *InvalidValueError, got: %v", err)
			}
			if target.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, target.Kind)
			}
			if form.Len() != 0 {
				t.Errorf("expected no entries, got %d", form.Len())
			}
		})
	}
}

func TestConvert_AppendsToExistingEntries(t *testing.T) {
	t.Parallel()

	form := jsonform.NewForm()
	form.Append("x", "old")

	dst, err := jsonform.Convert(jsonform.Object{{"x", "new"}}, jsonform.WithDestination(form))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst != form {
		t.Errorf("expected the supplied form to be returned")
	}

	var got []string
	for _, e := range form.GetAll("x") {
		got = append(got, e.Value)
	}
	if diff := cmp.Diff([]string{"old", "new"}, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConvert_URLValues(t *testing.T) {
	t.Parallel()

	values := url.Values{"x": {"old"}}
	input := jsonform.Object{
		{"x", "new"},
		{"file", textFile("data", "a.txt")},
		{"list", []int{1, 2}},
	}
	if _, err := jsonform.Convert(input, jsonform.WithDestination(values)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := url.Values{
		"x":       {"old", "new"},
		"file":    {"a.txt"},
		"list[0]": {"1"},
		"list[1]": {"2"},
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

// recorder is a user supplied destination.
type recorder struct {
	calls []string
}

func (r *recorder) Append(key, value string) {
	r.calls = append(r.calls, "text "+key+"="+value)
}

func (r *recorder) AppendBlob(key string, blob *jsonform.Blob, filename string) {
	r.calls = append(r.calls, "blob "+key+"="+filename+" ("+blob.Type+")")
}

func TestConvert_CustomDestination(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	input := jsonform.Object{
		{"name", "a"},
		{"doc", jsonform.NewBlob([]byte("x"), "application/pdf")},
		{"photo", jsonform.NewFile([]byte("y"), "me.jpg", "image/jpeg")},
	}
	if _, err := jsonform.Convert(input, jsonform.WithDestination(r)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"text name=a",
		"blob doc= (application/pdf)",
		"blob photo=me.jpg (image/jpeg)",
	}
	if diff := cmp.Diff(want, r.calls); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConvert_MultipartWriteError(t *testing.T) {
	t.Parallel()

	mw := multipart.NewWriter(&failingWriter{n: 1})
	dst, err := jsonform.Convert(jsonform.Object{{"a", "b"}}, jsonform.WithDestination(mw))
	if !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got: %v", err)
	}
	if dst != nil {
		t.Errorf("expected no destination, got %T", dst)
	}
}
