package main

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/tomasbasham/jsonform"
)

// attachment is a file given on the command line as key=path.
type attachment struct {
	Key  string
	Path string
}

func parseAttachment(s string) (attachment, error) {
	key, path, ok := strings.Cut(s, "=")
	if !ok || key == "" || path == "" {
		return attachment{}, errors.Errorf("invalid attachment %q, expected key=path", s)
	}
	return attachment{Key: key, Path: path}, nil
}

// loadFile reads path into a blob named after the file. The content type is
// taken from the extension, falling back to sniffing the content.
func loadFile(path string) (*jsonform.Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read attachment %s", path)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return jsonform.NewFile(data, filepath.Base(path), contentType), nil
}

// attachFiles adds the attachments to the top level of root. Attachments
// sharing a key become a file list.
func attachFiles(root interface{}, attachments []attachment) (interface{}, error) {
	if len(attachments) == 0 {
		return root, nil
	}

	var obj jsonform.Object
	switch r := root.(type) {
	case nil:
	case jsonform.Object:
		obj = r
	default:
		return nil, errors.New("attachments require a top-level JSON object")
	}

	var keys []string
	files := map[string]jsonform.FileList{}
	for _, a := range attachments {
		blob, err := loadFile(a.Path)
		if err != nil {
			return nil, err
		}
		if _, ok := files[a.Key]; !ok {
			keys = append(keys, a.Key)
		}
		files[a.Key] = append(files[a.Key], blob)
	}

	for _, key := range keys {
		if list := files[key]; len(list) == 1 {
			obj = append(obj, jsonform.Field{Key: key, Value: list[0]})
		} else {
			obj = append(obj, jsonform.Field{Key: key, Value: list})
		}
	}
	return obj, nil
}
