// Package jsonform flattens nested JSON-like values into multipart form data.
//
// Objects, maps, structs and slices are walked recursively and written as
// path-keyed entries ("user[address][city]" or "user.address.city") into an
// append-only multi-map such as [Form], [url.Values] or a
// [mime/multipart.Writer]. Blobs, file lists and [time.Time] values are
// emitted as terminal entries so a single multipart request can carry both
// structured data and files.
package jsonform
