package jsonform

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Kind is the traversal role of a value.
type Kind int

const (
	Absent Kind = iota
	Null
	Scalar
	BlobKind
	Temporal
	FileListKind
	Sequence
	Mapping
)

func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Null:
		return "null"
	case Scalar:
		return "scalar"
	case BlobKind:
		return "blob"
	case Temporal:
		return "temporal"
	case FileListKind:
		return "file list"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// container reports whether values of kind k are traversed rather than
// emitted.
func (k Kind) container() bool {
	return k == Sequence || k == Mapping
}

// primitive reports whether k is a non-composite value. Blobs and times are
// composite even though they are leaves.
func (k Kind) primitive() bool {
	return k == Absent || k == Null || k == Scalar
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// Classify reports the traversal role of v.
func Classify(v interface{}) Kind {
	_, k := normalize(v)
	return k
}

// normalize classifies v and returns it in the canonical form expected by
// the emitters: *Blob for blobs, time.Time for temporal values and the
// dereferenced value for everything else.
func normalize(v interface{}) (interface{}, Kind) {
	switch x := v.(type) {
	case nil:
		return nil, Null
	case undefined:
		return x, Absent
	case *Blob:
		if x == nil {
			return nil, Null
		}
		return x, BlobKind
	case Blob:
		return &x, BlobKind
	case []byte:
		if x == nil {
			return nil, Null
		}
		return &Blob{Data: x}, BlobKind
	case FileList:
		return x, FileListKind
	case time.Time:
		return x, Temporal
	case *time.Time:
		if x == nil {
			return nil, Null
		}
		return *x, Temporal
	case Object:
		return x, Mapping
	case string, bool, json.Number:
		return x, Scalar
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, Null
		}
		if rv.Type().Implements(stringerType) {
			return v, Scalar
		}
		return normalize(rv.Elem().Interface())
	}

	if rv.Type().Implements(stringerType) {
		return v, Scalar
	}

	switch rv.Kind() {
	case reflect.Struct, reflect.Map:
		return v, Mapping
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			if rv.IsNil() {
				return nil, Null
			}
			return &Blob{Data: rv.Bytes()}, BlobKind
		}
		return v, Sequence
	case reflect.Array:
		return v, Sequence
	}
	return v, Scalar
}

// indirect follows pointers so a mapping function sees the pointed-to value.
// Nil pointers become nil. Pointers to blobs and pointers with a String
// method are kept as they are.
func indirect(v interface{}) interface{} {
	if _, ok := v.(*Blob); ok || v == nil {
		return v
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		if rv.Type().Implements(stringerType) {
			break
		}
		if _, ok := rv.Interface().(*Blob); ok {
			break
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// eachField calls fn for every field of a keyed mapping, in iteration order:
// declaration order for Object and structs, sorted key order for maps.
func eachField(v interface{}, fn func(name string, value interface{})) {
	if o, ok := v.(Object); ok {
		for _, f := range o {
			fn(f.Key, f.Value)
		}
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Struct:
		for _, f := range fields(rv.Type()) {
			fv := rv.Field(f.Index)
			if f.Omit && isEmptyValue(fv) {
				continue
			}
			fn(f.Name, fv.Interface())
		}
	case reflect.Map:
		keys := rv.MapKeys()
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = mapKey(k)
		}
		order := make([]int, len(keys))
		for i := range order {
			order[i] = i
		}
		sort.SliceStable(order, func(a, b int) bool {
			return names[order[a]] < names[order[b]]
		})
		for _, i := range order {
			fn(names[i], rv.MapIndex(keys[i]).Interface())
		}
	}
}

// eachElement calls fn for every element of a sequence in index order.
func eachElement(v interface{}, fn func(i int, value interface{})) {
	if s, ok := v.([]interface{}); ok {
		for i, e := range s {
			fn(i, e)
		}
		return
	}

	rv := reflect.ValueOf(v)
	for i := 0; i < rv.Len(); i++ {
		fn(i, rv.Index(i).Interface())
	}
}

// primitiveElements reports whether every element of the sequence v is null
// or a non-composite scalar.
func primitiveElements(v interface{}) bool {
	ok := true
	eachElement(v, func(_ int, e interface{}) {
		if ok {
			_, k := normalize(e)
			ok = k.primitive()
		}
	})
	return ok
}

func mapKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return scalarText(k.Interface())
}

// scalarText renders a scalar the way JavaScript coerces it to a string.
func scalarText(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float(), rv.Type().Bits())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	// Like JavaScript, switch to exponent notation outside [1e-6, 1e21).
	if abs := math.Abs(f); abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	s := strconv.FormatFloat(f, 'e', -1, bits)
	mant, exp, _ := strings.Cut(s, "e")
	sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
	return mant + "e" + sign + digits
}

// timeFormat renders an instant in UTC with millisecond precision.
const timeFormat = "2006-01-02T15:04:05.000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}
