package jsonform

import "reflect"

// Option configures a conversion. Each option overrides a single setting and
// leaves the others at their defaults.
type Option func(*options)

type options struct {
	destination    interface{}
	newDestination func() Destination
	leafIndexes    bool
	includeNulls   bool
	dot            bool
	mapping        func(interface{}) interface{}
}

func newOptions(opts []Option) *options {
	o := &options{
		newDestination: func() Destination { return NewForm() },
		leafIndexes:    true,
		mapping:        DefaultMapping,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.mapping == nil {
		o.mapping = identity
	}
	return o
}

// WithDestination sets the container entries are appended to. d must
// implement [Destination] or be a [url.Values] or [*multipart.Writer]. Entries
// already in d are left untouched. A nil d means no destination was given.
func WithDestination(d interface{}) Option {
	return func(o *options) {
		o.destination = d
	}
}

// WithDefaultDestination sets the constructor used when no destination is
// given. It defaults to [NewForm]. A nil fn leaves conversions without a
// default, so they fail with [ErrNoDestination] unless [WithDestination] is
// also given.
func WithDefaultDestination(fn func() Destination) Option {
	return func(o *options) {
		o.newDestination = fn
	}
}

// WithLeafArrayIndexes controls whether primitive array elements are keyed
// with their index ("a[0]") or with empty brackets ("a[]"). Elements that
// are themselves objects or arrays always keep their index. Defaults to true.
func WithLeafArrayIndexes(show bool) Option {
	return func(o *options) {
		o.leafIndexes = show
	}
}

// WithNullValues controls whether null values produce an entry with the
// text "null". They are skipped by default. [Undefined] values are always
// skipped.
func WithNullValues(include bool) Option {
	return func(o *options) {
		o.includeNulls = include
	}
}

// WithDotSeparator joins object keys with dots ("a.b") instead of brackets
// ("a[b]"). Array indexes always use brackets.
func WithDotSeparator(dot bool) Option {
	return func(o *options) {
		o.dot = dot
	}
}

// WithMapping replaces the function applied to every value before it is
// classified. The value it returns decides both how the value is traversed
// and what is emitted. A nil fn disables mapping altogether.
//
// Panics raised by fn are not recovered.
func WithMapping(fn func(interface{}) interface{}) Option {
	return func(o *options) {
		o.mapping = fn
	}
}

// DefaultMapping converts booleans, including named bool types, to "1" and
// "0" and returns any other value unchanged.
func DefaultMapping(v interface{}) interface{} {
	b, ok := v.(bool)
	if !ok {
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Bool {
			return v
		}
		b = rv.Bool()
	}
	if b {
		return "1"
	}
	return "0"
}

func identity(v interface{}) interface{} {
	return v
}

// resolve returns the destination of the conversion, constructing the
// default one if none was given.
func (o *options) resolve() (Destination, error) {
	if o.destination != nil {
		return asDestination(o.destination)
	}
	if o.newDestination == nil {
		return nil, ErrNoDestination
	}
	d := o.newDestination()
	if d == nil || isNil(d) {
		return nil, ErrNoDestination
	}
	return d, nil
}
