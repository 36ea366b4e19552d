package codec

import "iter"

// Array is the ordered-sequence value kind. It is a
// plain slice since Go slices already preserve insertion order; no wrapper
// type is needed the way Object needs one for map-like access.
type Array []any

// Object is the ordered-mapping value kind. Plain Go
// maps cannot serve this role: map iteration order is unspecified, which
// would violate "Object key order is preserved on encode and on decode" and
// make repeated encodes of the same logical document non-deterministic. An
// Object keeps keys and values in two parallel slices instead.
type Object struct {
	keys   []string
	values []any
}

// NewObject creates an empty Object, optionally pre-sized for n fields.
func NewObject(n int) *Object {
	return &Object{
		keys:   make([]string, 0, n),
		values: make([]any, 0, n),
	}
}

// Set appends (key, value) to the object, or overwrites the value in place
// if key was already set, preserving its original position.
func (o *Object) Set(key string, value any) *Object {
	for i, k := range o.keys {
		if k == key {
			o.values[i] = value
			return o
		}
	}

	o.keys = append(o.keys, key)
	o.values = append(o.values, value)

	return o
}

// Get returns the value stored under key, and whether it was present.
func (o *Object) Get(key string) (any, bool) {
	for i, k := range o.keys {
		if k == key {
			return o.values[i], true
		}
	}

	return nil, false
}

// Len returns the number of fields in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// All iterates the object's fields in insertion order.
func (o *Object) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for i, k := range o.keys {
			if !yield(k, o.values[i]) {
				return
			}
		}
	}
}
