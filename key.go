package jsonform

import (
	"strconv"
	"strings"
)

// fieldKey returns the key of the field name inside the object at parent.
func fieldKey(parent, name string, dot bool) string {
	var b strings.Builder
	b.Grow(len(parent) + len(name) + 2)
	b.WriteString(parent)
	if dot {
		b.WriteByte('.')
		b.WriteString(name)
	} else {
		b.WriteByte('[')
		b.WriteString(name)
		b.WriteByte(']')
	}
	return b.String()
}

// elementKey returns the key of element i of the sequence at parent. When
// explicit is false the index is dropped and the key ends in "[]".
func elementKey(parent string, i int, explicit bool) string {
	if !explicit {
		return parent + "[]"
	}
	return indexKey(parent, i)
}

func indexKey(parent string, i int) string {
	return parent + "[" + strconv.Itoa(i) + "]"
}
