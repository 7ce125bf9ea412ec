package ledger

import "strings"

// keySeparator delimits the namespace and attributes inside a flattened
// composite key. U+0000 cannot occur in record attributes, so flattened
// keys are unambiguous.
const keySeparator = "\x00"

// Key addresses a single record in the ledger: a namespace plus an ordered
// list of attribute values.
type Key struct {
	Namespace  string
	Attributes []string
}

// NewKey builds a composite key.
func NewKey(namespace string, attributes ...string) Key {
	return Key{Namespace: namespace, Attributes: attributes}
}

// String flattens the key deterministically for storage backends that
// address values by a single string.
func (k Key) String() string {
	parts := make([]string, 0, len(k.Attributes)+1)
	parts = append(parts, k.Namespace)
	parts = append(parts, k.Attributes...)
	return strings.Join(parts, keySeparator)
}

// ParseKey is the inverse of String. Records may reference other records
// by their flattened key; ParseKey turns such a reference back into an
// addressable Key.
func ParseKey(flat string) Key {
	parts := strings.Split(flat, keySeparator)
	if len(parts) == 1 {
		return Key{Namespace: parts[0]}
	}
	return Key{Namespace: parts[0], Attributes: parts[1:]}
}
