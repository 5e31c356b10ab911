// Package record holds the positional values handed to struct constructors.
package record

// Values is an ordered set of decoded field values.
// Each slot is keyed by the identity of the field descriptor that produced it.
type Values struct {
	keys []any
	vals []any
}

// Make allocates Values with n slots.
func Make(n int) Values {
	return Values{
		keys: make([]any, n),
		vals: make([]any, n),
	}
}

// Set stores x at slot i under key.
func (v Values) Set(i int, key, x any) {
	v.keys[i] = key
	v.vals[i] = x
}

// Len returns the number of slots.
func (v Values) Len() int {
	return len(v.vals)
}

// At returns the value at slot i, or nil when i is out of range.
func (v Values) At(i int) any {
	if i < 0 || i >= len(v.vals) {
		return nil
	}
	return v.vals[i]
}

// Lookup returns the value stored under key.
func (v Values) Lookup(key any) (any, bool) {
	for i, k := range v.keys {
		if k == key {
			return v.vals[i], true
		}
	}
	return nil, false
}
