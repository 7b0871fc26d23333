// Package ptr holds small helpers for the optional fields of radio records.
package ptr

// To creates a pointer to the given value.
func To[T any](v T) *T {
	return &v
}

// Int creates a pointer to the given int value.
func Int(i int) *int {
	return &i
}

// Value returns the value p points to, or the zero value when p is nil.
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Equal reports whether two optional values are both nil or point to equal values.
func Equal[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
