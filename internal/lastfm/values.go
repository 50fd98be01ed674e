package lastfm

// String returns a pointer to s, for optional entity attributes.
func String(s string) *string {
	return &s
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Value dereferences p, reporting whether it was set.
func Value[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
