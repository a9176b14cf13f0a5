package util

// FalseIfNil dereferences b, defaulting to false.
func FalseIfNil(b *bool) bool {
	if b == nil {
		return false
	}

	return *b
}

// TrueIfNil dereferences b, defaulting to true.
func TrueIfNil(b *bool) bool {
	if b == nil {
		return true
	}

	return *b
}
