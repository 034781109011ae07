package utils

// Must panics if err is not nil, it should only be used when an error is not possible.
func Must[T any](obj T, err error) T {
	if err != nil {
		panic(err)
	}
	return obj
}
