package utils

// FilterSlice returns a new slice containing the elements of s for which keep returns true, the result is
// never nil.
func FilterSlice[T any](s []T, keep func(e T) bool) []T {
	result := make([]T, 0, len(s))
	for _, e := range s {
		if keep(e) {
			result = append(result, e)
		}
	}
	return result
}

// CountIf returns the number of elements of s for which predicate returns true.
func CountIf[T any](s []T, predicate func(e T) bool) int {
	count := 0
	for _, e := range s {
		if predicate(e) {
			count++
		}
	}
	return count
}
