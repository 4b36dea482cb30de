package pkg

func Filter[T any](items []T, predicate func(T) bool) []T {
	filtered := []T{}
	for _, item := range items {
		if predicate(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ContainsAll reports whether every element of sub appears in set.
func ContainsAll[T comparable](set, sub []T) bool {
	idx := IndexOf(set)
	for _, item := range sub {
		if !idx.Has(item) {
			return false
		}
	}
	return true
}

// Concat returns a new slice holding a followed by b.
func Concat[T any](a, b []T) []T {
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}
