package pkg

type Map[K comparable, V any] map[K]V

func (m Map[K, V]) Get(key K) V {
	return m[key]
}

func (m Map[K, V]) Set(key K, value V) {
	m[key] = value
}

func (m Map[K, V]) Has(key K) bool {
	_, ok := m[key]
	return ok
}

// Lookup returns the value and whether key is present.
func (m Map[K, V]) Lookup(key K) (V, bool) {
	v, ok := m[key]
	return v, ok
}

// IndexOf maps each item to its first position in items.
func IndexOf[K comparable](items []K) Map[K, int] {
	m := make(Map[K, int], len(items))
	for i, item := range items {
		if !m.Has(item) {
			m.Set(item, i)
		}
	}
	return m
}
