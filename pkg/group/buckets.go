package group

// buckets collects values under keys and remembers the order in which keys
// were first seen. Every variant of the engine is built on it.
type buckets[K comparable, V any] struct {
	keys  []K
	items map[K][]V
}

func newBuckets[K comparable, V any]() *buckets[K, V] {
	return &buckets[K, V]{items: make(map[K][]V)}
}

func (b *buckets[K, V]) add(k K, v V) {
	if _, ok := b.items[k]; !ok {
		b.keys = append(b.keys, k)
	}
	b.items[k] = append(b.items[k], v)
}

func (b *buckets[K, V]) get(k K) []V { return b.items[k] }

func (b *buckets[K, V]) has(k K) bool {
	_, ok := b.items[k]
	return ok
}

// order returns keys in first-seen order. The slice is owned by b.
func (b *buckets[K, V]) order() []K { return b.keys }
