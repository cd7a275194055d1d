package orm

type Identifiable[ID comparable] interface {
	GetID() ID
}

// Ptrs returns pointers into items, so value slices decoded from JSON can
// back a Collection
func Ptrs[M any](items []M) []*M {
	ptrs := make([]*M, len(items))
	for i := range items {
		ptrs[i] = &items[i]
	}
	return ptrs
}

// GroupBy buckets items under key(item), keeping their relative order
func GroupBy[M any, K comparable](items []M, key func(M) K) map[K][]M {
	groups := make(map[K][]M)
	for _, item := range items {
		k := key(item)
		groups[k] = append(groups[k], item)
	}
	return groups
}
