package lastfm

import (
	"hash/fnv"
	"slices"
	"strings"
)

// Keyed is implemented by every entity. Key returns the identity key, built
// from the identity attributes only, or ErrMissingIdentity.
type Keyed interface {
	Key() (string, error)
}

// JoinKey builds a composite identity key. The NUL separator sorts below
// every other byte, so comparing joined keys orders by the parts in turn.
func JoinKey(parts ...string) string {
	return strings.Join(parts, "\x00")
}

// Hash returns a deterministic 64-bit FNV-1a hash of k's identity key.
func Hash(k Keyed) (uint64, error) {
	key, err := k.Key()
	if err != nil {
		return 0, err
	}
	h := fnv.New64a()
	h.Write([]byte(key))
	return h.Sum64(), nil
}

// Equal reports whether a and b have the same identity key.
func Equal[T Keyed](a, b T) (bool, error) {
	ka, kb, err := keys(a, b)
	if err != nil {
		return false, err
	}
	return ka == kb, nil
}

// Compare orders a and b by the natural (byte-wise, case-sensitive) order of
// their identity keys. It returns -1, 0 or +1.
func Compare[T Keyed](a, b T) (int, error) {
	ka, kb, err := keys(a, b)
	if err != nil {
		return 0, err
	}
	return strings.Compare(ka, kb), nil
}

// Sort sorts items by identity key. The slice is left untouched if any item
// lacks its identity.
func Sort[T Keyed](items []T) error {
	keyed := make(map[int]string, len(items))
	for i, it := range items {
		k, err := it.Key()
		if err != nil {
			return err
		}
		keyed[i] = k
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return strings.Compare(keyed[a], keyed[b])
	})
	sorted := make([]T, len(items))
	for i, j := range idx {
		sorted[i] = items[j]
	}
	copy(items, sorted)
	return nil
}

// Index maps items by identity key. Later duplicates do not replace the
// first item with the same key.
func Index[T Keyed](items []T) (map[string]T, error) {
	m := make(map[string]T, len(items))
	for _, it := range items {
		k, err := it.Key()
		if err != nil {
			return nil, err
		}
		if _, ok := m[k]; !ok {
			m[k] = it
		}
	}
	return m, nil
}

func keys[T Keyed](a, b T) (string, string, error) {
	ka, err := a.Key()
	if err != nil {
		return "", "", err
	}
	kb, err := b.Key()
	if err != nil {
		return "", "", err
	}
	return ka, kb, nil
}
