// Package mapper holds small generic helpers for converting between layers.
package mapper

// MapSlice applies fn to each element. The result is never nil, so empty
// lists serialize as [] rather than null.
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// TryMapSlice is MapSlice for conversions that can fail; it stops at the
// first error.
func TryMapSlice[T any, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	out := make([]R, 0, len(items))
	for _, item := range items {
		r, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// Unique drops repeated values, keeping first-seen order.
func Unique[T comparable](items []T) []T {
	seen := make(map[T]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, v := range items {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// KeyBy indexes items by key. Later items win on collisions.
func KeyBy[K comparable, V any](items []V, key func(V) K) map[K]V {
	out := make(map[K]V, len(items))
	for _, v := range items {
		out[key(v)] = v
	}
	return out
}
