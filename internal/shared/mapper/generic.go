// Package mapper has small generic helpers for entity to DTO conversion.
package mapper

// MapSlice applies mapFunc to each element. The result is never nil so an
// empty list encodes as [] rather than null.
func MapSlice[T any, R any](items []T, mapFunc func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, mapFunc(item))
	}
	return result
}
