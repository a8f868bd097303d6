package slices

// Split splits s into consecutive chunks of at most size elements.
// A non-positive size yields s as a single chunk. The chunks share s's backing array.
func Split[T any](s []T, size int) [][]T {
	if len(s) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{s}
	}

	chunks := make([][]T, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size:size])
		s = s[size:]
	}
	return append(chunks, s)
}
