package utils

// IndexOf returns the position of the first item equal to item, or -1.
func IndexOf[T comparable](items []T, item T) int {
	for i, v := range items {
		if v == item {
			return i
		}
	}
	return -1
}

func Contains[T comparable](items []T, item T) bool {
	return IndexOf(items, item) >= 0
}
