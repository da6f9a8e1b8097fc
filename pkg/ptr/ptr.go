// Package ptr вспомогательные функции для работы с указателями
package ptr

// Ptr возвращает указатель на переданное значение
func Ptr[T any](v T) *T {
	return &v
}

// Value возвращает значение по указателю или нулевое значение для nil
func Value[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
