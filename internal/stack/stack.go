// Package stack provides a minimal array-backed LIFO stack.
package stack

// Stack is a LIFO stack of T.  The zero value is an empty stack ready to use.
type Stack[T any] struct {
	items []T
}

// New returns an empty Stack with room for capacity items.
func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push adds x to the top of the stack.
func (s *Stack[T]) Push(x T) {
	s.items = append(s.items, x)
}

// Pop removes and returns the top item.  ok is false if the stack is empty.
func (s *Stack[T]) Pop() (x T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return x, false
	}
	x = s.items[n-1]
	var zero T
	s.items[n-1] = zero
	s.items = s.items[:n-1]
	return x, true
}

// Peek returns the top item without removing it.
func (s *Stack[T]) Peek() (x T, ok bool) {
	n := len(s.items)
	if n == 0 {
		return x, false
	}
	return s.items[n-1], true
}

// Size returns the number of items on the stack.
func (s *Stack[T]) Size() int {
	return len(s.items)
}

// Reset empties the stack, keeping its storage.
func (s *Stack[T]) Reset() {
	var zero T
	for i := range s.items {
		s.items[i] = zero
	}
	s.items = s.items[:0]
}
