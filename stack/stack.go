/*
Package stack provides a typed LIFO stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package stack

// Stack is a last-in-first-out stack of values of type T.
// The zero value is an empty stack ready to use.
// Stacks are not safe for concurrent use.
type Stack[T any] struct {
	items []T
}

// New creates an empty stack with room for capacity items.
func New[T any](capacity int) *Stack[T] {
	return &Stack[T]{items: make([]T, 0, capacity)}
}

// Push puts an item on top of the stack.
func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

// Pop removes the top item from the stack and returns it.
// If the stack is empty, Pop returns the zero value of T and false.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = zero // do not hold on to popped items
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// Peek returns the top item without removing it.
// If the stack is empty, Peek returns the zero value of T and false.
func (s *Stack[T]) Peek() (T, bool) {
	if len(s.items) == 0 {
		var zero T
		return zero, false
	}
	return s.items[len(s.items)-1], true
}

// Len returns the number of items on the stack.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Empty is true if the stack holds no items.
func (s *Stack[T]) Empty() bool {
	return len(s.items) == 0
}
