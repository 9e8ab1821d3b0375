// Package stack provides the LIFO used to replay recorded work in reverse
// order of recording.
package stack

import "iter"

type Stack[T any] struct {
	items []T
}

func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// Push records items in order with the last item at the top.
func (s *Stack[T]) Push(items ...T) {
	s.items = append(s.items, items...)
}

func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if len(s.items) == 0 {
		return zero, false
	}

	index := len(s.items) - 1
	item := s.items[index]
	s.items[index] = zero
	s.items = s.items[:index]
	return item, true
}

// Drain pops every item, most recently pushed first. Breaking out of the
// loop leaves the remaining items on the stack.
func (s *Stack[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := s.Pop()
			if !ok || !yield(item) {
				return
			}
		}
	}
}
