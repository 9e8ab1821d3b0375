package stack

import (
	"slices"
	"testing"
)

func TestStack_PushAndPop(t *testing.T) {
	s := New[int]()

	s.Push(1)
	s.Push(2, 3)

	// LIFO order
	for _, want := range []int{3, 2, 1} {
		val, ok := s.Pop()
		if !ok || val != want {
			t.Errorf("Pop() = %d, %t, want %d, true", val, ok, want)
		}
	}

	val, ok := s.Pop()
	if ok || val != 0 {
		t.Errorf("Pop() from empty stack = %d, %t, want 0, false", val, ok)
	}
}

func TestStack_DrainReplaysInReverse(t *testing.T) {
	s := New[string]()
	s.Push("root", "child", "grandchild")

	got := slices.Collect(s.Drain())
	want := []string{"grandchild", "child", "root"}
	if !slices.Equal(got, want) {
		t.Errorf("Drain() = %v, want %v", got, want)
	}

	if val, ok := s.Pop(); ok {
		t.Errorf("Pop() after Drain() = %q, want empty stack", val)
	}
}

func TestStack_DrainStopsEarly(t *testing.T) {
	s := New[int]()
	s.Push(1, 2, 3)

	for item := range s.Drain() {
		if item == 3 {
			break
		}
	}

	rest := slices.Collect(s.Drain())
	if !slices.Equal(rest, []int{2, 1}) {
		t.Errorf("Drain() after early break = %v, want [2 1]", rest)
	}
}

func TestStack_GenericTypes(t *testing.T) {
	type record struct {
		key   string
		depth int
	}

	s := New[record]()
	s.Push(record{key: "foo", depth: 1}, record{key: "foo[0]", depth: 2})

	top, ok := s.Pop()
	if !ok || top.key != "foo[0]" || top.depth != 2 {
		t.Errorf("Pop() = %+v, %t", top, ok)
	}
}
