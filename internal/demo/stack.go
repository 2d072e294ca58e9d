// Package demo holds a small stack and the self-registering tests that
// exercise it; cmd/microtest links it in as a sample test binary.
package demo

import "errors"

// ErrEmpty is returned when popping or peeking an empty stack.
var ErrEmpty = errors.New("stack is empty")

// Stack is a LIFO of strings.
type Stack struct {
	items []string
}

// Push adds v on top.
func (s *Stack) Push(v string) {
	s.items = append(s.items, v)
}

// Pop removes and returns the top item.
func (s *Stack) Pop() (string, error) {
	v, err := s.Peek()
	if err != nil {
		return "", err
	}
	s.items = s.items[:len(s.items)-1]
	return v, nil
}

// Peek returns the top item without removing it.
func (s *Stack) Peek() (string, error) {
	if len(s.items) == 0 {
		return "", ErrEmpty
	}
	return s.items[len(s.items)-1], nil
}

// Len returns the number of items.
func (s *Stack) Len() int {
	return len(s.items)
}
