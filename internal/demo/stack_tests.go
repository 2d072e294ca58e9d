package demo

import (
	"microtest"
	"microtest/assert"
)

var _ = microtest.Test("new stack is empty", func() {
	var s Stack
	assert.Equal(s.Len(), 0)
	_, err := s.Peek()
	assert.NotNil(err)
})

var _ = microtest.Test("push then pop returns items in reverse", func() {
	var s Stack
	s.Push("a")
	s.Push("b")

	top, err := s.Pop()
	assert.Nil(err)
	assert.StringEqual(top, "b")

	top, err = s.Pop()
	assert.Nil(err)
	assert.StringEqual(top, "a")
	assert.True(s.Len() == 0)
})

func init() {
	microtest.Test("pop on empty stack reports ErrEmpty", func() {
		var s Stack
		_, err := s.Pop()
		assert.Equal(err, ErrEmpty)
	})

	microtest.Test("peek does not remove", func() {
		var s Stack
		s.Push("x")
		_, _ = s.Peek()
		assert.False(s.Len() != 1)
	})
}
