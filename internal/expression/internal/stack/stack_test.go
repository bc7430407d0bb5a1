package stack_test

import (
	"testing"

	"github.com/artuross/expression-calculator/internal/expression/internal/stack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var s stack.Stack[int]

		assert.True(t, s.Empty())
		assert.Zero(t, s.Len())

		value, ok := s.Peek()
		assert.False(t, ok)
		assert.Zero(t, value)

		value, ok = s.Pop()
		assert.False(t, ok)
		assert.Zero(t, value)
	})

	t.Run("push & pop", func(t *testing.T) {
		s := stack.New[string](2)

		s.Push("a")
		s.Push("b")
		s.Push("c")
		require.Equal(t, 3, s.Len())

		top, ok := s.Peek()
		require.True(t, ok)
		assert.Equal(t, "c", top)
		assert.Equal(t, 3, s.Len(), "peek must not remove")

		for _, expected := range []string{"c", "b", "a"} {
			value, ok := s.Pop()
			require.True(t, ok)
			assert.Equal(t, expected, value)
		}

		assert.True(t, s.Empty())

		_, ok = s.Pop()
		assert.False(t, ok)
	})
}
