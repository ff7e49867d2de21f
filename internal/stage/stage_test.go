package stage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkerPredicates(t *testing.T) {
	dispatch := New(KindRoundRobinDispatch, "d")
	placeholder := New(KindQueuePlaceholder, "q")
	plain := New("map", "m")

	assert.True(t, dispatch.IsDispatcher())
	assert.False(t, dispatch.IsPlaceholder())

	assert.True(t, placeholder.IsPlaceholder())
	assert.False(t, placeholder.IsDispatcher())

	assert.False(t, plain.IsDispatcher())
	assert.False(t, plain.IsPlaceholder())
}

func TestString(t *testing.T) {
	s := New("map", "double")
	assert.Equal(t, "map:double", s.String())
}

func TestUniqueInputs(t *testing.T) {
	a := New("source", "a")
	b := New("source", "b")

	t.Run("no duplicates passes through", func(t *testing.T) {
		s := New("zip", "z", a, b)
		assert.Equal(t, []*Stage{a, b}, s.UniqueInputs())
	})

	t.Run("duplicate references collapse to one edge", func(t *testing.T) {
		s := New("zip", "z", a, a, b, a)
		assert.Equal(t, []*Stage{a, b}, s.UniqueInputs())
	})

	t.Run("identity not structure decides duplication", func(t *testing.T) {
		a2 := New("source", "a") // same fields, distinct object
		s := New("zip", "z", a, a2)
		assert.Len(t, s.UniqueInputs(), 2)
	})

	t.Run("empty inputs", func(t *testing.T) {
		s := New("source", "s")
		assert.Empty(t, s.UniqueInputs())
	})
}
