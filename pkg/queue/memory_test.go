package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryQueue(t *testing.T) {
	q := NewInMemoryQueue(2)

	require.NoError(t, q.Enqueue("a"))
	require.NoError(t, q.Enqueue("b"))
	assert.Error(t, q.Enqueue("c"))
	assert.Equal(t, 2, q.Size())

	item, err := q.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, "a", item)

	assert.Equal(t, []interface{}{"b"}, q.ReadAllMessages())
	assert.Equal(t, 0, q.Size())

	_, err = q.Dequeue()
	assert.Error(t, err)
}

func TestInMemoryQueue_Clear(t *testing.T) {
	q := NewInMemoryQueue(4)
	require.NoError(t, q.Enqueue(1))
	require.NoError(t, q.Enqueue(2))
	require.NoError(t, q.ClearQueue())
	assert.Equal(t, 0, q.Size())
}
