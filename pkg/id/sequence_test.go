package id

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_Next(t *testing.T) {
	c := NewCounter("order-")

	assert.Equal(t, "order-1", c.Next())
	assert.Equal(t, "order-2", c.Next())
	assert.Equal(t, "order-3", c.Next())
}

func TestCounter_EmptyPrefix(t *testing.T) {
	c := NewCounter("")
	assert.Equal(t, "1", c.Next())
}

func TestUUID_Next(t *testing.T) {
	seq := NewUUID()

	first := seq.Next()
	second := seq.Next()
	assert.NotEqual(t, first, second)

	_, err := uuid.Parse(first)
	require.NoError(t, err)
}
