package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Next(t *testing.T) {
	g := New(0)
	assert.Equal(t, 0, g.Next())
	assert.Equal(t, 1, g.Next())
	assert.Equal(t, 2, g.Next())
}

func TestGenerator_NegativeStartClamped(t *testing.T) {
	g := New(-5)
	assert.Equal(t, 0, g.Next())
}

func TestGenerator_Independent(t *testing.T) {
	articles := New(0)
	orders := New(0)
	articles.Next()
	articles.Next()
	assert.Equal(t, 0, orders.Next(), "generators must not share state")
}
