package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampProgress(t *testing.T) {
	assert.Equal(t, 0.0, ClampProgress(-10))
	assert.Equal(t, 0.0, ClampProgress(0))
	assert.Equal(t, 42.5, ClampProgress(42.5))
	assert.Equal(t, 100.0, ClampProgress(100))
	assert.Equal(t, 100.0, ClampProgress(250))
}
