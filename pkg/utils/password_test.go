package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("supersecreta")
	require.NoError(t, err)
	assert.NotEqual(t, "supersecreta", hash)

	assert.True(t, CheckPasswordHash("supersecreta", hash))
	assert.False(t, CheckPasswordHash("otracontraseña", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("corta"))
	assert.NoError(t, ValidatePassword("suficiente"))
}
