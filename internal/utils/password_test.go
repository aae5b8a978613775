package utils_test

import (
	"testing"

	"github.com/Abenka/equity-api/internal/utils"
	"github.com/stretchr/testify/assert"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := utils.HashPassword("s3cret!")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, utils.CheckPassword(hash, "s3cret!"))
	assert.False(t, utils.CheckPassword(hash, "wrong"))
}
