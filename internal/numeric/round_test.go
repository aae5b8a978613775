package numeric_test

import (
	"testing"

	"github.com/Abenka/equity-api/internal/numeric"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.14, numeric.Round2(3.14159))
	assert.Equal(t, 2.72, numeric.Round2(2.718))
	assert.Equal(t, 0.13, numeric.Round2(0.125))
	assert.Equal(t, -0.13, numeric.Round2(-0.125))
	assert.Equal(t, 0.0, numeric.Round2(0))
}

func TestRound4(t *testing.T) {
	assert.Equal(t, 33.3333, numeric.Round4(100.0/3))
	assert.Equal(t, 66.6667, numeric.Round4(200.0/3))
	assert.Equal(t, 0.0001, numeric.Round4(0.00005))
}
