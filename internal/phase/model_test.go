package phase_test

import (
	"testing"

	"github.com/Abenka/equity-api/internal/phase"
	"github.com/stretchr/testify/assert"
)

func TestCurrent(t *testing.T) {
	assert.Nil(t, phase.Current(nil))
	assert.Nil(t, phase.Current([]phase.CompanyPhase{}))

	phases := []phase.CompanyPhase{
		{Name: "Sprout", SortOrder: 1},
		{Name: "Survival", SortOrder: 2},
	}
	current := phase.Current(phases)
	assert.NotNil(t, current)
	assert.Equal(t, "Sprout", current.Name)
}
