package weights_test

import (
	"testing"

	"github.com/Abenka/equity-api/internal/weights"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, weights.Migrate(db))
	return db
}

func TestResolveFallsBackToDefaults(t *testing.T) {
	repo := weights.NewRepository(setupDB(t))

	w, err := repo.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, weights.Weights{Time: 1, Cash: 0.001, Other: 1}, w)

	pid := uint(7)
	w, err = repo.Resolve(&pid)
	assert.NoError(t, err)
	assert.Equal(t, weights.Defaults, w)
}

func TestSetAndResolveCompanyScope(t *testing.T) {
	repo := weights.NewRepository(setupDB(t))

	_, err := repo.Set(nil, 2, 0.002, 1.5)
	assert.NoError(t, err)

	w, err := repo.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, weights.Weights{Time: 2, Cash: 0.002, Other: 1.5}, w)
}

func TestSetUpsertsLastWriteWins(t *testing.T) {
	db := setupDB(t)
	repo := weights.NewRepository(db)

	_, err := repo.Set(nil, 2, 0.002, 1.5)
	assert.NoError(t, err)
	_, err = repo.Set(nil, 3, 0.005, 2)
	assert.NoError(t, err)

	var count int64
	assert.NoError(t, db.Model(&weights.WeightsConfig{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	w, err := repo.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, weights.Weights{Time: 3, Cash: 0.005, Other: 2}, w)
}

func TestProjectScopeIsIndependent(t *testing.T) {
	repo := weights.NewRepository(setupDB(t))
	pid := uint(1)

	_, err := repo.Set(&pid, 5, 0.01, 0)
	assert.NoError(t, err)

	w, err := repo.Resolve(&pid)
	assert.NoError(t, err)
	assert.Equal(t, weights.Weights{Time: 5, Cash: 0.01, Other: 0}, w)

	// the company scope stays on defaults
	w, err = repo.Resolve(nil)
	assert.NoError(t, err)
	assert.Equal(t, weights.Defaults, w)
}
