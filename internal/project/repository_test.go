package project_test

import (
	"testing"
	"time"

	"github.com/Abenka/equity-api/internal/apperrors"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, user.Migrate(db))
	assert.NoError(t, project.Migrate(db))
	return db
}

func TestFindByIDNotFound(t *testing.T) {
	repo := project.NewRepository(setupDB(t))

	_, err := repo.FindByID(99)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestFindForUser(t *testing.T) {
	db := setupDB(t)
	repo := project.NewRepository(db)

	owned := project.Project{Name: "Owned", OwnerID: 1, StartDate: time.Now()}
	joined := project.Project{Name: "Joined", OwnerID: 2, StartDate: time.Now()}
	other := project.Project{Name: "Other", OwnerID: 3, StartDate: time.Now()}
	for _, p := range []*project.Project{&owned, &joined, &other} {
		assert.NoError(t, repo.Create(p))
	}
	assert.NoError(t, repo.AddMember(joined.ID, 1))

	projects, err := repo.FindForUser(1)
	assert.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestAddMemberIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := project.NewRepository(db)

	p := project.Project{Name: "Solar", OwnerID: 1, StartDate: time.Now()}
	assert.NoError(t, repo.Create(&p))

	assert.NoError(t, repo.AddMember(p.ID, 5))
	assert.NoError(t, repo.AddMember(p.ID, 5))

	var count int64
	assert.NoError(t, db.Model(&project.ProjectMember{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCanAccess(t *testing.T) {
	p := project.Project{
		OwnerID: 1,
		Members: []project.ProjectMember{{UserID: 2}},
	}

	assert.True(t, p.CanAccess(1, user.RoleFounder))  // owner
	assert.True(t, p.CanAccess(2, user.RoleFounder))  // member
	assert.False(t, p.CanAccess(3, user.RoleFounder)) // stranger
	assert.True(t, p.CanAccess(3, user.RoleAdmin))
	assert.True(t, p.CanAccess(3, user.RoleAccountant))
}
