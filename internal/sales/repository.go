package sales

import (
	"errors"

	"github.com/Abenka/equity-api/internal/apperrors"
	"gorm.io/gorm"
)

// Repository wraps database access for sales entries.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create persists the entry and its allocations in one transaction.
func (r *Repository) Create(entry *SalesEntry) error {
	return r.DB.Create(entry).Error
}

func (r *Repository) FindByID(id uint) (*SalesEntry, error) {
	var entry SalesEntry
	err := r.DB.Preload("Allocations").First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("sales entry not found")
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) FindByProject(projectID uint) ([]SalesEntry, error) {
	var list []SalesEntry
	err := r.DB.Preload("Allocations").
		Where("project_id = ?", projectID).
		Order("entry_date desc, created_at desc").
		Find(&list).Error
	return list, err
}

func (r *Repository) Update(entry *SalesEntry) error {
	return r.DB.Save(entry).Error
}

// ReplaceAllocations swaps the full allocation set of an entry.
func (r *Repository) ReplaceAllocations(entryID uint, allocations []SalesAllocation) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("sales_entry_id = ?", entryID).Delete(&SalesAllocation{}).Error; err != nil {
			return err
		}
		for i := range allocations {
			allocations[i].SalesEntryID = entryID
		}
		return tx.Create(&allocations).Error
	})
}

// Delete removes the entry and cascades to its allocations.
func (r *Repository) Delete(entry *SalesEntry) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sales_entry_id = ?", entry.ID).Delete(&SalesAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(entry).Error
	})
}
