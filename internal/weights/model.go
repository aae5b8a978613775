package weights

import "gorm.io/gorm"

const (
	ScopeCompany = "company"
	ScopeProject = "project"
)

// WeightsConfig stores the scoring weights for one scope. At most one row
// per (scope, projectId); absence means the hardcoded defaults apply.
type WeightsConfig struct {
	gorm.Model
	Scope       string  `gorm:"size:20;not null;uniqueIndex:idx_scope_project" json:"scope"`
	ProjectID   *uint   `gorm:"uniqueIndex:idx_scope_project" json:"projectId"`
	TimeWeight  float64 `gorm:"not null;default:1" json:"timeWeight"`
	CashWeight  float64 `gorm:"not null;default:0.001" json:"cashWeight"`
	OtherWeight float64 `gorm:"not null;default:1" json:"otherWeight"`
}

// Weights is the resolved set used by the points engine.
type Weights struct {
	Time  float64 `json:"timeWeight"`
	Cash  float64 `json:"cashWeight"`
	Other float64 `json:"otherWeight"`
}

// Defaults applied when no config row exists for the scope.
// cashWeight 0.001 is canonical (1 point per 1000 of cash).
var Defaults = Weights{Time: 1, Cash: 0.001, Other: 1}

// Migrate creates the weights table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&WeightsConfig{})
}
