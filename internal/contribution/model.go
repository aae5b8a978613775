package contribution

import (
	"time"

	"gorm.io/gorm"
)

// Contribution types. Exactly one of hours/amount/otherPoints is expected
// per type, but the points formula sums whatever fields are present.
const (
	TypeTime  = "TIME"
	TypeCash  = "CASH"
	TypeOther = "OTHER"
)

// Contribution is one logged unit of work or value. Points are always
// derived by the points engine, never accepted from the client.
type Contribution struct {
	gorm.Model
	UserID         uint      `gorm:"not null;index" json:"userId"`
	ProjectID      uint      `gorm:"not null;index" json:"projectId"`
	Type           string    `gorm:"size:10;not null" json:"type"`
	Hours          *float64  `json:"hours"`
	Amount         *float64  `json:"amount"`
	OtherPoints    *float64  `json:"otherPoints"`
	Points         float64   `gorm:"not null;default:0" json:"points"`
	Date           time.Time `gorm:"not null;index" json:"date"`
	DeferToEquity  bool      `gorm:"not null;default:false" json:"deferToEquity"`
	ConversionRate *float64  `json:"conversionRate"`
	Notes          string    `json:"notes"`
	AttachmentURL  string    `json:"attachmentUrl"`
}

// Migrate creates the contributions table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Contribution{})
}
