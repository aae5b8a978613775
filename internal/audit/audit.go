package audit

import (
	"net/http"

	"github.com/Abenka/equity-api/internal/auth"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditLog records one mutating request.
type AuditLog struct {
	gorm.Model
	RequestID string `gorm:"size:36;not null;index" json:"requestId"`
	UserID    *uint  `gorm:"index" json:"userId"`
	Method    string `gorm:"size:10;not null" json:"method"`
	Path      string `gorm:"not null" json:"path"`
	Status    int    `gorm:"not null" json:"status"`
}

// Migrate creates the audit log table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&AuditLog{})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records every mutating request after it completes. Failures to
// write the log never affect the response.
func Middleware(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet || r.Method == http.MethodOptions || r.Method == http.MethodHead {
				next.ServeHTTP(w, r)
				return
			}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			entry := AuditLog{
				RequestID: uuid.NewString(),
				Method:    r.Method,
				Path:      r.URL.Path,
				Status:    rec.status,
			}
			if id, ok := auth.UserIDFrom(r.Context()); ok {
				entry.UserID = &id
			}
			_ = db.Create(&entry).Error
		})
	}
}
