package contribution

type CreateContributionDTO struct {
	UserID         *uint    `json:"userId"` // staff may log on someone's behalf
	Type           string   `json:"type"`
	Hours          *float64 `json:"hours"`
	Amount         *float64 `json:"amount"`
	OtherPoints    *float64 `json:"otherPoints"`
	Date           string   `json:"date"` // YYYY-MM-DD
	DeferToEquity  *bool    `json:"deferToEquity"`
	ConversionRate *float64 `json:"conversionRate"`
	Notes          string   `json:"notes"`
	AttachmentURL  string   `json:"attachmentUrl"`
}

type UpdateContributionDTO struct {
	Type           *string  `json:"type"`
	Hours          *float64 `json:"hours"`
	Amount         *float64 `json:"amount"`
	OtherPoints    *float64 `json:"otherPoints"`
	Date           *string  `json:"date"`
	DeferToEquity  *bool    `json:"deferToEquity"`
	ConversionRate *float64 `json:"conversionRate"`
	Notes          *string  `json:"notes"`
	AttachmentURL  *string  `json:"attachmentUrl"`
}
