package sales

type AllocationDTO struct {
	UserID              uint    `json:"userId"`
	ContributionPercent float64 `json:"contributionPercent"`
}

type CreateSalesDTO struct {
	EntryDate   string          `json:"entryDate"` // YYYY-MM-DD
	SalesAmount float64         `json:"salesAmount"`
	PeriodMonth *string         `json:"periodMonth"`
	Notes       string          `json:"notes"`
	Allocations []AllocationDTO `json:"allocations"`
}

type UpdateSalesDTO struct {
	EntryDate   *string         `json:"entryDate"`
	SalesAmount *float64        `json:"salesAmount"`
	PeriodMonth *string         `json:"periodMonth"`
	Notes       *string         `json:"notes"`
	Allocations []AllocationDTO `json:"allocations"`
}
