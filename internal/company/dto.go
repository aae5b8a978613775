package company

import (
	"time"

	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/payout"
	"github.com/Abenka/equity-api/internal/phase"
	"github.com/Abenka/equity-api/internal/revenue"
)

// RecentContribution is one line of a founder's recent activity.
type RecentContribution struct {
	Date        time.Time `json:"date"`
	ProjectName string    `json:"projectName"`
	Type        string    `json:"type"`
	Hours       *float64  `json:"hours"`
	Amount      *float64  `json:"amount"`
	Points      float64   `json:"points"`
}

// MyContribution summarizes the caller's own activity.
type MyContribution struct {
	TotalHours          float64              `json:"totalHours"`
	TotalPoints         float64              `json:"totalPoints"`
	ContributionCount   int                  `json:"contributionCount"`
	RecentContributions []RecentContribution `json:"recentContributions"`
}

// FounderDashboard is the founder view of the company.
type FounderDashboard struct {
	View                 string               `json:"view"`
	Phases               []phase.CompanyPhase `json:"phases"`
	CurrentPhaseName     string               `json:"currentPhaseName"`
	TotalEquityInPool    int                  `json:"totalEquityInPool"`
	TotalCompanyHours    float64              `json:"totalCompanyHours"`
	MyContribution       MyContribution       `json:"myContribution"`
	AllocatedEquityUnits float64              `json:"allocatedEquityUnits"`
	EquityPercent        float64              `json:"equityPercent"`
	NotionalIncome       float64              `json:"notionalIncome"`
	WithdrawnIncome      float64              `json:"withdrawnIncome"`
	Balance              float64              `json:"balance"`
	RevenueSummary       revenue.Summary      `json:"revenueSummary"`
}

// FounderSummary is one user's row in the admin view.
type FounderSummary struct {
	UserID               uint    `json:"userId"`
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Role                 string  `json:"role"`
	TotalHours           float64 `json:"totalHours"`
	TotalPoints          float64 `json:"totalPoints"`
	ContributionCount    int     `json:"contributionCount"`
	AllocatedEquityUnits float64 `json:"allocatedEquityUnits"`
	EquityPercent        float64 `json:"equityPercent"`
	NotionalIncome       float64 `json:"notionalIncome"`
	WithdrawnIncome      float64 `json:"withdrawnIncome"`
	Balance              float64 `json:"balance"`
}

// TopContributor ranks users by total points.
type TopContributor struct {
	UserID            uint    `json:"userId"`
	Name              string  `json:"name"`
	TotalPoints       float64 `json:"totalPoints"`
	ContributionCount int     `json:"contributionCount"`
}

// ProjectHours breaks TIME hours out per project.
type ProjectHours struct {
	ProjectID   uint    `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalHours  float64 `json:"totalHours"`
}

// AdminDashboard is the admin/accountant view of the company.
type AdminDashboard struct {
	View            string               `json:"view"`
	Users           int                  `json:"users"`
	Projects        int                  `json:"projects"`
	CapTable        []equity.CapTableRow `json:"capTable"`
	FounderSummary  []FounderSummary     `json:"founderSummary"`
	TopContributors []TopContributor     `json:"topContributors"`
	PendingPayouts  []payout.Payout      `json:"pendingPayouts"`
	HoursByProject  []ProjectHours       `json:"hoursByProject"`
	AllProjectHours float64              `json:"allProjectHours"`
	RevenueSummary  revenue.Summary      `json:"revenueSummary"`
	Phases          []phase.CompanyPhase `json:"phases"`
}
