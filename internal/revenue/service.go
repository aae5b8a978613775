package revenue

import (
	"github.com/Abenka/equity-api/internal/numeric"
	"github.com/Abenka/equity-api/internal/project"
	"gorm.io/gorm"
)

// Sprout phase monthly sales target: 15 lakh.
const TargetAmount = 1_500_000.0

// ProjectSummary is one project's ledger totals.
type ProjectSummary struct {
	ProjectID      uint    `json:"projectId"`
	ProjectName    string  `json:"projectName"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	OneTimeRevenue float64 `json:"oneTimeRevenue"`
	Expense        float64 `json:"expense"`
}

// Summary is the company-wide revenue view consumed by dashboards.
type Summary struct {
	TotalMonthlyRevenue    float64          `json:"totalMonthlyRevenue"`
	TotalOneTimeRevenue    float64          `json:"totalOneTimeRevenue"`
	TotalRevenue           float64          `json:"totalRevenue"`
	TotalExpense           float64          `json:"totalExpense"`
	NetRevenue             float64          `json:"netRevenue"`
	CurrentMonthRevenue    float64          `json:"currentMonthRevenue"`
	RemainingToReachTarget float64          `json:"remainingToReachTarget"`
	TargetAmount           float64          `json:"targetAmount"`
	ByProject              []ProjectSummary `json:"byProject"`
}

// EmptySummary is the documented zeroed default substituted when the revenue
// collaborator is unavailable.
func EmptySummary() Summary {
	return Summary{
		RemainingToReachTarget: TargetAmount,
		TargetAmount:           TargetAmount,
		ByProject:              []ProjectSummary{},
	}
}

// Service aggregates the revenue ledger.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// CompanySummary totals the ledger by type and project. Current month
// revenue comes from the projects' monthly pipeline, and the remaining
// distance to the phase target is measured against it.
func (s *Service) CompanySummary() (Summary, error) {
	var entries []ProjectRevenueEntry
	if err := s.DB.Find(&entries).Error; err != nil {
		return Summary{}, err
	}
	var projects []project.Project
	if err := s.DB.Select("id", "name", "monthly_revenue_pipeline").Order("name asc").Find(&projects).Error; err != nil {
		return Summary{}, err
	}

	pipelineRevenue := 0.0
	names := map[uint]string{}
	for _, p := range projects {
		pipelineRevenue += p.MonthlyRevenuePipeline
		names[p.ID] = p.Name
	}
	remaining := TargetAmount - pipelineRevenue
	if remaining < 0 {
		remaining = 0
	}

	var totalMonthly, totalOneTime, totalExpense float64
	byProject := map[uint]*ProjectSummary{}
	order := []uint{}
	for _, e := range entries {
		row, ok := byProject[e.ProjectID]
		if !ok {
			row = &ProjectSummary{ProjectID: e.ProjectID, ProjectName: names[e.ProjectID]}
			byProject[e.ProjectID] = row
			order = append(order, e.ProjectID)
		}
		switch e.Type {
		case TypeMonthlyRevenue:
			totalMonthly += e.Amount
			row.MonthlyRevenue += e.Amount
		case TypeOneTimeRevenue:
			totalOneTime += e.Amount
			row.OneTimeRevenue += e.Amount
		case TypeExpense:
			totalExpense += e.Amount
			row.Expense += e.Amount
		}
	}

	totalRevenue := totalMonthly + totalOneTime
	summary := Summary{
		TotalMonthlyRevenue:    numeric.Round2(totalMonthly),
		TotalOneTimeRevenue:    numeric.Round2(totalOneTime),
		TotalRevenue:           numeric.Round2(totalRevenue),
		TotalExpense:           numeric.Round2(totalExpense),
		NetRevenue:             numeric.Round2(totalRevenue - totalExpense),
		CurrentMonthRevenue:    numeric.Round2(pipelineRevenue),
		RemainingToReachTarget: numeric.Round2(remaining),
		TargetAmount:           TargetAmount,
		ByProject:              []ProjectSummary{},
	}
	for _, id := range order {
		summary.ByProject = append(summary.ByProject, *byProject[id])
	}
	return summary, nil
}
