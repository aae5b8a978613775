package company

import (
	"log"
	"sort"

	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/numeric"
	"github.com/Abenka/equity-api/internal/payout"
	"github.com/Abenka/equity-api/internal/phase"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/revenue"
	"github.com/Abenka/equity-api/internal/sales"
	"github.com/Abenka/equity-api/internal/user"
	"gorm.io/gorm"
)

// Pool size assumed when no phase row exists yet.
const defaultEquityPoolQty = 1500

const defaultPhaseName = "Sprout"

// RevenueSummarizer is the optional revenue collaborator. A failing call is
// substituted with revenue.EmptySummary, never surfaced.
type RevenueSummarizer interface {
	CompanySummary() (revenue.Summary, error)
}

// SalesTotaler is the optional sales collaborator. A failing call is
// substituted with empty totals, never surfaced.
type SalesTotaler interface {
	DerivedTotals(phaseMultiplier float64) (sales.DerivedTotals, error)
}

// Service aggregates the engines into the two dashboard views. All reads
// happen up front; the aggregation itself is pure in-process math.
type Service struct {
	DB            *gorm.DB
	Phases        *phase.Repository
	Contributions *contribution.Repository
	Users         *user.Repository
	Equity        *equity.Service
	Payouts       *payout.Service
	Revenue       RevenueSummarizer
	Sales         SalesTotaler
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		DB:            db,
		Phases:        phase.NewRepository(db),
		Contributions: contribution.NewRepository(db),
		Users:         user.NewRepository(db),
		Equity:        equity.NewService(db),
		Payouts:       payout.NewService(db),
		Revenue:       revenue.NewService(db),
		Sales:         sales.NewService(db),
	}
}

// revenueOrZero substitutes the zeroed summary when the revenue collaborator
// fails, keeping the dashboard partially available.
func (s *Service) revenueOrZero() revenue.Summary {
	summary, err := s.Revenue.CompanySummary()
	if err != nil {
		log.Printf("revenue summary unavailable, using zeroed default: %v", err)
		return revenue.EmptySummary()
	}
	return summary
}

// salesOrZero substitutes empty totals when the sales collaborator fails.
func (s *Service) salesOrZero(multiplier float64) sales.DerivedTotals {
	totals, err := s.Sales.DerivedTotals(multiplier)
	if err != nil {
		log.Printf("sales totals unavailable, using empty default: %v", err)
		return sales.DerivedTotals{ByUser: map[uint]sales.UserDerived{}}
	}
	return totals
}

// companyHours combines TIME-contribution hours with sales-derived hours per
// user and in total.
type companyHours struct {
	timeByUser  map[uint]float64
	byUser      map[uint]float64
	total       float64
	salesTotals sales.DerivedTotals
}

func (s *Service) loadCompanyHours(multiplier float64) (companyHours, error) {
	var timeContributions []contribution.Contribution
	err := s.DB.Where("type = ?", contribution.TypeTime).Find(&timeContributions).Error
	if err != nil {
		return companyHours{}, err
	}
	h := companyHours{
		timeByUser:  map[uint]float64{},
		byUser:      map[uint]float64{},
		salesTotals: s.salesOrZero(multiplier),
	}
	for _, c := range timeContributions {
		if c.Hours != nil {
			h.timeByUser[c.UserID] += *c.Hours
		}
	}
	for userID, hours := range h.timeByUser {
		h.byUser[userID] = hours
	}
	for userID, derived := range h.salesTotals.ByUser {
		h.byUser[userID] += derived.Hours
	}
	for _, hours := range h.byUser {
		h.total += hours
	}
	return h, nil
}

func phaseMultiplier(current *phase.CompanyPhase) float64 {
	if current == nil || current.SalesWeightageMultiplier == nil {
		return 1
	}
	return *current.SalesWeightageMultiplier
}

func poolQty(current *phase.CompanyPhase) int {
	if current == nil {
		return defaultEquityPoolQty
	}
	return current.EquityPoolQty
}

// FounderDashboard builds the founder view for one user.
func (s *Service) FounderDashboard(userID uint) (*FounderDashboard, error) {
	phases, err := s.Phases.FindAll()
	if err != nil {
		return nil, err
	}
	current := phase.Current(phases)
	hours, err := s.loadCompanyHours(phaseMultiplier(current))
	if err != nil {
		return nil, err
	}
	own, err := s.Contributions.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	withdrawnByUser, err := s.Payouts.WithdrawnByUser()
	if err != nil {
		return nil, err
	}

	userHours := hours.byUser[userID]
	timeHours := hours.timeByUser[userID]
	salesDerived := hours.salesTotals.ByUser[userID]

	totalPoints := 0.0
	for _, c := range own {
		totalPoints += c.Points
	}
	recent := own
	if len(recent) > 20 {
		recent = recent[:20]
	}
	projectNames, err := s.projectNames()
	if err != nil {
		return nil, err
	}
	recentOut := make([]RecentContribution, 0, len(recent))
	for _, c := range recent {
		recentOut = append(recentOut, RecentContribution{
			Date:        c.Date,
			ProjectName: projectNames[c.ProjectID],
			Type:        c.Type,
			Hours:       c.Hours,
			Amount:      c.Amount,
			Points:      c.Points,
		})
	}

	notionalIncome := timeHours*sales.NotionalRatePerHour + salesDerived.Notional
	withdrawnIncome := withdrawnByUser[userID]

	currentName := defaultPhaseName
	if current != nil {
		currentName = current.Name
	}
	return &FounderDashboard{
		View:              "founder",
		Phases:            phases,
		CurrentPhaseName:  currentName,
		TotalEquityInPool: poolQty(current),
		TotalCompanyHours: numeric.Round2(hours.total),
		MyContribution: MyContribution{
			TotalHours:          numeric.Round2(userHours),
			TotalPoints:         numeric.Round2(totalPoints),
			ContributionCount:   len(own),
			RecentContributions: recentOut,
		},
		AllocatedEquityUnits: numeric.Round2(equity.LivePoolUnits(userHours, hours.total, poolQty(current))),
		EquityPercent:        numeric.Round2(equity.LivePercent(userHours, hours.total)),
		NotionalIncome:       numeric.Round2(notionalIncome),
		WithdrawnIncome:      numeric.Round2(withdrawnIncome),
		Balance:              numeric.Round2(notionalIncome - withdrawnIncome),
		RevenueSummary:       s.revenueOrZero(),
	}, nil
}

// AdminDashboard builds the company-wide view.
func (s *Service) AdminDashboard() (*AdminDashboard, error) {
	phases, err := s.Phases.FindAll()
	if err != nil {
		return nil, err
	}
	current := phase.Current(phases)
	hours, err := s.loadCompanyHours(phaseMultiplier(current))
	if err != nil {
		return nil, err
	}
	users, err := s.Users.FindAll()
	if err != nil {
		return nil, err
	}
	contributions, err := s.Contributions.FindAll()
	if err != nil {
		return nil, err
	}
	withdrawnByUser, err := s.Payouts.WithdrawnByUser()
	if err != nil {
		return nil, err
	}
	capTable, err := s.Equity.CapTable(nil)
	if err != nil {
		return nil, err
	}
	pending, err := s.Payouts.FindPending()
	if err != nil {
		return nil, err
	}
	var projects []project.Project
	if err := s.DB.Select("id", "name").Find(&projects).Error; err != nil {
		return nil, err
	}

	pointsByUser := map[uint]float64{}
	countByUser := map[uint]int{}
	hoursByProject := map[uint]float64{}
	for _, c := range contributions {
		pointsByUser[c.UserID] += c.Points
		countByUser[c.UserID]++
		if c.Type == contribution.TypeTime && c.Hours != nil {
			hoursByProject[c.ProjectID] += *c.Hours
		}
	}

	summary := make([]FounderSummary, 0, len(users))
	for _, u := range users {
		userHours := hours.byUser[u.ID]
		timeHours := hours.timeByUser[u.ID]
		salesDerived := hours.salesTotals.ByUser[u.ID]
		notionalIncome := timeHours*sales.NotionalRatePerHour + salesDerived.Notional
		withdrawnIncome := withdrawnByUser[u.ID]
		summary = append(summary, FounderSummary{
			UserID:               u.ID,
			Name:                 u.Name,
			Email:                u.Email,
			Role:                 u.Role,
			TotalHours:           numeric.Round2(userHours),
			TotalPoints:          numeric.Round2(pointsByUser[u.ID]),
			ContributionCount:    countByUser[u.ID],
			AllocatedEquityUnits: numeric.Round2(equity.LivePoolUnits(userHours, hours.total, poolQty(current))),
			EquityPercent:        numeric.Round2(equity.LivePercent(userHours, hours.total)),
			NotionalIncome:       numeric.Round2(notionalIncome),
			WithdrawnIncome:      numeric.Round2(withdrawnIncome),
			Balance:              numeric.Round2(notionalIncome - withdrawnIncome),
		})
	}

	userNames := map[uint]string{}
	for _, u := range users {
		userNames[u.ID] = u.Name
	}
	top := make([]TopContributor, 0, len(pointsByUser))
	for userID, points := range pointsByUser {
		top = append(top, TopContributor{
			UserID:            userID,
			Name:              userNames[userID],
			TotalPoints:       numeric.Round2(points),
			ContributionCount: countByUser[userID],
		})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalPoints != top[j].TotalPoints {
			return top[i].TotalPoints > top[j].TotalPoints
		}
		return top[i].UserID < top[j].UserID
	})
	if len(top) > 10 {
		top = top[:10]
	}

	projectHours := make([]ProjectHours, 0, len(projects))
	allProjectHours := 0.0
	for _, p := range projects {
		h := hoursByProject[p.ID]
		allProjectHours += h
		projectHours = append(projectHours, ProjectHours{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			TotalHours:  numeric.Round2(h),
		})
	}

	return &AdminDashboard{
		View:            "admin",
		Users:           len(users),
		Projects:        len(projects),
		CapTable:        capTable,
		FounderSummary:  summary,
		TopContributors: top,
		PendingPayouts:  pending,
		HoursByProject:  projectHours,
		AllProjectHours: numeric.Round2(allProjectHours),
		RevenueSummary:  s.revenueOrZero(),
		Phases:          phases,
	}, nil
}

func (s *Service) projectNames() (map[uint]string, error) {
	var projects []project.Project
	if err := s.DB.Select("id", "name").Find(&projects).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
