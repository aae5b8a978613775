package seed

import (
	"errors"
	"log"

	"github.com/Abenka/equity-api/internal/phase"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/Abenka/equity-api/internal/utils"
	"github.com/Abenka/equity-api/internal/weights"
	"gorm.io/gorm"
)

func ptr(v float64) *float64 { return &v }

var defaultPhases = []phase.CompanyPhase{
	{Name: "Sprout", EquityPoolPercent: ptr(25), EquityPoolQty: 1500, MonthlySalesTargetLabel: "Upto 15 Lakh/Month", SalesWeightageMultiplier: ptr(4), NotionalSalaryNotes: "10% on Sales 5% on Renewal, 1500 Rs/Hr", SortOrder: 1},
	{Name: "Survival", EquityPoolPercent: ptr(25), EquityPoolQty: 1500, MonthlySalesTargetLabel: "Upto 50 Lakh/Month", SalesWeightageMultiplier: ptr(3), NotionalSalaryNotes: "10% on Sales 5% on Renewal, 1500 Rs/Hr", SortOrder: 2},
	{Name: "Growth", EquityPoolPercent: ptr(25), EquityPoolQty: 1500, MonthlySalesTargetLabel: "Upto 2 Crore/Month", SalesWeightageMultiplier: ptr(2), NotionalSalaryNotes: "10% on Profit 5% on Renewal", SortOrder: 3},
	{Name: "Mature", EquityPoolPercent: ptr(25), EquityPoolQty: 1500, MonthlySalesTargetLabel: "Upto 10 Cr/Month", SalesWeightageMultiplier: ptr(1), NotionalSalaryNotes: "10% on Profit 5% on Renewal", SortOrder: 4},
	{Name: "Giant", EquityPoolQty: 3000, MonthlySalesTargetLabel: "Above 10 Cr/Month", NotionalSalaryNotes: "Take help from Big4s", SortOrder: 5},
}

// Run seeds the default admin account, the company-wide weights row and the
// phase table. Safe to run on every boot.
func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedWeights(db); err != nil {
		return err
	}
	return seedPhases(db)
}

func seedAdmin(db *gorm.DB) error {
	var existing user.User
	err := db.Where("email = ?", "admin@abenka.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := utils.HashPassword("ChangeMe@1234")
	if err != nil {
		return err
	}
	log.Println("seeding default admin account")
	return db.Create(&user.User{
		Name:         "Admin",
		Email:        "admin@abenka.com",
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}).Error
}

// seedWeights pins the company-wide row to the canonical defaults. The
// cash weight is 0.001 (1 point per 1000 of cash), matching the points
// engine's fallback.
func seedWeights(db *gorm.DB) error {
	var existing weights.WeightsConfig
	err := db.Where("scope = ? AND project_id IS NULL", weights.ScopeCompany).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&weights.WeightsConfig{
		Scope:       weights.ScopeCompany,
		TimeWeight:  weights.Defaults.Time,
		CashWeight:  weights.Defaults.Cash,
		OtherWeight: weights.Defaults.Other,
	}).Error
}

func seedPhases(db *gorm.DB) error {
	var count int64
	if err := db.Model(&phase.CompanyPhase{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Println("seeding company phases")
	for i := range defaultPhases {
		p := defaultPhases[i]
		if err := db.Create(&p).Error; err != nil {
			return err
		}
	}
	return nil
}
