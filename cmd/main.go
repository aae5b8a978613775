package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/Abenka/equity-api/internal/audit"
	"github.com/Abenka/equity-api/internal/auth"
	"github.com/Abenka/equity-api/internal/company"
	"github.com/Abenka/equity-api/internal/contribution"
	"github.com/Abenka/equity-api/internal/equity"
	"github.com/Abenka/equity-api/internal/payout"
	"github.com/Abenka/equity-api/internal/phase"
	"github.com/Abenka/equity-api/internal/points"
	"github.com/Abenka/equity-api/internal/project"
	"github.com/Abenka/equity-api/internal/revenue"
	"github.com/Abenka/equity-api/internal/sales"
	"github.com/Abenka/equity-api/internal/seed"
	"github.com/Abenka/equity-api/internal/user"
	"github.com/Abenka/equity-api/internal/utils/db"
	"github.com/Abenka/equity-api/internal/weights"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	_ = godotenv.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}

	if err := database.AutoMigrate(
		&user.User{},
		&project.Project{},
		&project.ProjectMember{},
		&contribution.Contribution{},
		&weights.WeightsConfig{},
		&sales.SalesEntry{},
		&sales.SalesAllocation{},
		&equity.EquityAllocation{},
		&phase.CompanyPhase{},
		&payout.Payout{},
		&revenue.ProjectRevenueEntry{},
		&audit.AuditLog{},
	); err != nil {
		log.Fatal("migration failed:", err)
	}

	if err := seed.Run(database); err != nil {
		log.Fatal("seed failed:", err)
	}

	userRepo := user.NewRepository(database)
	projectRepo := project.NewRepository(database)
	contributionRepo := contribution.NewRepository(database)
	weightsRepo := weights.NewRepository(database)
	salesRepo := sales.NewRepository(database)
	phaseRepo := phase.NewRepository(database)
	revenueRepo := revenue.NewRepository(database)

	pointsService := points.NewService(database)
	equityService := equity.NewService(database)
	payoutService := payout.NewService(database)
	revenueService := revenue.NewService(database)
	companyService := company.NewService(database)

	userHandler := user.NewHandler(userRepo)
	projectHandler := project.NewHandler(projectRepo)
	contributionHandler := contribution.NewHandler(contributionRepo, projectRepo, pointsService)
	weightsHandler := weights.NewHandler(weightsRepo)
	pointsHandler := points.NewHandler(pointsService)
	salesHandler := sales.NewHandler(salesRepo, projectRepo)
	equityHandler := equity.NewHandler(equityService)
	phaseHandler := phase.NewHandler(phaseRepo)
	revenueHandler := revenue.NewHandler(revenueRepo, revenueService, projectRepo)
	payoutHandler := payout.NewHandler(payoutService)
	companyHandler := company.NewHandler(companyService)

	staffOnly := auth.RequireRoles(user.RoleAdmin, user.RoleAccountant)
	staff := func(h http.HandlerFunc) http.Handler { return staffOnly(h) }

	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	}).Methods("GET")

	// Public auth routes
	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/auth/signup", userHandler.Signup).Methods("POST")

	// Everything below requires a valid token
	api := r.PathPrefix("/").Subrouter()
	api.Use(auth.Middleware, audit.Middleware(database))

	api.HandleFunc("/me", userHandler.Me).Methods("GET")

	// Users
	api.Handle("/users", staff(userHandler.Create)).Methods("POST")
	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.Get).Methods("GET")
	api.Handle("/users/{id}", staff(userHandler.Delete)).Methods("DELETE")
	api.Handle("/users/{id}/hourly-rate", staff(userHandler.UpdateHourlyRate)).Methods("PATCH")
	api.HandleFunc("/users/{id}/contributions", contributionHandler.ListByUser).Methods("GET")
	api.HandleFunc("/users/{id}/payouts", payoutHandler.ListByUser).Methods("GET")
	api.HandleFunc("/users/{id}/vesting", equityHandler.VestingTimeline).Methods("GET")

	// Projects and memberships
	api.HandleFunc("/projects", projectHandler.Create).Methods("POST")
	api.HandleFunc("/projects", projectHandler.List).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.Get).Methods("GET")
	api.HandleFunc("/projects/{id}", projectHandler.Update).Methods("PUT")
	api.Handle("/projects/{id}", staff(projectHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/projects/{id}/members", projectHandler.AddMember).Methods("POST")
	api.HandleFunc("/projects/{id}/members/{userId}", projectHandler.RemoveMember).Methods("DELETE")

	// Contributions
	api.HandleFunc("/projects/{id}/contributions", contributionHandler.Create).Methods("POST")
	api.HandleFunc("/projects/{id}/contributions", contributionHandler.ListByProject).Methods("GET")
	api.HandleFunc("/contributions/{id}", contributionHandler.Update).Methods("PUT")
	api.HandleFunc("/contributions/{id}", contributionHandler.Delete).Methods("DELETE")

	// Scoring weights and recalculation
	api.Handle("/weights", staff(weightsHandler.Get)).Methods("GET")
	api.Handle("/weights", staff(weightsHandler.Set)).Methods("PUT")
	api.Handle("/points/recalculate", staff(pointsHandler.RecalculateCompany)).Methods("POST")
	api.Handle("/projects/{id}/points/recalculate", staff(pointsHandler.RecalculateProject)).Methods("POST")

	// Sales entries
	api.Handle("/projects/{id}/sales", staff(salesHandler.Create)).Methods("POST")
	api.HandleFunc("/projects/{id}/sales", salesHandler.ListByProject).Methods("GET")
	api.HandleFunc("/sales/{id}", salesHandler.Get).Methods("GET")
	api.Handle("/sales/{id}", staff(salesHandler.Update)).Methods("PUT")
	api.Handle("/sales/{id}", staff(salesHandler.Delete)).Methods("DELETE")

	// Equity
	api.Handle("/equity/calculate", staff(equityHandler.Calculate)).Methods("POST")
	api.HandleFunc("/equity/cap-table", equityHandler.CapTable).Methods("GET")

	// Company phases
	api.HandleFunc("/phases", phaseHandler.List).Methods("GET")
	api.Handle("/phases/{id}", staff(phaseHandler.Update)).Methods("PUT")

	// Revenue ledger
	api.Handle("/revenue", staff(revenueHandler.Create)).Methods("POST")
	api.Handle("/revenue", staff(revenueHandler.List)).Methods("GET")
	api.Handle("/revenue/summary", staff(revenueHandler.Summary)).Methods("GET")
	api.Handle("/projects/{id}/revenue", staff(revenueHandler.ListByProject)).Methods("GET")
	api.Handle("/revenue/{id}", staff(revenueHandler.Update)).Methods("PUT")
	api.Handle("/revenue/{id}", staff(revenueHandler.Delete)).Methods("DELETE")

	// Payouts
	api.Handle("/payouts/prepare-hourly", staff(payoutHandler.PrepareHourly)).Methods("POST")
	api.Handle("/payouts/profit-share", staff(payoutHandler.AllocateProfit)).Methods("POST")
	api.Handle("/payouts/{id}/execute", staff(payoutHandler.Execute)).Methods("POST")
	api.Handle("/payouts/{id}/defer", staff(payoutHandler.DeferToEquity)).Methods("POST")

	// Dashboard
	api.HandleFunc("/dashboard", companyHandler.Dashboard).Methods("GET")

	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Server running on http://localhost:%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
