package main

import (
	"context"
	"fmt"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/database"
	"github.com/gradhunt/gradboard-backend/internal/logger"
	"github.com/gradhunt/gradboard-backend/internal/model"
	"github.com/gradhunt/gradboard-backend/internal/repository"
)

func intPtr(v int) *int { return &v }

func kindPtr(k model.JobKind) *model.JobKind { return &k }

// seedJobs is a small set of realistic published listings for local
// development and demos.
var seedJobs = []model.Job{
	{
		Title:       "Software Engineer I",
		Company:     "Northwind Analytics",
		Country:     "India",
		Location:    "Bengaluru",
		Description: "Build and maintain data ingestion services on our analytics platform. Strong fundamentals in data structures and one of Go, Java, or Python expected.",
		ApplyLink:   "https://careers.northwind.example.com/jobs/swe-1",
		Status:      model.JobStatusPublished,
		Passout:     intPtr(2026),
		Kind:        kindPtr(model.JobKindJob),
	},
	{
		Title:       "Backend Developer",
		Company:     "Finlight",
		Country:     "India",
		Location:    "Remote",
		Description: "Work on payment reconciliation APIs. Experience with PostgreSQL and message queues is a plus.",
		ApplyLink:   "https://finlight.example.com/careers/backend",
		Status:      model.JobStatusPublished,
		Passout:     intPtr(2025),
		Kind:        kindPtr(model.JobKindJob),
	},
	{
		Title:       "SDE Intern",
		Company:     "CloudTrail Systems",
		Country:     "India",
		Location:    "Hyderabad",
		Description: "Six-month internship on the infrastructure team. You will ship production code under mentorship and attend design reviews.",
		ApplyLink:   "https://cloudtrail.example.com/internships/sde",
		Status:      model.JobStatusPublished,
		Passout:     intPtr(2027),
		Kind:        kindPtr(model.JobKindInternship),
	},
	{
		Title:       "Frontend Engineer",
		Company:     "Mosaic Health",
		Country:     "United States",
		Location:    "New York (Hybrid)",
		Description: "Own patient-facing dashboards built with React and TypeScript. Accessibility experience valued.",
		ApplyLink:   "https://mosaichealth.example.com/jobs/frontend",
		Status:      model.JobStatusPublished,
		Kind:        kindPtr(model.JobKindJob),
	},
	{
		Title:       "Data Engineering Intern",
		Company:     "Harbor Logistics",
		Country:     "Singapore",
		Location:    "Singapore",
		Description: "Assist in building ETL pipelines for shipment tracking data. SQL proficiency required.",
		ApplyLink:   "https://harborlog.example.com/careers/data-intern",
		Status:      model.JobStatusPublished,
		Passout:     intPtr(2026),
		Kind:        kindPtr(model.JobKindInternship),
	},
}

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	jobRepo := repository.NewJobRepository(pool)

	created := 0
	for i := range seedJobs {
		j := seedJobs[i]
		if err := jobRepo.Create(ctx, &j); err != nil {
			log.Error().Err(err).Str("title", j.Title).Msg("Failed to seed listing")
			continue
		}
		created++
		fmt.Printf("Seeded: %s @ %s (%s)\n", j.Title, j.Company, j.ID)
	}

	fmt.Printf("\nDone. %d/%d listings created.\n", created, len(seedJobs))
}
