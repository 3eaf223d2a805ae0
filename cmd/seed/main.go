// Command seed populates the database with a starter set of events. Existing
// events are left alone: a slug collision is logged and skipped.
package main

import (
	"context"
	"errors"
	"os"

	"deveventhub/config"
	"deveventhub/internal/domain"
	"deveventhub/internal/platform/database"
	"deveventhub/internal/repository/postgres"
	"deveventhub/internal/services"
)

var seedEvents = []domain.CreateEventInput{
	{
		Title:       "27th ITCN Asia 2026",
		Description: "Pakistan's largest IT and telecom trade exhibition and conference.",
		Overview:    "Three days of exhibitions, panel talks, and networking across the IT and telecom industry.",
		Image:       "/images/event1.png",
		Venue:       "Lahore Expo Centre",
		Location:    "Lahore, Pakistan",
		Date:        "2026-01-17",
		Time:        "10:00 AM",
		Mode:        "offline",
		Audience:    "IT professionals, telecom operators, startups",
		Organizer:   "Ecommerce Gateway",
		Tags:        []string{"it", "telecom", "expo"},
		Agenda:      []string{"Day 1: Exhibition opening", "Day 2: Industry panels", "Day 3: Startup showcase"},
	},
	{
		Title:       "Indus AI Week 2026",
		Description: "A week-long gathering of AI practitioners and researchers.",
		Overview:    "Workshops, keynotes, and hands-on labs covering applied machine learning.",
		Image:       "/images/event2.png",
		Venue:       "Pak-China Friendship Centre",
		Location:    "Islamabad, Pakistan",
		Date:        "2026-02-09",
		Time:        "09:00 AM",
		Mode:        "hybrid",
		Audience:    "ML engineers, data scientists, students",
		Organizer:   "Indus AI Collective",
		Tags:        []string{"ai", "machine-learning"},
		Agenda:      []string{"Keynotes", "Applied ML workshops", "Research poster sessions"},
	},
	{
		Title:       "Techzone Asia Expo 2026",
		Description: "Regional technology expo for emerging hardware and software vendors.",
		Overview:    "Product launches and vendor booths from across the region.",
		Image:       "/images/event3.png",
		Venue:       "Peshawar Expo Hall",
		Location:    "Peshawar, Pakistan",
		Date:        "2026-02-14",
		Time:        "10:00 AM",
		Mode:        "offline",
		Audience:    "Vendors, distributors, tech enthusiasts",
		Organizer:   "Techzone Asia",
		Tags:        []string{"expo", "hardware"},
		Agenda:      []string{"Vendor exhibitions", "Product demos"},
	},
	{
		Title:       "International Conference on Machine Learning & Big Data (ICMLBDVIT)",
		Description: "Academic conference on machine learning and big data systems.",
		Overview:    "Peer-reviewed paper presentations and invited talks.",
		Image:       "/images/event4.png",
		Venue:       "Virtual Institute of Technology",
		Location:    "Rawalpindi, Pakistan",
		Date:        "2026-03-31",
		Time:        "09:00 AM",
		Mode:        "online",
		Audience:    "Researchers, graduate students",
		Organizer:   "ICMLBDVIT Committee",
		Tags:        []string{"machine-learning", "big-data", "research"},
		Agenda:      []string{"Paper sessions", "Invited talks"},
	},
	{
		Title:       "International Conference on Cybersecurity & IT Systems (ICCAITSE)",
		Description: "Conference on cybersecurity practice and IT systems engineering.",
		Overview:    "Threat research, defensive tooling, and systems engineering tracks.",
		Image:       "/images/event5.png",
		Venue:       "Rawalpindi Convention Centre",
		Location:    "Rawalpindi, Pakistan",
		Date:        "2026-05-08",
		Time:        "10:00 AM",
		Mode:        "hybrid",
		Audience:    "Security engineers, researchers",
		Organizer:   "ICCAITSE Committee",
		Tags:        []string{"security", "systems"},
		Agenda:      []string{"Threat research track", "Defensive tooling track"},
	},
	{
		Title:       "International Conference on Software Development Methodologies (ICSDMIT)",
		Description: "Conference on software development practice and methodology.",
		Overview:    "Talks on delivery practice, architecture, and team process.",
		Image:       "/images/event6.png",
		Venue:       "Karachi Marriott",
		Location:    "Karachi, Pakistan",
		Date:        "2026-05-18",
		Time:        "09:00 AM",
		Mode:        "offline",
		Audience:    "Software engineers, engineering managers",
		Organizer:   "ICSDMIT Committee",
		Tags:        []string{"software", "process"},
		Agenda:      []string{"Architecture talks", "Process workshops"},
	},
	{
		Title:       "UNconference26 Startup & Investor Summit",
		Description: "Open-format summit connecting founders with investors.",
		Overview:    "Pitch sessions, office hours with investors, and attendee-driven discussion tracks.",
		Image:       "/images/event-full.png",
		Venue:       "Serena Hotel",
		Location:    "Islamabad, Pakistan",
		Date:        "2026-04-29",
		Time:        "10:00 AM",
		Mode:        "offline",
		Audience:    "Founders, investors",
		Organizer:   "UNconference",
		Tags:        []string{"startups", "investment"},
		Agenda:      []string{"Pitch sessions", "Investor office hours"},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	logger := config.NewLogger()

	dbManager := database.NewManager(cfg.DBUrl, logger)
	defer dbManager.Close()

	eventRepo := postgres.NewEventRepository(dbManager)
	eventService := services.NewEventService(eventRepo, nil, cfg.ServiceTimeout)

	ctx := context.Background()
	seeded := 0
	for _, in := range seedEvents {
		event, err := eventService.Create(ctx, in)
		if err != nil {
			if errors.Is(err, domain.ErrDuplicateSlug) {
				logger.Info("event already seeded, skipping", "title", in.Title)
				continue
			}
			logger.Error("seed failed", "title", in.Title, "err", err)
			os.Exit(1)
		}
		logger.Info("event seeded", "slug", event.Slug, "date", event.Date)
		seeded++
	}
	logger.Info("seeding complete", "seeded", seeded, "total", len(seedEvents))
}
