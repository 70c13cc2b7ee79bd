package projects

import (
	"time"

	"github.com/dmitrijs2005/projtrack/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleProjects is the tree shown on first use.
func sampleProjects(newID func() string, now time.Time) []models.Project {
	module := func(name string, progress int, status models.Status) models.Module {
		return models.Module{ID: newID(), Name: name, Progress: progress, Status: status, Documents: []models.Document{}}
	}
	deadline := func(t time.Time) *time.Time { return &t }

	return []models.Project{
		{
			ID:          newID(),
			Name:        "E-commerce platform rebuild",
			Description: "Overhaul the existing storefront to improve user experience and performance",
			Status:      models.StatusInProgress,
			CreatedAt:   date(2024, time.January, 15),
			UpdatedAt:   now,
			Deadline:    deadline(date(2024, time.June, 30)),
			Modules: []models.Module{
				module("User accounts", 100, models.StatusCompleted),
				module("Catalog management", 75, models.StatusInProgress),
				module("Order processing", 40, models.StatusInProgress),
				module("Payment integration", 0, models.StatusTodo),
			},
		},
		{
			ID:          newID(),
			Name:        "Mobile app",
			Description: "Build the iOS and Android applications",
			Status:      models.StatusInProgress,
			CreatedAt:   date(2024, time.February, 1),
			UpdatedAt:   now,
			Deadline:    deadline(date(2024, time.August, 15)),
			Modules: []models.Module{
				module("UI/UX design", 100, models.StatusCompleted),
				module("Core features", 60, models.StatusInProgress),
				module("API integration", 30, models.StatusInProgress),
				module("Testing and release", 0, models.StatusTodo),
			},
		},
		{
			ID:          newID(),
			Name:        "Data analytics platform",
			Description: "Enterprise data analysis and visualization platform",
			Status:      models.StatusTodo,
			CreatedAt:   date(2024, time.March, 1),
			UpdatedAt:   now,
			Modules: []models.Module{
				module("Requirements analysis", 0, models.StatusTodo),
				module("Architecture design", 0, models.StatusTodo),
				module("Data ingestion", 0, models.StatusTodo),
			},
		},
	}
}
