package projects

import (
	"strings"

	"github.com/dmitrijs2005/projtrack/internal/models"
)

// Filter returns the projects whose name or description contains query
// (case-insensitive) and, when status is non-empty, whose status matches.
func Filter(projects []models.Project, query string, status models.Status) []models.Project {
	q := strings.ToLower(query)
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if status != "" && p.Status != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Stats is the dashboard summary over all projects.
type Stats struct {
	Total           int
	Completed       int
	InProgress      int
	AverageProgress int
}

// Summarize counts projects by status and averages their derived progress.
func Summarize(projects []models.Project) Stats {
	st := Stats{Total: len(projects)}
	if st.Total == 0 {
		return st
	}
	sum := 0
	for _, p := range projects {
		switch p.Status {
		case models.StatusCompleted:
			st.Completed++
		case models.StatusInProgress:
			st.InProgress++
		}
		sum += Progress(p)
	}
	st.AverageProgress = roundedMean(sum, st.Total)
	return st
}
