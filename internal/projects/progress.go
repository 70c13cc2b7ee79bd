package projects

import "github.com/dmitrijs2005/projtrack/internal/models"

// Progress is the mean module progress of p rounded half up, or 0 when p has
// no modules.
func Progress(p models.Project) int {
	n := len(p.Modules)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, m := range p.Modules {
		sum += m.Progress
	}
	return roundedMean(sum, n)
}

// roundedMean returns sum/n rounded half up for non-negative sum.
func roundedMean(sum, n int) int {
	return (2*sum + n) / (2 * n)
}

// ApplyProgress builds the update for moving m to progress, adjusting the
// status the way the module editor does:
//
//	100                       -> completed
//	1..99 while todo          -> in-progress
//	0 while completed         -> in-progress
//
// Any other status is kept.
func ApplyProgress(m models.Module, progress int) models.ModuleUpdate {
	status := m.Status
	switch {
	case progress == 100:
		status = models.StatusCompleted
	case progress > 0 && m.Status == models.StatusTodo:
		status = models.StatusInProgress
	case progress == 0 && m.Status == models.StatusCompleted:
		status = models.StatusInProgress
	}
	return models.ModuleUpdate{Progress: &progress, Status: &status}
}

// ApplyStatus builds the update for setting a module's status. Completed
// forces progress to 100 and todo forces it to 0.
func ApplyStatus(status models.Status) models.ModuleUpdate {
	u := models.ModuleUpdate{Status: &status}
	switch status {
	case models.StatusCompleted:
		p := 100
		u.Progress = &p
	case models.StatusTodo:
		p := 0
		u.Progress = &p
	}
	return u
}
