package cli

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

func progressBar(pct int) string {
	const width = 20
	filled := pct * width / 100
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", width-filled), pct)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// parseDeadline accepts YYYY-MM-DD; an empty string means no deadline.
func parseDeadline(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("deadline %q: want YYYY-MM-DD", s)
	}
	return &t, nil
}
