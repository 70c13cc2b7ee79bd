package identity

import "github.com/dmitrijs2005/projtrack/internal/models"

// Seeded accounts present before any user has been created.
const (
	SeedAdminID  = "admin-001"
	SeedViewerID = "viewer-001"
)

func defaultUsers() []models.User {
	return []models.User{
		{ID: SeedAdminID, Username: "admin", Role: models.RoleAdmin},
		{ID: SeedViewerID, Username: "viewer", Role: models.RoleViewer},
	}
}

func defaultCredentials() models.Credentials {
	return models.Credentials{
		SeedAdminID:  "admin123",
		SeedViewerID: "viewer123",
	}
}
