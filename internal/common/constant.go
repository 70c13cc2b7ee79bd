package common

// Blob store keys. Each store owns exactly one record; credentials live under
// their own key so the user roster can be read without the secrets.
const (
	IdentityRecordKey   = "auth-storage"
	CredentialRecordKey = "user-credentials"
	ProjectRecordKey    = "project-storage"
)
