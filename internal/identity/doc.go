// Package identity implements the projtrack Identity Store.
//
// The store owns the user roster, the logged-in session and a role check.
// State is persisted into an injected blobs.Store under two keys:
//
//   - common.IdentityRecordKey holds {currentUser, users};
//   - common.CredentialRecordKey holds {userID: password}.
//
// Passwords are kept and compared in plaintext. When no credential record has
// ever been written (or it cannot be decoded) the built-in defaults for the
// seeded users apply, so "admin"/"admin123" works on a fresh store.
//
// Every mutator builds the next state, persists it, and only then swaps it
// into memory; a failed write leaves the in-memory state unchanged.
//
// The store does not authorize. Callers check IsAdmin before user management
// and must not let a user delete their own account while logged in.
package identity
