package auth

import (
	"database/sql"
	"time"
)

// Role represents user permission levels
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status represents user account status
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
)

// Provider represents OAuth providers
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// User represents an authenticated household account
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        Role      `json:"role"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OAuthIdentity links a user to an OAuth provider
type OAuthIdentity struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId"`
	Provider     Provider  `json:"provider"`
	ProviderID   string    `json:"providerId"`
	AccessToken  *string   `json:"-"` // Never expose in JSON
	RefreshToken *string   `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"createdAt"`
}

// Session represents a server-side user session
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// GenerationEvent is one successful menu generation. UserID is nil for guests.
type GenerationEvent struct {
	ID               int64     `json:"id"`
	UserID           *int64    `json:"userId,omitempty"`
	ModelUsed        string    `json:"modelUsed"`
	GenerationTimeMs int64     `json:"generationTimeMs"`
	CreatedAt        time.Time `json:"createdAt"`
}

// QuotaStatus is the outcome of a daily quota check
type QuotaStatus struct {
	Allowed bool      `json:"allowed"`
	Used    int       `json:"used"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"resetAt"`
}

// Remaining is how many generations are left today, never negative
func (q QuotaStatus) Remaining() int {
	if q.Used >= q.Limit {
		return 0
	}
	return q.Limit - q.Used
}

// ScanNullableString helper for scanning nullable string
func ScanNullableString(n sql.NullString) *string {
	if n.Valid {
		return &n.String
	}
	return nil
}

// ScanNullableInt64 helper for scanning nullable int64
func ScanNullableInt64(n sql.NullInt64) *int64 {
	if n.Valid {
		return &n.Int64
	}
	return nil
}
