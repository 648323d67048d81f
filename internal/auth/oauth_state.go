package auth

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

const (
	// OAuthStateExpiry is how long an OAuth state is valid
	OAuthStateExpiry = 10 * time.Minute
)

// OAuthStateStore keeps single-use CSRF states for the login round trip
type OAuthStateStore struct {
	repo *Repository
}

func NewOAuthStateStore(repo *Repository) *OAuthStateStore {
	return &OAuthStateStore{repo: repo}
}

// CreateState generates and stores a random 32 byte state
func (s *OAuthStateStore) CreateState() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(raw)

	_, err := s.repo.db.Exec(`
		INSERT INTO oauth_states (state, expires_at) VALUES (?, ?)
	`, state, time.Now().UTC().Add(OAuthStateExpiry))
	if err != nil {
		return "", err
	}
	return state, nil
}

// ValidateState consumes the state. A second call with the same value fails.
func (s *OAuthStateStore) ValidateState(state string) (bool, error) {
	result, err := s.repo.db.Exec(`
		DELETE FROM oauth_states WHERE state = ? AND expires_at > ?
	`, state, time.Now().UTC())
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CleanupExpiredStates removes abandoned login attempts
func (s *OAuthStateStore) CleanupExpiredStates() (int64, error) {
	result, err := s.repo.db.Exec(`DELETE FROM oauth_states WHERE expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
