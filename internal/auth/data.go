package auth

import (
	"database/sql"
	"time"
)

// Repository provides access to identity tables
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DB returns the underlying database connection
func (r *Repository) DB() *sql.DB {
	return r.db
}

// --- User Operations ---

// GetUserByID returns a user by ID
func (r *Repository) GetUserByID(id int64) (*User, error) {
	var u User
	err := r.db.QueryRow(`
		SELECT id, email, display_name, role, status, created_at
		FROM users WHERE id = ?
	`, id).Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.Status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns a user by email
func (r *Repository) GetUserByEmail(email string) (*User, error) {
	var u User
	err := r.db.QueryRow(`
		SELECT id, email, display_name, role, status, created_at
		FROM users WHERE email = ?
	`, email).Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.Status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser creates a new active user
func (r *Repository) CreateUser(email, displayName string) (*User, error) {
	result, err := r.db.Exec(`
		INSERT INTO users (email, display_name, created_at) VALUES (?, ?, ?)
	`, email, displayName, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetUserByID(id)
}

// UpdateUserStatus suspends or reactivates an account
func (r *Repository) UpdateUserStatus(id int64, status Status) error {
	_, err := r.db.Exec("UPDATE users SET status = ? WHERE id = ?", status, id)
	return err
}

// --- OAuth Identity Operations ---

// GetOAuthIdentity returns an OAuth identity by provider and provider ID
func (r *Repository) GetOAuthIdentity(provider Provider, providerID string) (*OAuthIdentity, error) {
	var o OAuthIdentity
	var accessToken, refreshToken sql.NullString
	err := r.db.QueryRow(`
		SELECT id, user_id, provider, provider_id, access_token, refresh_token, created_at
		FROM oauth_identities
		WHERE provider = ? AND provider_id = ?
	`, provider, providerID).Scan(&o.ID, &o.UserID, &o.Provider, &o.ProviderID, &accessToken, &refreshToken, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	o.AccessToken = ScanNullableString(accessToken)
	o.RefreshToken = ScanNullableString(refreshToken)
	return &o, nil
}

// CreateOAuthIdentity links a provider account to a user
func (r *Repository) CreateOAuthIdentity(userID int64, provider Provider, providerID, accessToken, refreshToken string) error {
	_, err := r.db.Exec(`
		INSERT INTO oauth_identities (user_id, provider, provider_id, access_token, refresh_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, userID, provider, providerID, accessToken, refreshToken, time.Now().UTC())
	return err
}

// UpdateOAuthIdentityTokens updates the tokens for an OAuth identity
func (r *Repository) UpdateOAuthIdentityTokens(id int64, accessToken, refreshToken string) error {
	_, err := r.db.Exec(`
		UPDATE oauth_identities SET access_token = ?, refresh_token = ? WHERE id = ?
	`, accessToken, refreshToken, id)
	return err
}

// FindOrCreateUser resolves a provider login to a local user. An existing
// identity wins, then an account with the same email gets the identity linked,
// otherwise a new user is created.
func (r *Repository) FindOrCreateUser(info *OAuthUserInfo, provider Provider, accessToken, refreshToken string) (*User, error) {
	identity, err := r.GetOAuthIdentity(provider, info.ProviderID)
	if err != nil {
		return nil, err
	}
	if identity != nil {
		if err := r.UpdateOAuthIdentityTokens(identity.ID, accessToken, refreshToken); err != nil {
			return nil, err
		}
		return r.GetUserByID(identity.UserID)
	}

	user, err := r.GetUserByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = r.CreateUser(info.Email, info.DisplayName)
		if err != nil {
			return nil, err
		}
	}

	if err := r.CreateOAuthIdentity(user.ID, provider, info.ProviderID, accessToken, refreshToken); err != nil {
		return nil, err
	}
	return r.GetUserByID(user.ID)
}
