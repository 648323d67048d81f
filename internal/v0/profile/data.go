package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new profile repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: sqlx.NewDb(db, "sqlite3")}
}

type profileRow struct {
	UserID          int64          `db:"user_id"`
	Name            sql.NullString `db:"name"`
	Gender          sql.NullString `db:"gender"`
	Location        sql.NullString `db:"location"`
	DefaultAdults   int            `db:"default_adults"`
	DefaultKids     int            `db:"default_kids"`
	DefaultMeals    string         `db:"default_meals"`
	DefaultCuisines string         `db:"default_cuisines"`
	DefaultDiet     sql.NullString `db:"default_diet"`
	AvatarURL       sql.NullString `db:"avatar_url"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

type preferencesRow struct {
	UserID      int64     `db:"user_id"`
	BusyDays    string    `db:"busy_days"`
	CookingTime int       `db:"cooking_time"`
	Notes       string    `db:"notes"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func optional(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func decodeList(raw string) ([]string, error) {
	list := []string{}
	if raw == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetProfile loads both halves of the user's profile. A half that was never
// written is nil.
func (r *Repository) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	out := &UserProfile{}

	var p profileRow
	err := r.db.GetContext(ctx, &p, `
		SELECT user_id, name, gender, location, default_adults, default_kids, default_meals,
			default_cuisines, default_diet, avatar_url, updated_at
		FROM user_profiles WHERE user_id = ?`, userID)
	switch {
	case err == sql.ErrNoRows:
		// never saved
	case err != nil:
		return nil, err
	default:
		meals, err := decodeList(p.DefaultMeals)
		if err != nil {
			return nil, fmt.Errorf("failed to decode default meals: %w", err)
		}
		cuisines, err := decodeList(p.DefaultCuisines)
		if err != nil {
			return nil, fmt.Errorf("failed to decode default cuisines: %w", err)
		}
		out.Profile = &Profile{
			UserID:          p.UserID,
			Name:            optional(p.Name),
			Gender:          optional(p.Gender),
			Location:        optional(p.Location),
			DefaultAdults:   p.DefaultAdults,
			DefaultKids:     p.DefaultKids,
			DefaultMeals:    meals,
			DefaultCuisines: cuisines,
			DefaultDiet:     optional(p.DefaultDiet),
			AvatarURL:       optional(p.AvatarURL),
			UpdatedAt:       p.UpdatedAt,
		}
	}

	var pr preferencesRow
	err = r.db.GetContext(ctx, &pr,
		"SELECT user_id, busy_days, cooking_time, notes, updated_at FROM user_preferences WHERE user_id = ?",
		userID)
	switch {
	case err == sql.ErrNoRows:
		// never saved
	case err != nil:
		return nil, err
	default:
		busy, err := decodeList(pr.BusyDays)
		if err != nil {
			return nil, fmt.Errorf("failed to decode busy days: %w", err)
		}
		out.Preferences = &Preferences{
			UserID:      pr.UserID,
			BusyDays:    busy,
			CookingTime: pr.CookingTime,
			Notes:       pr.Notes,
			UpdatedAt:   pr.UpdatedAt,
		}
	}

	return out, nil
}

const upsertProfile = `
	INSERT INTO user_profiles (user_id, name, gender, location, default_adults, default_kids,
		default_meals, default_cuisines, default_diet, avatar_url, updated_at)
	VALUES (:user_id, :name, :gender, :location, COALESCE(:default_adults, 2), COALESCE(:default_kids, 0),
		COALESCE(:default_meals, '[]'), COALESCE(:default_cuisines, '[]'), :default_diet, :avatar_url, :updated_at)
	ON CONFLICT(user_id) DO UPDATE SET
		name = COALESCE(:name, name),
		gender = COALESCE(:gender, gender),
		location = COALESCE(:location, location),
		default_adults = COALESCE(:default_adults, default_adults),
		default_kids = COALESCE(:default_kids, default_kids),
		default_meals = COALESCE(:default_meals, default_meals),
		default_cuisines = COALESCE(:default_cuisines, default_cuisines),
		default_diet = COALESCE(:default_diet, default_diet),
		avatar_url = COALESCE(:avatar_url, avatar_url),
		updated_at = :updated_at`

const upsertPreferences = `
	INSERT INTO user_preferences (user_id, busy_days, cooking_time, notes, updated_at)
	VALUES (:user_id, COALESCE(:busy_days, '[]'), COALESCE(:cooking_time, 30), COALESCE(:notes, ''), :updated_at)
	ON CONFLICT(user_id) DO UPDATE SET
		busy_days = COALESCE(:busy_days, busy_days),
		cooking_time = COALESCE(:cooking_time, cooking_time),
		notes = COALESCE(:notes, notes),
		updated_at = :updated_at`

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullList(list []string) (sql.NullString, error) {
	if list == nil {
		return sql.NullString{}, nil
	}
	raw, err := json.Marshal(list)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(raw), Valid: true}, nil
}

// UpsertProfile creates both halves of the profile on first write and patches
// them afterwards. Fields absent from req keep their stored value.
func (r *Repository) UpsertProfile(ctx context.Context, userID int64, req UpdateRequest) (*UserProfile, error) {
	meals, err := nullList(req.DefaultMeals)
	if err != nil {
		return nil, err
	}
	cuisines, err := nullList(req.DefaultCuisines)
	if err != nil {
		return nil, err
	}
	busy, err := nullList(req.BusyDays)
	if err != nil {
		return nil, err
	}

	args := map[string]interface{}{
		"user_id":          userID,
		"name":             nullString(req.Name),
		"gender":           nullString(req.Gender),
		"location":         nullString(req.Location),
		"default_adults":   nullInt(req.DefaultAdults),
		"default_kids":     nullInt(req.DefaultKids),
		"default_meals":    meals,
		"default_cuisines": cuisines,
		"default_diet":     nullString(req.DefaultDiet),
		"avatar_url":       nullString(req.AvatarURL),
		"busy_days":        busy,
		"cooking_time":     nullInt(req.CookingTime),
		"notes":            nullString(req.Notes),
		"updated_at":       time.Now().UTC(),
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.NamedExecContext(ctx, upsertProfile, args); err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}
	if _, err := tx.NamedExecContext(ctx, upsertPreferences, args); err != nil {
		return nil, fmt.Errorf("failed to upsert preferences: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return r.GetProfile(ctx, userID)
}

//MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
//MenuMagic Copyright (C) 2025 MenuMagic
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
