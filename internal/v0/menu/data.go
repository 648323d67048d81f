package menu

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MenuMagic/internal/common"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new saved menu repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: sqlx.NewDb(db, "sqlite3")}
}

type savedMenuRow struct {
	ID                 string         `db:"id"`
	UserID             int64          `db:"user_id"`
	Name               string         `db:"name"`
	PlannerPreferences string         `db:"planner_preferences"`
	GeneratedMenu      string         `db:"generated_menu"`
	WeekStartDate      sql.NullTime   `db:"week_start_date"`
	WeekEndDate        sql.NullTime   `db:"week_end_date"`
	IsFavorite         bool           `db:"is_favorite"`
	ClientRequestID    sql.NullString `db:"client_request_id"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r savedMenuRow) toModel() *SavedMenu {
	m := &SavedMenu{
		ID:                 r.ID,
		UserID:             r.UserID,
		Name:               r.Name,
		PlannerPreferences: json.RawMessage(r.PlannerPreferences),
		GeneratedMenu:      json.RawMessage(r.GeneratedMenu),
		IsFavorite:         r.IsFavorite,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.WeekStartDate.Valid {
		t := r.WeekStartDate.Time
		m.WeekStartDate = &t
	}
	if r.WeekEndDate.Valid {
		t := r.WeekEndDate.Time
		m.WeekEndDate = &t
	}
	if r.ClientRequestID.Valid {
		s := r.ClientRequestID.String
		m.ClientRequestID = &s
	}
	return m
}

type summaryRow struct {
	ID            string       `db:"id"`
	Name          string       `db:"name"`
	IsFavorite    bool         `db:"is_favorite"`
	WeekStartDate sql.NullTime `db:"week_start_date"`
	WeekEndDate   sql.NullTime `db:"week_end_date"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

// SaveParams is everything CreateSavedMenu writes. GroceryList is stored in
// its own row when present.
type SaveParams struct {
	UserID             int64
	Name               string
	PlannerPreferences json.RawMessage
	GeneratedMenu      json.RawMessage
	GroceryList        json.RawMessage
	WeekStartDate      *time.Time
	WeekEndDate        *time.Time
	IsFavorite         bool
	ClientRequestID    *string
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

const savedMenuColumns = `id, user_id, name, planner_preferences, generated_menu, week_start_date,
	week_end_date, is_favorite, client_request_id, created_at, updated_at`

// CreateSavedMenu stores a menu and its grocery list in one transaction.
// With a client request id, a replay returns the first record and created=false.
func (r *Repository) CreateSavedMenu(ctx context.Context, p SaveParams) (*SavedMenu, bool, error) {
	if p.ClientRequestID != nil {
		existing, err := r.getByClientRequestID(ctx, p.UserID, *p.ClientRequestID)
		if err != nil || existing != nil {
			return existing, false, err
		}
	}

	prefs := p.PlannerPreferences
	if len(prefs) == 0 {
		prefs = json.RawMessage("{}")
	}
	now := time.Now().UTC()
	row := savedMenuRow{
		ID:                 common.NewID("menu"),
		UserID:             p.UserID,
		Name:               p.Name,
		PlannerPreferences: string(prefs),
		GeneratedMenu:      string(p.GeneratedMenu),
		WeekStartDate:      nullTime(p.WeekStartDate),
		WeekEndDate:        nullTime(p.WeekEndDate),
		IsFavorite:         p.IsFavorite,
		ClientRequestID:    nullString(p.ClientRequestID),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	// Defer a rollback in case anything fails.
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO saved_menus (`+savedMenuColumns+`)
		VALUES (:id, :user_id, :name, :planner_preferences, :generated_menu, :week_start_date,
			:week_end_date, :is_favorite, :client_request_id, :created_at, :updated_at)`, row)
	if err != nil {
		if p.ClientRequestID != nil && isUniqueViolation(err) {
			// lost a race with a concurrent replay of the same request
			_ = tx.Rollback()
			existing, getErr := r.getByClientRequestID(ctx, p.UserID, *p.ClientRequestID)
			if getErr == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to insert saved menu: %w", err)
	}

	if len(p.GroceryList) > 0 {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO grocery_lists (saved_menu_id, items, created_at) VALUES (?, ?, ?)",
			row.ID, string(p.GroceryList), now,
		)
		if err != nil {
			return nil, false, fmt.Errorf("failed to insert grocery list: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return row.toModel(), true, nil
}

func (r *Repository) getByClientRequestID(ctx context.Context, userID int64, key string) (*SavedMenu, error) {
	var row savedMenuRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+savedMenuColumns+" FROM saved_menus WHERE user_id = ? AND client_request_id = ?",
		userID, key,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// GetSavedMenu returns the menu if it exists and belongs to userID
func (r *Repository) GetSavedMenu(ctx context.Context, id string, userID int64) (*SavedMenu, error) {
	var row savedMenuRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+savedMenuColumns+" FROM saved_menus WHERE id = ? AND user_id = ?",
		id, userID,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// ListSavedMenus returns the user's menus, newest first
func (r *Repository) ListSavedMenus(ctx context.Context, userID int64) ([]SavedMenuSummary, error) {
	var rows []summaryRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, name, is_favorite, week_start_date, week_end_date, created_at, updated_at
		FROM saved_menus WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}

	menus := make([]SavedMenuSummary, 0, len(rows))
	for _, row := range rows {
		s := SavedMenuSummary{
			ID:         row.ID,
			Name:       row.Name,
			IsFavorite: row.IsFavorite,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		}
		if row.WeekStartDate.Valid {
			t := row.WeekStartDate.Time
			s.WeekStartDate = &t
		}
		if row.WeekEndDate.Valid {
			t := row.WeekEndDate.Time
			s.WeekEndDate = &t
		}
		menus = append(menus, s)
	}
	return menus, nil
}

// UpdateSavedMenuMetadata renames and/or (un)favorites a menu. Nil fields are
// left alone. Returns nil if the menu is not the user's.
func (r *Repository) UpdateSavedMenuMetadata(ctx context.Context, id string, userID int64, name *string, isFavorite *bool) (*SavedMenu, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE saved_menus
		SET name = COALESCE(?, name), is_favorite = COALESCE(?, is_favorite), updated_at = ?
		WHERE id = ? AND user_id = ?`,
		nullString(name), nullBool(isFavorite), time.Now().UTC(), id, userID,
	)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil || n == 0 {
		return nil, err
	}
	return r.GetSavedMenu(ctx, id, userID)
}

func nullBool(b *bool) sql.NullBool {
	if b == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *b, Valid: true}
}

// ReplaceSavedMenuPayload overwrites the stored menu document. Last writer wins.
func (r *Repository) ReplaceSavedMenuPayload(ctx context.Context, id string, userID int64, payload []byte) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE saved_menus SET generated_menu = ?, updated_at = ? WHERE id = ? AND user_id = ?",
		string(payload), time.Now().UTC(), id, userID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// DeleteSavedMenu removes the menu; its grocery list goes with it
func (r *Repository) DeleteSavedMenu(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM saved_menus WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// GetGroceryList returns the list stored when the menu was saved, or nil
func (r *Repository) GetGroceryList(ctx context.Context, menuID string, userID int64) (json.RawMessage, error) {
	var items string
	err := r.db.GetContext(ctx, &items, `
		SELECT g.items FROM grocery_lists g
		JOIN saved_menus m ON m.id = g.saved_menu_id
		WHERE g.saved_menu_id = ? AND m.user_id = ?`, menuID, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return json.RawMessage(items), nil
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
