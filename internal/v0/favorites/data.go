package favorites

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"MenuMagic/internal/common"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new favorites repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: sqlx.NewDb(db, "sqlite3")}
}

type favoriteRow struct {
	ID             string         `db:"id"`
	UserID         int64          `db:"user_id"`
	RecipeName     string         `db:"recipe_name"`
	RecipeData     string         `db:"recipe_data"`
	SourceMenuID   sql.NullString `db:"source_menu_id"`
	SourceDay      sql.NullString `db:"source_day"`
	SourceMealType sql.NullString `db:"source_meal_type"`
	CreatedAt      time.Time      `db:"created_at"`
}

func optional(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.String
	return &s
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func (r favoriteRow) toModel() FavoriteRecipe {
	return FavoriteRecipe{
		ID:             r.ID,
		UserID:         r.UserID,
		RecipeName:     r.RecipeName,
		RecipeData:     json.RawMessage(r.RecipeData),
		SourceMenuID:   optional(r.SourceMenuID),
		SourceDay:      optional(r.SourceDay),
		SourceMealType: optional(r.SourceMealType),
		CreatedAt:      r.CreatedAt,
	}
}

// CreateFavorite stores a starred recipe for userID
func (r *Repository) CreateFavorite(ctx context.Context, userID int64, req CreateFavoriteRequest) (*FavoriteRecipe, error) {
	row := favoriteRow{
		ID:             common.NewID("fav"),
		UserID:         userID,
		RecipeName:     req.RecipeName,
		RecipeData:     string(req.RecipeData),
		SourceMenuID:   nullable(req.SourceMenuID),
		SourceDay:      nullable(req.SourceDay),
		SourceMealType: nullable(req.SourceMealType),
		CreatedAt:      time.Now().UTC(),
	}
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO favorite_recipes (id, user_id, recipe_name, recipe_data, source_menu_id, source_day, source_meal_type, created_at)
		VALUES (:id, :user_id, :recipe_name, :recipe_data, :source_menu_id, :source_day, :source_meal_type, :created_at)`, row)
	if err != nil {
		return nil, err
	}
	fav := row.toModel()
	return &fav, nil
}

// ListFavorites returns the user's favorites, newest first
func (r *Repository) ListFavorites(ctx context.Context, userID int64) ([]FavoriteRecipe, error) {
	var rows []favoriteRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, recipe_name, recipe_data, source_menu_id, source_day, source_meal_type, created_at
		FROM favorite_recipes WHERE user_id = ?
		ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}

	favorites := make([]FavoriteRecipe, 0, len(rows))
	for _, row := range rows {
		favorites = append(favorites, row.toModel())
	}
	return favorites, nil
}

// DeleteFavorite removes a favorite. false means no such favorite for this user.
func (r *Repository) DeleteFavorite(ctx context.Context, id string, userID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM favorite_recipes WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
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
