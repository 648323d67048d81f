package favorites

import (
	"encoding/json"
	"time"
)

// FavoriteRecipe is a recipe a user starred. The source fields say where it
// was found; they are informational and are not kept in sync with the menu.
type FavoriteRecipe struct {
	ID             string          `json:"id"`
	UserID         int64           `json:"userId"`
	RecipeName     string          `json:"recipeName"`
	RecipeData     json.RawMessage `json:"recipeData"`
	SourceMenuID   *string         `json:"sourceMenuId"`
	SourceDay      *string         `json:"sourceDay"`
	SourceMealType *string         `json:"sourceMealType"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// CreateFavoriteRequest is the body of POST /favorites
type CreateFavoriteRequest struct {
	RecipeName     string          `json:"recipeName" binding:"required,min=1,max=200"`
	RecipeData     json.RawMessage `json:"recipeData" binding:"required"`
	SourceMenuID   *string         `json:"sourceMenuId" binding:"omitempty,max=64"`
	SourceDay      *string         `json:"sourceDay" binding:"omitempty,dayname"`
	SourceMealType *string         `json:"sourceMealType" binding:"omitempty,max=64"`
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
