package menu

import (
	"encoding/json"
	"time"
)

// Ingredient is a free text quantity plus the thing being measured. Numbers
// inside Amount are scaled by serving count.
type Ingredient struct {
	Amount string `json:"amount"`
	Item   string `json:"item"`
}

// Recipe is a value: it has no identity until it is saved as a favorite.
// Nutrition is per single adult serving.
type Recipe struct {
	Name               string       `json:"name"`
	Description        string       `json:"description"`
	PrepTime           int          `json:"prepTime"`
	CookTime           int          `json:"cookTime"`
	CaloriesPerServing float64      `json:"caloriesPerServing"`
	Protein            float64      `json:"protein"`
	Carbs              float64      `json:"carbs"`
	Fat                float64      `json:"fat"`
	Ingredients        []Ingredient `json:"ingredients"`
	Steps              []string     `json:"steps"`
}

// TotalTime is prep plus cook time in minutes
func (r Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

func (r Recipe) clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = make([]Ingredient, len(r.Ingredients))
		copy(out.Ingredients, r.Ingredients)
	}
	if r.Steps != nil {
		out.Steps = make([]string, len(r.Steps))
		copy(out.Steps, r.Steps)
	}
	return out
}

// DayPlan maps a slot label ("Breakfast", "Dinner", ...) to its recipe. A
// slot with no meal has no key at all.
type DayPlan struct {
	Day   string            `json:"day"`
	Meals map[string]Recipe `json:"meals"`
}

// CategoryGroup is one aisle of the grocery list
type CategoryGroup struct {
	Category string       `json:"category"`
	Items    []Ingredient `json:"items"`
}

// GeneratedMenu is the document produced by generation and stored on a
// SavedMenu: seven days in calendar order plus the week's grocery list.
type GeneratedMenu struct {
	WeeklyMenu  []DayPlan       `json:"weeklyMenu"`
	GroceryList []CategoryGroup `json:"groceryList"`
}

// DayIndex returns the position of the named day, or -1
func (m GeneratedMenu) DayIndex(day string) int {
	for i, d := range m.WeeklyMenu {
		if d.Day == day {
			return i
		}
	}
	return -1
}

// SavedMenu is a generated menu a user chose to keep
type SavedMenu struct {
	ID                 string          `json:"id"`
	UserID             int64           `json:"userId"`
	Name               string          `json:"name"`
	PlannerPreferences json.RawMessage `json:"plannerPreferences"`
	GeneratedMenu      json.RawMessage `json:"generatedMenu"`
	WeekStartDate      *time.Time      `json:"weekStartDate"`
	WeekEndDate        *time.Time      `json:"weekEndDate"`
	IsFavorite         bool            `json:"isFavorite"`
	ClientRequestID    *string         `json:"clientRequestId,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// SavedMenuSummary is the list view of a SavedMenu, without payloads
type SavedMenuSummary struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	IsFavorite    bool       `json:"isFavorite"`
	WeekStartDate *time.Time `json:"weekStartDate"`
	WeekEndDate   *time.Time `json:"weekEndDate"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// SaveMenuRequest is the body of POST /menus. ClientRequestID makes the save
// idempotent per user, so a menu generated before sign in can be replayed.
type SaveMenuRequest struct {
	Name               string          `json:"name" binding:"required,min=1,max=200"`
	PlannerPreferences json.RawMessage `json:"plannerPreferences"`
	GeneratedMenu      json.RawMessage `json:"generatedMenu" binding:"required"`
	WeekStartDate      *time.Time      `json:"weekStartDate"`
	WeekEndDate        *time.Time      `json:"weekEndDate"`
	IsFavorite         bool            `json:"isFavorite"`
	ClientRequestID    *string         `json:"clientRequestId" binding:"omitempty,min=8,max=128"`
}

// UpdateMenuRequest is the body of PATCH /menus/:id
type UpdateMenuRequest struct {
	Name       *string `json:"name" binding:"omitempty,min=1,max=200"`
	IsFavorite *bool   `json:"isFavorite"`
}

// Coordinate addresses one slot of one day
type Coordinate struct {
	Day      string `json:"day" binding:"required"`
	MealType string `json:"mealType" binding:"required"`
}

// SwapRequest is the body of PATCH /menus/:id/swap
type SwapRequest struct {
	Source      Coordinate `json:"source" binding:"required"`
	Destination Coordinate `json:"destination" binding:"required"`
}

// plannerSnapshot is the part of the stored planner preferences the API reads back
type plannerSnapshot struct {
	Adults      *int     `json:"adults"`
	BusyDays    []string `json:"busyDays"`
	CookingTime *int     `json:"cookingTime"`
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
