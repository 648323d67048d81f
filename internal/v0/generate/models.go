package generate

import (
	"time"

	"MenuMagic/internal/v0/menu"
)

// Preferences is what the planner form collects
type Preferences struct {
	Adults      int      `json:"adults" binding:"min=1,max=20"`
	Kids        int      `json:"kids" binding:"min=0,max=20"`
	KidsAges    []int    `json:"kidsAges" binding:"omitempty,dive,min=0,max=17"`
	Meals       []string `json:"meals" binding:"required,min=1,dive,oneof=breakfast lunch dinner snacks"`
	Cuisines    []string `json:"cuisines" binding:"omitempty,dive,oneof=italian mexican asian american mediterranean indian"`
	Diets       []string `json:"diets" binding:"omitempty,dive,oneof=none vegetarian vegan gluten-free keto low-carb"`
	BusyDays    []string `json:"busyDays" binding:"omitempty,dive,dayname"`
	CookingTime int      `json:"cookingTime" binding:"min=0,max=600"`
	Notes       string   `json:"notes" binding:"max=2000"`
}

// Result is one successful generation
type Result struct {
	Menu     menu.GeneratedMenu
	Model    string
	Duration time.Duration
}

// generatedMeal is one entry of a day's meal list as the model returns it
type generatedMeal struct {
	Type string `json:"type"`
	menu.Recipe
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
