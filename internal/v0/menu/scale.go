package menu

import (
	"math"
	"regexp"
	"strconv"
)

var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// ScaleAmount multiplies every number inside a free text amount. "1 1/2 cups"
// becomes "2 2/4 cups" for two servings; amounts are meant to be read, not parsed.
func ScaleAmount(amount string, servings float64) string {
	return numberPattern.ReplaceAllStringFunc(amount, func(match string) string {
		v, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return match
		}
		return formatQuantity(v * servings)
	})
}

func formatQuantity(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// ScaleIngredients returns a copy of the ingredients sized for servings
func ScaleIngredients(ingredients []Ingredient, servings float64) []Ingredient {
	out := make([]Ingredient, len(ingredients))
	for i, ing := range ingredients {
		out[i] = Ingredient{Amount: ScaleAmount(ing.Amount, servings), Item: ing.Item}
	}
	return out
}

// ScaleRecipe returns the recipe with its ingredient amounts scaled. Nutrition
// stays per serving.
func ScaleRecipe(r Recipe, servings float64) Recipe {
	out := r.clone()
	out.Ingredients = ScaleIngredients(r.Ingredients, servings)
	return out
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
