package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MenuMagic/internal/llm"
	"MenuMagic/internal/v0/menu"
)

// ErrNoDays means the model answered with an empty week
var ErrNoDays = errors.New("generated menu has no days")

// Generator turns preferences into a menu through a TextGenerator
type Generator struct {
	textGen llm.TextGenerator
	timeout time.Duration
}

// NewGenerator creates a generator. Each call is bounded by timeout.
func NewGenerator(textGen llm.TextGenerator, timeout time.Duration) *Generator {
	return &Generator{textGen: textGen, timeout: timeout}
}

// Generate builds the prompt, calls the model and shapes its answer
func (g *Generator) Generate(ctx context.Context, prefs Preferences) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.textGen.GenerateContent(ctx, BuildPrompt(prefs))
	if err != nil {
		return nil, fmt.Errorf("failed to generate menu: %w", err)
	}
	took := time.Since(start)

	m, err := parseMenu(resp.Content)
	if err != nil {
		return nil, err
	}
	return &Result{Menu: m, Model: resp.Model, Duration: took}, nil
}

// parseMenu reads model output into a GeneratedMenu. Meals come back as a
// list tagged by "type" and are folded into the slot map; a repeated type
// keeps the last one. A map of meals is accepted as is.
func parseMenu(content string) (menu.GeneratedMenu, error) {
	var raw struct {
		WeeklyMenu []struct {
			Day   string          `json:"day"`
			Meals json.RawMessage `json:"meals"`
		} `json:"weeklyMenu"`
		GroceryList []menu.CategoryGroup `json:"groceryList"`
	}
	if err := json.Unmarshal([]byte(llm.CleanJSON(content)), &raw); err != nil {
		return menu.GeneratedMenu{}, fmt.Errorf("failed to parse generated menu: %w", err)
	}
	if len(raw.WeeklyMenu) == 0 {
		return menu.GeneratedMenu{}, ErrNoDays
	}

	out := menu.GeneratedMenu{
		WeeklyMenu:  make([]menu.DayPlan, 0, len(raw.WeeklyMenu)),
		GroceryList: raw.GroceryList,
	}
	if out.GroceryList == nil {
		out.GroceryList = []menu.CategoryGroup{}
	}

	for _, day := range raw.WeeklyMenu {
		plan := menu.DayPlan{Day: day.Day, Meals: map[string]menu.Recipe{}}
		meals := bytes.TrimSpace(day.Meals)

		switch {
		case len(meals) == 0 || bytes.Equal(meals, []byte("null")):
			// a day with nothing planned
		case meals[0] == '{':
			if err := json.Unmarshal(meals, &plan.Meals); err != nil {
				return menu.GeneratedMenu{}, fmt.Errorf("failed to parse meals for %s: %w", day.Day, err)
			}
		default:
			var list []generatedMeal
			if err := json.Unmarshal(meals, &list); err != nil {
				return menu.GeneratedMenu{}, fmt.Errorf("failed to parse meals for %s: %w", day.Day, err)
			}
			for _, meal := range list {
				plan.Meals[meal.Type] = meal.Recipe
			}
		}
		out.WeeklyMenu = append(out.WeeklyMenu, plan)
	}

	if err := out.Validate(); err != nil {
		return menu.GeneratedMenu{}, err
	}
	return out, nil
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
