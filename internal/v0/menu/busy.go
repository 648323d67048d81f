package menu

import "sort"

// Slot labels in calendar order. Anything else the model invents sorts after
// these, alphabetically.
var slotOrder = map[string]int{
	"Breakfast": 0,
	"Lunch":     1,
	"Dinner":    2,
	"Snacks":    3,
}

// Slots returns the day's slot labels in display order
func (d DayPlan) Slots() []string {
	slots := make([]string, 0, len(d.Meals))
	for slot := range d.Meals {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		oi, iKnown := slotOrder[slots[i]]
		oj, jKnown := slotOrder[slots[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return slots[i] < slots[j]
		}
	})
	return slots
}

// Conflict is a complex recipe planned on a day the user marked busy
type Conflict struct {
	Day          string `json:"day"`
	MealType     string `json:"mealType"`
	RecipeName   string `json:"recipeName"`
	TotalMinutes int    `json:"totalMinutes"`
	Budget       int    `json:"budget"`
}

// IsComplex reports whether the recipe takes longer than budget minutes
func IsComplex(r Recipe, budget int) bool {
	return r.TotalTime() > budget
}

// BusyDayConflicts lists complex recipes on busy days, in day then slot order.
func BusyDayConflicts(m GeneratedMenu, busyDays []string, budget int) []Conflict {
	busy := make(map[string]bool, len(busyDays))
	for _, d := range busyDays {
		busy[d] = true
	}

	conflicts := []Conflict{}
	for _, day := range m.WeeklyMenu {
		if !busy[day.Day] {
			continue
		}
		for _, slot := range day.Slots() {
			r := day.Meals[slot]
			if !IsComplex(r, budget) {
				continue
			}
			conflicts = append(conflicts, Conflict{
				Day:          day.Day,
				MealType:     slot,
				RecipeName:   r.Name,
				TotalMinutes: r.TotalTime(),
				Budget:       budget,
			})
		}
	}
	return conflicts
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
