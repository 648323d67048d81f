package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidMenuFormat means a stored or submitted payload is not a weekly menu
	ErrInvalidMenuFormat = errors.New("invalid menu format")

	// ErrDuplicateDay means the same day name appears twice in one menu
	ErrDuplicateDay = errors.New("duplicate day in menu")
)

// DecodeGeneratedMenu parses a menu document. A missing or non-array
// weeklyMenu is ErrInvalidMenuFormat; nothing is repaired.
func DecodeGeneratedMenu(raw []byte) (GeneratedMenu, error) {
	var probe struct {
		WeeklyMenu json.RawMessage `json:"weeklyMenu"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return GeneratedMenu{}, fmt.Errorf("%w: %v", ErrInvalidMenuFormat, err)
	}
	days := bytes.TrimSpace(probe.WeeklyMenu)
	if len(days) == 0 || days[0] != '[' {
		return GeneratedMenu{}, fmt.Errorf("%w: missing weeklyMenu", ErrInvalidMenuFormat)
	}

	var m GeneratedMenu
	if err := json.Unmarshal(raw, &m); err != nil {
		return GeneratedMenu{}, fmt.Errorf("%w: %v", ErrInvalidMenuFormat, err)
	}

	// a day stored with "meals": null reads as a day with no meals
	for i := range m.WeeklyMenu {
		if m.WeeklyMenu[i].Meals == nil {
			m.WeeklyMenu[i].Meals = map[string]Recipe{}
		}
	}
	return m, nil
}

// Validate checks the day list invariant: every day name at most once
func (m GeneratedMenu) Validate() error {
	seen := make(map[string]bool, len(m.WeeklyMenu))
	for _, d := range m.WeeklyMenu {
		if seen[d.Day] {
			return fmt.Errorf("%w: %s", ErrDuplicateDay, d.Day)
		}
		seen[d.Day] = true
	}
	return nil
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
