package generate

import (
	"bytes"
	_ "embed"
	"strconv"
	"strings"
	"text/template"

	"MenuMagic/internal/common"
)

//go:embed prompt.md
var promptSource string

var promptTemplate = template.Must(template.New("menu").Parse(promptSource))

// maxComplexPerWeek caps complex dishes across the whole plan
const maxComplexPerWeek = 3

type promptView struct {
	Adults            int
	Kids              int
	KidsAges          string
	Meals             string
	Diets             string
	Cuisines          string
	BusyDays          string
	CookingTime       int
	Notes             string
	MaxComplexPerWeek int
	FirstDay          string
	LastDay           string
}

// BuildPrompt renders the generation prompt. It formats, it does not validate:
// whatever the preferences hold ends up in the text as is.
func BuildPrompt(p Preferences) string {
	ages := make([]string, len(p.KidsAges))
	for i, a := range p.KidsAges {
		ages[i] = strconv.Itoa(a)
	}
	notes := p.Notes
	if notes == "" {
		notes = "None"
	}

	view := promptView{
		Adults:            p.Adults,
		Kids:              p.Kids,
		KidsAges:          strings.Join(ages, ", "),
		Meals:             strings.Join(p.Meals, ", "),
		Diets:             strings.Join(p.Diets, ", "),
		Cuisines:          strings.Join(p.Cuisines, ", "),
		BusyDays:          strings.Join(p.BusyDays, ", "),
		CookingTime:       p.CookingTime,
		Notes:             notes,
		MaxComplexPerWeek: maxComplexPerWeek,
		FirstDay:          common.DayNames[0],
		LastDay:           common.DayNames[len(common.DayNames)-1],
	}

	var buf bytes.Buffer
	// the template only reads fields of promptView, so Execute cannot fail
	if err := promptTemplate.Execute(&buf, view); err != nil {
		panic("generate: prompt template: " + err.Error())
	}
	return buf.String()
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
