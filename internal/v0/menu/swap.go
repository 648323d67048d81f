package menu

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidDay means a coordinate names a day the menu does not have
var ErrInvalidDay = errors.New("invalid source or destination day")

// Swap exchanges whatever sits at src and dst of a stored menu document,
// including nothing. An empty side removes the key on the other side rather
// than storing a zero recipe. Only the meals objects of the addressed days
// are rewritten; every other byte of doc comes back as it was, fields this
// package does not model included. doc is never modified.
func Swap(doc []byte, src, dst Coordinate) ([]byte, error) {
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("%w: not a JSON document", ErrInvalidMenuFormat)
	}
	week := gjson.GetBytes(doc, "weeklyMenu")
	if !week.IsArray() {
		return nil, fmt.Errorf("%w: missing weeklyMenu", ErrInvalidMenuFormat)
	}
	days := week.Array()
	si, di := dayPosition(days, src.Day), dayPosition(days, dst.Day)
	if si < 0 || di < 0 {
		return nil, ErrInvalidDay
	}
	if src == dst {
		return doc, nil
	}

	srcMeals, dstMeals := days[si].Get("meals"), days[di].Get("meals")
	if !mealsShape(srcMeals) || !mealsShape(dstMeals) {
		return nil, fmt.Errorf("%w: meals is not an object", ErrInvalidMenuFormat)
	}

	// read both sides before writing either
	a, hasA := slotValue(srcMeals, src.MealType)
	b, hasB := slotValue(dstMeals, dst.MealType)
	if !hasA && !hasB {
		return doc, nil
	}

	if si == di {
		meals := place(srcMeals.Raw, dst.MealType, a, hasA)
		meals = place(meals, src.MealType, b, hasB)
		return setMeals(doc, si, srcMeals.Raw, meals)
	}

	out, err := setMeals(doc, si, srcMeals.Raw, place(srcMeals.Raw, src.MealType, b, hasB))
	if err != nil {
		return nil, err
	}
	return setMeals(out, di, dstMeals.Raw, place(dstMeals.Raw, dst.MealType, a, hasA))
}

func dayPosition(days []gjson.Result, day string) int {
	for i, d := range days {
		if name := d.Get("day"); name.Type == gjson.String && name.String() == day {
			return i
		}
	}
	return -1
}

// mealsShape accepts an object, null, or a missing key
func mealsShape(meals gjson.Result) bool {
	return !meals.Exists() || meals.Type == gjson.Null || meals.IsObject()
}

// slotValue returns the raw JSON stored under key. A repeated key reads as
// its last occurrence, as encoding/json would.
func slotValue(meals gjson.Result, key string) (string, bool) {
	var raw string
	found := false
	meals.ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			raw, found = v.Raw, true
		}
		return true
	})
	return raw, found
}

// place puts raw under key, or drops key when present is false. Other
// entries keep their order and bytes.
func place(meals, key, raw string, present bool) string {
	obj := gjson.Parse(meals)
	if _, had := slotValue(obj, key); !had && !present {
		return meals
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	entry := func(k, v string) {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		buf.WriteString(k)
		buf.WriteByte(':')
		buf.WriteString(v)
	}

	written := false
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() != key {
			entry(k.Raw, v.Raw)
			return true
		}
		if present && !written {
			entry(k.Raw, raw)
			written = true
		}
		return true
	})
	if present && !written {
		name, _ := json.Marshal(key)
		entry(string(name), raw)
	}
	buf.WriteByte('}')
	return buf.String()
}

func setMeals(doc []byte, day int, before, after string) ([]byte, error) {
	if before == after {
		return doc, nil
	}
	out, err := sjson.SetRawBytes(doc, "weeklyMenu."+strconv.Itoa(day)+".meals", []byte(after))
	if err != nil {
		return nil, fmt.Errorf("failed to write meals for day %d: %w", day, err)
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
