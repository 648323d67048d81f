package menu

import (
	"encoding/json"
	"testing"

	"MenuMagic/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSlots = []string{"Breakfast", "Lunch", "Dinner", "Snacks"}

func sampleMenu() GeneratedMenu {
	days := make([]DayPlan, 0, len(common.DayNames))
	for _, d := range common.DayNames {
		days = append(days, DayPlan{Day: d, Meals: map[string]Recipe{}})
	}
	days[0].Meals["Breakfast"] = Recipe{
		Name:        "Overnight Oats",
		PrepTime:    5,
		CookTime:    0,
		Ingredients: []Ingredient{{Amount: "1 cup", Item: "oats"}, {Amount: "0.5 cup", Item: "milk"}},
		Steps:       []string{"Mix", "Chill overnight"},
	}
	days[0].Meals["Dinner"] = Recipe{Name: "Lasagna", PrepTime: 30, CookTime: 60}
	days[1].Meals["Lunch"] = Recipe{Name: "Greek Salad", PrepTime: 10}
	days[2].Meals["Dinner"] = Recipe{Name: "Stir Fry", PrepTime: 10, CookTime: 10}
	days[2].Meals["Snacks"] = Recipe{Name: "Hummus", PrepTime: 5}
	return GeneratedMenu{
		WeeklyMenu: days,
		GroceryList: []CategoryGroup{
			{Category: "Produce", Items: []Ingredient{{Amount: "2", Item: "tomatoes"}}},
		},
	}
}

func encodeMenu(t *testing.T, m GeneratedMenu) []byte {
	t.Helper()
	raw, err := json.Marshal(m)
	require.NoError(t, err)
	return raw
}

func swapDecoded(t *testing.T, doc []byte, src, dst Coordinate) GeneratedMenu {
	t.Helper()
	out, err := Swap(doc, src, dst)
	require.NoError(t, err)
	m, err := DecodeGeneratedMenu(out)
	require.NoError(t, err)
	return m
}

func TestSwap(t *testing.T) {
	doc := encodeMenu(t, sampleMenu())

	t.Run("exchanges two filled slots across days", func(t *testing.T) {
		out := swapDecoded(t, doc, Coordinate{"Monday", "Dinner"}, Coordinate{"Tuesday", "Lunch"})

		assert.Equal(t, "Greek Salad", out.WeeklyMenu[0].Meals["Dinner"].Name)
		assert.Equal(t, "Lasagna", out.WeeklyMenu[1].Meals["Lunch"].Name)
		assert.Equal(t, "Overnight Oats", out.WeeklyMenu[0].Meals["Breakfast"].Name)
	})

	t.Run("moving into an empty slot removes the source key", func(t *testing.T) {
		out := swapDecoded(t, doc, Coordinate{"Monday", "Breakfast"}, Coordinate{"Sunday", "Dinner"})

		_, stillThere := out.WeeklyMenu[0].Meals["Breakfast"]
		assert.False(t, stillThere)
		assert.Equal(t, "Overnight Oats", out.WeeklyMenu[6].Meals["Dinner"].Name)
	})

	t.Run("two empty slots change nothing", func(t *testing.T) {
		out, err := Swap(doc, Coordinate{"Thursday", "Lunch"}, Coordinate{"Friday", "Snacks"})
		require.NoError(t, err)
		assert.Equal(t, string(doc), string(out))
	})

	t.Run("same slot within a day", func(t *testing.T) {
		out := swapDecoded(t, doc, Coordinate{"Wednesday", "Dinner"}, Coordinate{"Wednesday", "Snacks"})
		assert.Equal(t, "Hummus", out.WeeklyMenu[2].Meals["Dinner"].Name)
		assert.Equal(t, "Stir Fry", out.WeeklyMenu[2].Meals["Snacks"].Name)
	})

	t.Run("identical coordinates leave the document alone", func(t *testing.T) {
		out, err := Swap(doc, Coordinate{"Monday", "Breakfast"}, Coordinate{"Monday", "Breakfast"})
		require.NoError(t, err)
		assert.Equal(t, string(doc), string(out))
	})

	t.Run("unknown day", func(t *testing.T) {
		before := string(doc)

		_, err := Swap(doc, Coordinate{"Funday", "Lunch"}, Coordinate{"Monday", "Dinner"})
		assert.ErrorIs(t, err, ErrInvalidDay)

		_, err = Swap(doc, Coordinate{"Monday", "Dinner"}, Coordinate{"monday", "Lunch"})
		assert.ErrorIs(t, err, ErrInvalidDay)
		assert.Equal(t, before, string(doc))
	})

	t.Run("rejects documents that are not menus", func(t *testing.T) {
		for _, raw := range []string{
			`not json`,
			`{"weeklyMenu":{}}`,
			`{"weeklyMenu":[{"day":"Monday","meals":[]},{"day":"Tuesday","meals":{}}]}`,
		} {
			_, err := Swap([]byte(raw), Coordinate{"Monday", "Dinner"}, Coordinate{"Tuesday", "Lunch"})
			assert.ErrorIs(t, err, ErrInvalidMenuFormat, raw)
		}
	})

	t.Run("keeps fields it does not model", func(t *testing.T) {
		raw := `{"weeklyMenu":[` +
			`{"day":"Monday","meals":{"Dinner":{"name":"A","mealType":"dinner"}},"note":"x"},` +
			`{"day":"Tuesday","meals":null},` +
			`{"day":"Wednesday","meals":{"Lunch":{"name":"W","tags":["quick"]}}}` +
			`],"generatedAt":"2025-01-01"}`

		out, err := Swap([]byte(raw), Coordinate{"Monday", "Dinner"}, Coordinate{"Tuesday", "Lunch"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"weeklyMenu":[`+
			`{"day":"Monday","meals":{},"note":"x"},`+
			`{"day":"Tuesday","meals":{"Lunch":{"name":"A","mealType":"dinner"}}},`+
			`{"day":"Wednesday","meals":{"Lunch":{"name":"W","tags":["quick"]}}}`+
			`],"generatedAt":"2025-01-01"}`, string(out))
		assert.Contains(t, string(out), `{"day":"Wednesday","meals":{"Lunch":{"name":"W","tags":["quick"]}}}],"generatedAt":"2025-01-01"}`)
	})

	t.Run("never mutates the input and touches only the two slots", func(t *testing.T) {
		before := sampleMenu()
		input := encodeMenu(t, before)
		src, dst := Coordinate{"Monday", "Dinner"}, Coordinate{"Wednesday", "Dinner"}

		out := swapDecoded(t, input, src, dst)
		assert.Equal(t, string(encodeMenu(t, before)), string(input))

		for i, day := range before.WeeklyMenu {
			for _, slot := range testSlots {
				here := Coordinate{day.Day, slot}
				if here == src || here == dst {
					continue
				}
				want, wantOK := day.Meals[slot]
				got, gotOK := out.WeeklyMenu[i].Meals[slot]
				assert.Equal(t, wantOK, gotOK, "%v", here)
				assert.Equal(t, want, got, "%v", here)
			}
		}
		assert.Equal(t, before.GroceryList, out.GroceryList)
	})

	t.Run("swapping twice restores the menu for every pair", func(t *testing.T) {
		var coords []Coordinate
		for _, d := range common.DayNames {
			for _, s := range testSlots {
				coords = append(coords, Coordinate{d, s})
			}
		}
		for _, a := range coords {
			for _, b := range coords {
				once, err := Swap(doc, a, b)
				require.NoError(t, err)
				twice, err := Swap(once, a, b)
				require.NoError(t, err)
				if !assert.JSONEq(t, string(doc), string(twice), "%v <-> %v", a, b) {
					return
				}
			}
		}
	})
}

func TestDecodeGeneratedMenu(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		m, err := DecodeGeneratedMenu(encodeMenu(t, sampleMenu()))
		require.NoError(t, err)
		assert.Equal(t, sampleMenu(), m)
	})

	t.Run("rejects documents without a day list", func(t *testing.T) {
		for _, raw := range []string{
			`{}`,
			`{"weeklyMenu": null}`,
			`{"weeklyMenu": {"Monday": {}}}`,
			`{"weeklyMenu": "Monday"}`,
			`null`,
			`[1,2]`,
			`not json`,
		} {
			_, err := DecodeGeneratedMenu([]byte(raw))
			assert.ErrorIs(t, err, ErrInvalidMenuFormat, raw)
		}
	})

	t.Run("null meals read as an empty day", func(t *testing.T) {
		m, err := DecodeGeneratedMenu([]byte(`{"weeklyMenu":[{"day":"Monday","meals":null},{"day":"Tuesday"}]}`))
		require.NoError(t, err)
		require.Len(t, m.WeeklyMenu, 2)
		assert.NotNil(t, m.WeeklyMenu[0].Meals)
		assert.NotNil(t, m.WeeklyMenu[1].Meals)
	})

	t.Run("duplicate days fail validation", func(t *testing.T) {
		m, err := DecodeGeneratedMenu([]byte(`{"weeklyMenu":[{"day":"Monday","meals":{}},{"day":"Monday","meals":{}}]}`))
		require.NoError(t, err)
		assert.ErrorIs(t, m.Validate(), ErrDuplicateDay)
		assert.NoError(t, sampleMenu().Validate())
	})

	t.Run("grocery list is carried through", func(t *testing.T) {
		raw := `{"weeklyMenu":[],"groceryList":[{"category":"Dairy","items":[{"amount":"1 l","item":"milk"}]}]}`
		m, err := DecodeGeneratedMenu([]byte(raw))
		require.NoError(t, err)
		assert.Equal(t, []CategoryGroup{{Category: "Dairy", Items: []Ingredient{{Amount: "1 l", Item: "milk"}}}}, m.GroceryList)
	})
}

func TestBusyDayConflicts(t *testing.T) {
	m := sampleMenu()

	assert.True(t, IsComplex(Recipe{PrepTime: 20, CookTime: 11}, 30))
	assert.False(t, IsComplex(Recipe{PrepTime: 20, CookTime: 10}, 30))

	t.Run("only busy days over budget", func(t *testing.T) {
		conflicts := BusyDayConflicts(m, []string{"Monday", "Tuesday"}, 30)
		require.Len(t, conflicts, 1)
		assert.Equal(t, Conflict{Day: "Monday", MealType: "Dinner", RecipeName: "Lasagna", TotalMinutes: 90, Budget: 30}, conflicts[0])
	})

	t.Run("day then slot order", func(t *testing.T) {
		conflicts := BusyDayConflicts(m, []string{"Wednesday", "Monday"}, 4)
		var got []string
		for _, c := range conflicts {
			got = append(got, c.Day+"/"+c.MealType)
		}
		assert.Equal(t, []string{"Monday/Breakfast", "Monday/Dinner", "Wednesday/Dinner", "Wednesday/Snacks"}, got)
	})

	t.Run("no busy days", func(t *testing.T) {
		assert.Empty(t, BusyDayConflicts(m, nil, 0))
	})

	t.Run("unknown slot labels sort last", func(t *testing.T) {
		d := DayPlan{Day: "Monday", Meals: map[string]Recipe{"Brunch": {}, "Dinner": {}, "Breakfast": {}, "Afternoon Tea": {}}}
		assert.Equal(t, []string{"Breakfast", "Dinner", "Afternoon Tea", "Brunch"}, d.Slots())
	})
}

func TestScaleAmount(t *testing.T) {
	tests := []struct {
		amount   string
		servings float64
		want     string
	}{
		{"1 cup", 3, "3 cup"},
		{"0.5 tsp", 3, "1.5 tsp"},
		{"1.25 lb", 2, "2.5 lb"},
		{"0.33 cup", 2, "0.7 cup"},
		{"2.5 kg", 2, "5 kg"},
		{"1/2 cup", 2, "2/4 cup"},
		{"2-3 cloves", 2, "4-6 cloves"},
		{"a pinch", 4, "a pinch"},
		{"", 4, ""},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleAmount(tt.amount, tt.servings))
		})
	}

	t.Run("recipe copy", func(t *testing.T) {
		r := sampleMenu().WeeklyMenu[0].Meals["Breakfast"]
		scaled := ScaleRecipe(r, 4)
		assert.Equal(t, "4 cup", scaled.Ingredients[0].Amount)
		assert.Equal(t, "2 cup", scaled.Ingredients[1].Amount)
		assert.Equal(t, "1 cup", r.Ingredients[0].Amount)
		assert.Equal(t, r.Steps, scaled.Steps)
	})
}
