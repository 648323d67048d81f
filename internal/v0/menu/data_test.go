package menu

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/databases"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := databases.OpenMigrated(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestUser(t *testing.T, db *sql.DB, email string) *auth.User {
	t.Helper()
	user, err := auth.NewRepository(db).CreateUser(email, "Test User")
	require.NoError(t, err)
	return user
}

func saveParams(t *testing.T, userID int64, name string) SaveParams {
	t.Helper()
	m := sampleMenu()
	payload := encodeMenu(t, m)
	grocery, err := json.Marshal(m.GroceryList)
	require.NoError(t, err)
	return SaveParams{
		UserID:             userID,
		Name:               name,
		PlannerPreferences: json.RawMessage(`{"adults":2,"busyDays":["Monday"],"cookingTime":30}`),
		GeneratedMenu:      payload,
		GroceryList:        grocery,
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewRepository(db)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")

	t.Run("create and get", func(t *testing.T) {
		start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 6)
		p := saveParams(t, alice.ID, "First week")
		p.WeekStartDate, p.WeekEndDate = &start, &end

		saved, created, err := repo.CreateSavedMenu(ctx, p)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Contains(t, saved.ID, "menu_")

		got, err := repo.GetSavedMenu(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "First week", got.Name)
		assert.JSONEq(t, string(p.GeneratedMenu), string(got.GeneratedMenu))
		assert.JSONEq(t, string(p.PlannerPreferences), string(got.PlannerPreferences))
		require.NotNil(t, got.WeekStartDate)
		assert.True(t, start.Equal(*got.WeekStartDate))
		assert.Nil(t, got.ClientRequestID)

		items, err := repo.GetGroceryList(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		assert.JSONEq(t, string(p.GroceryList), string(items))
	})

	t.Run("another owner sees nothing", func(t *testing.T) {
		saved, _, err := repo.CreateSavedMenu(ctx, saveParams(t, alice.ID, "Private"))
		require.NoError(t, err)

		got, err := repo.GetSavedMenu(ctx, saved.ID, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, got)

		items, err := repo.GetGroceryList(ctx, saved.ID, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, items)

		updated, err := repo.UpdateSavedMenuMetadata(ctx, saved.ID, bob.ID, nil, nil)
		require.NoError(t, err)
		assert.Nil(t, updated)

		ok, err := repo.ReplaceSavedMenuPayload(ctx, saved.ID, bob.ID, []byte(`{"weeklyMenu":[]}`))
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.DeleteSavedMenu(ctx, saved.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		still, err := repo.GetSavedMenu(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		assert.NotNil(t, still)
	})

	t.Run("missing id", func(t *testing.T) {
		got, err := repo.GetSavedMenu(ctx, "menu_nope", alice.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("list is newest first and owner scoped", func(t *testing.T) {
		carol := newTestUser(t, db, "carol@example.com")
		for _, name := range []string{"one", "two", "three"} {
			_, _, err := repo.CreateSavedMenu(ctx, saveParams(t, carol.ID, name))
			require.NoError(t, err)
		}

		menus, err := repo.ListSavedMenus(ctx, carol.ID)
		require.NoError(t, err)
		require.Len(t, menus, 3)
		assert.Equal(t, "three", menus[0].Name)
		assert.Equal(t, "one", menus[2].Name)

		empty, err := repo.ListSavedMenus(ctx, newTestUser(t, db, "dave@example.com").ID)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("partial metadata update", func(t *testing.T) {
		saved, _, err := repo.CreateSavedMenu(ctx, saveParams(t, alice.ID, "Before"))
		require.NoError(t, err)

		fav := true
		updated, err := repo.UpdateSavedMenuMetadata(ctx, saved.ID, alice.ID, nil, &fav)
		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, "Before", updated.Name)
		assert.True(t, updated.IsFavorite)

		name := "After"
		updated, err = repo.UpdateSavedMenuMetadata(ctx, saved.ID, alice.ID, &name, nil)
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Name)
		assert.True(t, updated.IsFavorite)
		assert.False(t, updated.UpdatedAt.Before(saved.UpdatedAt))
	})

	t.Run("replace payload", func(t *testing.T) {
		saved, _, err := repo.CreateSavedMenu(ctx, saveParams(t, alice.ID, "Swap me"))
		require.NoError(t, err)

		ok, err := repo.ReplaceSavedMenuPayload(ctx, saved.ID, alice.ID, []byte(`{"weeklyMenu":[]}`))
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := repo.GetSavedMenu(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		assert.JSONEq(t, `{"weeklyMenu":[]}`, string(got.GeneratedMenu))
	})

	t.Run("delete cascades to the grocery list", func(t *testing.T) {
		saved, _, err := repo.CreateSavedMenu(ctx, saveParams(t, alice.ID, "Gone"))
		require.NoError(t, err)

		ok, err := repo.DeleteSavedMenu(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		var n int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM grocery_lists WHERE saved_menu_id = ?", saved.ID).Scan(&n))
		assert.Zero(t, n)
	})

	t.Run("client request id makes saves idempotent", func(t *testing.T) {
		key := "pending-1234"
		p := saveParams(t, alice.ID, "Pending")
		p.ClientRequestID = &key

		first, created, err := repo.CreateSavedMenu(ctx, p)
		require.NoError(t, err)
		assert.True(t, created)

		p.Name = "Pending again"
		second, created, err := repo.CreateSavedMenu(ctx, p)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Pending", second.Name)

		// the key is per user
		p.UserID = bob.ID
		other, created, err := repo.CreateSavedMenu(ctx, p)
		require.NoError(t, err)
		assert.True(t, created)
		assert.NotEqual(t, first.ID, other.ID)
	})

	t.Run("no grocery list row without a list", func(t *testing.T) {
		p := saveParams(t, alice.ID, "No groceries")
		p.GroceryList = nil
		p.PlannerPreferences = nil

		saved, _, err := repo.CreateSavedMenu(ctx, p)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, string(saved.PlannerPreferences))

		items, err := repo.GetGroceryList(ctx, saved.ID, alice.ID)
		require.NoError(t, err)
		assert.Nil(t, items)
	})
}
