package favorites

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"
	"MenuMagic/internal/databases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }

func TestFavorites(t *testing.T) {
	db, err := databases.OpenMigrated(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	users := auth.NewRepository(db)
	sessions := auth.NewSessionStore(users, time.Hour, false)
	repo := NewRepository(db)

	router := gin.New()
	RegisterRoutes(router.Group("/api/v0"), NewHandler(repo), auth.NewMiddleware(sessions, auth.NewQuotaEngine(users, 3)))

	login := func(email string) (*auth.User, *http.Cookie) {
		user, err := users.CreateUser(email, "Fan")
		require.NoError(t, err)
		s, err := sessions.CreateSession(user.ID)
		require.NoError(t, err)
		return user, &http.Cookie{Name: auth.SessionCookieName, Value: s.ID}
	}
	alice, aliceCookie := login("alice@example.com")
	_, bobCookie := login("bob@example.com")

	do := func(method, path string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, common.APIResponse) {
		var raw []byte
		if body != nil {
			raw, err = json.Marshal(body)
			require.NoError(t, err)
		}
		req := httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		var resp common.APIResponse
		if w.Body.Len() > 0 {
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		}
		return w, resp
	}

	t.Run("repository round trip and ordering", func(t *testing.T) {
		ctx := context.Background()
		first, err := repo.CreateFavorite(ctx, alice.ID, CreateFavoriteRequest{
			RecipeName:   "Pancakes",
			RecipeData:   json.RawMessage(`{"name":"Pancakes","prepTime":5}`),
			SourceMenuID: strPtr("menu_abc"),
			SourceDay:    strPtr("Sunday"),
		})
		require.NoError(t, err)
		assert.Contains(t, first.ID, "fav_")

		_, err = repo.CreateFavorite(ctx, alice.ID, CreateFavoriteRequest{
			RecipeName: "Chili",
			RecipeData: json.RawMessage(`{"name":"Chili"}`),
		})
		require.NoError(t, err)

		list, err := repo.ListFavorites(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Chili", list[0].RecipeName)
		assert.Nil(t, list[0].SourceDay)
		assert.Equal(t, "Pancakes", list[1].RecipeName)
		assert.Equal(t, "Sunday", *list[1].SourceDay)
		assert.Nil(t, list[1].SourceMealType)
		assert.JSONEq(t, `{"name":"Pancakes","prepTime":5}`, string(list[1].RecipeData))

		ok, err := repo.DeleteFavorite(ctx, first.ID, alice.ID+1000)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.DeleteFavorite(ctx, first.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("requires a session", func(t *testing.T) {
		w, _ := do(http.MethodGet, "/api/v0/favorites", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create, list, delete over http", func(t *testing.T) {
		w, resp := do(http.MethodPost, "/api/v0/favorites", gin.H{
			"recipeName":     "Tacos",
			"recipeData":     gin.H{"name": "Tacos", "cookTime": 15},
			"sourceDay":      "Friday",
			"sourceMealType": "Dinner",
		}, bobCookie)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		id := resp.Data.(map[string]interface{})["id"].(string)

		w, resp = do(http.MethodGet, "/api/v0/favorites", nil, bobCookie)
		require.Equal(t, http.StatusOK, w.Code)
		favs := resp.Data.(map[string]interface{})["favorites"].([]interface{})
		require.Len(t, favs, 1)
		assert.Equal(t, "Tacos", favs[0].(map[string]interface{})["recipeName"])

		w, _ = do(http.MethodDelete, "/api/v0/favorites/"+id, nil, aliceCookie)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w, _ = do(http.MethodDelete, "/api/v0/favorites/"+id, nil, bobCookie)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w, _ = do(http.MethodDelete, "/api/v0/favorites/"+id, nil, bobCookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation", func(t *testing.T) {
		w, resp := do(http.MethodPost, "/api/v0/favorites", gin.H{"recipeData": gin.H{}}, bobCookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, common.CodeValidation, resp.Code)

		w, _ = do(http.MethodPost, "/api/v0/favorites", gin.H{"recipeName": "X", "recipeData": "just text"}, bobCookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w, _ = do(http.MethodPost, "/api/v0/favorites", gin.H{"recipeName": "X", "recipeData": gin.H{}, "sourceDay": "Moonday"}, bobCookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
