package generate

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"
	"MenuMagic/internal/databases"
	"MenuMagic/internal/llm"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeGenerator struct {
	content string
	err     error
	block   bool
	prompts []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return llm.ContentResponse{}, ctx.Err()
	}
	if f.err != nil {
		return llm.ContentResponse{}, f.err
	}
	return llm.ContentResponse{Content: f.content, Model: "fake-model"}, nil
}

const modelOutput = "```json\n" + `{
  "weeklyMenu": [
    {"day": "Monday", "meals": [
      {"type": "Dinner", "name": "Tacos", "prepTime": 10, "cookTime": 15,
       "ingredients": [{"amount": "200g", "item": "beef"}], "steps": ["Cook"]},
      {"type": "Breakfast", "name": "Toast", "prepTime": 2, "cookTime": 3}
    ]},
    {"day": "Tuesday", "meals": [
      {"type": "Dinner", "name": "First", "prepTime": 1},
      {"type": "Dinner", "name": "Second", "prepTime": 2}
    ]},
    {"day": "Wednesday", "meals": []}
  ],
  "groceryList": [{"category": "Meat", "items": [{"amount": "200g", "item": "beef"}]}]
}` + "\n```"

func scenarioPrefs() Preferences {
	return Preferences{
		Adults:      2,
		Kids:        1,
		KidsAges:    []int{5},
		Meals:       []string{"dinner"},
		Diets:       []string{"none"},
		BusyDays:    []string{"Tuesday"},
		CookingTime: 30,
		Notes:       "",
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("embeds the preferences", func(t *testing.T) {
		prompt := BuildPrompt(scenarioPrefs())

		assert.Contains(t, prompt, "2 adults")
		assert.Contains(t, prompt, "1 kids (ages: 5)")
		assert.Contains(t, prompt, "Meals to plan per day: dinner\n")
		assert.Contains(t, prompt, "Maximum cooking time on regular days: 30 minutes")
		assert.Contains(t, prompt, "Busy days (need ultra-fast meals under 15 mins, or leftovers): Tuesday")
		assert.Contains(t, prompt, "Additional notes: None")
		assert.Contains(t, prompt, "Dietary restrictions: none")
	})

	t.Run("fixed constraints are always present", func(t *testing.T) {
		prompt := BuildPrompt(Preferences{})

		assert.Contains(t, prompt, "No more than 1 complex dish per day")
		assert.Contains(t, prompt, "Total complex meals per week <= 3")
		assert.Contains(t, prompt, "A dish is COMPLEX if it meets ANY of these criteria")
		assert.Contains(t, prompt, "more than 30 minutes of active cooking time")
		assert.Contains(t, prompt, "more than 10 items")
		assert.Contains(t, prompt, "scaled for ONE adult serving")
		assert.Contains(t, prompt, `"1 cup", "200g"`)
		assert.Contains(t, prompt, "no more and no fewer")
		assert.Contains(t, prompt, "strictly followed")
	})

	t.Run("passes text through untouched", func(t *testing.T) {
		p := scenarioPrefs()
		p.Notes = `no <shellfish> & "spicy" please`
		p.Meals = nil
		prompt := BuildPrompt(p)
		assert.Contains(t, prompt, `Additional notes: no <shellfish> & "spicy" please`)
		assert.Contains(t, prompt, "Meals to plan per day: \n")
	})

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, BuildPrompt(scenarioPrefs()), BuildPrompt(scenarioPrefs()))
	})
}

func TestGenerator(t *testing.T) {
	ctx := context.Background()

	t.Run("folds meals by type", func(t *testing.T) {
		fake := &fakeGenerator{content: modelOutput}
		result, err := NewGenerator(fake, time.Second).Generate(ctx, scenarioPrefs())
		require.NoError(t, err)

		assert.Equal(t, "fake-model", result.Model)
		require.Len(t, result.Menu.WeeklyMenu, 3)

		monday := result.Menu.WeeklyMenu[0]
		assert.Equal(t, "Monday", monday.Day)
		assert.Equal(t, "Tacos", monday.Meals["Dinner"].Name)
		assert.Equal(t, "Toast", monday.Meals["Breakfast"].Name)
		assert.Equal(t, "200g", monday.Meals["Dinner"].Ingredients[0].Amount)

		assert.Equal(t, "Second", result.Menu.WeeklyMenu[1].Meals["Dinner"].Name)
		assert.Empty(t, result.Menu.WeeklyMenu[2].Meals)
		assert.NotNil(t, result.Menu.WeeklyMenu[2].Meals)
		require.Len(t, result.Menu.GroceryList, 1)

		require.Len(t, fake.prompts, 1)
		assert.Contains(t, fake.prompts[0], "2 adults")
	})

	t.Run("accepts meals already keyed by slot", func(t *testing.T) {
		fake := &fakeGenerator{content: `{"weeklyMenu":[{"day":"Friday","meals":{"Lunch":{"name":"Soup"}}}]}`}
		result, err := NewGenerator(fake, time.Second).Generate(ctx, scenarioPrefs())
		require.NoError(t, err)
		assert.Equal(t, "Soup", result.Menu.WeeklyMenu[0].Meals["Lunch"].Name)
		assert.NotNil(t, result.Menu.GroceryList)
	})

	t.Run("rejects empty and malformed output", func(t *testing.T) {
		_, err := NewGenerator(&fakeGenerator{content: `{"weeklyMenu":[]}`}, time.Second).Generate(ctx, scenarioPrefs())
		assert.ErrorIs(t, err, ErrNoDays)

		_, err = NewGenerator(&fakeGenerator{content: `Sorry, I cannot help with that.`}, time.Second).Generate(ctx, scenarioPrefs())
		assert.Error(t, err)

		_, err = NewGenerator(&fakeGenerator{content: `{"weeklyMenu":[{"day":"Monday","meals":"lots"}]}`}, time.Second).Generate(ctx, scenarioPrefs())
		assert.Error(t, err)

		_, err = NewGenerator(&fakeGenerator{content: `{"weeklyMenu":[{"day":"Monday"},{"day":"Monday"}]}`}, time.Second).Generate(ctx, scenarioPrefs())
		assert.Error(t, err)
	})

	t.Run("upstream errors and timeouts", func(t *testing.T) {
		_, err := NewGenerator(&fakeGenerator{err: llm.ErrEmptyResponse}, time.Second).Generate(ctx, scenarioPrefs())
		assert.ErrorIs(t, err, llm.ErrEmptyResponse)

		_, err = NewGenerator(&fakeGenerator{block: true}, 20*time.Millisecond).Generate(ctx, scenarioPrefs())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

type handlerEnv struct {
	db       *sql.DB
	quota    *auth.QuotaEngine
	sessions *auth.SessionStore
	users    *auth.Repository
}

func newHandlerEnv(t *testing.T, limit int) *handlerEnv {
	t.Helper()
	db, err := databases.OpenMigrated(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	users := auth.NewRepository(db)
	return &handlerEnv{
		db:       db,
		quota:    auth.NewQuotaEngine(users, limit),
		sessions: auth.NewSessionStore(users, time.Hour, false),
		users:    users,
	}
}

func (e *handlerEnv) router(gen llm.TextGenerator, allowGuests bool) *gin.Engine {
	r := gin.New()
	mw := auth.NewMiddleware(e.sessions, e.quota)
	RegisterRoutes(r.Group("/api/v0"), NewHandler(NewGenerator(gen, time.Second), e.quota), mw, allowGuests)
	return r
}

func (e *handlerEnv) login(t *testing.T, email string) (*auth.User, *http.Cookie) {
	t.Helper()
	user, err := e.users.CreateUser(email, "Cook")
	require.NoError(t, err)
	s, err := e.sessions.CreateSession(user.ID)
	require.NoError(t, err)
	return user, &http.Cookie{Name: auth.SessionCookieName, Value: s.ID}
}

func (e *handlerEnv) events(t *testing.T) (owned, guest int) {
	t.Helper()
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM generation_events WHERE user_id IS NOT NULL").Scan(&owned))
	require.NoError(t, e.db.QueryRow("SELECT COUNT(*) FROM generation_events WHERE user_id IS NULL").Scan(&guest))
	return owned, guest
}

func post(t *testing.T, r http.Handler, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, common.APIResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v0/menus/generate", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestGenerateHandler(t *testing.T) {
	t.Run("success is recorded against the user", func(t *testing.T) {
		env := newHandlerEnv(t, 3)
		user, cookie := env.login(t, "cook@example.com")

		w, resp := post(t, env.router(&fakeGenerator{content: modelOutput}, true), scenarioPrefs(), cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "fake-model", data["model"])
		assert.Contains(t, data, "menu")
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Remaining"))

		status, err := env.quota.CheckQuota(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, status.Used)
	})

	t.Run("failures do not consume quota", func(t *testing.T) {
		env := newHandlerEnv(t, 3)
		user, cookie := env.login(t, "cook@example.com")
		r := env.router(&fakeGenerator{err: errors.New("upstream exploded")}, true)

		for i := 0; i < 5; i++ {
			w, resp := post(t, r, scenarioPrefs(), cookie)
			assert.Equal(t, http.StatusBadGateway, w.Code)
			assert.Equal(t, common.CodeGeneric, resp.Code)
			assert.False(t, strings.Contains(w.Body.String(), "exploded"))
		}

		status, err := env.quota.CheckQuota(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Zero(t, status.Used)
		assert.True(t, status.Allowed)
	})

	t.Run("over the limit", func(t *testing.T) {
		env := newHandlerEnv(t, 1)
		_, cookie := env.login(t, "cook@example.com")
		fake := &fakeGenerator{content: modelOutput}
		r := env.router(fake, true)

		w, _ := post(t, r, scenarioPrefs(), cookie)
		require.Equal(t, http.StatusOK, w.Code)

		w, resp := post(t, r, scenarioPrefs(), cookie)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, common.CodeRateLimit, resp.Code)
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
		assert.Len(t, fake.prompts, 1)
	})

	t.Run("guests are never counted", func(t *testing.T) {
		env := newHandlerEnv(t, 1)
		r := env.router(&fakeGenerator{content: modelOutput}, true)

		for i := 0; i < 3; i++ {
			w, _ := post(t, r, scenarioPrefs(), nil)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
		}

		owned, guest := env.events(t)
		assert.Zero(t, owned)
		assert.Equal(t, 3, guest)
	})

	t.Run("guests turned away when disabled", func(t *testing.T) {
		env := newHandlerEnv(t, 3)
		fake := &fakeGenerator{content: modelOutput}

		w, resp := post(t, env.router(fake, false), scenarioPrefs(), nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, common.CodeSignInRequired, resp.Code)
		assert.Empty(t, fake.prompts)
	})

	t.Run("validation", func(t *testing.T) {
		env := newHandlerEnv(t, 3)
		fake := &fakeGenerator{content: modelOutput}
		r := env.router(fake, true)

		bad := scenarioPrefs()
		bad.Adults = 0
		bad.Meals = []string{"brunch"}
		w, resp := post(t, r, bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, common.CodeValidation, resp.Code)
		assert.Len(t, resp.Errors, 2)

		mismatch := scenarioPrefs()
		mismatch.KidsAges = []int{5, 7}
		w, _ = post(t, r, mismatch, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		lazy := scenarioPrefs()
		lazy.BusyDays = []string{"Someday"}
		w, _ = post(t, r, lazy, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		assert.Empty(t, fake.prompts)
	})
}
