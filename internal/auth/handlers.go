package auth

import (
	"log"
	"net/http"
	"strconv"

	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
)

const (
	OAuthStateCookieName = "menumagic_oauth_state"
)

// Handler handles authentication endpoints
type Handler struct {
	repo         *Repository
	oauthConfig  *OAuthConfig
	stateStore   *OAuthStateStore
	sessionStore *SessionStore
	quota        *QuotaEngine
	frontendURL  string
}

// NewHandler creates a new auth handler
func NewHandler(
	repo *Repository,
	oauthConfig *OAuthConfig,
	stateStore *OAuthStateStore,
	sessionStore *SessionStore,
	quota *QuotaEngine,
	frontendURL string,
) *Handler {
	return &Handler{
		repo:         repo,
		oauthConfig:  oauthConfig,
		stateStore:   stateStore,
		sessionStore: sessionStore,
		quota:        quota,
		frontendURL:  frontendURL,
	}
}

func (h *Handler) provider(c *gin.Context) (Provider, bool) {
	provider := Provider(c.Param("provider"))
	if provider != ProviderGoogle && provider != ProviderGitHub {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"unsupported provider"}))
		return "", false
	}
	if !h.oauthConfig.IsProviderConfigured(provider) {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"provider not configured"}))
		return "", false
	}
	return provider, true
}

// Login initiates OAuth flow
// GET /auth/login/:provider
func (h *Handler) Login(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	state, err := h.stateStore.CreateState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to create auth state"}))
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(OAuthStateCookieName, state, int(OAuthStateExpiry.Seconds()), "/", "", h.sessionStore.secureCookie, true)

	authURL, err := h.oauthConfig.GetAuthURL(provider, state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to create auth URL"}))
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// Callback finishes the OAuth round trip and sends the browser back to the planner
// GET /auth/callback/:provider
func (h *Handler) Callback(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	queryState := c.Query("state")
	cookieState, err := c.Cookie(OAuthStateCookieName)
	if err != nil || cookieState == "" || queryState != cookieState {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"OAuth state mismatch"}))
		return
	}

	valid, err := h.stateStore.ValidateState(queryState)
	if err != nil || !valid {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"invalid or expired OAuth state"}))
		return
	}
	c.SetCookie(OAuthStateCookieName, "", -1, "/", "", h.sessionStore.secureCookie, true)

	if errMsg := c.Query("error"); errMsg != "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"OAuth error: " + errMsg}))
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"missing authorization code"}))
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauthConfig.ExchangeCode(ctx, provider, code)
	if err != nil {
		log.Printf("oauth exchange failed for %s: %v", provider, err)
		c.JSON(http.StatusBadGateway, common.CreateErrorResponse([]string{"failed to exchange code"}))
		return
	}

	info, err := h.oauthConfig.GetUserInfo(ctx, provider, token)
	if err != nil {
		log.Printf("oauth userinfo failed for %s: %v", provider, err)
		c.JSON(http.StatusBadGateway, common.CreateErrorResponse([]string{"failed to get user info"}))
		return
	}

	user, err := h.repo.FindOrCreateUser(info, provider, token.AccessToken, token.RefreshToken)
	if err != nil || user == nil {
		log.Printf("failed to resolve user for %s: %v", info.Email, err)
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to create user"}))
		return
	}
	if user.Status != StatusActive {
		c.JSON(http.StatusForbidden, common.CreateErrorResponse([]string{"account is " + string(user.Status)}))
		return
	}

	session, err := h.sessionStore.CreateSession(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to create session"}))
		return
	}
	h.sessionStore.SetSessionCookie(c, session.ID)

	// the planner picks up any pending menu once it sees the session
	c.Redirect(http.StatusFound, h.frontendURL+"/planner?signedIn=1")
}

// Me returns the current user with today's generation allowance
// GET /auth/me
func (h *Handler) Me(c *gin.Context) {
	user := GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, common.CreateErrorResponse([]string{"not authenticated"}))
		return
	}

	quota, err := h.quota.CheckQuota(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to load quota"}))
		return
	}

	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{
		"user":  user,
		"quota": quota,
	}))
}

// Usage lists the caller's recent generations
// GET /auth/usage?limit=
func (h *Handler) Usage(c *gin.Context) {
	user := GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, common.CreateErrorResponse([]string{"not authenticated"}))
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		c.JSON(http.StatusBadRequest, common.CreateErrorResponse([]string{"limit must be between 1 and 100"}))
		return
	}

	events, err := h.quota.ListGenerations(c.Request.Context(), user.ID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to list generations"}))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"generations": events}))
}

// Logout ends the current session, or every session of the user with
// ?everywhere=true
// POST /auth/logout
func (h *Handler) Logout(c *gin.Context) {
	if c.Query("everywhere") == "true" {
		if user := GetUserFromContext(c); user != nil {
			if err := h.sessionStore.DeleteUserSessions(user.ID); err != nil {
				c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to end sessions"}))
				return
			}
		}
	} else if sessionID, err := h.sessionStore.GetSessionFromCookie(c); err == nil && sessionID != "" {
		if err := h.sessionStore.DeleteSession(sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to end session"}))
			return
		}
	}
	h.sessionStore.ClearSessionCookie(c)

	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{
		"message": "logged out successfully",
	}))
}
