package auth

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextKeyUser  = "auth_user"
	ContextKeyQuota = "auth_quota"

	// Headers
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRetryAfter         = "Retry-After"
)

// Middleware provides authentication and quota middleware
type Middleware struct {
	sessionStore *SessionStore
	quota        *QuotaEngine
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(sessionStore *SessionStore, quota *QuotaEngine) *Middleware {
	return &Middleware{
		sessionStore: sessionStore,
		quota:        quota,
	}
}

func (m *Middleware) loadUser(c *gin.Context) (*User, error) {
	sessionID, err := m.sessionStore.GetSessionFromCookie(c)
	if err != nil || sessionID == "" {
		return nil, nil
	}
	return m.sessionStore.GetUserFromSession(sessionID)
}

// RequireSession rejects requests without a live session for an active user
func (m *Middleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.loadUser(c)
		if err != nil {
			log.Printf("session lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.CreateErrorResponse([]string{"failed to load session"}))
			return
		}
		if user == nil {
			m.sessionStore.ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.CreateClassifiedErrorResponse(
				common.CodeUnauthorized, []string{"not authenticated"}, nil))
			return
		}
		if user.Status != StatusActive {
			m.sessionStore.ClearSessionCookie(c)
			c.AbortWithStatusJSON(http.StatusForbidden, common.CreateErrorResponse([]string{"account is " + string(user.Status)}))
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// OptionalSession attaches the user when a valid session exists and never fails
func (m *Middleware) OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.loadUser(c)
		if err == nil && user != nil && user.Status == StatusActive {
			c.Set(ContextKeyUser, user)
		}
		c.Next()
	}
}

// RequireGenerationQuota gates menu generation. It expects OptionalSession to
// have run. Guests skip the quota entirely and are only turned away when
// allowGuests is false. Signed-in users get X-RateLimit headers and a 429
// once today's allowance is spent. A failed count is a 500, never a pass.
func (m *Middleware) RequireGenerationQuota(allowGuests bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUserFromContext(c)
		if user == nil {
			if !allowGuests {
				c.AbortWithStatusJSON(http.StatusUnauthorized, common.CreateClassifiedErrorResponse(
					common.CodeSignInRequired, []string{"sign in to generate a menu"}, nil))
				return
			}
			c.Next()
			return
		}

		status, err := m.quota.CheckQuota(c.Request.Context(), user.ID)
		if err != nil {
			log.Printf("quota check failed for user %d: %v", user.ID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(
				common.CodeGeneric, []string{"failed to check generation quota"}, nil))
			return
		}

		remaining := status.Remaining()
		if status.Allowed {
			remaining-- // this request
		}
		c.Header(HeaderRateLimitLimit, strconv.Itoa(status.Limit))
		c.Header(HeaderRateLimitRemaining, strconv.Itoa(remaining))
		c.Header(HeaderRateLimitReset, strconv.FormatInt(status.ResetAt.Unix(), 10))

		if !status.Allowed {
			retryAfter := int(time.Until(status.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header(HeaderRetryAfter, strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, common.CreateClassifiedErrorResponse(
				common.CodeRateLimit,
				[]string{"daily menu generation limit reached"},
				gin.H{"used": status.Used, "limit": status.Limit, "resetAt": status.ResetAt},
			))
			return
		}

		c.Set(ContextKeyQuota, status)
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user from the context
func GetUserFromContext(c *gin.Context) *User {
	userVal, exists := c.Get(ContextKeyUser)
	if !exists {
		return nil
	}
	user, ok := userVal.(*User)
	if !ok {
		return nil
	}
	return user
}

// GetUserIDFromContext returns the signed-in user's id, or nil for guests
func GetUserIDFromContext(c *gin.Context) *int64 {
	if user := GetUserFromContext(c); user != nil {
		id := user.ID
		return &id
	}
	return nil
}
