package generate

import (
	"MenuMagic/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware, allowGuests bool) {
	rg.POST("/menus/generate",
		authMiddleware.OptionalSession(),
		authMiddleware.RequireGenerationQuota(allowGuests),
		h.GenerateMenu,
	)
}
