package grocery

import (
	"MenuMagic/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	grocery := rg.Group("/grocery")
	grocery.Use(authMiddleware.OptionalSession())
	{
		grocery.POST("/instacart", h.ShopInstacart)
	}
}
