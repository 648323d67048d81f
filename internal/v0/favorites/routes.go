package favorites

import (
	"MenuMagic/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	favorites := rg.Group("/favorites")
	favorites.Use(authMiddleware.RequireSession())
	{
		favorites.GET("", h.ListFavorites)
		favorites.POST("", h.CreateFavorite)
		favorites.DELETE("/:id", h.DeleteFavorite)
	}
}
