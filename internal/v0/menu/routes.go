package menu

import (
	"MenuMagic/internal/auth"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler, authMiddleware *auth.Middleware) {
	menus := rg.Group("/menus")
	menus.Use(authMiddleware.RequireSession())
	{
		menus.GET("", h.ListMenus)
		menus.POST("", h.SaveMenu)
		menus.GET("/:id", h.GetMenu)
		menus.PATCH("/:id", h.UpdateMenu)
		menus.DELETE("/:id", h.DeleteMenu)
		menus.PATCH("/:id/swap", h.SwapMeals)
		menus.GET("/:id/conflicts", h.Conflicts)
		menus.GET("/:id/recipe", h.Recipe)
		menus.GET("/:id/grocery-list", h.GroceryList)
	}
}
