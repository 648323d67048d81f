package favorites

import (
	"bytes"
	"log"
	"net/http"
	"strings"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler holds the favorites repository
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// ListFavorites
// GET /favorites
func (h *Handler) ListFavorites(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	favorites, err := h.repo.ListFavorites(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("favorites: list: %v", err)
		c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to fetch favorites"}, nil))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"favorites": favorites}))
}

// CreateFavorite
// POST /favorites
func (h *Handler) CreateFavorite(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	var req CreateFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}
	req.RecipeName = strings.TrimSpace(req.RecipeName)
	if req.RecipeName == "" {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"recipeName: is required"}, nil))
		return
	}
	if data := bytes.TrimSpace(req.RecipeData); len(data) == 0 || data[0] != '{' {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"recipeData: must be an object"}, nil))
		return
	}

	favorite, err := h.repo.CreateFavorite(c.Request.Context(), user.ID, req)
	if err != nil {
		log.Printf("favorites: create: %v", err)
		c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to save favorite"}, nil))
		return
	}
	c.JSON(http.StatusCreated, common.CreateSuccessResponse(favorite))
}

// DeleteFavorite
// DELETE /favorites/:id
func (h *Handler) DeleteFavorite(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	deleted, err := h.repo.DeleteFavorite(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		log.Printf("favorites: delete: %v", err)
		c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to delete favorite"}, nil))
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, common.CreateClassifiedErrorResponse(common.CodeNotFound, []string{"favorite not found"}, nil))
		return
	}
	c.Status(http.StatusNoContent)
}

//MenuMagic API. Backend for the MenuMagic weekly meal planner: AI generated menus, saved plans, favorite recipes and grocery ordering.
//MenuMagic Copyright (C) 2025 MenuMagic
//This program is free software: you can redistribute it and/or modify
//it under the terms of the GNU General Public License as published by
//the Free Software Foundation, either version 3 of the License, or
//(at your option) any later version.
//
//This program is distributed in the hope that it will be useful,
//but WITHOUT ANY WARRANTY; without even the implied warranty of
//MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//GNU General Public License for more details.
//
//You should have received a copy of the GNU General Public License
//along with this program.  If not, see <https://www.gnu.org/licenses/>.
