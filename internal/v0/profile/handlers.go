package profile

import (
	"log"
	"net/http"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler holds the profile repository
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// GetProfile
// GET /profile
func (h *Handler) GetProfile(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	p, err := h.repo.GetProfile(c.Request.Context(), user.ID)
	if err != nil {
		log.Printf("profile: get: %v", err)
		c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to load profile"}, nil))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(p))
}

// UpdateProfile patches the profile, creating it on first use
// PATCH /profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}

	p, err := h.repo.UpsertProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		log.Printf("profile: update: %v", err)
		c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to update profile"}, nil))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(p))
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
