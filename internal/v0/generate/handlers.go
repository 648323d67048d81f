package generate

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler serves menu generation
type Handler struct {
	generator *Generator
	quota     *auth.QuotaEngine
}

func NewHandler(generator *Generator, quota *auth.QuotaEngine) *Handler {
	return &Handler{generator: generator, quota: quota}
}

// GenerateMenu asks the model for a week of meals. The quota was checked by
// middleware; a generation only counts once it has succeeded.
// POST /menus/generate
func (h *Handler) GenerateMenu(c *gin.Context) {
	var prefs Preferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}
	if len(prefs.KidsAges) != prefs.Kids {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation,
			[]string{"kidsAges: must have one age per kid (" + strconv.Itoa(prefs.Kids) + ")"}, nil))
		return
	}

	result, err := h.generator.Generate(c.Request.Context(), prefs)
	if err != nil {
		log.Printf("generate: %v", err)
		c.JSON(http.StatusBadGateway, common.CreateClassifiedErrorResponse(common.CodeGeneric,
			[]string{"failed to generate menu, please try again"}, nil))
		return
	}

	userID := auth.GetUserIDFromContext(c)
	// detached so a dropped client still gets counted
	if err := h.quota.RecordGeneration(context.WithoutCancel(c.Request.Context()), userID, result.Model, result.Duration); err != nil {
		log.Printf("generate: failed to record generation: %v", err)
	}

	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{
		"menu":       result.Menu,
		"model":      result.Model,
		"durationMs": result.Duration.Milliseconds(),
	}))
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
