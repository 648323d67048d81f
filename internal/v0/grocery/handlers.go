package grocery

import (
	"log"
	"net/http"
	"strings"

	"MenuMagic/internal/common"
	"MenuMagic/internal/v0/menu"

	"github.com/gin-gonic/gin"
)

const defaultTitle = "MenuMagic Weekly Groceries"

// ShopRequest is the body of POST /grocery/instacart
type ShopRequest struct {
	GroceryList []menu.CategoryGroup `json:"groceryList" binding:"required"`
	Title       string               `json:"title" binding:"max=200"`
}

// Handler sends grocery lists to Instacart
type Handler struct {
	instacart *InstacartClient
}

func NewHandler(instacart *InstacartClient) *Handler {
	return &Handler{instacart: instacart}
}

// ShopInstacart turns a grocery list into an Instacart shopping page
// POST /grocery/instacart
func (h *Handler) ShopInstacart(c *gin.Context) {
	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}

	ingredients := Flatten(req.GroceryList)
	if len(ingredients) == 0 {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"groceryList: has no items"}, nil))
		return
	}

	if !h.instacart.Configured() {
		c.JSON(http.StatusServiceUnavailable, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"grocery ordering is not available"}, nil))
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultTitle
	}

	url, err := h.instacart.CreateShoppingPage(c.Request.Context(), title, ingredients)
	if err != nil {
		log.Printf("grocery: instacart: %v", err)
		c.JSON(http.StatusBadGateway, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{"failed to create Instacart shopping list"}, nil))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"url": url}))
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
