package menu

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"MenuMagic/internal/auth"
	"MenuMagic/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"
)

const defaultCookingTime = 30

// Handler holds the saved menu repository
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, common.CreateClassifiedErrorResponse(common.CodeNotFound, []string{"menu not found"}, nil))
}

func serverError(c *gin.Context, msg string, err error) {
	log.Printf("menu: %s: %v", msg, err)
	c.JSON(http.StatusInternalServerError, common.CreateClassifiedErrorResponse(common.CodeGeneric, []string{msg}, nil))
}

func invalidMenu(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeInvalidMenu, []string{err.Error()}, nil))
}

// loadMenu fetches the :id menu owned by the caller, writing the error response itself
func (h *Handler) loadMenu(c *gin.Context, userID int64) (*SavedMenu, bool) {
	saved, err := h.repo.GetSavedMenu(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		serverError(c, "failed to load menu", err)
		return nil, false
	}
	if saved == nil {
		notFound(c)
		return nil, false
	}
	return saved, true
}

// ListMenus
// GET /menus
func (h *Handler) ListMenus(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	menus, err := h.repo.ListSavedMenus(c.Request.Context(), user.ID)
	if err != nil {
		serverError(c, "failed to list menus", err)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"menus": menus}))
}

// SaveMenu stores a generated menu. Replaying the same clientRequestId
// returns the first record with 200 instead of creating another.
// POST /menus
func (h *Handler) SaveMenu(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	var req SaveMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}

	generated, err := DecodeGeneratedMenu(req.GeneratedMenu)
	if err == nil {
		err = generated.Validate()
	}
	if err != nil {
		invalidMenu(c, err)
		return
	}

	params := SaveParams{
		UserID:             user.ID,
		Name:               strings.TrimSpace(req.Name),
		PlannerPreferences: req.PlannerPreferences,
		GeneratedMenu:      req.GeneratedMenu,
		WeekStartDate:      req.WeekStartDate,
		WeekEndDate:        req.WeekEndDate,
		IsFavorite:         req.IsFavorite,
		ClientRequestID:    req.ClientRequestID,
	}
	if list := gjson.GetBytes(req.GeneratedMenu, "groceryList"); list.IsArray() {
		params.GroceryList = json.RawMessage(list.Raw)
	}

	saved, created, err := h.repo.CreateSavedMenu(c.Request.Context(), params)
	if err != nil {
		serverError(c, "failed to save menu", err)
		return
	}

	status := http.StatusCreated
	if !created {
		status = http.StatusOK
	}
	c.JSON(status, common.CreateSuccessResponse(saved))
}

// GetMenu
// GET /menus/:id
func (h *Handler) GetMenu(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	saved, ok := h.loadMenu(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(saved))
}

// UpdateMenu renames or (un)favorites a menu
// PATCH /menus/:id
func (h *Handler) UpdateMenu(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed == "" {
			c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"name: is required"}, nil))
			return
		}
		req.Name = &trimmed
	}

	saved, err := h.repo.UpdateSavedMenuMetadata(c.Request.Context(), c.Param("id"), user.ID, req.Name, req.IsFavorite)
	if err != nil {
		serverError(c, "failed to update menu", err)
		return
	}
	if saved == nil {
		notFound(c)
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(saved))
}

// DeleteMenu
// DELETE /menus/:id
func (h *Handler) DeleteMenu(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	deleted, err := h.repo.DeleteSavedMenu(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		serverError(c, "failed to delete menu", err)
		return
	}
	if !deleted {
		notFound(c)
		return
	}
	c.Status(http.StatusNoContent)
}

// SwapMeals exchanges two slots of a stored menu and writes the whole
// document back.
// PATCH /menus/:id/swap
func (h *Handler) SwapMeals(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	var req SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, common.BindingErrors(err), nil))
		return
	}

	saved, ok := h.loadMenu(c, user.ID)
	if !ok {
		return
	}

	payload, err := Swap(saved.GeneratedMenu, req.Source, req.Destination)
	if errors.Is(err, ErrInvalidDay) || errors.Is(err, ErrInvalidMenuFormat) {
		invalidMenu(c, err)
		return
	}
	if err != nil {
		serverError(c, "failed to swap meals", err)
		return
	}

	updated, err := h.repo.ReplaceSavedMenuPayload(c.Request.Context(), saved.ID, user.ID, payload)
	if err != nil {
		serverError(c, "failed to save menu", err)
		return
	}
	if !updated {
		// deleted between the read and the write
		notFound(c)
		return
	}

	saved, ok = h.loadMenu(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(saved))
}

// Conflicts lists complex recipes planned on busy days. busyDays
// (comma separated) and cookingTime override what was stored with the menu.
// GET /menus/:id/conflicts?busyDays=&cookingTime=
func (h *Handler) Conflicts(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	saved, ok := h.loadMenu(c, user.ID)
	if !ok {
		return
	}

	current, err := DecodeGeneratedMenu(saved.GeneratedMenu)
	if err != nil {
		invalidMenu(c, err)
		return
	}

	var prefs plannerSnapshot
	// stored preferences are advisory, a bad document just means no defaults
	_ = json.Unmarshal(saved.PlannerPreferences, &prefs)

	busyDays := prefs.BusyDays
	if q := c.Query("busyDays"); q != "" {
		busyDays = nil
		for _, d := range strings.Split(q, ",") {
			d = strings.TrimSpace(d)
			if !common.IsDayName(d) {
				c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"busyDays: unknown day " + d}, nil))
				return
			}
			busyDays = append(busyDays, d)
		}
	}

	budget := defaultCookingTime
	if prefs.CookingTime != nil {
		budget = *prefs.CookingTime
	}
	if q := c.Query("cookingTime"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 0 {
			c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"cookingTime: must be a non-negative integer"}, nil))
			return
		}
		budget = v
	}

	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{
		"busyDays":    busyDays,
		"cookingTime": budget,
		"conflicts":   BusyDayConflicts(current, busyDays, budget),
	}))
}

// Recipe returns one slot's recipe with ingredients sized for servings,
// which defaults to the number of adults the menu was planned for.
// GET /menus/:id/recipe?day=&mealType=&servings=
func (h *Handler) Recipe(c *gin.Context) {
	user := auth.GetUserFromContext(c)

	day, mealType := c.Query("day"), c.Query("mealType")
	if day == "" || mealType == "" {
		c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"day and mealType are required"}, nil))
		return
	}

	saved, ok := h.loadMenu(c, user.ID)
	if !ok {
		return
	}
	current, err := DecodeGeneratedMenu(saved.GeneratedMenu)
	if err != nil {
		invalidMenu(c, err)
		return
	}

	servings := 1
	var prefs plannerSnapshot
	if json.Unmarshal(saved.PlannerPreferences, &prefs) == nil && prefs.Adults != nil && *prefs.Adults > 0 {
		servings = *prefs.Adults
	}
	if q := c.Query("servings"); q != "" {
		v, err := strconv.Atoi(q)
		if err != nil || v < 1 || v > 50 {
			c.JSON(http.StatusBadRequest, common.CreateClassifiedErrorResponse(common.CodeValidation, []string{"servings: must be between 1 and 50"}, nil))
			return
		}
		servings = v
	}

	i := current.DayIndex(day)
	if i < 0 {
		c.JSON(http.StatusNotFound, common.CreateClassifiedErrorResponse(common.CodeNotFound, []string{"menu has no day " + day}, nil))
		return
	}
	recipe, ok := current.WeeklyMenu[i].Meals[mealType]
	if !ok {
		c.JSON(http.StatusNotFound, common.CreateClassifiedErrorResponse(common.CodeNotFound, []string{"no meal planned for that slot"}, nil))
		return
	}

	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{
		"day":      day,
		"mealType": mealType,
		"servings": servings,
		"recipe":   ScaleRecipe(recipe, float64(servings)),
	}))
}

// GroceryList returns the list stored with the menu
// GET /menus/:id/grocery-list
func (h *Handler) GroceryList(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	items, err := h.repo.GetGroceryList(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		serverError(c, "failed to load grocery list", err)
		return
	}
	if items == nil {
		c.JSON(http.StatusNotFound, common.CreateClassifiedErrorResponse(common.CodeNotFound, []string{"grocery list not found"}, nil))
		return
	}
	c.JSON(http.StatusOK, common.CreateSuccessResponse(gin.H{"groceryList": items}))
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
