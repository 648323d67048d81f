package grocery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"MenuMagic/internal/v0/menu"
)

var (
	// ErrNotConfigured means no Instacart API key was provided
	ErrNotConfigured = errors.New("instacart API key not configured")

	// ErrNoLink means Instacart accepted the list but returned no page url
	ErrNoLink = errors.New("instacart returned no products link")
)

const recipePath = "/idp/v1/products/recipe"

// InstacartClient creates Instacart recipe pages that a user can shop from
type InstacartClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewInstacartClient(apiKey, baseURL string) *InstacartClient {
	return &InstacartClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Configured reports whether an API key is set
func (c *InstacartClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type recipeIngredient struct {
	Name string `json:"name"`
}

type recipeRequest struct {
	Title        string             `json:"title"`
	Instructions []string           `json:"instructions"`
	Ingredients  []recipeIngredient `json:"ingredients"`
}

type recipeResponse struct {
	ProductsLinkURL string `json:"products_link_url"`
}

// Flatten turns the categorized list into "amount item" lines, which
// Instacart parses itself. Blank lines are dropped.
func Flatten(groups []menu.CategoryGroup) []string {
	var lines []string
	for _, g := range groups {
		for _, it := range g.Items {
			line := strings.TrimSpace(strings.TrimSpace(it.Amount) + " " + strings.TrimSpace(it.Item))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// CreateShoppingPage posts the ingredients and returns the page url
func (c *InstacartClient) CreateShoppingPage(ctx context.Context, title string, ingredients []string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload := recipeRequest{
		Title:        title,
		Instructions: []string{"Enjoy your weekly meals powered by MenuMagic!"},
		Ingredients:  make([]recipeIngredient, len(ingredients)),
	}
	for i, name := range ingredients {
		payload.Ingredients[i] = recipeIngredient{Name: name}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+recipePath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("instacart error: status=%d body=%s", resp.StatusCode, string(bodyBytes))
	}

	var out recipeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if out.ProductsLinkURL == "" {
		return "", ErrNoLink
	}
	return out.ProductsLinkURL, nil
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
