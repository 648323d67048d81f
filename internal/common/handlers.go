package common

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type StatusResponse struct {
	DatabaseLatency string `json:"database_latency"`
	Database        string `json:"database"`
	Uptime          string `json:"uptime"`
}

// Uptime Logic
var startTime time.Time

func uptime() time.Duration {
	return time.Since(startTime)
}

func init() {
	startTime = time.Now()
}

// StatusHandler reports uptime and a database round trip
type StatusHandler struct {
	db *sql.DB
}

func NewStatusHandler(db *sql.DB) *StatusHandler {
	return &StatusHandler{db: db}
}

func (h *StatusHandler) Status(c *gin.Context) {
	start := time.Now()
	err := h.db.PingContext(c.Request.Context())
	latency := time.Since(start)

	data := StatusResponse{
		DatabaseLatency: latency.String(),
		Database:        "ok",
		Uptime:          uptime().Truncate(time.Second).String(),
	}
	if err != nil {
		data.Database = "unavailable"
		c.JSON(http.StatusServiceUnavailable, CreateAPIResponse(data, []string{"database unavailable"}, ""))
		return
	}
	c.JSON(http.StatusOK, CreateSuccessResponse(data))
}

func RegisterRoutes(rg *gin.RouterGroup, h *StatusHandler) {
	rg.GET("/status", h.Status)
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
