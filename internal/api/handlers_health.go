// Pulseboard - Demo Analytics Dashboard
// Copyright 2026 Pulseboard Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulsekit/pulseboard

package api

import (
	"net/http"
	"time"

	"github.com/pulsekit/pulseboard/internal/models"
)

// Health handles health check requests
//
// @Summary Get system health status
// @Description Returns health status including database connectivity and uptime
// @Tags Core
// @Produce json
// @Success 200 {object} models.APIResponse{data=models.HealthStatus} "Health status"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "ok"
	if !dbConnected {
		status = "degraded"
	}

	respondData(w, http.StatusOK, models.HealthStatus{
		Status:            status,
		Timestamp:         time.Now().UTC(),
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
		Version:           Version,
	})
}
