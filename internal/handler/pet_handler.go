/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"stellar-pets-go/internal/api"
	"stellar-pets-go/internal/models"
	"stellar-pets-go/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PetHandler struct {
	svc *api.PetService
}

func NewPetHandler(svc *api.PetService) *PetHandler {
	return &PetHandler{svc: svc}
}

// Health reports liveness and the configured history backend.
func (h *PetHandler) Health(c *gin.Context) {
	status, err := h.svc.HealthCheck(c.Request.Context())
	if err != nil {
		respondError(c, "Health check failed", err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// CreateGoal handles POST /goal/create.
func (h *PetHandler) CreateGoal(c *gin.Context) {
	var req models.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	result, err := h.svc.CreateGoal(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create goal", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Goal created successfully!",
		"data": gin.H{
			"userId":   result.UserId,
			"goal":     result.Goal,
			"petState": result.PetState,
		},
	})
}

// CalculatePet handles POST /pet/calculate.
func (h *PetHandler) CalculatePet(c *gin.Context) {
	var req models.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	result, err := h.svc.ApplyDeposit(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to calculate pet state", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ProcessWithdrawal handles POST /withdraw/process.
func (h *PetHandler) ProcessWithdrawal(c *gin.Context) {
	var req models.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadBody(c, err)
		return
	}

	result, err := h.svc.ApplyWithdrawal(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to process withdrawal", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetPetState handles GET /pet/state?wallet=.
func (h *PetHandler) GetPetState(c *gin.Context) {
	view, err := h.svc.GetPetState(c.Request.Context(), c.Query("wallet"))
	if err != nil {
		respondError(c, "Failed to fetch pet state", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "petState": view})
}

// GetDeposits handles GET /deposits?wallet=&limit=&offset=.
func (h *PetHandler) GetDeposits(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	offset, ok := queryInt(c, "offset")
	if !ok {
		return
	}

	entries, err := h.svc.GetDepositHistory(c.Request.Context(), c.Query("wallet"), limit, offset)
	if err != nil {
		respondError(c, "Failed to fetch deposit history", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deposits": entries})
}

// GetLeaderboard handles GET /leaderboard?limit=.
func (h *PetHandler) GetLeaderboard(c *gin.Context) {
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}

	entries, err := h.svc.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, "Failed to fetch leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "leaderboard": entries})
}

// ListPetTypes handles GET /pets/types.
func (h *PetHandler) ListPetTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "petTypes": h.svc.ListPetTypes()})
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, api.ErrMissingField), errors.Is(err, api.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrPetNotFound),
		errors.Is(err, store.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrConcurrentModification):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, summary string, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	if status == http.StatusInternalServerError {
		zap.L().Error(summary, zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"success": false, "error": summary, "details": err.Error()})
		return
	}
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}

func respondBadBody(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body", "details": err.Error()})
}

// queryInt parses an optional integer query parameter. Absent means 0.
func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid " + key + " parameter"})
		return 0, false
	}
	return v, true
}
