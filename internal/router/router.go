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

package router

import (
	"net/http"

	"stellar-pets-go/internal/api"
	"stellar-pets-go/internal/handler"
	"stellar-pets-go/internal/metrics"
	"stellar-pets-go/internal/middleware"
	"stellar-pets-go/internal/models"

	"github.com/gin-gonic/gin"
)

func Setup(cfg models.ServerConfig, svc *api.PetService, m *metrics.Metrics) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if m != nil {
		r.Use(m.Middleware())
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	pets := handler.NewPetHandler(svc)

	r.GET("/health", pets.Health)
	r.POST("/goal/create", pets.CreateGoal)
	r.POST("/pet/calculate", pets.CalculatePet)
	r.POST("/withdraw/process", pets.ProcessWithdrawal)
	r.GET("/pet/state", pets.GetPetState)
	r.GET("/deposits", pets.GetDeposits)
	r.GET("/leaderboard", pets.GetLeaderboard)
	r.GET("/pets/types", pets.ListPetTypes)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
	})

	return r
}
