// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AleutianAI/BlochSim/services/simulator/handlers"
	"github.com/AleutianAI/BlochSim/services/simulator/middleware"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
	"github.com/AleutianAI/BlochSim/services/simulator/sessions"
)

func SetupRoutes(router *gin.Engine, store *sessions.Store, limiter *middleware.RateLimiter) {

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	if limiter != nil {
		router.Use(limiter.Middleware())
	}

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Legacy route kept for clients that predate the /v1 prefix.
	router.POST("/run_circuit", handlers.HandleEvolve(observability.EndpointLegacyRun))

	// API version 1 group
	v1 := router.Group("/v1")
	{
		v1.POST("/circuit/evolve", handlers.HandleEvolve(observability.EndpointEvolve))
		v1.GET("/operators", handlers.HandleOperators())
		v1.GET("/stream", handlers.HandleStream())
		// Session administration routes
		sessionRoutes := v1.Group("/sessions")
		{
			sessionRoutes.POST("", handlers.HandleCreateSession(store))
			sessionRoutes.GET("/:sessionId", handlers.HandleGetSession(store))
			sessionRoutes.POST("/:sessionId/steps", handlers.HandleSessionSteps(store))
			sessionRoutes.POST("/:sessionId/reset", handlers.HandleResetSession(store))
			sessionRoutes.GET("/:sessionId/history", handlers.HandleSessionHistory(store))
			sessionRoutes.DELETE("/:sessionId", handlers.HandleDeleteSession(store))
		}
	}
}
