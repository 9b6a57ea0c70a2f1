// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

// Package routes registers the storefront API on a gin engine.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/harborline/chandlery/services/web/handlers"
)

func SetupRoutes(router *gin.Engine, cat handlers.Catalog, matcher handlers.Matcher) {
	router.GET("/health", handlers.HealthCheck)

	v1 := router.Group("/v1")
	{
		v1.GET("/products", handlers.ListProducts(cat))
		v1.GET("/products/:id", handlers.GetProduct(cat))
		v1.GET("/categories", handlers.ListCategories(cat))
		v1.POST("/match", handlers.MatchProducts(cat, matcher))
	}
}
