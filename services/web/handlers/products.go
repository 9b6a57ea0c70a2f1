// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

// Package handlers holds the gin handlers for the storefront API.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/harborline/chandlery/services/catalog"
)

var tracer = otel.Tracer("chandlery.web.handlers")

// Catalog provides the current catalog snapshot. Implemented by
// *catalog.Orchestrator.
type Catalog interface {
	GetCatalog(ctx context.Context) catalog.Snapshot
}

// Browsing responses are served from a cached snapshot anyway, so tell
// intermediaries they may cache and revalidate lazily.
const productsCacheControl = "public, s-maxage=1800, stale-while-revalidate=3600"

type productListResponse struct {
	Products   []catalog.ProductRecord `json:"products"`
	TotalCount int                     `json:"totalCount"`
	Page       int                     `json:"page"`
	TotalPages int                     `json:"totalPages"`
}

// ListProducts serves GET /v1/products with optional category, q, page and
// limit query parameters.
func ListProducts(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "ListProducts")
		defer span.End()

		snap := cat.GetCatalog(ctx)
		res := catalog.RunQuery(snap, catalog.Query{
			Category: c.Query("category"),
			Text:     c.Query("q"),
			Page:     intQuery(c, "page", 1),
			PageSize: intQuery(c, "limit", catalog.DefaultPageSize),
		})

		c.Header("Cache-Control", productsCacheControl)
		c.JSON(http.StatusOK, productListResponse{
			Products:   res.Products,
			TotalCount: res.TotalCount,
			Page:       res.Page,
			TotalPages: res.TotalPages,
		})
	}
}

// GetProduct serves GET /v1/products/:id from the current snapshot.
func GetProduct(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "GetProduct")
		defer span.End()

		snap := cat.GetCatalog(ctx)
		rec, ok := snap.Lookup(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.Header("Cache-Control", productsCacheControl)
		c.JSON(http.StatusOK, rec)
	}
}

// ListCategories serves GET /v1/categories: distinct labels with counts.
func ListCategories(cat Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "ListCategories")
		defer span.End()

		snap := cat.GetCatalog(ctx)
		c.Header("Cache-Control", productsCacheControl)
		c.JSON(http.StatusOK, gin.H{"categories": catalog.Categories(snap)})
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v < 1 {
		return def
	}
	return v
}
