// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/codes"

	"github.com/harborline/chandlery/services/catalog"
	"github.com/harborline/chandlery/services/match"
)

// Matcher runs the match pipeline. Implemented by *match.Matcher; a nil
// Matcher means the completion credential was missing at startup.
type Matcher interface {
	Match(ctx context.Context, problem string, snap catalog.Snapshot) ([]catalog.ProductRecord, string, error)
}

// MatchRequest is the POST /v1/match body.
type MatchRequest struct {
	Problem string `json:"problem" binding:"required"`
}

const invalidProblemMessage = "Please describe your problem or what you need."

// MatchProducts serves POST /v1/match: free-text problem in, 0-3 matched
// products out. Upstream failures come back with a stable message and the
// request correlation id.
func MatchProducts(cat Catalog, m Matcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "MatchProducts")
		defer span.End()

		if m == nil {
			// Startup-time misconfiguration, distinct from runtime
			// upstream failures.
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Product matching is not configured."})
			return
		}

		var req MatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalidProblemMessage})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		// Reject unusable input before acquisition; an invalid problem
		// must not trigger a catalog fetch.
		if err := match.ValidateProblem(req.Problem); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": invalidProblemMessage})
			return
		}

		snap := cat.GetCatalog(ctx)
		matches, requestID, err := m.Match(ctx, req.Problem, snap)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			if errors.Is(err, match.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": invalidProblemMessage})
				return
			}
			var upstream *match.UpstreamError
			if errors.As(err, &upstream) {
				status := upstream.Status
				if status == 0 {
					status = http.StatusInternalServerError
				}
				c.JSON(status, gin.H{"error": upstream.Message(), "requestId": upstream.RequestID})
				return
			}
			slog.Error("match failed with unclassified error", "error", err, "request_id", requestID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Product matching is unavailable right now."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"matches": matches, "requestId": requestID})
	}
}
