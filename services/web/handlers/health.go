// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck is the liveness probe.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "chandlery"})
}
