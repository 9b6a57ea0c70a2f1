// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, the catalog
// acquisition pipeline and the completion-service collaborator.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// CachePath is the BadgerDB directory for the snapshot cache.
	CachePath string
	// CacheTTL is the freshness threshold. Zero means every catalog
	// read revalidates against the live source.
	CacheTTL time.Duration

	SourceBaseURL string
	SourceTimeout time.Duration

	CompletionBaseURL string
	CompletionAPIKey  string
	CompletionModel   string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),

		CachePath: getenv("CACHE_PATH", "/tmp/chandlery-cache"),
		CacheTTL:  durenvs("CACHE_TTL_SECONDS", 0),

		SourceBaseURL: getenv("SOURCE_BASE_URL", "https://www.nautichandler.com"),
		SourceTimeout: durenvs("SOURCE_TIMEOUT_SECONDS", 8),

		CompletionBaseURL: getenv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		CompletionAPIKey:  getenv("GROQ_API_KEY", ""),
		CompletionModel:   getenv("GROQ_MODEL", ""),
	}
}
