// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

// Package match turns a free-text problem description into catalog product
// suggestions via an OpenAI-compatible completion service.
//
// The completion service is treated as untrusted input: its output is
// parsed against a minimal schema, ids that don't exist in the snapshot
// are dropped, and a malformed response degrades to zero suggestions
// rather than an error. Upstream failures are classified (unavailable,
// rate limited, quota exceeded) so the caller can decide whether retrying
// is useful.
package match

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"github.com/harborline/chandlery/services/catalog"
)

const (
	// catalogContextLimit caps how many products go into the prompt,
	// bounding token cost independent of catalog size.
	catalogContextLimit = 80

	// descriptionLimit truncates each product description in the prompt.
	descriptionLimit = 80

	// maxMatches bounds the suggestions returned to the caller.
	maxMatches = 3

	completionMaxTokens   = 200
	completionTemperature = 0.2

	systemPrompt = "You are a marine parts assistant helping yacht crew find the right products. " +
		"Given a user's problem description and a product catalogue, " +
		`return the 3 most relevant product IDs as a JSON object: { "matches": ["id1", "id2", "id3"] }. ` +
		"Only return IDs that exist in the catalogue. " +
		"If fewer than 3 are relevant, return only the relevant ones."
)

// quotaCode is the upstream error code distinguishing quota exhaustion
// from ordinary rate limiting.
const quotaCode = "insufficient_quota"

// minProblemRunes is the shortest problem description worth matching.
const minProblemRunes = 3

// ValidateProblem reports whether a problem description is substantial
// enough to match against. Handlers call it before acquiring a catalog
// snapshot so rejected input never triggers acquisition.
func ValidateProblem(problem string) error {
	if utf8.RuneCountInString(strings.TrimSpace(problem)) < minProblemRunes {
		return ErrInvalidInput
	}
	return nil
}

// CompletionClient is the slice of the OpenAI-compatible API the matcher
// uses. Satisfied by *openai.Client; tests substitute mocks.
type CompletionClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config configures the completion-service collaborator.
type Config struct {
	// BaseURL of the OpenAI-compatible endpoint. Empty means the OpenAI
	// default.
	BaseURL string

	// APIKey authenticates against the endpoint. Required.
	APIKey string

	// Model identifier. Defaults to DefaultModel.
	Model string
}

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "llama-3.1-8b-instant"

// Matcher runs the match pipeline against a catalog snapshot.
type Matcher struct {
	Client CompletionClient
	Model  string
	Logger *slog.Logger
}

// New builds a Matcher from config. A missing API key returns
// ErrMissingCredential so the caller can report misconfiguration at
// startup instead of failing on the first request.
func New(cfg Config) (*Matcher, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingCredential
	}
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Matcher{
		Client: openai.NewClientWithConfig(clientCfg),
		Model:  model,
		Logger: slog.Default(),
	}, nil
}

// Match suggests up to three products from the snapshot for the given
// problem description. The returned request id correlates the attempt with
// logs regardless of outcome. Fails with ErrInvalidInput before any
// upstream call, or with a classified *UpstreamError.
func (m *Matcher) Match(ctx context.Context, problem string, snap catalog.Snapshot) ([]catalog.ProductRecord, string, error) {
	requestID := uuid.NewString()
	logger := m.logger().With("request_id", requestID)

	problem = strings.TrimSpace(problem)
	if err := ValidateProblem(problem); err != nil {
		return nil, requestID, err
	}

	req := openai.ChatCompletionRequest{
		Model:       m.Model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Problem: %q\n\nAvailable products:\n%s",
					problem, catalogContext(snap)),
			},
		},
	}

	resp, err := m.Client.CreateChatCompletion(ctx, req)
	if err != nil {
		classified := classify(err, requestID)
		logger.Error("completion request failed", "error", err)
		return nil, requestID, classified
	}

	raw := "{}"
	if len(resp.Choices) > 0 {
		raw = resp.Choices[0].Message.Content
	}
	var parsed struct {
		Matches []string `json:"matches"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Degrade to "no suggestions" rather than failing the request.
		logger.Warn("completion response was not the expected schema", "error", err)
		parsed.Matches = nil
	}

	matched := make([]catalog.ProductRecord, 0, maxMatches)
	for _, id := range parsed.Matches {
		if len(matched) == maxMatches {
			break
		}
		// Ids the service invented are dropped, never fabricated.
		if rec, ok := snap.Lookup(id); ok {
			matched = append(matched, rec)
		} else {
			logger.Warn("completion returned unknown product id", "id", id)
		}
	}
	logger.Info("match completed", "suggested", len(parsed.Matches), "hydrated", len(matched))
	return matched, requestID, nil
}

func (m *Matcher) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

// catalogContext renders a bounded, compact product list for the prompt.
func catalogContext(snap catalog.Snapshot) string {
	products := snap.Products
	if len(products) > catalogContextLimit {
		products = products[:catalogContextLimit]
	}
	var sb strings.Builder
	for _, p := range products {
		fmt.Fprintf(&sb, "- [%s] %s (%s): %s\n",
			p.ID, p.Name, p.Category, truncate(p.Description, descriptionLimit))
	}
	return sb.String()
}

// truncate cuts on a rune boundary so multibyte descriptions never leak
// invalid UTF-8 into the prompt.
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// classify maps a go-openai error onto the failure taxonomy. A 429 with
// the quota code is operator-actionable; any other 429 is generic rate
// limiting; everything else is unavailability.
func classify(err error, requestID string) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := KindUnavailable
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			if code, ok := apiErr.Code.(string); ok && code == quotaCode {
				kind = KindQuotaExceeded
			} else {
				kind = KindRateLimited
			}
		}
		return &UpstreamError{Kind: kind, Status: apiErr.HTTPStatusCode, RequestID: requestID, err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{Kind: KindUnavailable, Status: reqErr.HTTPStatusCode, RequestID: requestID, err: err}
	}
	return &UpstreamError{Kind: KindUnavailable, RequestID: requestID, err: err}
}
