// Copyright (C) 2025 Harborline Supply Co.
// Tests for the match pipeline.

package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harborline/chandlery/services/catalog"
)

// mockCompletion records the last request and returns a canned response.
type mockCompletion struct {
	resp    openai.ChatCompletionResponse
	err     error
	calls   int
	lastReq openai.ChatCompletionRequest
}

func (m *mockCompletion) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.calls++
	m.lastReq = req
	return m.resp, m.err
}

func completionSaying(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: content}},
		},
	}
}

func matchSnapshot(n int) catalog.Snapshot {
	products := make([]catalog.ProductRecord, 0, n)
	for i := 0; i < n; i++ {
		products = append(products, catalog.ProductRecord{
			ID:          fmt.Sprintf("nh-item-%d", i),
			Name:        fmt.Sprintf("Item %d", i),
			Category:    "Safety",
			Description: strings.Repeat("d", 200),
		})
	}
	return catalog.Snapshot{Products: products}
}

func newTestMatcher(mock *mockCompletion) *Matcher {
	return &Matcher{Client: mock, Model: DefaultModel}
}

func TestNew_MissingCredential(t *testing.T) {
	_, err := New(Config{})
	assert.ErrorIs(t, err, ErrMissingCredential)
}

func TestMatch_InvalidInputShortCircuits(t *testing.T) {
	mock := &mockCompletion{resp: completionSaying(`{"matches":[]}`)}
	m := newTestMatcher(mock)
	snap := matchSnapshot(3)

	for _, problem := range []string{"", "hi", "  a  ", " \t "} {
		_, _, err := m.Match(context.Background(), problem, snap)
		assert.ErrorIs(t, err, ErrInvalidInput, "problem %q", problem)
	}
	assert.Zero(t, mock.calls, "no upstream call may happen for invalid input")
}

func TestMatch_HydrationDropsUnknownIDs(t *testing.T) {
	mock := &mockCompletion{
		resp: completionSaying(`{"matches":["nh-item-0","ghost-id","nh-item-2"]}`),
	}
	m := newTestMatcher(mock)

	matches, requestID, err := m.Match(context.Background(), "anchor dragging in the marina", matchSnapshot(3))
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
	require.Len(t, matches, 2)
	assert.Equal(t, "nh-item-0", matches[0].ID)
	assert.Equal(t, "nh-item-2", matches[1].ID, "order of surviving ids is preserved")
}

func TestMatch_MalformedResponseDegradesToZeroMatches(t *testing.T) {
	mock := &mockCompletion{resp: completionSaying("sorry, I can't do JSON today")}
	m := newTestMatcher(mock)

	matches, _, err := m.Match(context.Background(), "bilge pump is dead", matchSnapshot(3))
	require.NoError(t, err, "a parse failure is not a hard failure")
	assert.Empty(t, matches)
}

func TestMatch_EmptyChoicesDegradesToZeroMatches(t *testing.T) {
	mock := &mockCompletion{resp: openai.ChatCompletionResponse{}}
	m := newTestMatcher(mock)

	matches, _, err := m.Match(context.Background(), "bilge pump is dead", matchSnapshot(3))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatch_ClampsToThreeRecords(t *testing.T) {
	mock := &mockCompletion{
		resp: completionSaying(`{"matches":["nh-item-0","nh-item-1","nh-item-2","nh-item-3","nh-item-4"]}`),
	}
	m := newTestMatcher(mock)

	matches, _, err := m.Match(context.Background(), "need everything", matchSnapshot(5))
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestMatch_ContextIsBounded(t *testing.T) {
	mock := &mockCompletion{resp: completionSaying(`{"matches":[]}`)}
	m := newTestMatcher(mock)

	_, _, err := m.Match(context.Background(), "torn spinnaker", matchSnapshot(200))
	require.NoError(t, err)

	require.Len(t, mock.lastReq.Messages, 2)
	userMsg := mock.lastReq.Messages[1].Content
	assert.Equal(t, catalogContextLimit, strings.Count(userMsg, "- [nh-item-"),
		"prompt must carry at most %d products", catalogContextLimit)
	for _, line := range strings.Split(userMsg, "\n") {
		assert.LessOrEqual(t, len(line), 200, "descriptions must be truncated")
	}
	assert.Equal(t, float32(0.2), mock.lastReq.Temperature)
	assert.Equal(t, 200, mock.lastReq.MaxTokens)
	require.NotNil(t, mock.lastReq.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, mock.lastReq.ResponseFormat.Type)
}

func TestMatch_TruncationKeepsRuneBoundaries(t *testing.T) {
	mock := &mockCompletion{resp: completionSaying(`{"matches":[]}`)}
	m := newTestMatcher(mock)
	snap := catalog.Snapshot{Products: []catalog.ProductRecord{{
		ID:          "nh-fender-1",
		Name:        "Fender",
		Category:    "Deck",
		Description: strings.Repeat("ø", descriptionLimit+20),
	}}}

	_, _, err := m.Match(context.Background(), "fender keeps deflating", snap)
	require.NoError(t, err)

	userMsg := mock.lastReq.Messages[1].Content
	assert.True(t, utf8.ValidString(userMsg), "truncation must not split a rune")
	assert.Equal(t, descriptionLimit, strings.Count(userMsg, "ø"))
}

func TestMatch_Classification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "quota exhaustion",
			err:  &openai.APIError{HTTPStatusCode: 429, Code: "insufficient_quota"},
			want: KindQuotaExceeded,
		},
		{
			name: "plain rate limit",
			err:  &openai.APIError{HTTPStatusCode: 429},
			want: KindRateLimited,
		},
		{
			name: "server error",
			err:  &openai.APIError{HTTPStatusCode: 503},
			want: KindUnavailable,
		},
		{
			name: "transport error",
			err:  errors.New("dial tcp: connection refused"),
			want: KindUnavailable,
		},
		{
			name: "request error",
			err:  &openai.RequestError{HTTPStatusCode: 502, Err: errors.New("bad gateway")},
			want: KindUnavailable,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mock := &mockCompletion{err: tc.err}
			m := newTestMatcher(mock)

			_, requestID, err := m.Match(context.Background(), "engine overheating", matchSnapshot(3))
			var upstream *UpstreamError
			require.ErrorAs(t, err, &upstream)
			assert.Equal(t, tc.want, upstream.Kind)
			assert.Equal(t, requestID, upstream.RequestID)
			assert.NotEmpty(t, upstream.Message())
		})
	}
}

func TestUpstreamError_Messages(t *testing.T) {
	quota := &UpstreamError{Kind: KindQuotaExceeded}
	rate := &UpstreamError{Kind: KindRateLimited}
	down := &UpstreamError{Kind: KindUnavailable}

	assert.NotEqual(t, quota.Message(), rate.Message(),
		"quota exhaustion implies operator action, not retry, and must read differently")
	assert.NotEqual(t, rate.Message(), down.Message())
}
