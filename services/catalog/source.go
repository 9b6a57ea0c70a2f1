// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html"
)

// Acquisition-internal failures. They steer the orchestrator's fallback
// chain and are never surfaced to catalog callers.
var (
	// ErrSourceUnavailable means the category page could not be fetched
	// (network failure, timeout, or a non-200 response).
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrParseFailure means the page was fetched but its shape was not
	// recognized as a product listing.
	ErrParseFailure = errors.New("catalog listing shape unrecognized")
)

// Category identifies one external category listing to fetch.
type Category struct {
	ID    string
	Slug  string
	Label string
}

// DefaultCategories are the chandlery departments fetched on a live
// acquisition.
var DefaultCategories = []Category{
	{ID: "3", Slug: "deck-hardware", Label: "Deck Hardware"},
	{ID: "7", Slug: "safety", Label: "Safety"},
	{ID: "10", Slug: "electrical", Label: "Electrical"},
	{ID: "14", Slug: "ropes-rigging", Label: "Ropes & Rigging"},
	{ID: "17", Slug: "anchoring", Label: "Anchoring"},
	{ID: "21", Slug: "navigation", Label: "Navigation"},
	{ID: "26", Slug: "maintenance", Label: "Maintenance"},
}

// The source blocks obvious bots; identify as a mobile browser.
const userAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"

// DefaultSourceTimeout bounds one category fetch.
const DefaultSourceTimeout = 8 * time.Second

// HTTPClient allows injecting a mock client for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SourceAdapter fetches and parses one category's listing from the
// external source into normalized ProductRecords. Each category is fetched
// independently; a failure affects only that category.
type SourceAdapter struct {
	baseURL   string
	client    HTTPClient
	extractor ListingExtractor
	logger    *slog.Logger
}

// NewSourceAdapter builds an adapter for the given source root, e.g.
// "https://www.nautichandler.com". A nil client gets a default with
// DefaultSourceTimeout.
func NewSourceAdapter(baseURL string, client HTTPClient) *SourceAdapter {
	if client == nil {
		client = &http.Client{Timeout: DefaultSourceTimeout}
	}
	return &SourceAdapter{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		extractor: prestaExtractor{},
		logger:    slog.Default(),
	}
}

// FetchCategory fetches one category page and returns its normalized
// records. Entries without a name are omitted, not errors. Fails with
// ErrSourceUnavailable or ErrParseFailure; both are non-fatal to the
// caller.
func (a *SourceAdapter) FetchCategory(ctx context.Context, cat Category) ([]ProductRecord, error) {
	url := fmt.Sprintf("%s/en/%s-%s", a.baseURL, cat.ID, cat.Slug)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-GB,en;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", ErrSourceUnavailable, url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}

	listings := a.extractor.Extract(doc)
	if len(listings) == 0 {
		return nil, fmt.Errorf("%w: no listings in %s", ErrParseFailure, url)
	}

	records := make([]ProductRecord, 0, len(listings))
	for _, l := range listings {
		if l.Name == "" {
			continue
		}
		rec := ProductRecord{
			ID:          deriveID(l.Name, cat.ID),
			Name:        l.Name,
			Price:       parsePrice(l.PriceText),
			ImageURL:    l.ImageRef,
			Description: l.Description,
			Category:    cat.Label,
			SourceURL:   a.absoluteURL(l.DetailRef),
		}
		if rec.ImageURL == "" {
			rec.ImageURL = "/placeholder-product.png"
		}
		if rec.Description == "" {
			rec.Description = cat.Label + " product"
		}
		// A pre-discount reference price only makes sense above the
		// current price.
		if regular := parsePrice(l.RegularPrice); regular.GreaterThan(rec.Price) {
			rec.OriginalPrice = &regular
		}
		records = append(records, rec)
	}
	a.logger.Debug("category fetched", "category", cat.Label, "records", len(records))
	return records, nil
}

func (a *SourceAdapter) absoluteURL(ref string) string {
	if strings.HasPrefix(ref, "http") {
		return ref
	}
	return a.baseURL + ref
}

var (
	idStripPattern    = regexp.MustCompile(`[^\w-]`)
	priceStripPattern = regexp.MustCompile(`[^0-9.,]`)
)

// deriveID builds a stable-ish id from the listing name and category id:
// "nh-" + slugged name (40 chars max) + "-" + category id. Re-fetching an
// unchanged listing reproduces the same id; a renamed listing does not.
func deriveID(name, catID string) string {
	slug := strings.ToLower(name)
	slug = strings.Join(strings.Fields(slug), "-")
	slug = idStripPattern.ReplaceAllString(slug, "")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	return "nh-" + slug + "-" + catID
}

// parsePrice normalizes price text like "1.234,56 €" to a decimal. All
// non-numeric separators are stripped, the last separator is taken as the
// decimal point, and anything unparsable comes back as zero: a product
// with an unknown price is still worth surfacing.
func parsePrice(text string) decimal.Decimal {
	cleaned := priceStripPattern.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if i := strings.LastIndex(cleaned, "."); i >= 0 {
		cleaned = strings.ReplaceAll(cleaned[:i], ".", "") + cleaned[i:]
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}
