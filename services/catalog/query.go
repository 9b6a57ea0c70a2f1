// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import "strings"

// DefaultPageSize is the page size used when a query does not supply one.
const DefaultPageSize = 24

// Query narrows and pages a snapshot. Category matches its label exactly,
// case-insensitively; Text matches as a case-insensitive substring of name
// or description. Pages are 1-indexed.
type Query struct {
	Category string
	Text     string
	Page     int
	PageSize int
}

// QueryResult is one page of a filtered snapshot.
type QueryResult struct {
	Products   []ProductRecord
	TotalCount int
	Page       int
	TotalPages int
}

// RunQuery applies the category filter, then the text filter, then
// pagination. It is a pure projection over the snapshot: no state, no
// errors. An out-of-range page yields an empty (non-nil) slice.
func RunQuery(snap Snapshot, q Query) QueryResult {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	records := snap.Products
	if q.Category != "" {
		filtered := make([]ProductRecord, 0, len(records))
		for _, p := range records {
			if strings.EqualFold(p.Category, q.Category) {
				filtered = append(filtered, p)
			}
		}
		records = filtered
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		filtered := make([]ProductRecord, 0, len(records))
		for _, p := range records {
			if strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) {
				filtered = append(filtered, p)
			}
		}
		records = filtered
	}

	total := len(records)
	totalPages := (total + q.PageSize - 1) / q.PageSize

	page := make([]ProductRecord, 0, q.PageSize)
	offset := (q.Page - 1) * q.PageSize
	if offset < total {
		end := offset + q.PageSize
		if end > total {
			end = total
		}
		page = append(page, records[offset:end]...)
	}

	return QueryResult{
		Products:   page,
		TotalCount: total,
		Page:       q.Page,
		TotalPages: totalPages,
	}
}

// CategoryCount is one distinct category label with its record count.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories lists the snapshot's distinct category labels in first-seen
// order with how many records each holds.
func Categories(snap Snapshot) []CategoryCount {
	index := make(map[string]int)
	out := make([]CategoryCount, 0)
	for _, p := range snap.Products {
		if i, ok := index[p.Category]; ok {
			out[i].Count++
			continue
		}
		index[p.Category] = len(out)
		out = append(out, CategoryCount{Name: p.Category, Count: 1})
	}
	return out
}
