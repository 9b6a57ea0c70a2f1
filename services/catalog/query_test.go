// Copyright (C) 2025 Harborline Supply Co.
// Tests for the catalog query engine.

package catalog

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func querySnapshot() Snapshot {
	products := []ProductRecord{
		{ID: "a", Name: "Delta anchor", Description: "plough anchor", Category: "Anchoring"},
		{ID: "b", Name: "Lifejacket pilot", Description: "rated 150 N", Category: "Safety"},
		{ID: "c", Name: "Reflective tape", Description: "for life vests", Category: "Safety"},
		{ID: "d", Name: "Dyneema rope", Description: "regatta line", Category: "Ropes"},
		{ID: "e", Name: "Compass bracket", Description: "offshore mounting", Category: "Navigation"},
		{ID: "f", Name: "Anchor light", Description: "LED masthead", Category: "Electrical"},
	}
	for i := range products {
		products[i].Price = decimal.NewFromInt(int64(i + 1))
	}
	return Snapshot{Products: products}
}

func TestRunQuery_CategoryFilterIsCaseInsensitiveExact(t *testing.T) {
	res := RunQuery(querySnapshot(), Query{Category: "sAfEtY"})

	require.Len(t, res.Products, 2)
	for _, p := range res.Products {
		assert.Equal(t, "Safety", p.Category)
	}
	assert.Equal(t, 2, res.TotalCount)
}

func TestRunQuery_CategoryFilterDoesNotSubstringMatch(t *testing.T) {
	res := RunQuery(querySnapshot(), Query{Category: "Safe"})
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, res.TotalCount)
	assert.Equal(t, 0, res.TotalPages)
}

func TestRunQuery_TextFilterMatchesNameOrDescription(t *testing.T) {
	// "anchor" appears in a name ("Delta anchor", "Anchor light") and in
	// a description ("plough anchor").
	res := RunQuery(querySnapshot(), Query{Text: "ANCHOR"})

	ids := make([]string, 0, len(res.Products))
	for _, p := range res.Products {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "f"}, ids)
}

func TestRunQuery_FiltersCompose(t *testing.T) {
	res := RunQuery(querySnapshot(), Query{Category: "Safety", Text: "vests"})
	require.Len(t, res.Products, 1)
	assert.Equal(t, "c", res.Products[0].ID)
}

func TestRunQuery_PaginationReassemblesFilteredSet(t *testing.T) {
	snap := querySnapshot()
	for _, pageSize := range []int{1, 2, 3, 4, 6, 10} {
		first := RunQuery(snap, Query{Page: 1, PageSize: pageSize})
		wantPages := (first.TotalCount + pageSize - 1) / pageSize
		require.Equal(t, wantPages, first.TotalPages, "pageSize %d", pageSize)

		var all []string
		for page := 1; page <= first.TotalPages; page++ {
			res := RunQuery(snap, Query{Page: page, PageSize: pageSize})
			for _, p := range res.Products {
				all = append(all, p.ID)
			}
		}
		assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, all,
			fmt.Sprintf("pageSize %d must reproduce the set with no gaps or duplicates", pageSize))
	}
}

func TestRunQuery_OutOfRangePageIsEmptyNotError(t *testing.T) {
	res := RunQuery(querySnapshot(), Query{Page: 99, PageSize: 4})
	assert.NotNil(t, res.Products)
	assert.Empty(t, res.Products)
	assert.Equal(t, 6, res.TotalCount)
	assert.Equal(t, 2, res.TotalPages)
}

func TestRunQuery_DefaultsApplied(t *testing.T) {
	res := RunQuery(querySnapshot(), Query{})
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Products, 6)
	assert.Equal(t, 1, res.TotalPages)
}

func TestCategories_CountsAndOrder(t *testing.T) {
	counts := Categories(querySnapshot())

	require.Len(t, counts, 5)
	assert.Equal(t, CategoryCount{Name: "Anchoring", Count: 1}, counts[0])
	assert.Equal(t, CategoryCount{Name: "Safety", Count: 2}, counts[1])

	total := 0
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, 6, total, "counts must sum to the snapshot size")
}
