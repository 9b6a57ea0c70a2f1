// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

// Package catalog owns acquisition, caching, and querying of the product
// catalog.
//
// The catalog comes from an external chandlery site whose markup is not a
// contract. Acquisition therefore runs through a fallback chain (fresh
// cache, live fetch, stale cache, bundled seed data) so callers always get
// a usable snapshot and never see an acquisition error.
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRecord is one catalog listing.
//
// ID is derived from the source category and the listing's normalized name,
// so re-fetching an unchanged listing tends to reproduce the same id. The
// source may rename listings between fetches, in which case the id changes
// with it; downstream consumers assume this id format as-is.
type ProductRecord struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	ImageURL      string           `json:"imageUrl"`
	Description   string           `json:"description"`
	Category      string           `json:"category"`
	SourceURL     string           `json:"sourceUrl"`
}

// Snapshot is one complete, timestamped capture of the catalog.
//
// A snapshot is never mutated after creation; the next successful
// acquisition supersedes it wholesale.
type Snapshot struct {
	FetchedAt time.Time       `json:"fetchedAt"`
	Products  []ProductRecord `json:"products"`
}

// Lookup returns the record with the given id, if it exists in the snapshot.
func (s Snapshot) Lookup(id string) (ProductRecord, bool) {
	for _, p := range s.Products {
		if p.ID == id {
			return p, true
		}
	}
	return ProductRecord{}, false
}
