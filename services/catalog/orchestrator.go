// Copyright (C) 2025 Harborline Supply Co.
// Licensed under the Apache License, Version 2.0.
// See the LICENSE file for details.

package catalog

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// CategorySource fetches one category's listing. Implemented by
// SourceAdapter; tests substitute fakes.
type CategorySource interface {
	FetchCategory(ctx context.Context, cat Category) ([]ProductRecord, error)
}

// Orchestrator coordinates catalog acquisition through a fallback chain:
//
//  1. fresh cache — return immediately, no network activity
//  2. live fetch — all categories concurrently, the successful subset
//     concatenated; one record anywhere counts as success and is persisted
//  3. stale cache — any cached snapshot, returned as-is
//  4. seed catalog — bundled records, persisted so the next call hits (1)
//
// The ordering prefers speed over freshness, live data over stale data,
// and stale real data over synthetic seed data. GetCatalog has no error
// path: callers always get a snapshot.
type Orchestrator struct {
	store      *Store
	source     CategorySource
	categories []Category
	maxAge     time.Duration
	logger     *slog.Logger
}

// NewOrchestrator wires the acquisition pipeline. maxAge is the freshness
// threshold applied to cached snapshots; zero means every call
// revalidates.
func NewOrchestrator(store *Store, source CategorySource, categories []Category, maxAge time.Duration) *Orchestrator {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Orchestrator{
		store:      store,
		source:     source,
		categories: categories,
		maxAge:     maxAge,
		logger:     slog.Default(),
	}
}

// GetCatalog returns the current catalog snapshot. It never fails; in the
// worst case it degrades to the bundled seed catalog.
func (o *Orchestrator) GetCatalog(ctx context.Context) Snapshot {
	if snap, ok := o.store.Read(); ok && o.store.IsFresh(snap, o.maxAge) {
		return snap
	}

	if live := o.fetchLive(ctx); len(live) > 0 {
		snap := Snapshot{FetchedAt: time.Now().UTC(), Products: live}
		o.persist(snap)
		o.logger.Info("catalog refreshed from live source", "records", len(live))
		return snap
	}

	if stale, ok := o.store.Read(); ok {
		o.logger.Warn("live fetch produced nothing, serving stale snapshot",
			"fetched_at", stale.FetchedAt, "records", len(stale.Products))
		return stale
	}

	snap := Snapshot{FetchedAt: time.Now().UTC(), Products: SeedCatalog()}
	o.persist(snap)
	o.logger.Warn("no cache and live fetch produced nothing, serving seed catalog",
		"records", len(snap.Products))
	return snap
}

// fetchLive fetches every category concurrently and concatenates whatever
// succeeded. Per-category failures are absorbed here; they only shrink
// the result.
func (o *Orchestrator) fetchLive(ctx context.Context) []ProductRecord {
	results := make([][]ProductRecord, len(o.categories))
	var g errgroup.Group
	for i, cat := range o.categories {
		g.Go(func() error {
			recs, err := o.source.FetchCategory(ctx, cat)
			if err != nil {
				o.logger.Warn("category fetch failed", "category", cat.Label, "error", err)
				return nil
			}
			results[i] = recs
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	var all []ProductRecord
	for _, recs := range results {
		all = append(all, recs...)
	}
	return all
}

// persist writes through to the cache. Durability loss is acceptable;
// failing the current request is not, so errors are logged and dropped.
func (o *Orchestrator) persist(snap Snapshot) {
	if err := o.store.Write(snap); err != nil {
		o.logger.Warn("snapshot cache write failed", "error", err)
	}
}
