// Copyright (C) 2025 Harborline Supply Co.
// Tests for the snapshot cache.

package catalog

import (
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(StoreConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testSnapshot(fetchedAt time.Time) Snapshot {
	orig := decimal.RequireFromString("19.99")
	return Snapshot{
		FetchedAt: fetchedAt,
		Products: []ProductRecord{
			{
				ID:            "nh-first-3",
				Name:          "First",
				Price:         decimal.RequireFromString("12.34"),
				OriginalPrice: &orig,
				ImageURL:      "/products/first.png",
				Description:   "first product",
				Category:      "Safety",
				SourceURL:     "https://example.com/first",
			},
			{
				ID:          "nh-second-3",
				Name:        "Second",
				Price:       decimal.Zero,
				ImageURL:    "/products/second.png",
				Description: "second product",
				Category:    "Ropes",
				SourceURL:   "https://example.com/second",
			},
		},
	}
}

func TestStore_ReadAbsent(t *testing.T) {
	store := newTestStore(t)

	_, ok := store.Read()
	assert.False(t, ok, "empty store should read as absent")
}

func TestStore_WriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	snap := testSnapshot(time.Now().UTC().Truncate(time.Millisecond))

	require.NoError(t, store.Write(snap))

	got, ok := store.Read()
	require.True(t, ok)
	assert.True(t, got.FetchedAt.Equal(snap.FetchedAt), "fetch time must survive the round trip")
	require.Len(t, got.Products, 2)
	assert.Equal(t, "nh-first-3", got.Products[0].ID, "record order must be preserved")
	assert.True(t, got.Products[0].Price.Equal(snap.Products[0].Price))
	require.NotNil(t, got.Products[0].OriginalPrice)
	assert.True(t, got.Products[0].OriginalPrice.Equal(*snap.Products[0].OriginalPrice))
	assert.Nil(t, got.Products[1].OriginalPrice)
}

func TestStore_WriteReplacesPrevious(t *testing.T) {
	store := newTestStore(t)

	first := testSnapshot(time.Now().UTC().Add(-time.Hour))
	require.NoError(t, store.Write(first))

	second := testSnapshot(time.Now().UTC())
	second.Products = second.Products[:1]
	require.NoError(t, store.Write(second))

	got, ok := store.Read()
	require.True(t, ok)
	assert.Len(t, got.Products, 1)
	assert.True(t, got.FetchedAt.Equal(second.FetchedAt))
}

func TestStore_CorruptPayloadReadsAsAbsent(t *testing.T) {
	store := newTestStore(t)

	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), []byte("not json{{"))
	})
	require.NoError(t, err)

	_, ok := store.Read()
	assert.False(t, ok, "corrupt payload must read as absent, not raise")
}

func TestStore_ShapeMismatchReadsAsAbsent(t *testing.T) {
	store := newTestStore(t)

	// Valid JSON that is not a snapshot.
	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), []byte(`{"schema":2,"rows":[]}`))
	})
	require.NoError(t, err)

	_, ok := store.Read()
	assert.False(t, ok)
}

func TestStore_IsFresh(t *testing.T) {
	store := newTestStore(t)

	recent := Snapshot{FetchedAt: time.Now().Add(-time.Minute)}
	old := Snapshot{FetchedAt: time.Now().Add(-2 * time.Hour)}

	assert.True(t, store.IsFresh(recent, time.Hour))
	assert.False(t, store.IsFresh(old, time.Hour))
	assert.False(t, store.IsFresh(recent, 0), "zero threshold means always revalidate")
}
