package catalog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quepf/deluge-rpc/internal/catalog"
)

const testHash = "0123456789abcdef0123456789abcdef01234567"

func openStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(filepath.Join(t.TempDir(), "state", "catalog.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Record(ctx, catalog.Entry{
		InfoHash: testHash,
		Name:     "ubuntu.iso",
		Source:   "magnet:?xt=urn:btih:" + testHash,
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	second, err := store.Record(ctx, catalog.Entry{InfoHash: testHash, Name: "again", Source: "ubuntu.torrent"})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if second <= first {
		t.Fatalf("ids not increasing: %d then %d", first, second)
	}

	entries, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].ID != second || entries[1].ID != first {
		t.Errorf("order = %d, %d", entries[0].ID, entries[1].ID)
	}
	if entries[1].Name != "ubuntu.iso" {
		t.Errorf("name = %q", entries[1].Name)
	}
	if entries[0].AddedAt.IsZero() {
		t.Error("added_at not recorded")
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, catalog.Entry{InfoHash: testHash, Source: "s"}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	entries, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len = %d, want 3", len(entries))
	}
}

func TestByHash(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	other := "ffffffffffffffffffffffffffffffffffffffff"
	when := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	if _, err := store.Record(ctx, catalog.Entry{InfoHash: testHash, Name: "one", AddedAt: when}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, catalog.Entry{InfoHash: other, Name: "two"}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.ByHash(ctx, testHash)
	if err != nil {
		t.Fatalf("ByHash: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "one" {
		t.Fatalf("entries = %+v", entries)
	}
	if !entries[0].AddedAt.Equal(when) {
		t.Errorf("added_at = %v, want %v", entries[0].AddedAt, when)
	}
}
