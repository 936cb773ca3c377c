package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/verte-zerg/typeboard/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "typeboard.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestLatestContentEmpty(t *testing.T) {
	st := testStore(t)
	_, err := st.LatestContent(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertAndLatest(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	records := []model.Content{
		{Title: "old", Body: "old body", Sources: []string{"a"}, FetchedAt: 100},
		{Title: "newest", Body: "new body", Sources: []string{"b", "c"}, FetchedAt: 300},
		{Body: "middle body", FetchedAt: 200},
	}
	for _, r := range records {
		if err := st.InsertContent(ctx, r); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	latest, err := st.LatestContent(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if !reflect.DeepEqual(latest, records[1]) {
		t.Fatalf("expected newest record, got %+v", latest)
	}

	all, err := st.ListContents(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].FetchedAt != 300 || all[2].FetchedAt != 100 {
		t.Fatalf("expected newest-first ordering, got %+v", all)
	}
	if all[1].Title != "" || len(all[1].Sources) != 0 {
		t.Fatalf("expected untitled record without sources, got %+v", all[1])
	}

	limited, err := st.ListContents(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 records, got %d", len(limited))
	}
}

func TestOpenRepositoryDrivers(t *testing.T) {
	ctx := context.Background()
	repo, err := OpenRepository(ctx, model.StoreConfig{Path: filepath.Join(t.TempDir(), "x.db")})
	if err != nil {
		t.Fatalf("open sqlite repository: %v", err)
	}
	_ = repo.Close()

	if _, err := OpenRepository(ctx, model.StoreConfig{Driver: "redis"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
	if _, err := OpenRepository(ctx, model.StoreConfig{Driver: model.DriverMongo}); err == nil {
		t.Fatalf("expected error for empty mongo uri")
	}
}
