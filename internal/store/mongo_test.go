package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/verte-zerg/typeboard/internal/model"
)

func TestMongoStoreRoundTrip(t *testing.T) {
	uri := os.Getenv("TYPEBOARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TYPEBOARD_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	database := fmt.Sprintf("typeboard_test_%d", time.Now().UnixNano())
	st, err := OpenMongo(ctx, uri, database)
	if err != nil {
		t.Fatalf("open mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = st.client.Database(database).Drop(context.Background())
		_ = st.Close()
	})

	if _, err := st.LatestContent(ctx); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty collection, got %v", err)
	}
	for i, title := range []string{"first", "second"} {
		c := model.Content{Title: title, Body: "body " + title, Sources: []string{"s"}, FetchedAt: int64(100 * (i + 1))}
		if err := st.InsertContent(ctx, c); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
	latest, err := st.LatestContent(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.Title != "second" {
		t.Fatalf("expected second, got %q", latest.Title)
	}
	all, err := st.ListContents(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].FetchedAt != 200 {
		t.Fatalf("unexpected list %+v", all)
	}
}
