package catalog

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "catalog.db"), log.NewStdLogger(io.Discard))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *Store, n int) {
	t.Helper()
	items := make([]domain.Item, n)
	for i := range n {
		items[i] = domain.Item{
			ID:        fmt.Sprintf("f%02d", i),
			Author:    "author",
			CreatedAt: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
			Media:     domain.MediaRef{URL: fmt.Sprintf("https://cdn/f%02d.mp4", i), Kind: domain.MediaVideo},
		}
	}
	if _, err := s.Import(context.Background(), items); err != nil {
		t.Fatalf("import: %v", err)
	}
}

func TestFetchPage_PagesInInsertionOrder(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, 23)
	ctx := context.Background()

	var ids []string
	for n := 1; n <= 3; n++ {
		page, err := s.FetchPage(ctx, n, 10)
		if err != nil {
			t.Fatalf("page %d: %v", n, err)
		}
		if page.Meta != (domain.PageMeta{Page: n, TotalPages: 3}) {
			t.Fatalf("page %d meta: %+v", n, page.Meta)
		}
		for _, it := range page.Items {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) != 23 || ids[0] != "f00" || ids[22] != "f22" {
		t.Fatalf("unexpected ids: %v", ids)
	}

	page, _ := s.FetchPage(ctx, 1, 10)
	first := page.Items[0]
	if first.Media.Kind != domain.MediaVideo || !first.CreatedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("fields not round-tripped: %+v", first)
	}
}

func TestFetchPage_EmptyCatalogHasOnePage(t *testing.T) {
	s := openTestStore(t)
	page, err := s.FetchPage(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(page.Items) != 0 || page.Meta.TotalPages != 1 {
		t.Fatalf("unexpected empty page: %+v", page)
	}
	if _, err := s.FetchPage(context.Background(), 0, 10); err == nil {
		t.Fatalf("page 0 must be rejected")
	}
}

func TestImport_SkipsDuplicates(t *testing.T) {
	s := openTestStore(t)
	seed(t, s, 3)
	n, err := s.Import(context.Background(), []domain.Item{{ID: "f01"}, {ID: "new"}})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 inserted, got %d", n)
	}
	if c, _ := s.Count(context.Background()); c != 4 {
		t.Fatalf("expected 4 items, got %d", c)
	}
}

func TestImportJSON(t *testing.T) {
	s := openTestStore(t)
	in := `[
		{"id":"a","author":"ana","caption":"one","created_at":"2026-03-01T10:00:00Z","media":{"url":"https://cdn/a.mp4","type":"video"}},
		{"id":"b","media":{"url":"https://cdn/b.png","type":"image"}}
	]`
	n, err := s.ImportJSON(context.Background(), strings.NewReader(in))
	if err != nil || n != 2 {
		t.Fatalf("import json: n=%d err=%v", n, err)
	}
	page, _ := s.FetchPage(context.Background(), 1, 5)
	if page.Items[0].Media.Kind != domain.MediaVideo || page.Items[1].Media.Kind != domain.MediaOther {
		t.Fatalf("unexpected kinds: %+v", page.Items)
	}

	if _, err := s.ImportJSON(context.Background(), strings.NewReader(`[{"caption":"no id"}]`)); err == nil {
		t.Fatalf("records without id must be rejected")
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:", log.NewStdLogger(io.Discard))
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	defer s.Close()
	seed(t, s, 2)
	if c, _ := s.Count(context.Background()); c != 2 {
		t.Fatalf("expected 2, got %d", c)
	}
}
