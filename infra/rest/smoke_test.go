//go:build smoke

package rest

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/infra/auth"
)

func TestSmoke_FetchFirstPages(t *testing.T) {
	base := strings.TrimSpace(os.Getenv("TERMINALFRAMES_BASE_URL"))
	if base == "" {
		t.Skip("TERMINALFRAMES_BASE_URL not set")
	}
	svc := NewPageService(NewClient(base, auth.ProviderFor(os.Getenv("TERMINALFRAMES_TOKEN"))), log.NewStdLogger(io.Discard))

	first, err := svc.FetchPage(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if first.Meta.Page != 1 || first.Meta.TotalPages < 1 {
		t.Fatalf("unexpected meta: %+v", first.Meta)
	}
	if first.Meta.TotalPages > 1 {
		second, err := svc.FetchPage(context.Background(), 2, 5)
		if err != nil {
			t.Fatalf("page 2: %v", err)
		}
		seen := make(map[string]bool)
		for _, it := range first.Items {
			seen[it.ID] = true
		}
		for _, it := range second.Items {
			if seen[it.ID] {
				t.Fatalf("pages overlap on %s", it.ID)
			}
		}
	}
}
