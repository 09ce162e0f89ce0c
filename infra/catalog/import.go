package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// importRecord is one entry of a JSON import file. The shape matches the
// items array of the Frames API.
type importRecord struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Caption   string `json:"caption"`
	CreatedAt string `json:"created_at"`
	Media     struct {
		URL        string `json:"url"`
		PreviewURL string `json:"preview_url"`
		Type       string `json:"type"`
	} `json:"media"`
}

// ImportJSON reads a JSON array of frames from r and appends them.
func (s *Store) ImportJSON(ctx context.Context, r io.Reader) (int, error) {
	var records []importRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return 0, fmt.Errorf("decoding import: %w", err)
	}
	items := make([]domain.Item, 0, len(records))
	for i, rec := range records {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			return 0, fmt.Errorf("record %d: missing id", i)
		}
		createdAt, _ := time.Parse(time.RFC3339, rec.CreatedAt)
		items = append(items, domain.Item{
			ID:        id,
			Author:    rec.Author,
			Caption:   rec.Caption,
			CreatedAt: createdAt,
			Media: domain.MediaRef{
				URL:        strings.TrimSpace(rec.Media.URL),
				PreviewURL: strings.TrimSpace(rec.Media.PreviewURL),
				Kind:       domain.ParseMediaKind(strings.ToLower(strings.TrimSpace(rec.Media.Type))),
			},
		})
	}
	return s.Import(ctx, items)
}
