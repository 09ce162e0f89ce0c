package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/CrestNiraj12/terminalframes/domain"
)

// pageService implements app.PageSource over the Frames REST API.
type pageService struct {
	client *Client
	log    *log.Helper
}

// NewPageService creates a PageSource backed by the Frames API.
func NewPageService(client *Client, logger log.Logger) *pageService {
	return &pageService{
		client: client,
		log:    log.NewHelper(log.With(logger, "component", "rest")),
	}
}

type framesResponse struct {
	Items []frameEntity `json:"items"`
	Meta  struct {
		Page       int `json:"page"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

type frameEntity struct {
	ID        string `json:"id"`
	Author    string `json:"author"`
	Caption   string `json:"caption"` // HTML
	CreatedAt string `json:"created_at"`
	Media     struct {
		URL        string `json:"url"`
		PreviewURL string `json:"preview_url"`
		Type       string `json:"type"`
	} `json:"media"`
}

func (s *pageService) FetchPage(ctx context.Context, pageNumber, pageSize int) (domain.Page, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(pageNumber))
	q.Set("per_page", strconv.Itoa(pageSize))
	path := "/api/v1/frames?" + q.Encode()

	data, err := s.client.Get(ctx, path)
	if err != nil {
		return domain.Page{}, fmt.Errorf("fetching frames page %d: %w", pageNumber, err)
	}

	var resp framesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.Page{}, fmt.Errorf("parsing frames page %d: %w", pageNumber, err)
	}
	if resp.Meta.Page != pageNumber {
		s.log.Warnw("msg", "server returned a different page", "requested", pageNumber, "got", resp.Meta.Page)
	}

	return domain.Page{
		Items: mapFrames(resp.Items),
		Meta:  domain.PageMeta{Page: resp.Meta.Page, TotalPages: resp.Meta.TotalPages},
	}, nil
}

func mapFrames(in []frameEntity) []domain.Item {
	items := make([]domain.Item, 0, len(in))
	for _, f := range in {
		if strings.TrimSpace(f.ID) == "" {
			continue
		}
		createdAt, _ := time.Parse(time.RFC3339, f.CreatedAt)
		items = append(items, domain.Item{
			ID:        f.ID,
			Author:    sanitizeForTerminal(f.Author),
			Caption:   sanitizeForTerminal(stripHTML(f.Caption)),
			CreatedAt: createdAt,
			Media: domain.MediaRef{
				URL:        strings.TrimSpace(f.Media.URL),
				PreviewURL: strings.TrimSpace(f.Media.PreviewURL),
				Kind:       domain.ParseMediaKind(strings.ToLower(strings.TrimSpace(f.Media.Type))),
			},
		})
	}
	return items
}

// stripHTML removes HTML tags and decodes entities.
// Good enough for terminal display; not a security boundary.
var (
	htmlTagRe   = regexp.MustCompile(`<[^>]*>`)
	lineBreakRe = regexp.MustCompile(`(?i)</p>|<br\s*/?>`)
	scriptRe    = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
)

func stripHTML(s string) string {
	s = scriptRe.ReplaceAllString(s, "")
	// Paragraph ends and breaks become newlines
	s = lineBreakRe.ReplaceAllString(s, "\n")
	s = htmlTagRe.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(s))
}

// sanitizeForTerminal drops escape sequences and control characters that
// could repaint the user's terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) {
			return -1
		}
		return r
	}, s)
}
