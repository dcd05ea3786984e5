// Package readability extracts reader-mode articles from document snapshots.
package readability

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/bnema/previewr/internal/application/port"
	"github.com/bnema/previewr/internal/domain/entity"
	"github.com/bnema/previewr/internal/logging"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Extractor implements port.ArticleExtractor with go-readability.
// Extracted content is passed through a UGC sanitization policy before it
// is handed to the overlay.
type Extractor struct {
	policy *bluemonday.Policy
}

var _ port.ArticleExtractor = (*Extractor)(nil)

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{policy: bluemonday.UGCPolicy()}
}

// Extract parses snapshot as the document at pageURL.
func (e *Extractor) Extract(ctx context.Context, snapshot io.Reader, pageURL string) *entity.Article {
	log := logging.FromContext(ctx)

	if snapshot == nil {
		return nil
	}
	parsed, err := url.Parse(pageURL)
	if err != nil {
		log.Debug().Err(err).Str("url", pageURL).Msg("reader: unparseable page url")
		parsed = nil
	}

	article, err := readability.FromReader(snapshot, parsed)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("reader: extraction failed")
		return nil
	}

	content := strings.TrimSpace(e.policy.Sanitize(article.Content))
	if content == "" || strings.TrimSpace(article.TextContent) == "" {
		log.Debug().Str("url", pageURL).Msg("reader: no article content")
		return nil
	}

	return &entity.Article{
		Title:   strings.TrimSpace(article.Title),
		Byline:  strings.TrimSpace(article.Byline),
		Content: content,
	}
}
