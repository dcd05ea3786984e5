package port

import (
	"context"
	"io"

	"github.com/bnema/previewr/internal/domain/entity"
)

// ArticleExtractor turns a document snapshot into reader-mode content.
type ArticleExtractor interface {
	// Extract returns nil when no article could be found.
	Extract(ctx context.Context, snapshot io.Reader, pageURL string) *entity.Article
}
