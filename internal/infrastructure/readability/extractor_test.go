package readability

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<!DOCTYPE html>
<html>
<head><title>Why Otters Hold Hands</title></head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Why Otters Hold Hands</h1>
    <p class="byline">By Jo Writer</p>
    <p>Sea otters sleep floating on their backs. To keep from drifting apart while
    they rest, pairs and groups link paws, forming loose rafts on the water surface.
    Researchers have observed rafts of more than a hundred animals in sheltered bays.</p>
    <p>The behavior is most common among mothers and pups, but adults of both sexes
    do it too. Kelp is another anchor: otters wrap strands around their bodies so the
    current does not carry them away during the night.</p>
    <p>Hand holding also appears to reduce stress. Otters separated from their raft
    spend more time grooming and less time resting, according to field studies.</p>
    <script>alert("x")</script>
    <p><a href="javascript:alert(1)" onclick="steal()">Read more</a></p>
  </article>
  <footer>Copyright</footer>
</body>
</html>`

func TestExtractor_ExtractsAndSanitizes(t *testing.T) {
	e := NewExtractor()

	article := e.Extract(context.Background(), strings.NewReader(articlePage), "https://news.test/otters")
	require.NotNil(t, article)

	assert.Contains(t, article.Title, "Otters")
	assert.Contains(t, article.Content, "Sea otters sleep")
	assert.NotContains(t, article.Content, "<script")
	assert.NotContains(t, article.Content, "onclick")
	assert.NotContains(t, article.Content, "javascript:")
}

func TestExtractor_NoArticle(t *testing.T) {
	e := NewExtractor()

	tests := []struct {
		name     string
		snapshot string
	}{
		{name: "empty document", snapshot: ""},
		{name: "script only", snapshot: "<html><body><script>var a = 1;</script></body></html>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, e.Extract(context.Background(), strings.NewReader(tt.snapshot), "https://a.test/"))
		})
	}
}

func TestExtractor_NilSnapshot(t *testing.T) {
	assert.Nil(t, NewExtractor().Extract(context.Background(), nil, "https://a.test/"))
}
