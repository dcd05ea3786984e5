// Package headless implements the host page collaborators without a browser:
// a document loaded from HTML, an overlay surface that records the commands
// it receives, and a JSON-lines event script decoder.
package headless

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/bnema/previewr/internal/application/port"
	domainurl "github.com/bnema/previewr/internal/domain/url"
	"golang.org/x/net/idna"
)

// DefaultDocumentURL is used when no document URL is given.
const DefaultDocumentURL = "about:blank"

var zIndexPattern = regexp.MustCompile(`(?i)z-index\s*:\s*(-?\d+)`)

// DocumentOptions describe the browsing context of a headless document.
type DocumentOptions struct {
	// URL is the document location; its scheme and host form the origin.
	// A bare address such as "example.com" is read as https.
	URL string
	// Name is the browsing context name.
	Name string
	// Framed marks a document embedded in another one.
	Framed bool
}

// Document is a static HostDocument parsed once from markup.
type Document struct {
	markup   []byte
	dom      *goquery.Document
	location string
	origin   string
	name     string
	topLevel bool
	zIndex   int
}

var _ port.HostDocument = (*Document)(nil)

// LoadDocument reads markup from path.
func LoadDocument(path string, opts DocumentOptions) (*Document, error) {
	markup, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return NewDocument(markup, opts)
}

// NewDocument parses markup.
func NewDocument(markup []byte, opts DocumentOptions) (*Document, error) {
	opts.URL = domainurl.Normalize(opts.URL)
	if opts.URL == "" {
		opts.URL = DefaultDocumentURL
	}
	origin, err := originOf(opts.URL)
	if err != nil {
		return nil, err
	}

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return &Document{
		markup:   markup,
		dom:      dom,
		location: opts.URL,
		origin:   origin,
		name:     opts.Name,
		topLevel: !opts.Framed,
		zIndex:   scanZIndex(dom),
	}, nil
}

// originOf returns scheme://host[:port] with the host in ASCII form, or
// "null" for opaque URLs.
func originOf(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("document url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "null", nil
	}

	host := strings.ToLower(u.Hostname())
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		host = ascii
	}
	if port := u.Port(); port != "" {
		host = net.JoinHostPort(host, port)
	} else if strings.Contains(host, ":") {
		host = "[" + host + "]"
	}
	return strings.ToLower(u.Scheme) + "://" + host, nil
}

// scanZIndex finds the highest z-index in inline styles and style sheets.
func scanZIndex(dom *goquery.Document) int {
	highest := 0
	consider := func(css string) {
		for _, m := range zIndexPattern.FindAllStringSubmatch(css, -1) {
			if n, err := strconv.Atoi(m[1]); err == nil && n > highest {
				highest = n
			}
		}
	}

	dom.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		consider(style)
	})
	dom.Find("style").Each(func(_ int, sel *goquery.Selection) {
		consider(sel.Text())
	})
	return highest
}

// WithName returns a view of the same document under another browsing context
// name, as seen from inside a named frame.
func (d *Document) WithName(name string) *Document {
	named := *d
	named.name = name
	named.topLevel = false
	return &named
}

// Origin implements port.HostDocument.
func (d *Document) Origin() string { return d.origin }

// Location implements port.HostDocument.
func (d *Document) Location() string { return d.location }

// IsTopLevel implements port.HostDocument.
func (d *Document) IsTopLevel() bool { return d.topLevel }

// Name implements port.HostDocument.
func (d *Document) Name() string { return d.name }

// Snapshot implements port.HostDocument.
func (d *Document) Snapshot() io.Reader {
	return bytes.NewReader(d.markup)
}

// MaxZIndex implements port.HostDocument.
func (d *Document) MaxZIndex() int { return d.zIndex }

// Contains reports whether the element with id nodeID is ancestorID itself or
// one of its descendants.
func (d *Document) Contains(ancestorID, nodeID string) bool {
	if ancestorID == "" || nodeID == "" {
		return false
	}
	ancestor := d.dom.Find(idSelector(ancestorID))
	if ancestor.Length() == 0 {
		return false
	}
	if ancestorID == nodeID {
		return true
	}
	return ancestor.Find(idSelector(nodeID)).Length() > 0
}

func idSelector(id string) string {
	return `[id="` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(id) + `"]`
}

// Window is a HostWindow that records requested browser actions.
type Window struct {
	mu       sync.Mutex
	tabs     []string
	settings int
}

var _ port.HostWindow = (*Window)(nil)

// NewWindow creates an empty window recorder.
func NewWindow() *Window {
	return &Window{}
}

// OpenInNewTab implements port.HostWindow.
func (w *Window) OpenInNewTab(_ context.Context, url string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tabs = append(w.tabs, url)
	return nil
}

// OpenSettings implements port.HostWindow.
func (w *Window) OpenSettings(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.settings++
	return nil
}

// Tabs returns the URLs opened in new tabs, in order.
func (w *Window) Tabs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.tabs...)
}

// SettingsOpened counts settings page requests.
func (w *Window) SettingsOpened() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.settings
}
