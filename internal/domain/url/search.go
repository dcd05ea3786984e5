package url

import (
	neturl "net/url"
)

// SearchEngine is one entry of the search registry.
type SearchEngine struct {
	ID string
	// QueryPrefix is the query URL with the query appended at the end.
	QueryPrefix string
}

// GoogleStandardQueryPrefix is Google's regular results page, used when
// the iframe-embeddable endpoint is disabled by preference.
const GoogleStandardQueryPrefix = "https://www.google.com/search?q="

// GoogleEngineID is the default search provider.
const GoogleEngineID = "google"

// searchEngines is ordered: the first entry is the default engine.
var searchEngines = []SearchEngine{
	{ID: GoogleEngineID, QueryPrefix: "https://www.google.com/search?igu=1&q="},
	{ID: "bing", QueryPrefix: "https://www.bing.com/search?q="},
	{ID: "yahoo", QueryPrefix: "https://search.yahoo.com/search?p="},
	{ID: "baidu", QueryPrefix: "https://www.baidu.com/s?wd="},
	{ID: "yandex", QueryPrefix: "https://yandex.com/search/?text="},
	{ID: "duckduckgo", QueryPrefix: "https://duckduckgo.com/?q="},
	{ID: "ecosia", QueryPrefix: "https://www.ecosia.org/search?q="},
}

// SearchEngines returns the registry in order.
func SearchEngines() []SearchEngine {
	out := make([]SearchEngine, len(searchEngines))
	copy(out, searchEngines)
	return out
}

// DefaultSearchEngine returns the first registry entry.
func DefaultSearchEngine() SearchEngine {
	return searchEngines[0]
}

// LookupSearchEngine finds an engine by identifier.
func LookupSearchEngine(id string) (SearchEngine, bool) {
	for _, e := range searchEngines {
		if e.ID == id {
			return e, true
		}
	}
	return SearchEngine{}, false
}

// BuildQueryURL appends the escaped query to the engine's prefix.
//
// Example: bing + "cats" → "https://www.bing.com/search?q=cats"
func (e SearchEngine) BuildQueryURL(query string) string {
	return e.QueryPrefix + neturl.QueryEscape(query)
}

// BuildSearchURL resolves a query against engineID, falling back to the
// default engine for unknown identifiers. When disableIncognito is true and
// the engine is Google, the standard endpoint replaces the embeddable one.
// The second return reports whether engineID was known.
func BuildSearchURL(engineID, query string, disableIncognito bool) (string, bool) {
	engine, known := LookupSearchEngine(engineID)
	if !known {
		engine = DefaultSearchEngine()
	}
	if engine.ID == GoogleEngineID && disableIncognito {
		return GoogleStandardQueryPrefix + neturl.QueryEscape(query), known
	}
	return engine.BuildQueryURL(query), known
}
