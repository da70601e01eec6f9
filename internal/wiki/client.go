// Package wiki finds a canonical illustration for a catalog entry in an
// external wiki image index.
package wiki

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	httputil "github.com/jmylchreest/blox/internal/util/http"
)

// ErrNotFound is returned when no candidate image survives ranking.
var ErrNotFound = errors.New("no wiki image found")

// DefaultLimit is the maximum number of candidates requested per prefix.
const DefaultLimit = 500

// Searcher lists candidate images whose filename starts with prefix.
type Searcher interface {
	Search(ctx context.Context, prefix string) ([]Candidate, error)
}

// Client queries a MediaWiki API for images by filename prefix.
type Client struct {
	apiURL  string
	timeout time.Duration
	limit   int
}

// NewClient creates a Client for the MediaWiki API at apiURL.
func NewClient(apiURL string, timeout time.Duration) *Client {
	return &Client{apiURL: apiURL, timeout: timeout, limit: DefaultLimit}
}

type allImagesResponse struct {
	Query struct {
		AllImages []Candidate `json:"allimages"`
	} `json:"query"`
}

// Search lists images whose name starts with prefix. Only the first page of
// results is read.
func (c *Client) Search(ctx context.Context, prefix string) ([]Candidate, error) {
	q := url.Values{}
	q.Set("action", "query")
	q.Set("list", "allimages")
	q.Set("aiprefix", prefix)
	q.Set("ailimit", strconv.Itoa(c.limit))
	q.Set("aiprop", "url")
	q.Set("format", "json")

	var resp allImagesResponse
	if err := httputil.FetchJSON(ctx, c.apiURL+"?"+q.Encode(), httputil.FetchOptions{Timeout: c.timeout}, &resp); err != nil {
		return nil, fmt.Errorf("image search for %q failed: %w", prefix, err)
	}
	return resp.Query.AllImages, nil
}

// NormalizePrefix turns an entry id into the wiki filename prefix,
// capitalising each underscore-delimited word ("acacia_log" -> "Acacia_Log").
func NormalizePrefix(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, "_")
}

// Finder resolves entries to image URLs, querying the index at most once
// per prefix.
type Finder struct {
	searcher Searcher
	ranker   *Ranker
	cache    *Cache
	logger   hclog.Logger
}

// NewFinder creates a Finder. The cache is owned by the caller and scopes
// memoisation to its lifetime.
func NewFinder(searcher Searcher, ranker *Ranker, cache *Cache, logger hclog.Logger) *Finder {
	if ranker == nil {
		ranker = DefaultRanker()
	}
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Finder{searcher: searcher, ranker: ranker, cache: cache, logger: logger}
}

// Find returns the illustration URL for the entry with the given id and raw
// name. Search failures are cached as misses and reported as ErrNotFound.
func (f *Finder) Find(ctx context.Context, id, name string) (string, error) {
	prefix := NormalizePrefix(id)
	if u, found, ok := f.cache.Get(prefix); ok {
		if !found {
			return "", ErrNotFound
		}
		return u, nil
	}

	candidates, err := f.searcher.Search(ctx, prefix)
	if err != nil {
		f.logger.Debug("image search failed", "prefix", prefix, "error", err)
		f.cache.PutMiss(prefix)
		return "", ErrNotFound
	}

	best, ok := f.ranker.Best(name, candidates)
	if !ok || best.URL == "" {
		f.logger.Debug("no usable image", "prefix", prefix, "candidates", len(candidates))
		f.cache.PutMiss(prefix)
		return "", ErrNotFound
	}

	f.logger.Trace("image selected", "prefix", prefix, "file", best.Name)
	f.cache.Put(prefix, best.URL)
	return best.URL, nil
}
