package bsdd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	dErrors "idsforge/pkg/domain-errors"
	"idsforge/pkg/platform/circuit"
)

// MinSearchTermLength is the shortest accepted class search term.
const MinSearchTermLength = 2

const defaultCacheTTL = 15 * time.Minute

// Client queries a bSDD-style dictionary service for classes and their
// properties. Remote failures degrade to empty results so the editor's
// autocomplete never surfaces an outage as an error.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	dictionaries []string
	cache        Cache
	cacheTTL     time.Duration
	breaker      *circuit.Breaker
	logger       *slog.Logger
}

type Option func(c *Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithDictionaries sets the dictionary URIs searched when the caller does
// not name one.
func WithDictionaries(uris []string) Option {
	return func(c *Client) {
		c.dictionaries = uris
	}
}

func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// New constructs a dictionary client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
		cache:      NewMemoryCache(),
		cacheTTL:   defaultCacheTTL,
		breaker:    circuit.New("bsdd"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchClasses finds dictionary classes matching term. With an empty
// dictionaryURI every configured dictionary is searched concurrently and the
// merged result is ranked. Remote failures yield an empty slice, not an
// error.
func (c *Client) SearchClasses(ctx context.Context, term, dictionaryURI string, limit int) ([]Class, error) {
	term = strings.TrimSpace(term)
	if len(term) < MinSearchTermLength {
		return nil, dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("search term must be at least %d characters", MinSearchTermLength))
	}
	if limit <= 0 {
		limit = 25
	}

	dictionaries := c.dictionaries
	if dictionaryURI != "" {
		dictionaries = []string{dictionaryURI}
	}
	if len(dictionaries) == 0 {
		dictionaries = []string{""}
	}

	cacheKey := fmt.Sprintf("bsdd:classes:%s:%s:%d", fold.String(term), strings.Join(dictionaries, ","), limit)
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		var classes []Class
		if err := json.Unmarshal(cached, &classes); err == nil {
			return classes, nil
		}
	}

	if c.breaker.IsOpen() {
		c.logger.WarnContext(ctx, "dictionary search skipped, circuit open", "breaker", c.breaker.Name())
		return []Class{}, nil
	}

	var (
		mu     sync.Mutex
		merged []Class
	)
	group, groupCtx := errgroup.WithContext(ctx)
	for _, dict := range dictionaries {
		group.Go(func() error {
			classes, err := c.fetchClasses(groupCtx, term, dict, limit)
			if err != nil {
				return err
			}
			mu.Lock()
			merged = append(merged, classes...)
			mu.Unlock()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		c.recordFailure(ctx, err)
		return []Class{}, nil
	}
	c.recordSuccess(ctx)

	merged = rankClasses(term, merged)
	if len(merged) > limit {
		merged = merged[:limit]
	}

	if payload, err := json.Marshal(merged); err == nil {
		c.cache.Set(ctx, cacheKey, payload, c.cacheTTL)
	}
	return merged, nil
}

// ClassProperties lists properties of a class, optionally filtered by
// property-set name or free text, with offset/limit paging. Remote failures
// yield an empty slice, not an error.
func (c *Client) ClassProperties(ctx context.Context, classURI, propertySet, filter string, offset, limit int) ([]Property, error) {
	if strings.TrimSpace(classURI) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "class uri is required")
	}
	if limit <= 0 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("bsdd:properties:%s:%s:%s:%d:%d", classURI, propertySet, fold.String(filter), offset, limit)
	if cached, ok := c.cache.Get(ctx, cacheKey); ok {
		var properties []Property
		if err := json.Unmarshal(cached, &properties); err == nil {
			return properties, nil
		}
	}

	if c.breaker.IsOpen() {
		c.logger.WarnContext(ctx, "property lookup skipped, circuit open", "breaker", c.breaker.Name())
		return []Property{}, nil
	}

	query := url.Values{}
	query.Set("ClassUri", classURI)
	query.Set("Offset", strconv.Itoa(offset))
	query.Set("Limit", strconv.Itoa(limit))
	if propertySet != "" {
		query.Set("PropertySet", propertySet)
	}

	var response classPropertiesResponse
	if err := c.getJSON(ctx, "/api/Class/Properties/v1", query, &response); err != nil {
		c.recordFailure(ctx, err)
		return []Property{}, nil
	}
	c.recordSuccess(ctx)

	properties := response.Properties
	if filter != "" {
		folded := fold.String(filter)
		kept := properties[:0]
		for _, p := range properties {
			if strings.Contains(fold.String(p.Name), folded) ||
				strings.Contains(fold.String(p.PropertySet), folded) {
				kept = append(kept, p)
			}
		}
		properties = kept
	}
	if properties == nil {
		properties = []Property{}
	}

	if payload, err := json.Marshal(properties); err == nil {
		c.cache.Set(ctx, cacheKey, payload, c.cacheTTL)
	}
	return properties, nil
}

func (c *Client) fetchClasses(ctx context.Context, term, dictionaryURI string, limit int) ([]Class, error) {
	query := url.Values{}
	query.Set("SearchText", term)
	query.Set("Limit", strconv.Itoa(limit))
	if dictionaryURI != "" {
		query.Set("DictionaryUri", dictionaryURI)
	}

	var response classSearchResponse
	if err := c.getJSON(ctx, "/api/Class/Search/v1", query, &response); err != nil {
		return nil, err
	}
	return response.Classes, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build dictionary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("dictionary request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode dictionary response: %w", err)
	}
	return nil
}

func (c *Client) recordFailure(ctx context.Context, err error) {
	c.logger.WarnContext(ctx, "dictionary request failed", "error", err)
	if _, change := c.breaker.RecordFailure(); change.Opened {
		c.logger.WarnContext(ctx, "circuit breaker opened", "breaker", c.breaker.Name())
	}
}

func (c *Client) recordSuccess(ctx context.Context) {
	if _, change := c.breaker.RecordSuccess(); change.Closed {
		c.logger.InfoContext(ctx, "circuit breaker closed", "breaker", c.breaker.Name())
	}
}
