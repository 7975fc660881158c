// Package gateway provides a client for the Market Data Gateway service
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/marketscope/niss/internal/common"
	"github.com/marketscope/niss/internal/interfaces"
	"github.com/marketscope/niss/internal/models"
)

const (
	DefaultBaseURL   = "http://localhost:8080"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
	DefaultQuoteTTL  = time.Minute
	DefaultNewsTTL   = 5 * time.Minute
)

// Client implements the MarketDataGateway interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
	quoteCache *gocache.Cache
	newsCache  *gocache.Cache
}

// Compile-time interface check
var _ interfaces.MarketDataGateway = (*Client)(nil)

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCacheTTL sets the quote and news cache TTLs
func WithCacheTTL(quoteTTL, newsTTL time.Duration) ClientOption {
	return func(c *Client) {
		c.quoteCache = gocache.New(quoteTTL, 2*quoteTTL)
		c.newsCache = gocache.New(newsTTL, 2*newsTTL)
	}
}

// NewClient creates a new gateway client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:     common.NewSilentLogger(),
		quoteCache: gocache.New(DefaultQuoteTTL, 2*DefaultQuoteTTL),
		newsCache:  gocache.New(DefaultNewsTTL, 2*DefaultNewsTTL),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a gateway error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gateway error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}

	reqURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("gateway request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetSnapshot retrieves the current quote snapshot for a symbol
func (c *Client) GetSnapshot(ctx context.Context, symbol string) (*models.StockSnapshot, error) {
	cacheKey := "snapshot:" + symbol
	if cached, found := c.quoteCache.Get(cacheKey); found {
		return cached.(*models.StockSnapshot), nil
	}

	var snapshot models.StockSnapshot
	if err := c.get(ctx, "/api/quote/"+url.PathEscape(symbol), nil, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", symbol, err)
	}
	if snapshot.Symbol == "" {
		snapshot.Symbol = symbol
	}

	c.quoteCache.SetDefault(cacheKey, &snapshot)
	return &snapshot, nil
}

// newsArticle is the gateway wire format for one article. Datetime is
// epoch seconds; zero means the article carried no timestamp.
type newsArticle struct {
	Headline  string  `json:"headline"`
	Source    string  `json:"source"`
	Sentiment float64 `json:"sentiment"`
	Datetime  int64   `json:"datetime"`
	Summary   string  `json:"summary"`
}

// GetNews retrieves recent news for a symbol, newest first
func (c *Client) GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error) {
	cacheKey := fmt.Sprintf("news:%s:%d", symbol, limit)
	if cached, found := c.newsCache.Get(cacheKey); found {
		return cached.([]models.NewsItem), nil
	}

	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var articles []newsArticle
	if err := c.get(ctx, "/api/news/"+url.PathEscape(symbol), params, &articles); err != nil {
		return nil, fmt.Errorf("failed to get news for %s: %w", symbol, err)
	}

	news := make([]models.NewsItem, 0, len(articles))
	for _, a := range articles {
		item := models.NewsItem{
			Headline:  a.Headline,
			Source:    a.Source,
			Sentiment: a.Sentiment,
			Summary:   a.Summary,
		}
		if a.Datetime > 0 {
			item.PublishedAt = time.Unix(a.Datetime, 0).UTC()
		}
		news = append(news, item)
	}

	c.newsCache.SetDefault(cacheKey, news)
	return news, nil
}

// GetTechnicals retrieves computed technical indicators for a symbol
func (c *Client) GetTechnicals(ctx context.Context, symbol string) (*models.TechnicalIndicators, error) {
	cacheKey := "technicals:" + symbol
	if cached, found := c.quoteCache.Get(cacheKey); found {
		return cached.(*models.TechnicalIndicators), nil
	}

	var technicals models.TechnicalIndicators
	if err := c.get(ctx, "/api/technicals/"+url.PathEscape(symbol), nil, &technicals); err != nil {
		return nil, fmt.Errorf("failed to get technicals for %s: %w", symbol, err)
	}

	c.quoteCache.SetDefault(cacheKey, &technicals)
	return &technicals, nil
}

// GetOptions retrieves options-flow metrics for a symbol
func (c *Client) GetOptions(ctx context.Context, symbol string) (*models.OptionsMetrics, error) {
	cacheKey := "options:" + symbol
	if cached, found := c.quoteCache.Get(cacheKey); found {
		return cached.(*models.OptionsMetrics), nil
	}

	var options models.OptionsMetrics
	if err := c.get(ctx, "/api/options/"+url.PathEscape(symbol), nil, &options); err != nil {
		return nil, fmt.Errorf("failed to get options for %s: %w", symbol, err)
	}

	c.quoteCache.SetDefault(cacheKey, &options)
	return &options, nil
}

// GetMarketContext retrieves the broad market regime snapshot
func (c *Client) GetMarketContext(ctx context.Context) (*models.MarketContext, error) {
	const cacheKey = "market-context"
	if cached, found := c.quoteCache.Get(cacheKey); found {
		return cached.(*models.MarketContext), nil
	}

	var market models.MarketContext
	if err := c.get(ctx, "/api/market/context", nil, &market); err != nil {
		return nil, fmt.Errorf("failed to get market context: %w", err)
	}

	c.quoteCache.SetDefault(cacheKey, &market)
	return &market, nil
}
