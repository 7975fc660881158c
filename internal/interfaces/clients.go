// Package interfaces defines service contracts for NISS
package interfaces

import (
	"context"

	"github.com/marketscope/niss/internal/models"
)

// MarketDataGateway provides access to the upstream market-data service
type MarketDataGateway interface {
	// GetSnapshot retrieves the current quote snapshot for a symbol
	GetSnapshot(ctx context.Context, symbol string) (*models.StockSnapshot, error)

	// GetNews retrieves recent news for a symbol, newest first
	GetNews(ctx context.Context, symbol string, limit int) ([]models.NewsItem, error)

	// GetTechnicals retrieves computed technical indicators for a symbol
	GetTechnicals(ctx context.Context, symbol string) (*models.TechnicalIndicators, error)

	// GetOptions retrieves options-flow metrics for a symbol
	GetOptions(ctx context.Context, symbol string) (*models.OptionsMetrics, error)

	// GetMarketContext retrieves the broad market regime snapshot
	GetMarketContext(ctx context.Context) (*models.MarketContext, error)
}
