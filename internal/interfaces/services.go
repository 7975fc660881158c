// Package interfaces defines service contracts for NISS
package interfaces

import (
	"context"

	"github.com/marketscope/niss/internal/models"
)

// ScreenOptions configures a multi-symbol screening run
type ScreenOptions struct {
	// Limit caps the number of ranked entries returned (0 = no cap)
	Limit int

	// MinScore drops entries whose score falls below the threshold.
	// Zero means no filter.
	MinScore float64

	// NewsLimit overrides the configured per-symbol news fetch size
	NewsLimit int
}

// ScreenerService scores symbols and ranks screening runs
type ScreenerService interface {
	// ScoreSymbol fetches market data for one symbol and produces a full
	// scored result with its trade setup
	ScoreSymbol(ctx context.Context, symbol string) (*models.NISSResult, *models.TradeSetup, error)

	// ScreenSymbols scores a batch of symbols concurrently, ranks them by
	// score, and persists the run
	ScreenSymbols(ctx context.Context, symbols []string, opts ScreenOptions) (*models.ScreenRecord, error)
}
