// Package interfaces defines service contracts for NISS
package interfaces

import (
	"context"

	"github.com/marketscope/niss/internal/models"
)

// StorageManager coordinates storage backends
type StorageManager interface {
	ScreenStore() ScreenStore

	// Lifecycle
	Close() error
}

// ScreenStore persists screening run history
type ScreenStore interface {
	// SaveScreen stores a completed screening run. Older runs beyond the
	// retention cap are pruned.
	SaveScreen(ctx context.Context, record *models.ScreenRecord) error

	// GetScreen retrieves one run by ID
	GetScreen(ctx context.Context, id string) (*models.ScreenRecord, error)

	// ListScreens returns stored runs, newest first
	ListScreens(ctx context.Context) ([]*models.ScreenRecord, error)

	// DeleteScreen removes one run by ID
	DeleteScreen(ctx context.Context, id string) error
}
