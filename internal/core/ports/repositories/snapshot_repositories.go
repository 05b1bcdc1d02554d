package repositories

import (
	"context"

	"github.com/craftbooks/craft_books_app/internal/core/domain"
)

// SnapshotRepository replaces the full persisted state with a validated
// snapshot in one transaction.
type SnapshotRepository interface {
	ImportSnapshot(ctx context.Context, snapshot domain.Snapshot) error
}
