// Package store persists IDS documents. Stores are interface-driven so the
// service layer stays testable against the in-memory implementation while
// deployments run on PostgreSQL.
package store

import (
	"context"
	"time"

	"idsforge/internal/ids/model"
)

// Document is one stored IDS document: the editable model plus bookkeeping.
type Document struct {
	ID        string
	Root      *model.IDSRoot
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Title returns the header title for listings.
func (d *Document) Title() string {
	if d.Root == nil {
		return ""
	}
	return d.Root.Header.Title
}

// Store is the document persistence contract.
//
// Error contract:
//   - Get/Replace/Delete return sentinel.ErrNotFound (wrapped) for unknown ids
//   - Create returns sentinel.ErrConflict (wrapped) for duplicate ids
//   - infrastructure failures come back wrapped with context
type Store interface {
	Create(ctx context.Context, doc *Document) error
	Get(ctx context.Context, id string) (*Document, error)
	List(ctx context.Context) ([]*Document, error)
	// Replace swaps in a new root snapshot and bumps UpdatedAt.
	Replace(ctx context.Context, id string, root *model.IDSRoot, now time.Time) (*Document, error)
	Delete(ctx context.Context, id string) error
}
