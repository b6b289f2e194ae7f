package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
)

// DraftRepository holds boleta drafts that have not been committed yet
type DraftRepository interface {
	Create(draft *entity.BoletaDraft)
	// GetByID returns a copy of the stored draft
	GetByID(id uuid.UUID) (*entity.BoletaDraft, bool)
	// Modify runs fn on the stored draft under the repository lock.
	// The change is kept only when fn returns nil.
	Modify(id uuid.UUID, fn func(*entity.BoletaDraft) error) (bool, error)
	// Take removes the draft and hands it to the caller
	Take(id uuid.UUID) (*entity.BoletaDraft, bool)
	Delete(id uuid.UUID)
	// DeleteStale drops drafts not touched since cutoff and returns how many
	DeleteStale(cutoff time.Time) int
	Count() int
}
