package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	domainRepo "github.com/sangkips/produce-store-api/internal/domain/repository"
)

type draftRepository struct {
	mu     sync.Mutex
	drafts map[uuid.UUID]*entity.BoletaDraft
}

// NewDraftRepository creates an empty in-memory draft registry
func NewDraftRepository() domainRepo.DraftRepository {
	return &draftRepository{drafts: make(map[uuid.UUID]*entity.BoletaDraft)}
}

func (r *draftRepository) Create(draft *entity.BoletaDraft) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.drafts[draft.ID] = draft.Clone()
}

func (r *draftRepository) GetByID(id uuid.UUID) (*entity.BoletaDraft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, false
	}
	return d.Clone(), true
}

func (r *draftRepository) Modify(id uuid.UUID, fn func(*entity.BoletaDraft) error) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return false, nil
	}
	work := d.Clone()
	if err := fn(work); err != nil {
		return true, err
	}
	r.drafts[id] = work
	return true, nil
}

func (r *draftRepository) Take(id uuid.UUID) (*entity.BoletaDraft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, false
	}
	delete(r.drafts, id)
	return d, true
}

func (r *draftRepository) DeleteStale(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, d := range r.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(r.drafts, id)
			n++
		}
	}
	return n
}

func (r *draftRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.drafts, id)
}

func (r *draftRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.drafts)
}
