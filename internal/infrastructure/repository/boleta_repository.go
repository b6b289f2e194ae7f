package repository

import (
	"sync"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	domainRepo "github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/utils"
	"github.com/shopspring/decimal"
)

type boletaRepository struct {
	mu      sync.RWMutex
	boletas []entity.Boleta
	seq     int
}

// NewBoletaRepository creates an in-memory boleta store holding seed.
// Seed totals are recomputed from their lines.
func NewBoletaRepository(seed ...entity.Boleta) domainRepo.BoletaRepository {
	boletas := make([]entity.Boleta, 0, len(seed))
	for _, b := range seed {
		b = b.Clone()
		b.Total = entity.CalculateTotal(b.Lines)
		boletas = append(boletas, b)
	}
	return &boletaRepository{
		boletas: boletas,
		seq:     len(seed),
	}
}

func (r *boletaRepository) List() []entity.Boleta {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Boleta, len(r.boletas))
	for i := range r.boletas {
		out[i] = r.boletas[i].Clone()
	}
	return out
}

func (r *boletaRepository) Add(candidate entity.Boleta) entity.Boleta {
	b := candidate.Clone()
	b.Total = r.CalculateTotal(b.Lines)

	r.mu.Lock()
	defer r.mu.Unlock()

	b.ID = r.nextID()
	r.boletas = append(r.boletas, b)
	return b.Clone()
}

func (r *boletaRepository) Update(boleta entity.Boleta) {
	b := boleta.Clone()
	b.Total = r.CalculateTotal(b.Lines)

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(b.ID); i >= 0 {
		r.boletas[i] = b
	}
}

func (r *boletaRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.boletas = append(r.boletas[:i], r.boletas[i+1:]...)
	}
}

func (r *boletaRepository) GetByID(id string) (entity.Boleta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.boletas[i].Clone(), true
	}
	return entity.Boleta{}, false
}

func (r *boletaRepository) CalculateTotal(lines []entity.OrderLine) decimal.Decimal {
	return entity.CalculateTotal(lines)
}

// nextID must be called with the write lock held
func (r *boletaRepository) nextID() string {
	for {
		r.seq++
		id := utils.FormatBoletaID(r.seq)
		if r.indexOf(id) < 0 {
			return id
		}
	}
}

func (r *boletaRepository) indexOf(id string) int {
	for i := range r.boletas {
		if r.boletas[i].ID == id {
			return i
		}
	}
	return -1
}
