package repository

import (
	"sync"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	domainRepo "github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/utils"
)

type productRepository struct {
	mu       sync.RWMutex
	products []entity.Product
	seq      int
}

// NewProductRepository creates an in-memory product store holding seed.
// Generated ids continue after len(seed) and are never reissued.
func NewProductRepository(seed ...entity.Product) domainRepo.ProductRepository {
	products := make([]entity.Product, len(seed))
	copy(products, seed)
	return &productRepository{
		products: products,
		seq:      len(seed),
	}
}

func (r *productRepository) List() []entity.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.Product, len(r.products))
	copy(out, r.products)
	return out
}

func (r *productRepository) Add(candidate entity.Product) entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()

	candidate.ID = r.nextID()
	r.products = append(r.products, candidate)
	return candidate
}

func (r *productRepository) Update(product entity.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(product.ID); i >= 0 {
		r.products[i] = product
	}
}

func (r *productRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.products = append(r.products[:i], r.products[i+1:]...)
	}
}

func (r *productRepository) GetByID(id string) (entity.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		return r.products[i], true
	}
	return entity.Product{}, false
}

// nextID must be called with the write lock held
func (r *productRepository) nextID() string {
	for {
		r.seq++
		id := utils.FormatProductID(r.seq)
		if r.indexOf(id) < 0 {
			return id
		}
	}
}

func (r *productRepository) indexOf(id string) int {
	for i := range r.products {
		if r.products[i].ID == id {
			return i
		}
	}
	return -1
}
