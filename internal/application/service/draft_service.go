package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var errLineNotFound = errors.New("draft line not found")

// DraftService lets a client assemble a boleta line by line before
// committing it through the BoletaService.
type DraftService struct {
	draftRepo   repository.DraftRepository
	productRepo repository.ProductRepository
	boletaRepo  repository.BoletaRepository
	boletas     *BoletaService
	log         *zap.Logger
}

// NewDraftService creates a new draft service
func NewDraftService(
	draftRepo repository.DraftRepository,
	productRepo repository.ProductRepository,
	boletaRepo repository.BoletaRepository,
	boletas *BoletaService,
	log *zap.Logger,
) *DraftService {
	return &DraftService{
		draftRepo:   draftRepo,
		productRepo: productRepo,
		boletaRepo:  boletaRepo,
		boletas:     boletas,
		log:         log.Named("drafts"),
	}
}

// StartDraft opens an empty draft, or a draft holding the lines of the
// boleta boletaID when it is set.
func (s *DraftService) StartDraft(ctx context.Context, boletaID string) (*entity.BoletaDraft, error) {
	_, span := tracer.Start(ctx, "DraftService.StartDraft")
	defer span.End()

	draft := entity.NewBoletaDraft()
	if boletaID != "" {
		b, ok := s.boletaRepo.GetByID(boletaID)
		if !ok {
			return nil, apperror.NewNotFoundError("Boleta")
		}
		draft = entity.DraftFromBoleta(b)
	}

	s.draftRepo.Create(draft)
	span.SetAttributes(attribute.String("draft.id", draft.ID.String()))
	s.log.Debug("draft started", zap.Stringer("draft_id", draft.ID), zap.String("boleta_id", boletaID))
	return draft, nil
}

// GetDraft retrieves a draft by id
func (s *DraftService) GetDraft(ctx context.Context, id uuid.UUID) (*entity.BoletaDraft, error) {
	_, span := tracer.Start(ctx, "DraftService.GetDraft", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	d, ok := s.draftRepo.GetByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Draft")
	}
	return d, nil
}

// AddLine snapshots the product into the draft, merging with an existing
// line for the same product
func (s *DraftService) AddLine(ctx context.Context, id uuid.UUID, input *LineInput) (*entity.BoletaDraft, error) {
	_, span := tracer.Start(ctx, "DraftService.AddLine", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	product, ok := s.productRepo.GetByID(input.ProductID)
	if !ok {
		return nil, apperror.NewNotFoundError("Product")
	}

	found, err := s.draftRepo.Modify(id, func(d *entity.BoletaDraft) error {
		return d.AddProduct(product, input.Quantity, input.Unit)
	})
	if !found {
		return nil, apperror.NewNotFoundError("Draft")
	}
	switch {
	case errors.Is(err, entity.ErrInvalidQuantity):
		return nil, apperror.NewFieldError("quantity", err.Error())
	case errors.Is(err, entity.ErrInvalidUnit):
		return nil, apperror.NewFieldError("unit", err.Error())
	case err != nil:
		return nil, err
	}
	return s.GetDraft(ctx, id)
}

// RemoveLine drops the line for productID from the draft
func (s *DraftService) RemoveLine(ctx context.Context, id uuid.UUID, productID string) (*entity.BoletaDraft, error) {
	_, span := tracer.Start(ctx, "DraftService.RemoveLine", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	found, err := s.draftRepo.Modify(id, func(d *entity.BoletaDraft) error {
		if !d.RemoveLine(productID) {
			return errLineNotFound
		}
		return nil
	})
	if !found {
		return nil, apperror.NewNotFoundError("Draft")
	}
	if errors.Is(err, errLineNotFound) {
		return nil, apperror.NewNotFoundError("Draft line")
	}
	if err != nil {
		return nil, err
	}
	return s.GetDraft(ctx, id)
}

// Commit stores the draft as a boleta and discards it. A draft that fails
// validation is kept so the client can fix it and retry.
func (s *DraftService) Commit(ctx context.Context, id uuid.UUID, header *BoletaHeader) (b *entity.Boleta, updated bool, err error) {
	ctx, span := tracer.Start(ctx, "DraftService.Commit", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	draft, ok := s.draftRepo.Take(id)
	if !ok {
		return nil, false, apperror.NewNotFoundError("Draft")
	}

	b, err = s.boletas.CommitDraft(ctx, draft, header)
	if err != nil {
		s.draftRepo.Create(draft)
		return nil, false, err
	}
	updated = draft.BoletaID != ""
	s.log.Debug("draft committed", zap.Stringer("draft_id", id), zap.String("boleta_id", b.ID), zap.Bool("updated", updated))
	return b, updated, nil
}

// Discard drops the draft. Unknown ids are not an error.
func (s *DraftService) Discard(ctx context.Context, id uuid.UUID) {
	_, span := tracer.Start(ctx, "DraftService.Discard", trace.WithAttributes(attribute.String("draft.id", id.String())))
	defer span.End()

	s.draftRepo.Delete(id)
}

// OpenDrafts counts drafts that have not been committed or discarded
func (s *DraftService) OpenDrafts() int {
	return s.draftRepo.Count()
}

// RunJanitor drops drafts idle for longer than ttl every interval until
// ctx is cancelled
func (s *DraftService) RunJanitor(ctx context.Context, interval, ttl time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.draftRepo.DeleteStale(now.Add(-ttl)); n > 0 {
				s.log.Info("stale drafts removed", zap.Int("count", n))
			}
		}
	}
}
