package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/sangkips/produce-store-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// BoletaService handles boleta-related operations. It is the only place
// that commits drafts into the boleta store.
type BoletaService struct {
	boletaRepo  repository.BoletaRepository
	productRepo repository.ProductRepository
	log         *zap.Logger

	created metric.Int64Counter
	totals  metric.Float64Histogram
}

// NewBoletaService creates a new boleta service. A nil meter falls back to
// the global meter provider.
func NewBoletaService(
	boletaRepo repository.BoletaRepository,
	productRepo repository.ProductRepository,
	log *zap.Logger,
	meter metric.Meter,
) (*BoletaService, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	created, err := meter.Int64Counter("boletas_created_total",
		metric.WithDescription("Number of boletas committed to the store"))
	if err != nil {
		return nil, fmt.Errorf("boleta counter: %w", err)
	}
	totals, err := meter.Float64Histogram("boleta_total",
		metric.WithDescription("Total amount of committed boletas"))
	if err != nil {
		return nil, fmt.Errorf("boleta histogram: %w", err)
	}

	return &BoletaService{
		boletaRepo:  boletaRepo,
		productRepo: productRepo,
		log:         log.Named("boletas"),
		created:     created,
		totals:      totals,
	}, nil
}

// BoletaHeader carries every boleta field except id, lines and total
type BoletaHeader struct {
	Client             string
	IdentityName       string
	TaxID              string
	IssueDate          time.Time
	TransferDate       time.Time
	TransportBrand     string
	TransportPlate     string
	RegistrationNumber string
	DriverLicense      string
}

func (h *BoletaHeader) validate() fieldErrors {
	var errs fieldErrors
	errs.required("client", h.Client)
	errs.required("identity_name", h.IdentityName)
	errs.required("tax_id", h.TaxID)
	if h.IssueDate.IsZero() {
		errs.add("issue_date", "issue_date is required")
	}
	if h.TransferDate.IsZero() {
		errs.add("transfer_date", "transfer_date is required")
	}
	errs.required("transport_brand", h.TransportBrand)
	errs.required("transport_plate", h.TransportPlate)
	errs.required("registration_number", h.RegistrationNumber)
	errs.required("driver_license", h.DriverLicense)
	return errs
}

func (h *BoletaHeader) apply(b *entity.Boleta) {
	b.Client = strings.TrimSpace(h.Client)
	b.IdentityName = strings.TrimSpace(h.IdentityName)
	b.TaxID = strings.TrimSpace(h.TaxID)
	b.IssueDate = h.IssueDate
	b.TransferDate = h.TransferDate
	b.TransportBrand = strings.TrimSpace(h.TransportBrand)
	b.TransportPlate = strings.TrimSpace(h.TransportPlate)
	b.RegistrationNumber = strings.TrimSpace(h.RegistrationNumber)
	b.DriverLicense = strings.TrimSpace(h.DriverLicense)
}

// LineInput references a catalog product by id
type LineInput struct {
	ProductID string
	Quantity  int
	Unit      enum.Unit
}

// BoletaInput is a whole boleta as submitted by a form
type BoletaInput struct {
	Header BoletaHeader
	Lines  []LineInput
}

// CreateBoleta snapshots the referenced products and adds the boleta.
// Repeated product ids are merged into one line.
func (s *BoletaService) CreateBoleta(ctx context.Context, input *BoletaInput) (*entity.Boleta, error) {
	ctx, span := tracer.Start(ctx, "BoletaService.CreateBoleta")
	defer span.End()

	draft := entity.NewBoletaDraft()
	if err := s.fillDraft(draft, entity.Boleta{}, input); err != nil {
		return nil, err
	}
	return s.CommitDraft(ctx, draft, &input.Header)
}

// UpdateBoleta replaces the boleta with the given id. Lines for products
// already on the boleta keep their original snapshot; new products are
// snapshotted from the current catalog.
func (s *BoletaService) UpdateBoleta(ctx context.Context, id string, input *BoletaInput) (*entity.Boleta, error) {
	ctx, span := tracer.Start(ctx, "BoletaService.UpdateBoleta", trace.WithAttributes(attribute.String("boleta.id", id)))
	defer span.End()

	existing, ok := s.boletaRepo.GetByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Boleta")
	}

	draft := entity.NewBoletaDraft()
	draft.BoletaID = id
	if err := s.fillDraft(draft, existing, input); err != nil {
		return nil, err
	}
	return s.CommitDraft(ctx, draft, &input.Header)
}

func (s *BoletaService) fillDraft(draft *entity.BoletaDraft, existing entity.Boleta, input *BoletaInput) error {
	errs := input.Header.validate()
	if len(input.Lines) == 0 {
		errs.add("lines", "at least one line is required")
	}

	for i, in := range input.Lines {
		field := fmt.Sprintf("lines[%d]", i)
		line, ok := existing.Line(in.ProductID)
		if ok {
			line.Quantity = in.Quantity
			line.Unit = in.Unit
		} else {
			product, found := s.productRepo.GetByID(in.ProductID)
			if !found {
				errs.add(field+".product_id", fmt.Sprintf("product %q not found", in.ProductID))
				continue
			}
			line = product.Snapshot(in.Quantity, in.Unit)
		}
		if err := draft.AddLine(line); err != nil {
			errs.add(field, err.Error())
		}
	}
	return errs.err()
}

// CommitDraft turns a draft into a stored boleta: Add for a new draft,
// Update for a draft opened from an existing boleta.
func (s *BoletaService) CommitDraft(ctx context.Context, draft *entity.BoletaDraft, header *BoletaHeader) (*entity.Boleta, error) {
	ctx, span := tracer.Start(ctx, "BoletaService.CommitDraft")
	defer span.End()

	errs := header.validate()
	if draft.IsEmpty() {
		errs.add("lines", "at least one line is required")
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	var b entity.Boleta
	header.apply(&b)
	b.Lines = draft.Lines()

	if draft.BoletaID == "" {
		stored := s.boletaRepo.Add(b)
		s.created.Add(ctx, 1)
		s.totals.Record(ctx, stored.Total.InexactFloat64())
		span.SetAttributes(attribute.String("boleta.id", stored.ID))
		s.log.Info("boleta created",
			zap.String("boleta_id", stored.ID),
			zap.Int("lines", len(stored.Lines)),
			zap.String("total", stored.Total.StringFixed(2)),
		)
		return &stored, nil
	}

	b.ID = draft.BoletaID
	span.SetAttributes(attribute.String("boleta.id", b.ID))
	s.boletaRepo.Update(b)

	// the store ignores unknown ids, so absence only shows up on read-back
	stored, ok := s.boletaRepo.GetByID(b.ID)
	if !ok {
		return nil, apperror.NewNotFoundError("Boleta")
	}
	s.log.Info("boleta updated",
		zap.String("boleta_id", stored.ID),
		zap.String("total", stored.Total.StringFixed(2)),
	)
	return &stored, nil
}

// GetBoleta retrieves a boleta by id
func (s *BoletaService) GetBoleta(ctx context.Context, id string) (*entity.Boleta, error) {
	_, span := tracer.Start(ctx, "BoletaService.GetBoleta", trace.WithAttributes(attribute.String("boleta.id", id)))
	defer span.End()

	b, ok := s.boletaRepo.GetByID(id)
	if !ok {
		return nil, apperror.NewNotFoundError("Boleta")
	}
	return &b, nil
}

// ListBoletas lists boletas in insertion order with filtering
func (s *BoletaService) ListBoletas(ctx context.Context, params *repository.BoletaFilterParams) (*pagination.PaginatedResult[entity.Boleta], error) {
	_, span := tracer.Start(ctx, "BoletaService.ListBoletas")
	defer span.End()

	items, pag := pagination.Paginate(s.filter(params), paginationOf(params))
	return pagination.NewPaginatedResult(items, pag), nil
}

// DeleteBoleta removes the boleta. Deleting twice is the same as once.
func (s *BoletaService) DeleteBoleta(ctx context.Context, id string) error {
	_, span := tracer.Start(ctx, "BoletaService.DeleteBoleta", trace.WithAttributes(attribute.String("boleta.id", id)))
	defer span.End()

	s.boletaRepo.Delete(id)
	s.log.Info("boleta deleted", zap.String("boleta_id", id))
	return nil
}

// CalculateTotal previews the total the store would assign to lines
func (s *BoletaService) CalculateTotal(lines []entity.OrderLine) decimal.Decimal {
	return s.boletaRepo.CalculateTotal(lines)
}

func (s *BoletaService) filter(params *repository.BoletaFilterParams) []entity.Boleta {
	matched := make([]entity.Boleta, 0)
	for _, b := range s.boletaRepo.List() {
		if params.Match(b) {
			matched = append(matched, b)
		}
	}
	return matched
}

func paginationOf(params *repository.BoletaFilterParams) *pagination.PaginationParams {
	if params == nil {
		return nil
	}
	return params.Pagination
}
