package service

import (
	"context"
	"fmt"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/internal/domain/repository"
	"github.com/sangkips/produce-store-api/pkg/apperror"
	"github.com/sangkips/produce-store-api/pkg/printer"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer    printer.Printer
	boletaRepo repository.BoletaRepository
	header     entity.ReceiptHeader
	charWidth  int
	log        *zap.Logger
}

// NewPrinterService creates a new printer service. header is printed at the
// top of every receipt.
func NewPrinterService(
	p printer.Printer,
	boletaRepo repository.BoletaRepository,
	header entity.ReceiptHeader,
	charWidth int,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		printer:    p,
		boletaRepo: boletaRepo,
		header:     header,
		charWidth:  charWidth,
		log:        log.Named("printer"),
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	t := s.printer.Type()
	return &PrinterStatus{
		Configured: t != printer.TypeNone,
		Connected:  s.printer.IsConnected(),
		Type:       t,
	}
}

// PrintBoletaReceipt prints copies of the stored boleta (at least one).
// When the boleta exists but printing fails, the receipt is returned along
// with the error.
func (s *PrinterService) PrintBoletaReceipt(ctx context.Context, boletaID string, copies int) (*entity.Receipt, error) {
	_, span := tracer.Start(ctx, "PrinterService.PrintBoletaReceipt",
		trace.WithAttributes(attribute.String("boleta.id", boletaID)))
	defer span.End()

	b, ok := s.boletaRepo.GetByID(boletaID)
	if !ok {
		return nil, apperror.NewNotFoundError("Boleta")
	}

	if copies < 1 {
		copies = 1
	}

	receipt := entity.NewReceipt(s.header, b)
	data := s.FormatReceipt(receipt)
	for i := 0; i < copies; i++ {
		if err := s.printer.Print(data); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "print failed")
			s.log.Warn("printer error", zap.String("boleta_id", boletaID), zap.Error(err))
			return receipt, fmt.Errorf("failed to print receipt: %w", err)
		}
	}

	s.log.Info("receipt printed", zap.String("boleta_id", boletaID), zap.Int("copies", copies))
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(s.charWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("RUC: %s", r.Header.TaxID)
	}

	doc.SetBold(true).
		TextF("BOLETA %s", r.BoletaID).
		SetBold(false).
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Emisión:", r.IssueDate).
		KeyValue("Traslado:", r.TransferDate).
		KeyValue("Cliente:", r.Client).
		KeyValue("Nombre:", r.IdentityName).
		KeyValue("RUC:", r.ClientTaxID).
		Separator('-')

	doc.KeyValue("Transporte:", r.Transport.Brand).
		KeyValue("Placa:", r.Transport.Plate).
		KeyValue("Const. insc.:", r.Transport.RegistrationNumber).
		KeyValue("Licencia:", r.Transport.DriverLicense).
		Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity, item.Unit, item.Name, fmt.Sprintf("%.2f", item.Total))
		if item.Quantity > 1 {
			doc.TextF("  @ %.2f c/u", item.UnitPrice)
		}
	}

	doc.Separator('-').
		SetBold(true).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false).
		Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("¡Gracias por su compra!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
