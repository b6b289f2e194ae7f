package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/sangkips/produce-store-api/internal/domain/entity"
	"github.com/sangkips/produce-store-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }
func (p *recordingPrinter) Type() string      { return printer.TypeNetwork }

func newPrinterService(t *testing.T, p printer.Printer) *PrinterService {
	env := newTestEnv(t)
	return NewPrinterService(p, env.boletas, entity.ReceiptHeader{
		StoreName: "Verdulería",
		TaxID:     "20999999999",
	}, 32, zap.NewNop())
}

func TestPrintBoletaReceipt(t *testing.T) {
	rec := &recordingPrinter{}
	svc := newPrinterService(t, rec)

	receipt, err := svc.PrintBoletaReceipt(context.Background(), "B001", 0)
	require.NoError(t, err)
	assert.Equal(t, "B001", receipt.BoletaID)
	assert.Equal(t, 5.97, receipt.Total)

	require.Len(t, rec.jobs, 1)
	job := rec.jobs[0]
	assert.True(t, bytes.HasPrefix(job, []byte{printer.ESC, '@'}))
	assert.Contains(t, string(job), "BOLETA B001")
	assert.Contains(t, string(job), "2 kg Manzana")
	assert.Contains(t, string(job), "5.97")
	assert.Contains(t, string(job), "RUC: 20999999999")
}

func TestPrintBoletaReceiptCopies(t *testing.T) {
	rec := &recordingPrinter{}
	svc := newPrinterService(t, rec)

	_, err := svc.PrintBoletaReceipt(context.Background(), "B001", 3)
	require.NoError(t, err)
	assert.Len(t, rec.jobs, 3)
}

func TestPrintBoletaReceiptPrinterFailure(t *testing.T) {
	svc := newPrinterService(t, &recordingPrinter{err: errors.New("paper out")})

	receipt, err := svc.PrintBoletaReceipt(context.Background(), "B001", 0)
	require.Error(t, err)
	require.NotNil(t, receipt)
	assert.Contains(t, err.Error(), "paper out")
}

func TestPrintBoletaReceiptNotFound(t *testing.T) {
	svc := newPrinterService(t, &recordingPrinter{})
	receipt, err := svc.PrintBoletaReceipt(context.Background(), "B404", 1)
	assert.Nil(t, receipt)
	requireAppError(t, err, http.StatusNotFound)
}

func TestPrinterStatus(t *testing.T) {
	status := newPrinterService(t, printer.NewNullPrinter()).GetStatus()
	assert.False(t, status.Configured)
	assert.False(t, status.Connected)
	assert.Equal(t, printer.TypeNone, status.Type)

	status = newPrinterService(t, &recordingPrinter{}).GetStatus()
	assert.True(t, status.Configured)
	assert.True(t, status.Connected)
}
