package service

import (
	"context"
	"testing"

	"github.com/sangkips/produce-store-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.boletaSvc.CreateBoleta(ctx, boletaInput(
		LineInput{ProductID: "2", Quantity: 4, Unit: enum.UnitUnidad},
		LineInput{ProductID: "5", Quantity: 1, Unit: enum.UnitKg},
	))
	require.NoError(t, err)
	_, err = env.draftSvc.StartDraft(ctx, "")
	require.NoError(t, err)

	stats, err := NewDashboardService(env.products, env.boletas, env.drafts).GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalProducts)
	assert.Equal(t, map[string]int{"fruta": 3, "verdura": 2, "otros": 0}, stats.ProductsByCategory)
	assert.Equal(t, 2, stats.TotalBoletas)
	// 5.97 + (0.99*4 + 1.20)
	assert.InDelta(t, 11.13, stats.TotalRevenue, 1e-9)
	assert.Equal(t, 1, stats.OpenDrafts)

	require.NotEmpty(t, stats.TopProducts)
	assert.Equal(t, "2", stats.TopProducts[0].ProductID)
	assert.Equal(t, 7, stats.TopProducts[0].Quantity)
	assert.InDelta(t, 6.93, stats.TopProducts[0].Amount, 1e-9)

	require.Len(t, stats.CategorySalesData, 3)
	assert.Equal(t, "fruta", stats.CategorySalesData[0].Category)
	assert.InDelta(t, 4.20, stats.CategorySalesData[0].Amount, 1e-9)
}
