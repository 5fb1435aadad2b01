package service

import (
	"context"
	"testing"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newProductFixture(t *testing.T) (ProductService, *stubProductRepo, *model.Category) {
	t.Helper()
	products := newStubProductRepo()
	categories := newStubCategoryRepo()
	brands := newStubBrandRepo()

	cat := &model.Category{Name: "Drinks", Active: true}
	require.NoError(t, categories.Create(context.Background(), cat))

	return NewProductService(products, categories, brands, nil), products, cat
}

func TestProductCreateDuplicateCodeConflicts(t *testing.T) {
	svc, _, cat := newProductFixture(t)
	ctx := context.Background()

	req := dto.CreateProductRequest{
		Code:       "SKU-001",
		Name:       "Cola",
		CategoryID: cat.ID.String(),
		SalePrice:  decimal.RequireFromString("1.50"),
		Status:     "active",
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	req.Name = "Other Cola"
	_, err = svc.Create(ctx, req)
	require.True(t, apierror.IsKind(err, apierror.KindConflict))
}

func TestProductCreateUnknownCategoryIsNotFound(t *testing.T) {
	svc, _, _ := newProductFixture(t)

	req := dto.CreateProductRequest{
		Code:       "SKU-001",
		Name:       "Cola",
		CategoryID: uuid.NewString(),
		Status:     "active",
	}
	_, err := svc.Create(context.Background(), req)
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestProductCreateDefaultsMinQty(t *testing.T) {
	svc, _, cat := newProductFixture(t)

	created, err := svc.Create(context.Background(), dto.CreateProductRequest{
		Code:       "SKU-001",
		Name:       "Cola",
		CategoryID: cat.ID.String(),
		Status:     "active",
	})
	require.NoError(t, err)
	require.Equal(t, 5, created.MinQty)
	require.Equal(t, 0, created.Qty)
}

func TestProductUpdateNeverTouchesQty(t *testing.T) {
	svc, products, cat := newProductFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateProductRequest{
		Code:       "SKU-001",
		Name:       "Cola",
		CategoryID: cat.ID.String(),
		Status:     "active",
	})
	require.NoError(t, err)

	// Stock moved by the ledger, outside this service.
	id := uuid.MustParse(created.ID)
	require.NoError(t, products.AdjustStockTx(nil, id, 7))

	name := "Cola Zero"
	updated, err := svc.Update(ctx, id, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Cola Zero", updated.Name)
	require.Equal(t, 7, updated.Qty)
}

func TestPriceCheckByCode(t *testing.T) {
	svc, _, cat := newProductFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, dto.CreateProductRequest{
		Code:       "SKU-001",
		Name:       "Cola",
		CategoryID: cat.ID.String(),
		SalePrice:  decimal.RequireFromString("1.50"),
		Status:     "active",
	})
	require.NoError(t, err)

	resp, err := svc.PriceCheck(ctx, "SKU-001")
	require.NoError(t, err)
	require.Equal(t, "Cola", resp.Name)
	require.Equal(t, "1.50", resp.SalePrice.StringFixed(2))

	_, err = svc.PriceCheck(ctx, "NOPE")
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}
