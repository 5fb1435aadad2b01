package service

import (
	"context"
	"testing"
	"time"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPaymentRepo struct {
	items map[uuid.UUID]*model.Payment
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{items: make(map[uuid.UUID]*model.Payment)}
}

func (s *stubPaymentRepo) Create(_ context.Context, p *model.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubPaymentRepo) List(_ context.Context, status string) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range s.items {
		if status == "" || p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPaymentRepo) ListByOrder(_ context.Context, orderID uuid.UUID) ([]model.Payment, error) {
	var out []model.Payment
	for _, p := range s.items {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubPaymentRepo) Update(_ context.Context, p *model.Payment) error {
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubPaymentRepo) SumByStatus(_ context.Context) (map[string]decimal.Decimal, int64, error) {
	sums := make(map[string]decimal.Decimal)
	var count int64
	for _, p := range s.items {
		sums[p.Status] = sums[p.Status].Add(p.Amount)
		count++
	}
	return sums, count, nil
}

func newPaymentFixture(t *testing.T, orderTotal string) (PaymentService, uuid.UUID) {
	t.Helper()
	txns := newStubTxnRepo()
	order := &model.StockTransaction{
		Kind:             model.KindOrder,
		TxnDate:          time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CounterpartyName: "Corner Shop",
		StaffName:        "Dara Kim",
		Total:            decimal.RequireFromString(orderTotal),
	}
	require.NoError(t, txns.CreateTx(nil, order))
	return NewPaymentService(newStubPaymentRepo(), txns), order.ID
}

func payReq(orderID uuid.UUID, amount, status string) dto.CreatePaymentRequest {
	return dto.CreatePaymentRequest{
		OrderID: orderID.String(),
		PayDate: "2026-01-16",
		Amount:  decimal.RequireFromString(amount),
		Method:  "cash",
		Status:  status,
	}
}

func TestPaymentCreateRequiresExistingOrder(t *testing.T) {
	svc, _ := newPaymentFixture(t, "100.00")
	_, err := svc.Create(context.Background(), payReq(uuid.New(), "10.00", "completed"))
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	svc, orderID := newPaymentFixture(t, "100.00")
	_, err := svc.Create(context.Background(), payReq(orderID, "0.00", "completed"))
	require.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestOrderStatusClassification(t *testing.T) {
	svc, orderID := newPaymentFixture(t, "100.00")
	ctx := context.Background()

	status, err := svc.OrderStatus(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "unpaid", status.Status)
	require.Equal(t, "100.00", status.Balance.StringFixed(2))

	_, err = svc.Create(ctx, payReq(orderID, "40.00", "completed"))
	require.NoError(t, err)
	status, err = svc.OrderStatus(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "partial", status.Status)
	require.Equal(t, "60.00", status.Balance.StringFixed(2))

	_, err = svc.Create(ctx, payReq(orderID, "60.00", "completed"))
	require.NoError(t, err)
	status, err = svc.OrderStatus(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "paid", status.Status)
	require.Equal(t, "0.00", status.Balance.StringFixed(2))
}

func TestOrderStatusIgnoresPendingAndCancelled(t *testing.T) {
	svc, orderID := newPaymentFixture(t, "100.00")
	ctx := context.Background()

	_, err := svc.Create(ctx, payReq(orderID, "40.00", "pending"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, payReq(orderID, "40.00", "cancelled"))
	require.NoError(t, err)

	status, err := svc.OrderStatus(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, "unpaid", status.Status)
	require.Equal(t, "0.00", status.Paid.StringFixed(2))
}

func TestPaymentSummaryGroupsByStatus(t *testing.T) {
	svc, orderID := newPaymentFixture(t, "500.00")
	ctx := context.Background()

	_, err := svc.Create(ctx, payReq(orderID, "10.00", "pending"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, payReq(orderID, "20.00", "completed"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, payReq(orderID, "30.00", "completed"))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	require.Equal(t, "10.00", summary.TotalPending.StringFixed(2))
	require.Equal(t, "50.00", summary.TotalCompleted.StringFixed(2))
	require.Equal(t, int64(3), summary.Count)
}
