package service

import (
	"context"
	"time"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentService interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error)
	List(ctx context.Context, status string) ([]dto.PaymentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*dto.PaymentSummaryResponse, error)
	// OrderStatus compares an order total against its completed payments.
	OrderStatus(ctx context.Context, orderID uuid.UUID) (*dto.OrderPaymentStatusResponse, error)
}

type paymentService struct {
	payments repository.PaymentRepository
	orders   repository.TransactionRepository
}

func NewPaymentService(payments repository.PaymentRepository, orders repository.TransactionRepository) PaymentService {
	return &paymentService{payments: payments, orders: orders}
}

func (s *paymentService) Create(ctx context.Context, req dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, apierror.Validation("invalid order_id %q", req.OrderID)
	}
	if _, err := s.orders.FindByID(ctx, model.KindOrder, orderID); err != nil {
		return nil, apierror.NotFound("order %s not found", req.OrderID)
	}
	payDate, err := time.Parse("2006-01-02", req.PayDate)
	if err != nil {
		return nil, apierror.Validation("invalid pay_date %q", req.PayDate)
	}
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("amount must be positive")
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}
	p := model.Payment{
		OrderID: orderID,
		PayDate: payDate,
		Amount:  req.Amount,
		Method:  req.Method,
		Note:    req.Note,
		Status:  status,
	}
	if err := s.payments.Create(ctx, &p); err != nil {
		return nil, apierror.From(err)
	}
	return paymentToResponse(&p), nil
}

func (s *paymentService) Get(ctx context.Context, id uuid.UUID) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("payment %s not found", id)
	}
	return paymentToResponse(p), nil
}

func (s *paymentService) List(ctx context.Context, status string) ([]dto.PaymentResponse, error) {
	payments, err := s.payments.List(ctx, status)
	if err != nil {
		return nil, apierror.From(err)
	}
	out := make([]dto.PaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToResponse(&payments[i]))
	}
	return out, nil
}

func (s *paymentService) Update(ctx context.Context, id uuid.UUID, req dto.UpdatePaymentRequest) (*dto.PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("payment %s not found", id)
	}

	if req.PayDate != nil {
		payDate, err := time.Parse("2006-01-02", *req.PayDate)
		if err != nil {
			return nil, apierror.Validation("invalid pay_date %q", *req.PayDate)
		}
		p.PayDate = payDate
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, apierror.Validation("amount must be positive")
		}
		p.Amount = *req.Amount
	}
	if req.Method != nil {
		p.Method = *req.Method
	}
	if req.Note != nil {
		p.Note = req.Note
	}
	if req.Status != nil {
		p.Status = *req.Status
	}

	if err := s.payments.Update(ctx, p); err != nil {
		return nil, apierror.From(err)
	}
	return paymentToResponse(p), nil
}

func (s *paymentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.payments.FindByID(ctx, id); err != nil {
		return apierror.NotFound("payment %s not found", id)
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return apierror.From(err)
	}
	return nil
}

func (s *paymentService) Summary(ctx context.Context) (*dto.PaymentSummaryResponse, error) {
	sums, count, err := s.payments.SumByStatus(ctx)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &dto.PaymentSummaryResponse{
		TotalPending:   sums["pending"],
		TotalCompleted: sums["completed"],
		TotalCancelled: sums["cancelled"],
		Count:          count,
	}, nil
}

func (s *paymentService) OrderStatus(ctx context.Context, orderID uuid.UUID) (*dto.OrderPaymentStatusResponse, error) {
	order, err := s.orders.FindByID(ctx, model.KindOrder, orderID)
	if err != nil {
		return nil, apierror.NotFound("order %s not found", orderID)
	}
	payments, err := s.payments.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, apierror.From(err)
	}

	paid := decimal.Zero
	for _, p := range payments {
		if p.Status == "completed" {
			paid = paid.Add(p.Amount)
		}
	}
	balance := order.Total.Sub(paid)

	status := "unpaid"
	switch {
	case paid.GreaterThanOrEqual(order.Total) && order.Total.IsPositive():
		status = "paid"
	case paid.IsPositive():
		status = "partial"
	}

	return &dto.OrderPaymentStatusResponse{
		OrderID:    orderID.String(),
		OrderTotal: order.Total,
		Paid:       paid,
		Balance:    balance,
		Status:     status,
	}, nil
}

func paymentToResponse(p *model.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:      p.ID.String(),
		OrderID: p.OrderID.String(),
		PayDate: p.PayDate.Format("2006-01-02"),
		Amount:  p.Amount,
		Method:  p.Method,
		Note:    p.Note,
		Status:  p.Status,
	}
}
