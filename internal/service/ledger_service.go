package service

import (
	"context"
	"errors"
	"time"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/repository"
	"stockroom/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerService is the transactional stock-adjustment core. Imports and
// orders share one implementation; the kind's direction (+1 / -1) is the only
// behavioral difference between them.
//
// Every mutation runs as one atomic unit of work: header, detail rows and
// product quantity deltas commit or roll back together. Updates that replace
// items reverse the prior deltas before applying the new ones.
type LedgerService interface {
	Create(ctx context.Context, kind model.TransactionKind, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error)
	Update(ctx context.Context, kind model.TransactionKind, id uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error)
	Delete(ctx context.Context, kind model.TransactionKind, id uuid.UUID) error
	Get(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (*dto.TransactionResponse, error)
	List(ctx context.Context, kind model.TransactionKind, filter dto.TransactionFilter) (*dto.TransactionListResponse, error)
}

type ledgerService struct {
	repo         repository.TransactionRepository
	productRepo  repository.ProductRepository
	staffRepo    repository.StaffRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	txm          repository.TxManager
	dispatcher   *worker.Dispatcher
}

func NewLedgerService(
	repo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	staffRepo repository.StaffRepository,
	supplierRepo repository.SupplierRepository,
	customerRepo repository.CustomerRepository,
	txm repository.TxManager,
	dispatcher *worker.Dispatcher,
) LedgerService {
	return &ledgerService{
		repo:         repo,
		productRepo:  productRepo,
		staffRepo:    staffRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		txm:          txm,
		dispatcher:   dispatcher,
	}
}

// resolvedItem is a request line item with the product resolved and the line
// amount recomputed. Name is the snapshot written to the detail row.
type resolvedItem struct {
	productID uuid.UUID
	name      string
	qty       int
	price     decimal.Decimal
	amount    decimal.Decimal
}

// resolveItems validates every line item against the catalog and returns the
// recomputed line amounts plus the 2-decimal transaction total. No mutation
// has happened yet when this fails.
func (s *ledgerService) resolveItems(ctx context.Context, items []dto.TransactionItemRequest) ([]resolvedItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, apierror.Validation("items must contain at least one entry")
	}

	resolved := make([]resolvedItem, 0, len(items))
	total := decimal.Zero
	for _, item := range items {
		if item.Qty < 1 {
			return nil, decimal.Zero, apierror.Validation("item qty must be a positive integer")
		}
		if item.Price.IsNegative() {
			return nil, decimal.Zero, apierror.Validation("item price must not be negative")
		}
		pid, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, decimal.Zero, apierror.Validation("invalid product_id %q", item.ProductID)
		}
		p, err := s.productRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, decimal.Zero, apierror.NotFound("product %s not found", item.ProductID)
		}

		amount := item.Price.Mul(decimal.NewFromInt(int64(item.Qty))).Round(2)
		total = total.Add(amount)
		resolved = append(resolved, resolvedItem{
			productID: pid,
			name:      p.Name,
			qty:       item.Qty,
			price:     item.Price,
			amount:    amount,
		})
	}
	return resolved, total.Round(2), nil
}

// resolveCounterparty fetches the supplier (import) or customer (order) and
// returns its display name for the header snapshot.
func (s *ledgerService) resolveCounterparty(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (string, *dto.PartnerResponse, error) {
	if kind == model.KindOrder {
		c, err := s.customerRepo.FindByID(ctx, id)
		if err != nil {
			return "", nil, apierror.NotFound("customer %s not found", id)
		}
		return c.Name, customerToResponse(c), nil
	}
	sup, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return "", nil, apierror.NotFound("supplier %s not found", id)
	}
	return sup.Name, supplierToResponse(sup), nil
}

func (s *ledgerService) Create(ctx context.Context, kind model.TransactionKind, req dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	txnDate, err := time.Parse("2006-01-02", req.TxnDate)
	if err != nil {
		return nil, apierror.Validation("invalid date %q", req.TxnDate)
	}
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, apierror.Validation("invalid staff_id %q", req.StaffID)
	}
	counterpartyID, err := uuid.Parse(req.CounterpartyID)
	if err != nil {
		return nil, apierror.Validation("invalid counterparty_id %q", req.CounterpartyID)
	}

	// Pre-flight: resolve references and compute totals before any mutation.
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		return nil, apierror.NotFound("staff %s not found", req.StaffID)
	}
	counterpartyName, _, err := s.resolveCounterparty(ctx, kind, counterpartyID)
	if err != nil {
		return nil, err
	}
	resolved, total, err := s.resolveItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	txn := model.StockTransaction{
		Kind:             kind,
		TxnDate:          txnDate,
		CounterpartyID:   counterpartyID,
		CounterpartyName: counterpartyName,
		StaffID:          staffID,
		StaffName:        staff.FullName,
		Total:            total,
	}

	direction := kind.Direction()
	txErr := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &txn); err != nil {
			return err
		}
		for _, r := range resolved {
			detail := model.TransactionDetail{
				TransactionID: txn.ID,
				ProductID:     r.productID,
				ProductName:   r.name,
				Qty:           r.qty,
				Price:         r.price,
				Amount:        r.amount,
			}
			if err := s.repo.CreateDetailTx(tx, &detail); err != nil {
				return err
			}
			if err := s.productRepo.AdjustStockTx(tx, r.productID, direction*r.qty); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	s.notifyLowStock(ctx, kind, resolved)

	return s.Get(ctx, kind, txn.ID)
}

func (s *ledgerService) Update(ctx context.Context, kind model.TransactionKind, id uuid.UUID, req dto.UpdateTransactionRequest) (*dto.TransactionResponse, error) {
	txn, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return nil, apierror.NotFound("%s %s not found", kind, id)
	}

	// Items present means full replacement; items omitted leaves stock
	// untouched. An explicit empty array is rejected, same as create.
	var resolved []resolvedItem
	replaceItems := req.Items != nil
	if replaceItems {
		var total decimal.Decimal
		resolved, total, err = s.resolveItems(ctx, *req.Items)
		if err != nil {
			return nil, err
		}
		txn.Total = total
	}

	if req.TxnDate != nil {
		txnDate, err := time.Parse("2006-01-02", *req.TxnDate)
		if err != nil {
			return nil, apierror.Validation("invalid date %q", *req.TxnDate)
		}
		txn.TxnDate = txnDate
	}
	if req.StaffID != nil {
		staffID, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, apierror.Validation("invalid staff_id %q", *req.StaffID)
		}
		staff, err := s.staffRepo.FindByID(ctx, staffID)
		if err != nil {
			return nil, apierror.NotFound("staff %s not found", *req.StaffID)
		}
		txn.StaffID = staffID
		txn.StaffName = staff.FullName
	}
	if req.CounterpartyID != nil {
		counterpartyID, err := uuid.Parse(*req.CounterpartyID)
		if err != nil {
			return nil, apierror.Validation("invalid counterparty_id %q", *req.CounterpartyID)
		}
		name, _, err := s.resolveCounterparty(ctx, kind, counterpartyID)
		if err != nil {
			return nil, err
		}
		txn.CounterpartyID = counterpartyID
		txn.CounterpartyName = name
	}

	direction := kind.Direction()
	oldDetails := txn.Details
	txErr := s.txm.Do(ctx, func(tx *gorm.DB) error {
		if replaceItems {
			// Reverse the prior forward effect of every existing detail,
			// then rebuild from the new items.
			for _, d := range oldDetails {
				if err := s.productRepo.AdjustStockTx(tx, d.ProductID, -direction*d.Qty); err != nil {
					return err
				}
			}
			if err := s.repo.DeleteDetailsTx(tx, txn.ID); err != nil {
				return err
			}
			for _, r := range resolved {
				detail := model.TransactionDetail{
					TransactionID: txn.ID,
					ProductID:     r.productID,
					ProductName:   r.name,
					Qty:           r.qty,
					Price:         r.price,
					Amount:        r.amount,
				}
				if err := s.repo.CreateDetailTx(tx, &detail); err != nil {
					return err
				}
				if err := s.productRepo.AdjustStockTx(tx, r.productID, direction*r.qty); err != nil {
					return err
				}
			}
		}
		return s.repo.UpdateHeaderTx(tx, txn)
	})
	if txErr != nil {
		return nil, apierror.From(txErr)
	}

	if replaceItems {
		s.notifyLowStock(ctx, kind, resolved)
	}

	return s.Get(ctx, kind, txn.ID)
}

func (s *ledgerService) Delete(ctx context.Context, kind model.TransactionKind, id uuid.UUID) error {
	txn, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		return apierror.NotFound("%s %s not found", kind, id)
	}

	direction := kind.Direction()
	txErr := s.txm.Do(ctx, func(tx *gorm.DB) error {
		for _, d := range txn.Details {
			if err := s.productRepo.AdjustStockTx(tx, d.ProductID, -direction*d.Qty); err != nil {
				return err
			}
		}
		if err := s.repo.DeleteDetailsTx(tx, txn.ID); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, txn.ID)
	})
	if txErr != nil {
		return apierror.From(txErr)
	}
	return nil
}

func (s *ledgerService) Get(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (*dto.TransactionResponse, error) {
	txn, err := s.repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("%s %s not found", kind, id)
		}
		return nil, apierror.From(err)
	}
	return s.toResponse(ctx, txn), nil
}

func (s *ledgerService) List(ctx context.Context, kind model.TransactionKind, filter dto.TransactionFilter) (*dto.TransactionListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	txns, total, err := s.repo.List(ctx, kind, filter)
	if err != nil {
		return nil, apierror.From(err)
	}
	data := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		data = append(data, *s.toResponse(ctx, &txns[i]))
	}
	return &dto.TransactionListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: s.repo.PageSize(),
	}, nil
}

// notifyLowStock enqueues an alert for every affected product at or below its
// threshold after an order committed. Best effort — ledger correctness never
// depends on the queue.
func (s *ledgerService) notifyLowStock(ctx context.Context, kind model.TransactionKind, items []resolvedItem) {
	if s.dispatcher == nil || kind != model.KindOrder {
		return
	}
	seen := make(map[uuid.UUID]bool, len(items))
	for _, r := range items {
		if seen[r.productID] {
			continue
		}
		seen[r.productID] = true
		p, err := s.productRepo.FindByID(ctx, r.productID)
		if err != nil || p.Qty > p.MinQty {
			continue
		}
		_ = s.dispatcher.EnqueueStockAlert(ctx, worker.StockAlertPayload{
			ProductID: p.ID.String(),
			Code:      p.Code,
			Name:      p.Name,
			Qty:       p.Qty,
			MinQty:    p.MinQty,
		})
	}
}

// toResponse maps a header to its response, resolving the live counterparty
// and staff records alongside the stored snapshots.
func (s *ledgerService) toResponse(ctx context.Context, t *model.StockTransaction) *dto.TransactionResponse {
	items := make([]dto.TransactionDetailResponse, 0, len(t.Details))
	for _, d := range t.Details {
		items = append(items, dto.TransactionDetailResponse{
			ProductID:   d.ProductID.String(),
			ProductName: d.ProductName,
			Qty:         d.Qty,
			Price:       d.Price,
			Amount:      d.Amount,
		})
	}

	resp := &dto.TransactionResponse{
		ID:               t.ID.String(),
		Kind:             string(t.Kind),
		TxnDate:          t.TxnDate.Format("2006-01-02"),
		CounterpartyID:   t.CounterpartyID.String(),
		CounterpartyName: t.CounterpartyName,
		StaffID:          t.StaffID.String(),
		StaffName:        t.StaffName,
		Total:            t.Total,
		Items:            items,
		CreatedAt:        t.CreatedAt.Format(time.RFC3339),
	}
	if t.Staff != nil {
		resp.Staff = staffToResponse(t.Staff)
	}
	// The counterparty may have been deactivated since; the snapshot still
	// carries the historical name.
	if _, partner, err := s.resolveCounterparty(ctx, t.Kind, t.CounterpartyID); err == nil {
		resp.Counterparty = partner
	}
	return resp
}
