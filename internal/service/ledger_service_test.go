package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory stubs ──────────────────────────────────────────────────────────

type stubProductRepo struct {
	items map[uuid.UUID]*model.Product
	// failAdjust simulates a mid-transaction store failure on the given ids.
	failAdjust map[uuid.UUID]bool
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		items:      make(map[uuid.UUID]*model.Product),
		failAdjust: make(map[uuid.UUID]bool),
	}
}

func (s *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubProductRepo) FindByCode(_ context.Context, code string) (*model.Product, error) {
	for _, p := range s.items {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	out := make([]model.Product, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (s *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	cp := *p
	s.items[p.ID] = &cp
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(s.items, id)
	return nil
}

func (s *stubProductRepo) AdjustStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	if s.failAdjust[id] {
		return errors.New("simulated store failure")
	}
	p, ok := s.items[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Qty += delta
	return nil
}

func (s *stubProductRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Product, error) {
	return s.FindByID(context.Background(), id)
}

type stubTxnRepo struct {
	txns    map[uuid.UUID]*model.StockTransaction
	details map[uuid.UUID][]model.TransactionDetail
}

func newStubTxnRepo() *stubTxnRepo {
	return &stubTxnRepo{
		txns:    make(map[uuid.UUID]*model.StockTransaction),
		details: make(map[uuid.UUID][]model.TransactionDetail),
	}
}

func (s *stubTxnRepo) CreateTx(_ *gorm.DB, t *model.StockTransaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	cp.Details = nil
	s.txns[t.ID] = &cp
	return nil
}

func (s *stubTxnRepo) UpdateHeaderTx(_ *gorm.DB, t *model.StockTransaction) error {
	if _, ok := s.txns[t.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Details = nil
	s.txns[t.ID] = &cp
	return nil
}

func (s *stubTxnRepo) CreateDetailTx(_ *gorm.DB, d *model.TransactionDetail) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	s.details[d.TransactionID] = append(s.details[d.TransactionID], *d)
	return nil
}

func (s *stubTxnRepo) DeleteDetailsTx(_ *gorm.DB, transactionID uuid.UUID) error {
	delete(s.details, transactionID)
	return nil
}

func (s *stubTxnRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(s.txns, id)
	return nil
}

func (s *stubTxnRepo) FindByID(_ context.Context, kind model.TransactionKind, id uuid.UUID) (*model.StockTransaction, error) {
	t, ok := s.txns[id]
	if !ok || t.Kind != kind {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	cp.Details = append([]model.TransactionDetail(nil), s.details[id]...)
	return &cp, nil
}

func (s *stubTxnRepo) List(_ context.Context, kind model.TransactionKind, _ dto.TransactionFilter) ([]model.StockTransaction, int64, error) {
	var out []model.StockTransaction
	for id, t := range s.txns {
		if t.Kind != kind {
			continue
		}
		cp := *t
		cp.Details = append([]model.TransactionDetail(nil), s.details[id]...)
		out = append(out, cp)
	}
	return out, int64(len(out)), nil
}

func (s *stubTxnRepo) PageSize() int { return 10 }

type stubStaffRepo struct {
	items map[uuid.UUID]*model.Staff
}

func (s *stubStaffRepo) Create(_ context.Context, st *model.Staff) error {
	if st.ID == uuid.Nil {
		st.ID = uuid.New()
	}
	cp := *st
	s.items[st.ID] = &cp
	return nil
}

func (s *stubStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Staff, error) {
	st, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *stubStaffRepo) List(_ context.Context, _ string) ([]model.Staff, error) { return nil, nil }
func (s *stubStaffRepo) Update(_ context.Context, st *model.Staff) error {
	cp := *st
	s.items[st.ID] = &cp
	return nil
}
func (s *stubStaffRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

type stubSupplierRepo struct {
	items map[uuid.UUID]*model.Supplier
}

func (s *stubSupplierRepo) Create(_ context.Context, sup *model.Supplier) error {
	if sup.ID == uuid.Nil {
		sup.ID = uuid.New()
	}
	cp := *sup
	s.items[sup.ID] = &cp
	return nil
}

func (s *stubSupplierRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Supplier, error) {
	sup, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *sup
	return &cp, nil
}

func (s *stubSupplierRepo) List(_ context.Context, _ string) ([]model.Supplier, error) { return nil, nil }
func (s *stubSupplierRepo) Update(_ context.Context, sup *model.Supplier) error {
	cp := *sup
	s.items[sup.ID] = &cp
	return nil
}
func (s *stubSupplierRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

type stubCustomerRepo struct {
	items map[uuid.UUID]*model.Customer
}

func (s *stubCustomerRepo) Create(_ context.Context, c *model.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	s.items[c.ID] = &cp
	return nil
}

func (s *stubCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Customer, error) {
	c, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *stubCustomerRepo) List(_ context.Context, _ string) ([]model.Customer, error) { return nil, nil }
func (s *stubCustomerRepo) Update(_ context.Context, c *model.Customer) error {
	cp := *c
	s.items[c.ID] = &cp
	return nil
}
func (s *stubCustomerRepo) Deactivate(_ context.Context, _ uuid.UUID) error { return nil }

// snapTxManager gives the stubs real rollback semantics: state is snapshotted
// before fn runs and restored when fn fails, so atomicity assertions hold.
type snapTxManager struct {
	products *stubProductRepo
	txns     *stubTxnRepo
}

func (m *snapTxManager) Do(_ context.Context, fn func(tx *gorm.DB) error) error {
	prodSnap := make(map[uuid.UUID]*model.Product, len(m.products.items))
	for id, p := range m.products.items {
		cp := *p
		prodSnap[id] = &cp
	}
	txnSnap := make(map[uuid.UUID]*model.StockTransaction, len(m.txns.txns))
	for id, t := range m.txns.txns {
		cp := *t
		txnSnap[id] = &cp
	}
	detSnap := make(map[uuid.UUID][]model.TransactionDetail, len(m.txns.details))
	for id, ds := range m.txns.details {
		detSnap[id] = append([]model.TransactionDetail(nil), ds...)
	}

	if err := fn(nil); err != nil {
		m.products.items = prodSnap
		m.txns.txns = txnSnap
		m.txns.details = detSnap
		return err
	}
	return nil
}

// ── Fixture ──────────────────────────────────────────────────────────────────

type ledgerFixture struct {
	svc      LedgerService
	products *stubProductRepo
	txns     *stubTxnRepo
	staffs   *stubStaffRepo

	product  *model.Product
	staff    *model.Staff
	supplier *model.Supplier
	customer *model.Customer
}

func newLedgerFixture(t *testing.T, startQty int) *ledgerFixture {
	t.Helper()

	products := newStubProductRepo()
	txns := newStubTxnRepo()
	staffs := &stubStaffRepo{items: make(map[uuid.UUID]*model.Staff)}
	suppliers := &stubSupplierRepo{items: make(map[uuid.UUID]*model.Supplier)}
	customers := &stubCustomerRepo{items: make(map[uuid.UUID]*model.Customer)}

	ctx := context.Background()
	product := &model.Product{
		Code:      "SKU-001",
		Name:      "Widget",
		Qty:       startQty,
		SalePrice: decimal.RequireFromString("5.00"),
		MinQty:    5,
		Status:    "active",
	}
	require.NoError(t, products.Create(ctx, product))

	staff := &model.Staff{FullName: "Dara Kim", Position: "Clerk", Status: "active"}
	require.NoError(t, staffs.Create(ctx, staff))

	supplier := &model.Supplier{Name: "Acme Supply", Active: true}
	require.NoError(t, suppliers.Create(ctx, supplier))

	customer := &model.Customer{Name: "Corner Shop", Active: true}
	require.NoError(t, customers.Create(ctx, customer))

	svc := NewLedgerService(txns, products, staffs, suppliers, customers,
		&snapTxManager{products: products, txns: txns}, nil)

	return &ledgerFixture{
		svc:      svc,
		products: products,
		txns:     txns,
		staffs:   staffs,
		product:  product,
		staff:    staff,
		supplier: supplier,
		customer: customer,
	}
}

func (f *ledgerFixture) importReq(qty int, price string) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		TxnDate:        "2026-01-15",
		CounterpartyID: f.supplier.ID.String(),
		StaffID:        f.staff.ID.String(),
		Items: []dto.TransactionItemRequest{
			{ProductID: f.product.ID.String(), Qty: qty, Price: decimal.RequireFromString(price)},
		},
	}
}

func (f *ledgerFixture) orderReq(qty int, price string) dto.CreateTransactionRequest {
	req := f.importReq(qty, price)
	req.CounterpartyID = f.customer.ID.String()
	return req
}

func (f *ledgerFixture) productQty(t *testing.T) int {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), f.product.ID)
	require.NoError(t, err)
	return p.Qty
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCreateImportAddsStockAndComputesTotal(t *testing.T) {
	f := newLedgerFixture(t, 0)

	resp, err := f.svc.Create(context.Background(), model.KindImport, f.importReq(10, "2.50"))
	require.NoError(t, err)

	require.Equal(t, 10, f.productQty(t))
	require.Equal(t, "25.00", resp.Total.StringFixed(2))
	require.Equal(t, "import", resp.Kind)
	require.Equal(t, "Acme Supply", resp.CounterpartyName)
	require.Equal(t, "Dara Kim", resp.StaffName)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Widget", resp.Items[0].ProductName)
	require.Equal(t, "25.00", resp.Items[0].Amount.StringFixed(2))
}

func TestCreateOrderSubtractsStock(t *testing.T) {
	f := newLedgerFixture(t, 10)

	resp, err := f.svc.Create(context.Background(), model.KindOrder, f.orderReq(4, "5.00"))
	require.NoError(t, err)

	require.Equal(t, 6, f.productQty(t))
	require.Equal(t, "20.00", resp.Total.StringFixed(2))
	require.Equal(t, "Corner Shop", resp.CounterpartyName)
}

func TestCreateOrderMayDriveStockNegative(t *testing.T) {
	f := newLedgerFixture(t, 2)

	_, err := f.svc.Create(context.Background(), model.KindOrder, f.orderReq(5, "5.00"))
	require.NoError(t, err)
	require.Equal(t, -3, f.productQty(t))
}

func TestCreateRejectsEmptyItems(t *testing.T) {
	f := newLedgerFixture(t, 10)

	req := f.importReq(1, "1.00")
	req.Items = nil
	_, err := f.svc.Create(context.Background(), model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindValidation))
	require.Equal(t, 10, f.productQty(t))
	require.Empty(t, f.txns.txns)
}

func TestCreateRejectsNonPositiveQty(t *testing.T) {
	f := newLedgerFixture(t, 10)

	req := f.importReq(0, "1.00")
	_, err := f.svc.Create(context.Background(), model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindValidation))
	require.Equal(t, 10, f.productQty(t))
}

func TestCreateRejectsNegativePrice(t *testing.T) {
	f := newLedgerFixture(t, 10)

	req := f.importReq(1, "-1.00")
	_, err := f.svc.Create(context.Background(), model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindValidation))
}

func TestCreateUnknownProductFailsBeforeAnyWrite(t *testing.T) {
	f := newLedgerFixture(t, 10)

	req := f.importReq(1, "1.00")
	req.Items[0].ProductID = uuid.NewString()
	_, err := f.svc.Create(context.Background(), model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
	require.Equal(t, 10, f.productQty(t))
	require.Empty(t, f.txns.txns)
}

func TestCreateUnknownCounterpartyFails(t *testing.T) {
	f := newLedgerFixture(t, 10)

	req := f.importReq(1, "1.00")
	req.CounterpartyID = uuid.NewString()
	_, err := f.svc.Create(context.Background(), model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
	require.True(t, strings.Contains(err.Error(), "supplier"))
}

func TestCreateRollsBackOnMidTransactionFailure(t *testing.T) {
	f := newLedgerFixture(t, 10)

	ctx := context.Background()
	other := &model.Product{Code: "SKU-002", Name: "Gadget", Qty: 3, Status: "active"}
	require.NoError(t, f.products.Create(ctx, other))
	f.products.failAdjust[other.ID] = true

	req := f.importReq(5, "1.00")
	req.Items = append(req.Items, dto.TransactionItemRequest{
		ProductID: other.ID.String(), Qty: 2, Price: decimal.RequireFromString("1.00"),
	})

	_, err := f.svc.Create(ctx, model.KindImport, req)
	require.True(t, apierror.IsKind(err, apierror.KindInternal))

	// Nothing from the failed unit of work survives.
	require.Equal(t, 10, f.productQty(t))
	otherAfter, err := f.products.FindByID(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, 3, otherAfter.Qty)
	require.Empty(t, f.txns.txns)
	require.Empty(t, f.txns.details)
}

// ── Update ───────────────────────────────────────────────────────────────────

func TestUpdateReplacesItemsAndReversesOldDeltas(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)
	require.Equal(t, 10, f.productQty(t))

	id := uuid.MustParse(created.ID)
	items := []dto.TransactionItemRequest{
		{ProductID: f.product.ID.String(), Qty: 3, Price: decimal.RequireFromString("2.00")},
	}
	updated, err := f.svc.Update(ctx, model.KindImport, id, dto.UpdateTransactionRequest{Items: &items})
	require.NoError(t, err)

	// Net effect equals a fresh import of 3: the old +10 was reversed.
	require.Equal(t, 3, f.productQty(t))
	require.Equal(t, "6.00", updated.Total.StringFixed(2))
	require.Len(t, updated.Items, 1)
	require.Equal(t, 3, updated.Items[0].Qty)
}

func TestUpdateWithoutItemsLeavesStockUntouched(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	newDate := "2026-02-01"
	updated, err := f.svc.Update(ctx, model.KindImport, id, dto.UpdateTransactionRequest{TxnDate: &newDate})
	require.NoError(t, err)

	require.Equal(t, 10, f.productQty(t))
	require.Equal(t, "2026-02-01", updated.TxnDate)
	require.Equal(t, "20.00", updated.Total.StringFixed(2))
	require.Len(t, updated.Items, 1)
}

func TestUpdateRejectsExplicitlyEmptyItems(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	empty := []dto.TransactionItemRequest{}
	_, err = f.svc.Update(ctx, model.KindImport, id, dto.UpdateTransactionRequest{Items: &empty})
	require.True(t, apierror.IsKind(err, apierror.KindValidation))
	require.Equal(t, 10, f.productQty(t))
}

func TestUpdateSnapshotsNewStaffName(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(1, "1.00"))
	require.NoError(t, err)

	other := &model.Staff{FullName: "Sokha Chan", Position: "Manager", Status: "active"}
	require.NoError(t, f.staffs.Create(ctx, other))

	id := uuid.MustParse(created.ID)
	otherID := other.ID.String()
	updated, err := f.svc.Update(ctx, model.KindImport, id, dto.UpdateTransactionRequest{StaffID: &otherID})
	require.NoError(t, err)
	require.Equal(t, "Sokha Chan", updated.StaffName)
}

func TestUpdateWrongKindIsNotFound(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(1, "1.00"))
	require.NoError(t, err)

	id := uuid.MustParse(created.ID)
	_, err = f.svc.Update(ctx, model.KindOrder, id, dto.UpdateTransactionRequest{})
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

// ── Delete ───────────────────────────────────────────────────────────────────

func TestDeleteReversesStockEffect(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)
	require.Equal(t, 10, f.productQty(t))

	id := uuid.MustParse(created.ID)
	require.NoError(t, f.svc.Delete(ctx, model.KindImport, id))

	require.Equal(t, 0, f.productQty(t))
	require.Empty(t, f.txns.txns)
	require.Empty(t, f.txns.details)
}

func TestDeleteOrderRestoresStock(t *testing.T) {
	f := newLedgerFixture(t, 10)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindOrder, f.orderReq(4, "5.00"))
	require.NoError(t, err)
	require.Equal(t, 6, f.productQty(t))

	require.NoError(t, f.svc.Delete(ctx, model.KindOrder, uuid.MustParse(created.ID)))
	require.Equal(t, 10, f.productQty(t))
}

func TestDeleteUnknownIsNotFound(t *testing.T) {
	f := newLedgerFixture(t, 0)
	err := f.svc.Delete(context.Background(), model.KindImport, uuid.New())
	require.True(t, apierror.IsKind(err, apierror.KindNotFound))
}

// ── Get / List ───────────────────────────────────────────────────────────────

func TestGetIsReadOnly(t *testing.T) {
	f := newLedgerFixture(t, 0)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)
	id := uuid.MustParse(created.ID)

	first, err := f.svc.Get(ctx, model.KindImport, id)
	require.NoError(t, err)
	second, err := f.svc.Get(ctx, model.KindImport, id)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 10, f.productQty(t))
}

func TestListFiltersByKind(t *testing.T) {
	f := newLedgerFixture(t, 100)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, model.KindImport, f.importReq(10, "2.00"))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, model.KindOrder, f.orderReq(4, "5.00"))
	require.NoError(t, err)

	importList, err := f.svc.List(ctx, model.KindImport, dto.TransactionFilter{Page: 1})
	require.NoError(t, err)
	require.Len(t, importList.Data, 1)
	require.Equal(t, "import", importList.Data[0].Kind)

	orderList, err := f.svc.List(ctx, model.KindOrder, dto.TransactionFilter{Page: 1})
	require.NoError(t, err)
	require.Len(t, orderList.Data, 1)
	require.Equal(t, "order", orderList.Data[0].Kind)
}
