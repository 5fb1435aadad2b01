package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"stockroom/internal/apierror"
	"stockroom/internal/dto"
	"stockroom/internal/infra"
	"stockroom/internal/model"
	"stockroom/internal/repository"

	"github.com/google/uuid"
)

// ReportService serves the read-only reporting projection over the ledger:
// paginated detail rows, date-range summaries, CSV and PDF exports, and the
// single-transaction voucher.
type ReportService interface {
	Rows(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) (*dto.ReportResponse, error)
	Summary(ctx context.Context, kind model.TransactionKind, dateFrom, dateTo string) (*dto.SummaryResponse, error)
	ExportCSV(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) ([]byte, error)
	ExportPDF(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) (string, error)
	VoucherPDF(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (string, error)
}

type reportService struct {
	reports      repository.ReportRepository
	transactions repository.TransactionRepository
	storagePath  string
}

func NewReportService(reports repository.ReportRepository, transactions repository.TransactionRepository, storagePath string) ReportService {
	return &reportService{reports: reports, transactions: transactions, storagePath: storagePath}
}

func (s *reportService) Rows(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) (*dto.ReportResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	rows, total, err := s.reports.Rows(ctx, kind, filter)
	if err != nil {
		return nil, apierror.From(err)
	}
	data := make([]dto.ReportRow, 0, len(rows))
	for _, r := range rows {
		data = append(data, dto.ReportRow{
			TransactionID:    r.TransactionID,
			TxnDate:          r.TxnDate.Format("2006-01-02"),
			StaffName:        r.StaffName,
			CounterpartyName: r.CounterpartyName,
			ProductName:      r.ProductName,
			Qty:              r.Qty,
			UnitPrice:        r.UnitPrice,
			Amount:           r.Amount,
			TransactionTotal: r.TransactionTotal,
		})
	}
	return &dto.ReportResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: s.reports.PageSize(),
	}, nil
}

func (s *reportService) Summary(ctx context.Context, kind model.TransactionKind, dateFrom, dateTo string) (*dto.SummaryResponse, error) {
	row, err := s.reports.Summary(ctx, kind, dateFrom, dateTo)
	if err != nil {
		return nil, apierror.From(err)
	}
	return &dto.SummaryResponse{
		TotalTransactions: row.TotalTransactions,
		TotalQty:          row.TotalQty,
		TotalAmount:       row.TotalAmount,
	}, nil
}

// ExportCSV streams the full filtered row set (no pagination) as CSV.
func (s *reportService) ExportCSV(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"date", "staff", "counterparty", "product", "qty", "unit_price", "amount", "transaction_total"}
	if err := w.Write(header); err != nil {
		return nil, apierror.Internal(err)
	}

	filter.Page = 1
	for {
		rows, total, err := s.reports.Rows(ctx, kind, filter)
		if err != nil {
			return nil, apierror.From(err)
		}
		for _, r := range rows {
			record := []string{
				r.TxnDate.Format("2006-01-02"),
				r.StaffName,
				r.CounterpartyName,
				r.ProductName,
				strconv.Itoa(r.Qty),
				r.UnitPrice.StringFixed(2),
				r.Amount.StringFixed(2),
				r.TransactionTotal.StringFixed(2),
			}
			if err := w.Write(record); err != nil {
				return nil, apierror.Internal(err)
			}
		}
		if int64(filter.Page*s.reports.PageSize()) >= total || len(rows) == 0 {
			break
		}
		filter.Page++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apierror.Internal(err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExportPDF(ctx context.Context, kind model.TransactionKind, filter dto.ReportFilter) (string, error) {
	var all []repository.ReportRow
	filter.Page = 1
	for {
		rows, total, err := s.reports.Rows(ctx, kind, filter)
		if err != nil {
			return "", apierror.From(err)
		}
		all = append(all, rows...)
		if int64(filter.Page*s.reports.PageSize()) >= total || len(rows) == 0 {
			break
		}
		filter.Page++
	}

	title := "Import Report"
	if kind == model.KindOrder {
		title = "Sales Report"
	}
	path, err := infra.GenerateReportPDF(title, all, s.storagePath)
	if err != nil {
		return "", apierror.Internal(err)
	}
	return path, nil
}

func (s *reportService) VoucherPDF(ctx context.Context, kind model.TransactionKind, id uuid.UUID) (string, error) {
	txn, err := s.transactions.FindByID(ctx, kind, id)
	if err != nil {
		return "", apierror.NotFound("%s %s not found", kind, id)
	}
	path, err := infra.GenerateTransactionPDF(txn, s.storagePath)
	if err != nil {
		return "", apierror.Internal(err)
	}
	return path, nil
}
