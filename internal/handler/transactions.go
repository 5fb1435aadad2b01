package handler

import (
	"net/http"
	"path/filepath"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves one transaction kind. The router mounts two
// instances, one under /imports and one under /orders; everything else is
// identical.
type TransactionHandler struct {
	svc     service.LedgerService
	reports service.ReportService
	kind    model.TransactionKind
}

func NewTransactionHandler(svc service.LedgerService, reports service.ReportService, kind model.TransactionKind) *TransactionHandler {
	return &TransactionHandler{svc: svc, reports: reports, kind: kind}
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.svc.Create(c.Request.Context(), h.kind, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	txn, err := h.svc.Get(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), h.kind, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}
	txn, err := h.svc.Update(c.Request.Context(), h.kind, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), h.kind, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Voucher streams the single-transaction PDF (import voucher / sales invoice).
func (h *TransactionHandler) Voucher(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	path, err := h.reports.VoucherPDF(c.Request.Context(), h.kind, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
