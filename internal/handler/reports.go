package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"stockroom/internal/dto"
	"stockroom/internal/model"
	"stockroom/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the reporting projection for one transaction kind.
// The router mounts one instance under /reports/imports and one under
// /reports/sales.
type ReportHandler struct {
	svc  service.ReportService
	kind model.TransactionKind
}

func NewReportHandler(svc service.ReportService, kind model.TransactionKind) *ReportHandler {
	return &ReportHandler{svc: svc, kind: kind}
}

func (h *ReportHandler) Rows(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Rows(c.Request.Context(), h.kind, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context(), h.kind, c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportHandler) ExportCSV(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	data, err := h.svc.ExportCSV(c.Request.Context(), h.kind, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	fileName := fmt.Sprintf("%s_report_%s.csv", h.kind, time.Now().Format("2006_01_02"))
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ReportHandler) ExportPDF(c *gin.Context) {
	var filter dto.ReportFilter
	if !bindQuery(c, &filter) {
		return
	}
	path, err := h.svc.ExportPDF(c.Request.Context(), h.kind, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.FileAttachment(path, filepath.Base(path))
}
