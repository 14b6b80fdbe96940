package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/retail/backend/internal/application/report"
	"github.com/retail/backend/internal/domain/report"
	"github.com/retail/backend/internal/infrastructure/cache"
	"github.com/retail/backend/internal/interfaces/http/dto"
)

// ReportHandler handles report-related API endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
	snapshots     cache.SnapshotStore
}

// NewReportHandler creates a new ReportHandler. snapshots may be nil, in
// which case /reports/stock/latest always answers 404.
func NewReportHandler(reportService *reportapp.ReportService, snapshots cache.SnapshotStore) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		snapshots:     snapshots,
	}
}

// Sales handles GET /reports/sales?start_date=&end_date=
func (h *ReportHandler) Sales(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	rep, err := h.reportService.GenerateSalesReport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// Stock handles GET /reports/stock?threshold=
func (h *ReportHandler) Stock(c *gin.Context) {
	threshold, ok := h.queryThreshold(c)
	if !ok {
		return
	}
	rep, err := h.reportService.GenerateStockReport(c.Request.Context(), threshold)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// LatestStock handles GET /reports/stock/latest, serving the last scheduled snapshot
func (h *ReportHandler) LatestStock(c *gin.Context) {
	if h.snapshots == nil {
		h.HandleError(c, cache.ErrNoSnapshot)
		return
	}
	snap, err := h.snapshots.LatestStock(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, snap)
}

// Attendance handles GET /reports/attendance?start_date=&end_date=
func (h *ReportHandler) Attendance(c *gin.Context) {
	start, end, ok := h.dateRange(c)
	if !ok {
		return
	}
	rep, err := h.reportService.GenerateAttendanceReport(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// SalesSummary handles GET /reports/sales/summary?days=
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	days, ok := h.queryDays(c)
	if !ok {
		return
	}
	rep, err := h.reportService.SalesSummary(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// AttendanceSummary handles GET /reports/attendance/summary?days=
func (h *ReportHandler) AttendanceSummary(c *gin.Context) {
	days, ok := h.queryDays(c)
	if !ok {
		return
	}
	rep, err := h.reportService.AttendanceSummary(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rep)
}

// dateRange parses start_date and end_date as YYYY-MM-DD in UTC. The end
// date covers its whole day.
func (h *ReportHandler) dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, ok := h.queryDate(c, "start_date")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := h.queryDate(c, "end_date")
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, endOfDay(end), true
}

func (h *ReportHandler) queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, name+" is required")
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.UTC)
	if err != nil {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, name+" must be a date in YYYY-MM-DD format")
		return time.Time{}, false
	}
	return t, true
}

func (h *ReportHandler) queryDays(c *gin.Context) (int, bool) {
	raw := c.Query("days")
	if raw == "" {
		return reportapp.DefaultSummaryDays, true
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeValidation, "days must be a positive integer")
		return 0, false
	}
	return days, true
}

// queryThreshold reads ?threshold=, defaulting to report.DefaultLowStockThreshold.
func (h *BaseHandler) queryThreshold(c *gin.Context) (int, bool) {
	raw := c.Query("threshold")
	if raw == "" {
		return report.DefaultLowStockThreshold, true
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil || threshold < 0 {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidThreshold, "threshold must be a non-negative integer")
		return 0, false
	}
	return threshold, true
}

func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Nanosecond)
}
