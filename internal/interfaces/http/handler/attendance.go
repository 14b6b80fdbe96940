package handler

import (
	"github.com/gin-gonic/gin"
	attendanceapp "github.com/retail/backend/internal/application/attendance"
)

// AttendanceHandler handles attendance endpoints
type AttendanceHandler struct {
	BaseHandler
	attendanceService *attendanceapp.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *attendanceapp.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// List handles GET /attendance
func (h *AttendanceHandler) List(c *gin.Context) {
	records, err := h.attendanceService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetByID handles GET /attendance/:id
func (h *AttendanceHandler) GetByID(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	record, err := h.attendanceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// CheckIn handles POST /attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req attendanceapp.CheckInRequest
	if !h.BindJSON(c, &req) {
		return
	}
	record, err := h.attendanceService.CheckIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, record)
}

// CheckOut handles PUT /attendance/:id/check-out. The body is optional.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	var req attendanceapp.CheckOutRequest
	if c.Request.ContentLength > 0 && !h.BindJSON(c, &req) {
		return
	}
	record, err := h.attendanceService.CheckOut(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Today handles GET /attendance/employee/:employeeId/today
func (h *AttendanceHandler) Today(c *gin.Context) {
	employeeID, ok := h.ParamUUID(c, "employeeId")
	if !ok {
		return
	}
	record, err := h.attendanceService.Today(c.Request.Context(), employeeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// Delete handles DELETE /attendance/:id
func (h *AttendanceHandler) Delete(c *gin.Context) {
	id, ok := h.ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := h.attendanceService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
