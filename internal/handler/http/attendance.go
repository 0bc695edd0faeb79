package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const maxComputeBodyBytes = 10 << 20

type AttendanceGridHandler interface {
	GetGrid(w http.ResponseWriter, r *http.Request)
	Compute(w http.ResponseWriter, r *http.Request)
	Legend(w http.ResponseWriter, r *http.Request)
}

type attendanceGridHandlerImpl struct {
	gridService attendance.GridService
}

func NewAttendanceGridHandler(gridService attendance.GridService) AttendanceGridHandler {
	return &attendanceGridHandlerImpl{
		gridService: gridService,
	}
}

// GetGrid implements AttendanceGridHandler.
func (h *attendanceGridHandlerImpl) GetGrid(w http.ResponseWriter, r *http.Request) {
	req := attendance.GridRequest{
		CompanyID: chi.URLParam(r, "companyID"),
	}

	details := make(map[string]string)
	query := r.URL.Query()
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			details["year"] = "year must be an integer"
		}
		req.Year = year
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			details["month"] = "month must be an integer"
		}
		req.Month = month
	}
	if len(details) > 0 {
		response.ValidationError(w, details)
		return
	}

	result, err := h.gridService.GetAttendanceGrid(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// Compute implements AttendanceGridHandler.
func (h *attendanceGridHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req attendance.ComputeGridRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxComputeBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.WarnContext(r.Context(), "Failed to decode compute request", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.gridService.ComputeFromSnapshot(r.Context(), req)
	if err != nil {
		response.HandleError(w, r, err)
		return
	}

	response.Success(w, result)
}

// Legend implements AttendanceGridHandler.
func (h *attendanceGridHandlerImpl) Legend(w http.ResponseWriter, r *http.Request) {
	response.Success(w, attendance.Legend())
}
