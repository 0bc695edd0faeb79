package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGridService struct {
	gridReq    attendance.GridRequest
	computeReq attendance.ComputeGridRequest
	resp       attendance.GridResponse
	err        error
}

func (f *fakeGridService) GetAttendanceGrid(ctx context.Context, req attendance.GridRequest) (attendance.GridResponse, error) {
	f.gridReq = req
	return f.resp, f.err
}

func (f *fakeGridService) ComputeFromSnapshot(ctx context.Context, req attendance.ComputeGridRequest) (attendance.GridResponse, error) {
	f.computeReq = req
	if f.err != nil {
		return attendance.GridResponse{}, f.err
	}
	if err := req.Validate(); err != nil {
		return attendance.GridResponse{}, err
	}
	return f.resp, nil
}

func newTestRouter(svc attendance.GridService) http.Handler {
	return NewRouter(RouterConfig{}, NewAttendanceGridHandler(svc), metrics.NewMetrics())
}

func serve(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var envelope response.Response
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	}
	return rec, envelope
}

func TestGetGrid_Success(t *testing.T) {
	svc := &fakeGridService{resp: attendance.GridResponse{PeriodYear: 2024, PeriodMonth: 1, WeeklyOff: "Sunday"}}
	router := newTestRouter(svc)

	rec, envelope := serve(t, router, http.MethodGet, "/api/v1/companies/company-1/attendance-grid?year=2024&month=1", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, attendance.GridRequest{CompanyID: "company-1", Year: 2024, Month: 1}, svc.gridReq)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2024), data["period_year"])
	assert.Equal(t, "Sunday", data["weekly_off"])
}

func TestGetGrid_DefaultsPeriod(t *testing.T) {
	svc := &fakeGridService{}
	router := newTestRouter(svc)

	rec, _ := serve(t, router, http.MethodGet, "/api/v1/companies/company-1/attendance-grid", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, attendance.GridRequest{CompanyID: "company-1"}, svc.gridReq)
}

func TestGetGrid_NonNumericQuery(t *testing.T) {
	svc := &fakeGridService{}
	router := newTestRouter(svc)

	rec, envelope := serve(t, router, http.MethodGet, "/api/v1/companies/company-1/attendance-grid?year=twenty&month=jan", "")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Details, "year")
	assert.Contains(t, envelope.Error.Details, "month")
	assert.Empty(t, svc.gridReq.CompanyID, "service must not be called")
}

func TestGetGrid_ServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		want string
	}{
		{"validation", validator.ValidationErrors{{Field: "month", Message: "month must be between 1 and 12"}}, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"weekly off", attendance.ErrInvalidWeeklyOff, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"repository", errors.New("failed to get roster: connection reset"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			router := newTestRouter(&fakeGridService{err: c.err})

			rec, envelope := serve(t, router, http.MethodGet, "/api/v1/companies/company-1/attendance-grid?year=2024&month=13", "")

			assert.Equal(t, c.code, rec.Code)
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, c.want, envelope.Error.Code)
			assert.NotContains(t, rec.Body.String(), "connection reset")
		})
	}
}

func TestCompute_Success(t *testing.T) {
	svc := &fakeGridService{resp: attendance.GridResponse{PeriodYear: 2024, PeriodMonth: 2}}
	router := newTestRouter(svc)

	body := `{
		"year": 2024,
		"month": 2,
		"weekly_off": "Saturday",
		"roster": [{"id": "E1", "display_name": "Employee One"}],
		"attendance": [{"employee_id": "E1", "date": "2024-02-01", "late": true}],
		"holidays": [{"id": "h1", "start_date": "2024-02-10", "end_date": "2024-02-10", "leave_type": "paid"}],
		"leaves": [{"id": "l1", "employee_id": "E1", "start_date": "2024-02-12", "end_date": "2024-02-13", "status": "approved"}]
	}`
	rec, envelope := serve(t, router, http.MethodPost, "/api/v1/attendance-grid/compute", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "Saturday", svc.computeReq.WeeklyOff)
	require.Len(t, svc.computeReq.Roster, 1)
	assert.Equal(t, "E1", svc.computeReq.Roster[0].ID)
	require.Len(t, svc.computeReq.Attendance, 1)
	assert.True(t, svc.computeReq.Attendance[0].Late)
	assert.Equal(t, attendance.LeaveRequestStatusApproved, svc.computeReq.Leaves[0].Status)
}

func TestCompute_BadRequests(t *testing.T) {
	router := newTestRouter(&fakeGridService{})

	rec, envelope := serve(t, router, http.MethodPost, "/api/v1/attendance-grid/compute", `{"year": "2024"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "BAD_REQUEST", envelope.Error.Code)

	rec, envelope = serve(t, router, http.MethodPost, "/api/v1/attendance-grid/compute", `{"year": 2024, "month": 13, "roster": [{"display_name": "x"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Details, "month")
	assert.Contains(t, envelope.Error.Details, "roster[0].id")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/attendance-grid/compute", strings.NewReader("year=2024"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestLegend(t *testing.T) {
	router := newTestRouter(&fakeGridService{})

	rec, envelope := serve(t, router, http.MethodGet, "/api/v1/attendance-grid/legend", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	entries, ok := envelope.Data.([]any)
	require.True(t, ok)
	assert.Len(t, entries, len(attendance.Legend()))

	last, ok := entries[len(entries)-1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, attendance.LateMarkerCode, last["code"])
}

func TestRouter_NotFoundAndMetrics(t *testing.T) {
	router := newTestRouter(&fakeGridService{})

	rec, envelope := serve(t, router, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "NOT_FOUND", envelope.Error.Code)

	rec, _ = serve(t, router, http.MethodGet, "/api/v1/attendance-grid/legend", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{route="/api/v1/attendance-grid/legend",status="200"} 1`)
}
