package attendance

import (
	"errors"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE GRID DTOs
// ========================================

// GridRequest selects the company and month of the grid. Year and Month both zero
// means the current month.
type GridRequest struct {
	CompanyID string `json:"company_id"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
}

func (r *GridRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CompanyID) {
		errs = append(errs, validator.ValidationError{
			Field:   "company_id",
			Message: ErrCompanyIDRequired.Error(),
		})
	}

	errs = append(errs, validatePeriod(r.Year, r.Month)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ComputeGridRequest carries in-memory snapshots supplied by the caller. Records
// with malformed dates are not rejected here; the engine skips them.
type ComputeGridRequest struct {
	Year       int                `json:"year" validate:"omitempty,min=1,max=9999"`
	Month      int                `json:"month" validate:"omitempty,min=1,max=12"`
	WeeklyOff  string             `json:"weekly_off,omitempty"`
	Roster     []RosterEntry      `json:"roster" validate:"dive"`
	Attendance []AttendanceRecord `json:"attendance"`
	Holidays   []Holiday          `json:"holidays"`
	Leaves     []LeaveRequest     `json:"leaves"`
}

// RosterEntry is the request-body form of Employee.
type RosterEntry struct {
	ID          string  `json:"id" validate:"required"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

func (r *ComputeGridRequest) Validate() error {
	var errs validator.ValidationErrors
	if err := validator.Struct(r); err != nil && !errors.As(err, &errs) {
		return err
	}

	if len(errs) == 0 && (r.Year == 0) != (r.Month == 0) {
		errs = append(errs, validatePeriod(r.Year, r.Month)...)
	}

	// weekly_off follows the same case-insensitive rule as WEEKLY_OFF_DAY.
	if r.WeeklyOff != "" {
		if _, err := ParseWeekday(r.WeeklyOff); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "weekly_off",
				Message: ErrInvalidWeeklyOff.Error(),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Employees converts the roster entries, keeping their order.
func (r ComputeGridRequest) Employees() []Employee {
	employees := make([]Employee, 0, len(r.Roster))
	for _, entry := range r.Roster {
		employees = append(employees, Employee{
			ID:          entry.ID,
			DisplayName: entry.DisplayName,
			AvatarURL:   entry.AvatarURL,
		})
	}
	return employees
}

// validatePeriod accepts 0/0 as "current month"; anything else must be a real month.
func validatePeriod(year, month int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if year == 0 && month == 0 {
		return nil
	}
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: ErrInvalidMonth.Error(),
		})
	}
	if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: ErrInvalidYear.Error(),
		})
	}
	return errs
}

// ParseWeekday parses a weekday name such as "Sunday", case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(strings.TrimSpace(name), d.String()) {
			return d, nil
		}
	}
	return time.Sunday, ErrInvalidWeeklyOff
}

// ========================================
// RESPONSES
// ========================================

type GridResponse struct {
	PeriodYear  int    `json:"period_year"`
	PeriodMonth int    `json:"period_month"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	GeneratedAt string `json:"generated_at"`
	WeeklyOff   string `json:"weekly_off"`

	Days        []CalendarDay   `json:"days"`
	Rows        []AttendanceRow `json:"rows"`
	Summary     GridSummary     `json:"summary"`
	Legend      []LegendEntry   `json:"legend"`
	Diagnostics Diagnostics     `json:"diagnostics"`
}

// GridSummary aggregates the rows of one grid.
type GridSummary struct {
	TotalEmployees    int               `json:"total_employees"`
	AveragePercentage int               `json:"average_percentage"`
	StatusTotals      map[DayStatus]int `json:"status_totals"`
}

// HolidayConflict records a date covered by more than one holiday.
type HolidayConflict struct {
	DateKey   string `json:"date"`
	KeptID    string `json:"kept_holiday_id"`
	DroppedID string `json:"dropped_holiday_id"`
}

// SkippedRecords counts input records ignored because of unusable dates.
type SkippedRecords struct {
	Attendance int `json:"attendance"`
	Holidays   int `json:"holidays"`
	Leaves     int `json:"leaves"`
}

func (s SkippedRecords) Total() int {
	return s.Attendance + s.Holidays + s.Leaves
}

// Diagnostics reports data-quality findings of one computation. They never fail it.
type Diagnostics struct {
	HolidayConflicts []HolidayConflict `json:"holiday_conflicts"`
	Skipped          SkippedRecords    `json:"skipped"`
}
