package attendance

import (
	"time"
)

// Employee is a roster entry. The roster provider owns it; the grid only reads it.
type Employee struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
}

// AttendanceRecord is a single attendance punch for one employee on one date.
type AttendanceRecord struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // YYYY-MM-DD or RFC3339
	HalfDay    bool   `json:"half_day"`
	Late       bool   `json:"late"`
}

type HolidayLeaveType string

const (
	HolidayLeaveTypePaid   HolidayLeaveType = "paid"
	HolidayLeaveTypeUnpaid HolidayLeaveType = "unpaid"
)

// Holiday is an organization-wide holiday range, inclusive of both endpoints.
type Holiday struct {
	ID        string           `json:"id"`
	Name      string           `json:"name,omitempty"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	LeaveType HolidayLeaveType `json:"leave_type"`
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// LeaveRequest is an employee-specific leave range, inclusive of both endpoints.
// Only approved requests take part in the grid.
type LeaveRequest struct {
	ID         string             `json:"id"`
	EmployeeID string             `json:"employee_id"`
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	Status     LeaveRequestStatus `json:"status"`
	IsHalfDay  bool               `json:"is_half_day"`
}

// CalendarDay is one day of the month being reported on.
type CalendarDay struct {
	DayNumber   int          `json:"day_number"`
	DateKey     string       `json:"date"`
	WeekdayName string       `json:"weekday"`
	Weekday     time.Weekday `json:"-"`
}

// AttendanceCell is the resolved status of one employee on one day.
type AttendanceCell struct {
	EmployeeID string    `json:"employee_id"`
	DateKey    string    `json:"date"`
	Status     DayStatus `json:"status"`
	Late       bool      `json:"late,omitempty"`
}

// Metrics is the presence summary of one employee over the month.
type Metrics struct {
	PresentDays      int    `json:"present_days"`
	TotalWorkingDays int    `json:"total_working_days"`
	Ratio            string `json:"ratio"`
	Percentage       int    `json:"percentage"`
}

// AttendanceRow is one roster employee with a cell per calendar day.
type AttendanceRow struct {
	Employee Employee         `json:"employee"`
	Cells    []AttendanceCell `json:"cells"`
	Metrics
}
