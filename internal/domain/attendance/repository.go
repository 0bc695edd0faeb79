package attendance

import (
	"context"
	"time"
)

// The repositories below hand the grid read-only snapshots of data owned by other
// modules. Every method is scoped by companyID.

// RosterRepository returns the employees to report on, in display order.
type RosterRepository interface {
	ListRoster(ctx context.Context, companyID string) ([]Employee, error)
}

// AttendanceRecordRepository returns attendance punches whose date falls in [start, end].
type AttendanceRecordRepository interface {
	ListByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]AttendanceRecord, error)
}

// HolidayRepository returns holidays overlapping [start, end], ordered by start date then id.
// The order matters: the first holiday covering a date wins.
type HolidayRepository interface {
	ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]Holiday, error)
}

// LeaveRequestRepository returns leave requests of every status overlapping [start, end].
type LeaveRequestRepository interface {
	ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]LeaveRequest, error)
}
