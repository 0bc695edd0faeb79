package attendance

import (
	"testing"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func january2024(t *testing.T) []attendance.CalendarDay {
	t.Helper()
	days, err := GenerateCalendar(2024, 1)
	require.NoError(t, err)
	return days
}

func TestNormalizeSources_HolidayRangeIsClippedToMonth(t *testing.T) {
	days := january2024(t)
	src := NormalizeSources(days, []attendance.Holiday{
		{ID: "new-year", StartDate: "2023-12-30", EndDate: "2024-01-02", LeaveType: attendance.HolidayLeaveTypePaid},
		{ID: "far-future", StartDate: "2024-03-01", EndDate: "2024-03-05", LeaveType: attendance.HolidayLeaveTypePaid},
	}, nil, nil)

	for _, key := range []string{"2024-01-01", "2024-01-02"} {
		h, ok := src.HolidayOn(key)
		require.True(t, ok, key)
		assert.Equal(t, "new-year", h.ID)
	}
	_, ok := src.HolidayOn("2024-01-03")
	assert.False(t, ok)
	assert.Len(t, src.holidayByDate, 2)
	assert.Empty(t, src.Conflicts)
}

func TestNormalizeSources_OverlappingHolidaysFirstWins(t *testing.T) {
	days := january2024(t)
	src := NormalizeSources(days, []attendance.Holiday{
		{ID: "h1", StartDate: "2024-01-10", EndDate: "2024-01-11", LeaveType: attendance.HolidayLeaveTypePaid},
		{ID: "h2", StartDate: "2024-01-11", EndDate: "2024-01-12", LeaveType: attendance.HolidayLeaveTypeUnpaid},
	}, nil, nil)

	h, ok := src.HolidayOn("2024-01-11")
	require.True(t, ok)
	assert.Equal(t, "h1", h.ID)

	h, ok = src.HolidayOn("2024-01-12")
	require.True(t, ok)
	assert.Equal(t, "h2", h.ID)

	assert.Equal(t, []attendance.HolidayConflict{
		{DateKey: "2024-01-11", KeptID: "h1", DroppedID: "h2"},
	}, src.Conflicts)
}

func TestNormalizeSources_OnlyApprovedLeavesExpand(t *testing.T) {
	days := january2024(t)
	src := NormalizeSources(days, nil, []attendance.LeaveRequest{
		{ID: "l1", EmployeeID: "e1", StartDate: "2024-01-10", EndDate: "2024-01-11", Status: attendance.LeaveRequestStatusApproved},
		{ID: "l2", EmployeeID: "e1", StartDate: "2024-01-15", EndDate: "2024-01-15", Status: attendance.LeaveRequestStatusPending},
		{ID: "l3", EmployeeID: "e1", StartDate: "2024-01-16", EndDate: "2024-01-16", Status: attendance.LeaveRequestStatusRejected},
		// Unparseable but not approved: filtered before parsing, so not counted as skipped.
		{ID: "l4", EmployeeID: "e1", StartDate: "garbage", EndDate: "garbage", Status: attendance.LeaveRequestStatusPending},
		{ID: "l5", EmployeeID: "e2", StartDate: "2024-01-20", EndDate: "2024-01-20", Status: attendance.LeaveRequestStatusApproved, IsHalfDay: true},
	}, nil)

	assert.Len(t, src.leaveByEmployeeDate, 3)

	half, ok := src.LeaveOn("e1", "2024-01-10")
	assert.True(t, ok)
	assert.False(t, half)

	_, ok = src.LeaveOn("e1", "2024-01-15")
	assert.False(t, ok)
	_, ok = src.LeaveOn("e1", "2024-01-16")
	assert.False(t, ok)

	half, ok = src.LeaveOn("e2", "2024-01-20")
	assert.True(t, ok)
	assert.True(t, half)

	_, ok = src.LeaveOn("e2", "2024-01-10")
	assert.False(t, ok, "leave is employee specific")

	assert.Zero(t, src.Skipped.Leaves)
}

func TestNormalizeSources_SkipsUnusableDates(t *testing.T) {
	days := january2024(t)
	src := NormalizeSources(days,
		[]attendance.Holiday{
			{ID: "bad-start", StartDate: "not-a-date", EndDate: "2024-01-05", LeaveType: attendance.HolidayLeaveTypePaid},
			{ID: "reversed", StartDate: "2024-01-09", EndDate: "2024-01-05", LeaveType: attendance.HolidayLeaveTypePaid},
		},
		[]attendance.LeaveRequest{
			{ID: "bad-end", EmployeeID: "e1", StartDate: "2024-01-03", EndDate: "2024-13-01", Status: attendance.LeaveRequestStatusApproved},
		},
		[]attendance.AttendanceRecord{
			{EmployeeID: "e1", Date: "2024-01-04"},
			{EmployeeID: "e1", Date: "04/01/2024"},
			{EmployeeID: "e1", Date: ""},
		},
	)

	assert.Equal(t, attendance.SkippedRecords{Attendance: 2, Holidays: 2, Leaves: 1}, src.Skipped)
	assert.Empty(t, src.holidayByDate)
	assert.Empty(t, src.leaveByEmployeeDate)
	_, ok := src.AttendanceOn("e1", "2024-01-04")
	assert.True(t, ok)
}

func TestNormalizeSources_AttendanceDuplicatesKeepFirst(t *testing.T) {
	days := january2024(t)
	src := NormalizeSources(days, nil, nil, []attendance.AttendanceRecord{
		{EmployeeID: "e1", Date: "2024-01-04", HalfDay: true},
		{EmployeeID: "e1", Date: "2024-01-04T09:00:00+07:00", HalfDay: false, Late: true},
	})

	r, ok := src.AttendanceOn("e1", "2024-01-04")
	require.True(t, ok)
	assert.True(t, r.HalfDay)
	assert.False(t, r.Late)
}

func TestNormalizeSources_EmptyCalendar(t *testing.T) {
	src := NormalizeSources(nil, []attendance.Holiday{
		{ID: "h1", StartDate: "2024-01-01", EndDate: "2024-01-01", LeaveType: attendance.HolidayLeaveTypePaid},
	}, nil, nil)

	assert.Empty(t, src.holidayByDate)
	assert.NotNil(t, src.Conflicts)
}
