package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
)

// DefaultWeeklyOff is the weekly non-working day when none is configured.
const DefaultWeeklyOff = time.Sunday

// ResolveCell resolves the status of one employee on one day. The first rule
// that matches wins:
//
//  1. approved leave: HalfDay or Leave
//  2. holiday: PaidHoliday or UnpaidHoliday
//  3. weekly off day: Weekend
//  4. attendance record: HalfDay or Present
//  5. Absent
//
// Late is only set when the status comes from an attendance record.
func ResolveCell(employeeID string, day attendance.CalendarDay, src *NormalizedSources, weeklyOff time.Weekday) attendance.AttendanceCell {
	cell := attendance.AttendanceCell{
		EmployeeID: employeeID,
		DateKey:    day.DateKey,
		Status:     attendance.DayStatusAbsent,
	}

	if isHalfDay, ok := src.LeaveOn(employeeID, day.DateKey); ok {
		if isHalfDay {
			cell.Status = attendance.DayStatusHalfDay
		} else {
			cell.Status = attendance.DayStatusLeave
		}
		return cell
	}

	if h, ok := src.HolidayOn(day.DateKey); ok {
		if h.LeaveType == attendance.HolidayLeaveTypePaid {
			cell.Status = attendance.DayStatusPaidHoliday
		} else {
			cell.Status = attendance.DayStatusUnpaidHoliday
		}
		return cell
	}

	if day.WeekdayName == weeklyOff.String() {
		cell.Status = attendance.DayStatusWeekend
		return cell
	}

	if r, ok := src.AttendanceOn(employeeID, day.DateKey); ok {
		if r.HalfDay {
			cell.Status = attendance.DayStatusHalfDay
		} else {
			cell.Status = attendance.DayStatusPresent
		}
		cell.Late = r.Late
		return cell
	}

	return cell
}

// ResolveStatus is ResolveCell without the rendering flags.
func ResolveStatus(employeeID string, day attendance.CalendarDay, src *NormalizedSources, weeklyOff time.Weekday) attendance.DayStatus {
	return ResolveCell(employeeID, day, src, weeklyOff).Status
}
