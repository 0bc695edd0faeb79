package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
)

type employeeDateKey struct {
	employeeID string
	dateKey    string
}

type leaveEntry struct {
	leaveID   string
	isHalfDay bool
}

// NormalizedSources holds the per-date lookup tables of one computation pass.
// They are rebuilt from scratch for every pass.
type NormalizedSources struct {
	holidayByDate            map[string]attendance.Holiday
	leaveByEmployeeDate      map[employeeDateKey]leaveEntry
	attendanceByEmployeeDate map[employeeDateKey]attendance.AttendanceRecord

	Conflicts []attendance.HolidayConflict
	Skipped   attendance.SkippedRecords
}

// NormalizeSources expands holidays and approved leaves into per-date tables
// scoped to the calendar, and indexes attendance records by employee and date.
//
// Inputs are walked in slice order and the first entry for a key wins. For
// holidays every later entry covering an already-taken date is reported as a
// conflict. Records whose dates cannot be parsed, or whose range ends before it
// starts, are skipped.
func NormalizeSources(
	days []attendance.CalendarDay,
	holidays []attendance.Holiday,
	leaves []attendance.LeaveRequest,
	records []attendance.AttendanceRecord,
) *NormalizedSources {
	src := &NormalizedSources{
		holidayByDate:            make(map[string]attendance.Holiday),
		leaveByEmployeeDate:      make(map[employeeDateKey]leaveEntry),
		attendanceByEmployeeDate: make(map[employeeDateKey]attendance.AttendanceRecord),
		Conflicts:                []attendance.HolidayConflict{},
	}
	monthStart, monthEnd := monthBounds(days)
	if len(days) == 0 {
		return src
	}

	for _, h := range holidays {
		start, end, ok := parseRange(h.StartDate, h.EndDate)
		if !ok {
			src.Skipped.Holidays++
			continue
		}
		eachDate(start, end, monthStart, monthEnd, func(key string) {
			if kept, taken := src.holidayByDate[key]; taken {
				src.Conflicts = append(src.Conflicts, attendance.HolidayConflict{
					DateKey:   key,
					KeptID:    kept.ID,
					DroppedID: h.ID,
				})
				return
			}
			src.holidayByDate[key] = h
		})
	}

	for _, l := range leaves {
		// only approved leaves apply; others are never expanded
		if l.Status != attendance.LeaveRequestStatusApproved {
			continue
		}
		start, end, ok := parseRange(l.StartDate, l.EndDate)
		if !ok {
			src.Skipped.Leaves++
			continue
		}
		eachDate(start, end, monthStart, monthEnd, func(key string) {
			k := employeeDateKey{employeeID: l.EmployeeID, dateKey: key}
			if _, taken := src.leaveByEmployeeDate[k]; taken {
				return
			}
			src.leaveByEmployeeDate[k] = leaveEntry{leaveID: l.ID, isHalfDay: l.IsHalfDay}
		})
	}

	for _, r := range records {
		date, ok := parseDate(r.Date)
		if !ok {
			src.Skipped.Attendance++
			continue
		}
		k := employeeDateKey{employeeID: r.EmployeeID, dateKey: date.Format(dateKeyLayout)}
		if _, taken := src.attendanceByEmployeeDate[k]; taken {
			continue
		}
		src.attendanceByEmployeeDate[k] = r
	}

	return src
}

// HolidayOn returns the holiday covering dateKey, if any.
func (s *NormalizedSources) HolidayOn(dateKey string) (attendance.Holiday, bool) {
	h, ok := s.holidayByDate[dateKey]
	return h, ok
}

// LeaveOn reports whether the employee has approved leave on dateKey, and if it is a half day.
func (s *NormalizedSources) LeaveOn(employeeID, dateKey string) (isHalfDay bool, ok bool) {
	e, ok := s.leaveByEmployeeDate[employeeDateKey{employeeID: employeeID, dateKey: dateKey}]
	return e.isHalfDay, ok
}

// AttendanceOn returns the employee's attendance record for dateKey, if any.
func (s *NormalizedSources) AttendanceOn(employeeID, dateKey string) (attendance.AttendanceRecord, bool) {
	r, ok := s.attendanceByEmployeeDate[employeeDateKey{employeeID: employeeID, dateKey: dateKey}]
	return r, ok
}

func parseRange(startStr, endStr string) (time.Time, time.Time, bool) {
	start, ok := parseDate(startStr)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	end, ok := parseDate(endStr)
	if !ok || end.Before(start) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// eachDate calls fn for every date in [start, end] clipped to [lo, hi].
func eachDate(start, end, lo, hi time.Time, fn func(dateKey string)) {
	if start.Before(lo) {
		start = lo
	}
	if end.After(hi) {
		end = hi
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d.Format(dateKeyLayout))
	}
}
