package attendance

import (
	"math"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
)

// GridInput is everything one computation pass needs. Month is one-based.
type GridInput struct {
	Roster     []attendance.Employee         `json:"roster"`
	Attendance []attendance.AttendanceRecord `json:"attendance"`
	Holidays   []attendance.Holiday          `json:"holidays"`
	Leaves     []attendance.LeaveRequest     `json:"leaves"`
	Year       int                           `json:"year"`
	Month      int                           `json:"month"`
	WeeklyOff  time.Weekday                  `json:"weekly_off"`
}

// GridResult is the output of ComputeAttendanceGrid. Callers must treat it as read-only,
// since memoized results are shared.
type GridResult struct {
	Days        []attendance.CalendarDay
	Rows        []attendance.AttendanceRow
	Diagnostics attendance.Diagnostics
}

// ComputeAttendanceGrid runs the whole pipeline: calendar, normalization,
// resolution, metrics and assembly. Identical inputs give identical results.
func ComputeAttendanceGrid(in GridInput) (GridResult, error) {
	days, err := GenerateCalendar(in.Year, in.Month)
	if err != nil {
		return GridResult{}, err
	}

	src := NormalizeSources(days, in.Holidays, in.Leaves, in.Attendance)

	cells := make(map[employeeDateKey]attendance.AttendanceCell, len(in.Roster)*len(days))
	metrics := make(map[string]attendance.Metrics, len(in.Roster))
	for _, emp := range in.Roster {
		statuses := make([]attendance.DayStatus, 0, len(days))
		for _, day := range days {
			cell := ResolveCell(emp.ID, day, src, in.WeeklyOff)
			cells[employeeDateKey{employeeID: emp.ID, dateKey: day.DateKey}] = cell
			statuses = append(statuses, cell.Status)
		}
		metrics[emp.ID] = CalculateMetrics(statuses)
	}

	return GridResult{
		Days: days,
		Rows: AssembleGrid(in.Roster, days, cells, metrics),
		Diagnostics: attendance.Diagnostics{
			HolidayConflicts: src.Conflicts,
			Skipped:          src.Skipped,
		},
	}, nil
}

// AssembleGrid builds one row per roster employee in roster order, with cells in
// calendar order. A missing cell resolves to Absent so every row stays complete.
func AssembleGrid(
	roster []attendance.Employee,
	days []attendance.CalendarDay,
	cells map[employeeDateKey]attendance.AttendanceCell,
	metrics map[string]attendance.Metrics,
) []attendance.AttendanceRow {
	rows := make([]attendance.AttendanceRow, 0, len(roster))
	for _, emp := range roster {
		row := attendance.AttendanceRow{
			Employee: emp,
			Cells:    make([]attendance.AttendanceCell, 0, len(days)),
			Metrics:  metrics[emp.ID],
		}
		for _, day := range days {
			cell, ok := cells[employeeDateKey{employeeID: emp.ID, dateKey: day.DateKey}]
			if !ok {
				cell = attendance.AttendanceCell{EmployeeID: emp.ID, DateKey: day.DateKey, Status: attendance.DayStatusAbsent}
			}
			row.Cells = append(row.Cells, cell)
		}
		if row.Ratio == "" {
			row.Metrics = CalculateMetrics(statusesOf(row.Cells))
		}
		rows = append(rows, row)
	}
	return rows
}

// Summarize aggregates rows into grid-wide totals.
func Summarize(rows []attendance.AttendanceRow) attendance.GridSummary {
	summary := attendance.GridSummary{
		TotalEmployees: len(rows),
		StatusTotals:   make(map[attendance.DayStatus]int, len(attendance.AllDayStatuses)),
	}
	for _, status := range attendance.AllDayStatuses {
		summary.StatusTotals[status] = 0
	}
	if len(rows) == 0 {
		return summary
	}

	total := 0
	for _, row := range rows {
		total += row.Percentage
		for _, cell := range row.Cells {
			summary.StatusTotals[cell.Status]++
		}
	}
	summary.AveragePercentage = int(math.Round(float64(total) / float64(len(rows))))
	return summary
}

func statusesOf(cells []attendance.AttendanceCell) []attendance.DayStatus {
	statuses := make([]attendance.DayStatus, 0, len(cells))
	for _, c := range cells {
		statuses = append(statuses, c.Status)
	}
	return statuses
}
