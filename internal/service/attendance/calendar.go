package attendance

import (
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/validator"
)

const dateKeyLayout = "2006-01-02"

// GenerateCalendar returns every day of the month in order. Month is one-based.
func GenerateCalendar(year, month int) ([]attendance.CalendarDay, error) {
	var errs validator.ValidationErrors
	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: attendance.ErrInvalidMonth.Error()})
	}
	if year < 1 || year > 9999 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: attendance.ErrInvalidYear.Error()})
	}
	if len(errs) > 0 {
		return nil, errs
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]attendance.CalendarDay, 0, daysInMonth)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		days = append(days, attendance.CalendarDay{
			DayNumber:   d.Day(),
			DateKey:     d.Format(dateKeyLayout),
			WeekdayName: d.Weekday().String(),
			Weekday:     d.Weekday(),
		})
	}
	return days, nil
}

// parseDate accepts a plain date or an RFC3339 timestamp. For timestamps the
// calendar date in the timestamp's own offset is kept.
func parseDate(s string) (time.Time, bool) {
	if t, ok := validator.IsValidDate(s); ok {
		return t, true
	}
	if t, ok := validator.IsValidDateTime(s); ok {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// monthBounds returns the first and last day of the calendar.
func monthBounds(days []attendance.CalendarDay) (time.Time, time.Time) {
	if len(days) == 0 {
		return time.Time{}, time.Time{}
	}
	start, _ := time.Parse(dateKeyLayout, days[0].DateKey)
	end, _ := time.Parse(dateKeyLayout, days[len(days)-1].DateKey)
	return start, end
}
