package attendance

// DayStatus is the single resolved status of an employee on a calendar day.
type DayStatus string

const (
	DayStatusPresent       DayStatus = "present"
	DayStatusAbsent        DayStatus = "absent"
	DayStatusLeave         DayStatus = "leave"
	DayStatusHalfDay       DayStatus = "half_day"
	DayStatusPaidHoliday   DayStatus = "paid_holiday"
	DayStatusUnpaidHoliday DayStatus = "unpaid_holiday"
	DayStatusWeekend       DayStatus = "weekend"
)

// AllDayStatuses lists every status in legend order.
var AllDayStatuses = []DayStatus{
	DayStatusPresent,
	DayStatusHalfDay,
	DayStatusAbsent,
	DayStatusLeave,
	DayStatusPaidHoliday,
	DayStatusUnpaidHoliday,
	DayStatusWeekend,
}

func (s DayStatus) IsValid() bool {
	for _, status := range AllDayStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsWorkingDay reports whether the day counts toward the working-day denominator.
func (s DayStatus) IsWorkingDay() bool {
	switch s {
	case DayStatusWeekend, DayStatusPaidHoliday, DayStatusUnpaidHoliday:
		return false
	}
	return true
}

// CountsAsPresent reports whether the day counts toward presence.
// Leave days, approved or not, never do.
func (s DayStatus) CountsAsPresent() bool {
	return s == DayStatusPresent || s == DayStatusHalfDay
}
