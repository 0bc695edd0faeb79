package attendance

import (
	"fmt"
	"math"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
)

// CalculateMetrics reduces one employee's statuses for the month into presence metrics.
// Weekends and holidays are not working days; Present and HalfDay count as present.
func CalculateMetrics(statuses []attendance.DayStatus) attendance.Metrics {
	var m attendance.Metrics
	for _, s := range statuses {
		if s.IsWorkingDay() {
			m.TotalWorkingDays++
		}
		if s.CountsAsPresent() {
			m.PresentDays++
		}
	}

	if m.TotalWorkingDays == 0 {
		m.Ratio = "0/0"
		return m
	}

	m.Ratio = fmt.Sprintf("%d/%d", m.PresentDays, m.TotalWorkingDays)
	m.Percentage = int(math.Round(float64(m.PresentDays) / float64(m.TotalWorkingDays) * 100))
	return m
}
