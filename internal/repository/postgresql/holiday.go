package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/database"
)

type holidayRepository struct {
	db database.Querier
}

// ListOverlapping implements attendance.HolidayRepository. Rows with a NULL
// company_id are national holidays and apply to every company.
func (h *holidayRepository) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]attendance.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, name, start_date, end_date, leave_type
		FROM holidays
		WHERE (company_id = $1 OR company_id IS NULL)
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date ASC, id ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query holidays: %w", err)
	}
	defer rows.Close()

	holidays := make([]attendance.Holiday, 0)
	for rows.Next() {
		var (
			hol       attendance.Holiday
			startDate time.Time
			endDate   time.Time
			leaveType string
		)
		if err := rows.Scan(&hol.ID, &hol.Name, &startDate, &endDate, &leaveType); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		hol.StartDate = startDate.Format(dateLayout)
		hol.EndDate = endDate.Format(dateLayout)
		hol.LeaveType = attendance.HolidayLeaveType(leaveType)
		holidays = append(holidays, hol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db database.Querier) attendance.HolidayRepository {
	return &holidayRepository{db: db}
}
