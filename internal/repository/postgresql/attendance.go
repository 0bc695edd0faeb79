package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/database"
)

const dateLayout = "2006-01-02"

type attendanceRepository struct {
	db database.Querier
}

// ListByPeriod implements attendance.AttendanceRecordRepository.
// Rejected punches are left out; late_minutes > 0 marks the record late.
func (a *attendanceRepository) ListByPeriod(ctx context.Context, companyID string, start, end time.Time) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.employee_id, a.date, a.is_half_day, COALESCE(a.late_minutes, 0) > 0
		FROM attendances a
		WHERE a.company_id = $1
		  AND a.date BETWEEN $2 AND $3
		  AND a.status <> 'rejected'
		ORDER BY a.date ASC, a.clock_in ASC NULLS LAST, a.id ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.AttendanceRecord, 0)
	for rows.Next() {
		var (
			rec  attendance.AttendanceRecord
			date time.Time
		)
		if err := rows.Scan(&rec.EmployeeID, &date, &rec.HalfDay, &rec.Late); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		rec.Date = date.Format(dateLayout)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRecordRepository {
	return &attendanceRepository{db: db}
}
