package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/database"
)

type leaveRequestRepository struct {
	db database.Querier
}

// ListOverlapping implements attendance.LeaveRequestRepository.
func (r *leaveRequestRepository) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]attendance.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.employee_id, lr.start_date, lr.end_date, lr.status, lr.duration_type
		FROM leave_requests lr
		INNER JOIN employees e ON lr.employee_id = e.id
		WHERE e.company_id = $1
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
		ORDER BY lr.start_date ASC, lr.id ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	requests := make([]attendance.LeaveRequest, 0)
	for rows.Next() {
		var (
			lr           attendance.LeaveRequest
			startDate    time.Time
			endDate      time.Time
			status       string
			durationType string
		)
		if err := rows.Scan(&lr.ID, &lr.EmployeeID, &startDate, &endDate, &status, &durationType); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		lr.StartDate = startDate.Format(dateLayout)
		lr.EndDate = endDate.Format(dateLayout)
		lr.Status = mapLeaveStatus(status)
		lr.IsHalfDay = durationType != "full_day"
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}

	return requests, nil
}

// mapLeaveStatus folds the leave workflow states into the three the grid knows.
func mapLeaveStatus(status string) attendance.LeaveRequestStatus {
	switch status {
	case "approved":
		return attendance.LeaveRequestStatusApproved
	case "waiting_approval":
		return attendance.LeaveRequestStatusPending
	default:
		return attendance.LeaveRequestStatusRejected
	}
}

func NewLeaveRequestRepository(db database.Querier) attendance.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}
