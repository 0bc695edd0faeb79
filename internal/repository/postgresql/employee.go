package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/database"
)

type rosterRepository struct {
	db database.Querier
}

// ListRoster implements attendance.RosterRepository.
func (r *rosterRepository) ListRoster(ctx context.Context, companyID string) ([]attendance.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, full_name, avatar_url
		FROM employees
		WHERE company_id = $1
		  AND employment_status = 'active'
		  AND deleted_at IS NULL
		ORDER BY full_name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster: %w", err)
	}
	defer rows.Close()

	employees := make([]attendance.Employee, 0)
	for rows.Next() {
		var e attendance.Employee
		if err := rows.Scan(&e.ID, &e.DisplayName, &e.AvatarURL); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate roster: %w", err)
	}

	return employees, nil
}

func NewRosterRepository(db database.Querier) attendance.RosterRepository {
	return &rosterRepository{db: db}
}
