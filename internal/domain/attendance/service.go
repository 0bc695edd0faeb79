package attendance

import (
	"context"
)

// GridService builds the monthly attendance grid
type GridService interface {
	// GetAttendanceGrid loads the company's sources for the month and computes the grid
	GetAttendanceGrid(ctx context.Context, req GridRequest) (GridResponse, error)

	// ComputeFromSnapshot computes the grid from caller-supplied collections
	ComputeFromSnapshot(ctx context.Context, req ComputeGridRequest) (GridResponse, error)
}
