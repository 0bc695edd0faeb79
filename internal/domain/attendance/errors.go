package attendance

import "errors"

// Attendance grid domain errors
var (
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrInvalidYear       = errors.New("year must be between 1 and 9999")
	ErrInvalidWeeklyOff  = errors.New("weekly off day must be a weekday name")
	ErrCompanyIDRequired = errors.New("company_id is required")
)
