package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/metrics"
)

// SnapshotRunner runs fn so that every read inside it sees the same data.
type SnapshotRunner interface {
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

var _ attendance.GridService = (*GridServiceImpl)(nil)

type GridServiceImpl struct {
	snapshot       SnapshotRunner
	rosterRepo     attendance.RosterRepository
	attendanceRepo attendance.AttendanceRecordRepository
	holidayRepo    attendance.HolidayRepository
	leaveRepo      attendance.LeaveRequestRepository
	cache          *GridCache
	metrics        *metrics.Metrics
	weeklyOff      time.Weekday
	now            func() time.Time
}

func NewGridService(
	snapshot SnapshotRunner,
	rosterRepo attendance.RosterRepository,
	attendanceRepo attendance.AttendanceRecordRepository,
	holidayRepo attendance.HolidayRepository,
	leaveRepo attendance.LeaveRequestRepository,
	cache *GridCache,
	gridMetrics *metrics.Metrics,
	weeklyOff time.Weekday,
) *GridServiceImpl {
	return &GridServiceImpl{
		snapshot:       snapshot,
		rosterRepo:     rosterRepo,
		attendanceRepo: attendanceRepo,
		holidayRepo:    holidayRepo,
		leaveRepo:      leaveRepo,
		cache:          cache,
		metrics:        gridMetrics,
		weeklyOff:      weeklyOff,
		now:            time.Now,
	}
}

// GetAttendanceGrid implements attendance.GridService.
func (s *GridServiceImpl) GetAttendanceGrid(ctx context.Context, req attendance.GridRequest) (attendance.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GridResponse{}, err
	}
	year, month := s.period(req.Year, req.Month)

	days, err := GenerateCalendar(year, month)
	if err != nil {
		return attendance.GridResponse{}, err
	}
	start, end := monthBounds(days)

	in := GridInput{Year: year, Month: month, WeeklyOff: s.weeklyOff}
	err = s.readSnapshot(ctx, func(ctx context.Context) error {
		var err error
		if in.Roster, err = s.rosterRepo.ListRoster(ctx, req.CompanyID); err != nil {
			return fmt.Errorf("failed to get roster: %w", err)
		}
		if in.Attendance, err = s.attendanceRepo.ListByPeriod(ctx, req.CompanyID, start, end); err != nil {
			return fmt.Errorf("failed to get attendance records: %w", err)
		}
		if in.Holidays, err = s.holidayRepo.ListOverlapping(ctx, req.CompanyID, start, end); err != nil {
			return fmt.Errorf("failed to get holidays: %w", err)
		}
		if in.Leaves, err = s.leaveRepo.ListOverlapping(ctx, req.CompanyID, start, end); err != nil {
			return fmt.Errorf("failed to get leave requests: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.GridResponse{}, err
	}

	result, err := s.compute(ctx, "database", in)
	if err != nil {
		return attendance.GridResponse{}, err
	}

	slog.DebugContext(ctx, "Attendance grid computed",
		"company_id", req.CompanyID,
		"period", fmt.Sprintf("%04d-%02d", year, month),
		"employees", len(result.Rows),
	)
	return s.buildResponse(in, result), nil
}

// ComputeFromSnapshot implements attendance.GridService.
func (s *GridServiceImpl) ComputeFromSnapshot(ctx context.Context, req attendance.ComputeGridRequest) (attendance.GridResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.GridResponse{}, err
	}
	year, month := s.period(req.Year, req.Month)

	weeklyOff := s.weeklyOff
	if req.WeeklyOff != "" {
		d, err := attendance.ParseWeekday(req.WeeklyOff)
		if err != nil {
			return attendance.GridResponse{}, err
		}
		weeklyOff = d
	}

	in := GridInput{
		Roster:     req.Employees(),
		Attendance: req.Attendance,
		Holidays:   req.Holidays,
		Leaves:     req.Leaves,
		Year:       year,
		Month:      month,
		WeeklyOff:  weeklyOff,
	}

	result, err := s.compute(ctx, "snapshot", in)
	if err != nil {
		return attendance.GridResponse{}, err
	}
	return s.buildResponse(in, result), nil
}

// SweepCache drops expired memoized grids. It is registered as a cron job.
func (s *GridServiceImpl) SweepCache(ctx context.Context) error {
	removed := s.cache.Sweep()
	s.metrics.CacheEvicted(removed)
	if removed > 0 {
		slog.DebugContext(ctx, "Grid cache swept", "removed", removed, "remaining", s.cache.Len())
	}
	return nil
}

func (s *GridServiceImpl) compute(ctx context.Context, source string, in GridInput) (GridResult, error) {
	var key string
	if s.cache.enabled() {
		k, err := CacheKey(in)
		if err != nil {
			slog.WarnContext(ctx, "Grid cache key failed, computing without cache", "error", err)
		} else {
			key = k
			if cached, ok := s.cache.Get(key); ok {
				s.metrics.CacheHit()
				s.report(ctx, in, cached.Diagnostics)
				return cached, nil
			}
			s.metrics.CacheMiss()
		}
	}

	start := time.Now()
	result, err := ComputeAttendanceGrid(in)
	s.metrics.GridComputed(source, time.Since(start), len(result.Rows), err)
	if err != nil {
		return GridResult{}, err
	}

	s.report(ctx, in, result.Diagnostics)
	if key != "" {
		s.metrics.CacheEvicted(s.cache.Put(key, result))
	}
	return result, nil
}

// report surfaces data-quality findings to operators for every grid served,
// cached or not. They never fail the request.
func (s *GridServiceImpl) report(ctx context.Context, in GridInput, d attendance.Diagnostics) {
	period := fmt.Sprintf("%04d-%02d", in.Year, in.Month)
	for _, c := range d.HolidayConflicts {
		slog.WarnContext(ctx, "Overlapping holidays, keeping first",
			"period", period,
			"date", c.DateKey,
			"kept_holiday_id", c.KeptID,
			"dropped_holiday_id", c.DroppedID,
		)
	}
	if d.Skipped.Total() > 0 {
		slog.WarnContext(ctx, "Skipped records with unusable dates",
			"period", period,
			"attendance", d.Skipped.Attendance,
			"holidays", d.Skipped.Holidays,
			"leaves", d.Skipped.Leaves,
		)
	}
	s.metrics.HolidayConflicts(len(d.HolidayConflicts))
	s.metrics.SkippedRecords("attendance", d.Skipped.Attendance)
	s.metrics.SkippedRecords("holidays", d.Skipped.Holidays)
	s.metrics.SkippedRecords("leaves", d.Skipped.Leaves)
}

func (s *GridServiceImpl) readSnapshot(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.snapshot == nil {
		return fn(ctx)
	}
	return s.snapshot.WithinReadOnly(ctx, fn)
}

// period defaults an unspecified month to the current one.
func (s *GridServiceImpl) period(year, month int) (int, int) {
	if year == 0 && month == 0 {
		now := s.now()
		return now.Year(), int(now.Month())
	}
	return year, month
}

func (s *GridServiceImpl) buildResponse(in GridInput, result GridResult) attendance.GridResponse {
	periodStart := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)

	return attendance.GridResponse{
		PeriodYear:  in.Year,
		PeriodMonth: in.Month,
		PeriodStart: periodStart.Format(dateKeyLayout),
		PeriodEnd:   periodEnd.Format(dateKeyLayout),
		GeneratedAt: s.now().Format(time.RFC3339),
		WeeklyOff:   in.WeeklyOff.String(),
		Days:        result.Days,
		Rows:        result.Rows,
		Summary:     Summarize(result.Rows),
		Legend:      attendance.Legend(),
		Diagnostics: result.Diagnostics,
	}
}
