// Package holidayfile serves holidays from a YAML calendar instead of the database.
package holidayfile

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// idNamespace seeds deterministic ids for entries that omit one.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("attendance-grid/holidays"))

type file struct {
	Holidays []entry `yaml:"holidays"`
}

type entry struct {
	ID        string `yaml:"id"`
	CompanyID string `yaml:"company_id"`
	Name      string `yaml:"name"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	LeaveType string `yaml:"leave_type"`
}

type holiday struct {
	attendance.Holiday
	companyID string
	start     time.Time
	end       time.Time
}

// Repository implements attendance.HolidayRepository over an in-memory calendar.
type Repository struct {
	holidays []holiday
}

var _ attendance.HolidayRepository = (*Repository)(nil)

// Load reads and validates the calendar at path.
func Load(path string) (*Repository, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("holidayfile: read file %s: %w", path, err)
	}
	return Parse(b)
}

// Parse validates a YAML calendar. Entries without company_id apply to every company;
// end_date defaults to start_date and leave_type to paid.
func Parse(data []byte) (*Repository, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("holidayfile: parse yaml: %w", err)
	}

	holidays := make([]holiday, 0, len(f.Holidays))
	for i, e := range f.Holidays {
		h, err := e.toHoliday()
		if err != nil {
			return nil, fmt.Errorf("holidayfile: holidays[%d]: %w", i, err)
		}
		holidays = append(holidays, h)
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		if !holidays[i].start.Equal(holidays[j].start) {
			return holidays[i].start.Before(holidays[j].start)
		}
		return holidays[i].ID < holidays[j].ID
	})

	return &Repository{holidays: holidays}, nil
}

func (e entry) toHoliday() (holiday, error) {
	if strings.TrimSpace(e.Name) == "" {
		return holiday{}, fmt.Errorf("name must be set")
	}

	start, err := time.Parse(dateLayout, e.StartDate)
	if err != nil {
		return holiday{}, fmt.Errorf("invalid start_date %q", e.StartDate)
	}
	end := start
	if e.EndDate != "" {
		if end, err = time.Parse(dateLayout, e.EndDate); err != nil {
			return holiday{}, fmt.Errorf("invalid end_date %q", e.EndDate)
		}
	}
	if end.Before(start) {
		return holiday{}, fmt.Errorf("end_date %s is before start_date %s", e.EndDate, e.StartDate)
	}

	leaveType := attendance.HolidayLeaveTypePaid
	switch attendance.HolidayLeaveType(strings.ToLower(e.LeaveType)) {
	case "", attendance.HolidayLeaveTypePaid:
	case attendance.HolidayLeaveTypeUnpaid:
		leaveType = attendance.HolidayLeaveTypeUnpaid
	default:
		return holiday{}, fmt.Errorf("leave_type must be paid or unpaid, got %q", e.LeaveType)
	}

	id := e.ID
	if id == "" {
		seed := strings.Join([]string{e.CompanyID, e.Name, start.Format(dateLayout), end.Format(dateLayout)}, "|")
		id = uuid.NewSHA1(idNamespace, []byte(seed)).String()
	}

	return holiday{
		Holiday: attendance.Holiday{
			ID:        id,
			Name:      e.Name,
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
			LeaveType: leaveType,
		},
		companyID: e.CompanyID,
		start:     start,
		end:       end,
	}, nil
}

// ListOverlapping implements attendance.HolidayRepository.
func (r *Repository) ListOverlapping(ctx context.Context, companyID string, start, end time.Time) ([]attendance.Holiday, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lo := truncateDate(start)
	hi := truncateDate(end)

	result := make([]attendance.Holiday, 0)
	for _, h := range r.holidays {
		if h.companyID != "" && h.companyID != companyID {
			continue
		}
		if h.start.After(hi) || h.end.Before(lo) {
			continue
		}
		result = append(result, h.Holiday)
	}
	return result, nil
}

// Len returns the number of holidays loaded.
func (r *Repository) Len() int {
	return len(r.holidays)
}

func truncateDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
