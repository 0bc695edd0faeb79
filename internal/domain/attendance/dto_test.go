package attendance

import (
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeGridRequest_WeeklyOffIgnoresCase(t *testing.T) {
	for _, name := range []string{"Saturday", "saturday", "SATURDAY", " Saturday "} {
		req := ComputeGridRequest{Year: 2024, Month: 1, WeeklyOff: name}
		assert.NoError(t, req.Validate(), name)

		d, err := ParseWeekday(name)
		require.NoError(t, err)
		assert.Equal(t, time.Saturday, d)
	}
}

func TestComputeGridRequest_Validate(t *testing.T) {
	cases := []struct {
		name   string
		req    ComputeGridRequest
		fields []string
	}{
		{"unknown weekly off", ComputeGridRequest{Year: 2024, Month: 1, WeeklyOff: "Funday"}, []string{"weekly_off"}},
		{"month out of range", ComputeGridRequest{Year: 2024, Month: 13}, []string{"month"}},
		{"year without month", ComputeGridRequest{Year: 2024}, []string{"month"}},
		{"roster id and weekly off", ComputeGridRequest{Roster: []RosterEntry{{DisplayName: "x"}}, WeeklyOff: "x"}, []string{"roster[0].id", "weekly_off"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()

			var errs validator.ValidationErrors
			require.True(t, errors.As(err, &errs), "got %v", err)
			details := errs.ToMap()
			for _, f := range c.fields {
				assert.Contains(t, details, f)
			}
			assert.Len(t, details, len(c.fields))
		})
	}

	current := ComputeGridRequest{}
	assert.NoError(t, current.Validate())
}
