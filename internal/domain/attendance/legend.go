package attendance

type LegendCategory string

const (
	LegendCategoryPositive LegendCategory = "positive"
	LegendCategoryPartial  LegendCategory = "partial"
	LegendCategoryNegative LegendCategory = "negative"
	LegendCategoryExcused  LegendCategory = "excused"
	LegendCategoryOff      LegendCategory = "off"
	LegendCategoryWarning  LegendCategory = "warning"
)

// LegendEntry maps a status, or the late marker, to its display code.
type LegendEntry struct {
	Status   *DayStatus     `json:"status,omitempty"`
	Marker   string         `json:"marker,omitempty"`
	Code     string         `json:"code"`
	Label    string         `json:"label"`
	Category LegendCategory `json:"category"`
	Color    string         `json:"color"`
}

// LateMarkerCode is shown next to a present or half-day cell whose punch was late.
// It must never collide with the Leave code.
const LateMarkerCode = "LT"

var legendByStatus = map[DayStatus]LegendEntry{
	DayStatusPresent:       {Code: "P", Label: "Present", Category: LegendCategoryPositive, Color: "#16a34a"},
	DayStatusHalfDay:       {Code: "HD", Label: "Half Day", Category: LegendCategoryPartial, Color: "#ca8a04"},
	DayStatusAbsent:        {Code: "A", Label: "Absent", Category: LegendCategoryNegative, Color: "#dc2626"},
	DayStatusLeave:         {Code: "L", Label: "Leave", Category: LegendCategoryExcused, Color: "#2563eb"},
	DayStatusPaidHoliday:   {Code: "PH", Label: "Paid Holiday", Category: LegendCategoryOff, Color: "#7c3aed"},
	DayStatusUnpaidHoliday: {Code: "UH", Label: "Unpaid Holiday", Category: LegendCategoryOff, Color: "#a855f7"},
	DayStatusWeekend:       {Code: "WO", Label: "Weekly Off", Category: LegendCategoryOff, Color: "#6b7280"},
}

// Legend returns the display legend in a fixed order, statuses first and the late marker last.
func Legend() []LegendEntry {
	entries := make([]LegendEntry, 0, len(AllDayStatuses)+1)
	for _, status := range AllDayStatuses {
		entry := legendByStatus[status]
		s := status
		entry.Status = &s
		entries = append(entries, entry)
	}
	entries = append(entries, LegendEntry{
		Marker:   "late",
		Code:     LateMarkerCode,
		Label:    "Late",
		Category: LegendCategoryWarning,
		Color:    "#ea580c",
	})
	return entries
}

// Code returns the display code of a status, or an empty string for unknown values.
func (s DayStatus) Code() string {
	return legendByStatus[s].Code
}
