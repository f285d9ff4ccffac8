package domain

// Flow distinguishes the two duty schedulers: lunchtime jobs and
// before/after-camp ("AM/PM") jobs.
type Flow string

const (
	FlowLunch Flow = "lunch"
	FlowAMPM  Flow = "ampm"
)

func (f Flow) Valid() bool {
	return f == FlowLunch || f == FlowAMPM
}

// WorkDays returns the default scheduled work days for a flow, in order.
// Lunchtime duty runs Monday through Thursday, AM/PM duty through Friday.
func (f Flow) WorkDays() []string {
	if f == FlowAMPM {
		return []string{"monday", "tuesday", "wednesday", "thursday", "friday"}
	}
	return []string{"monday", "tuesday", "wednesday", "thursday"}
}

// Well-known job codes from the camp job catalog.
const (
	JobCodeArtsAndCrafts = "A&C"
	JobCodeCardTrading   = "CT"
	JobCodeStaffGames    = "SG"
	JobCodeMulti         = "MULTI"
)

type Job struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        Flow   `json:"type"`
	// Staffing thresholds are optional in the catalog; the capacity
	// validator applies the documented fallbacks when they are nil.
	MinStaff    *int32 `json:"minStaff"`
	NormalStaff *int32 `json:"normalStaff"`
	MaxStaff    *int32 `json:"maxStaff"`
	Priority    int32  `json:"priority"`
}
