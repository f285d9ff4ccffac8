package domain

// PoolType identifies one of the fixed-capacity duty pools.
type PoolType string

const (
	PoolArtsAndCrafts PoolType = "artsAndCrafts"
	PoolCardTrading   PoolType = "cardTrading"
)

// MaxPoolSize is the seat count of every duty pool.
const MaxPoolSize = 2

// DutyPool is an ordered set of staff ids, at most MaxPoolSize long.
type DutyPool []int64

// CategoryAssignment is a custom staff-to-job pairing. An empty Day means
// the pairing applies to every scheduled work day.
type CategoryAssignment struct {
	StaffID int64  `json:"staffId"`
	JobID   int64  `json:"jobId"`
	Day     string `json:"day,omitempty"`
}

// SessionDefaults holds the session-wide raw edits for every assignment
// category. Week configs either inherit from it or override it, see the
// effective-value rules in the engine package.
type SessionDefaults struct {
	Pools       map[PoolType]DutyPool `json:"pools"`
	Assignments []CategoryAssignment  `json:"assignments"`
	Exclusions  []int64               `json:"exclusions"`
	AdhocStaff  []StaffRef            `json:"adhocStaff"`
}

// WeekConfig holds one week's raw edits. WeekNumber values are contiguous
// 1..N; removing a week renumbers the remainder.
type WeekConfig struct {
	WeekNumber         int                   `json:"weekNumber"`
	UseSessionDefaults bool                  `json:"useSessionDefaults"`
	Pools              map[PoolType]DutyPool `json:"pools"`
	Assignments        []CategoryAssignment  `json:"assignments"`
	Exclusions         []int64               `json:"exclusions"`
	AdhocStaff         []StaffRef            `json:"adhocStaff"`
	StaffGameDays      []string              `json:"staffGameDays"`
	TieDyeDays         []string              `json:"tieDyeDays"`
	TieDyeStaff        []int64               `json:"tieDyeStaff"`
}

// Workspace is the full configuration state for one (session, flow)
// scheduling run. It is a value type: every edit in the workspace package
// returns a new Workspace, never mutating the input.
type Workspace struct {
	SessionID       int64           `json:"sessionId"`
	Flow            Flow            `json:"flow"`
	NumberOfWeeks   int             `json:"numberOfWeeks"`
	SessionDefaults SessionDefaults `json:"sessionDefaults"`
	WeekConfigs     []WeekConfig    `json:"weekConfigs"`
	// CapacityOverrides marks jobs for which the user explicitly allowed
	// additions above max_staff.
	CapacityOverrides map[int64]bool `json:"capacityOverrides,omitempty"`
	// NextAdhocID mints ids for ad-hoc staff. Session-scoped and
	// monotonically increasing so ids never collide across edits.
	NextAdhocID int64 `json:"nextAdhocId"`
}
