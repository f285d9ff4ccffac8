package engine

import (
	"slices"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// Effective is the resolved configuration for one week after applying the
// session/week override rules. All slices are freshly allocated; callers
// may keep them.
type Effective struct {
	Pools         map[domain.PoolType]domain.DutyPool
	AllDays       []domain.CategoryAssignment
	SpecificDays  []domain.CategoryAssignment
	Exclusions    []int64
	AdhocStaff    []domain.StaffRef
	StaffGameDays []string
	TieDyeDays    []string
	TieDyeStaff   []int64
}

// Resolve merges a week's raw edits with the session defaults:
//
//   - Duty pools: a non-empty week pool fully overrides the session pool;
//     an empty week pool falls back to the session pool only when the week
//     opted into session defaults, otherwise it stays empty.
//   - Custom assignments: merged, session defaults first (when opted in),
//     then the week's own. Both contribute, never one replacing the other.
//   - Exclusions: always the union of session and week exclusions.
//   - Ad-hoc staff: always session list then week list.
//
// Inputs are treated as already-validated in-memory data; Resolve never
// fails and never mutates its arguments.
func Resolve(defaults domain.SessionDefaults, week domain.WeekConfig) Effective {
	eff := Effective{
		Pools:         make(map[domain.PoolType]domain.DutyPool, 2),
		StaffGameDays: slices.Clone(week.StaffGameDays),
		TieDyeDays:    slices.Clone(week.TieDyeDays),
		TieDyeStaff:   slices.Clone(week.TieDyeStaff),
	}

	for _, pool := range []domain.PoolType{domain.PoolArtsAndCrafts, domain.PoolCardTrading} {
		switch {
		case len(week.Pools[pool]) > 0:
			eff.Pools[pool] = slices.Clone(week.Pools[pool])
		case week.UseSessionDefaults:
			eff.Pools[pool] = slices.Clone(defaults.Pools[pool])
		default:
			eff.Pools[pool] = domain.DutyPool{}
		}
	}

	merged := make([]domain.CategoryAssignment, 0, len(defaults.Assignments)+len(week.Assignments))
	if week.UseSessionDefaults {
		merged = append(merged, defaults.Assignments...)
	}
	merged = append(merged, week.Assignments...)
	for _, a := range merged {
		if a.Day == "" {
			eff.AllDays = append(eff.AllDays, a)
		} else {
			eff.SpecificDays = append(eff.SpecificDays, a)
		}
	}

	eff.Exclusions = unionInt64(defaults.Exclusions, week.Exclusions)

	eff.AdhocStaff = make([]domain.StaffRef, 0, len(defaults.AdhocStaff)+len(week.AdhocStaff))
	eff.AdhocStaff = append(eff.AdhocStaff, defaults.AdhocStaff...)
	eff.AdhocStaff = append(eff.AdhocStaff, week.AdhocStaff...)

	return eff
}

// unionInt64 returns the sorted union of a and b.
func unionInt64(a, b []int64) []int64 {
	seen := make(map[int64]bool, len(a)+len(b))
	union := make([]int64, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			union = append(union, id)
		}
	}
	slices.Sort(union)
	return union
}
