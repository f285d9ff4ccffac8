// Package workspace implements the Category Store for one (session, flow)
// configuration run. Every edit takes a Workspace by value and returns a
// new one, so snapshots can be serialized, replayed and diffed without
// shared mutation.
package workspace

import (
	"errors"
	"fmt"
	"slices"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
)

// SessionScope addresses the session defaults instead of a week config in
// edits that accept a week number.
const SessionScope = 0

// firstAdhocID is where the ad-hoc id counter starts; well above any
// directory staff id so synthetic ids are recognizable.
const firstAdhocID = 9000001

var (
	ErrWeekOutOfRange = errors.New("week number out of range")
	ErrPoolFull       = fmt.Errorf("duty pool already has %d members", domain.MaxPoolSize)
	ErrDuplicateEntry = errors.New("entry already present in this category")
	ErrOverCapacity   = errors.New("job is at maximum capacity; set the capacity override to add anyway")
)

// New creates an empty workspace for a freshly selected session.
func New(sessionID int64, flow domain.Flow, weeks int) domain.Workspace {
	ws := domain.Workspace{
		SessionID:     sessionID,
		Flow:          flow,
		NumberOfWeeks: weeks,
		SessionDefaults: domain.SessionDefaults{
			Pools: map[domain.PoolType]domain.DutyPool{},
		},
		WeekConfigs: make([]domain.WeekConfig, 0, weeks),
		NextAdhocID: firstAdhocID,
	}
	for i := 1; i <= weeks; i++ {
		ws.WeekConfigs = append(ws.WeekConfigs, newWeekConfig(i))
	}
	return ws
}

func newWeekConfig(number int) domain.WeekConfig {
	return domain.WeekConfig{
		WeekNumber:         number,
		UseSessionDefaults: true,
		Pools:              map[domain.PoolType]domain.DutyPool{},
	}
}

// clone deep-copies a workspace so edits never alias the input's slices.
func clone(ws domain.Workspace) domain.Workspace {
	out := ws
	out.SessionDefaults = cloneDefaults(ws.SessionDefaults)
	out.WeekConfigs = make([]domain.WeekConfig, len(ws.WeekConfigs))
	for i, week := range ws.WeekConfigs {
		out.WeekConfigs[i] = cloneWeek(week)
	}
	if ws.CapacityOverrides != nil {
		out.CapacityOverrides = make(map[int64]bool, len(ws.CapacityOverrides))
		for jobID, v := range ws.CapacityOverrides {
			out.CapacityOverrides[jobID] = v
		}
	}
	return out
}

func clonePools(pools map[domain.PoolType]domain.DutyPool) map[domain.PoolType]domain.DutyPool {
	out := make(map[domain.PoolType]domain.DutyPool, len(pools))
	for pool, members := range pools {
		out[pool] = slices.Clone(members)
	}
	return out
}

func cloneDefaults(d domain.SessionDefaults) domain.SessionDefaults {
	return domain.SessionDefaults{
		Pools:       clonePools(d.Pools),
		Assignments: slices.Clone(d.Assignments),
		Exclusions:  slices.Clone(d.Exclusions),
		AdhocStaff:  slices.Clone(d.AdhocStaff),
	}
}

func cloneWeek(w domain.WeekConfig) domain.WeekConfig {
	out := w
	out.Pools = clonePools(w.Pools)
	out.Assignments = slices.Clone(w.Assignments)
	out.Exclusions = slices.Clone(w.Exclusions)
	out.AdhocStaff = slices.Clone(w.AdhocStaff)
	out.StaffGameDays = slices.Clone(w.StaffGameDays)
	out.TieDyeDays = slices.Clone(w.TieDyeDays)
	out.TieDyeStaff = slices.Clone(w.TieDyeStaff)
	return out
}

// scopeOf returns pointers into the cloned workspace for the requested
// scope: SessionScope for the session defaults, 1..N for a week.
func scopeOf(ws *domain.Workspace, week int) (pools *map[domain.PoolType]domain.DutyPool, assignments *[]domain.CategoryAssignment, exclusions *[]int64, adhoc *[]domain.StaffRef, err error) {
	if week == SessionScope {
		d := &ws.SessionDefaults
		return &d.Pools, &d.Assignments, &d.Exclusions, &d.AdhocStaff, nil
	}
	if week < 1 || week > len(ws.WeekConfigs) {
		return nil, nil, nil, nil, ErrWeekOutOfRange
	}
	w := &ws.WeekConfigs[week-1]
	return &w.Pools, &w.Assignments, &w.Exclusions, &w.AdhocStaff, nil
}

// AddPoolMember appends a staff member to a duty pool after the seat,
// duplicate and capacity checks. job is the catalog job the pool feeds;
// its thresholds drive the capacity validation.
func AddPoolMember(ws domain.Workspace, week int, pool domain.PoolType, staffID int64, job *domain.Job) (domain.Workspace, error) {
	out := clone(ws)
	pools, _, _, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	members := (*pools)[pool]
	if slices.Contains(members, staffID) {
		return ws, ErrDuplicateEntry
	}
	if len(members) >= domain.MaxPoolSize {
		return ws, ErrPoolFull
	}
	if job != nil {
		res := engine.CheckCapacity(job, len(members)+1, ws.CapacityOverrides[job.ID])
		if !res.Allowed {
			return ws, ErrOverCapacity
		}
	}

	(*pools)[pool] = append(members, staffID)
	return out, nil
}

func RemovePoolMember(ws domain.Workspace, week int, pool domain.PoolType, staffID int64) (domain.Workspace, error) {
	out := clone(ws)
	pools, _, _, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	members := (*pools)[pool]
	i := slices.Index(members, staffID)
	if i < 0 {
		return ws, fmt.Errorf("staff %d is not in this pool", staffID)
	}
	(*pools)[pool] = slices.Delete(members, i, i+1)
	return out, nil
}

// AddAssignment records a custom staff-to-job pairing. Custom categories
// are unbounded: no capacity check at add time, only a duplicate check.
func AddAssignment(ws domain.Workspace, week int, a domain.CategoryAssignment) (domain.Workspace, error) {
	out := clone(ws)
	_, assignments, _, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	if slices.Contains(*assignments, a) {
		return ws, ErrDuplicateEntry
	}
	*assignments = append(*assignments, a)
	return out, nil
}

func RemoveAssignment(ws domain.Workspace, week int, a domain.CategoryAssignment) (domain.Workspace, error) {
	out := clone(ws)
	_, assignments, _, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	i := slices.Index(*assignments, a)
	if i < 0 {
		return ws, errors.New("assignment not found")
	}
	*assignments = slices.Delete(*assignments, i, i+1)
	return out, nil
}

func AddExclusion(ws domain.Workspace, week int, staffID int64) (domain.Workspace, error) {
	out := clone(ws)
	_, _, exclusions, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	if slices.Contains(*exclusions, staffID) {
		return ws, ErrDuplicateEntry
	}
	*exclusions = append(*exclusions, staffID)
	return out, nil
}

func RemoveExclusion(ws domain.Workspace, week int, staffID int64) (domain.Workspace, error) {
	out := clone(ws)
	_, _, exclusions, _, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	i := slices.Index(*exclusions, staffID)
	if i < 0 {
		return ws, fmt.Errorf("staff %d is not excluded", staffID)
	}
	*exclusions = slices.Delete(*exclusions, i, i+1)
	return out, nil
}

// AddAdhocStaff mints a synthetic id for a staff record that is not in
// the directory and appends it to the requested scope. The minted record
// is returned alongside the new workspace.
func AddAdhocStaff(ws domain.Workspace, week int, staff domain.StaffRef) (domain.Workspace, domain.StaffRef, error) {
	out := clone(ws)
	_, _, _, adhoc, err := scopeOf(&out, week)
	if err != nil {
		return ws, domain.StaffRef{}, err
	}

	if staff.Name == "" {
		return ws, domain.StaffRef{}, errors.New("ad-hoc staff name is required")
	}

	staff.StaffID = out.NextAdhocID
	out.NextAdhocID++
	*adhoc = append(*adhoc, staff)
	return out, staff, nil
}

func RemoveAdhocStaff(ws domain.Workspace, week int, staffID int64) (domain.Workspace, error) {
	out := clone(ws)
	_, _, _, adhoc, err := scopeOf(&out, week)
	if err != nil {
		return ws, err
	}

	i := slices.IndexFunc(*adhoc, func(s domain.StaffRef) bool { return s.StaffID == staffID })
	if i < 0 {
		return ws, fmt.Errorf("ad-hoc staff %d not found", staffID)
	}
	*adhoc = slices.Delete(*adhoc, i, i+1)
	return out, nil
}

func SetUseSessionDefaults(ws domain.Workspace, week int, use bool) (domain.Workspace, error) {
	if week < 1 || week > len(ws.WeekConfigs) {
		return ws, ErrWeekOutOfRange
	}
	out := clone(ws)
	out.WeekConfigs[week-1].UseSessionDefaults = use
	return out, nil
}

// SetWeekDays updates a week's declared day sets and tie-dye staff list.
func SetWeekDays(ws domain.Workspace, week int, staffGameDays, tieDyeDays []string, tieDyeStaff []int64) (domain.Workspace, error) {
	if week < 1 || week > len(ws.WeekConfigs) {
		return ws, ErrWeekOutOfRange
	}
	out := clone(ws)
	w := &out.WeekConfigs[week-1]
	w.StaffGameDays = slices.Clone(staffGameDays)
	w.TieDyeDays = slices.Clone(tieDyeDays)
	w.TieDyeStaff = slices.Clone(tieDyeStaff)
	return out, nil
}

func SetCapacityOverride(ws domain.Workspace, jobID int64, enabled bool) domain.Workspace {
	out := clone(ws)
	if out.CapacityOverrides == nil {
		out.CapacityOverrides = make(map[int64]bool, 1)
	}
	if enabled {
		out.CapacityOverrides[jobID] = true
	} else {
		delete(out.CapacityOverrides, jobID)
	}
	return out
}

// AddWeek appends an empty week config numbered N+1.
func AddWeek(ws domain.Workspace) domain.Workspace {
	out := clone(ws)
	out.WeekConfigs = append(out.WeekConfigs, newWeekConfig(len(out.WeekConfigs)+1))
	out.NumberOfWeeks = len(out.WeekConfigs)
	return out
}

// RemoveWeek drops a week and renumbers the remainder so week numbers
// stay contiguous 1..N.
func RemoveWeek(ws domain.Workspace, week int) (domain.Workspace, error) {
	if week < 1 || week > len(ws.WeekConfigs) {
		return ws, ErrWeekOutOfRange
	}
	out := clone(ws)
	out.WeekConfigs = slices.Delete(out.WeekConfigs, week-1, week)
	for i := range out.WeekConfigs {
		out.WeekConfigs[i].WeekNumber = i + 1
	}
	out.NumberOfWeeks = len(out.WeekConfigs)
	return out, nil
}

// EffectiveWeek resolves one week of the workspace.
func EffectiveWeek(ws domain.Workspace, week int) (engine.Effective, error) {
	if week < 1 || week > len(ws.WeekConfigs) {
		return engine.Effective{}, ErrWeekOutOfRange
	}
	return engine.Resolve(ws.SessionDefaults, ws.WeekConfigs[week-1]), nil
}

// StaffGameDays collects every week's declared staff game days, keyed by
// week number, for the result analyzer.
func StaffGameDays(ws domain.Workspace) map[int][]string {
	out := make(map[int][]string, len(ws.WeekConfigs))
	for _, week := range ws.WeekConfigs {
		if len(week.StaffGameDays) > 0 {
			out[week.WeekNumber] = slices.Clone(week.StaffGameDays)
		}
	}
	return out
}
