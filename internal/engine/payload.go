package engine

import (
	"fmt"
	"slices"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

// poolJobCodes maps each duty pool to the job it feeds in the catalog.
var poolJobCodes = map[domain.PoolType]string{
	domain.PoolArtsAndCrafts: domain.JobCodeArtsAndCrafts,
	domain.PoolCardTrading:   domain.JobCodeCardTrading,
}

// PoolJobCode returns the catalog job code a duty pool feeds.
func PoolJobCode(pool domain.PoolType) (string, bool) {
	code, ok := poolJobCodes[pool]
	return code, ok
}

// JobAssignments groups the all-days staff for a single job.
type JobAssignments struct {
	JobID    int64   `json:"jobId"`
	StaffIDs []int64 `json:"staffIds"`
}

// DayAssignment is a specific-day staff-to-job pairing on the wire.
type DayAssignment struct {
	StaffID int64  `json:"staffId"`
	JobID   int64  `json:"jobId"`
	Day     string `json:"day"`
}

// WeekPayload is the request object the execution service expects for one
// week, see CompileWeek.
type WeekPayload struct {
	SessionID     int64             `json:"sessionId"`
	Week          int               `json:"week"`
	Exclusions    []int64           `json:"exclusions"`
	AdhocStaff    []domain.StaffRef `json:"adhocStaff"`
	AllDays       []JobAssignments  `json:"allDayAssignments"`
	SpecificDays  []DayAssignment   `json:"dayAssignments"`
	StaffGameDays []string          `json:"staffGameDays"`
	TieDyeDays    []string          `json:"tieDyeDays"`
	TieDyeStaff   []int64           `json:"tieDyeStaff"`
	Debug         bool              `json:"debug"`
	Verbose       bool              `json:"verbose"`
}

// BatchPayload is one generation request: all weeks of a session, keyed by
// session id and an ordered list of day names.
type BatchPayload struct {
	SessionID int64         `json:"sessionId"`
	Days      []string      `json:"days"`
	Weeks     []WeekPayload `json:"weeks"`
}

// CompileOptions carries passthrough flags for the execution service.
type CompileOptions struct {
	Debug   bool
	Verbose bool
}

// CompileWeek resolves one week against the session defaults and
// serializes it into the wire format. Effective duty-pool members are
// injected as all-days assignments to the pool's job, resolved by job
// code. Compiling is a pure function of (defaults, week); it mutates
// neither.
func CompileWeek(sessionID int64, defaults domain.SessionDefaults, week domain.WeekConfig, jobsByCode map[string]*domain.Job, opts CompileOptions) (WeekPayload, error) {
	eff := Resolve(defaults, week)

	allDays := slices.Clone(eff.AllDays)
	for pool, code := range poolJobCodes {
		if len(eff.Pools[pool]) == 0 {
			continue
		}
		job, ok := jobsByCode[code]
		if !ok {
			return WeekPayload{}, fmt.Errorf("job code %q not found in the job catalog", code)
		}
		for _, staffID := range eff.Pools[pool] {
			allDays = append(allDays, domain.CategoryAssignment{StaffID: staffID, JobID: job.ID})
		}
	}

	payload := WeekPayload{
		SessionID:     sessionID,
		Week:          week.WeekNumber,
		Exclusions:    eff.Exclusions,
		AdhocStaff:    eff.AdhocStaff,
		AllDays:       groupByJob(allDays),
		SpecificDays:  make([]DayAssignment, 0, len(eff.SpecificDays)),
		StaffGameDays: eff.StaffGameDays,
		TieDyeDays:    eff.TieDyeDays,
		TieDyeStaff:   eff.TieDyeStaff,
		Debug:         opts.Debug,
		Verbose:       opts.Verbose,
	}
	for _, a := range eff.SpecificDays {
		payload.SpecificDays = append(payload.SpecificDays, DayAssignment{
			StaffID: a.StaffID,
			JobID:   a.JobID,
			Day:     a.Day,
		})
	}

	return payload, nil
}

// CompileBatch compiles every week of a workspace into one batch request.
func CompileBatch(ws domain.Workspace, jobs []*domain.Job, opts CompileOptions) (BatchPayload, error) {
	jobsByCode := make(map[string]*domain.Job, len(jobs))
	for _, job := range jobs {
		jobsByCode[job.Code] = job
	}

	batch := BatchPayload{
		SessionID: ws.SessionID,
		Days:      ws.Flow.WorkDays(),
		Weeks:     make([]WeekPayload, 0, len(ws.WeekConfigs)),
	}
	for _, week := range ws.WeekConfigs {
		payload, err := CompileWeek(ws.SessionID, ws.SessionDefaults, week, jobsByCode, opts)
		if err != nil {
			return BatchPayload{}, err
		}
		batch.Weeks = append(batch.Weeks, payload)
	}

	return batch, nil
}

// groupByJob collects all-days pairs into per-job deduplicated staff
// lists, sorted for deterministic output.
func groupByJob(assignments []domain.CategoryAssignment) []JobAssignments {
	byJob := make(map[int64][]int64)
	seen := make(map[int64]map[int64]bool)
	for _, a := range assignments {
		if seen[a.JobID] == nil {
			seen[a.JobID] = make(map[int64]bool)
		}
		if seen[a.JobID][a.StaffID] {
			continue
		}
		seen[a.JobID][a.StaffID] = true
		byJob[a.JobID] = append(byJob[a.JobID], a.StaffID)
	}

	grouped := make([]JobAssignments, 0, len(byJob))
	for jobID, staffIDs := range byJob {
		slices.Sort(staffIDs)
		grouped = append(grouped, JobAssignments{JobID: jobID, StaffIDs: staffIDs})
	}
	slices.SortFunc(grouped, func(a, b JobAssignments) int {
		return int(a.JobID - b.JobID)
	})
	return grouped
}
