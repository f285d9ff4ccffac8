package engine

import (
	"fmt"
	"slices"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

const (
	DeviationAbove = "above"
	DeviationBelow = "below"
)

// InstanceCount is the observed headcount for one (job, week, day)
// instance. Deviation is set when the count differs from the job's
// normal_staff target.
type InstanceCount struct {
	Week      int    `json:"week"`
	Day       string `json:"day"`
	Count     int    `json:"count"`
	Deviation string `json:"deviation,omitempty"`
	Delta     int    `json:"delta,omitempty"`
}

type JobReport struct {
	JobID     int64           `json:"jobId"`
	JobCode   string          `json:"jobCode"`
	JobName   string          `json:"jobName"`
	Target    int32           `json:"target"`
	Average   float64         `json:"average"`
	Instances []InstanceCount `json:"instances"`
}

type Analysis struct {
	Jobs          []JobReport                `json:"jobs"`
	GroupCoverage domain.GroupCoverageReport `json:"groupCoverage"`
}

// Analyze recomputes staffing diagnostics from a flat assignment result
// list: per-job per-(week, day) headcounts with deviations from the job's
// normal_staff target, and same-day same-group clustering. The Staff
// Games job is a scheduling placeholder, not a duty, and is excluded from
// both. Pure and stateless.
//
// groups maps group id to the full member staff id list for the session;
// staffGameDays maps week number to its declared staff game days; days is
// the flow's ordered work-day list, used only for output ordering.
func Analyze(results []domain.AssignmentResult, jobs []*domain.Job, groups map[int64][]int64, staffGameDays map[int][]string, days []string) Analysis {
	analysis := Analysis{
		Jobs: analyzeJobs(results, jobs, days),
	}
	analysis.GroupCoverage = analyzeGroupCoverage(results, groups, staffGameDays, days)
	return analysis
}

func analyzeJobs(results []domain.AssignmentResult, jobs []*domain.Job, days []string) []JobReport {
	type instanceKey struct {
		week int
		day  string
	}

	counts := make(map[int64]map[instanceKey]int)
	for _, row := range results {
		if row.JobCode == domain.JobCodeStaffGames {
			continue
		}
		if counts[row.JobID] == nil {
			counts[row.JobID] = make(map[instanceKey]int)
		}
		counts[row.JobID][instanceKey{week: row.Week, day: row.Day}]++
	}

	reports := make([]JobReport, 0, len(counts))
	for _, job := range jobs {
		instances, ok := counts[job.ID]
		if !ok {
			continue
		}

		target := int32(1)
		if job.NormalStaff != nil {
			target = *job.NormalStaff
		}

		report := JobReport{
			JobID:     job.ID,
			JobCode:   job.Code,
			JobName:   job.Name,
			Target:    target,
			Instances: make([]InstanceCount, 0, len(instances)),
		}

		total := 0
		for key, count := range instances {
			total += count
			instance := InstanceCount{Week: key.week, Day: key.day, Count: count}
			switch {
			case count > int(target):
				instance.Deviation = DeviationAbove
				instance.Delta = count - int(target)
			case count < int(target):
				instance.Deviation = DeviationBelow
				instance.Delta = int(target) - count
			}
			report.Instances = append(report.Instances, instance)
		}
		report.Average = float64(total) / float64(len(instances))

		slices.SortFunc(report.Instances, func(a, b InstanceCount) int {
			if a.Week != b.Week {
				return a.Week - b.Week
			}
			return dayIndex(days, a.Day) - dayIndex(days, b.Day)
		})

		reports = append(reports, report)
	}

	return reports
}

func analyzeGroupCoverage(results []domain.AssignmentResult, groups map[int64][]int64, staffGameDays map[int][]string, days []string) domain.GroupCoverageReport {
	type instanceKey struct {
		week int
		day  string
	}

	onDuty := make(map[instanceKey]map[int64]bool)
	for _, row := range results {
		if row.JobCode == domain.JobCodeStaffGames {
			continue
		}
		key := instanceKey{week: row.Week, day: row.Day}
		if onDuty[key] == nil {
			onDuty[key] = make(map[int64]bool)
		}
		onDuty[key][row.StaffID] = true
	}

	groupIDs := make([]int64, 0, len(groups))
	for groupID := range groups {
		groupIDs = append(groupIDs, groupID)
	}
	slices.Sort(groupIDs)

	keys := make([]instanceKey, 0, len(onDuty))
	for key := range onDuty {
		keys = append(keys, key)
	}
	slices.SortFunc(keys, func(a, b instanceKey) int {
		if a.week != b.week {
			return a.week - b.week
		}
		return dayIndex(days, a.day) - dayIndex(days, b.day)
	})

	report := domain.GroupCoverageReport{
		Passed:           true,
		NoWorkingIssues:  make([]domain.GroupCoverageIssue, 0),
		AllWorkingIssues: make([]domain.GroupCoverageIssue, 0),
	}

	for _, key := range keys {
		if slices.Contains(staffGameDays[key.week], key.day) {
			// the normal rotation does not apply on a staff game day
			continue
		}

		for _, groupID := range groupIDs {
			members := groups[groupID]
			if len(members) == 0 {
				continue
			}

			working := 0
			for _, staffID := range members {
				if onDuty[key][staffID] {
					working++
				}
			}

			issue := domain.GroupCoverageIssue{
				Week:      key.week,
				Day:       key.day,
				GroupID:   groupID,
				GroupSize: len(members),
				OnDuty:    working,
			}
			switch working {
			case len(members):
				issue.Type = domain.CoverageAllWorking
				report.AllWorkingIssues = append(report.AllWorkingIssues, issue)
			case 0:
				issue.Type = domain.CoverageNoWorking
				report.NoWorkingIssues = append(report.NoWorkingIssues, issue)
			}
		}
	}

	issueCount := len(report.NoWorkingIssues) + len(report.AllWorkingIssues)
	if issueCount > 0 {
		report.Passed = false
		report.Message = fmt.Sprintf("%d group coverage issue(s) found", issueCount)
	} else {
		report.Message = "group coverage check passed"
	}

	return report
}

func dayIndex(days []string, day string) int {
	if i := slices.Index(days, day); i >= 0 {
		return i
	}
	return len(days)
}
