package engine

import (
	"testing"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

var lunchDays = []string{"monday", "tuesday", "wednesday", "thursday"}

func resultRows(jobID int64, jobCode string, week int, day string, staffIDs ...int64) []domain.AssignmentResult {
	rows := make([]domain.AssignmentResult, 0, len(staffIDs))
	for _, staffID := range staffIDs {
		rows = append(rows, domain.AssignmentResult{
			Week:    week,
			Day:     day,
			JobID:   jobID,
			JobCode: jobCode,
			StaffID: staffID,
		})
	}
	return rows
}

func TestAnalyzeDeviationAboveTarget(t *testing.T) {
	jobs := []*domain.Job{{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(3)}}
	results := resultRows(1001, "A", 1, "monday", 101, 102, 103, 104, 105)

	analysis := Analyze(results, jobs, nil, nil, lunchDays)
	require.Len(t, analysis.Jobs, 1)

	report := analysis.Jobs[0]
	require.Equal(t, int32(3), report.Target)
	require.Len(t, report.Instances, 1)
	require.Equal(t, 5, report.Instances[0].Count)
	require.Equal(t, DeviationAbove, report.Instances[0].Deviation)
	require.Equal(t, 2, report.Instances[0].Delta)
}

func TestAnalyzeNoDeviationAtTarget(t *testing.T) {
	jobs := []*domain.Job{{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(3)}}
	results := resultRows(1001, "A", 1, "monday", 101, 102, 103)

	analysis := Analyze(results, jobs, nil, nil, lunchDays)
	require.Len(t, analysis.Jobs, 1)
	require.Empty(t, analysis.Jobs[0].Instances[0].Deviation)
	require.Equal(t, float64(3), analysis.Jobs[0].Average)
}

func TestAnalyzeDeviationBelowAndAverage(t *testing.T) {
	jobs := []*domain.Job{{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(2)}}
	results := append(
		resultRows(1001, "A", 1, "monday", 101),
		resultRows(1001, "A", 1, "tuesday", 101, 102, 103)...,
	)

	analysis := Analyze(results, jobs, nil, nil, lunchDays)
	report := analysis.Jobs[0]
	require.Len(t, report.Instances, 2)
	require.Equal(t, DeviationBelow, report.Instances[0].Deviation)
	require.Equal(t, 1, report.Instances[0].Delta)
	require.Equal(t, DeviationAbove, report.Instances[1].Deviation)
	require.Equal(t, float64(2), report.Average)
}

func TestAnalyzeExcludesStaffGamesJob(t *testing.T) {
	jobs := []*domain.Job{
		{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(1)},
		{ID: 1030, Code: domain.JobCodeStaffGames, Name: "Staff Games", NormalStaff: i32(1)},
	}
	results := append(
		resultRows(1001, "A", 1, "monday", 101),
		resultRows(1030, domain.JobCodeStaffGames, 1, "monday", 102, 103, 104)...,
	)

	analysis := Analyze(results, jobs, nil, nil, lunchDays)
	require.Len(t, analysis.Jobs, 1)
	require.Equal(t, int64(1001), analysis.Jobs[0].JobID)
}

func TestAnalyzeGroupCoverage(t *testing.T) {
	groups := map[int64][]int64{
		7: {101, 102, 103, 104},
	}
	jobs := []*domain.Job{{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(4)}}

	t.Run("all members on duty", func(t *testing.T) {
		results := resultRows(1001, "A", 1, "monday", 101, 102, 103, 104)

		analysis := Analyze(results, jobs, groups, nil, lunchDays)
		require.False(t, analysis.GroupCoverage.Passed)
		require.Len(t, analysis.GroupCoverage.AllWorkingIssues, 1)
		require.Empty(t, analysis.GroupCoverage.NoWorkingIssues)

		issue := analysis.GroupCoverage.AllWorkingIssues[0]
		require.Equal(t, domain.CoverageAllWorking, issue.Type)
		require.Equal(t, int64(7), issue.GroupID)
		require.Equal(t, 4, issue.OnDuty)
	})

	t.Run("no members on duty", func(t *testing.T) {
		// other staff work monday, the whole group stays off
		results := resultRows(1001, "A", 1, "monday", 201, 202)

		analysis := Analyze(results, jobs, groups, nil, lunchDays)
		require.False(t, analysis.GroupCoverage.Passed)
		require.Len(t, analysis.GroupCoverage.NoWorkingIssues, 1)
		require.Equal(t, domain.CoverageNoWorking, analysis.GroupCoverage.NoWorkingIssues[0].Type)
	})

	t.Run("staff game day is exempt", func(t *testing.T) {
		results := resultRows(1001, "A", 1, "monday", 101, 102, 103, 104)
		staffGameDays := map[int][]string{1: {"monday"}}

		analysis := Analyze(results, jobs, groups, staffGameDays, lunchDays)
		require.True(t, analysis.GroupCoverage.Passed)
		require.Empty(t, analysis.GroupCoverage.AllWorkingIssues)
		require.Empty(t, analysis.GroupCoverage.NoWorkingIssues)
	})

	t.Run("partial rotation passes", func(t *testing.T) {
		results := resultRows(1001, "A", 1, "monday", 101, 102)

		analysis := Analyze(results, jobs, groups, nil, lunchDays)
		require.True(t, analysis.GroupCoverage.Passed)
	})
}

func TestAnalyzeGroupCoverageIgnoresStaffGamesRows(t *testing.T) {
	groups := map[int64][]int64{7: {101, 102}}
	jobs := []*domain.Job{{ID: 1001, Code: "A", Name: "Job A", NormalStaff: i32(1)}}

	// 102 only appears under the staff games placeholder, so the group
	// still counts as partially working
	results := append(
		resultRows(1001, "A", 1, "monday", 101),
		resultRows(1030, domain.JobCodeStaffGames, 1, "monday", 102)...,
	)

	analysis := Analyze(results, jobs, groups, nil, lunchDays)
	require.True(t, analysis.GroupCoverage.Passed)
}
