package engine

import (
	"testing"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func testJobCatalog() map[string]*domain.Job {
	return map[string]*domain.Job{
		domain.JobCodeArtsAndCrafts: {ID: 1001, Code: domain.JobCodeArtsAndCrafts, Name: "Arts & Crafts"},
		domain.JobCodeCardTrading:   {ID: 1009, Code: domain.JobCodeCardTrading, Name: "Card Trading"},
		domain.JobCodeMulti:         {ID: 1021, Code: domain.JobCodeMulti, Name: "Multi"},
	}
}

func TestCompileWeekInjectsPoolMembers(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {1141},
			domain.PoolCardTrading:   {1177},
		},
	}
	week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: true}

	payload, err := CompileWeek(1015, defaults, week, testJobCatalog(), CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(1015), payload.SessionID)
	require.Equal(t, 1, payload.Week)
	require.Equal(t, []JobAssignments{
		{JobID: 1001, StaffIDs: []int64{1141}},
		{JobID: 1009, StaffIDs: []int64{1177}},
	}, payload.AllDays)
}

func TestCompileWeekGroupsAndDeduplicates(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {1141},
		},
		Assignments: []domain.CategoryAssignment{
			{StaffID: 1141, JobID: 1001}, // duplicates the pool injection
			{StaffID: 1027, JobID: 1021},
			{StaffID: 1027, JobID: 1021, Day: "wednesday"},
		},
	}
	week := domain.WeekConfig{
		WeekNumber:         1,
		UseSessionDefaults: true,
		Assignments: []domain.CategoryAssignment{
			{StaffID: 1030, JobID: 1021},
		},
	}

	payload, err := CompileWeek(1015, defaults, week, testJobCatalog(), CompileOptions{})
	require.NoError(t, err)
	require.Equal(t, []JobAssignments{
		{JobID: 1001, StaffIDs: []int64{1141}},
		{JobID: 1021, StaffIDs: []int64{1027, 1030}},
	}, payload.AllDays)
	require.Equal(t, []DayAssignment{
		{StaffID: 1027, JobID: 1021, Day: "wednesday"},
	}, payload.SpecificDays)
}

func TestCompileWeekMissingPoolJob(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolCardTrading: {1177},
		},
	}
	week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: true}

	catalog := testJobCatalog()
	delete(catalog, domain.JobCodeCardTrading)

	_, err := CompileWeek(1015, defaults, week, catalog, CompileOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), domain.JobCodeCardTrading)
}

func TestCompileWeekDoesNotMutateInputs(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {1141},
		},
		Assignments: []domain.CategoryAssignment{{StaffID: 1027, JobID: 1021}},
		Exclusions:  []int64{1050},
	}
	week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: true}

	_, err := CompileWeek(1015, defaults, week, testJobCatalog(), CompileOptions{})
	require.NoError(t, err)

	require.Equal(t, domain.DutyPool{1141}, defaults.Pools[domain.PoolArtsAndCrafts])
	require.Len(t, defaults.Assignments, 1)
	require.Equal(t, []int64{1050}, defaults.Exclusions)
}

func TestCompileBatch(t *testing.T) {
	jobs := []*domain.Job{
		{ID: 1001, Code: domain.JobCodeArtsAndCrafts, Name: "Arts & Crafts"},
		{ID: 1009, Code: domain.JobCodeCardTrading, Name: "Card Trading"},
	}

	ws := domain.Workspace{
		SessionID:     1015,
		Flow:          domain.FlowLunch,
		NumberOfWeeks: 2,
		SessionDefaults: domain.SessionDefaults{
			Pools: map[domain.PoolType]domain.DutyPool{
				domain.PoolArtsAndCrafts: {1141},
			},
		},
		WeekConfigs: []domain.WeekConfig{
			{WeekNumber: 1, UseSessionDefaults: true, StaffGameDays: []string{"wednesday"}},
			{WeekNumber: 2, UseSessionDefaults: false},
		},
	}

	batch, err := CompileBatch(ws, jobs, CompileOptions{Verbose: true})
	require.NoError(t, err)
	require.Equal(t, int64(1015), batch.SessionID)
	require.Equal(t, []string{"monday", "tuesday", "wednesday", "thursday"}, batch.Days)
	require.Len(t, batch.Weeks, 2)

	// week 1 inherits the session pool, week 2 opted out
	require.Len(t, batch.Weeks[0].AllDays, 1)
	require.Equal(t, []string{"wednesday"}, batch.Weeks[0].StaffGameDays)
	require.Empty(t, batch.Weeks[1].AllDays)
	require.True(t, batch.Weeks[0].Verbose)
}
