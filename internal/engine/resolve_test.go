package engine

import (
	"testing"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestResolvePoolOverride(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {101, 102},
			domain.PoolCardTrading:   {103},
		},
	}

	t.Run("non-empty week pool wins regardless of defaults flag", func(t *testing.T) {
		week := domain.WeekConfig{
			WeekNumber:         1,
			UseSessionDefaults: true,
			Pools: map[domain.PoolType]domain.DutyPool{
				domain.PoolArtsAndCrafts: {201},
			},
		}

		eff := Resolve(defaults, week)
		require.Equal(t, domain.DutyPool{201}, eff.Pools[domain.PoolArtsAndCrafts])
		// the other pool is empty at week level, so it inherits
		require.Equal(t, domain.DutyPool{103}, eff.Pools[domain.PoolCardTrading])
	})

	t.Run("defaults disabled yields the week's own empty value", func(t *testing.T) {
		week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: false}

		eff := Resolve(defaults, week)
		require.Empty(t, eff.Pools[domain.PoolArtsAndCrafts])
		require.Empty(t, eff.Pools[domain.PoolCardTrading])
	})
}

func TestResolveCustomAssignmentsAlwaysMerge(t *testing.T) {
	defaults := domain.SessionDefaults{
		Assignments: []domain.CategoryAssignment{
			{StaffID: 101, JobID: 1001},
			{StaffID: 102, JobID: 1002, Day: "tuesday"},
		},
	}
	week := domain.WeekConfig{
		WeekNumber:         2,
		UseSessionDefaults: true,
		Assignments: []domain.CategoryAssignment{
			{StaffID: 103, JobID: 1001},
		},
	}

	eff := Resolve(defaults, week)
	require.Equal(t, []domain.CategoryAssignment{
		{StaffID: 101, JobID: 1001},
		{StaffID: 103, JobID: 1001},
	}, eff.AllDays)
	require.Equal(t, []domain.CategoryAssignment{
		{StaffID: 102, JobID: 1002, Day: "tuesday"},
	}, eff.SpecificDays)

	// without the defaults flag only the week's own list contributes
	week.UseSessionDefaults = false
	eff = Resolve(defaults, week)
	require.Equal(t, []domain.CategoryAssignment{{StaffID: 103, JobID: 1001}}, eff.AllDays)
	require.Empty(t, eff.SpecificDays)
}

func TestResolveExclusionsAlwaysUnion(t *testing.T) {
	cases := []struct {
		name    string
		session []int64
		week    []int64
		want    []int64
	}{
		{"both empty", nil, nil, []int64{}},
		{"session only", []int64{101, 102}, nil, []int64{101, 102}},
		{"week only", nil, []int64{103}, []int64{103}},
		{"overlapping", []int64{101, 102}, []int64{102, 103}, []int64{101, 102, 103}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defaults := domain.SessionDefaults{Exclusions: tc.session}
			// exclusions merge even when session defaults are disabled
			week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: false, Exclusions: tc.week}

			eff := Resolve(defaults, week)
			require.Equal(t, tc.want, eff.Exclusions)
		})
	}
}

func TestResolveAdhocStaffConcatenated(t *testing.T) {
	defaults := domain.SessionDefaults{
		AdhocStaff: []domain.StaffRef{{StaffID: 9000001, Name: "Sam Pine", GroupID: 3}},
	}
	week := domain.WeekConfig{
		WeekNumber: 1,
		AdhocStaff: []domain.StaffRef{{StaffID: 9000002, Name: "Ray Brook", GroupID: 4}},
	}

	eff := Resolve(defaults, week)
	require.Len(t, eff.AdhocStaff, 2)
	require.Equal(t, int64(9000001), eff.AdhocStaff[0].StaffID)
	require.Equal(t, int64(9000002), eff.AdhocStaff[1].StaffID)
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	defaults := domain.SessionDefaults{
		Pools:      map[domain.PoolType]domain.DutyPool{domain.PoolArtsAndCrafts: {101}},
		Exclusions: []int64{105},
	}
	week := domain.WeekConfig{WeekNumber: 1, UseSessionDefaults: true, Exclusions: []int64{106}}

	eff := Resolve(defaults, week)
	eff.Pools[domain.PoolArtsAndCrafts][0] = 999
	eff.Exclusions[0] = 999

	require.Equal(t, domain.DutyPool{101}, defaults.Pools[domain.PoolArtsAndCrafts])
	require.Equal(t, []int64{105}, defaults.Exclusions)
	require.Equal(t, []int64{106}, week.Exclusions)
}
