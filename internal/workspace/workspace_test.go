package workspace

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func i32(v int32) *int32 { return &v }

func TestNewWorkspace(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 3)

	require.Equal(t, int64(1015), ws.SessionID)
	require.Equal(t, 3, ws.NumberOfWeeks)
	require.Len(t, ws.WeekConfigs, 3)
	require.Equal(t, int64(9000001), ws.NextAdhocID)
	for i, week := range ws.WeekConfigs {
		require.Equal(t, i+1, week.WeekNumber)
		require.True(t, week.UseSessionDefaults)
	}
}

func TestEditsReturnNewValue(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 1)

	out, err := AddExclusion(ws, SessionScope, 1050)
	require.NoError(t, err)
	require.Equal(t, []int64{1050}, out.SessionDefaults.Exclusions)
	require.Empty(t, ws.SessionDefaults.Exclusions)

	out2, err := AddExclusion(out, 1, 1060)
	require.NoError(t, err)
	require.Equal(t, []int64{1060}, out2.WeekConfigs[0].Exclusions)
	require.Empty(t, out.WeekConfigs[0].Exclusions)
}

func TestAddPoolMember(t *testing.T) {
	job := &domain.Job{ID: 1001, Code: domain.JobCodeArtsAndCrafts, NormalStaff: i32(1), MaxStaff: i32(2)}
	ws := New(1015, domain.FlowLunch, 1)

	ws, err := AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 101, job)
	require.NoError(t, err)

	_, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 101, job)
	require.ErrorIs(t, err, ErrDuplicateEntry)

	ws, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 102, job)
	require.NoError(t, err)
	require.Equal(t, domain.DutyPool{101, 102}, ws.SessionDefaults.Pools[domain.PoolArtsAndCrafts])

	_, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 103, job)
	require.ErrorIs(t, err, ErrPoolFull)
}

func TestAddPoolMemberCapacity(t *testing.T) {
	// normal 0 would never happen in the catalog; use normal=1/max=1 so
	// the second seat trips the capacity check before the pool limit
	job := &domain.Job{ID: 1001, Code: domain.JobCodeArtsAndCrafts, NormalStaff: i32(1), MaxStaff: i32(1)}
	ws := New(1015, domain.FlowLunch, 1)

	ws, err := AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 101, job)
	require.NoError(t, err)

	_, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 102, job)
	require.ErrorIs(t, err, ErrOverCapacity)

	ws = SetCapacityOverride(ws, job.ID, true)
	ws, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 102, job)
	require.NoError(t, err)
	require.Len(t, ws.SessionDefaults.Pools[domain.PoolArtsAndCrafts], 2)
}

func TestRemovePoolMember(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 1)
	ws, err := AddPoolMember(ws, 1, domain.PoolCardTrading, 101, nil)
	require.NoError(t, err)

	ws, err = RemovePoolMember(ws, 1, domain.PoolCardTrading, 101)
	require.NoError(t, err)
	require.Empty(t, ws.WeekConfigs[0].Pools[domain.PoolCardTrading])

	_, err = RemovePoolMember(ws, 1, domain.PoolCardTrading, 101)
	require.Error(t, err)
}

func TestAssignmentsAndExclusions(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 2)
	a := domain.CategoryAssignment{StaffID: 1027, JobID: 1021, Day: "wednesday"}

	ws, err := AddAssignment(ws, 2, a)
	require.NoError(t, err)
	require.Equal(t, []domain.CategoryAssignment{a}, ws.WeekConfigs[1].Assignments)

	_, err = AddAssignment(ws, 2, a)
	require.ErrorIs(t, err, ErrDuplicateEntry)

	ws, err = RemoveAssignment(ws, 2, a)
	require.NoError(t, err)
	require.Empty(t, ws.WeekConfigs[1].Assignments)

	_, err = AddExclusion(ws, 5, 1050)
	require.ErrorIs(t, err, ErrWeekOutOfRange)
}

func TestAddAdhocStaffMintsIDs(t *testing.T) {
	ws := New(1015, domain.FlowAMPM, 1)

	ws, first, err := AddAdhocStaff(ws, SessionScope, domain.StaffRef{Name: "Visiting Nurse"})
	require.NoError(t, err)
	require.Equal(t, int64(9000001), first.StaffID)

	ws, second, err := AddAdhocStaff(ws, 1, domain.StaffRef{Name: "Trip Leader"})
	require.NoError(t, err)
	require.Equal(t, int64(9000002), second.StaffID)
	require.Equal(t, int64(9000003), ws.NextAdhocID)

	require.Len(t, ws.SessionDefaults.AdhocStaff, 1)
	require.Len(t, ws.WeekConfigs[0].AdhocStaff, 1)

	_, _, err = AddAdhocStaff(ws, 1, domain.StaffRef{})
	require.Error(t, err)
}

func TestWeekRenumbering(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 3)
	var err error
	ws, err = AddExclusion(ws, 3, 1050)
	require.NoError(t, err)

	ws, err = RemoveWeek(ws, 2)
	require.NoError(t, err)
	require.Equal(t, 2, ws.NumberOfWeeks)
	require.Equal(t, 1, ws.WeekConfigs[0].WeekNumber)
	require.Equal(t, 2, ws.WeekConfigs[1].WeekNumber)
	// the old week 3 keeps its contents under its new number
	require.Equal(t, []int64{1050}, ws.WeekConfigs[1].Exclusions)

	ws = AddWeek(ws)
	require.Equal(t, 3, ws.NumberOfWeeks)
	require.Equal(t, 3, ws.WeekConfigs[2].WeekNumber)
	require.True(t, ws.WeekConfigs[2].UseSessionDefaults)
}

func TestStaffGameDays(t *testing.T) {
	ws := New(1015, domain.FlowLunch, 2)
	var err error
	ws, err = SetWeekDays(ws, 1, []string{"wednesday"}, nil, nil)
	require.NoError(t, err)

	days := StaffGameDays(ws)
	require.Equal(t, map[int][]string{1: {"wednesday"}}, days)
}
