package engine

import (
	"testing"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestDetectConflictsAllowedPairing(t *testing.T) {
	eff := Effective{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {101},
		},
		TieDyeStaff: []int64{101},
	}

	// arts & crafts + tie dye is an allowed co-assignment on the
	// lunchtime flow only
	require.Empty(t, DetectConflicts(eff, domain.FlowLunch))
	require.Len(t, DetectConflicts(eff, domain.FlowAMPM), 1)
}

func TestDetectConflictsPoolPairing(t *testing.T) {
	eff := Effective{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {101},
			domain.PoolCardTrading:   {101},
		},
	}

	conflicts := DetectConflicts(eff, domain.FlowLunch)
	require.Len(t, conflicts, 1)
	require.Equal(t, int64(101), conflicts[0].StaffID)
	require.Equal(t, []Category{CategoryArtsAndCrafts, CategoryCardTrading}, conflicts[0].Categories)
}

func TestDetectConflictsAssignedAndExcluded(t *testing.T) {
	// assigned + excluded is always a conflict, even for the allowed
	// arts & crafts / tie dye pairing
	eff := Effective{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {101},
		},
		TieDyeStaff: []int64{101},
		Exclusions:  []int64{101},
	}

	conflicts := DetectConflicts(eff, domain.FlowLunch)
	require.Len(t, conflicts, 1)
	require.Contains(t, conflicts[0].Categories, CategoryExcluded)
}

func TestDetectConflictsSingleCategoryClean(t *testing.T) {
	eff := Effective{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {101},
			domain.PoolCardTrading:   {102},
		},
		AllDays:    []domain.CategoryAssignment{{StaffID: 103, JobID: 1001}},
		Exclusions: []int64{104}, // excluded but never assigned
	}

	require.Empty(t, DetectConflicts(eff, domain.FlowLunch))
}

func TestDetectConflictsSortedByStaffID(t *testing.T) {
	eff := Effective{
		Pools: map[domain.PoolType]domain.DutyPool{
			domain.PoolArtsAndCrafts: {105, 101},
			domain.PoolCardTrading:   {105, 101},
		},
	}

	conflicts := DetectConflicts(eff, domain.FlowLunch)
	require.Len(t, conflicts, 2)
	require.Equal(t, int64(101), conflicts[0].StaffID)
	require.Equal(t, int64(105), conflicts[1].StaffID)
}
