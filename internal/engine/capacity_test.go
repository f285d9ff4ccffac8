package engine

import (
	"testing"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func i32(v int32) *int32 { return &v }

func TestCheckCapacityThresholds(t *testing.T) {
	job := &domain.Job{ID: 1001, Code: "A&C", NormalStaff: i32(3), MaxStaff: i32(4)}

	cases := []struct {
		name     string
		count    int
		override bool
		status   CapacityStatus
		allowed  bool
	}{
		{"at normal", 3, false, CapacityOK, true},
		{"fourth staff member is a warning only", 4, false, CapacityOverNormal, true},
		{"fifth is rejected without override", 5, false, CapacityOverMax, false},
		{"fifth passes with override but keeps the status", 5, true, CapacityOverMax, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := CheckCapacity(job, tc.count, tc.override)
			require.Equal(t, tc.status, res.Status)
			require.Equal(t, tc.allowed, res.Allowed)
		})
	}
}

func TestCheckCapacityDefaults(t *testing.T) {
	t.Run("unset normal falls back to 1, max to normal+1", func(t *testing.T) {
		job := &domain.Job{ID: 1002, Code: "CT"}

		res := CheckCapacity(job, 1, false)
		require.Equal(t, CapacityOK, res.Status)
		require.Equal(t, int32(1), res.Normal)
		require.Equal(t, int32(2), res.Max)

		res = CheckCapacity(job, 2, false)
		require.Equal(t, CapacityOverNormal, res.Status)
		require.True(t, res.Allowed)

		res = CheckCapacity(job, 3, false)
		require.Equal(t, CapacityOverMax, res.Status)
		require.False(t, res.Allowed)
	})

	t.Run("unset max follows an explicit normal", func(t *testing.T) {
		job := &domain.Job{ID: 1003, NormalStaff: i32(5)}

		res := CheckCapacity(job, 6, false)
		require.Equal(t, CapacityOverNormal, res.Status)
		require.Equal(t, int32(6), res.Max)
	})
}
