package workspace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
)

func mustExport(t *testing.T, ws domain.Workspace) []byte {
	t.Helper()
	data, err := Export(ws)
	require.NoError(t, err)
	return data
}

func decodeEnvelope(t *testing.T, data []byte) exportEnvelope {
	t.Helper()
	var env exportEnvelope
	require.NoError(t, json.Unmarshal(data, &env))
	return env
}

func encodeEnvelope(t *testing.T, env exportEnvelope) []byte {
	t.Helper()
	data, err := json.Marshal(env)
	require.NoError(t, err)
	return data
}

func exportFixture(t *testing.T) domain.Workspace {
	t.Helper()

	ws := New(1015, domain.FlowLunch, 2)
	var err error
	ws, err = AddPoolMember(ws, SessionScope, domain.PoolArtsAndCrafts, 1141, nil)
	require.NoError(t, err)
	ws, err = AddExclusion(ws, SessionScope, 1050)
	require.NoError(t, err)
	ws, err = AddExclusion(ws, 2, 1060)
	require.NoError(t, err)
	ws, err = AddAssignment(ws, 1, domain.CategoryAssignment{StaffID: 1027, JobID: 1021, Day: "wednesday"})
	require.NoError(t, err)
	ws, _, err = AddAdhocStaff(ws, 1, domain.StaffRef{Name: "Trip Leader", JobType: domain.JobTypeCounselor})
	require.NoError(t, err)
	ws, err = SetWeekDays(ws, 1, []string{"wednesday"}, []string{"tuesday"}, []int64{1141})
	require.NoError(t, err)
	ws = SetCapacityOverride(ws, 1021, true)
	return ws
}

func TestExportImportRoundTrip(t *testing.T) {
	ws := exportFixture(t)

	data, err := Export(ws)
	require.NoError(t, err)

	got, err := Import(data)
	require.NoError(t, err)

	require.Equal(t, ws.SessionID, got.SessionID)
	require.Equal(t, ws.Flow, got.Flow)
	require.Equal(t, ws.NextAdhocID, got.NextAdhocID)
	require.Equal(t, ws.CapacityOverrides, got.CapacityOverrides)

	// the imported workspace resolves to the same effective values
	for week := 1; week <= ws.NumberOfWeeks; week++ {
		want, err := EffectiveWeek(ws, week)
		require.NoError(t, err)
		have, err := EffectiveWeek(got, week)
		require.NoError(t, err)
		require.Equal(t, want, have, "week %d", week)
	}
}

func TestImportRejectsBadFiles(t *testing.T) {
	valid, err := Export(exportFixture(t))
	require.NoError(t, err)

	cases := []struct {
		name   string
		mutate func(env *exportEnvelope)
		errMsg string
	}{
		{"wrong version", func(env *exportEnvelope) { env.Version = 2 }, "version"},
		{"missing session", func(env *exportEnvelope) { env.SessionID = 0 }, "session id"},
		{"bad flow", func(env *exportEnvelope) { env.Flow = "overnight" }, "flow"},
		{"week count mismatch", func(env *exportEnvelope) { env.NumberOfWeeks = 5 }, "week configs"},
		{"gap in week numbers", func(env *exportEnvelope) { env.WeekConfigs[1].WeekNumber = 3 }, "contiguous"},
		{"unknown pool", func(env *exportEnvelope) {
			env.SessionDefaults.Pools["kitchen"] = domain.DutyPool{1}
		}, "pool"},
		{"oversized pool", func(env *exportEnvelope) {
			env.SessionDefaults.Pools[domain.PoolArtsAndCrafts] = domain.DutyPool{1, 2, 3}
		}, "limit"},
		{"duplicate pool member", func(env *exportEnvelope) {
			env.SessionDefaults.Pools[domain.PoolArtsAndCrafts] = domain.DutyPool{7, 7}
		}, "twice"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := decodeEnvelope(t, valid)
			tc.mutate(&env)
			data := encodeEnvelope(t, env)

			_, err := Import(data)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.errMsg)
		})
	}

	t.Run("not json", func(t *testing.T) {
		_, err := Import([]byte("session,flow\n1015,lunch"))
		require.Error(t, err)
	})
}

func TestImportFloorsAdhocCounter(t *testing.T) {
	env := decodeEnvelope(t, mustExport(t, New(1015, domain.FlowAMPM, 1)))
	env.NextAdhocID = 12

	ws, err := Import(encodeEnvelope(t, env))
	require.NoError(t, err)
	require.Equal(t, int64(9000001), ws.NextAdhocID)
}
