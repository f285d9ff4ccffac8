package handler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/workspace"
)

// Conflicts are advisory: a conflicted workspace still produces a
// conflict report and a compilable batch, it is never an error.
func TestConflictedWorkspaceStillGenerates(t *testing.T) {
	ws := workspace.New(1015, domain.FlowLunch, 2)

	ws, err := workspace.AddPoolMember(ws, workspace.SessionScope, domain.PoolArtsAndCrafts, 1141, nil)
	require.NoError(t, err)
	ws, err = workspace.AddExclusion(ws, workspace.SessionScope, 1141)
	require.NoError(t, err)

	report, err := collectWeekConflicts(ws)
	require.NoError(t, err)
	require.Len(t, report, 2)
	for _, week := range report {
		require.Len(t, week.Conflicts, 1)
		require.Equal(t, int64(1141), week.Conflicts[0].StaffID)
		require.Contains(t, week.Conflicts[0].Categories, engine.CategoryExcluded)
	}

	jobs := []*domain.Job{{ID: 1001, Code: domain.JobCodeArtsAndCrafts, Name: "Arts & Crafts"}}
	batch, err := engine.CompileBatch(ws, jobs, engine.CompileOptions{})
	require.NoError(t, err)
	require.Len(t, batch.Weeks, 2)
}
