package executor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/camp-decathlon/duty-scheduler/backend/internal/domain"
	"github.com/camp-decathlon/duty-scheduler/backend/internal/engine"
)

func testClient(url string) *Client {
	return &Client{baseURL: url, httpClient: http.DefaultClient}
}

func testBatch() engine.BatchPayload {
	return engine.BatchPayload{
		SessionID: 1015,
		Days:      []string{"monday", "tuesday", "wednesday", "thursday"},
		Weeks:     []engine.WeekPayload{{SessionID: 1015, Week: 1}},
	}
}

func TestGenerateDecodesResultsArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/assignments/generate", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var batch engine.BatchPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&batch))
		require.Equal(t, int64(1015), batch.SessionID)

		json.NewEncoder(w).Encode(map[string]any{
			"results": []domain.AssignmentResult{
				{Week: 1, Day: "monday", JobID: 1001, JobCode: "A&C", StaffID: 1141},
			},
		})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Generate(context.Background(), testBatch())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, int64(1141), resp.Results[0].StaffID)
	require.Nil(t, resp.GroupCoverage())
}

func TestGenerateDecodesAssignmentsShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"assignments": []domain.AssignmentResult{
				{Week: 1, Day: "monday", JobID: 1001, StaffID: 1141},
			},
			"validation": map[string]any{
				"groupCoverage": domain.GroupCoverageReport{Passed: true, Message: "group coverage check passed"},
			},
		})
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Generate(context.Background(), testBatch())
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.NotNil(t, resp.GroupCoverage())
	require.True(t, resp.GroupCoverage().Passed)
}

// A syntactically valid response with zero assignments is not a failure,
// it decodes into an empty result set the caller can analyze and store.
func TestGenerateAllowsEmptyResultSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	resp, err := testClient(srv.URL).Generate(context.Background(), testBatch())
	require.NoError(t, err)
	require.NotNil(t, resp.Results)
	require.Empty(t, resp.Results)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "solver crashed", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := testClient(srv.URL).Generate(context.Background(), testBatch())
		require.Error(t, err)
		require.Contains(t, err.Error(), "500")
		require.Contains(t, err.Error(), "solver crashed")
	})

	t.Run("service down", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		_, err := testClient(srv.URL).Generate(context.Background(), testBatch())
		require.Error(t, err)
		require.Contains(t, err.Error(), "unreachable")
	})
}
