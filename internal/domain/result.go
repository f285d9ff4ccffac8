package domain

import "time"

// AssignmentResult is one staff-job-day instance as returned by the
// execution service. Consumed only for display, export and analysis.
type AssignmentResult struct {
	Week      int    `json:"week"`
	Day       string `json:"day"`
	JobID     int64  `json:"jobId"`
	JobName   string `json:"jobName"`
	JobCode   string `json:"jobCode"`
	StaffID   int64  `json:"staffId"`
	StaffName string `json:"staffName"`
}

type CoverageIssueType string

const (
	CoverageAllWorking CoverageIssueType = "all_working"
	CoverageNoWorking  CoverageIssueType = "no_working"
)

type GroupCoverageIssue struct {
	Week      int               `json:"week"`
	Day       string            `json:"day"`
	GroupID   int64             `json:"groupId"`
	GroupSize int               `json:"groupSize"`
	OnDuty    int               `json:"onDuty"`
	Type      CoverageIssueType `json:"type"`
}

type GroupCoverageReport struct {
	Passed           bool                 `json:"passed"`
	Message          string               `json:"message"`
	NoWorkingIssues  []GroupCoverageIssue `json:"noWorkingIssues"`
	AllWorkingIssues []GroupCoverageIssue `json:"allWorkingIssues"`
}

// Roster is the persisted outcome of the latest successful generation for
// one (session, flow). The staff-game days in effect at generation time
// are stored alongside the assignments so a later re-analysis applies the
// same coverage exemption.
type Roster struct {
	ID            int64              `json:"id"`
	SessionID     int64              `json:"sessionId"`
	Flow          Flow               `json:"flow"`
	Results       []AssignmentResult `json:"results"`
	StaffGameDays map[int][]string   `json:"staffGameDays"`
	CreatedAt     time.Time          `json:"createdAt"`
	Version       int32              `json:"-"`
}
