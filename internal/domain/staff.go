package domain

// JobType classifies ad-hoc staff records that are not present in the
// backing directory. Directory staff carry their class via their role.
type JobType string

const (
	JobTypeCounselor JobType = "counselor"
	JobTypeJC        JobType = "jc"
)

type StaffRef struct {
	StaffID int64  `json:"staffId"`
	Name    string `json:"name"`
	GroupID int64  `json:"groupId"`
	// JobType, Gender and ForcedJobCode are only set on ad-hoc staff.
	JobType       JobType `json:"jobType,omitempty"`
	Gender        string  `json:"gender,omitempty"`
	ForcedJobCode string  `json:"forcedJobCode,omitempty"`
}

type Group struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
