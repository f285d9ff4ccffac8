package engine

import "github.com/camp-decathlon/duty-scheduler/backend/internal/domain"

type CapacityStatus string

const (
	CapacityOK         CapacityStatus = "ok"
	CapacityOverNormal CapacityStatus = "over-normal"
	CapacityOverMax    CapacityStatus = "over-max"
)

type CapacityResult struct {
	Status  CapacityStatus `json:"status"`
	Allowed bool           `json:"allowed"`
	Normal  int32          `json:"normal"`
	Max     int32          `json:"max"`
}

// CheckCapacity classifies a job's staffing status for a candidate
// assignment count. An unset normal_staff falls back to 1 and an unset
// max_staff to normal+1. Counts above max are rejected unless the user
// set the per-job override flag; the status stays over-max either way.
func CheckCapacity(job *domain.Job, count int, override bool) CapacityResult {
	normal := int32(1)
	if job.NormalStaff != nil {
		normal = *job.NormalStaff
	}
	max := normal + 1
	if job.MaxStaff != nil {
		max = *job.MaxStaff
	}

	res := CapacityResult{Normal: normal, Max: max}
	switch {
	case count <= int(normal):
		res.Status = CapacityOK
		res.Allowed = true
	case count <= int(max):
		res.Status = CapacityOverNormal
		res.Allowed = true
	default:
		res.Status = CapacityOverMax
		res.Allowed = override
	}
	return res
}
