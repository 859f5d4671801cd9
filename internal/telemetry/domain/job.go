package domain

import "time"

// Job is a single row from the job_data table: a completed or running
// scheduler job and its resource usage.
//
// The table declares start_time as its primary key rather than jid, so two
// distinct jobs sharing a start time would collide. That is a quirk of the
// upstream schema which this service does not own and deliberately does not
// paper over.
type Job struct {
	JID        string    `json:"jid"`
	SubmitTime time.Time `json:"submit_time"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	Runtime    *float64  `json:"runtime,omitempty"`
	TimeLimit  *float64  `json:"timelimit,omitempty"`
	NodeHours  *float64  `json:"node_hrs,omitempty"`
	NHosts     *int64    `json:"nhosts,omitempty"`
	NCores     *int64    `json:"ncores,omitempty"`
	NGPUs      *int64    `json:"ngpus,omitempty"`
	Username   string    `json:"username"`
	Account    *string   `json:"account,omitempty"`
	Queue      *string   `json:"queue,omitempty"`
	State      *string   `json:"state,omitempty"`
	JobName    *string   `json:"jobname,omitempty"`
	ExitCode   *string   `json:"exitcode,omitempty"`
	HostList   []string  `json:"host_list,omitempty"`
}
