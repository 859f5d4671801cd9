package telemetrysdk

import "time"

// TokenResponse is the body returned by POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HealthResponse is the body of the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

// HostEvent mirrors one host_data record as serialized by the API.
type HostEvent struct {
	Time  time.Time `json:"time"`
	Host  string    `json:"host"`
	JID   string    `json:"jid"`
	Type  *string   `json:"type,omitempty"`
	Event string    `json:"event"`
	Unit  string    `json:"unit"`
	Value float64   `json:"value"`
	Diff  *float64  `json:"diff,omitempty"`
	Arc   *float64  `json:"arc,omitempty"`
}

// Job mirrors one job_data record as serialized by the API.
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
