package domain

import "time"

// HostEvent is a single row from the host_data table: one measured event on
// one host at one instant. The table declares time as its primary key, but in
// practice rows are unique on (time, host).
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
