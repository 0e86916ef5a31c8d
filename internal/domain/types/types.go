// Package types contains shapes shared between the service and the HTTP layer.
package types

import "time"

// Status describes the snapshot currently served.
type Status struct {
	DataLoaded bool      `json:"data_loaded"`
	Rows       int       `json:"rows"`
	Countries  int       `json:"countries"`
	Source     string    `json:"source"`
	Version    uint64    `json:"version"`
	LoadedAt   time.Time `json:"loaded_at"`
	LastError  string    `json:"last_error,omitempty"`
}
