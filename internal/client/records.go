package client

import (
	"encoding/json"
	"fmt"
)

// Job states the CLI cares about. The full state set belongs to the
// SSB service.
const (
	StateStopped      = "STOPPED"
	StateInitializing = "INITIALIZING"
	StateRunning      = "RUNNING"
)

// Project and Job are loosely-typed records returned by the API. The
// client only interprets the handful of fields it displays or needs
// to rebuild update payloads; everything else passes through untouched.
type Project map[string]any

func (p Project) ID() string   { return str(p["id"]) }
func (p Project) Name() string { return str(p["name"]) }

type Job map[string]any

func (j Job) ID() string         { return str(j["job_id"]) }
func (j Job) Name() string       { return str(j["name"]) }
func (j Job) State() string      { return str(j["state"]) }
func (j Job) ProjectID() string  { return str(j["project_id"]) }
func (j Job) FlinkJobID() string { return str(j["flink_job_id"]) }
func (j Job) SampleID() string   { return str(j["sample_id"]) }

// CreatedAt returns the record's creation timestamp, if the API
// provided one under either of its known keys.
func (j Job) CreatedAt() string {
	if v := str(j["created_at"]); v != "" {
		return v
	}
	return str(j["created"])
}

func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}
