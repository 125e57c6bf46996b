package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/ssbtools/ssbctl/internal/config"
	"github.com/ssbtools/ssbctl/pkg/logger"
)

// stubSSB is a minimal in-memory SSB API used by the client tests. It
// serves projects and jobs, records mutating request bodies, and can
// script the job state transitions seen while polling after a slow
// start.
type stubSSB struct {
	t *testing.T

	mu       sync.Mutex
	projects []map[string]any
	jobs     []map[string]any

	updates []map[string]any
	stops   []map[string]any

	executeStatus int
	executeBody   string
	executed      bool
	// states applied on successive job listings once execute was called
	pollStates []string

	lastUser string
	lastPass string
}

var (
	jobsPath    = regexp.MustCompile(`^/api/v2/projects/([^/]+)/jobs$`)
	jobPath     = regexp.MustCompile(`^/api/v2/projects/([^/]+)/jobs/([^/]+)$`)
	stopPath    = regexp.MustCompile(`^/api/v2/projects/([^/]+)/jobs/([^/]+)/stop$`)
	executePath = regexp.MustCompile(`^/api/v2/projects/([^/]+)/jobs/([^/]+)/execute$`)
)

func newStubSSB(t *testing.T) *stubSSB {
	return &stubSSB{t: t, executeStatus: http.StatusOK, executeBody: `{"responses": []}`}
}

func (s *stubSSB) addProject(id, name string) {
	s.projects = append(s.projects, map[string]any{"id": json.Number(id), "name": name})
}

func (s *stubSSB) addJob(projectID, jobID, name, state string) {
	s.jobs = append(s.jobs, map[string]any{
		"job_id":            json.Number(jobID),
		"name":              name,
		"state":             state,
		"project_id":        json.Number(projectID),
		"flink_job_id":      "flink-" + jobID,
		"sample_id":         json.Number(jobID),
		"sql":               "SELECT * FROM source",
		"mv_endpoints":      []any{},
		"autoscaler_config": map[string]any{"enabled": false},
		"checkpoint_config": map[string]any{"interval": json.Number("60")},
		"kubernetes_config": map[string]any{"replicas": json.Number("1")},
		"mv_config": map[string]any{
			"retention":           json.Number("300"),
			"not_indexed_columns": []any{"payload"},
		},
		"runtime_config": map[string]any{
			"execution_mode":       "SESSION",
			"runtime_mode":         "STREAMING",
			"start_with_savepoint": false,
		},
	})
}

func (s *stubSSB) hasProject(id string) bool {
	for _, p := range s.projects {
		if str(p["id"]) == id {
			return true
		}
	}
	return false
}

func (s *stubSSB) findJob(jobID string) map[string]any {
	for _, j := range s.jobs {
		if str(j["job_id"]) == jobID {
			return j
		}
	}
	return nil
}

func (s *stubSSB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUser, s.lastPass, _ = r.BasicAuth()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/v2/projects":
		writeJSON(w, http.StatusOK, s.projects)

	case r.Method == http.MethodGet && jobsPath.MatchString(r.URL.Path):
		projectID := jobsPath.FindStringSubmatch(r.URL.Path)[1]
		if !s.hasProject(projectID) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error": "project not found"}`))
			return
		}
		if s.executed && len(s.pollStates) > 0 {
			next := s.pollStates[0]
			s.pollStates = s.pollStates[1:]
			for _, j := range s.jobs {
				j["state"] = next
			}
		}
		var jobs []map[string]any
		for _, j := range s.jobs {
			if str(j["project_id"]) == projectID {
				jobs = append(jobs, j)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})

	case r.Method == http.MethodPut && jobPath.MatchString(r.URL.Path):
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.t.Errorf("decoding PUT body: %v", err)
		}
		s.updates = append(s.updates, body)
		writeJSON(w, http.StatusOK, map[string]any{})

	case r.Method == http.MethodPost && stopPath.MatchString(r.URL.Path):
		jobID := stopPath.FindStringSubmatch(r.URL.Path)[2]
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			s.t.Errorf("decoding stop body: %v", err)
		}
		s.stops = append(s.stops, body)
		if j := s.findJob(jobID); j != nil {
			j["state"] = StateStopped
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "stop requested"})

	case r.Method == http.MethodPost && executePath.MatchString(r.URL.Path):
		s.executed = true
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(s.executeStatus)
		w.Write([]byte(s.executeBody))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such endpoint"}`))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// newTestClient wires a Client to the stub with short poll settings so
// the start-jobs fallback tests finish quickly.
func newTestClient(t *testing.T, stub *stubSSB) *Client {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	cfg := &config.Config{BaseURL: srv.URL, Username: "alice", Password: "secret"}
	c := New(cfg, logger.New(false))
	c.pollInterval = time.Millisecond
	c.pollAttempts = 5
	return c
}

// notices collects Notify output for assertions.
type notices struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notices) notify(format string, args ...any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, fmt.Sprintf(format, args...))
}
