package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

// JobSelector narrows an operation to a set of jobs. ProjectName and
// ProjectID are mutually exclusive; with neither set, listing spans
// all projects. JobNames and JobIDs are repeatable filters and a job
// must match every non-empty list; AllJobs makes a mutating command
// apply to every job of the project.
type JobSelector struct {
	ProjectName string
	ProjectID   string
	JobNames    []string
	JobIDs      []string
	AllJobs     bool
}

func (s JobSelector) hasProject() bool {
	return s.ProjectName != "" || s.ProjectID != ""
}

// forMutation drops the name/id filters when --all-jobs was given, so
// the listing covers the whole project.
func (s JobSelector) forMutation() JobSelector {
	if s.AllJobs {
		s.JobNames = nil
		s.JobIDs = nil
	}
	return s
}

// UpdateOptions are the job config overrides applied by update-jobs
// and start-jobs. PerJob/Session and Batch/Streaming are mutually
// exclusive pairs; with neither of a pair set, the job keeps its
// stored mode.
type UpdateOptions struct {
	UseSavepoint bool
	PerJob       bool
	Session      bool
	Batch        bool
	Streaming    bool
}

// Notify receives human-readable progress messages for job-mutating
// operations. A nil Notify discards them.
type Notify func(format string, args ...any)

func (n Notify) printf(format string, args ...any) {
	if n != nil {
		n(format, args...)
	}
}

// ListJobs returns the jobs matching the selector. Without a project
// reference it aggregates the jobs of every project.
func (c *Client) ListJobs(ctx context.Context, sel JobSelector) ([]Job, error) {
	var jobs []Job
	if sel.hasProject() {
		projectID, err := c.resolveProjectID(ctx, sel)
		if err != nil {
			return nil, err
		}
		jobs, err = c.listProjectJobs(ctx, projectID)
		if err != nil {
			return nil, err
		}
	} else {
		projects, err := c.ListProjects(ctx, "", "")
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			projectJobs, err := c.listProjectJobs(ctx, p.ID())
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, projectJobs...)
		}
	}

	filtered := jobs[:0]
	for _, j := range jobs {
		if len(sel.JobNames) > 0 && !slices.Contains(sel.JobNames, j.Name()) {
			continue
		}
		if len(sel.JobIDs) > 0 && !slices.Contains(sel.JobIDs, j.ID()) {
			continue
		}
		filtered = append(filtered, j)
	}
	return filtered, nil
}

func (c *Client) listProjectJobs(ctx context.Context, projectID string) ([]Job, error) {
	data, err := c.get(ctx, fmt.Sprintf("/api/v2/projects/%s/jobs", projectID))
	if err != nil {
		return nil, err
	}
	var payload struct {
		Jobs []Job `json:"jobs"`
	}
	if err := unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload.Jobs, nil
}

// JobState is the reduced view emitted by list-jobs-state.
type JobState struct {
	JobID   string `json:"job_id"`
	JobName string `json:"job_name"`
	State   string `json:"state"`
}

// ListJobsState projects the selected jobs to id/name/state triples.
func (c *Client) ListJobsState(ctx context.Context, sel JobSelector) ([]JobState, error) {
	jobs, err := c.ListJobs(ctx, sel)
	if err != nil {
		return nil, err
	}
	states := make([]JobState, len(jobs))
	for i, j := range jobs {
		states[i] = JobState{JobID: j.ID(), JobName: j.Name(), State: j.State()}
	}
	return states, nil
}

// UpdateJobs pushes rebuilt job configs for the selected jobs. Only
// STOPPED jobs can be updated; others are skipped with a notice.
func (c *Client) UpdateJobs(ctx context.Context, sel JobSelector, opts UpdateOptions, notify Notify) error {
	jobs, err := c.ListJobs(ctx, sel.forMutation())
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.State() != StateStopped {
			notify.printf("Job %s (job_id=%s) is already in state %s.", job.Name(), job.ID(), job.State())
			continue
		}
		notify.printf("Updating job %s (job_id=%s)", job.Name(), job.ID())
		if err := c.updateJob(ctx, job, opts); err != nil {
			return err
		}
	}
	return nil
}

func (c *Client) updateJob(ctx context.Context, job Job, opts UpdateOptions) error {
	path := fmt.Sprintf("/api/v2/projects/%s/jobs/%s", job.ProjectID(), job.ID())
	_, err := c.put(ctx, path, buildUpdatePayload(job, opts))
	return err
}

// StopJobs stops the selected jobs, optionally taking a savepoint.
// Jobs already STOPPED are skipped with a notice.
func (c *Client) StopJobs(ctx context.Context, sel JobSelector, savepoint bool, notify Notify) error {
	jobs, err := c.ListJobs(ctx, sel.forMutation())
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.State() == StateStopped {
			notify.printf("Job %s (job_id=%s) is already in state %s.", job.Name(), job.ID(), job.State())
			continue
		}
		notify.printf("Stopping job %s (job_id=%s)", job.Name(), job.ID())
		path := fmt.Sprintf("/api/v2/projects/%s/jobs/%s/stop", job.ProjectID(), job.ID())
		data, err := c.post(ctx, path, buildStopPayload(job, savepoint))
		if err != nil {
			return err
		}
		notify.printf("%s", strings.TrimSpace(string(data)))
	}
	return nil
}

// StartJobs updates and executes the selected jobs. Only STOPPED jobs
// are started. The execute endpoint is known to return HTTP 500 when a
// job takes long to come up; in that case the job state is polled
// until it leaves STOPPED/INITIALIZING, and RUNNING counts as success.
func (c *Client) StartJobs(ctx context.Context, sel JobSelector, opts UpdateOptions, notify Notify) error {
	jobs, err := c.ListJobs(ctx, sel.forMutation())
	if err != nil {
		return err
	}
	for _, job := range jobs {
		if job.State() != StateStopped {
			notify.printf("Job %s (job_id=%s) is already in state %s.", job.Name(), job.ID(), job.State())
			continue
		}
		notify.printf("Starting job %s (job_id=%s)", job.Name(), job.ID())
		if err := c.updateJob(ctx, job, opts); err != nil {
			return err
		}

		path := fmt.Sprintf("/api/v2/projects/%s/jobs/%s/execute", job.ProjectID(), job.ID())
		data, status, err := c.do(ctx, http.MethodPost, path, nil, []int{http.StatusOK, http.StatusInternalServerError})
		if err != nil {
			return err
		}
		if status == http.StatusOK {
			notify.printf("%s", strings.TrimSpace(string(data)))
			continue
		}
		if err := c.awaitJobStart(ctx, job, notify); err != nil {
			return err
		}
	}
	return nil
}

// StartResult is the summary emitted when a slow job start is
// confirmed through state polling.
type StartResult struct {
	Responses []StartResponse `json:"responses"`
}

type StartResponse struct {
	Type       string `json:"type"`
	SSBJobID   string `json:"ssb_job_id"`
	JobName    string `json:"job_name"`
	FlinkJobID string `json:"flink_job_id"`
	SampleID   string `json:"sample_id"`
}

func (c *Client) awaitJobStart(ctx context.Context, job Job, notify Notify) error {
	current := job
	state := job.State()
	for attempts := c.pollAttempts; attempts > 0 && (state == StateStopped || state == StateInitializing); attempts-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.pollInterval):
		}
		jobs, err := c.ListJobs(ctx, JobSelector{ProjectID: current.ProjectID(), JobIDs: []string{current.ID()}})
		if err != nil {
			return err
		}
		if len(jobs) == 0 {
			return fmt.Errorf("job %s (job_id=%s) disappeared while starting", job.Name(), job.ID())
		}
		current = jobs[0]
		state = current.State()
		c.log.Debug("polling job state", "job", current.Name(), "job_id", current.ID(), "state", state)
	}
	if state != StateRunning {
		return fmt.Errorf("job %s (job_id=%s) failed to start", job.Name(), job.ID())
	}

	summary, err := json.MarshalIndent(StartResult{
		Responses: []StartResponse{{
			Type:       "job",
			SSBJobID:   current.ID(),
			JobName:    current.Name(),
			FlinkJobID: current.FlinkJobID(),
			SampleID:   current.SampleID(),
		}},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling start summary: %w", err)
	}
	notify.printf("%s", summary)
	return nil
}
