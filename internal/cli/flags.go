package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
)

func addProjectFlags(cmd *cobra.Command, sel *client.JobSelector) {
	cmd.Flags().StringVarP(&sel.ProjectName, "project-name", "n", "", "project name")
	cmd.Flags().StringVarP(&sel.ProjectID, "project-id", "i", "", "project ID")
}

func addJobFlags(cmd *cobra.Command, sel *client.JobSelector) {
	cmd.Flags().StringArrayVarP(&sel.JobNames, "job-name", "j", nil, "job name; repeatable")
	cmd.Flags().StringArrayVarP(&sel.JobIDs, "job-id", "k", nil, "job ID; repeatable")
}

func addAllJobsFlag(cmd *cobra.Command, sel *client.JobSelector) {
	cmd.Flags().BoolVarP(&sel.AllJobs, "all-jobs", "a", false, "apply to every job of the project")
}

func addUpdateFlags(cmd *cobra.Command, opts *client.UpdateOptions) {
	cmd.Flags().BoolVar(&opts.UseSavepoint, "use-savepoint", false, "start the job from its latest savepoint")
	cmd.Flags().BoolVar(&opts.PerJob, "per-job", false, "run in PER_JOB execution mode")
	cmd.Flags().BoolVar(&opts.Session, "session", false, "run in SESSION execution mode")
	cmd.Flags().BoolVar(&opts.Batch, "batch", false, "run in BATCH runtime mode")
	cmd.Flags().BoolVar(&opts.Streaming, "streaming", false, "run in STREAMING runtime mode")
}

// validateSelector enforces the selector rules shared by the job
// commands, before any network call happens. Mutating commands require
// an explicit project and at least one job selector.
func validateSelector(sel client.JobSelector, requireProject, requireJobs bool) error {
	if sel.ProjectName != "" && sel.ProjectID != "" {
		return errors.New("only one of --project-name or --project-id may be provided")
	}
	if requireProject && sel.ProjectName == "" && sel.ProjectID == "" {
		return errors.New("either --project-name or --project-id must be provided")
	}
	if requireJobs && len(sel.JobNames) == 0 && len(sel.JobIDs) == 0 && !sel.AllJobs {
		return errors.New("at least one of --job-name, --job-id or --all-jobs must be provided")
	}
	return nil
}

func validateUpdateOptions(opts client.UpdateOptions) error {
	if opts.PerJob && opts.Session {
		return errors.New("only one of --per-job or --session may be provided")
	}
	if opts.Batch && opts.Streaming {
		return errors.New("only one of --batch or --streaming may be provided")
	}
	return nil
}
