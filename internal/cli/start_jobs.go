package cli

import (
	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
)

var (
	startJobsSel  client.JobSelector
	startJobsOpts client.UpdateOptions
)

// startJobsCmd represents the start-jobs command
var startJobsCmd = &cobra.Command{
	Use:   "start-jobs",
	Short: "Start SSB jobs",
	Long: `Update and start the selected jobs. Jobs that are not in STOPPED
state are skipped with a notice. When the execute call times out on the
server side, the job state is polled until the start is confirmed.`,
	Args: cobra.NoArgs,
	RunE: runStartJobs,
}

func init() {
	rootCmd.AddCommand(startJobsCmd)

	addProjectFlags(startJobsCmd, &startJobsSel)
	addJobFlags(startJobsCmd, &startJobsSel)
	addAllJobsFlag(startJobsCmd, &startJobsSel)
	addUpdateFlags(startJobsCmd, &startJobsOpts)
}

func runStartJobs(cmd *cobra.Command, args []string) error {
	if err := validateSelector(startJobsSel, true, true); err != nil {
		return err
	}
	if err := validateUpdateOptions(startJobsOpts); err != nil {
		return err
	}
	c, out, err := newSession()
	if err != nil {
		return err
	}
	return c.StartJobs(cmd.Context(), startJobsSel, startJobsOpts, out.Noticef)
}
