package cli

import (
	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
)

var (
	stopJobsSel       client.JobSelector
	stopJobsSavepoint bool
)

// stopJobsCmd represents the stop-jobs command
var stopJobsCmd = &cobra.Command{
	Use:   "stop-jobs",
	Short: "Stop SSB jobs",
	Args:  cobra.NoArgs,
	RunE:  runStopJobs,
}

func init() {
	rootCmd.AddCommand(stopJobsCmd)

	addProjectFlags(stopJobsCmd, &stopJobsSel)
	addJobFlags(stopJobsCmd, &stopJobsSel)
	addAllJobsFlag(stopJobsCmd, &stopJobsSel)
	stopJobsCmd.Flags().BoolVarP(&stopJobsSavepoint, "savepoint", "s", false, "create a savepoint when stopping the job")
}

func runStopJobs(cmd *cobra.Command, args []string) error {
	if err := validateSelector(stopJobsSel, true, true); err != nil {
		return err
	}
	c, out, err := newSession()
	if err != nil {
		return err
	}
	return c.StopJobs(cmd.Context(), stopJobsSel, stopJobsSavepoint, out.Noticef)
}
