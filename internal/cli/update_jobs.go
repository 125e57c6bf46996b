package cli

import (
	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
)

var (
	updateJobsSel  client.JobSelector
	updateJobsOpts client.UpdateOptions
)

// updateJobsCmd represents the update-jobs command
var updateJobsCmd = &cobra.Command{
	Use:   "update-jobs",
	Short: "Update SSB job properties",
	Long: `Update the stored configuration of the selected jobs. Only jobs in
STOPPED state are updated; running jobs are skipped with a notice.`,
	Args: cobra.NoArgs,
	RunE: runUpdateJobs,
}

func init() {
	rootCmd.AddCommand(updateJobsCmd)

	addProjectFlags(updateJobsCmd, &updateJobsSel)
	addJobFlags(updateJobsCmd, &updateJobsSel)
	addAllJobsFlag(updateJobsCmd, &updateJobsSel)
	addUpdateFlags(updateJobsCmd, &updateJobsOpts)
}

func runUpdateJobs(cmd *cobra.Command, args []string) error {
	if err := validateSelector(updateJobsSel, true, true); err != nil {
		return err
	}
	if err := validateUpdateOptions(updateJobsOpts); err != nil {
		return err
	}
	c, out, err := newSession()
	if err != nil {
		return err
	}
	return c.UpdateJobs(cmd.Context(), updateJobsSel, updateJobsOpts, out.Noticef)
}
