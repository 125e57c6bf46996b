package cli

import (
	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
)

var listJobsStateSel client.JobSelector

// listJobsStateCmd represents the list-jobs-state command
var listJobsStateCmd = &cobra.Command{
	Use:   "list-jobs-state",
	Short: "List SSB jobs' state",
	Args:  cobra.NoArgs,
	RunE:  runListJobsState,
}

func init() {
	rootCmd.AddCommand(listJobsStateCmd)

	addProjectFlags(listJobsStateCmd, &listJobsStateSel)
	addJobFlags(listJobsStateCmd, &listJobsStateSel)
}

func runListJobsState(cmd *cobra.Command, args []string) error {
	if err := validateSelector(listJobsStateSel, false, false); err != nil {
		return err
	}
	c, out, err := newSession()
	if err != nil {
		return err
	}

	states, err := c.ListJobsState(cmd.Context(), listJobsStateSel)
	if err != nil {
		return err
	}

	headers := []string{"JOB ID", "NAME", "STATE"}
	rows := make([][]string, len(states))
	for i, s := range states {
		rows[i] = []string{s.JobID, s.JobName, s.State}
	}
	return out.Print(headers, rows, states)
}
