package cli

import (
	"github.com/spf13/cobra"

	"github.com/ssbtools/ssbctl/internal/client"
	"github.com/ssbtools/ssbctl/internal/output"
)

var listJobsSel client.JobSelector

// listJobsCmd represents the list-jobs command
var listJobsCmd = &cobra.Command{
	Use:   "list-jobs",
	Short: "List SSB jobs",
	Long: `List SSB jobs. With --project-name or --project-id the listing is
limited to that project; otherwise jobs of all projects are shown.`,
	Args: cobra.NoArgs,
	RunE: runListJobs,
}

func init() {
	rootCmd.AddCommand(listJobsCmd)

	addProjectFlags(listJobsCmd, &listJobsSel)
	addJobFlags(listJobsCmd, &listJobsSel)
}

func runListJobs(cmd *cobra.Command, args []string) error {
	if err := validateSelector(listJobsSel, false, false); err != nil {
		return err
	}
	c, out, err := newSession()
	if err != nil {
		return err
	}

	jobs, err := c.ListJobs(cmd.Context(), listJobsSel)
	if err != nil {
		return err
	}

	headers := []string{"JOB ID", "NAME", "STATE", "PROJECT ID", "AGE"}
	rows := make([][]string, len(jobs))
	for i, j := range jobs {
		rows[i] = []string{j.ID(), j.Name(), j.State(), j.ProjectID(), output.Age(j.CreatedAt())}
	}
	return out.Print(headers, rows, jobs)
}
