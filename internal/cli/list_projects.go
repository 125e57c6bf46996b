package cli

import (
	"github.com/spf13/cobra"
)

var (
	listProjectsName string
	listProjectsID   string
)

// listProjectsCmd represents the list-projects command
var listProjectsCmd = &cobra.Command{
	Use:   "list-projects",
	Short: "List SSB projects",
	Args:  cobra.NoArgs,
	RunE:  runListProjects,
}

func init() {
	rootCmd.AddCommand(listProjectsCmd)

	// Unlike the job commands these two may be combined; a project must
	// then match both filters.
	listProjectsCmd.Flags().StringVarP(&listProjectsName, "project-name", "n", "", "only the project with this name")
	listProjectsCmd.Flags().StringVarP(&listProjectsID, "project-id", "i", "", "only the project with this ID")
}

func runListProjects(cmd *cobra.Command, args []string) error {
	c, out, err := newSession()
	if err != nil {
		return err
	}

	projects, err := c.ListProjects(cmd.Context(), listProjectsName, listProjectsID)
	if err != nil {
		return err
	}

	headers := []string{"ID", "NAME"}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{p.ID(), p.Name()}
	}
	return out.Print(headers, rows, projects)
}
