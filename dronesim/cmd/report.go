package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/dronesim/datarecording"
	"github.com/sarchlab/dronesim/reporting"
)

func newReportCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "report <recording.sqlite3>",
		Short: "Print the time series stored in a recording.",
		Args:  cobra.ExactArgs(1),
		RunE:  report,
	}

	c.Flags().Int("every", 10, "Print one row out of every this many ticks")
	c.Flags().Bool("csv", false, "Print CSV instead of a table")

	return c
}

func report(cmd *cobra.Command, args []string) error {
	path := args[0]

	_, err := os.Stat(path)
	if err != nil {
		return err
	}

	reader := datarecording.NewReader(path)
	defer reader.Close()

	samples, err := reporting.ReadSamples(cmd.Context(), reader)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	asCSV, _ := cmd.Flags().GetBool("csv")
	if asCSV {
		return reporting.CSVRenderer{}.Render(cmd.OutOrStdout(), samples)
	}

	every, _ := cmd.Flags().GetInt("every")

	return reporting.TableRenderer{Every: every}.
		Render(cmd.OutOrStdout(), samples)
}
