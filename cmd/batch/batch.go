// Package batch implements the import command
package batch

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"fjacquet/credit-report/cmd/root"
	"fjacquet/credit-report/internal/batch"
	"fjacquet/credit-report/internal/logging"

	"github.com/spf13/cobra"
)

// Flags of the import command
type Flags struct {
	InputDir string
	Workers  int
}

var flags = Flags{}

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import every XML report of a directory into the store",
	Long: `Import every .xml file below a directory into the configured store using a
pool of workers. A file that fails to parse or store is reported and does
not stop the others. The command fails when at least one file failed.

Example:
  credit-report import -d reports/ --workers 8`,
	RunE: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.InputDir, "dir", "d", "", "Directory holding XML reports")
	Cmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "Concurrent workers (default from config)")
	_ = Cmd.MarkFlagRequired("dir")
}

func importFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	logger := c.GetLogger()

	importer := c.GetImporter()
	if flags.Workers > 0 {
		importer = batch.NewImporter(c.GetParser(), c.GetStore(), logger, flags.Workers)
	}

	logger.Info("Import command called",
		logging.F(logging.FieldFile, flags.InputDir),
		logging.F(logging.FieldWorkers, importer.Workers()))

	summary, err := importer.ImportDir(cmd.Context(), flags.InputDir)
	if err != nil {
		return err
	}

	if err := printSummary(cmd.OutOrStdout(), summary); err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d files failed to import", summary.Failed, len(summary.Results))
	}
	return nil
}

func printSummary(w io.Writer, summary batch.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FILE\tSTATUS\tREPORT ID\tSCORE\tDETAIL")
	for _, r := range summary.Results {
		if r.OK() {
			score := "-"
			if r.CreditScore != nil {
				score = fmt.Sprint(*r.CreditScore)
			}
			fmt.Fprintf(tw, "%s\tok\t%s\t%s\t%s\n", r.Path, r.ReportID, score, r.ReportNumber)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t-\t-\t%v\n", r.Path, r.Kind, r.Err)
	}
	fmt.Fprintf(tw, "\nImported %d, failed %d, in %s\n", summary.Imported, summary.Failed, summary.Duration.Round(time.Millisecond))
	return tw.Flush()
}
