// Package extract implements the extract command
package extract

import (
	"bytes"
	"errors"
	"fmt"

	"fjacquet/credit-report/cmd/root"
	"fjacquet/credit-report/internal/fileutils"
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/report"
	"fjacquet/credit-report/internal/validation"

	"github.com/spf13/cobra"
)

// Flags of the extract command
type Flags struct {
	Input     string
	Output    string
	Format    string
	Validate  bool
	Delimiter string
}

var flags = Flags{}

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract one bureau XML report",
	Long: `Extract the identity details, account summary, tradelines and addresses of
one INProfileResponse XML report and print them as JSON, YAML, or a CSV of
tradelines.

Example:
  credit-report extract -i report.xml --format yaml -o report.yaml`,
	RunE: extractFunc,
}

func init() {
	Cmd.Flags().StringVarP(&flags.Input, "input", "i", "", "Input XML report")
	Cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "Output file (default stdout)")
	Cmd.Flags().StringVarP(&flags.Format, "format", "f", validation.FormatJSON, "Output format: json, yaml or csv")
	Cmd.Flags().BoolVarP(&flags.Validate, "validate", "v", false, "Validate the document root before extracting")
	Cmd.Flags().StringVar(&flags.Delimiter, "delimiter", ",", "CSV field delimiter")
	_ = Cmd.MarkFlagRequired("input")
}

func extractFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if c == nil {
		return errors.New("container not initialized")
	}
	log := c.GetLogger().WithField(logging.FieldFile, flags.Input)

	if err := validation.IsValidInputFile(flags.Input); err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(flags.Format); err != nil {
		return err
	}
	delimiter := []rune(flags.Delimiter)
	if len(delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", flags.Delimiter)
	}

	p := c.GetParser()
	if flags.Validate {
		log.Info("Validating format...")
		if err := validateFile(p, flags.Input); err != nil {
			return err
		}
		log.Info("Validation successful.")
	}

	extracted, err := parseFile(p, flags.Input)
	if err != nil {
		return err
	}

	gen := c.GetGenerator()
	gen.SetDelimiter(delimiter[0])
	return write(cmd, gen, extracted)
}

func validateFile(p parser.Validator, path string) error {
	f, err := fileutils.OpenFile(path)
	if err != nil {
		return err
	}
	defer f.Close()

	ok, err := p.ValidateFormat(f)
	if err != nil {
		return fmt.Errorf("error validating file: %w", err)
	}
	if !ok {
		return fmt.Errorf("%s is not an INProfileResponse report", path)
	}
	return nil
}

func parseFile(p parser.Parser, path string) (*models.ExtractedReport, error) {
	f, err := fileutils.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}

func write(cmd *cobra.Command, gen *report.Generator, extracted *models.ExtractedReport) error {
	if flags.Output == "" {
		return gen.Generate(cmd.OutOrStdout(), extracted, flags.Format)
	}

	var buf bytes.Buffer
	if err := gen.Generate(&buf, extracted, flags.Format); err != nil {
		return err
	}
	if err := fileutils.WriteFile(flags.Output, buf.Bytes(), models.PermissionOutputFile); err != nil {
		return err
	}
	root.GetLogger().Info("Report written", logging.F(logging.FieldFile, flags.Output))
	return nil
}
