// Package report renders extracted credit reports for the CLI.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/validation"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"
)

// DefaultDelimiter separates CSV fields.
const DefaultDelimiter = ','

// Generator renders reports as JSON, YAML, or a CSV of tradelines.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator writing CSV with DefaultDelimiter.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Generator{
		logger:    logger.WithField("component", "ReportGenerator"),
		delimiter: DefaultDelimiter,
	}
}

// SetDelimiter changes the CSV field separator.
func (g *Generator) SetDelimiter(d rune) {
	g.delimiter = d
}

// Generate writes report to w in format. CSV output holds one row per
// credit account; the other sections are only in JSON and YAML.
func (g *Generator) Generate(w io.Writer, report *models.ExtractedReport, format string) error {
	if report == nil {
		return fmt.Errorf("cannot render a nil report")
	}
	if err := validation.IsValidOutputFormat(format); err != nil {
		return err
	}

	var err error
	switch format {
	case validation.FormatJSON:
		err = g.generateJSON(w, report)
	case validation.FormatYAML:
		err = g.generateYAML(w, report)
	case validation.FormatCSV:
		err = g.generateCSV(w, report.CreditAccounts)
	}
	if err != nil {
		g.logger.WithError(err).Error("Failed to render report", logging.F("format", format))
		return err
	}
	return nil
}

func (g *Generator) generateJSON(w io.Writer, report *models.ExtractedReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return nil
}

func (g *Generator) generateYAML(w io.Writer, report *models.ExtractedReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return nil
}

func (g *Generator) generateCSV(w io.Writer, accounts []models.CreditAccount) error {
	if accounts == nil {
		accounts = []models.CreditAccount{}
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter

	if err := gocsv.MarshalCSV(accounts, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	g.logger.Debug("Wrote credit accounts as CSV", logging.F(logging.FieldCount, len(accounts)))
	return nil
}
