// Package bureauparser extracts a structured credit report from an
// INProfileResponse bureau document.
//
// The Extractor holds no mutable state beyond its logger and input limit, so
// one instance can serve concurrent uploads.
package bureauparser

import (
	"bytes"
	"io"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parser"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/xmlutils"
)

// Section names used in FieldExtractionError and log events.
const (
	SectionHeader         = "report header"
	SectionBasicDetails   = "basic details"
	SectionReportSummary  = "report summary"
	SectionCreditAccounts = "credit accounts"
	SectionAddresses      = "addresses"
)

// Extractor implements parser.FullParser for bureau XML reports.
type Extractor struct {
	parser.BaseParser
}

// NewExtractor creates an Extractor logging to logger.
func NewExtractor(logger logging.Logger) *Extractor {
	return &Extractor{
		BaseParser: parser.NewBaseParser(logger),
	}
}

// ParseDocument turns raw XML into a tree whose single top-level key is the
// INProfileResponse root. Empty input, XML that is not well-formed and a
// missing root all fail with MalformedInputError.
func (e *Extractor) ParseDocument(data []byte) (xmlutils.Map, error) {
	doc, err := parseDocument(data)
	if err != nil {
		e.GetLogger().WithError(err).Error("XML parsing failed")
		return nil, err
	}
	return doc, nil
}

func parseDocument(data []byte) (xmlutils.Map, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &parsererror.MalformedInputError{Msg: "XML content is empty"}
	}

	doc, err := xmlutils.Parse(data)
	if err != nil {
		return nil, &parsererror.MalformedInputError{Msg: "XML parsing failed", Err: err}
	}

	if _, ok := doc[xmlutils.RootElement].(xmlutils.Map); !ok {
		return nil, &parsererror.MalformedInputError{
			Msg: "Invalid XML structure: " + xmlutils.RootElement + " node not found",
		}
	}
	return doc, nil
}

// ExtractAll parses data and runs every section extractor against the same
// tree. Failures of the basic details, summary and accounts extractors are
// returned unchanged; address extraction cannot fail.
func (e *Extractor) ExtractAll(data []byte) (*models.ExtractedReport, error) {
	log := e.GetLogger()
	log.Info("Starting XML data extraction", logging.F(logging.FieldBytes, len(data)))

	report, err := e.extractAll(data)
	if err != nil {
		log.WithError(err).Error("Failed to extract data from XML")
		return nil, err
	}

	log.Info("Successfully extracted data",
		logging.F(logging.FieldReportNumber, report.ReportNumber),
		logging.F(logging.FieldAccounts, len(report.CreditAccounts)),
		logging.F(logging.FieldAddresses, len(report.Addresses)))
	return report, nil
}

func (e *Extractor) extractAll(data []byte) (*models.ExtractedReport, error) {
	log := e.GetLogger()

	doc, err := e.ParseDocument(data)
	if err != nil {
		return nil, err
	}

	header, err := profile(doc, xmlutils.Header)
	if err != nil {
		return nil, &parsererror.FieldExtractionError{Section: SectionHeader, Err: err}
	}
	report := &models.ExtractedReport{
		ReportDate:   header.TextAt(xmlutils.ReportDate),
		ReportNumber: header.TextAt(xmlutils.ReportNumber),
	}
	log = log.WithField(logging.FieldReportNumber, report.ReportNumber)
	log.Info("Extracting data for report")

	if report.BasicDetails, err = e.ExtractBasicDetails(doc); err != nil {
		return nil, err
	}
	log.Debug("Extracted section", logging.F(logging.FieldSection, SectionBasicDetails),
		logging.F(logging.FieldCreditScore, report.BasicDetails.CreditScore))

	if report.ReportSummary, err = e.ExtractReportSummary(doc); err != nil {
		return nil, err
	}
	log.Debug("Extracted section", logging.F(logging.FieldSection, SectionReportSummary))

	if report.CreditAccounts, err = e.ExtractCreditAccounts(doc); err != nil {
		return nil, err
	}
	log.Debug("Extracted section", logging.F(logging.FieldSection, SectionCreditAccounts),
		logging.F(logging.FieldCount, len(report.CreditAccounts)))

	report.Addresses = e.ExtractAddresses(doc)
	log.Debug("Extracted section", logging.F(logging.FieldSection, SectionAddresses),
		logging.F(logging.FieldCount, len(report.Addresses)))

	return report, nil
}

// Parse implements parser.Parser. It reads at most MaxBytes from r.
func (e *Extractor) Parse(r io.Reader) (*models.ExtractedReport, error) {
	data, err := e.ReadInput(r)
	if err != nil {
		return nil, err
	}
	return e.ExtractAll(data)
}

// ValidateFormat reports whether r holds an XML document rooted at
// INProfileResponse. Documents that are not XML yield false without error;
// only read failures and oversize input are returned as errors.
func (e *Extractor) ValidateFormat(r io.Reader) (bool, error) {
	data, err := e.ReadInput(r)
	if err != nil {
		return false, err
	}

	root, err := xmlutils.LoadXML(bytes.NewReader(data))
	if err != nil {
		e.GetLogger().WithError(err).Debug("Input is not XML")
		return false, nil
	}

	ok, err := xmlutils.Exists(root, xmlutils.XPathRoot)
	if err != nil || !ok {
		return false, err
	}

	numbers, err := xmlutils.ExtractFromXML(root, xmlutils.XPathReportNumber)
	if err == nil {
		e.GetLogger().Debug("Recognized bureau report",
			logging.F(logging.FieldReportNumber, xmlutils.GetOrEmpty(numbers, 0)))
	}
	return true, nil
}

// profile resolves path below the INProfileResponse root.
func profile(doc xmlutils.Map, path ...string) (xmlutils.Map, error) {
	full := make([]string, 0, len(path)+1)
	full = append(full, xmlutils.RootElement)
	full = append(full, path...)
	return xmlutils.MapAt(doc, full...)
}

// tradelines returns the CAIS_Account_DETAILS elements in source order.
func tradelines(doc xmlutils.Map) ([]xmlutils.Map, error) {
	cais, err := profile(doc, xmlutils.CAISAccount)
	if err != nil {
		return nil, err
	}
	return xmlutils.AsSequence(cais[xmlutils.AccountDetails])
}
