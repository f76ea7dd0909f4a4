package bureauparser

import (
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/xmlutils"
)

// ExtractReportSummary reads account counts, outstanding balances and recent
// enquiries. Missing, non-numeric and negative values are 0.
func (e *Extractor) ExtractReportSummary(doc xmlutils.Map) (models.ReportSummary, error) {
	summary, err := reportSummary(doc)
	if err != nil {
		e.GetLogger().WithError(err).Error("Error extracting report summary")
		return models.ReportSummary{}, &parsererror.FieldExtractionError{Section: SectionReportSummary, Err: err}
	}
	return summary, nil
}

func reportSummary(doc xmlutils.Map) (models.ReportSummary, error) {
	cais, err := profile(doc, xmlutils.CAISAccount, xmlutils.CAISSummary)
	if err != nil {
		return models.ReportSummary{}, err
	}
	counts, err := xmlutils.MapAt(cais, xmlutils.CreditAccount)
	if err != nil {
		return models.ReportSummary{}, err
	}
	balances, err := xmlutils.MapAt(cais, xmlutils.TotalOutstandingBalance)
	if err != nil {
		return models.ReportSummary{}, err
	}
	caps, err := profile(doc, xmlutils.TotalCAPSSummary)
	if err != nil {
		return models.ReportSummary{}, err
	}

	return models.ReportSummary{
		TotalAccounts:      countOrZero(counts.TextAt(xmlutils.CreditAccountTotal)),
		ActiveAccounts:     countOrZero(counts.TextAt(xmlutils.CreditAccountActive)),
		ClosedAccounts:     countOrZero(counts.TextAt(xmlutils.CreditAccountClosed)),
		CurrentBalance:     countOrZero(balances.TextAt(xmlutils.OutstandingBalanceAll)),
		SecuredBalance:     countOrZero(balances.TextAt(xmlutils.OutstandingBalanceSec)),
		UnsecuredBalance:   countOrZero(balances.TextAt(xmlutils.OutstandingBalanceUnsec)),
		EnquiriesLast7Days: countOrZero(caps.TextAt(xmlutils.TotalCAPSLast7Days)),
	}, nil
}
