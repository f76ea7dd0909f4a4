package bureauparser

import (
	"strings"

	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/xmlutils"
)

// ExtractCreditAccounts returns one CreditAccount per tradeline in source
// order. A report without tradelines yields an empty slice and a warning.
func (e *Extractor) ExtractCreditAccounts(doc xmlutils.Map) ([]models.CreditAccount, error) {
	accounts, err := tradelines(doc)
	if err != nil {
		e.GetLogger().WithError(err).Error("Error extracting credit accounts")
		return nil, &parsererror.FieldExtractionError{Section: SectionCreditAccounts, Err: err}
	}
	if len(accounts) == 0 {
		e.GetLogger().Warn("No account details found in XML")
		return []models.CreditAccount{}, nil
	}

	out := make([]models.CreditAccount, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, toCreditAccount(account))
	}
	return out, nil
}

func toCreditAccount(account xmlutils.Map) models.CreditAccount {
	return models.CreditAccount{
		SubscriberName: strings.TrimSpace(account.TextAt(xmlutils.SubscriberName)),
		AccountNumber:  account.TextAt(xmlutils.AccountNumber),
		PortfolioType:  account.TextAt(xmlutils.PortfolioType),
		AccountType:    account.TextAt(xmlutils.AccountType),
		AccountStatus:  account.TextAt(xmlutils.AccountStatus),
		CurrentBalance: intOrZero(account.TextAt(xmlutils.CurrentBalance)),
		AmountOverdue:  intOrZero(account.TextAt(xmlutils.AmountPastDue)),
		CreditLimit:    intOrZero(account.TextAt(xmlutils.CreditLimitAmount)),
		OpenDate:       account.TextAt(xmlutils.OpenDate),
		DateReported:   account.TextAt(xmlutils.DateReported),
		DateClosed:     account.TextAt(xmlutils.DateClosed),
		PaymentRating:  account.TextAt(xmlutils.PaymentRating),
	}
}
