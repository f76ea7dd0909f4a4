package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreditReport is a persisted ExtractedReport.
type CreditReport struct {
	ID              string `json:"id" yaml:"id"`
	ExtractedReport `yaml:",inline"`
	UploadedAt      time.Time `json:"uploadedAt" yaml:"uploadedAt"`
	CreatedAt       time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// NewCreditReport prepares an extracted report for storage: it assigns an id
// and timestamps, computes the full name, trims every string, upper-cases the
// PAN and lower-cases the email. The input is not modified.
func NewCreditReport(extracted ExtractedReport, now time.Time) *CreditReport {
	now = now.UTC()
	report := &CreditReport{
		ID:              uuid.NewString(),
		ExtractedReport: normalize(extracted),
		UploadedAt:      now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	report.BasicDetails.ComputeFullName()
	return report
}

// Clone returns a deep copy of r.
func (r *CreditReport) Clone() *CreditReport {
	if r == nil {
		return nil
	}
	out := *r
	d := &out.BasicDetails
	for _, p := range []**string{
		&d.FirstName, &d.MiddleName, &d.LastName, &d.MobilePhone, &d.PAN, &d.DateOfBirth,
		&d.Email, &d.Passport, &d.VoterID, &d.DrivingLicense, &d.RationCard, &d.UniversalID,
	} {
		if *p != nil {
			v := **p
			*p = &v
		}
	}
	if d.CreditScore != nil {
		d.CreditScore = IntPtr(*d.CreditScore)
	}
	if d.Gender != nil {
		d.Gender = GenderPtr(*d.Gender)
	}
	out.CreditAccounts = append([]CreditAccount{}, r.CreditAccounts...)
	out.Addresses = append([]Address{}, r.Addresses...)
	return &out
}

func normalize(in ExtractedReport) ExtractedReport {
	out := in
	d := &out.BasicDetails

	d.FirstName = trimPtr(d.FirstName, nil)
	d.MiddleName = trimPtr(d.MiddleName, nil)
	d.LastName = trimPtr(d.LastName, nil)
	d.MobilePhone = trimPtr(d.MobilePhone, nil)
	d.PAN = trimPtr(d.PAN, strings.ToUpper)
	d.DateOfBirth = trimPtr(d.DateOfBirth, nil)
	d.Email = trimPtr(d.Email, strings.ToLower)
	d.Passport = trimPtr(d.Passport, nil)
	d.VoterID = trimPtr(d.VoterID, nil)
	d.DrivingLicense = trimPtr(d.DrivingLicense, nil)
	d.RationCard = trimPtr(d.RationCard, nil)
	d.UniversalID = trimPtr(d.UniversalID, nil)
	if d.CreditScore != nil {
		d.CreditScore = IntPtr(*d.CreditScore)
	}
	if d.Gender != nil {
		d.Gender = GenderPtr(*d.Gender)
	}

	out.CreditAccounts = make([]CreditAccount, len(in.CreditAccounts))
	for i, a := range in.CreditAccounts {
		a.SubscriberName = strings.TrimSpace(a.SubscriberName)
		a.AccountNumber = strings.TrimSpace(a.AccountNumber)
		a.PortfolioType = strings.TrimSpace(a.PortfolioType)
		a.AccountType = strings.TrimSpace(a.AccountType)
		a.AccountStatus = strings.TrimSpace(a.AccountStatus)
		a.OpenDate = strings.TrimSpace(a.OpenDate)
		a.DateReported = strings.TrimSpace(a.DateReported)
		a.DateClosed = strings.TrimSpace(a.DateClosed)
		a.PaymentRating = strings.TrimSpace(a.PaymentRating)
		out.CreditAccounts[i] = a
	}

	out.Addresses = make([]Address, len(in.Addresses))
	for i, a := range in.Addresses {
		a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
		a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
		a.AddressLine3 = strings.TrimSpace(a.AddressLine3)
		a.City = strings.TrimSpace(a.City)
		a.State = strings.TrimSpace(a.State)
		a.PostalCode = strings.TrimSpace(a.PostalCode)
		a.CountryCode = strings.TrimSpace(a.CountryCode)
		out.Addresses[i] = a
	}

	out.ReportDate = strings.TrimSpace(in.ReportDate)
	out.ReportNumber = strings.TrimSpace(in.ReportNumber)
	return out
}

func trimPtr(s *string, transform func(string) string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if transform != nil {
		v = transform(v)
	}
	return StringPtr(v)
}
