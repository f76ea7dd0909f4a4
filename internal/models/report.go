// Package models defines the records produced by bureau report extraction and
// the shapes persisted and served by the API.
package models

import "strings"

// Gender is the normalized holder gender.
type Gender string

// BasicDetails is the identity section of a report. Pointer fields are null
// when no source in the document provided a value.
type BasicDetails struct {
	FirstName      *string `json:"firstName" yaml:"firstName"`
	MiddleName     *string `json:"middleName" yaml:"middleName"`
	LastName       *string `json:"lastName" yaml:"lastName"`
	FullName       string  `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	MobilePhone    *string `json:"mobilePhone" yaml:"mobilePhone"`
	PAN            *string `json:"pan" yaml:"pan"`
	CreditScore    *int    `json:"creditScore" yaml:"creditScore"`
	DateOfBirth    *string `json:"dateOfBirth" yaml:"dateOfBirth"`
	Gender         *Gender `json:"gender" yaml:"gender"`
	Email          *string `json:"email" yaml:"email"`
	Passport       *string `json:"passport" yaml:"passport"`
	VoterID        *string `json:"voterId" yaml:"voterId"`
	DrivingLicense *string `json:"drivingLicense" yaml:"drivingLicense"`
	RationCard     *string `json:"rationCard" yaml:"rationCard"`
	UniversalID    *string `json:"universalId" yaml:"universalId"`
}

// ComputeFullName joins the non-empty name parts with single spaces and
// stores the result in FullName.
func (b *BasicDetails) ComputeFullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []*string{b.FirstName, b.MiddleName, b.LastName} {
		if v := strings.TrimSpace(Deref(p)); v != "" {
			parts = append(parts, v)
		}
	}
	b.FullName = strings.Join(parts, " ")
	return b.FullName
}

// ReportSummary holds the account counts and outstanding balances.
type ReportSummary struct {
	TotalAccounts      int64 `json:"totalAccounts" yaml:"totalAccounts"`
	ActiveAccounts     int64 `json:"activeAccounts" yaml:"activeAccounts"`
	ClosedAccounts     int64 `json:"closedAccounts" yaml:"closedAccounts"`
	CurrentBalance     int64 `json:"currentBalance" yaml:"currentBalance"`
	SecuredBalance     int64 `json:"securedBalance" yaml:"securedBalance"`
	UnsecuredBalance   int64 `json:"unsecuredBalance" yaml:"unsecuredBalance"`
	EnquiriesLast7Days int64 `json:"enquiriesLast7Days" yaml:"enquiriesLast7Days"`
}

// CreditAccount is one reported tradeline.
type CreditAccount struct {
	SubscriberName string `json:"subscriberName" yaml:"subscriberName" csv:"subscriber_name"`
	AccountNumber  string `json:"accountNumber" yaml:"accountNumber" csv:"account_number"`
	PortfolioType  string `json:"portfolioType" yaml:"portfolioType" csv:"portfolio_type"`
	AccountType    string `json:"accountType" yaml:"accountType" csv:"account_type"`
	AccountStatus  string `json:"accountStatus" yaml:"accountStatus" csv:"account_status"`
	CurrentBalance int64  `json:"currentBalance" yaml:"currentBalance" csv:"current_balance"`
	AmountOverdue  int64  `json:"amountOverdue" yaml:"amountOverdue" csv:"amount_overdue"`
	CreditLimit    int64  `json:"creditLimit" yaml:"creditLimit" csv:"credit_limit"`
	OpenDate       string `json:"openDate" yaml:"openDate" csv:"open_date"`
	DateReported   string `json:"dateReported" yaml:"dateReported" csv:"date_reported"`
	DateClosed     string `json:"dateClosed" yaml:"dateClosed" csv:"date_closed"`
	PaymentRating  string `json:"paymentRating" yaml:"paymentRating" csv:"payment_rating"`
}

// Address is a holder address, deduplicated across tradelines.
type Address struct {
	AddressLine1 string `json:"addressLine1" yaml:"addressLine1"`
	AddressLine2 string `json:"addressLine2" yaml:"addressLine2"`
	AddressLine3 string `json:"addressLine3" yaml:"addressLine3"`
	City         string `json:"city" yaml:"city"`
	State        string `json:"state" yaml:"state"`
	PostalCode   string `json:"postalCode" yaml:"postalCode"`
	CountryCode  string `json:"countryCode" yaml:"countryCode"`
}

// ExtractedReport is everything extraction produces from one document.
type ExtractedReport struct {
	BasicDetails   BasicDetails    `json:"basicDetails" yaml:"basicDetails"`
	ReportSummary  ReportSummary   `json:"reportSummary" yaml:"reportSummary"`
	CreditAccounts []CreditAccount `json:"creditAccounts" yaml:"creditAccounts"`
	Addresses      []Address       `json:"addresses" yaml:"addresses"`
	ReportDate     string          `json:"reportDate" yaml:"reportDate"`
	ReportNumber   string          `json:"reportNumber" yaml:"reportNumber"`
}

// StringPtr returns nil for the empty string and a pointer to s otherwise.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// GenderPtr returns a pointer to g.
func GenderPtr(g Gender) *Gender {
	return &g
}
