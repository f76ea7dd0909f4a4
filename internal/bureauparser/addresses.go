package bureauparser

import (
	"strings"

	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/xmlutils"
)

// ExtractAddresses collects holder addresses across all tradelines, keeping
// the first occurrence of each (line 1, city, postal code) combination.
// Addresses are not critical to a report, so any failure is logged and
// yields an empty slice.
func (e *Extractor) ExtractAddresses(doc xmlutils.Map) []models.Address {
	addresses, err := extractAddresses(doc)
	if err != nil {
		e.GetLogger().WithError(err).Error("Error extracting addresses")
		return []models.Address{}
	}
	return addresses
}

func extractAddresses(doc xmlutils.Map) ([]models.Address, error) {
	accounts, err := tradelines(doc)
	if err != nil {
		return nil, err
	}

	addresses := []models.Address{}
	seen := make(map[string]struct{})
	for _, account := range accounts {
		details, err := xmlutils.AsSequence(account[xmlutils.HolderAddressDetails])
		if err != nil {
			return nil, err
		}
		for _, d := range details {
			addr := toAddress(d)
			key := addressKey(addr)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			addresses = append(addresses, addr)
		}
	}
	return addresses, nil
}

func toAddress(d xmlutils.Map) models.Address {
	return models.Address{
		AddressLine1: d.TextAt(xmlutils.AddressFirstLine),
		AddressLine2: d.TextAt(xmlutils.AddressSecondLine),
		AddressLine3: d.TextAt(xmlutils.AddressThirdLine),
		City:         d.TextAt(xmlutils.AddressCity),
		State:        d.TextAt(xmlutils.AddressState),
		PostalCode:   d.TextAt(xmlutils.AddressPostalCode),
		CountryCode:  d.TextAt(xmlutils.AddressCountryCode),
	}
}

// addressKey joins the non-empty identifying parts; "" means the address
// cannot be identified and is skipped.
func addressKey(a models.Address) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.AddressLine1, a.City, a.PostalCode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "|")
}
