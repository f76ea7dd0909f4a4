package bureauparser

import (
	"testing"

	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addressXML(line1, line2, city, postal string) string {
	return `<CAIS_Holder_Address_Details>
		<First_Line_Of_Address_non_normalized>` + line1 + `</First_Line_Of_Address_non_normalized>
		<Second_Line_Of_Address_non_normalized>` + line2 + `</Second_Line_Of_Address_non_normalized>
		<City_non_normalized>` + city + `</City_non_normalized>
		<State_non_normalized>29</State_non_normalized>
		<ZIP_Postal_Code_non_normalized>` + postal + `</ZIP_Postal_Code_non_normalized>
		<CountryCode_non_normalized>IB</CountryCode_non_normalized>
	</CAIS_Holder_Address_Details>`
}

func addressesOf(t *testing.T, body string) ([]models.Address, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	e := NewExtractor(logger)
	return e.ExtractAddresses(mustParse(t, e, wrap(body))), logger
}

func TestExtractAddresses_DedupFirstOccurrenceWins(t *testing.T) {
	addrs, _ := addressesOf(t, tradelinesXML(
		addressXML("1 Main St", "first", "Bengaluru", "560001"),
		addressXML("1 Main St", "second", "Bengaluru", "560001"),
		addressXML("2 Main St", "", "Bengaluru", "560001"),
	))

	require.Len(t, addrs, 2)
	assert.Equal(t, models.Address{
		AddressLine1: "1 Main St",
		AddressLine2: "first",
		City:         "Bengaluru",
		State:        "29",
		PostalCode:   "560001",
		CountryCode:  "IB",
	}, addrs[0])
	assert.Equal(t, "2 Main St", addrs[1].AddressLine1)
}

func TestExtractAddresses_KeyUsesOnlyNonEmptyParts(t *testing.T) {
	addrs, _ := addressesOf(t, tradelinesXML(
		addressXML("", "a", "Delhi", ""),
		addressXML("", "b", "Delhi", ""),
		addressXML("", "c", "", ""),
	))

	require.Len(t, addrs, 1, "the all-empty address is skipped and Delhi appears once")
	assert.Equal(t, "a", addrs[0].AddressLine2)
}

func TestExtractAddresses_RepeatedWithinTradeline(t *testing.T) {
	addrs, _ := addressesOf(t, tradelinesXML(
		addressXML("1 Main St", "", "Chennai", "600001")+addressXML("9 Beach Rd", "", "Chennai", "600002"),
	))

	require.Len(t, addrs, 2)
	assert.Equal(t, "9 Beach Rd", addrs[1].AddressLine1)
}

func TestExtractAddresses_SingleEqualsOneElementList(t *testing.T) {
	tradeline := addressXML("1 Main St", "x", "Kochi", "682001")

	single, _ := addressesOf(t, tradelinesXML(tradeline))
	listed, _ := addressesOf(t, tradelinesXML(tradeline, ""))

	assert.Equal(t, single, listed)
	assert.Len(t, single, 1)
}

func TestExtractAddresses_NoTradelines(t *testing.T) {
	addrs, _ := addressesOf(t, `<SCORE><BureauScore>700</BureauScore></SCORE>`)
	assert.NotNil(t, addrs)
	assert.Empty(t, addrs)
}

func TestExtractAddresses_FailuresYieldEmpty(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"tradelines are text", `<CAIS_Account>text</CAIS_Account>`},
		{"address is text", tradelinesXML(
			addressXML("1 Main St", "", "Goa", "403001"),
			`<CAIS_Holder_Address_Details>text</CAIS_Holder_Address_Details>`,
		)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			addrs, logger := addressesOf(t, tc.body)
			assert.NotNil(t, addrs)
			assert.Empty(t, addrs)
			assert.True(t, logger.HasEntry("ERROR", "Error extracting addresses"))
		})
	}
}
