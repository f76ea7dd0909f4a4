// Package xmlutils provides XML-related utility functions used throughout the application.
package xmlutils

// Element names of the bureau profile response, grouped by section.
const (
	RootElement = "INProfileResponse"

	// Report header
	Header       = "CreditProfileHeader"
	ReportDate   = "ReportDate"
	ReportNumber = "ReportNumber"

	// Current application
	CurrentApplication        = "Current_Application"
	CurrentApplicationDetails = "Current_Application_Details"
	CurrentApplicantDetails   = "Current_Applicant_Details"
	ApplicantFirstName        = "First_Name"
	ApplicantMiddleName       = "Middle_Name1"
	ApplicantLastName         = "Last_Name"
	ApplicantMobilePhone      = "MobilePhoneNumber"
	ApplicantIncomeTaxPAN     = "IncomeTaxPan"

	// Score
	Score       = "SCORE"
	BureauScore = "BureauScore"

	// Account summary
	CAISAccount             = "CAIS_Account"
	CAISSummary             = "CAIS_Summary"
	CreditAccount           = "Credit_Account"
	CreditAccountTotal      = "CreditAccountTotal"
	CreditAccountActive     = "CreditAccountActive"
	CreditAccountClosed     = "CreditAccountClosed"
	TotalOutstandingBalance = "Total_Outstanding_Balance"
	OutstandingBalanceAll   = "Outstanding_Balance_All"
	OutstandingBalanceSec   = "Outstanding_Balance_Secured"
	OutstandingBalanceUnsec = "Outstanding_Balance_UnSecured"
	TotalCAPSSummary        = "TotalCAPS_Summary"
	TotalCAPSLast7Days      = "TotalCAPSLast7Days"

	// Tradelines (repeatable)
	AccountDetails    = "CAIS_Account_DETAILS"
	SubscriberName    = "Subscriber_Name"
	AccountNumber     = "Account_Number"
	PortfolioType     = "Portfolio_Type"
	AccountType       = "Account_Type"
	AccountStatus     = "Account_Status"
	CurrentBalance    = "Current_Balance"
	AmountPastDue     = "Amount_Past_Due"
	CreditLimitAmount = "Credit_Limit_Amount"
	OpenDate          = "Open_Date"
	DateReported      = "Date_Reported"
	DateClosed        = "Date_Closed"
	PaymentRating     = "Payment_Rating"

	// Holder details, per tradeline
	HolderDetails           = "CAIS_Holder_Details"
	HolderFirstName         = "First_Name_Non_Normalized"
	HolderSurname           = "Surname_Non_Normalized"
	HolderIncomeTaxPAN      = "Income_TAX_PAN"
	HolderDateOfBirth       = "Date_of_birth"
	HolderGenderCode        = "Gender_Code"
	HolderPhoneDetails      = "CAIS_Holder_Phone_Details"
	HolderTelephone         = "Telephone_Number"
	HolderMobileTelephone   = "Mobile_Telephone_Number"
	HolderIDDetails         = "CAIS_Holder_ID_Details"
	HolderDriverLicense     = "Driver_License_Number"
	HolderRationCard        = "Ration_Card_Number"
	HolderUniversalID       = "Universal_ID_Number"
	PassportNumber          = "Passport_Number"
	VoterIDNumber           = "Voter_ID_Number"
	EmailID                 = "EMailId"
	HolderAddressDetails    = "CAIS_Holder_Address_Details"
	AddressFirstLine        = "First_Line_Of_Address_non_normalized"
	AddressSecondLine       = "Second_Line_Of_Address_non_normalized"
	AddressThirdLine        = "Third_Line_Of_Address_non_normalized"
	AddressCity             = "City_non_normalized"
	AddressState            = "State_non_normalized"
	AddressPostalCode       = "ZIP_Postal_Code_non_normalized"
	AddressCountryCode      = "CountryCode_non_normalized"
)

// XPath expressions used when probing a document without building its tree.
const (
	XPathRoot         = "/" + RootElement
	XPathReportNumber = "/" + RootElement + "/" + Header + "/" + ReportNumber
)
