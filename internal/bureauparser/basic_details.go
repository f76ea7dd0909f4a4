package bureauparser

import (
	"fjacquet/credit-report/internal/logging"
	"fjacquet/credit-report/internal/models"
	"fjacquet/credit-report/internal/parsererror"
	"fjacquet/credit-report/internal/xmlutils"
)

// ExtractBasicDetails reads the identity section.
//
// The current applicant block is the primary source. The first tradeline's
// holder details fill in first and last name only when one of them is
// missing, but always win for PAN, date of birth, gender, passport and voter
// ID. Phone and email come from the holder phone block only when no mobile
// number was found. The first holder ID block is a pure fallback.
func (e *Extractor) ExtractBasicDetails(doc xmlutils.Map) (models.BasicDetails, error) {
	details, err := e.basicDetails(doc)
	if err != nil {
		e.GetLogger().WithError(err).Error("Error extracting basic details")
		return models.BasicDetails{}, &parsererror.FieldExtractionError{Section: SectionBasicDetails, Err: err}
	}
	return details, nil
}

func (e *Extractor) basicDetails(doc xmlutils.Map) (models.BasicDetails, error) {
	applicant, err := profile(doc, xmlutils.CurrentApplication,
		xmlutils.CurrentApplicationDetails, xmlutils.CurrentApplicantDetails)
	if err != nil {
		return models.BasicDetails{}, err
	}
	score, err := profile(doc, xmlutils.Score)
	if err != nil {
		return models.BasicDetails{}, err
	}

	firstName := applicant.TextAt(xmlutils.ApplicantFirstName)
	middleName := applicant.TextAt(xmlutils.ApplicantMiddleName)
	lastName := applicant.TextAt(xmlutils.ApplicantLastName)
	mobile := applicant.TextAt(xmlutils.ApplicantMobilePhone)
	pan := applicant.TextAt(xmlutils.ApplicantIncomeTaxPAN)

	var dob, gender, email, passport, voterID, drivingLicense, rationCard, universalID string

	tradeline, err := firstTradeline(doc)
	if err != nil {
		return models.BasicDetails{}, err
	}

	holder, err := xmlutils.First(tradeline[xmlutils.HolderDetails])
	if err != nil {
		return models.BasicDetails{}, err
	}
	if holder != nil {
		if firstName == "" || lastName == "" {
			firstName = firstNonEmpty(holder.TextAt(xmlutils.HolderFirstName), firstName)
			lastName = firstNonEmpty(holder.TextAt(xmlutils.HolderSurname), lastName)
		}
		pan = firstNonEmpty(holder.TextAt(xmlutils.HolderIncomeTaxPAN), pan)
		dob = holder.TextAt(xmlutils.HolderDateOfBirth)
		gender = holder.TextAt(xmlutils.HolderGenderCode)
		passport = holder.TextAt(xmlutils.PassportNumber)
		voterID = holder.TextAt(xmlutils.VoterIDNumber)
	}

	if mobile == "" {
		phone, err := xmlutils.First(tradeline[xmlutils.HolderPhoneDetails])
		if err != nil {
			return models.BasicDetails{}, err
		}
		if phone != nil {
			mobile = firstNonEmpty(phone.TextAt(xmlutils.HolderTelephone), phone.TextAt(xmlutils.HolderMobileTelephone))
			email = phone.TextAt(xmlutils.EmailID)
		}
	}

	ids, err := xmlutils.First(tradeline[xmlutils.HolderIDDetails])
	if err != nil {
		return models.BasicDetails{}, err
	}
	if ids != nil {
		passport = firstNonEmpty(passport, ids.TextAt(xmlutils.PassportNumber))
		voterID = firstNonEmpty(voterID, ids.TextAt(xmlutils.VoterIDNumber))
		drivingLicense = ids.TextAt(xmlutils.HolderDriverLicense)
		rationCard = ids.TextAt(xmlutils.HolderRationCard)
		universalID = ids.TextAt(xmlutils.HolderUniversalID)
		email = firstNonEmpty(email, ids.TextAt(xmlutils.EmailID))
	}

	creditScore := parseScore(score.TextAt(xmlutils.BureauScore))
	if creditScore != nil && (*creditScore < models.MinCreditScore || *creditScore > models.MaxCreditScore) {
		e.GetLogger().Warn("Credit score out of range", logging.F(logging.FieldCreditScore, *creditScore))
	}

	return models.BasicDetails{
		FirstName:      models.StringPtr(firstName),
		MiddleName:     models.StringPtr(middleName),
		LastName:       models.StringPtr(lastName),
		MobilePhone:    models.StringPtr(mobile),
		PAN:            models.StringPtr(pan),
		CreditScore:    creditScore,
		DateOfBirth:    models.StringPtr(formatDateOfBirth(dob)),
		Gender:         normalizeGender(gender),
		Email:          models.StringPtr(email),
		Passport:       models.StringPtr(passport),
		VoterID:        models.StringPtr(voterID),
		DrivingLicense: models.StringPtr(drivingLicense),
		RationCard:     models.StringPtr(rationCard),
		UniversalID:    models.StringPtr(universalID),
	}, nil
}

// firstTradeline returns the first CAIS_Account_DETAILS element, or nil.
func firstTradeline(doc xmlutils.Map) (xmlutils.Map, error) {
	accounts, err := tradelines(doc)
	if err != nil || len(accounts) == 0 {
		return nil, err
	}
	return accounts[0], nil
}
