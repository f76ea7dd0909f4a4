package models

// Gender labels produced by the extractor.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Nominal bureau score range. Scores outside it are kept but flagged.
const (
	MinCreditScore = 300
	MaxCreditScore = 900
)

// Sort keys accepted when listing stored reports.
const (
	SortByUploadedAt  = "uploadedAt"
	SortByCreditScore = "creditScore"
	SortByReportDate  = "reportDate"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// File permissions
const (
	PermissionOutputFile = 0644
	PermissionDirectory  = 0750
)
