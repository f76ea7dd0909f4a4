package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func reportWith(score *int, total, active, balance int64) *CreditReport {
	return &CreditReport{ExtractedReport: ExtractedReport{
		BasicDetails:  BasicDetails{CreditScore: score},
		ReportSummary: ReportSummary{TotalAccounts: total, ActiveAccounts: active, CurrentBalance: balance},
	}}
}

func TestStatsAccumulator_Empty(t *testing.T) {
	var acc StatsAccumulator
	assert.Equal(t, ReportStats{}, acc.Result())
}

func TestStatsAccumulator(t *testing.T) {
	var acc StatsAccumulator
	acc.Add(reportWith(IntPtr(700), 3, 2, 1000))
	acc.Add(reportWith(IntPtr(650), 4, 1, 2000))
	acc.Add(reportWith(IntPtr(801), 2, 2, 500))
	acc.Add(reportWith(nil, 1, 0, 0))

	assert.Equal(t, ReportStats{
		TotalReports:            4,
		AvgCreditScore:          717,
		MaxCreditScore:          801,
		MinCreditScore:          650,
		AvgTotalAccounts:        2.5,
		AvgActiveAccounts:       1.25,
		TotalOutstandingBalance: 3500,
	}, acc.Result())
}

func TestStatsAccumulator_RoundsToTwoDecimals(t *testing.T) {
	var acc StatsAccumulator
	acc.Add(reportWith(IntPtr(700), 1, 1, 0))
	acc.Add(reportWith(IntPtr(701), 1, 0, 0))
	acc.Add(reportWith(IntPtr(701), 0, 0, 0))

	stats := acc.Result()
	assert.Equal(t, 700.67, stats.AvgCreditScore)
	assert.Equal(t, 0.67, stats.AvgTotalAccounts)
	assert.Equal(t, 0.33, stats.AvgActiveAccounts)
}

func TestStatsAccumulator_NoScores(t *testing.T) {
	var acc StatsAccumulator
	acc.Add(reportWith(nil, 2, 1, 10))

	stats := acc.Result()
	assert.Equal(t, int64(1), stats.TotalReports)
	assert.Zero(t, stats.AvgCreditScore)
	assert.Zero(t, stats.MinCreditScore)
	assert.Zero(t, stats.MaxCreditScore)
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(10, 0))
	assert.Equal(t, 2.5, Average(5, 2))
	assert.Equal(t, 0.67, Average(2, 3))
	assert.Equal(t, -1.5, Average(-3, 2))
}
