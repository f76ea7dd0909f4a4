package models

import "github.com/shopspring/decimal"

// ReportStats aggregates every stored report.
type ReportStats struct {
	TotalReports            int64   `json:"totalReports" yaml:"totalReports"`
	AvgCreditScore          float64 `json:"avgCreditScore" yaml:"avgCreditScore"`
	MaxCreditScore          int     `json:"maxCreditScore" yaml:"maxCreditScore"`
	MinCreditScore          int     `json:"minCreditScore" yaml:"minCreditScore"`
	AvgTotalAccounts        float64 `json:"avgTotalAccounts" yaml:"avgTotalAccounts"`
	AvgActiveAccounts       float64 `json:"avgActiveAccounts" yaml:"avgActiveAccounts"`
	TotalOutstandingBalance int64   `json:"totalOutstandingBalance" yaml:"totalOutstandingBalance"`
}

// StatsPrecision is the number of decimals averages are rounded to.
const StatsPrecision = 2

// StatsAccumulator folds reports into ReportStats. Reports without a credit
// score count towards TotalReports but not towards the score aggregates.
type StatsAccumulator struct {
	reports      int64
	scored       int64
	scoreSum     int64
	minScore     int
	maxScore     int
	totalSum     int64
	activeSum    int64
	balanceTotal int64
}

// Add folds one report into the accumulator.
func (a *StatsAccumulator) Add(r *CreditReport) {
	a.reports++
	a.totalSum += r.ReportSummary.TotalAccounts
	a.activeSum += r.ReportSummary.ActiveAccounts
	a.balanceTotal += r.ReportSummary.CurrentBalance

	if r.BasicDetails.CreditScore == nil {
		return
	}
	score := *r.BasicDetails.CreditScore
	if a.scored == 0 || score < a.minScore {
		a.minScore = score
	}
	if a.scored == 0 || score > a.maxScore {
		a.maxScore = score
	}
	a.scored++
	a.scoreSum += int64(score)
}

// Result returns the aggregated statistics; an empty accumulator yields zeros.
func (a *StatsAccumulator) Result() ReportStats {
	stats := ReportStats{
		TotalReports:            a.reports,
		MinCreditScore:          a.minScore,
		MaxCreditScore:          a.maxScore,
		TotalOutstandingBalance: a.balanceTotal,
	}
	stats.AvgCreditScore = Average(a.scoreSum, a.scored)
	stats.AvgTotalAccounts = Average(a.totalSum, a.reports)
	stats.AvgActiveAccounts = Average(a.activeSum, a.reports)
	return stats
}

// Average divides sum by n, rounded to StatsPrecision decimals. It is 0 when
// n is 0.
func Average(sum, n int64) float64 {
	if n == 0 {
		return 0
	}
	v, _ := decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(n), StatsPrecision).Float64()
	return v
}
