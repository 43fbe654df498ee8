package model

import "time"

// BudgetState carries the configured thresholds and the running spend
// counters. Treated as an immutable value; the transitions in the budget
// package produce a new state rather than mutating in place.
type BudgetState struct {
	AnnualBudget       float64   `json:"annualBudget"`
	MonthlyMaxBudget   float64   `json:"monthlyMaxBudget"`
	MaxPositionSize    float64   `json:"maxPositionSize"`
	MinCombo20         float64   `json:"minCombo20"`
	MinCombo50         float64   `json:"minCombo50"`
	MinSignalStrength  int       `json:"minSignalStrength"`
	EmailNotifications bool      `json:"emailNotifications"`
	CurrentMonthSpent  float64   `json:"currentMonthSpent"`
	CurrentYearSpent   float64   `json:"currentYearSpent"`
	LastMonthReset     time.Time `json:"lastMonthReset"`
	LastYearReset      time.Time `json:"lastYearReset"`
}
