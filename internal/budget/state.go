package budget

import (
	"time"

	"SignalScout/internal/model"
)

// ApplyMonthlyReset zeroes the monthly spent counter when now falls in a
// different calendar month than the last reset, and stamps the reset time.
// Idempotent within a month.
func ApplyMonthlyReset(state model.BudgetState, now time.Time) (model.BudgetState, bool) {
	ly, lm, _ := state.LastMonthReset.Date()
	ny, nm, _ := now.Date()
	if ly == ny && lm == nm {
		return state, false
	}
	state.CurrentMonthSpent = 0
	state.LastMonthReset = now
	return state, true
}

// ApplyYearlyReset zeroes the annual spent counter on a calendar year change.
// Idempotent within a year.
func ApplyYearlyReset(state model.BudgetState, now time.Time) (model.BudgetState, bool) {
	if state.LastYearReset.Year() == now.Year() {
		return state, false
	}
	state.CurrentYearSpent = 0
	state.LastYearReset = now
	return state, true
}

// ApplySpend accrues an executed investment against both spend counters.
func ApplySpend(state model.BudgetState, amount float64) model.BudgetState {
	state.CurrentMonthSpent += amount
	state.CurrentYearSpent += amount
	return state
}
