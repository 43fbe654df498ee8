package budget

import "SignalScout/internal/model"

// MinViableAmount is the floor under which no suggestion is produced.
const MinViableAmount = 50.0

// Qualifies reports whether a scored signal clears the configured thresholds.
func Qualifies(state model.BudgetState, c *model.ComboIndicators) bool {
	return c.Combo20 >= state.MinCombo20 &&
		c.Combo50 >= state.MinCombo50 &&
		c.SignalStrength >= state.MinSignalStrength
}

// SuggestAmount sizes a position for a qualifying signal. The remaining
// monthly and annual budgets bound the base amount; stronger signals get a
// proportional uplift capped at the hard position ceiling. The bonus is
// negative for weak-but-qualifying signals, shrinking the amount below base.
// Returns false when the result falls under MinViableAmount.
func SuggestAmount(state model.BudgetState, signalStrength int) (float64, bool) {
	base := state.MaxPositionSize
	if rem := state.MonthlyMaxBudget - state.CurrentMonthSpent; rem < base {
		base = rem
	}
	if rem := state.AnnualBudget - state.CurrentYearSpent; rem < base {
		base = rem
	}

	bonus := float64(signalStrength-70) / 30
	amount := base * (1 + bonus*0.5)
	if amount > state.MaxPositionSize {
		amount = state.MaxPositionSize
	}
	if amount < MinViableAmount {
		return 0, false
	}
	return amount, true
}
