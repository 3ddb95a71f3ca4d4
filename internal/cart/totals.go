package cart

import "github.com/shopspring/decimal"

// CheckedTotal sums price x quantity over the lines selected for checkout.
// Unchecked lines are excluded entirely.
func CheckedTotal(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		if line.Checked {
			total = total.Add(line.Subtotal())
		}
	}
	return total
}

// CheckedCount reports how many lines are selected for checkout, for the
// "N item(s) selected" display.
func CheckedCount(lines []Line) int {
	count := 0
	for _, line := range lines {
		if line.Checked {
			count++
		}
	}
	return count
}

// CheckedTotal sums the engine's current selection.
func (e *Engine) CheckedTotal() decimal.Decimal {
	return CheckedTotal(e.Lines())
}

// CheckedCount counts the engine's current selection.
func (e *Engine) CheckedCount() int {
	return CheckedCount(e.Lines())
}
