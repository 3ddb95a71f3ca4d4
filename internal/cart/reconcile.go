package cart

// Reconcile folds a raw backend line listing into the canonical cart view:
// at most one line per variant id, duplicate quantities summed onto the
// first occurrence, input order otherwise preserved. Lines without a
// resolvable variant cannot be merged safely and are kept as-is.
func Reconcile(raw []Line) []Line {
	merged := make([]Line, 0, len(raw))
	for _, line := range raw {
		variantID := line.VariantID()
		if variantID == "" {
			merged = append(merged, line)
			continue
		}

		found := false
		for i := range merged {
			if merged[i].VariantID() == variantID {
				merged[i].Quantity += line.Quantity
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, line)
		}
	}
	return merged
}
