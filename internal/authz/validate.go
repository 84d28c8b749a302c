package authz

import "centralbank/internal/domain"

// ValidateAction checks preconditions that must hold before
// authentication even runs, so they're visible to unprivileged callers
// too (spec.md §4.2 step 1, §7). Currently this means rejecting
// non-positive amounts on Mint and Transfer.
func ValidateAction(action domain.AccountAction) error {
	switch a := action.(type) {
	case domain.Mint:
		if a.Amount <= 0 {
			return domain.InvalidAmount
		}
	case domain.Transfer:
		if a.Amount <= 0 {
			return domain.InvalidAmount
		}
	}
	return nil
}
