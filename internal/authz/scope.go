package authz

import "centralbank/internal/domain"

// InScope reports whether scope admits action: Unbounded admits
// everything, and otherwise each concrete action matches exactly one
// non-Unbounded scope (spec.md §4.1, property P7).
func InScope(action domain.AccountAction, scope domain.AccessScope) bool {
	if scope == domain.ScopeUnbounded {
		return true
	}
	switch action.(type) {
	case domain.Transfer:
		return scope == domain.ScopeTransfer
	case domain.Mint:
		return scope == domain.ScopeMint
	case domain.QueryBalance:
		return scope == domain.ScopeQueryBalance
	case domain.QueryHistory:
		return scope == domain.ScopeQueryHistory
	case domain.QueryPrivileges:
		return scope == domain.ScopeQueryPrivileges
	case domain.OpenAccount:
		return scope == domain.ScopeOpenAccount
	case domain.AddPrivileges, domain.RemovePrivileges, domain.CreateToken:
		return scope == domain.ScopeAdmin
	default:
		return false
	}
}

// InScopeAny reports whether any scope in the set admits action.
func InScopeAny(action domain.AccountAction, scopes domain.ScopeSet) bool {
	for s := range scopes {
		if InScope(action, s) {
			return true
		}
	}
	return false
}
