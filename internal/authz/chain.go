// Package authz implements the pure authorization helpers of spec.md
// §4.1: proxy-chain construction, final-authorizer extraction, scope
// membership and action validation. Every function here is a pure
// function of a domain.Transaction (or its pieces) — no state, no I/O.
package authz

import "centralbank/internal/domain"

// ProxyChain reads a transaction's authorization head-first and returns
// the full chain of accounts it names, terminating in the subject
// account (SelfAuthorized) or the admin account (AdminAuthorized).
//
// For example, ProxyAuthorized("foo", ProxyAuthorized("admin", Self))
// on account "@gov" yields ["foo", "admin", "@gov"].
func ProxyChain(t domain.Transaction) []domain.AccountId {
	var hops []domain.AccountId
	cur := t.Authorization
	for {
		switch a := cur.(type) {
		case domain.ProxyAuthorized:
			hops = append(hops, a.ProxyId)
			cur = a.Tail
		case domain.AdminAuthorized:
			return append(hops, a.AdminId)
		case domain.SelfAuthorized:
			return append(hops, t.Account)
		default:
			return append(hops, t.Account)
		}
	}
}

// FinalAuthorizer walks a transaction's authorization to its innermost
// non-proxy principal: the admin under AdminAuthorized, or the account
// itself under SelfAuthorized.
func FinalAuthorizer(t domain.Transaction) domain.AccountId {
	return finalAuthorizer(t.Authorization, t.Account)
}

func finalAuthorizer(auth domain.Authorization, account domain.AccountId) domain.AccountId {
	switch a := auth.(type) {
	case domain.ProxyAuthorized:
		return finalAuthorizer(a.Tail, account)
	case domain.AdminAuthorized:
		return a.AdminId
	default:
		return account
	}
}

// IsAdminAuthorized reports whether some node in the transaction's
// authorization chain is AdminAuthorized.
func IsAdminAuthorized(t domain.Transaction) bool {
	return isAdminAuthorized(t.Authorization)
}

func isAdminAuthorized(auth domain.Authorization) bool {
	switch a := auth.(type) {
	case domain.AdminAuthorized:
		return true
	case domain.ProxyAuthorized:
		return isAdminAuthorized(a.Tail)
	default:
		return false
	}
}
