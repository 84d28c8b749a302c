// Package engine implements the pure in-memory transaction processor of
// spec.md §4.2: validation, authentication, and deterministic state
// mutation over a map of accounts. The processor itself holds no state
// and performs no I/O — it is safe to call concurrently only insofar as
// callers serialize mutating calls themselves (the service envelope in
// package service does this with a reader/writer lock).
package engine

import "centralbank/internal/domain"

// DefaultPrivileges seeds every newly opened account, per spec.md §4.2.
var DefaultPrivileges = domain.NewScopeSet(
	domain.ScopeQueryBalance,
	domain.ScopeQueryHistory,
	domain.ScopeQueryPrivileges,
	domain.ScopeTransfer,
)

// AccountData is the value the state map owns for one account.
type AccountData struct {
	Balance     domain.CurrencyAmount
	ProxyAccess map[domain.AccountId]struct{}
	Privileges  domain.ScopeSet
	Tokens      map[domain.AccessTokenId]domain.ScopeSet
}

// NewAccountData returns an account with empty proxy access and tokens
// and the given privileges.
func NewAccountData(privileges domain.ScopeSet) *AccountData {
	return &AccountData{
		ProxyAccess: make(map[domain.AccountId]struct{}),
		Privileges:  privileges,
		Tokens:      make(map[domain.AccessTokenId]domain.ScopeSet),
	}
}

// State is the full mutable state the processor operates over: the
// account map plus the privilege set newly opened accounts receive.
// State.Accounts holds pointers so that Apply can mutate an account in
// place under the caller's write lock, per the design note in spec.md §9
// ("mutate in place under the write lock" is observationally equivalent
// to copy-on-write here, since the envelope already serializes writers).
type State struct {
	Accounts          map[domain.AccountId]*AccountData
	DefaultPrivileges domain.ScopeSet
}

// NewState returns an empty state with the canonical default
// privileges.
func NewState() *State {
	return &State{
		Accounts:          make(map[domain.AccountId]*AccountData),
		DefaultPrivileges: DefaultPrivileges.Clone(),
	}
}
