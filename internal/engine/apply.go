package engine

import (
	"centralbank/internal/authz"
	"centralbank/internal/domain"
)

// Apply authenticates and applies one transaction against state,
// mutating state in place and returning the result. It is the single
// entry point for C3, sequencing validation, authentication, existence
// checks and action dispatch exactly as spec.md §4.2 describes — it
// short-circuits on the first failure.
func Apply(tx domain.Transaction, state *State) (domain.TransactionResult, error) {
	if err := authz.ValidateAction(tx.Action); err != nil {
		return nil, err
	}
	if err := authenticate(tx, state); err != nil {
		return nil, domain.Unauthorized
	}
	src, ok := state.Accounts[tx.Account]
	if !ok {
		return nil, domain.Unauthorized
	}
	return dispatch(tx, src, state)
}

// authenticate runs the four-part conjunction of spec.md §4.2: a real
// proxy chain, a privileged admin (if admin-authorized), the target
// account's own scope, and — if presented — a token on the final
// authorizer that admits the action.
func authenticate(tx domain.Transaction, state *State) error {
	chain := authz.ProxyChain(tx)
	for i := 0; i+1 < len(chain); i++ {
		x, y := chain[i], chain[i+1]
		acct, ok := state.Accounts[x]
		if !ok {
			return domain.Unauthorized
		}
		if _, allowed := acct.ProxyAccess[y]; !allowed {
			return domain.Unauthorized
		}
	}
	last := chain[len(chain)-1]
	if _, ok := state.Accounts[last]; !ok {
		return domain.Unauthorized
	}

	if authz.IsAdminAuthorized(tx) {
		finalAcct := state.Accounts[authz.FinalAuthorizer(tx)]
		if !finalAcct.Privileges.Has(domain.ScopeAdmin) && !finalAcct.Privileges.Has(domain.ScopeUnbounded) {
			return domain.Unauthorized
		}
	}

	actingAccount, ok := state.Accounts[tx.Account]
	if !ok {
		return domain.Unauthorized
	}
	if !authz.InScopeAny(tx.Action, actingAccount.Privileges) {
		return domain.Unauthorized
	}

	if tx.AccessToken != nil {
		finalAcct := state.Accounts[authz.FinalAuthorizer(tx)]
		scopes, ok := finalAcct.Tokens[*tx.AccessToken]
		if !ok {
			return domain.Unauthorized
		}
		if !authz.InScopeAny(tx.Action, scopes) {
			return domain.Unauthorized
		}
	}
	return nil
}

// dispatch executes the action-specific semantics of spec.md §4.2 once
// validation and authentication have passed.
func dispatch(tx domain.Transaction, src *AccountData, state *State) (domain.TransactionResult, error) {
	switch a := tx.Action.(type) {
	case domain.QueryBalance:
		return domain.Balance{Amount: src.Balance}, nil

	case domain.QueryPrivileges:
		return domain.AccessScopes{Scopes: src.Privileges.Slice()}, nil

	case domain.QueryHistory:
		return nil, domain.ActionNotImplemented

	case domain.OpenAccount:
		if _, exists := state.Accounts[a.NewId]; exists {
			return nil, domain.AccountAlreadyExists
		}
		fresh := NewAccountData(state.DefaultPrivileges.Clone())
		fresh.Tokens[a.InitialTokenId] = domain.NewScopeSet(domain.ScopeUnbounded)
		state.Accounts[a.NewId] = fresh
		return domain.AccessToken{Id: a.InitialTokenId}, nil

	case domain.CreateToken:
		if _, exists := src.Tokens[a.TokenId]; exists {
			return nil, domain.TokenAlreadyExists
		}
		src.Tokens[a.TokenId] = domain.NewScopeSet(a.Scopes...)
		return domain.AccessToken{Id: a.TokenId}, nil

	case domain.AddPrivileges:
		target, ok := state.Accounts[a.Target]
		if !ok {
			return nil, domain.DestinationDoesNotExist
		}
		target.Privileges = target.Privileges.Union(domain.NewScopeSet(a.Scopes...))
		return domain.Successful{Id: tx.Id}, nil

	case domain.RemovePrivileges:
		target, ok := state.Accounts[a.Target]
		if !ok {
			return nil, domain.DestinationDoesNotExist
		}
		target.Privileges = target.Privileges.Without(domain.NewScopeSet(a.Scopes...))
		return domain.Successful{Id: tx.Id}, nil

	case domain.Mint:
		src.Balance += a.Amount
		return domain.Successful{Id: tx.Id}, nil

	case domain.Transfer:
		dest, ok := state.Accounts[a.Destination]
		if !ok {
			return nil, domain.DestinationDoesNotExist
		}
		if src.Balance-a.Amount < 0 {
			return nil, domain.InsufficientFunds
		}
		src.Balance -= a.Amount
		dest.Balance += a.Amount
		return domain.Successful{Id: tx.Id}, nil

	default:
		return nil, domain.ActionNotImplemented
	}
}
