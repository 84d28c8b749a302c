package domain

import "fmt"

// AccountAction is the tagged union of operations a transaction may
// request. The set is closed — see spec.md §3.
type AccountAction interface {
	ActionTag() string
	MarshalJSON() ([]byte, error)
}

// Transfer moves Amount from the acting account to Destination.
type Transfer struct {
	Amount      CurrencyAmount
	Destination AccountId
}

func (Transfer) ActionTag() string { return "Transfer" }
func (a Transfer) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.Amount, a.Destination)
}

// Mint credits Amount to the acting account out of nothing.
type Mint struct {
	Amount CurrencyAmount
}

func (Mint) ActionTag() string { return "Mint" }
func (a Mint) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.Amount)
}

// QueryBalance asks for the acting account's current balance.
type QueryBalance struct{}

func (QueryBalance) ActionTag() string { return "QueryBalance" }
func (a QueryBalance) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag())
}

// QueryPrivileges asks for the acting account's privilege set.
type QueryPrivileges struct{}

func (QueryPrivileges) ActionTag() string { return "QueryPrivileges" }
func (a QueryPrivileges) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag())
}

// QueryHistory asks for every transaction at or after Since that the
// acting account is a party to, per the filter in spec.md §4.3.
type QueryHistory struct {
	Since int64 // Unix nanoseconds, matching Transaction.PerformedAt
}

func (QueryHistory) ActionTag() string { return "QueryHistory" }
func (a QueryHistory) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.Since)
}

// OpenAccount creates NewId with an initial token InitialTokenId.
type OpenAccount struct {
	NewId          AccountId
	InitialTokenId AccessTokenId
}

func (OpenAccount) ActionTag() string { return "OpenAccount" }
func (a OpenAccount) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.NewId, a.InitialTokenId)
}

// CreateToken issues a new access token on the acting account with the
// given scopes.
type CreateToken struct {
	TokenId AccessTokenId
	Scopes  []AccessScope
}

func (CreateToken) ActionTag() string { return "CreateToken" }
func (a CreateToken) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.TokenId, a.Scopes)
}

// AddPrivileges grants Scopes to Target's privilege set.
type AddPrivileges struct {
	Target AccountId
	Scopes []AccessScope
}

func (AddPrivileges) ActionTag() string { return "AddPrivileges" }
func (a AddPrivileges) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.Target, a.Scopes)
}

// RemovePrivileges revokes Scopes from Target's privilege set.
type RemovePrivileges struct {
	Target AccountId
	Scopes []AccessScope
}

func (RemovePrivileges) ActionTag() string { return "RemovePrivileges" }
func (a RemovePrivileges) MarshalJSON() ([]byte, error) {
	return encodeCase(a.ActionTag(), a.Target, a.Scopes)
}

// UnmarshalAccountAction decodes the Case/Fields wire shape into the
// concrete AccountAction variant it names.
func UnmarshalAccountAction(data []byte) (AccountAction, error) {
	tag, fields, err := decodeCase(data)
	if err != nil {
		return nil, fmt.Errorf("domain: decode AccountAction: %w", err)
	}
	switch tag {
	case "Transfer":
		var a Transfer
		if err := field(tag, fields, 0, &a.Amount); err != nil {
			return nil, err
		}
		if err := field(tag, fields, 1, &a.Destination); err != nil {
			return nil, err
		}
		return a, nil
	case "Mint":
		var a Mint
		if err := field(tag, fields, 0, &a.Amount); err != nil {
			return nil, err
		}
		return a, nil
	case "QueryBalance":
		return QueryBalance{}, nil
	case "QueryPrivileges":
		return QueryPrivileges{}, nil
	case "QueryHistory":
		var a QueryHistory
		if err := field(tag, fields, 0, &a.Since); err != nil {
			return nil, err
		}
		return a, nil
	case "OpenAccount":
		var a OpenAccount
		if err := field(tag, fields, 0, &a.NewId); err != nil {
			return nil, err
		}
		if err := field(tag, fields, 1, &a.InitialTokenId); err != nil {
			return nil, err
		}
		return a, nil
	case "CreateToken":
		var a CreateToken
		if err := field(tag, fields, 0, &a.TokenId); err != nil {
			return nil, err
		}
		if err := field(tag, fields, 1, &a.Scopes); err != nil {
			return nil, err
		}
		return a, nil
	case "AddPrivileges":
		var a AddPrivileges
		if err := field(tag, fields, 0, &a.Target); err != nil {
			return nil, err
		}
		if err := field(tag, fields, 1, &a.Scopes); err != nil {
			return nil, err
		}
		return a, nil
	case "RemovePrivileges":
		var a RemovePrivileges
		if err := field(tag, fields, 0, &a.Target); err != nil {
			return nil, err
		}
		if err := field(tag, fields, 1, &a.Scopes); err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("domain: unknown AccountAction Case %q", tag)
	}
}

// IsPureQuery reports whether action only observes state, never
// mutates it — the classification the service envelope uses to decide
// between the read and write lock (spec.md §4.6).
func IsPureQuery(action AccountAction) bool {
	switch action.(type) {
	case QueryBalance, QueryPrivileges, QueryHistory:
		return true
	default:
		return false
	}
}
