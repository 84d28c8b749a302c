package domain

import "fmt"

// TransactionResult is the tagged union of values a successful Apply can
// produce.
type TransactionResult interface {
	resultTag() string
	MarshalJSON() ([]byte, error)
}

// Successful carries the id of a transaction whose action mutated state
// with no further data to report.
type Successful struct {
	Id TransactionId
}

func (Successful) resultTag() string { return "Successful" }
func (r Successful) MarshalJSON() ([]byte, error) {
	return encodeCase(r.resultTag(), r.Id)
}

// History carries the transactions a QueryHistory action found.
type History struct {
	Transactions []Transaction
}

func (History) resultTag() string { return "History" }
func (r History) MarshalJSON() ([]byte, error) {
	return encodeCase(r.resultTag(), r.Transactions)
}

// Balance carries the result of a QueryBalance action.
type Balance struct {
	Amount CurrencyAmount
}

func (Balance) resultTag() string { return "Balance" }
func (r Balance) MarshalJSON() ([]byte, error) {
	return encodeCase(r.resultTag(), r.Amount)
}

// AccessToken carries the id of a token created by CreateToken or
// OpenAccount.
type AccessToken struct {
	Id AccessTokenId
}

func (AccessToken) resultTag() string { return "AccessToken" }
func (r AccessToken) MarshalJSON() ([]byte, error) {
	return encodeCase(r.resultTag(), r.Id)
}

// AccessScopes carries the result of a QueryPrivileges action.
type AccessScopes struct {
	Scopes []AccessScope
}

func (AccessScopes) resultTag() string { return "AccessScopes" }
func (r AccessScopes) MarshalJSON() ([]byte, error) {
	return encodeCase(r.resultTag(), r.Scopes)
}

// UnmarshalTransactionResult decodes the Case/Fields wire shape into the
// concrete TransactionResult variant it names. Used primarily by HTTP
// clients of this service.
func UnmarshalTransactionResult(data []byte) (TransactionResult, error) {
	tag, fields, err := decodeCase(data)
	if err != nil {
		return nil, fmt.Errorf("domain: decode TransactionResult: %w", err)
	}
	switch tag {
	case "Successful":
		var r Successful
		if err := field(tag, fields, 0, &r.Id); err != nil {
			return nil, err
		}
		return r, nil
	case "History":
		var r History
		if err := field(tag, fields, 0, &r.Transactions); err != nil {
			return nil, err
		}
		return r, nil
	case "Balance":
		var r Balance
		if err := field(tag, fields, 0, &r.Amount); err != nil {
			return nil, err
		}
		return r, nil
	case "AccessToken":
		var r AccessToken
		if err := field(tag, fields, 0, &r.Id); err != nil {
			return nil, err
		}
		return r, nil
	case "AccessScopes":
		var r AccessScopes
		if err := field(tag, fields, 0, &r.Scopes); err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("domain: unknown TransactionResult Case %q", tag)
	}
}
