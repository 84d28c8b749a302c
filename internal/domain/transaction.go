package domain

import (
	"encoding/json"
	"time"
)

// TransactionRequest is a transaction before it has been stamped with an
// id and a timestamp by the service envelope.
type TransactionRequest struct {
	Account       AccountId
	Authorization Authorization
	AccessToken   *AccessTokenId // nil means no token was presented
	Action        AccountAction
}

// Transaction is a TransactionRequest augmented with the identity and
// timestamp assigned at stamp time (spec.md §4.6).
type Transaction struct {
	Id            TransactionId
	PerformedAt   time.Time
	Account       AccountId
	Authorization Authorization
	AccessToken   *AccessTokenId
	Action        AccountAction
}

// Request strips the stamped fields back off, e.g. for re-presenting a
// replayed transaction to the pure Apply function.
func (t Transaction) Request() TransactionRequest {
	return TransactionRequest{
		Account:       t.Account,
		Authorization: t.Authorization,
		AccessToken:   t.AccessToken,
		Action:        t.Action,
	}
}

// wireTransaction is the JSON-on-the-wire shape for both
// TransactionRequest and Transaction: a plain object, not a Case/Fields
// envelope (only the tagged-union *leaves* use that shape).
type wireTransaction struct {
	Id            *TransactionId    `json:"id,omitempty"`
	PerformedAt   *time.Time        `json:"performed_at,omitempty"`
	Account       AccountId         `json:"account"`
	Authorization json.RawMessage   `json:"authorization"`
	AccessToken   *AccessTokenId    `json:"access_token,omitempty"`
	Action        json.RawMessage   `json:"action"`
}

func (r TransactionRequest) MarshalJSON() ([]byte, error) {
	authBytes, err := r.Authorization.MarshalJSON()
	if err != nil {
		return nil, err
	}
	actionBytes, err := r.Action.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireTransaction{
		Account:       r.Account,
		Authorization: authBytes,
		AccessToken:   r.AccessToken,
		Action:        actionBytes,
	})
}

func (r *TransactionRequest) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	auth, err := UnmarshalAuthorization(w.Authorization)
	if err != nil {
		return err
	}
	action, err := UnmarshalAccountAction(w.Action)
	if err != nil {
		return err
	}
	r.Account = w.Account
	r.Authorization = auth
	r.AccessToken = w.AccessToken
	r.Action = action
	return nil
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	authBytes, err := t.Authorization.MarshalJSON()
	if err != nil {
		return nil, err
	}
	actionBytes, err := t.Action.MarshalJSON()
	if err != nil {
		return nil, err
	}
	id := t.Id
	at := t.PerformedAt
	return json.Marshal(wireTransaction{
		Id:            &id,
		PerformedAt:   &at,
		Account:       t.Account,
		Authorization: authBytes,
		AccessToken:   t.AccessToken,
		Action:        actionBytes,
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	auth, err := UnmarshalAuthorization(w.Authorization)
	if err != nil {
		return err
	}
	action, err := UnmarshalAccountAction(w.Action)
	if err != nil {
		return err
	}
	if w.Id != nil {
		t.Id = *w.Id
	}
	if w.PerformedAt != nil {
		t.PerformedAt = *w.PerformedAt
	}
	t.Account = w.Account
	t.Authorization = auth
	t.AccessToken = w.AccessToken
	t.Action = action
	return nil
}
