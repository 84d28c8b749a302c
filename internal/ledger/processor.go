package ledger

import (
	"errors"
	"sort"

	"centralbank/internal/domain"
	"centralbank/internal/engine"
)

// Processor wraps the pure C3 engine with a Store, implementing C4: it
// persists every successful mutation and answers QueryHistory itself,
// since the inner engine always reports ActionNotImplemented for it.
type Processor struct {
	state *engine.State
	store Store
}

// NewProcessor builds a processor over the given state and store. It
// does not replay the store; call Load for that.
func NewProcessor(state *engine.State, store Store) *Processor {
	return &Processor{state: state, store: store}
}

// State exposes the underlying engine state for callers that already
// hold the envelope's lock, e.g. to compute an operational metric like
// total money supply.
func (p *Processor) State() *engine.State {
	return p.state
}

// Apply runs tx through the inner engine. A successful non-query result
// is appended to the store before being returned. A QueryHistory whose
// inner result is ActionNotImplemented is answered here instead, per
// spec.md §4.3.
func (p *Processor) Apply(tx domain.Transaction) (domain.TransactionResult, error) {
	result, err := engine.Apply(tx, p.state)
	if err != nil {
		if since, ok := tx.Action.(domain.QueryHistory); ok && errors.Is(err, domain.ActionNotImplemented) {
			return p.history(tx, since)
		}
		return nil, err
	}
	if !domain.IsPureQuery(tx.Action) {
		if err := p.store.Append(tx); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// history scans the store for every transaction at or after since.Since
// where the caller is either the acting account or the recipient of a
// Transfer, ordered by PerformedAt descending. State is unchanged.
func (p *Processor) history(tx domain.Transaction, since domain.QueryHistory) (domain.TransactionResult, error) {
	all, err := p.store.Scan()
	if err != nil {
		return nil, err
	}

	var matched []domain.Transaction
	for _, candidate := range all {
		if candidate.PerformedAt.UnixNano() < since.Since {
			continue
		}
		if candidate.Account == tx.Account {
			matched = append(matched, candidate)
			continue
		}
		if transfer, ok := candidate.Action.(domain.Transfer); ok && transfer.Destination == tx.Account {
			matched = append(matched, candidate)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].PerformedAt.After(matched[j].PerformedAt)
	})
	return domain.History{Transactions: matched}, nil
}

// Load replays every transaction the store holds through the inner
// engine, folding it into state. A transaction that errors on replay
// (e.g. an impossible ordering left by a prior crash) is silently
// dropped rather than aborting startup — spec.md §9 sanctions this
// lossy-but-available recovery path.
func Load(state *engine.State, store Store) error {
	return LoadSince(state, store, 0)
}

// LoadSince replays every transaction the store holds whose id is
// greater than after, folding it into state. Used to resume from a
// backup.Snapshot: state already reflects every transaction up to
// after, so only later ledger entries need replaying.
func LoadSince(state *engine.State, store Store, after domain.TransactionId) error {
	txs, err := store.Scan()
	if err != nil {
		return err
	}
	for _, tx := range txs {
		if tx.Id <= after {
			continue
		}
		_, _ = engine.Apply(tx, state)
	}
	return nil
}
