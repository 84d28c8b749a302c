// Package service implements C6: the envelope that owns the mutable
// processor state, the monotonic transaction id counter, and the
// reader/writer lock discipline of spec.md §4.6 and §5.
package service

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"centralbank/internal/backup"
	"centralbank/internal/domain"
	"centralbank/internal/ledger"
)

// ErrNoAccessToken is returned by SubmitUntrusted when the request
// carries no access token, per spec.md §4.6's untrusted entry point.
var ErrNoAccessToken = domain.Unauthorized

// Envelope owns everything a running service needs around the pure
// processors: the lock, the id counter, and an optional broadcaster
// for /api/stream.
type Envelope struct {
	mu        sync.RWMutex
	processor *ledger.Processor
	counter   uint64
	logger    *zap.Logger
	notify    func(domain.Transaction)
}

// NewEnvelope builds an envelope over processor, with the id counter
// seeded from initialCounter (the highest TransactionId observed
// during replay, or 0 for an empty ledger, per spec.md §9).
func NewEnvelope(processor *ledger.Processor, initialCounter uint64, logger *zap.Logger) *Envelope {
	return &Envelope{processor: processor, counter: initialCounter, logger: logger}
}

// Snapshot takes the same read lock every pure query does and returns
// a consistent backup.Snapshot of the current state, stamped with the
// highest transaction id issued so far. This is the only sanctioned way
// to read state for a periodic cache: it shares the envelope's single
// reader/writer lock instead of a second, unrelated mutex (spec.md §5).
func (e *Envelope) Snapshot() backup.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	lastID := domain.TransactionId(atomic.LoadUint64(&e.counter))
	return backup.ToSnapshot(e.processor.State(), lastID)
}

// OnApplied registers a callback invoked, outside any lock, after every
// successful non-query transaction — the hook /api/stream's
// broadcaster subscribes through.
func (e *Envelope) OnApplied(fn func(domain.Transaction)) {
	e.notify = fn
}

// stamp promotes a request to a Transaction by assigning it the next
// id and the current UTC time. The id is issued before any lock is
// taken, which is why mutating transactions still take effect in id
// order (spec.md §5).
func (e *Envelope) stamp(req domain.TransactionRequest) domain.Transaction {
	id := domain.TransactionId(atomic.AddUint64(&e.counter, 1))
	return domain.Transaction{
		Id:            id,
		PerformedAt:   time.Now().UTC(),
		Account:       req.Account,
		Authorization: req.Authorization,
		AccessToken:   req.AccessToken,
		Action:        req.Action,
	}
}

// SubmitTrusted stamps and applies req without the token-presence gate
// the untrusted entry point enforces — used internally, e.g. to
// bootstrap the root token.
func (e *Envelope) SubmitTrusted(req domain.TransactionRequest) (domain.TransactionResult, error) {
	return e.submit(req)
}

// SubmitUntrusted is the external HTTP entry point: it rejects
// requests with no access token as Unauthorized before any lock is
// taken.
func (e *Envelope) SubmitUntrusted(req domain.TransactionRequest) (domain.TransactionResult, error) {
	if req.AccessToken == nil {
		return nil, ErrNoAccessToken
	}
	return e.submit(req)
}

func (e *Envelope) submit(req domain.TransactionRequest) (domain.TransactionResult, error) {
	tx := e.stamp(req)

	var (
		result domain.TransactionResult
		err    error
	)
	lockStart := time.Now()
	if domain.IsPureQuery(tx.Action) {
		e.mu.RLock()
		result, err = e.processor.Apply(tx)
		e.mu.RUnlock()
		lockHoldSeconds.WithLabelValues("read").Observe(time.Since(lockStart).Seconds())
	} else {
		e.mu.Lock()
		result, err = e.processor.Apply(tx)
		if err == nil {
			var total domain.CurrencyAmount
			for _, acct := range e.processor.State().Accounts {
				total += acct.Balance
			}
			totalBalanceGauge.Set(float64(total))
		}
		e.mu.Unlock()
		lockHoldSeconds.WithLabelValues("write").Observe(time.Since(lockStart).Seconds())
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	transactionsTotal.WithLabelValues(tx.Action.ActionTag(), outcome).Inc()

	if err == nil && !domain.IsPureQuery(tx.Action) && e.notify != nil {
		e.notify(tx)
	}
	return result, err
}
