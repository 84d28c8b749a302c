// Package ledger implements C4: a history-aware processor wrapping the
// pure C3 engine with an append-only transaction store. It answers
// QueryHistory itself (the one action the inner engine always reports
// ActionNotImplemented for) and persists every other successful,
// non-query transaction before returning.
package ledger

import "centralbank/internal/domain"

// Store is an append-only, insertion-ordered transaction log. Scan
// yields transactions in the order they were appended, which coincides
// with TransactionId order under normal operation (spec.md §4.3).
type Store interface {
	Append(tx domain.Transaction) error
	Scan() ([]domain.Transaction, error)
	Close() error
}
