// Package backup adapts the teacher's JSON-snapshot storage layer into
// a periodic full-state cache: a fast-restart optimization layered on
// top of the append-only ledger in internal/ledger, not a replacement
// for it. Losing the snapshot only costs a slower cold start (the
// ledger is replayed from scratch); losing the ledger loses history.
package backup

import (
	"time"

	"centralbank/internal/domain"
)

// Meta is the snapshot's metadata block, carried for the same reasons
// the teacher's storage.Meta is: future format migration, debugging,
// and provenance. LastTransactionId is the high-water mark of
// transaction ids reflected in Accounts: on startup, only ledger
// entries with a greater id still need replaying.
type Meta struct {
	Storage           string               `json:"storage"`
	Version           int                  `json:"version"`
	Timestamp         time.Time            `json:"timestamp"`
	Note              string               `json:"note,omitempty"`
	LastTransactionId domain.TransactionId `json:"last_transaction_id"`
}

// PersistAccount is one account's serialized form in a snapshot.
type PersistAccount struct {
	Id          string              `json:"id"`
	Balance     int64               `json:"balance"`
	ProxyAccess []string            `json:"proxy_access"`
	Privileges  []string            `json:"privileges"`
	Tokens      map[string][]string `json:"tokens"`
}

// Snapshot is the full engine.State, serialized.
type Snapshot struct {
	Meta     Meta             `json:"_meta"`
	Accounts []PersistAccount `json:"accounts"`
}
