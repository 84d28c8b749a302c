// Package domain defines the central-bank accounting engine's data model:
// accounts, scopes, actions, authorization chains, transactions and their
// results and errors. Nothing in this package touches HTTP, storage or
// concurrency — it is pure value types and the wire encoding they share.
package domain

// AccountId is an opaque, non-empty account name. Names beginning with
// "@" are reserved for the system, e.g. "@root".
type AccountId string

// AccessTokenId is an opaque access-token identifier, canonically 40
// random bytes, base64-encoded.
type AccessTokenId string

// TransactionId is a monotonically increasing identifier assigned when a
// request is stamped into a Transaction.
type TransactionId uint64

// CurrencyAmount is a signed integer amount of the system's single
// currency. Balances must never go negative; amounts used in Mint and
// Transfer must be strictly positive.
type CurrencyAmount int64
