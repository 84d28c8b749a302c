package backup

import (
	"encoding/json"
	"os"
	"sort"
	"time"

	"centralbank/internal/domain"
	"centralbank/internal/engine"
)

// ToSnapshot serializes state into the persistable Snapshot shape.
// lastId is the highest transaction id reflected in state, recorded so
// a resuming process knows which ledger entries it can skip.
func ToSnapshot(state *engine.State, lastId domain.TransactionId) Snapshot {
	snap := Snapshot{
		Meta: Meta{Storage: "json_snapshot", Version: 1, LastTransactionId: lastId},
	}
	for id, acct := range state.Accounts {
		proxy := make([]string, 0, len(acct.ProxyAccess))
		for p := range acct.ProxyAccess {
			proxy = append(proxy, string(p))
		}
		sort.Strings(proxy)

		privileges := make([]string, 0, len(acct.Privileges))
		for _, s := range acct.Privileges.Slice() {
			privileges = append(privileges, string(s))
		}
		sort.Strings(privileges)

		tokens := make(map[string][]string, len(acct.Tokens))
		for tok, scopes := range acct.Tokens {
			names := make([]string, 0, len(scopes))
			for _, s := range scopes.Slice() {
				names = append(names, string(s))
			}
			sort.Strings(names)
			tokens[string(tok)] = names
		}

		snap.Accounts = append(snap.Accounts, PersistAccount{
			Id:          string(id),
			Balance:     int64(acct.Balance),
			ProxyAccess: proxy,
			Privileges:  privileges,
			Tokens:      tokens,
		})
	}
	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].Id < snap.Accounts[j].Id })
	return snap
}

// FromSnapshot rebuilds an engine.State from a Snapshot.
func FromSnapshot(snap Snapshot) *engine.State {
	state := engine.NewState()
	for _, pa := range snap.Accounts {
		acct := &engine.AccountData{
			Balance:     domain.CurrencyAmount(pa.Balance),
			ProxyAccess: make(map[domain.AccountId]struct{}, len(pa.ProxyAccess)),
			Privileges:  domain.NewScopeSet(),
			Tokens:      make(map[domain.AccessTokenId]domain.ScopeSet, len(pa.Tokens)),
		}
		for _, p := range pa.ProxyAccess {
			acct.ProxyAccess[domain.AccountId(p)] = struct{}{}
		}
		for _, s := range pa.Privileges {
			acct.Privileges[domain.AccessScope(s)] = struct{}{}
		}
		for tok, scopes := range pa.Tokens {
			set := domain.NewScopeSet()
			for _, s := range scopes {
				set[domain.AccessScope(s)] = struct{}{}
			}
			acct.Tokens[domain.AccessTokenId(tok)] = set
		}
		state.Accounts[domain.AccountId(pa.Id)] = acct
	}
	return state
}

// Load reads the JSON snapshot at path.
func Load(path string) (Snapshot, error) {
	var snap Snapshot
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()
	err = json.NewDecoder(f).Decode(&snap)
	return snap, err
}

// Save writes snap to path using the teacher's atomic tmp-file-then-
// rename technique, so a crash mid-write never corrupts the prior
// snapshot.
func Save(path string, snap Snapshot) error {
	snap.Meta.Storage = "json_snapshot"
	snap.Meta.Timestamp = time.Now()
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
