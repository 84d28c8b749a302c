// Package bootstrap seeds the @root account and prints its tokens at
// boot, per spec.md §4.2 ("the service layer seeds @root...
// before replay") and §6 ("Boot output").
package bootstrap

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"sort"
	"strings"

	"centralbank/internal/domain"
	"centralbank/internal/engine"
)

// RootAccount is the well-known administrative account every bootstrap
// seeds, per spec.md §4.2.
const RootAccount domain.AccountId = "@root"

// tokenEntropyBytes matches the "40 random bytes" entropy budget of the
// original chat-bot front-end's token issuance.
const tokenEntropyBytes = 40

// EnsureRoot seeds @root with an empty balance and Unbounded privileges
// if it does not yet exist, then ensures it carries at least one token,
// minting a fresh Unbounded one if it has none. It returns every token
// id currently on @root, sorted, for the caller to print per §6's boot
// output contract.
func EnsureRoot(state *engine.State) ([]domain.AccessTokenId, error) {
	root, ok := state.Accounts[RootAccount]
	if !ok {
		root = &engine.AccountData{
			ProxyAccess: make(map[domain.AccountId]struct{}),
			Privileges:  domain.NewScopeSet(domain.ScopeUnbounded),
			Tokens:      make(map[domain.AccessTokenId]domain.ScopeSet),
		}
		state.Accounts[RootAccount] = root
	}

	if len(root.Tokens) == 0 {
		tokenID, err := newTokenID(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: generate root token: %w", err)
		}
		root.Tokens[tokenID] = domain.NewScopeSet(domain.ScopeUnbounded)
	}

	ids := make([]domain.AccessTokenId, 0, len(root.Tokens))
	for id := range root.Tokens {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func newTokenID(entropy io.Reader) (domain.AccessTokenId, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := io.ReadFull(entropy, buf); err != nil {
		return "", err
	}
	return domain.AccessTokenId(base64.RawURLEncoding.EncodeToString(buf)), nil
}

// PrintRootTokens writes the "Root tokens:" boot banner spec.md §6
// requires, one line per token of the form "- <token_id> <scopes>".
func PrintRootTokens(w io.Writer, state *engine.State, ids []domain.AccessTokenId) {
	fmt.Fprintln(w, "Root tokens:")
	root := state.Accounts[RootAccount]
	for _, id := range ids {
		scopes := root.Tokens[id].Slice()
		sort.Slice(scopes, func(i, j int) bool { return scopes[i] < scopes[j] })
		names := make([]string, len(scopes))
		for i, s := range scopes {
			names[i] = string(s)
		}
		fmt.Fprintf(w, "- %s %s\n", id, strings.Join(names, " "))
	}
}
