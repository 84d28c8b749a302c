package bootstrap

import (
	"bytes"
	"strings"
	"testing"

	"centralbank/internal/domain"
	"centralbank/internal/engine"
)

func TestEnsureRootSeedsFreshAccount(t *testing.T) {
	state := engine.NewState()
	ids, err := EnsureRoot(state)
	if err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("want exactly one minted token, got %d", len(ids))
	}
	root := state.Accounts[RootAccount]
	if root.Balance != 0 {
		t.Fatalf("root balance=%d want 0", root.Balance)
	}
	if !root.Privileges.Has(domain.ScopeUnbounded) {
		t.Fatalf("root must carry Unbounded privilege")
	}
	if !root.Tokens[ids[0]].Has(domain.ScopeUnbounded) {
		t.Fatalf("minted token must carry Unbounded scope")
	}
}

func TestEnsureRootIsIdempotentOnceTokenExists(t *testing.T) {
	state := engine.NewState()
	first, err := EnsureRoot(state)
	if err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	second, err := EnsureRoot(state)
	if err != nil {
		t.Fatalf("EnsureRoot (second): %v", err)
	}
	if len(second) != len(first) || second[0] != first[0] {
		t.Fatalf("second call should not mint again: first=%v second=%v", first, second)
	}
}

func TestPrintRootTokensFormat(t *testing.T) {
	state := engine.NewState()
	ids, err := EnsureRoot(state)
	if err != nil {
		t.Fatalf("EnsureRoot: %v", err)
	}
	var buf bytes.Buffer
	PrintRootTokens(&buf, state, ids)
	out := buf.String()
	if !strings.HasPrefix(out, "Root tokens:\n") {
		t.Fatalf("missing header: %q", out)
	}
	wantLine := "- " + string(ids[0]) + " Unbounded\n"
	if !strings.Contains(out, wantLine) {
		t.Fatalf("missing line %q in %q", wantLine, out)
	}
}
