package authz

import (
	"testing"

	"centralbank/internal/domain"
)

// TestProxyChain covers the worked example from spec.md §4.1: a two-hop
// proxy chain terminating at the account itself.
func TestProxyChain(t *testing.T) {
	tx := domain.Transaction{
		Account: "@government",
		Authorization: domain.ProxyAuthorized{
			ProxyId: "foo",
			Tail: domain.ProxyAuthorized{
				ProxyId: "admin",
				Tail:    domain.SelfAuthorized{},
			},
		},
	}

	chain := ProxyChain(tx)
	want := []domain.AccountId{"foo", "admin", "@government"}
	if len(chain) != len(want) {
		t.Fatalf("chain=%v want=%v", chain, want)
	}
	for i := range want {
		if chain[i] != want[i] {
			t.Fatalf("chain[%d]=%s want=%s", i, chain[i], want[i])
		}
	}
	if got := FinalAuthorizer(tx); got != "@government" {
		t.Fatalf("FinalAuthorizer=%s want=@government", got)
	}
}

func TestProxyChainSelf(t *testing.T) {
	tx := domain.Transaction{Account: "alice", Authorization: domain.SelfAuthorized{}}
	chain := ProxyChain(tx)
	if len(chain) != 1 || chain[0] != "alice" {
		t.Fatalf("chain=%v want=[alice]", chain)
	}
	if FinalAuthorizer(tx) != "alice" {
		t.Fatalf("FinalAuthorizer want alice got %s", FinalAuthorizer(tx))
	}
	if IsAdminAuthorized(tx) {
		t.Fatalf("self-authorized transaction should not be admin-authorized")
	}
}

func TestProxyChainAdmin(t *testing.T) {
	tx := domain.Transaction{
		Account:       "user",
		Authorization: domain.AdminAuthorized{AdminId: "@root"},
	}
	if FinalAuthorizer(tx) != "@root" {
		t.Fatalf("FinalAuthorizer want @root got %s", FinalAuthorizer(tx))
	}
	if !IsAdminAuthorized(tx) {
		t.Fatalf("expected admin-authorized")
	}
}

// TestInScopeMinimality exercises property P7: for every concrete
// action, exactly one non-Unbounded scope admits it.
func TestInScopeMinimality(t *testing.T) {
	actions := []domain.AccountAction{
		domain.Transfer{Amount: 1, Destination: "x"},
		domain.Mint{Amount: 1},
		domain.QueryBalance{},
		domain.QueryHistory{},
		domain.QueryPrivileges{},
		domain.OpenAccount{NewId: "x"},
		domain.AddPrivileges{Target: "x"},
		domain.RemovePrivileges{Target: "x"},
		domain.CreateToken{TokenId: "t"},
	}
	for _, action := range actions {
		matches := 0
		for _, s := range domain.ValidScopes {
			if s == domain.ScopeUnbounded {
				continue
			}
			if InScope(action, s) {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("action %s matched %d non-Unbounded scopes, want 1", action.ActionTag(), matches)
		}
		if !InScope(action, domain.ScopeUnbounded) {
			t.Fatalf("action %s not admitted by Unbounded", action.ActionTag())
		}
	}
}

func TestValidateActionRejectsNonPositiveAmounts(t *testing.T) {
	cases := []domain.AccountAction{
		domain.Mint{Amount: 0},
		domain.Mint{Amount: -1},
		domain.Transfer{Amount: 0, Destination: "x"},
		domain.Transfer{Amount: -5, Destination: "x"},
	}
	for _, action := range cases {
		if err := ValidateAction(action); err != domain.InvalidAmount {
			t.Fatalf("action %+v: got %v want InvalidAmount", action, err)
		}
	}
	if err := ValidateAction(domain.Mint{Amount: 1}); err != nil {
		t.Fatalf("Mint(1) should validate, got %v", err)
	}
}
