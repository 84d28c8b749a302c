package command

import (
	"testing"

	"centralbank/internal/domain"
)

func lowerOrFatal(t *testing.T, input string, author domain.AccountId, token *domain.AccessTokenId) domain.TransactionRequest {
	t.Helper()
	cmd, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q): %v", input, err)
	}
	req, err := Lower(cmd, author, token)
	if err != nil {
		t.Fatalf("Lower(%q): %v", input, err)
	}
	return req
}

func TestBalanceRoundTrip(t *testing.T) {
	req := lowerOrFatal(t, "balance", "A", nil)
	if req.Account != "A" {
		t.Fatalf("account=%s want A", req.Account)
	}
	if _, ok := req.Authorization.(domain.SelfAuthorized); !ok {
		t.Fatalf("authorization=%#v want SelfAuthorized", req.Authorization)
	}
	if _, ok := req.Action.(domain.QueryBalance); !ok {
		t.Fatalf("action=%#v want QueryBalance", req.Action)
	}
}

func TestProxyBalanceRoundTrip(t *testing.T) {
	tok := domain.AccessTokenId("T")
	req := lowerOrFatal(t, "proxy X balance", "A", &tok)
	if req.Account != "A" {
		t.Fatalf("account=%s want A", req.Account)
	}
	proxy, ok := req.Authorization.(domain.ProxyAuthorized)
	if !ok {
		t.Fatalf("authorization=%#v want ProxyAuthorized", req.Authorization)
	}
	if proxy.ProxyId != "X" {
		t.Fatalf("proxy id=%s want X", proxy.ProxyId)
	}
	if _, ok := proxy.Tail.(domain.SelfAuthorized); !ok {
		t.Fatalf("tail=%#v want SelfAuthorized", proxy.Tail)
	}
	if req.AccessToken == nil || *req.AccessToken != "T" {
		t.Fatalf("token not threaded through")
	}
}

func TestAdminBalanceRoundTrip(t *testing.T) {
	tok := domain.AccessTokenId("T")
	req := lowerOrFatal(t, "admin X balance", "A", &tok)
	if req.Account != "X" {
		t.Fatalf("account=%s want X", req.Account)
	}
	admin, ok := req.Authorization.(domain.AdminAuthorized)
	if !ok {
		t.Fatalf("authorization=%#v want AdminAuthorized", req.Authorization)
	}
	if admin.AdminId != "A" {
		t.Fatalf("admin id=%s want A", admin.AdminId)
	}
}

func TestProxyAdminBalanceRoundTrip(t *testing.T) {
	tok := domain.AccessTokenId("T")
	req := lowerOrFatal(t, "proxy X admin Y balance", "A", &tok)
	if req.Account != "Y" {
		t.Fatalf("account=%s want Y", req.Account)
	}
	proxy, ok := req.Authorization.(domain.ProxyAuthorized)
	if !ok {
		t.Fatalf("authorization=%#v want ProxyAuthorized", req.Authorization)
	}
	if proxy.ProxyId != "X" {
		t.Fatalf("proxy id=%s want X", proxy.ProxyId)
	}
	admin, ok := proxy.Tail.(domain.AdminAuthorized)
	if !ok {
		t.Fatalf("tail=%#v want AdminAuthorized", proxy.Tail)
	}
	if admin.AdminId != "A" {
		t.Fatalf("admin id=%s want A", admin.AdminId)
	}
}

func TestBalanceWithTrailingTokenIsUnexpectedToken(t *testing.T) {
	_, err := Parse("balance foo")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ErrUnexpectedToken || perr.Token != "foo" {
		t.Fatalf("got %#v want UnexpectedToken(foo)", err)
	}
}

func TestMintNegativeIsExpectedPositiveNumber(t *testing.T) {
	_, err := Parse("mint -5")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ErrExpectedPositiveNumber {
		t.Fatalf("got %#v want ExpectedPositiveNumber", err)
	}
}

func TestMintNonNumericIsExpectedNumber(t *testing.T) {
	_, err := Parse("mint abc")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ErrExpectedNumber {
		t.Fatalf("got %#v want ExpectedNumber", err)
	}
}

func TestBalAbbreviationExpands(t *testing.T) {
	cmd, err := Parse("bal")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := cmd.Action.(Balance); !ok {
		t.Fatalf("action=%#v want Balance", cmd.Action)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := Parse("frobnicate")
	perr, ok := err.(*ParseError)
	if !ok || perr.Kind != ErrUnknownCommand || perr.Token != "frobnicate" {
		t.Fatalf("got %#v want UnknownCommand(frobnicate)", err)
	}
}

func TestUnfinishedCommand(t *testing.T) {
	for _, input := range []string{"", "proxy", "admin", "mint", "transfer", "transfer X"} {
		_, err := Parse(input)
		perr, ok := err.(*ParseError)
		if !ok || perr.Kind != ErrUnfinishedCommand {
			t.Fatalf("Parse(%q) got %#v want UnfinishedCommand", input, err)
		}
	}
}

func TestTransferRoundTrip(t *testing.T) {
	cmd, err := Parse("transfer bob 100")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	transfer, ok := cmd.Action.(Transfer)
	if !ok || transfer.Destination != "bob" || transfer.Amount != 100 {
		t.Fatalf("action=%#v want Transfer{bob,100}", cmd.Action)
	}
}

func TestHelpIsNeverLowered(t *testing.T) {
	cmd, err := Parse("help")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Lower(cmd, "A", nil); err != ErrHelpIsLocal {
		t.Fatalf("Lower(help) err=%v want ErrHelpIsLocal", err)
	}
}

func TestProxyChainMatchesAuthzHelper(t *testing.T) {
	// Mirrors the §4.1 worked example via the parser: two proxy hops,
	// then balance, should produce the same chain shape as authz.ProxyChain.
	cmd, err := Parse("proxy foo proxy admin balance")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	req, err := Lower(cmd, "@government", nil)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	outer, ok := req.Authorization.(domain.ProxyAuthorized)
	if !ok || outer.ProxyId != "foo" {
		t.Fatalf("outer=%#v want ProxyAuthorized(foo, ...)", req.Authorization)
	}
	inner, ok := outer.Tail.(domain.ProxyAuthorized)
	if !ok || inner.ProxyId != "admin" {
		t.Fatalf("inner=%#v want ProxyAuthorized(admin, ...)", outer.Tail)
	}
	if _, ok := inner.Tail.(domain.SelfAuthorized); !ok {
		t.Fatalf("tail=%#v want SelfAuthorized", inner.Tail)
	}
}
