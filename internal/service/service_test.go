package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"centralbank/internal/domain"
	"centralbank/internal/engine"
	"centralbank/internal/ledger"
)

func newTestServer(t *testing.T) (*httptest.Server, *Envelope) {
	t.Helper()
	store, err := ledger.NewJSONLStore(filepath.Join(t.TempDir(), "ledger.jsonl"))
	if err != nil {
		t.Fatalf("NewJSONLStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	state := engine.NewState()
	state.Accounts["@root"] = &engine.AccountData{
		ProxyAccess: map[domain.AccountId]struct{}{},
		Privileges:  domain.NewScopeSet(domain.ScopeUnbounded),
		Tokens:      map[domain.AccessTokenId]domain.ScopeSet{"root-token": domain.NewScopeSet(domain.ScopeUnbounded)},
	}
	processor := ledger.NewProcessor(state, store)
	envelope := NewEnvelope(processor, 0, zap.NewNop())

	handler := Router(envelope, nil, zap.NewNop(), NewRateLimiter(1000, 1000))
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return ts, envelope
}

func postTransaction(t *testing.T, ts *httptest.Server, req domain.TransactionRequest) (int, map[string]any) {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(ts.URL+"/api/transaction", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, out
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d want 200", resp.StatusCode)
	}
}

func TestTransactionWithoutTokenIsUnauthorized(t *testing.T) {
	ts, _ := newTestServer(t)
	req := domain.TransactionRequest{
		Account:       "@root",
		Authorization: domain.SelfAuthorized{},
		Action:        domain.QueryBalance{},
	}
	status, out := postTransaction(t, ts, req)
	if status != http.StatusOK {
		t.Fatalf("status=%d want 200 (errors are 200 per spec)", status)
	}
	if out["Case"] != "Error" {
		t.Fatalf("Case=%v want Error", out["Case"])
	}
}

func TestTransactionMintAndQueryBalance(t *testing.T) {
	ts, _ := newTestServer(t)
	token := domain.AccessTokenId("root-token")

	mintReq := domain.TransactionRequest{
		Account:       "@root",
		Authorization: domain.SelfAuthorized{},
		AccessToken:   &token,
		Action:        domain.Mint{Amount: 100},
	}
	status, out := postTransaction(t, ts, mintReq)
	if status != http.StatusOK || out["Case"] != "Ok" {
		t.Fatalf("mint failed: status=%d body=%v", status, out)
	}

	queryReq := domain.TransactionRequest{
		Account:       "@root",
		Authorization: domain.SelfAuthorized{},
		AccessToken:   &token,
		Action:        domain.QueryBalance{},
	}
	status, out = postTransaction(t, ts, queryReq)
	if status != http.StatusOK || out["Case"] != "Ok" {
		t.Fatalf("query failed: status=%d body=%v", status, out)
	}

	result, err := domain.UnmarshalTransactionResult(mustRemarshal(t, out["Fields"].([]any)[0]))
	if err != nil {
		t.Fatalf("UnmarshalTransactionResult: %v", err)
	}
	balance, ok := result.(domain.Balance)
	if !ok || balance.Amount != 100 {
		t.Fatalf("balance=%#v want Balance(100)", result)
	}
}

func mustRemarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("remarshal: %v", err)
	}
	return b
}
