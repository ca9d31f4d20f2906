package rpc

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"statefi/core/state"
	"statefi/crypto"
	"statefi/native/bridge"
	"statefi/storage"
)

const testToken = "test-secret-token"

func testIdentity(fill byte) string {
	raw := bytes.Repeat([]byte{fill}, 20)
	return crypto.NewAddress(crypto.SFIPrefix, raw).String()
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("STATEFI_RPC_TOKEN", testToken)
	engine := bridge.NewEngine()
	engine.SetState(state.NewManager(storage.NewMemDB()))
	return NewServer(engine)
}

func post(t *testing.T, s *Server, token, method string, params interface{}) (*httptest.ResponseRecorder, RPCResponse) {
	t.Helper()
	payload := map[string]interface{}{
		"jsonrpc": jsonRPCVersion,
		"id":      1,
		"method":  method,
	}
	if params != nil {
		payload["params"] = []interface{}{params}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handle(rec, req)

	var resp RPCResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response %q: %v", rec.Body.String(), err)
	}
	return rec, resp
}

func mustResult(t *testing.T, s *Server, token, method string, params interface{}) json.RawMessage {
	t.Helper()
	rec, resp := post(t, s, token, method, params)
	if resp.Error != nil {
		t.Fatalf("%s failed (%d): %+v", method, rec.Code, resp.Error)
	}
	raw, err := json.Marshal(resp.Result)
	if err != nil {
		t.Fatalf("re-marshal result: %v", err)
	}
	return raw
}

func TestAdminMethodsRequireBearerToken(t *testing.T) {
	s := newTestServer(t)
	admin := testIdentity(0xAA)

	rec, resp := post(t, s, "", "bridge_initializeProtocol", initializeProtocolParams{Admin: admin, FeeBps: 100})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeUnauthorized {
		t.Fatalf("expected unauthorized error, got %+v", resp.Error)
	}

	rec, resp = post(t, s, "wrong-token", "bridge_initializeProtocol", initializeProtocolParams{Admin: admin, FeeBps: 100})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 for bad token", rec.Code)
	}
	if resp.Error == nil {
		t.Fatal("expected an error for bad token")
	}
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t)
	rec, resp := post(t, s, "", "bridge_noSuchMethod", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if resp.Error == nil || resp.Error.Code != codeMethodNotFound {
		t.Fatalf("expected method-not-found error, got %+v", resp.Error)
	}
}

func TestDepositFlowOverRPC(t *testing.T) {
	s := newTestServer(t)
	admin := testIdentity(0xAA)
	owner := testIdentity(0x11)

	mustResult(t, s, testToken, "bridge_initializeProtocol", initializeProtocolParams{Admin: admin, FeeBps: 100})
	mustResult(t, s, testToken, "bridge_whitelistAsset", whitelistAssetParams{Caller: admin, AssetID: "USDX", Symbol: "USDX", Name: "Test Dollar", Stable: true})
	mustResult(t, s, "", "bridge_createProfile", createProfileParams{Owner: owner, Name: "Ada", Contact: "ada@example.com"})
	mustResult(t, s, "", "bridge_createVault", createVaultParams{Owner: owner})
	mustResult(t, s, testToken, "bridge_fundReserve", fundReserveParams{Caller: admin, AssetID: "USDX", Amount: "1000000"})
	mustResult(t, s, "", "bridge_initiateDeposit", initiateRequestParams{Owner: owner, AssetID: "USDX", Amount: "1000000", Reference: "WIRE-1"})

	raw := mustResult(t, s, testToken, "bridge_completeDeposit", settleDepositParams{Caller: admin, Owner: owner, Reference: "WIRE-1"})
	var settled requestResult
	if err := json.Unmarshal(raw, &settled); err != nil {
		t.Fatalf("decode deposit result: %v", err)
	}
	if settled.Status != "completed" {
		t.Fatalf("deposit status = %q, want completed", settled.Status)
	}

	raw = mustResult(t, s, "", "bridge_getVaultBalance", balanceParams{Owner: owner, AssetID: "USDX"})
	var balance balanceResult
	if err := json.Unmarshal(raw, &balance); err != nil {
		t.Fatalf("decode balance result: %v", err)
	}
	if balance.Amount != "990000" {
		t.Fatalf("vault balance = %s, want 990000", balance.Amount)
	}
}

func TestEngineErrorsMapToRPCCodes(t *testing.T) {
	s := newTestServer(t)
	admin := testIdentity(0xAA)
	owner := testIdentity(0x11)

	mustResult(t, s, testToken, "bridge_initializeProtocol", initializeProtocolParams{Admin: admin, FeeBps: 100})
	mustResult(t, s, testToken, "bridge_whitelistAsset", whitelistAssetParams{Caller: admin, AssetID: "USDX", Symbol: "USDX", Stable: true})
	mustResult(t, s, "", "bridge_createProfile", createProfileParams{Owner: owner, Name: "Ada"})

	// Unknown record lookups surface as not-found.
	rec, resp := post(t, s, "", "bridge_getDeposit", getDepositParams{Owner: owner, Reference: "NOPE"})
	if rec.Code != http.StatusNotFound || resp.Error == nil || resp.Error.Code != codeNotFound {
		t.Fatalf("expected not-found mapping, got status=%d error=%+v", rec.Code, resp.Error)
	}

	// Duplicate references surface as conflicts.
	mustResult(t, s, "", "bridge_initiateDeposit", initiateRequestParams{Owner: owner, AssetID: "USDX", Amount: "10", Reference: "REF-1"})
	rec, resp = post(t, s, "", "bridge_initiateDeposit", initiateRequestParams{Owner: owner, AssetID: "USDX", Amount: "10", Reference: "REF-1"})
	if rec.Code != http.StatusConflict || resp.Error == nil || resp.Error.Code != codeConflict {
		t.Fatalf("expected conflict mapping, got status=%d error=%+v", rec.Code, resp.Error)
	}

	// Malformed amounts never reach the engine.
	rec, resp = post(t, s, "", "bridge_initiateDeposit", initiateRequestParams{Owner: owner, AssetID: "USDX", Amount: "ten", Reference: "REF-2"})
	if rec.Code != http.StatusBadRequest || resp.Error == nil || resp.Error.Code != codeInvalidParams {
		t.Fatalf("expected invalid-params mapping, got status=%d error=%+v", rec.Code, resp.Error)
	}
}

func TestRejectsOversizedBody(t *testing.T) {
	s := newTestServer(t)
	body := bytes.Repeat([]byte{'x'}, maxRequestBytes+1)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handle(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestRejectsWrongVersion(t *testing.T) {
	s := newTestServer(t)
	body := []byte(`{"jsonrpc":"1.0","id":1,"method":"bridge_getProtocol"}`)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.handle(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
