package rpc

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strings"

	"statefi/crypto"
	"statefi/native/bridge"
	"statefi/observability/metrics"
)

type initializeProtocolParams struct {
	Admin  string `json:"admin"`
	FeeBps uint32 `json:"feeBps"`
}

type createProfileParams struct {
	Owner   string `json:"owner"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type createVaultParams struct {
	Owner string `json:"owner"`
}

type whitelistAssetParams struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Stable  bool   `json:"stable"`
}

type setAssetActiveParams struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
	Active  bool   `json:"active"`
}

type fundReserveParams struct {
	Caller  string `json:"caller"`
	AssetID string `json:"assetId"`
	Amount  string `json:"amount"`
}

type initiateRequestParams struct {
	Owner     string `json:"owner"`
	AssetID   string `json:"assetId"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
}

type settleDepositParams struct {
	Caller    string `json:"caller"`
	Owner     string `json:"owner"`
	Reference string `json:"reference"`
}

type settleWithdrawalParams struct {
	Caller    string `json:"caller"`
	Owner     string `json:"owner"`
	AssetID   string `json:"assetId"`
	Reference string `json:"reference"`
}

type getProfileParams struct {
	Owner string `json:"owner"`
}

type getAssetParams struct {
	AssetID string `json:"assetId"`
}

type getDepositParams struct {
	Owner     string `json:"owner"`
	Reference string `json:"reference"`
}

type getWithdrawalParams struct {
	Owner     string `json:"owner"`
	AssetID   string `json:"assetId"`
	Reference string `json:"reference"`
}

type balanceParams struct {
	Owner   string `json:"owner,omitempty"`
	AssetID string `json:"assetId"`
}

type protocolResult struct {
	Admin     string `json:"admin"`
	FeeBps    uint32 `json:"feeBps"`
	CreatedAt int64  `json:"createdAt"`
}

type profileResult struct {
	Owner       string `json:"owner"`
	Name        string `json:"name"`
	Contact     string `json:"contact,omitempty"`
	KYCVerified bool   `json:"kycVerified"`
	CreatedAt   int64  `json:"createdAt"`
}

type vaultResult struct {
	Owner     string `json:"owner"`
	CreatedAt int64  `json:"createdAt"`
}

type assetResult struct {
	AssetID   string `json:"assetId"`
	Symbol    string `json:"symbol"`
	Name      string `json:"name,omitempty"`
	Stable    bool   `json:"stable"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type requestResult struct {
	Owner     string `json:"owner"`
	AssetID   string `json:"assetId"`
	Amount    string `json:"amount"`
	Reference string `json:"reference"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

type balanceResult struct {
	AssetID string `json:"assetId"`
	Amount  string `json:"amount"`
}

func decodeParams(req *RPCRequest, out interface{}) error {
	if len(req.Params) != 1 {
		return errors.New("expected a single params object")
	}
	return json.Unmarshal(req.Params[0], out)
}

func decodeIdentity(value string) ([20]byte, error) {
	var out [20]byte
	addr, err := crypto.DecodeAddress(strings.TrimSpace(value))
	if err != nil {
		return out, err
	}
	copy(out[:], addr.Bytes())
	return out, nil
}

func encodeIdentity(raw [20]byte) string {
	return crypto.NewAddress(crypto.SFIPrefix, append([]byte(nil), raw[:]...)).String()
}

func parseAmountParam(value string) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, errors.New("amount required")
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, errors.New("amount must be a base-10 integer")
	}
	return amount, nil
}

func newProtocolResult(cfg *bridge.ProtocolConfig) protocolResult {
	return protocolResult{
		Admin:     encodeIdentity(cfg.Admin),
		FeeBps:    cfg.FeeBps,
		CreatedAt: cfg.CreatedAt,
	}
}

func newProfileResult(profile *bridge.UserProfile) profileResult {
	return profileResult{
		Owner:       encodeIdentity(profile.Owner),
		Name:        profile.Name,
		Contact:     profile.Contact,
		KYCVerified: profile.KYCVerified,
		CreatedAt:   profile.CreatedAt,
	}
}

func newVaultResult(vault *bridge.Vault) vaultResult {
	return vaultResult{Owner: encodeIdentity(vault.Owner), CreatedAt: vault.CreatedAt}
}

func newAssetResult(entry *bridge.TokenWhitelist) assetResult {
	return assetResult{
		AssetID:   entry.AssetID,
		Symbol:    entry.Symbol,
		Name:      entry.Name,
		Stable:    entry.IsStable,
		Active:    entry.Active,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}

func newDepositResult(deposit *bridge.FiatDeposit) requestResult {
	return requestResult{
		Owner:     encodeIdentity(deposit.Owner),
		AssetID:   deposit.AssetID,
		Amount:    deposit.Amount.String(),
		Reference: deposit.Reference,
		Status:    deposit.Status.String(),
		CreatedAt: deposit.CreatedAt,
		UpdatedAt: deposit.UpdatedAt,
	}
}

func newWithdrawalResult(withdrawal *bridge.FiatWithdrawal) requestResult {
	return requestResult{
		Owner:     encodeIdentity(withdrawal.Owner),
		AssetID:   withdrawal.AssetID,
		Amount:    withdrawal.Amount.String(),
		Reference: withdrawal.Reference,
		Status:    withdrawal.Status.String(),
		CreatedAt: withdrawal.CreatedAt,
		UpdatedAt: withdrawal.UpdatedAt,
	}
}

// errorCode maps engine sentinels to JSON-RPC error codes and HTTP statuses.
func errorCode(err error) (int, int) {
	switch {
	case errors.Is(err, bridge.ErrUnauthorized):
		return http.StatusForbidden, codeUnauthorized
	case errors.Is(err, bridge.ErrNotFound),
		errors.Is(err, bridge.ErrProtocolNotInitialized):
		return http.StatusNotFound, codeNotFound
	case errors.Is(err, bridge.ErrInvalidAmount),
		errors.Is(err, bridge.ErrInvalidFeeRate),
		errors.Is(err, bridge.ErrFieldTooLong):
		return http.StatusBadRequest, codeInvalidParams
	case errors.Is(err, bridge.ErrDuplicateReference),
		errors.Is(err, bridge.ErrInvalidState),
		errors.Is(err, bridge.ErrProtocolInitialized),
		errors.Is(err, bridge.ErrProfileExists),
		errors.Is(err, bridge.ErrVaultExists):
		return http.StatusConflict, codeConflict
	case errors.Is(err, bridge.ErrInsufficientBalance):
		return http.StatusConflict, codeInsufficient
	case errors.Is(err, bridge.ErrAssetNotWhitelisted),
		errors.Is(err, bridge.ErrAssetInactive),
		errors.Is(err, bridge.ErrProfileRequired),
		errors.Is(err, bridge.ErrVaultRequired):
		return http.StatusUnprocessableEntity, codeInvalidParams
	default:
		return http.StatusInternalServerError, codeServerError
	}
}

func writeEngineError(w http.ResponseWriter, method string, id interface{}, err error) {
	metrics.Bridge().ObserveRPCRequest(method, err)
	status, code := errorCode(err)
	writeError(w, status, id, code, err.Error(), nil)
}

func (s *Server) handleInitializeProtocol(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params initializeProtocolParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	admin, err := decodeIdentity(params.Admin)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid admin address", err.Error())
		return
	}
	cfg, err := s.engine.InitializeProtocol(admin, params.FeeBps)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newProtocolResult(cfg))
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params createProfileParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	profile, err := s.engine.CreateUserProfile(owner, params.Name, params.Contact)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newProfileResult(profile))
}

func (s *Server) handleCreateVault(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params createVaultParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	vault, err := s.engine.CreateVault(owner)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newVaultResult(vault))
}

func (s *Server) handleWhitelistAsset(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params whitelistAssetParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	entry, err := s.engine.WhitelistAsset(caller, params.AssetID, params.Symbol, params.Name, params.Stable)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newAssetResult(entry))
}

func (s *Server) handleSetAssetActive(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params setAssetActiveParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	entry, err := s.engine.SetAssetActive(caller, params.AssetID, params.Active)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newAssetResult(entry))
}

func (s *Server) handleFundReserve(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params fundReserveParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	amount, err := parseAmountParam(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid amount", err.Error())
		return
	}
	if err := s.engine.FundReserve(caller, params.AssetID, amount); err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	balance, err := s.engine.ReserveBalance(params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, balanceResult{AssetID: strings.ToUpper(strings.TrimSpace(params.AssetID)), Amount: balance.String()})
}

func (s *Server) handleInitiateDeposit(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params initiateRequestParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	amount, err := parseAmountParam(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid amount", err.Error())
		return
	}
	deposit, err := s.engine.InitiateDeposit(owner, amount, params.Reference, params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newDepositResult(deposit))
}

func (s *Server) handleCompleteDeposit(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params settleDepositParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	reference, err := bridge.NormalizeReference(params.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid reference", err.Error())
		return
	}
	deposit, err := s.engine.CompleteDeposit(caller, bridge.DepositAddress(owner, reference))
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	metrics.Bridge().ObserveDepositSettled(deposit.Status.String())
	writeResult(w, req.ID, newDepositResult(deposit))
}

func (s *Server) handleRejectDeposit(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params settleDepositParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	reference, err := bridge.NormalizeReference(params.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid reference", err.Error())
		return
	}
	deposit, err := s.engine.RejectDeposit(caller, bridge.DepositAddress(owner, reference))
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	metrics.Bridge().ObserveDepositSettled(deposit.Status.String())
	writeResult(w, req.ID, newDepositResult(deposit))
}

func (s *Server) handleInitiateWithdrawal(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params initiateRequestParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	amount, err := parseAmountParam(params.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid amount", err.Error())
		return
	}
	withdrawal, err := s.engine.InitiateWithdrawal(owner, amount, params.Reference, params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newWithdrawalResult(withdrawal))
}

func (s *Server) resolveWithdrawalAddr(params settleWithdrawalParams) ([32]byte, error) {
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		return [32]byte{}, err
	}
	assetID, err := bridge.NormalizeAssetID(params.AssetID)
	if err != nil {
		return [32]byte{}, err
	}
	reference, err := bridge.NormalizeReference(params.Reference)
	if err != nil {
		return [32]byte{}, err
	}
	return bridge.WithdrawalAddress(owner, assetID, reference), nil
}

func (s *Server) handleCompleteWithdrawal(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params settleWithdrawalParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	addr, err := s.resolveWithdrawalAddr(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid withdrawal identity", err.Error())
		return
	}
	withdrawal, err := s.engine.CompleteWithdrawal(caller, addr)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	metrics.Bridge().ObserveWithdrawalSettled(withdrawal.Status.String())
	writeResult(w, req.ID, newWithdrawalResult(withdrawal))
}

func (s *Server) handleCancelWithdrawal(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params settleWithdrawalParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	caller, err := decodeIdentity(params.Caller)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid caller address", err.Error())
		return
	}
	addr, err := s.resolveWithdrawalAddr(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid withdrawal identity", err.Error())
		return
	}
	withdrawal, err := s.engine.CancelWithdrawal(caller, addr)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	metrics.Bridge().ObserveWithdrawalSettled(withdrawal.Status.String())
	writeResult(w, req.ID, newWithdrawalResult(withdrawal))
}

func (s *Server) handleGetProtocol(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	cfg, err := s.engine.Protocol()
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newProtocolResult(cfg))
}

func (s *Server) handleGetProfile(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params getProfileParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	profile, err := s.engine.Profile(owner)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newProfileResult(profile))
}

func (s *Server) handleGetVault(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params getProfileParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	vault, err := s.engine.Vault(owner)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newVaultResult(vault))
}

func (s *Server) handleGetAsset(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params getAssetParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	entry, err := s.engine.Asset(params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newAssetResult(entry))
}

func (s *Server) handleGetDeposit(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params getDepositParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	reference, err := bridge.NormalizeReference(params.Reference)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid reference", err.Error())
		return
	}
	deposit, err := s.engine.Deposit(bridge.DepositAddress(owner, reference))
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newDepositResult(deposit))
}

func (s *Server) handleGetWithdrawal(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params getWithdrawalParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	addr, err := s.resolveWithdrawalAddr(settleWithdrawalParams{
		Owner:     params.Owner,
		AssetID:   params.AssetID,
		Reference: params.Reference,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid withdrawal identity", err.Error())
		return
	}
	withdrawal, err := s.engine.Withdrawal(addr)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, newWithdrawalResult(withdrawal))
}

func (s *Server) handleGetVaultBalance(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params balanceParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	owner, err := decodeIdentity(params.Owner)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid owner address", err.Error())
		return
	}
	balance, err := s.engine.VaultBalance(owner, params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, balanceResult{AssetID: strings.ToUpper(strings.TrimSpace(params.AssetID)), Amount: balance.String()})
}

func (s *Server) handleGetReserveBalance(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params balanceParams
	if err := decodeParams(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid params", err.Error())
		return
	}
	balance, err := s.engine.ReserveBalance(params.AssetID)
	if err != nil {
		writeEngineError(w, req.Method, req.ID, err)
		return
	}
	metrics.Bridge().ObserveRPCRequest(req.Method, nil)
	writeResult(w, req.ID, balanceResult{AssetID: strings.ToUpper(strings.TrimSpace(params.AssetID)), Amount: balance.String()})
}
