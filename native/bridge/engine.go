package bridge

import (
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"statefi/core/events"
	"statefi/core/types"
)

// Storage abstracts the subset of state-manager functionality required by the
// bridge engine. Records are rlp-encoded structs living at derived addresses;
// custody cells hold per-asset balances for a holder address.
type Storage interface {
	RecordGet(addr [32]byte, out interface{}) (bool, error)
	RecordPut(addr [32]byte, value interface{}) error
	CustodyBalance(holder [32]byte, assetID string) (*big.Int, error)
	CustodySet(holder [32]byte, assetID string, balance *big.Int) error
}

// Engine validates and applies every bridge instruction. Each exported
// operation is a single serialized step: all preconditions are checked before
// any write, so a rejected operation leaves no partial state.
type Engine struct {
	mu      sync.Mutex
	state   Storage
	emitter events.Emitter
	nowFn   func() int64
}

// NewEngine creates a bridge engine with a no-op emitter. Callers can override
// the emitter via SetEmitter.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn:   func() int64 { return time.Now().Unix() },
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state Storage) { e.state = state }

// SetEmitter configures the event emitter used by the engine. Passing nil
// resets the emitter to a no-op implementation.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used by the engine. Primarily intended
// for tests to provide deterministic timestamps.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

func (e *Engine) emit(event *types.Event) {
	if e == nil || e.emitter == nil || event == nil {
		return
	}
	e.emitter.Emit(event)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) requireState() error {
	if e == nil || e.state == nil {
		return fmt.Errorf("bridge engine: state not configured")
	}
	return nil
}

// --- authorization ---

// requireAdmin verifies the acting identity is the protocol admin. Owner
// operations need no counterpart check: the owner identity supplied by the
// transport is the acting identity, and every derived record address binds to
// it.
func (e *Engine) requireAdmin(acting [20]byte) error {
	cfg, err := e.loadProtocol()
	if err != nil {
		return err
	}
	if acting != cfg.Admin {
		return ErrUnauthorized
	}
	return nil
}

func (e *Engine) loadProtocol() (*ProtocolConfig, error) {
	var stored storedProtocolConfig
	ok, err := e.state.RecordGet(ProtocolAddress(), &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProtocolNotInitialized
	}
	return fromStoredProtocolConfig(&stored), nil
}

func (e *Engine) loadAsset(assetID string) (*TokenWhitelist, bool, error) {
	var stored storedTokenWhitelist
	ok, err := e.state.RecordGet(AssetAddress(assetID), &stored)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}
	return fromStoredTokenWhitelist(&stored), true, nil
}

func (e *Engine) profileExists(owner [20]byte) (bool, error) {
	var stored storedUserProfile
	return e.state.RecordGet(ProfileAddress(owner), &stored)
}

func (e *Engine) vaultExists(owner [20]byte) (bool, error) {
	var stored storedVault
	return e.state.RecordGet(VaultAddress(owner), &stored)
}

// --- custody ---

func (e *Engine) custodyBalance(holder [32]byte, assetID string) (*big.Int, error) {
	balance, err := e.state.CustodyBalance(holder, assetID)
	if err != nil {
		return nil, err
	}
	if balance == nil {
		return big.NewInt(0), nil
	}
	return balance, nil
}

// custodyTransfer moves amount between two custody cells. The source balance
// is verified before either side is written.
func (e *Engine) custodyTransfer(from, to [32]byte, assetID string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	if amount.Sign() == 0 {
		return nil
	}
	fromBalance, err := e.custodyBalance(from, assetID)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	toBalance, err := e.custodyBalance(to, assetID)
	if err != nil {
		return err
	}
	if err := e.state.CustodySet(from, assetID, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	return e.state.CustodySet(to, assetID, new(big.Int).Add(toBalance, amount))
}

func (e *Engine) custodyCredit(holder [32]byte, assetID string, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	balance, err := e.custodyBalance(holder, assetID)
	if err != nil {
		return err
	}
	return e.state.CustodySet(holder, assetID, new(big.Int).Add(balance, amount))
}

// --- protocol ---

// InitializeProtocol creates the singleton protocol config. The caller becomes
// the admin identity for every settlement operation.
func (e *Engine) InitializeProtocol(admin [20]byte, feeBps uint32) (*ProtocolConfig, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if !ValidFeeBps(feeBps) {
		return nil, fmt.Errorf("%w: %d bps", ErrInvalidFeeRate, feeBps)
	}
	var existing storedProtocolConfig
	ok, err := e.state.RecordGet(ProtocolAddress(), &existing)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrProtocolInitialized
	}
	cfg := &ProtocolConfig{Admin: admin, FeeBps: feeBps, CreatedAt: e.now()}
	if err := e.state.RecordPut(ProtocolAddress(), toStoredProtocolConfig(cfg)); err != nil {
		return nil, err
	}
	e.emit(NewProtocolInitializedEvent(cfg))
	return cfg, nil
}

// Protocol returns the protocol config if initialised.
func (e *Engine) Protocol() (*ProtocolConfig, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadProtocol()
}

// --- profiles and vaults ---

// CreateUserProfile registers the profile record for the owner identity. One
// profile may exist per identity.
func (e *Engine) CreateUserProfile(owner [20]byte, name, contact string) (*UserProfile, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	trimmedName := strings.TrimSpace(name)
	if trimmedName == "" {
		return nil, fmt.Errorf("bridge: profile name required")
	}
	if len(trimmedName) > MaxNameLen {
		return nil, fmt.Errorf("%w: name exceeds %d bytes", ErrFieldTooLong, MaxNameLen)
	}
	trimmedContact := strings.TrimSpace(contact)
	if len(trimmedContact) > MaxContactLen {
		return nil, fmt.Errorf("%w: contact exceeds %d bytes", ErrFieldTooLong, MaxContactLen)
	}
	ok, err := e.profileExists(owner)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, ErrProfileExists
	}
	profile := &UserProfile{Owner: owner, Name: trimmedName, Contact: trimmedContact, CreatedAt: e.now()}
	if err := e.state.RecordPut(ProfileAddress(owner), toStoredUserProfile(profile)); err != nil {
		return nil, err
	}
	e.emit(NewProfileCreatedEvent(profile))
	return profile, nil
}

// Profile returns the registered profile for the owner.
func (e *Engine) Profile(owner [20]byte) (*UserProfile, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var stored storedUserProfile
	ok, err := e.state.RecordGet(ProfileAddress(owner), &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return fromStoredUserProfile(&stored), nil
}

// CreateVault opens the custody vault for the owner. A registered profile is
// required first; one vault may exist per identity.
func (e *Engine) CreateVault(owner [20]byte) (*Vault, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	hasProfile, err := e.profileExists(owner)
	if err != nil {
		return nil, err
	}
	if !hasProfile {
		return nil, ErrProfileRequired
	}
	hasVault, err := e.vaultExists(owner)
	if err != nil {
		return nil, err
	}
	if hasVault {
		return nil, ErrVaultExists
	}
	vault := &Vault{Owner: owner, CreatedAt: e.now()}
	if err := e.state.RecordPut(VaultAddress(owner), toStoredVault(vault)); err != nil {
		return nil, err
	}
	e.emit(NewVaultCreatedEvent(vault))
	return vault, nil
}

// Vault returns the vault record for the owner.
func (e *Engine) Vault(owner [20]byte) (*Vault, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var stored storedVault
	ok, err := e.state.RecordGet(VaultAddress(owner), &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return fromStoredVault(&stored), nil
}

// VaultBalance returns the custody balance a vault holds for the asset.
func (e *Engine) VaultBalance(owner [20]byte, assetID string) (*big.Int, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	return e.custodyBalance(VaultAddress(owner), normalized)
}

// ReserveBalance returns the protocol reserve custody for the asset.
func (e *Engine) ReserveBalance(assetID string) (*big.Int, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	return e.custodyBalance(ReserveAddress(), normalized)
}

// AdminFeeBalance returns the fees accumulated for the admin in the asset.
func (e *Engine) AdminFeeBalance(assetID string) (*big.Int, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.loadProtocol()
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	return e.custodyBalance(AdminFeeAddress(cfg.Admin), normalized)
}

// --- whitelist ---

// WhitelistAsset creates or reactivates the whitelist entry for an asset.
// Admin-only.
func (e *Engine) WhitelistAsset(caller [20]byte, assetID, symbol, name string, isStable bool) (*TokenWhitelist, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	trimmedSymbol := strings.ToUpper(strings.TrimSpace(symbol))
	if trimmedSymbol == "" {
		return nil, fmt.Errorf("bridge: asset symbol required")
	}
	if len(trimmedSymbol) > MaxSymbolLen {
		return nil, fmt.Errorf("%w: symbol exceeds %d bytes", ErrFieldTooLong, MaxSymbolLen)
	}
	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) > MaxNameLen {
		return nil, fmt.Errorf("%w: name exceeds %d bytes", ErrFieldTooLong, MaxNameLen)
	}
	now := e.now()
	existing, ok, err := e.loadAsset(normalized)
	if err != nil {
		return nil, err
	}
	if ok {
		existing.Symbol = trimmedSymbol
		existing.Name = trimmedName
		existing.IsStable = isStable
		existing.Active = true
		existing.UpdatedAt = now
		if err := e.state.RecordPut(AssetAddress(normalized), toStoredTokenWhitelist(existing)); err != nil {
			return nil, err
		}
		e.emit(NewAssetUpdatedEvent(existing))
		return existing, nil
	}
	entry := &TokenWhitelist{
		AssetID:   normalized,
		Symbol:    trimmedSymbol,
		Name:      trimmedName,
		IsStable:  isStable,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.state.RecordPut(AssetAddress(normalized), toStoredTokenWhitelist(entry)); err != nil {
		return nil, err
	}
	e.emit(NewAssetWhitelistedEvent(entry))
	return entry, nil
}

// SetAssetActive flips the active flag of an existing whitelist entry.
// Admin-only. Deactivation does not retroactively invalidate requests that
// were created while the asset was active; their settlement remains allowed.
func (e *Engine) SetAssetActive(caller [20]byte, assetID string, active bool) (*TokenWhitelist, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	entry, ok, err := e.loadAsset(normalized)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssetNotWhitelisted
	}
	if entry.Active == active {
		return entry, nil
	}
	entry.Active = active
	entry.UpdatedAt = e.now()
	if err := e.state.RecordPut(AssetAddress(normalized), toStoredTokenWhitelist(entry)); err != nil {
		return nil, err
	}
	e.emit(NewAssetUpdatedEvent(entry))
	return entry, nil
}

// Asset returns the whitelist entry for the asset.
func (e *Engine) Asset(assetID string) (*TokenWhitelist, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	entry, ok, err := e.loadAsset(normalized)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssetNotWhitelisted
	}
	return entry, nil
}

// FundReserve credits the protocol reserve custody for the asset. Admin-only.
// Deposit settlement pays out of this reserve.
func (e *Engine) FundReserve(caller [20]byte, assetID string, amount *big.Int) error {
	if err := e.requireState(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	normalized, err := NormalizeAssetID(assetID)
	if err != nil {
		return err
	}
	if _, ok, err := e.loadAsset(normalized); err != nil {
		return err
	} else if !ok {
		return ErrAssetNotWhitelisted
	}
	if err := e.custodyCredit(ReserveAddress(), normalized, amount); err != nil {
		return err
	}
	e.emit(NewReserveFundedEvent(normalized, amount.String()))
	return nil
}

// --- deposits ---

// InitiateDeposit records a user's intent to convert an off-platform fiat
// payment into custodied tokens. No custody moves until settlement. The
// (owner, reference) pair derives the record address, so resubmitting the same
// reference fails with ErrDuplicateReference.
func (e *Engine) InitiateDeposit(owner [20]byte, amount *big.Int, reference, assetID string) (*FiatDeposit, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	normalizedRef, err := NormalizeReference(reference)
	if err != nil {
		return nil, err
	}
	normalizedAsset, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	entry, ok, err := e.loadAsset(normalizedAsset)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssetNotWhitelisted
	}
	if !entry.Active {
		return nil, ErrAssetInactive
	}
	hasProfile, err := e.profileExists(owner)
	if err != nil {
		return nil, err
	}
	if !hasProfile {
		return nil, ErrProfileRequired
	}
	addr := DepositAddress(owner, normalizedRef)
	var existing storedFiatDeposit
	occupied, err := e.state.RecordGet(addr, &existing)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, normalizedRef)
	}
	now := e.now()
	deposit := &FiatDeposit{
		Owner:     owner,
		AssetID:   normalizedAsset,
		Amount:    new(big.Int).Set(amount),
		Reference: normalizedRef,
		Status:    DepositPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.state.RecordPut(addr, toStoredFiatDeposit(deposit)); err != nil {
		return nil, err
	}
	e.emit(NewDepositInitiatedEvent(deposit))
	return deposit.Clone(), nil
}

// CompleteDeposit settles a pending deposit after off-platform verification.
// Admin-only. The net amount moves from the protocol reserve into the owner's
// vault custody and the fee into the admin's fee custody; the status flip and
// both movements are a single atomic step.
func (e *Engine) CompleteDeposit(caller [20]byte, depositAddr [32]byte) (*FiatDeposit, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cfg, err := e.loadProtocol()
	if err != nil {
		return nil, err
	}
	if caller != cfg.Admin {
		return nil, ErrUnauthorized
	}
	var stored storedFiatDeposit
	ok, err := e.state.RecordGet(depositAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	deposit, err := fromStoredFiatDeposit(&stored)
	if err != nil {
		return nil, err
	}
	if deposit.Status != DepositPending {
		return nil, fmt.Errorf("%w: deposit is %s", ErrInvalidState, deposit.Status)
	}
	hasVault, err := e.vaultExists(deposit.Owner)
	if err != nil {
		return nil, err
	}
	if !hasVault {
		return nil, ErrVaultRequired
	}
	fee, net := QuoteFee(deposit.Amount, cfg.FeeBps)
	reserve, err := e.custodyBalance(ReserveAddress(), deposit.AssetID)
	if err != nil {
		return nil, err
	}
	if reserve.Cmp(deposit.Amount) < 0 {
		return nil, fmt.Errorf("%w: reserve cannot cover deposit", ErrInsufficientBalance)
	}
	if err := e.custodyTransfer(ReserveAddress(), VaultAddress(deposit.Owner), deposit.AssetID, net); err != nil {
		return nil, err
	}
	if fee.Sign() > 0 {
		if err := e.custodyTransfer(ReserveAddress(), AdminFeeAddress(cfg.Admin), deposit.AssetID, fee); err != nil {
			return nil, err
		}
	}
	deposit.Status = DepositCompleted
	deposit.UpdatedAt = e.now()
	if err := e.state.RecordPut(depositAddr, toStoredFiatDeposit(deposit)); err != nil {
		return nil, err
	}
	e.emit(NewDepositCompletedEvent(deposit))
	return deposit.Clone(), nil
}

// RejectDeposit marks a pending deposit as rejected after failed off-platform
// verification. Admin-only. No custody moves; nothing was transferred at
// initiation.
func (e *Engine) RejectDeposit(caller [20]byte, depositAddr [32]byte) (*FiatDeposit, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	var stored storedFiatDeposit
	ok, err := e.state.RecordGet(depositAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	deposit, err := fromStoredFiatDeposit(&stored)
	if err != nil {
		return nil, err
	}
	if deposit.Status != DepositPending {
		return nil, fmt.Errorf("%w: deposit is %s", ErrInvalidState, deposit.Status)
	}
	deposit.Status = DepositRejected
	deposit.UpdatedAt = e.now()
	if err := e.state.RecordPut(depositAddr, toStoredFiatDeposit(deposit)); err != nil {
		return nil, err
	}
	e.emit(NewDepositRejectedEvent(deposit))
	return deposit.Clone(), nil
}

// Deposit returns the deposit record at the supplied address.
func (e *Engine) Deposit(depositAddr [32]byte) (*FiatDeposit, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var stored storedFiatDeposit
	ok, err := e.state.RecordGet(depositAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return fromStoredFiatDeposit(&stored)
}

// --- withdrawals ---

// InitiateWithdrawal locks the requested amount from the owner's vault into
// reserve custody and records the payout request. The lock prevents the same
// balance from being spent twice while the payout is in flight.
func (e *Engine) InitiateWithdrawal(owner [20]byte, amount *big.Int, reference, assetID string) (*FiatWithdrawal, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if amount == nil || amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	normalizedRef, err := NormalizeReference(reference)
	if err != nil {
		return nil, err
	}
	normalizedAsset, err := NormalizeAssetID(assetID)
	if err != nil {
		return nil, err
	}
	entry, ok, err := e.loadAsset(normalizedAsset)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAssetNotWhitelisted
	}
	if !entry.Active {
		return nil, ErrAssetInactive
	}
	hasProfile, err := e.profileExists(owner)
	if err != nil {
		return nil, err
	}
	if !hasProfile {
		return nil, ErrProfileRequired
	}
	hasVault, err := e.vaultExists(owner)
	if err != nil {
		return nil, err
	}
	if !hasVault {
		return nil, ErrVaultRequired
	}
	addr := WithdrawalAddress(owner, normalizedAsset, normalizedRef)
	var existing storedFiatWithdrawal
	occupied, err := e.state.RecordGet(addr, &existing)
	if err != nil {
		return nil, err
	}
	if occupied {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateReference, normalizedRef)
	}
	balance, err := e.custodyBalance(VaultAddress(owner), normalizedAsset)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(amount) < 0 {
		return nil, ErrInsufficientBalance
	}
	if err := e.custodyTransfer(VaultAddress(owner), ReserveAddress(), normalizedAsset, amount); err != nil {
		return nil, err
	}
	now := e.now()
	withdrawal := &FiatWithdrawal{
		Owner:     owner,
		AssetID:   normalizedAsset,
		Amount:    new(big.Int).Set(amount),
		Reference: normalizedRef,
		Status:    WithdrawalPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.state.RecordPut(addr, toStoredFiatWithdrawal(withdrawal)); err != nil {
		return nil, err
	}
	e.emit(NewWithdrawalInitiatedEvent(withdrawal))
	return withdrawal.Clone(), nil
}

// CompleteWithdrawal marks a pending withdrawal as settled, signalling the
// off-platform rail that fiat may be paid out. Admin-only. The locked tokens
// stay in reserve as the counter-value of the fiat payout.
func (e *Engine) CompleteWithdrawal(caller [20]byte, withdrawalAddr [32]byte) (*FiatWithdrawal, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	var stored storedFiatWithdrawal
	ok, err := e.state.RecordGet(withdrawalAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	withdrawal, err := fromStoredFiatWithdrawal(&stored)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal is %s", ErrInvalidState, withdrawal.Status)
	}
	withdrawal.Status = WithdrawalCompleted
	withdrawal.UpdatedAt = e.now()
	if err := e.state.RecordPut(withdrawalAddr, toStoredFiatWithdrawal(withdrawal)); err != nil {
		return nil, err
	}
	e.emit(NewWithdrawalCompletedEvent(withdrawal))
	return withdrawal.Clone(), nil
}

// CancelWithdrawal returns the locked amount from reserve custody to the
// owner's vault and marks the withdrawal as cancelled. Admin-only.
func (e *Engine) CancelWithdrawal(caller [20]byte, withdrawalAddr [32]byte) (*FiatWithdrawal, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.requireAdmin(caller); err != nil {
		return nil, err
	}
	var stored storedFiatWithdrawal
	ok, err := e.state.RecordGet(withdrawalAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	withdrawal, err := fromStoredFiatWithdrawal(&stored)
	if err != nil {
		return nil, err
	}
	if withdrawal.Status != WithdrawalPending {
		return nil, fmt.Errorf("%w: withdrawal is %s", ErrInvalidState, withdrawal.Status)
	}
	if err := e.custodyTransfer(ReserveAddress(), VaultAddress(withdrawal.Owner), withdrawal.AssetID, withdrawal.Amount); err != nil {
		return nil, err
	}
	withdrawal.Status = WithdrawalCancelled
	withdrawal.UpdatedAt = e.now()
	if err := e.state.RecordPut(withdrawalAddr, toStoredFiatWithdrawal(withdrawal)); err != nil {
		return nil, err
	}
	e.emit(NewWithdrawalCancelledEvent(withdrawal))
	return withdrawal.Clone(), nil
}

// Withdrawal returns the withdrawal record at the supplied address.
func (e *Engine) Withdrawal(withdrawalAddr [32]byte) (*FiatWithdrawal, error) {
	if err := e.requireState(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	var stored storedFiatWithdrawal
	ok, err := e.state.RecordGet(withdrawalAddr, &stored)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return fromStoredFiatWithdrawal(&stored)
}
