package bridge

import (
	"encoding/hex"
	"strconv"

	"statefi/core/types"
)

const (
	EventTypeProtocolInitialized = "bridge.protocol.initialized"
	EventTypeProfileCreated      = "bridge.profile.created"
	EventTypeVaultCreated        = "bridge.vault.created"
	EventTypeAssetWhitelisted    = "bridge.asset.whitelisted"
	EventTypeAssetUpdated        = "bridge.asset.updated"
	EventTypeReserveFunded       = "bridge.reserve.funded"
	EventTypeDepositInitiated    = "bridge.deposit.initiated"
	EventTypeDepositCompleted    = "bridge.deposit.completed"
	EventTypeDepositRejected     = "bridge.deposit.rejected"
	EventTypeWithdrawalInitiated = "bridge.withdrawal.initiated"
	EventTypeWithdrawalCompleted = "bridge.withdrawal.completed"
	EventTypeWithdrawalCancelled = "bridge.withdrawal.cancelled"
)

// NewProtocolInitializedEvent returns the canonical payload emitted when the
// protocol config is created.
func NewProtocolInitializedEvent(cfg *ProtocolConfig) *types.Event {
	attrs := make(map[string]string)
	if cfg != nil {
		attrs["admin"] = hex.EncodeToString(cfg.Admin[:])
		attrs["feeBps"] = strconv.FormatUint(uint64(cfg.FeeBps), 10)
		attrs["createdAt"] = strconv.FormatInt(cfg.CreatedAt, 10)
	}
	return &types.Event{Type: EventTypeProtocolInitialized, Attributes: attrs}
}

// NewProfileCreatedEvent returns the canonical payload for a new user profile.
func NewProfileCreatedEvent(profile *UserProfile) *types.Event {
	attrs := make(map[string]string)
	if profile != nil {
		attrs["owner"] = hex.EncodeToString(profile.Owner[:])
		attrs["name"] = profile.Name
		attrs["createdAt"] = strconv.FormatInt(profile.CreatedAt, 10)
	}
	return &types.Event{Type: EventTypeProfileCreated, Attributes: attrs}
}

// NewVaultCreatedEvent returns the canonical payload for a newly opened vault.
func NewVaultCreatedEvent(vault *Vault) *types.Event {
	attrs := make(map[string]string)
	if vault != nil {
		attrs["owner"] = hex.EncodeToString(vault.Owner[:])
		attrs["createdAt"] = strconv.FormatInt(vault.CreatedAt, 10)
	}
	return &types.Event{Type: EventTypeVaultCreated, Attributes: attrs}
}

// NewAssetWhitelistedEvent returns the canonical payload for a new whitelist
// entry.
func NewAssetWhitelistedEvent(entry *TokenWhitelist) *types.Event {
	return newAssetEvent(EventTypeAssetWhitelisted, entry)
}

// NewAssetUpdatedEvent returns the canonical payload emitted when the active
// flag of a whitelist entry flips.
func NewAssetUpdatedEvent(entry *TokenWhitelist) *types.Event {
	return newAssetEvent(EventTypeAssetUpdated, entry)
}

func newAssetEvent(eventType string, entry *TokenWhitelist) *types.Event {
	attrs := make(map[string]string)
	if entry != nil {
		attrs["assetId"] = entry.AssetID
		attrs["symbol"] = entry.Symbol
		attrs["stable"] = strconv.FormatBool(entry.IsStable)
		attrs["active"] = strconv.FormatBool(entry.Active)
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}

// NewReserveFundedEvent returns the canonical payload emitted when the admin
// credits the protocol reserve.
func NewReserveFundedEvent(assetID string, amount string) *types.Event {
	return &types.Event{Type: EventTypeReserveFunded, Attributes: map[string]string{
		"assetId": assetID,
		"amount":  amount,
	}}
}

// NewDepositInitiatedEvent returns the canonical payload for a new deposit
// request.
func NewDepositInitiatedEvent(deposit *FiatDeposit) *types.Event {
	return newDepositEvent(EventTypeDepositInitiated, deposit)
}

// NewDepositCompletedEvent returns the canonical payload emitted when a
// deposit settles.
func NewDepositCompletedEvent(deposit *FiatDeposit) *types.Event {
	return newDepositEvent(EventTypeDepositCompleted, deposit)
}

// NewDepositRejectedEvent returns the canonical payload emitted when the admin
// refuses a pending deposit.
func NewDepositRejectedEvent(deposit *FiatDeposit) *types.Event {
	return newDepositEvent(EventTypeDepositRejected, deposit)
}

func newDepositEvent(eventType string, deposit *FiatDeposit) *types.Event {
	attrs := make(map[string]string)
	if deposit != nil {
		sanitized := deposit.Clone()
		attrs["owner"] = hex.EncodeToString(sanitized.Owner[:])
		attrs["assetId"] = sanitized.AssetID
		attrs["amount"] = sanitized.Amount.String()
		attrs["reference"] = sanitized.Reference
		attrs["status"] = sanitized.Status.String()
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}

// NewWithdrawalInitiatedEvent returns the canonical payload for a new
// withdrawal request.
func NewWithdrawalInitiatedEvent(withdrawal *FiatWithdrawal) *types.Event {
	return newWithdrawalEvent(EventTypeWithdrawalInitiated, withdrawal)
}

// NewWithdrawalCompletedEvent returns the canonical payload emitted when a
// withdrawal settles.
func NewWithdrawalCompletedEvent(withdrawal *FiatWithdrawal) *types.Event {
	return newWithdrawalEvent(EventTypeWithdrawalCompleted, withdrawal)
}

// NewWithdrawalCancelledEvent returns the canonical payload emitted when a
// pending withdrawal is cancelled and its lock returned.
func NewWithdrawalCancelledEvent(withdrawal *FiatWithdrawal) *types.Event {
	return newWithdrawalEvent(EventTypeWithdrawalCancelled, withdrawal)
}

func newWithdrawalEvent(eventType string, withdrawal *FiatWithdrawal) *types.Event {
	attrs := make(map[string]string)
	if withdrawal != nil {
		sanitized := withdrawal.Clone()
		attrs["owner"] = hex.EncodeToString(sanitized.Owner[:])
		attrs["assetId"] = sanitized.AssetID
		attrs["amount"] = sanitized.Amount.String()
		attrs["reference"] = sanitized.Reference
		attrs["status"] = sanitized.Status.String()
	}
	return &types.Event{Type: eventType, Attributes: attrs}
}
