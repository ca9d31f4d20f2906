package bridge

import "errors"

// Sentinel errors surfaced by the bridge engine. Every precondition violation
// maps to exactly one of these so callers can react specifically instead of
// pattern-matching on message text.
var (
	// ErrInvalidAmount is returned when a request amount is nil, zero or negative.
	ErrInvalidAmount = errors.New("bridge: invalid amount")
	// ErrInvalidFeeRate is returned when a fee rate exceeds 10000 basis points.
	ErrInvalidFeeRate = errors.New("bridge: invalid fee rate")
	// ErrAssetNotWhitelisted is returned when the referenced asset has no whitelist entry.
	ErrAssetNotWhitelisted = errors.New("bridge: asset not whitelisted")
	// ErrAssetInactive is returned when the whitelist entry exists but has been deactivated.
	ErrAssetInactive = errors.New("bridge: asset inactive")
	// ErrDuplicateReference is returned when the derived request address is already occupied.
	ErrDuplicateReference = errors.New("bridge: duplicate reference")
	// ErrInsufficientBalance is returned when custody cannot cover the requested movement.
	ErrInsufficientBalance = errors.New("bridge: insufficient balance")
	// ErrInvalidState is returned when a settlement targets a record outside the Pending state.
	ErrInvalidState = errors.New("bridge: invalid state")
	// ErrUnauthorized is returned when the acting identity does not hold the required role.
	ErrUnauthorized = errors.New("bridge: unauthorized")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("bridge: record not found")
	// ErrFieldTooLong is returned when a string field exceeds its schema cap.
	ErrFieldTooLong = errors.New("bridge: field too long")
	// ErrProtocolInitialized is returned when initialisation targets an occupied config address.
	ErrProtocolInitialized = errors.New("bridge: protocol already initialized")
	// ErrProtocolNotInitialized is returned when an operation requires a protocol config that does not exist yet.
	ErrProtocolNotInitialized = errors.New("bridge: protocol not initialized")
	// ErrProfileExists is returned when the owner already registered a profile.
	ErrProfileExists = errors.New("bridge: profile already exists")
	// ErrProfileRequired is returned when an operation requires a registered profile.
	ErrProfileRequired = errors.New("bridge: profile required")
	// ErrVaultExists is returned when the owner already opened a vault.
	ErrVaultExists = errors.New("bridge: vault already exists")
	// ErrVaultRequired is returned when an operation requires an open vault.
	ErrVaultRequired = errors.New("bridge: vault required")
)
