package bridge

import (
	"fmt"
	"math/big"
	"strings"
)

// Field caps enforced on record creation.
const (
	MaxNameLen      = 50
	MaxContactLen   = 100
	MaxSymbolLen    = 10
	MaxReferenceLen = 100
	MaxAssetIDLen   = 64
)

// DepositStatus represents the lifecycle state of a fiat deposit request.
type DepositStatus uint8

const (
	DepositPending DepositStatus = iota + 1
	DepositCompleted
	DepositRejected
)

// Valid reports whether the status value is within the supported range.
func (s DepositStatus) Valid() bool {
	switch s {
	case DepositPending, DepositCompleted, DepositRejected:
		return true
	default:
		return false
	}
}

func (s DepositStatus) String() string {
	switch s {
	case DepositPending:
		return "pending"
	case DepositCompleted:
		return "completed"
	case DepositRejected:
		return "rejected"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// WithdrawalStatus represents the lifecycle state of a fiat withdrawal request.
type WithdrawalStatus uint8

const (
	WithdrawalPending WithdrawalStatus = iota + 1
	WithdrawalCompleted
	WithdrawalCancelled
)

// Valid reports whether the status value is within the supported range.
func (s WithdrawalStatus) Valid() bool {
	switch s {
	case WithdrawalPending, WithdrawalCompleted, WithdrawalCancelled:
		return true
	default:
		return false
	}
}

func (s WithdrawalStatus) String() string {
	switch s {
	case WithdrawalPending:
		return "pending"
	case WithdrawalCompleted:
		return "completed"
	case WithdrawalCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(s))
	}
}

// ProtocolConfig is the singleton record holding the admin identity and the
// settlement fee rate. The admin identity is set once at initialisation.
type ProtocolConfig struct {
	Admin     [20]byte
	FeeBps    uint32
	CreatedAt int64
}

// UserProfile is the per-identity registration record required before any
// vault or request can be created.
type UserProfile struct {
	Owner       [20]byte
	Name        string
	Contact     string
	KYCVerified bool
	CreatedAt   int64
}

// Vault anchors the custody balances held on behalf of a single owner. The
// balances themselves live in per-asset custody cells keyed off the vault
// address.
type Vault struct {
	Owner     [20]byte
	CreatedAt int64
}

// TokenWhitelist is the admin-curated allowlist entry for a fungible asset.
// Entries are deactivated rather than deleted.
type TokenWhitelist struct {
	AssetID   string
	Symbol    string
	Name      string
	IsStable  bool
	Active    bool
	CreatedAt int64
	UpdatedAt int64
}

// FiatDeposit records a user's intent to convert an off-platform fiat payment
// into custodied tokens. No custody moves until settlement.
type FiatDeposit struct {
	Owner     [20]byte
	AssetID   string
	Amount    *big.Int
	Reference string
	Status    DepositStatus
	CreatedAt int64
	UpdatedAt int64
}

// Clone returns a deep copy so callers can safely mutate the copy without
// affecting the stored instance.
func (d *FiatDeposit) Clone() *FiatDeposit {
	if d == nil {
		return nil
	}
	clone := *d
	if d.Amount != nil {
		clone.Amount = new(big.Int).Set(d.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// FiatWithdrawal records a user's intent to convert custodied tokens into an
// off-platform fiat payout. The amount is locked into reserve custody at
// initiation.
type FiatWithdrawal struct {
	Owner     [20]byte
	AssetID   string
	Amount    *big.Int
	Reference string
	Status    WithdrawalStatus
	CreatedAt int64
	UpdatedAt int64
}

// Clone returns a deep copy of the withdrawal record.
func (w *FiatWithdrawal) Clone() *FiatWithdrawal {
	if w == nil {
		return nil
	}
	clone := *w
	if w.Amount != nil {
		clone.Amount = new(big.Int).Set(w.Amount)
	} else {
		clone.Amount = big.NewInt(0)
	}
	return &clone
}

// NormalizeAssetID canonicalises an asset identifier for consistent lookups
// and key derivation.
func NormalizeAssetID(assetID string) (string, error) {
	trimmed := strings.ToUpper(strings.TrimSpace(assetID))
	if trimmed == "" {
		return "", fmt.Errorf("%w: asset id required", ErrAssetNotWhitelisted)
	}
	if len(trimmed) > MaxAssetIDLen {
		return "", fmt.Errorf("%w: asset id exceeds %d bytes", ErrFieldTooLong, MaxAssetIDLen)
	}
	return trimmed, nil
}

// NormalizeReference canonicalises an external reference identifier.
func NormalizeReference(reference string) (string, error) {
	trimmed := strings.TrimSpace(reference)
	if trimmed == "" {
		return "", fmt.Errorf("bridge: reference required")
	}
	if len(trimmed) > MaxReferenceLen {
		return "", fmt.Errorf("%w: reference exceeds %d bytes", ErrFieldTooLong, MaxReferenceLen)
	}
	return trimmed, nil
}
