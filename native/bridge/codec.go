package bridge

import (
	"fmt"
	"math/big"
	"strings"
)

// Stored mirrors of the record schemas. RLP has no native signed-integer or
// big-integer support, so timestamps travel as uint64 and amounts as decimal
// strings; the conversions below keep the domain types canonical.

type storedProtocolConfig struct {
	Admin     [20]byte
	FeeBps    uint32
	CreatedAt uint64
}

type storedUserProfile struct {
	Owner       [20]byte
	Name        string
	Contact     string
	KYCVerified bool
	CreatedAt   uint64
}

type storedVault struct {
	Owner     [20]byte
	CreatedAt uint64
}

type storedTokenWhitelist struct {
	AssetID   string
	Symbol    string
	Name      string
	IsStable  bool
	Active    bool
	CreatedAt uint64
	UpdatedAt uint64
}

type storedFiatDeposit struct {
	Owner     [20]byte
	AssetID   string
	Amount    string
	Reference string
	Status    uint8
	CreatedAt uint64
	UpdatedAt uint64
}

type storedFiatWithdrawal struct {
	Owner     [20]byte
	AssetID   string
	Amount    string
	Reference string
	Status    uint8
	CreatedAt uint64
	UpdatedAt uint64
}

func toStoredProtocolConfig(cfg *ProtocolConfig) storedProtocolConfig {
	return storedProtocolConfig{
		Admin:     cfg.Admin,
		FeeBps:    cfg.FeeBps,
		CreatedAt: sanitizeUnix(cfg.CreatedAt),
	}
}

func fromStoredProtocolConfig(stored *storedProtocolConfig) *ProtocolConfig {
	return &ProtocolConfig{
		Admin:     stored.Admin,
		FeeBps:    stored.FeeBps,
		CreatedAt: int64(stored.CreatedAt),
	}
}

func toStoredUserProfile(profile *UserProfile) storedUserProfile {
	return storedUserProfile{
		Owner:       profile.Owner,
		Name:        strings.TrimSpace(profile.Name),
		Contact:     strings.TrimSpace(profile.Contact),
		KYCVerified: profile.KYCVerified,
		CreatedAt:   sanitizeUnix(profile.CreatedAt),
	}
}

func fromStoredUserProfile(stored *storedUserProfile) *UserProfile {
	return &UserProfile{
		Owner:       stored.Owner,
		Name:        stored.Name,
		Contact:     stored.Contact,
		KYCVerified: stored.KYCVerified,
		CreatedAt:   int64(stored.CreatedAt),
	}
}

func toStoredVault(vault *Vault) storedVault {
	return storedVault{Owner: vault.Owner, CreatedAt: sanitizeUnix(vault.CreatedAt)}
}

func fromStoredVault(stored *storedVault) *Vault {
	return &Vault{Owner: stored.Owner, CreatedAt: int64(stored.CreatedAt)}
}

func toStoredTokenWhitelist(entry *TokenWhitelist) storedTokenWhitelist {
	return storedTokenWhitelist{
		AssetID:   strings.TrimSpace(entry.AssetID),
		Symbol:    strings.TrimSpace(entry.Symbol),
		Name:      strings.TrimSpace(entry.Name),
		IsStable:  entry.IsStable,
		Active:    entry.Active,
		CreatedAt: sanitizeUnix(entry.CreatedAt),
		UpdatedAt: sanitizeUnix(entry.UpdatedAt),
	}
}

func fromStoredTokenWhitelist(stored *storedTokenWhitelist) *TokenWhitelist {
	return &TokenWhitelist{
		AssetID:   stored.AssetID,
		Symbol:    stored.Symbol,
		Name:      stored.Name,
		IsStable:  stored.IsStable,
		Active:    stored.Active,
		CreatedAt: int64(stored.CreatedAt),
		UpdatedAt: int64(stored.UpdatedAt),
	}
}

func toStoredFiatDeposit(deposit *FiatDeposit) storedFiatDeposit {
	return storedFiatDeposit{
		Owner:     deposit.Owner,
		AssetID:   strings.TrimSpace(deposit.AssetID),
		Amount:    amountToString(deposit.Amount),
		Reference: strings.TrimSpace(deposit.Reference),
		Status:    uint8(deposit.Status),
		CreatedAt: sanitizeUnix(deposit.CreatedAt),
		UpdatedAt: sanitizeUnix(deposit.UpdatedAt),
	}
}

func fromStoredFiatDeposit(stored *storedFiatDeposit) (*FiatDeposit, error) {
	amount, err := parseAmount(stored.Amount)
	if err != nil {
		return nil, fmt.Errorf("bridge: corrupted deposit amount: %w", err)
	}
	status := DepositStatus(stored.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("bridge: corrupted deposit status %d", stored.Status)
	}
	return &FiatDeposit{
		Owner:     stored.Owner,
		AssetID:   stored.AssetID,
		Amount:    amount,
		Reference: stored.Reference,
		Status:    status,
		CreatedAt: int64(stored.CreatedAt),
		UpdatedAt: int64(stored.UpdatedAt),
	}, nil
}

func toStoredFiatWithdrawal(withdrawal *FiatWithdrawal) storedFiatWithdrawal {
	return storedFiatWithdrawal{
		Owner:     withdrawal.Owner,
		AssetID:   strings.TrimSpace(withdrawal.AssetID),
		Amount:    amountToString(withdrawal.Amount),
		Reference: strings.TrimSpace(withdrawal.Reference),
		Status:    uint8(withdrawal.Status),
		CreatedAt: sanitizeUnix(withdrawal.CreatedAt),
		UpdatedAt: sanitizeUnix(withdrawal.UpdatedAt),
	}
}

func fromStoredFiatWithdrawal(stored *storedFiatWithdrawal) (*FiatWithdrawal, error) {
	amount, err := parseAmount(stored.Amount)
	if err != nil {
		return nil, fmt.Errorf("bridge: corrupted withdrawal amount: %w", err)
	}
	status := WithdrawalStatus(stored.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("bridge: corrupted withdrawal status %d", stored.Status)
	}
	return &FiatWithdrawal{
		Owner:     stored.Owner,
		AssetID:   stored.AssetID,
		Amount:    amount,
		Reference: stored.Reference,
		Status:    status,
		CreatedAt: int64(stored.CreatedAt),
		UpdatedAt: int64(stored.UpdatedAt),
	}, nil
}

func amountToString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func parseAmount(value string) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer amount %q", value)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("amount must not be negative")
	}
	return amount, nil
}

func sanitizeUnix(value int64) uint64 {
	if value < 0 {
		return 0
	}
	return uint64(value)
}
