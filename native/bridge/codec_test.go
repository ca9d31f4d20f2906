package bridge

import (
	"errors"
	"math/big"
	"testing"
)

func TestStoredDepositRejectsCorruption(t *testing.T) {
	if _, err := fromStoredFiatDeposit(&storedFiatDeposit{Amount: "not-a-number", Status: uint8(DepositPending)}); err == nil {
		t.Fatal("malformed amount should fail to decode")
	}
	if _, err := fromStoredFiatDeposit(&storedFiatDeposit{Amount: "-5", Status: uint8(DepositPending)}); err == nil {
		t.Fatal("negative amount should fail to decode")
	}
	if _, err := fromStoredFiatDeposit(&storedFiatDeposit{Amount: "5", Status: 99}); err == nil {
		t.Fatal("unknown status should fail to decode")
	}
}

func TestStoredWithdrawalRejectsCorruption(t *testing.T) {
	if _, err := fromStoredFiatWithdrawal(&storedFiatWithdrawal{Amount: "5", Status: 0}); err == nil {
		t.Fatal("zero status should fail to decode")
	}
}

func TestDepositRoundTrip(t *testing.T) {
	deposit := &FiatDeposit{
		Owner:     newTestAddress(0x07),
		AssetID:   "USDX",
		Amount:    big.NewInt(123_456),
		Reference: "WIRE-7",
		Status:    DepositPending,
		CreatedAt: 1_700_000_000,
		UpdatedAt: 1_700_000_001,
	}
	decoded, err := fromStoredFiatDeposit(ptr(toStoredFiatDeposit(deposit)))
	if err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if decoded.Amount.Cmp(deposit.Amount) != 0 || decoded.Reference != deposit.Reference || decoded.Status != deposit.Status {
		t.Fatalf("round trip mismatch: %+v", decoded)
	}
}

func TestNormalizeAssetID(t *testing.T) {
	normalized, err := NormalizeAssetID("  usdx ")
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if normalized != "USDX" {
		t.Fatalf("normalized = %q, want USDX", normalized)
	}
	if _, err := NormalizeAssetID("  "); err == nil {
		t.Fatal("blank asset id should fail")
	}
	long := make([]byte, MaxAssetIDLen+1)
	for i := range long {
		long[i] = 'A'
	}
	if _, err := NormalizeAssetID(string(long)); !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("oversized asset id should fail with ErrFieldTooLong, got %v", err)
	}
}

func ptr[T any](v T) *T { return &v }
