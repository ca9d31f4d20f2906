package bridge

import "testing"

func TestDerivedAddressesAreDeterministic(t *testing.T) {
	owner := newTestAddress(0x01)

	if DepositAddress(owner, "REF-1") != DepositAddress(owner, "REF-1") {
		t.Fatal("same inputs must derive the same deposit address")
	}
	if WithdrawalAddress(owner, "USDX", "REF-1") != WithdrawalAddress(owner, "USDX", "REF-1") {
		t.Fatal("same inputs must derive the same withdrawal address")
	}
}

func TestDerivedAddressesAreDistinct(t *testing.T) {
	owner := newTestAddress(0x01)
	other := newTestAddress(0x02)

	seen := map[[32]byte]string{}
	record := func(name string, addr [32]byte) {
		if prev, ok := seen[addr]; ok {
			t.Fatalf("address collision between %s and %s", prev, name)
		}
		seen[addr] = name
	}

	record("protocol", ProtocolAddress())
	record("reserve", ReserveAddress())
	record("profile", ProfileAddress(owner))
	record("vault", VaultAddress(owner))
	record("profile-other", ProfileAddress(other))
	record("asset", AssetAddress("USDX"))
	record("admin-fees", AdminFeeAddress(owner))
	record("deposit", DepositAddress(owner, "REF-1"))
	record("deposit-other-ref", DepositAddress(owner, "REF-2"))
	record("deposit-other-owner", DepositAddress(other, "REF-1"))
	record("withdrawal", WithdrawalAddress(owner, "USDX", "REF-1"))
	record("withdrawal-other-asset", WithdrawalAddress(owner, "EURX", "REF-1"))
}

func TestFieldBoundariesCannotShift(t *testing.T) {
	owner := newTestAddress(0x01)
	// "AB"+"C" and "A"+"BC" must not collapse to the same preimage.
	if WithdrawalAddress(owner, "AB", "C") == WithdrawalAddress(owner, "A", "BC") {
		t.Fatal("length prefixing failed to separate adjacent fields")
	}
}
