package bridge

import (
	"math/big"
	"testing"
)

func TestQuoteFee(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		feeBps uint32
		fee    int64
		net    int64
	}{
		{name: "one percent", amount: 1_000_000, feeBps: 100, fee: 10_000, net: 990_000},
		{name: "zero rate", amount: 1_000_000, feeBps: 0, fee: 0, net: 1_000_000},
		{name: "full rate", amount: 1_000_000, feeBps: 10_000, fee: 1_000_000, net: 0},
		{name: "floor rounding", amount: 999, feeBps: 100, fee: 9, net: 990},
		{name: "sub bps amount", amount: 3, feeBps: 1, fee: 0, net: 3},
		{name: "single unit", amount: 1, feeBps: 9_999, fee: 0, net: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fee, net := QuoteFee(big.NewInt(tc.amount), tc.feeBps)
			if fee.Cmp(big.NewInt(tc.fee)) != 0 {
				t.Fatalf("fee = %s, want %d", fee, tc.fee)
			}
			if net.Cmp(big.NewInt(tc.net)) != 0 {
				t.Fatalf("net = %s, want %d", net, tc.net)
			}
			if total := new(big.Int).Add(fee, net); total.Cmp(big.NewInt(tc.amount)) != 0 {
				t.Fatalf("fee + net = %s, want %d", total, tc.amount)
			}
		})
	}
}

func TestQuoteFeeNilAmount(t *testing.T) {
	fee, net := QuoteFee(nil, 100)
	if fee.Sign() != 0 || net.Sign() != 0 {
		t.Fatalf("nil amount should quote zero, got fee=%s net=%s", fee, net)
	}
}

func TestValidFeeBps(t *testing.T) {
	if !ValidFeeBps(0) {
		t.Fatal("0 bps should be valid")
	}
	if !ValidFeeBps(10_000) {
		t.Fatal("10000 bps should be valid")
	}
	if ValidFeeBps(10_001) {
		t.Fatal("10001 bps should be invalid")
	}
}
