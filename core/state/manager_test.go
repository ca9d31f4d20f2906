package state

import (
	"math/big"
	"testing"

	"statefi/storage"
)

type payload struct {
	Name  string
	Value uint64
}

func TestRecordRoundTrip(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	addr := [32]byte{0x01}

	var missing payload
	ok, err := manager.RecordGet(addr, &missing)
	if err != nil {
		t.Fatalf("get missing record: %v", err)
	}
	if ok {
		t.Fatal("missing record should report absent")
	}

	if err := manager.RecordPut(addr, payload{Name: "deposit", Value: 42}); err != nil {
		t.Fatalf("put record: %v", err)
	}
	var got payload
	ok, err = manager.RecordGet(addr, &got)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if !ok || got.Name != "deposit" || got.Value != 42 {
		t.Fatalf("unexpected record %+v (present=%v)", got, ok)
	}

	// Overwrites replace the previous value.
	if err := manager.RecordPut(addr, payload{Name: "deposit", Value: 43}); err != nil {
		t.Fatalf("overwrite record: %v", err)
	}
	if _, err := manager.RecordGet(addr, &got); err != nil {
		t.Fatalf("get record: %v", err)
	}
	if got.Value != 43 {
		t.Fatalf("record value = %d, want 43", got.Value)
	}
}

func TestCustodyCells(t *testing.T) {
	manager := NewManager(storage.NewMemDB())
	holder := [32]byte{0xAA}

	balance, err := manager.CustodyBalance(holder, "USDX")
	if err != nil {
		t.Fatalf("read missing custody: %v", err)
	}
	if balance.Sign() != 0 {
		t.Fatalf("missing custody = %s, want 0", balance)
	}

	if err := manager.CustodySet(holder, "USDX", big.NewInt(1_000)); err != nil {
		t.Fatalf("write custody: %v", err)
	}
	balance, err = manager.CustodyBalance(holder, "USDX")
	if err != nil {
		t.Fatalf("read custody: %v", err)
	}
	if balance.Cmp(big.NewInt(1_000)) != 0 {
		t.Fatalf("custody = %s, want 1000", balance)
	}

	// Cells are isolated per asset.
	other, err := manager.CustodyBalance(holder, "EURX")
	if err != nil {
		t.Fatalf("read other custody: %v", err)
	}
	if other.Sign() != 0 {
		t.Fatalf("other asset custody = %s, want 0", other)
	}

	if err := manager.CustodySet(holder, "USDX", big.NewInt(-1)); err == nil {
		t.Fatal("negative custody should be rejected")
	}
	if err := manager.CustodySet(holder, "USDX", nil); err != nil {
		t.Fatalf("nil custody should write zero: %v", err)
	}
	balance, err = manager.CustodyBalance(holder, "USDX")
	if err != nil {
		t.Fatalf("read custody: %v", err)
	}
	if balance.Sign() != 0 {
		t.Fatalf("custody = %s, want 0 after nil write", balance)
	}
}
