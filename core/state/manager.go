package state

import (
	"errors"
	"fmt"
	"math/big"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"statefi/storage"
)

// Manager mediates every record and custody access against the backing
// key/value store. Records are rlp-encoded structs addressed by their derived
// [32]byte address; custody cells are big-endian balances keyed by
// (holder, asset).
type Manager struct {
	db storage.Database
}

// NewManager creates a state manager on top of the supplied database.
func NewManager(db storage.Database) *Manager {
	return &Manager{db: db}
}

func recordKey(addr [32]byte) []byte {
	buf := make([]byte, 0, len("record/")+len(addr))
	buf = append(buf, "record/"...)
	buf = append(buf, addr[:]...)
	return ethcrypto.Keccak256(buf)
}

func custodyKey(holder [32]byte, assetID string) []byte {
	buf := make([]byte, 0, len("custody/")+len(holder)+1+len(assetID))
	buf = append(buf, "custody/"...)
	buf = append(buf, holder[:]...)
	buf = append(buf, 0x00)
	buf = append(buf, assetID...)
	return ethcrypto.Keccak256(buf)
}

// RecordGet loads and decodes the record stored at addr into out. It reports
// false without error when no record exists at the address.
func (m *Manager) RecordGet(addr [32]byte, out interface{}) (bool, error) {
	data, err := m.db.Get(recordKey(addr))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("state: read record: %w", err)
	}
	if len(data) == 0 {
		return false, nil
	}
	if err := rlp.DecodeBytes(data, out); err != nil {
		return false, fmt.Errorf("state: decode record: %w", err)
	}
	return true, nil
}

// RecordPut encodes value and stores it at addr, replacing any previous
// record.
func (m *Manager) RecordPut(addr [32]byte, value interface{}) error {
	data, err := rlp.EncodeToBytes(value)
	if err != nil {
		return fmt.Errorf("state: encode record: %w", err)
	}
	if err := m.db.Put(recordKey(addr), data); err != nil {
		return fmt.Errorf("state: write record: %w", err)
	}
	return nil
}

// CustodyBalance returns the balance the holder custody cell carries for the
// asset. A missing cell reads as zero.
func (m *Manager) CustodyBalance(holder [32]byte, assetID string) (*big.Int, error) {
	data, err := m.db.Get(custodyKey(holder, assetID))
	if err != nil {
		if errors.Is(err, storage.ErrKeyNotFound) {
			return big.NewInt(0), nil
		}
		return nil, fmt.Errorf("state: read custody: %w", err)
	}
	return new(big.Int).SetBytes(data), nil
}

// CustodySet overwrites the custody cell for (holder, asset). Negative
// balances are rejected; a nil balance writes zero.
func (m *Manager) CustodySet(holder [32]byte, assetID string, balance *big.Int) error {
	if balance == nil {
		balance = big.NewInt(0)
	}
	if balance.Sign() < 0 {
		return fmt.Errorf("state: custody balance must not be negative")
	}
	if err := m.db.Put(custodyKey(holder, assetID), balance.Bytes()); err != nil {
		return fmt.Errorf("state: write custody: %w", err)
	}
	return nil
}
