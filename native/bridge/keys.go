package bridge

import (
	"encoding/binary"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// namespaceTag scopes every derived address to this program so records can
// never collide with another module sharing the same store.
const namespaceTag = "statefi/bridge/v1"

// Record kinds used in address derivation.
const (
	kindProtocol   = "protocol"
	kindProfile    = "profile"
	kindVault      = "vault"
	kindAsset      = "asset"
	kindDeposit    = "deposit"
	kindWithdrawal = "withdrawal"
	kindReserve    = "reserve"
	kindAdminFees  = "adminfees"
)

// deriveAddress hashes the namespace tag, record kind and identifying fields
// into a storage address. Each field is length-prefixed so distinct tuples can
// never produce the same preimage.
func deriveAddress(kind string, fields ...[]byte) [32]byte {
	buf := make([]byte, 0, len(namespaceTag)+1+len(kind)+1+len(fields)*24)
	buf = append(buf, namespaceTag...)
	buf = append(buf, 0x00)
	buf = append(buf, kind...)
	for _, field := range fields {
		buf = binary.AppendUvarint(buf, uint64(len(field)))
		buf = append(buf, field...)
	}
	return [32]byte(ethcrypto.Keccak256Hash(buf))
}

// ProtocolAddress returns the singleton address of the protocol config record.
func ProtocolAddress() [32]byte {
	return deriveAddress(kindProtocol)
}

// ProfileAddress returns the address of the profile record for the owner.
func ProfileAddress(owner [20]byte) [32]byte {
	return deriveAddress(kindProfile, owner[:])
}

// VaultAddress returns the address of the vault record for the owner. The
// same address doubles as the custody holder for the owner's balances.
func VaultAddress(owner [20]byte) [32]byte {
	return deriveAddress(kindVault, owner[:])
}

// AssetAddress returns the address of the whitelist record for the asset. The
// identifier must already be normalised.
func AssetAddress(assetID string) [32]byte {
	return deriveAddress(kindAsset, []byte(assetID))
}

// DepositAddress returns the address of the deposit request identified by the
// (owner, reference) pair. Resubmitting the same reference resolves to the
// same address, which is the idempotency mechanism.
func DepositAddress(owner [20]byte, reference string) [32]byte {
	return deriveAddress(kindDeposit, owner[:], []byte(reference))
}

// WithdrawalAddress returns the address of the withdrawal request identified
// by the (owner, asset, reference) tuple.
func WithdrawalAddress(owner [20]byte, assetID, reference string) [32]byte {
	return deriveAddress(kindWithdrawal, owner[:], []byte(assetID), []byte(reference))
}

// ReserveAddress returns the custody holder for the protocol reserve.
func ReserveAddress() [32]byte {
	return deriveAddress(kindReserve)
}

// AdminFeeAddress returns the custody holder that accumulates settlement fees
// for the admin identity.
func AdminFeeAddress(admin [20]byte) [32]byte {
	return deriveAddress(kindAdminFees, admin[:])
}
