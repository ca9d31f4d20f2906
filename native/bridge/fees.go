package bridge

import "math/big"

// MaxFeeBps is the upper bound on the settlement fee rate (100%).
const MaxFeeBps uint32 = 10_000

var feeDenominator = big.NewInt(int64(MaxFeeBps))

// QuoteFee computes the protocol's cut of the supplied amount at the given
// basis-point rate using floor division, and the net remainder credited to the
// user. The identity net + fee == amount holds for every input.
func QuoteFee(amount *big.Int, feeBps uint32) (fee, net *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return big.NewInt(0), big.NewInt(0)
	}
	if feeBps == 0 {
		return big.NewInt(0), new(big.Int).Set(amount)
	}
	fee = new(big.Int).Mul(amount, new(big.Int).SetUint64(uint64(feeBps)))
	fee.Div(fee, feeDenominator)
	net = new(big.Int).Sub(amount, fee)
	return fee, net
}

// ValidFeeBps reports whether the rate is within the accepted range.
func ValidFeeBps(feeBps uint32) bool {
	return feeBps <= MaxFeeBps
}
