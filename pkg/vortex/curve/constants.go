package curve

import "math/bits"

const (
	// BpsDenominator is the basis points denominator (100% = 10000 bps)
	BpsDenominator = 10_000

	// MinimumLiquidity is locked forever on a pool's first deposit
	MinimumLiquidity = 1_000

	// Standard fee: 0.3% (3/1000)
	StandardFeeNumerator   = 3
	StandardFeeDenominator = 1_000

	// Low fee: 0.05% (5/10000) for stablecoins
	LowFeeNumerator   = 5
	LowFeeDenominator = 10_000

	// High fee: 1% (1/100) for exotic pairs
	HighFeeNumerator   = 1
	HighFeeDenominator = 100

	// MaxFeeBps is the maximum fee allowed (10% = 1000 bps)
	MaxFeeBps = 1_000

	// MinFeeBps is the minimum fee allowed (0.01% = 1 bps)
	MinFeeBps = 1

	// MinSwapAmount prevents dust attacks
	MinSwapAmount = 100

	// MinInitialLiquidity is the minimum per-side deposit that opens a pool
	MinInitialLiquidity = 1_000

	// ProtocolVersion is the current protocol version
	ProtocolVersion = 1
)

// ValidateFee validates fee parameters against the allowed bps range
func ValidateFee(numerator, denominator uint64) bool {
	if denominator == 0 {
		return false
	}
	hi, lo := bits.Mul64(numerator, BpsDenominator)
	if hi != 0 {
		return false
	}
	feeBps := lo / denominator
	return feeBps >= MinFeeBps && feeBps <= MaxFeeBps
}
