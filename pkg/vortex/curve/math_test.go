package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqrt(t *testing.T) {
	for _, tc := range []struct {
		input    uint64
		expected uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{15, 3},
		{16, 4},
		{1000000, 1000},
		{999999, 999},
		{math.MaxUint64, 4294967295},
	} {
		assert.Equal(t, tc.expected, Sqrt(tc.input))
	}
}

func TestSwapOutput_HappyPath(t *testing.T) {
	// 0.3% fee on a balanced pool
	amountOut, feeAmount, err := SwapOutput(1000, 1000000, 1000000, StandardFeeNumerator, StandardFeeDenominator)
	require.NoError(t, err)

	assert.EqualValues(t, 3, feeAmount)
	assert.EqualValues(t, 996, amountOut)

	// Output never exceeds what the invariant allows
	assert.NoError(t, VerifyInvariant(1000000, 1000000, 1000000+1000, 1000000-amountOut))
}

func TestSwapOutput_ZeroFee(t *testing.T) {
	amountOut, feeAmount, err := SwapOutput(1000, 1000000, 1000000, 0, StandardFeeDenominator)
	require.NoError(t, err)

	assert.EqualValues(t, 0, feeAmount)
	assert.EqualValues(t, 999, amountOut)
}

func TestSwapOutput_Errors(t *testing.T) {
	_, _, err := SwapOutput(0, 1000000, 1000000, StandardFeeNumerator, StandardFeeDenominator)
	assert.Equal(t, ErrAmountTooSmall, err)

	_, _, err = SwapOutput(1000, 0, 1000000, StandardFeeNumerator, StandardFeeDenominator)
	assert.Equal(t, ErrZeroReserves, err)

	_, _, err = SwapOutput(1000, 1000000, 0, StandardFeeNumerator, StandardFeeDenominator)
	assert.Equal(t, ErrZeroReserves, err)

	// Tiny swap into a deep pool rounds to zero output
	_, _, err = SwapOutput(1, math.MaxUint64/2, 1, StandardFeeNumerator, StandardFeeDenominator)
	assert.Equal(t, ErrInsufficientOutputAmount, err)
}

func TestSwapOutput_InvariantPreserved(t *testing.T) {
	reserveIn := uint64(5000000)
	reserveOut := uint64(2000000)

	for _, amountIn := range []uint64{100, 1000, 50000, 1000000} {
		amountOut, _, err := SwapOutput(amountIn, reserveIn, reserveOut, StandardFeeNumerator, StandardFeeDenominator)
		require.NoError(t, err)
		require.True(t, amountOut < reserveOut)

		assert.NoError(t, VerifyInvariant(
			reserveIn,
			reserveOut,
			reserveIn+amountIn,
			reserveOut-amountOut,
		))
	}
}

func TestInitialLiquidity(t *testing.T) {
	liquidity, err := InitialLiquidity(1000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 1000000, liquidity)

	liquidity, err = InitialLiquidity(4000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 2000000, liquidity)

	_, err = InitialLiquidity(10, 10)
	assert.Equal(t, ErrInitialLiquidityTooSmall, err)

	_, err = InitialLiquidity(math.MaxUint64, math.MaxUint64)
	assert.Equal(t, ErrMathOverflow, err)
}

func TestLiquidityToMint(t *testing.T) {
	// Proportional deposit mints proportional liquidity
	liquidity, err := LiquidityToMint(100000, 100000, 1000000, 1000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 100000, liquidity)

	// Unbalanced deposit mints against the smaller side
	liquidity, err = LiquidityToMint(100000, 50000, 1000000, 1000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 50000, liquidity)

	_, err = LiquidityToMint(100, 100, 0, 1000000, 1000000)
	assert.Equal(t, ErrZeroReserves, err)

	_, err = LiquidityToMint(100, 100, 1000000, 1000000, 0)
	assert.Equal(t, ErrZeroSupply, err)

	_, err = LiquidityToMint(0, 0, 1000000, 1000000, 1000000)
	assert.Equal(t, ErrInsufficientLiquidityMint, err)
}

func TestAmountsForLiquidity(t *testing.T) {
	amountA, amountB, err := AmountsForLiquidity(100000, 2000000, 1000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 200000, amountA)
	assert.EqualValues(t, 100000, amountB)

	// Burning the full supply drains the pool
	amountA, amountB, err = AmountsForLiquidity(1000000, 2000000, 1000000, 1000000)
	require.NoError(t, err)
	assert.EqualValues(t, 2000000, amountA)
	assert.EqualValues(t, 1000000, amountB)

	_, _, err = AmountsForLiquidity(0, 1000000, 1000000, 1000000)
	assert.Equal(t, ErrInsufficientLiquidityBurn, err)

	_, _, err = AmountsForLiquidity(2000000, 1000000, 1000000, 1000000)
	assert.Equal(t, ErrInsufficientLiquidityBurn, err)

	_, _, err = AmountsForLiquidity(100, 1000000, 1000000, 0)
	assert.Equal(t, ErrZeroSupply, err)
}

func TestVerifyInvariant(t *testing.T) {
	assert.NoError(t, VerifyInvariant(1000, 1000, 1000, 1000))
	assert.NoError(t, VerifyInvariant(1000, 1000, 2000, 501))
	assert.Equal(t, ErrInvariantViolation, VerifyInvariant(1000, 1000, 2000, 499))

	// Products exceeding 64 bits compare correctly
	assert.NoError(t, VerifyInvariant(math.MaxUint64, 2, math.MaxUint64, 3))
	assert.Equal(t, ErrInvariantViolation, VerifyInvariant(math.MaxUint64, 3, math.MaxUint64, 2))
}

func TestValidateFee(t *testing.T) {
	assert.True(t, ValidateFee(StandardFeeNumerator, StandardFeeDenominator))
	assert.True(t, ValidateFee(1, 10000))
	assert.True(t, ValidateFee(1000, 10000))
	assert.True(t, ValidateFee(1, 100))

	assert.False(t, ValidateFee(0, 10000))
	assert.False(t, ValidateFee(1001, 10000))
	assert.False(t, ValidateFee(1, 0))
	assert.False(t, ValidateFee(10001, 10000))

	// The bps product must not wrap into the valid range
	assert.False(t, ValidateFee(1<<60|1, 1000))
	assert.False(t, ValidateFee(math.MaxUint64, math.MaxUint64))
}
