// Package curve implements the constant product (x*y=k) math backing vortex
// pools. All intermediate products are computed with 128-bit precision and
// every operation fails loudly instead of wrapping or truncating.
package curve

import (
	"math/bits"

	"github.com/pkg/errors"
)

var (
	ErrAmountTooSmall             = errors.New("amount too small")
	ErrZeroReserves               = errors.New("pool has no reserves")
	ErrZeroSupply                 = errors.New("no liquidity supply")
	ErrInitialLiquidityTooSmall   = errors.New("initial liquidity too small")
	ErrInsufficientLiquidityMint  = errors.New("insufficient liquidity minted")
	ErrInsufficientLiquidityBurn  = errors.New("insufficient liquidity burned")
	ErrInsufficientOutputAmount   = errors.New("insufficient output amount")
	ErrInsufficientLiquidity      = errors.New("insufficient liquidity for swap")
	ErrMathOverflow               = errors.New("math overflow")
	ErrDivisionByZero             = errors.New("division by zero")
	ErrInvariantViolation         = errors.New("invariant violated")
)

// Sqrt calculates the integer square root using the Babylonian method
func Sqrt(y uint64) uint64 {
	if y == 0 {
		return 0
	}

	z := y/2 + 1
	x := y

	for z < x {
		x = z
		z = (y/z + z) / 2
	}

	return x
}

// mulDiv computes (a * b) / den with a 128-bit intermediate product
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}

	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		// Quotient would not fit in 64 bits
		return 0, ErrMathOverflow
	}

	quo, _ := bits.Div64(hi, lo, den)
	return quo, nil
}

// SwapOutput calculates the output amount and fee for a swap.
//
// Formula: amountOut = (amountInWithFee * reserveOut) / (reserveIn + amountInWithFee)
// where amountInWithFee = amountIn * (1 - fee)
func SwapOutput(amountIn, reserveIn, reserveOut, feeNumerator, feeDenominator uint64) (amountOut, feeAmount uint64, err error) {
	if amountIn == 0 {
		return 0, 0, ErrAmountTooSmall
	}
	if reserveIn == 0 || reserveOut == 0 {
		return 0, 0, ErrZeroReserves
	}

	feeAmount, err = mulDiv(amountIn, feeNumerator, feeDenominator)
	if err != nil {
		return 0, 0, err
	}

	if feeAmount > amountIn {
		return 0, 0, ErrMathOverflow
	}
	amountInWithFee := amountIn - feeAmount

	denominator := reserveIn + amountInWithFee
	if denominator < reserveIn {
		return 0, 0, ErrMathOverflow
	}

	amountOut, err = mulDiv(amountInWithFee, reserveOut, denominator)
	if err != nil {
		return 0, 0, err
	}

	if amountOut == 0 {
		return 0, 0, ErrInsufficientOutputAmount
	}
	if amountOut >= reserveOut {
		return 0, 0, ErrInsufficientLiquidity
	}

	return amountOut, feeAmount, nil
}

// InitialLiquidity calculates liquidity tokens to mint for a pool's first
// deposit.
//
// Formula: sqrt(amountA * amountB)
func InitialLiquidity(amountA, amountB uint64) (uint64, error) {
	hi, lo := bits.Mul64(amountA, amountB)
	if hi != 0 {
		return 0, ErrMathOverflow
	}

	liquidity := Sqrt(lo)

	if liquidity < MinimumLiquidity {
		return 0, ErrInitialLiquidityTooSmall
	}

	return liquidity, nil
}

// LiquidityToMint calculates liquidity tokens to mint for deposits after the
// first.
//
// Formula: min((amountA / reserveA) * totalSupply, (amountB / reserveB) * totalSupply)
func LiquidityToMint(amountA, amountB, reserveA, reserveB, totalSupply uint64) (uint64, error) {
	if reserveA == 0 || reserveB == 0 {
		return 0, ErrZeroReserves
	}
	if totalSupply == 0 {
		return 0, ErrZeroSupply
	}

	liquidityA, err := mulDiv(amountA, totalSupply, reserveA)
	if err != nil {
		return 0, err
	}

	liquidityB, err := mulDiv(amountB, totalSupply, reserveB)
	if err != nil {
		return 0, err
	}

	// Return minimum to prevent dilution
	liquidity := liquidityA
	if liquidityB < liquidity {
		liquidity = liquidityB
	}

	if liquidity == 0 {
		return 0, ErrInsufficientLiquidityMint
	}

	return liquidity, nil
}

// AmountsForLiquidity calculates token amounts returned when burning liquidity.
//
// Formula:
//
//	amountA = (liquidity / totalSupply) * reserveA
//	amountB = (liquidity / totalSupply) * reserveB
func AmountsForLiquidity(liquidity, reserveA, reserveB, totalSupply uint64) (amountA, amountB uint64, err error) {
	if liquidity == 0 {
		return 0, 0, ErrInsufficientLiquidityBurn
	}
	if totalSupply == 0 {
		return 0, 0, ErrZeroSupply
	}
	if liquidity > totalSupply {
		return 0, 0, ErrInsufficientLiquidityBurn
	}

	amountA, err = mulDiv(reserveA, liquidity, totalSupply)
	if err != nil {
		return 0, 0, err
	}

	amountB, err = mulDiv(reserveB, liquidity, totalSupply)
	if err != nil {
		return 0, 0, err
	}

	if amountA == 0 || amountB == 0 {
		return 0, 0, ErrInsufficientOutputAmount
	}

	return amountA, amountB, nil
}

// VerifyInvariant verifies the invariant k did not decrease across a swap
func VerifyInvariant(oldReserveA, oldReserveB, newReserveA, newReserveB uint64) error {
	oldHi, oldLo := bits.Mul64(oldReserveA, oldReserveB)
	newHi, newLo := bits.Mul64(newReserveA, newReserveB)

	if newHi > oldHi || (newHi == oldHi && newLo >= oldLo) {
		return nil
	}

	return ErrInvariantViolation
}
