package amm

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
)

// SwapQuote is an indicative price for a swap against current pool state.
type SwapQuote struct {
	Pool string

	AmountIn  uint64
	AmountOut uint64
	FeeAmount uint64

	ReserveIn  uint64
	ReserveOut uint64
}

// GetSwapQuote prices a swap without executing it. Quotes read through the
// provider's pool cache, so the reserves they price against may lag a
// concurrent swap. Execution always revalidates against live state.
func (s *Server) GetSwapQuote(ctx context.Context, poolAddress string, amountIn uint64, aToB bool) (*SwapQuote, error) {
	if amountIn < curve.MinSwapAmount {
		return nil, curve.ErrAmountTooSmall
	}

	poolRecord, err := s.data.GetCachedPool(ctx, poolAddress)
	if err != nil {
		return nil, err
	}

	if poolRecord.Paused {
		return nil, ErrPoolPaused
	}

	if !poolRecord.IsInitialized() {
		return nil, ErrPoolNotInitialized
	}

	reserveIn, reserveOut := poolRecord.ReserveA, poolRecord.ReserveB
	if !aToB {
		reserveIn, reserveOut = reserveOut, reserveIn
	}

	amountOut, feeAmount, err := curve.SwapOutput(amountIn, reserveIn, reserveOut, poolRecord.FeeNumerator, poolRecord.FeeDenominator)
	if err != nil {
		return nil, err
	}

	return &SwapQuote{
		Pool: poolAddress,

		AmountIn:  amountIn,
		AmountOut: amountOut,
		FeeAmount: feeAmount,

		ReserveIn:  reserveIn,
		ReserveOut: reserveOut,
	}, nil
}
