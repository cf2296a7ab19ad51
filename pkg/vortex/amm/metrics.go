package amm

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/metrics"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

const (
	poolCreatedEventName      = "PoolCreated"
	liquidityChangedEventName = "LiquidityChanged"
	swapExecutedEventName     = "SwapExecuted"
	poolPauseUpdatedEventName = "PoolPauseUpdated"
)

func recordPoolCreatedEvent(ctx context.Context, poolAddress, tokenAMint, tokenBMint string, feeBps uint64) {
	metrics.RecordEvent(ctx, poolCreatedEventName, map[string]interface{}{
		"pool":         poolAddress,
		"token_a_mint": tokenAMint,
		"token_b_mint": tokenBMint,
		"fee_bps":      feeBps,
	})
}

func recordLiquidityChangedEvent(ctx context.Context, eventType event.Type, poolAddress string, liquidity uint64) {
	metrics.RecordEvent(ctx, liquidityChangedEventName, map[string]interface{}{
		"pool":      poolAddress,
		"type":      eventType.String(),
		"liquidity": liquidity,
	})
}

func recordSwapExecutedEvent(ctx context.Context, poolAddress string, amountIn, amountOut, feeAmount uint64) {
	metrics.RecordEvent(ctx, swapExecutedEventName, map[string]interface{}{
		"pool":       poolAddress,
		"amount_in":  amountIn,
		"amount_out": amountOut,
		"fee_amount": feeAmount,
	})
}

func recordPoolPauseUpdatedEvent(ctx context.Context, poolAddress string, paused bool) {
	metrics.RecordEvent(ctx, poolPauseUpdatedEventName, map[string]interface{}{
		"pool":   poolAddress,
		"paused": paused,
	})
}
