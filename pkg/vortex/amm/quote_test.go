package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

func TestGetSwapQuote_MatchesExecution(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	lpUser := env.setupTestUser(t, testPool, 1_000_000, 1_000_000)
	env.addTestLiquidity(t, testPool, lpUser, 1_000_000, 1_000_000)

	trader := env.setupTestUser(t, testPool, 10_000, 0)

	quote, err := env.server.GetSwapQuote(env.ctx, testPool.address, 1_000, true)
	require.NoError(t, err)
	assert.EqualValues(t, 996, quote.AmountOut)
	assert.EqualValues(t, 3, quote.FeeAmount)
	assert.EqualValues(t, 1_000_000, quote.ReserveIn)
	assert.EqualValues(t, 1_000_000, quote.ReserveOut)

	// Executing at the quoted output succeeds
	params := &SwapParams{
		User: trader.account,

		Pool: testPool.address,

		UserTokenA: trader.tokenA,
		UserTokenB: trader.tokenB,

		AmountIn:     1_000,
		MinAmountOut: quote.AmountOut,

		AToB: true,
	}
	signSwapParams(t, params)

	_, err = env.server.Swap(env.ctx, params)
	require.NoError(t, err)

	traderTokenB, err := env.data.GetVault(env.ctx, trader.tokenB)
	require.NoError(t, err)
	assert.Equal(t, quote.AmountOut, traderTokenB.Balance)
}

func TestGetSwapQuote_ToleratesStaleState(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	lpUser := env.setupTestUser(t, testPool, 1_000_000, 1_000_000)
	env.addTestLiquidity(t, testPool, lpUser, 1_000_000, 1_000_000)

	trader := env.setupTestUser(t, testPool, 100_000, 0)

	firstQuote, err := env.server.GetSwapQuote(env.ctx, testPool.address, 1_000, true)
	require.NoError(t, err)

	// A swap moves the live reserves
	params := &SwapParams{
		User: trader.account,

		Pool: testPool.address,

		UserTokenA: trader.tokenA,
		UserTokenB: trader.tokenB,

		AmountIn: 50_000,

		AToB: true,
	}
	signSwapParams(t, params)

	_, err = env.server.Swap(env.ctx, params)
	require.NoError(t, err)

	// Quotes keep pricing against the cached snapshot
	secondQuote, err := env.server.GetSwapQuote(env.ctx, testPool.address, 1_000, true)
	require.NoError(t, err)
	assert.Equal(t, firstQuote.AmountOut, secondQuote.AmountOut)
	assert.Equal(t, firstQuote.ReserveIn, secondQuote.ReserveIn)

	poolRecord, err := env.data.GetPool(env.ctx, testPool.address)
	require.NoError(t, err)
	assert.NotEqual(t, secondQuote.ReserveIn, poolRecord.ReserveA)
}

func TestGetSwapQuote_Validation(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	// Dust amounts aren't priced
	_, err := env.server.GetSwapQuote(env.ctx, testPool.address, curve.MinSwapAmount-1, true)
	assert.Equal(t, curve.ErrAmountTooSmall, err)

	// No liquidity deposited yet
	_, err = env.server.GetSwapQuote(env.ctx, testPool.address, 1_000, true)
	assert.Equal(t, ErrPoolNotInitialized, err)

	// Unknown pool
	_, err = env.server.GetSwapQuote(env.ctx, testPool.payer.PublicKey().ToBase58(), 1_000, true)
	assert.Equal(t, pool.ErrPoolNotFound, err)
}

func TestGetSwapQuote_Paused(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	lpUser := env.setupTestUser(t, testPool, 1_000_000, 1_000_000)
	env.addTestLiquidity(t, testPool, lpUser, 1_000_000, 1_000_000)

	env.setTestPoolPaused(t, testPool, true)

	_, err := env.server.GetSwapQuote(env.ctx, testPool.address, 1_000, true)
	assert.Equal(t, ErrPoolPaused, err)
}
