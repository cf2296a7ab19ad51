package amm

import (
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

func TestSetPoolPaused_HappyPath(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	params := &SetPoolPausedParams{
		Authority: testPool.authority,
		Pool:      testPool.address,
		Paused:    true,
	}
	signSetPoolPausedParams(t, params)

	signature, err := env.server.SetPoolPaused(env.ctx, params)
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(params.Signature), signature)

	poolRecord, err := env.data.GetPool(env.ctx, testPool.address)
	require.NoError(t, err)
	assert.True(t, poolRecord.Paused)

	events, err := env.data.GetEventsBySignature(env.ctx, signature)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypePoolPauseUpdated, events[0].Type)
	assert.Equal(t, testPool.authority.PublicKey().ToBase58(), events[0].Actor)

	env.setTestPoolPaused(t, testPool, false)

	poolRecord, err = env.data.GetPool(env.ctx, testPool.address)
	require.NoError(t, err)
	assert.False(t, poolRecord.Paused)
}

func TestSetPoolPaused_NoOp(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	// Unpausing an unpaused pool succeeds without any writes
	params := &SetPoolPausedParams{
		Authority: testPool.authority,
		Pool:      testPool.address,
		Paused:    false,
	}
	signSetPoolPausedParams(t, params)

	signature, err := env.server.SetPoolPaused(env.ctx, params)
	require.NoError(t, err)

	_, err = env.data.GetEventsBySignature(env.ctx, signature)
	assert.Equal(t, event.ErrEventNotFound, err)

	count, err := env.data.GetEventCountByType(env.ctx, event.TypePoolPauseUpdated)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestSetPoolPaused_Unauthorized(t *testing.T) {
	env := setup(t, nil)

	testPool := env.initializeTestPool(t)

	maliciousAccount, err := common.NewRandomAccount()
	require.NoError(t, err)

	// An account other than the pool's authority cannot pause it
	params := &SetPoolPausedParams{
		Authority: maliciousAccount,
		Pool:      testPool.address,
		Paused:    true,
	}
	signSetPoolPausedParams(t, params)

	_, err = env.server.SetPoolPaused(env.ctx, params)
	assert.Equal(t, ErrUnauthorized, err)

	// A signature from someone other than the claimed authority is rejected
	params = &SetPoolPausedParams{
		Authority: testPool.authority,
		Pool:      testPool.address,
		Paused:    true,
	}
	message := setPoolPausedMessage(testPool.authority, mustPoolAccount(t, testPool.address), true)
	params.Signature, err = maliciousAccount.Sign(message)
	require.NoError(t, err)

	_, err = env.server.SetPoolPaused(env.ctx, params)
	assert.Equal(t, ErrUnauthorized, err)

	poolRecord, err := env.data.GetPool(env.ctx, testPool.address)
	require.NoError(t, err)
	assert.False(t, poolRecord.Paused)
}

func TestSetPoolPaused_PoolNotFound(t *testing.T) {
	env := setup(t, nil)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	unknownPool, err := common.NewRandomAccount()
	require.NoError(t, err)

	params := &SetPoolPausedParams{
		Authority: authority,
		Pool:      unknownPool.PublicKey().ToBase58(),
		Paused:    true,
	}
	signSetPoolPausedParams(t, params)

	_, err = env.server.SetPoolPaused(env.ctx, params)
	assert.Equal(t, pool.ErrPoolNotFound, err)
}
