package amm

import (
	"sync"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

func TestInitializePool_HappyPath(t *testing.T) {
	env := setup(t, nil)

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenAMint, tokenBMint := generateTestMints(t)

	initialLamports := 10 * poolCreationCost()
	env.fundNativeAccount(t, payer, initialLamports)

	params := &InitializePoolParams{
		Payer:          payer,
		Authority:      authority,
		TokenAMint:     tokenAMint,
		TokenBMint:     tokenBMint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	signature, err := env.server.InitializePool(env.ctx, params)
	require.NoError(t, err)
	assert.Equal(t, base58.Encode(params.PayerSignature), signature)

	accounts, err := common.GetPoolAccounts(tokenAMint, tokenBMint)
	require.NoError(t, err)

	poolRecord, err := env.data.GetPool(env.ctx, accounts.State.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.EqualValues(t, curve.ProtocolVersion, poolRecord.Version)
	assert.Equal(t, accounts.StateBump, poolRecord.Bump)
	assert.Equal(t, accounts.LpMintAuthorityBump, poolRecord.LpMintAuthorityBump)
	assert.Equal(t, tokenAMint.PublicKey().ToBase58(), poolRecord.TokenAMint)
	assert.Equal(t, tokenBMint.PublicKey().ToBase58(), poolRecord.TokenBMint)
	assert.Equal(t, accounts.VaultA.PublicKey().ToBase58(), poolRecord.TokenAVault)
	assert.Equal(t, accounts.VaultB.PublicKey().ToBase58(), poolRecord.TokenBVault)
	assert.Equal(t, accounts.LpMint.PublicKey().ToBase58(), poolRecord.LpMint)
	assert.Equal(t, authority.PublicKey().ToBase58(), poolRecord.Authority)
	assert.EqualValues(t, curve.StandardFeeNumerator, poolRecord.FeeNumerator)
	assert.EqualValues(t, curve.StandardFeeDenominator, poolRecord.FeeDenominator)
	assert.EqualValues(t, 0, poolRecord.ReserveA)
	assert.EqualValues(t, 0, poolRecord.ReserveB)
	assert.EqualValues(t, 0, poolRecord.LpSupply)
	assert.False(t, poolRecord.Paused)
	assert.False(t, poolRecord.IsInitialized())

	// Both token vaults are created empty and owned by the pool
	for _, vaultAddress := range []string{poolRecord.TokenAVault, poolRecord.TokenBVault} {
		vaultRecord, err := env.data.GetVault(env.ctx, vaultAddress)
		require.NoError(t, err)
		assert.Equal(t, poolRecord.Address, vaultRecord.Owner)
		assert.EqualValues(t, 0, vaultRecord.Balance)
	}

	// The payer paid rent for the pool state, both vaults and the LP mint
	payerVault, err := env.data.GetVault(env.ctx, payer.PublicKey().ToBase58())
	require.NoError(t, err)
	assert.Equal(t, initialLamports-poolCreationCost(), payerVault.Balance)

	events, err := env.data.GetEventsBySignature(env.ctx, signature)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, event.TypePoolCreated, events[0].Type)
	assert.Equal(t, poolRecord.Address, events[0].Pool)
	assert.Equal(t, payer.PublicKey().ToBase58(), events[0].Actor)
}

func TestInitializePool_AlreadyInitialized(t *testing.T) {
	env := setup(t, nil)

	existing := env.initializeTestPool(t)

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	params := &InitializePoolParams{
		Payer:          payer,
		Authority:      authority,
		TokenAMint:     existing.accounts.TokenAMint,
		TokenBMint:     existing.accounts.TokenBMint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	assert.Equal(t, ErrAlreadyInitialized, err)
}

func TestInitializePool_IdenticalMints(t *testing.T) {
	env := setup(t, nil)

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	mint, err := common.NewRandomAccount()
	require.NoError(t, err)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	params := &InitializePoolParams{
		Payer:          payer,
		Authority:      authority,
		TokenAMint:     mint,
		TokenBMint:     mint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	assert.Equal(t, ErrIdenticalMints, err)
}

func TestInitializePool_InvalidFee(t *testing.T) {
	env := setup(t, nil)

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	for _, tc := range []struct {
		numerator   uint64
		denominator uint64
	}{
		{0, 1000},     // below minimum
		{1001, 10000}, // above maximum
		{3, 0},        // zero denominator
		{1001, 1000},  // numerator exceeds denominator
	} {
		tokenAMint, tokenBMint := generateTestMints(t)

		params := &InitializePoolParams{
			Payer:          payer,
			Authority:      authority,
			TokenAMint:     tokenAMint,
			TokenBMint:     tokenBMint,
			FeeNumerator:   tc.numerator,
			FeeDenominator: tc.denominator,
		}
		signInitializePoolParams(t, params)

		_, err = env.server.InitializePool(env.ctx, params)
		assert.Equal(t, ErrInvalidFee, err)
	}
}

func TestInitializePool_Unauthorized(t *testing.T) {
	env := setup(t, nil)

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	maliciousAccount, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenAMint, tokenBMint := generateTestMints(t)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	accounts, err := common.GetPoolAccounts(tokenAMint, tokenBMint)
	require.NoError(t, err)

	message := initializePoolMessage(payer, authority, accounts, curve.StandardFeeNumerator, curve.StandardFeeDenominator)

	maliciousSignature, err := maliciousAccount.Sign(message)
	require.NoError(t, err)

	params := &InitializePoolParams{
		Payer:          payer,
		Authority:      authority,
		TokenAMint:     tokenAMint,
		TokenBMint:     tokenBMint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	for _, mutate := range []func(p *InitializePoolParams){
		func(p *InitializePoolParams) { p.PayerSignature = nil },
		func(p *InitializePoolParams) { p.PayerSignature = maliciousSignature },
		func(p *InitializePoolParams) { p.AuthoritySignature = nil },
		func(p *InitializePoolParams) { p.AuthoritySignature = maliciousSignature },
	} {
		mutated := *params
		mutate(&mutated)

		_, err = env.server.InitializePool(env.ctx, &mutated)
		assert.Equal(t, ErrUnauthorized, err)
	}

	// No state was written by the rejected attempts
	_, err = env.data.GetPool(env.ctx, accounts.State.PublicKey().ToBase58())
	assert.Equal(t, pool.ErrPoolNotFound, err)
}

func TestInitializePool_InsufficientFunds(t *testing.T) {
	env := setup(t, nil)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	// Payer with no native account at all
	unfundedPayer, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenAMint, tokenBMint := generateTestMints(t)

	params := &InitializePoolParams{
		Payer:          unfundedPayer,
		Authority:      authority,
		TokenAMint:     tokenAMint,
		TokenBMint:     tokenBMint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	assert.Equal(t, ErrInsufficientFunds, err)

	// Payer with a balance just short of the rent requirement
	underfundedPayer, err := common.NewRandomAccount()
	require.NoError(t, err)
	env.fundNativeAccount(t, underfundedPayer, poolCreationCost()-1)

	params.Payer = underfundedPayer
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	assert.Equal(t, ErrInsufficientFunds, err)
}

func TestInitializePool_CreationDisabled(t *testing.T) {
	env := setup(t, &testOverrides{
		disablePoolCreation: true,
	})

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenAMint, tokenBMint := generateTestMints(t)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	params := &InitializePoolParams{
		Payer:          payer,
		Authority:      authority,
		TokenAMint:     tokenAMint,
		TokenBMint:     tokenBMint,
		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,
	}
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	assert.Equal(t, ErrPoolCreationDisabled, err)
}

func TestInitializePool_RateLimited(t *testing.T) {
	env := setup(t, &testOverrides{
		createPoolRateLimit: 1,
	})

	payer, err := common.NewRandomAccount()
	require.NoError(t, err)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	env.fundNativeAccount(t, payer, 10*poolCreationCost())

	newParams := func() *InitializePoolParams {
		tokenAMint, tokenBMint := generateTestMints(t)

		params := &InitializePoolParams{
			Payer:          payer,
			Authority:      authority,
			TokenAMint:     tokenAMint,
			TokenBMint:     tokenBMint,
			FeeNumerator:   curve.StandardFeeNumerator,
			FeeDenominator: curve.StandardFeeDenominator,
		}
		signInitializePoolParams(t, params)
		return params
	}

	_, err = env.server.InitializePool(env.ctx, newParams())
	require.NoError(t, err)

	_, err = env.server.InitializePool(env.ctx, newParams())
	assert.Equal(t, ErrRateLimited, err)
}

func TestInitializePool_RaceCondition(t *testing.T) {
	env := setup(t, nil)

	authority, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenAMint, tokenBMint := generateTestMints(t)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < len(errs); i++ {
		payer, err := common.NewRandomAccount()
		require.NoError(t, err)

		env.fundNativeAccount(t, payer, 10*poolCreationCost())

		params := &InitializePoolParams{
			Payer:          payer,
			Authority:      authority,
			TokenAMint:     tokenAMint,
			TokenBMint:     tokenBMint,
			FeeNumerator:   curve.StandardFeeNumerator,
			FeeDenominator: curve.StandardFeeDenominator,
		}
		signInitializePoolParams(t, params)

		wg.Add(1)
		go func(i int, params *InitializePoolParams) {
			defer wg.Done()
			_, errs[i] = env.server.InitializePool(env.ctx, params)
		}(i, params)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.Equal(t, ErrAlreadyInitialized, err)
		}
	}
	assert.Equal(t, 1, successes)

	_, err = env.data.GetPoolByMints(env.ctx, tokenAMint.PublicKey().ToBase58(), tokenBMint.PublicKey().ToBase58())
	assert.NoError(t, err)
}
