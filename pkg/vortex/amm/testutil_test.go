package amm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	vortex_data "github.com/ritikbhatt20/vortex/pkg/vortex/data"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type testEnv struct {
	ctx    context.Context
	data   vortex_data.Provider
	server *Server
}

func setup(t *testing.T, overrides *testOverrides) *testEnv {
	if overrides == nil {
		overrides = &testOverrides{}
	}

	data := vortex_data.NewTestProvider()

	return &testEnv{
		ctx:    context.Background(),
		data:   data,
		server: NewServer(data, withManualTestOverrides(overrides)),
	}
}

// fundNativeAccount backs an account's native balance so it can pay rent
func (env *testEnv) fundNativeAccount(t *testing.T, owner *common.Account, lamports uint64) {
	require.NoError(t, env.data.CreateVault(env.ctx, &vault.Record{
		Address: owner.PublicKey().ToBase58(),
		Mint:    common.NativeMintAccount.PublicKey().ToBase58(),
		Owner:   owner.PublicKey().ToBase58(),
		Balance: lamports,
	}))
}

// createTokenAccount creates a token account for an owner with a balance,
// returning its address
func (env *testEnv) createTokenAccount(t *testing.T, owner *common.Account, mint string, balance uint64) string {
	address, err := common.NewRandomAccount()
	require.NoError(t, err)

	record := &vault.Record{
		Address: address.PublicKey().ToBase58(),
		Mint:    mint,
		Owner:   owner.PublicKey().ToBase58(),
		Balance: balance,
	}
	require.NoError(t, env.data.CreateVault(env.ctx, record))

	return record.Address
}

func generateTestMints(t *testing.T) (*common.Account, *common.Account) {
	tokenAMint, err := common.NewRandomAccount()
	require.NoError(t, err)

	tokenBMint, err := common.NewRandomAccount()
	require.NoError(t, err)

	return tokenAMint, tokenBMint
}

func signInitializePoolParams(t *testing.T, params *InitializePoolParams) {
	accounts, err := common.GetPoolAccounts(params.TokenAMint, params.TokenBMint)
	require.NoError(t, err)

	message := initializePoolMessage(params.Payer, params.Authority, accounts, params.FeeNumerator, params.FeeDenominator)

	params.PayerSignature, err = params.Payer.Sign(message)
	require.NoError(t, err)

	params.AuthoritySignature, err = params.Authority.Sign(message)
	require.NoError(t, err)
}

func mustPoolAccount(t *testing.T, address string) *common.Account {
	account, err := common.NewAccountFromPublicKeyString(address)
	require.NoError(t, err)
	return account
}

func signAddLiquidityParams(t *testing.T, params *AddLiquidityParams) {
	message := addLiquidityMessage(params.User, mustPoolAccount(t, params.Pool), params.AmountA, params.AmountB, params.MinLiquidity)

	var err error
	params.Signature, err = params.User.Sign(message)
	require.NoError(t, err)
}

func signRemoveLiquidityParams(t *testing.T, params *RemoveLiquidityParams) {
	message := removeLiquidityMessage(params.User, mustPoolAccount(t, params.Pool), params.LiquidityAmount, params.MinAmountA, params.MinAmountB)

	var err error
	params.Signature, err = params.User.Sign(message)
	require.NoError(t, err)
}

func signSwapParams(t *testing.T, params *SwapParams) {
	message := swapMessage(params.User, mustPoolAccount(t, params.Pool), params.AmountIn, params.MinAmountOut, params.AToB)

	var err error
	params.Signature, err = params.User.Sign(message)
	require.NoError(t, err)
}

func signSetPoolPausedParams(t *testing.T, params *SetPoolPausedParams) {
	message := setPoolPausedMessage(params.Authority, mustPoolAccount(t, params.Pool), params.Paused)

	var err error
	params.Signature, err = params.Authority.Sign(message)
	require.NoError(t, err)
}

type testPool struct {
	accounts  *common.PoolAccounts
	address   string
	payer     *common.Account
	authority *common.Account
}

// initializeTestPool creates and funds a pool through the full instruction
// flow
func (env *testEnv) initializeTestPool(t *testing.T) *testPool {
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
		FeeNumerator:   3,
		FeeDenominator: 1000,
	}
	signInitializePoolParams(t, params)

	_, err = env.server.InitializePool(env.ctx, params)
	require.NoError(t, err)

	accounts, err := common.GetPoolAccounts(tokenAMint, tokenBMint)
	require.NoError(t, err)

	return &testPool{
		accounts:  accounts,
		address:   accounts.State.PublicKey().ToBase58(),
		payer:     payer,
		authority: authority,
	}
}

type testLpUser struct {
	account *common.Account

	tokenA  string
	tokenB  string
	lpToken string
}

// setupTestUser creates a user with funded token accounts for both sides of
// the pool and an empty LP token account
func (env *testEnv) setupTestUser(t *testing.T, pool *testPool, balanceA, balanceB uint64) *testLpUser {
	user, err := common.NewRandomAccount()
	require.NoError(t, err)

	return &testLpUser{
		account: user,

		tokenA:  env.createTokenAccount(t, user, pool.accounts.TokenAMint.PublicKey().ToBase58(), balanceA),
		tokenB:  env.createTokenAccount(t, user, pool.accounts.TokenBMint.PublicKey().ToBase58(), balanceB),
		lpToken: env.createTokenAccount(t, user, pool.accounts.LpMint.PublicKey().ToBase58(), 0),
	}
}

// setTestPoolPaused flips the pause flag through the full instruction flow
func (env *testEnv) setTestPoolPaused(t *testing.T, pool *testPool, paused bool) {
	params := &SetPoolPausedParams{
		Authority: pool.authority,
		Pool:      pool.address,
		Paused:    paused,
	}
	signSetPoolPausedParams(t, params)

	_, err := env.server.SetPoolPaused(env.ctx, params)
	require.NoError(t, err)
}

// addTestLiquidity runs a successful deposit for a user
func (env *testEnv) addTestLiquidity(t *testing.T, pool *testPool, user *testLpUser, amountA, amountB uint64) {
	params := &AddLiquidityParams{
		User: user.account,

		Pool: pool.address,

		UserTokenA:  user.tokenA,
		UserTokenB:  user.tokenB,
		UserLpToken: user.lpToken,

		AmountA: amountA,
		AmountB: amountB,
	}
	signAddLiquidityParams(t, params)

	_, err := env.server.AddLiquidity(env.ctx, params)
	require.NoError(t, err)
}
