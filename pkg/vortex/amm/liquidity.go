package amm

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ritikbhatt20/vortex/pkg/pointer"
	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type AddLiquidityParams struct {
	User *common.Account

	Pool string

	// The user's token accounts for each side of the pool and the LP mint
	UserTokenA  string
	UserTokenB  string
	UserLpToken string

	AmountA      uint64
	AmountB      uint64
	MinLiquidity uint64

	Signature []byte
}

// AddLiquidity deposits both sides of the pair into the pool's vaults and
// mints LP tokens to the user. The first deposit opens the pool and locks
// the minimum liquidity forever.
func (s *Server) AddLiquidity(ctx context.Context, params *AddLiquidityParams) (string, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "AddLiquidity",
		"pool":   params.Pool,
		"user":   params.User.PublicKey().ToBase58(),
	})

	if params.AmountA == 0 || params.AmountB == 0 {
		return "", curve.ErrAmountTooSmall
	}

	poolAccount, err := common.NewAccountFromPublicKeyString(params.Pool)
	if err != nil {
		return "", errors.Wrap(err, "invalid pool address")
	}

	message := addLiquidityMessage(params.User, poolAccount, params.AmountA, params.AmountB, params.MinLiquidity)
	if !params.User.VerifySignature(message, params.Signature) {
		return "", ErrUnauthorized
	}

	lock := s.poolLocks.Get([]byte(params.Pool))
	lock.Lock()
	defer lock.Unlock()

	poolRecord, err := s.data.GetPool(ctx, params.Pool)
	if err != nil {
		return "", err
	}

	if poolRecord.Paused {
		return "", ErrPoolPaused
	}

	vaults, err := s.getUserAndPoolVaults(ctx, poolRecord, params.User, params.UserTokenA, params.UserTokenB)
	if err != nil {
		return "", err
	}

	userLpToken, err := s.getUserVault(ctx, params.User, params.UserLpToken, poolRecord.LpMint)
	if err != nil {
		return "", err
	}

	if vaults.userTokenA.Balance < params.AmountA || vaults.userTokenB.Balance < params.AmountB {
		return "", ErrInsufficientFunds
	}

	var liquidity, lockedLiquidity uint64
	if !poolRecord.IsInitialized() {
		if params.AmountA < curve.MinInitialLiquidity || params.AmountB < curve.MinInitialLiquidity {
			return "", curve.ErrInitialLiquidityTooSmall
		}

		liquidity, err = curve.InitialLiquidity(params.AmountA, params.AmountB)
		if err != nil {
			return "", err
		}

		// The minimum liquidity never leaves the pool
		lockedLiquidity = curve.MinimumLiquidity
		liquidity -= lockedLiquidity
	} else {
		liquidity, err = curve.LiquidityToMint(params.AmountA, params.AmountB, poolRecord.ReserveA, poolRecord.ReserveB, poolRecord.LpSupply)
		if err != nil {
			return "", err
		}
	}

	if liquidity < params.MinLiquidity {
		return "", ErrSlippageExceeded
	}

	newReserveA, err := checkedAdd(poolRecord.ReserveA, params.AmountA)
	if err != nil {
		return "", err
	}
	newReserveB, err := checkedAdd(poolRecord.ReserveB, params.AmountB)
	if err != nil {
		return "", err
	}
	newLpSupply, err := checkedAdd(poolRecord.LpSupply, liquidity+lockedLiquidity)
	if err != nil {
		return "", err
	}

	slot := s.nextSlot()
	signature := base58.Encode(params.Signature)

	poolRecord.ReserveA = newReserveA
	poolRecord.ReserveB = newReserveB
	poolRecord.LpSupply = newLpSupply
	poolRecord.Slot = slot

	vaults.userTokenA.Balance -= params.AmountA
	vaults.userTokenB.Balance -= params.AmountB
	vaults.poolVaultA.Balance += params.AmountA
	vaults.poolVaultB.Balance += params.AmountB
	userLpToken.Balance += liquidity

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		for _, record := range []*vault.Record{
			vaults.userTokenA,
			vaults.userTokenB,
			vaults.poolVaultA,
			vaults.poolVaultB,
			userLpToken,
		} {
			record.Slot = slot
			if err := s.data.SaveVault(ctx, record); err != nil {
				return err
			}
		}

		if err := s.data.UpdatePool(ctx, poolRecord); err != nil {
			return err
		}

		return s.data.CreateEvent(ctx, &event.Record{
			EventId: uuid.New().String(),
			Type:    event.TypeLiquidityAdded,

			Pool:  params.Pool,
			Actor: params.User.PublicKey().ToBase58(),

			TransactionSignature: signature,

			AmountA:         pointer.Uint64(params.AmountA),
			AmountB:         pointer.Uint64(params.AmountB),
			LiquidityAmount: pointer.Uint64(liquidity),

			ReserveA: poolRecord.ReserveA,
			ReserveB: poolRecord.ReserveB,

			Slot: slot,
		})
	})
	if err != nil {
		log.WithError(err).Warn("failure adding liquidity")
		return "", err
	}

	recordLiquidityChangedEvent(ctx, event.TypeLiquidityAdded, params.Pool, liquidity)

	return signature, nil
}

type RemoveLiquidityParams struct {
	User *common.Account

	Pool string

	UserTokenA  string
	UserTokenB  string
	UserLpToken string

	LiquidityAmount uint64
	MinAmountA      uint64
	MinAmountB      uint64

	Signature []byte
}

// RemoveLiquidity burns the user's LP tokens and redeems a proportional
// share of both reserves. Removal stays enabled while a pool is paused.
func (s *Server) RemoveLiquidity(ctx context.Context, params *RemoveLiquidityParams) (string, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "RemoveLiquidity",
		"pool":   params.Pool,
		"user":   params.User.PublicKey().ToBase58(),
	})

	if params.LiquidityAmount == 0 {
		return "", curve.ErrAmountTooSmall
	}

	poolAccount, err := common.NewAccountFromPublicKeyString(params.Pool)
	if err != nil {
		return "", errors.Wrap(err, "invalid pool address")
	}

	message := removeLiquidityMessage(params.User, poolAccount, params.LiquidityAmount, params.MinAmountA, params.MinAmountB)
	if !params.User.VerifySignature(message, params.Signature) {
		return "", ErrUnauthorized
	}

	lock := s.poolLocks.Get([]byte(params.Pool))
	lock.Lock()
	defer lock.Unlock()

	poolRecord, err := s.data.GetPool(ctx, params.Pool)
	if err != nil {
		return "", err
	}

	if !poolRecord.IsInitialized() {
		return "", ErrPoolNotInitialized
	}

	vaults, err := s.getUserAndPoolVaults(ctx, poolRecord, params.User, params.UserTokenA, params.UserTokenB)
	if err != nil {
		return "", err
	}

	userLpToken, err := s.getUserVault(ctx, params.User, params.UserLpToken, poolRecord.LpMint)
	if err != nil {
		return "", err
	}

	if userLpToken.Balance < params.LiquidityAmount {
		return "", ErrInsufficientFunds
	}

	amountA, amountB, err := curve.AmountsForLiquidity(params.LiquidityAmount, poolRecord.ReserveA, poolRecord.ReserveB, poolRecord.LpSupply)
	if err != nil {
		return "", err
	}

	if amountA < params.MinAmountA || amountB < params.MinAmountB {
		return "", ErrSlippageExceeded
	}

	slot := s.nextSlot()
	signature := base58.Encode(params.Signature)

	poolRecord.ReserveA -= amountA
	poolRecord.ReserveB -= amountB
	poolRecord.LpSupply -= params.LiquidityAmount
	poolRecord.Slot = slot

	userLpToken.Balance -= params.LiquidityAmount
	vaults.poolVaultA.Balance -= amountA
	vaults.poolVaultB.Balance -= amountB
	vaults.userTokenA.Balance += amountA
	vaults.userTokenB.Balance += amountB

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		for _, record := range []*vault.Record{
			userLpToken,
			vaults.poolVaultA,
			vaults.poolVaultB,
			vaults.userTokenA,
			vaults.userTokenB,
		} {
			record.Slot = slot
			if err := s.data.SaveVault(ctx, record); err != nil {
				return err
			}
		}

		if err := s.data.UpdatePool(ctx, poolRecord); err != nil {
			return err
		}

		return s.data.CreateEvent(ctx, &event.Record{
			EventId: uuid.New().String(),
			Type:    event.TypeLiquidityRemoved,

			Pool:  params.Pool,
			Actor: params.User.PublicKey().ToBase58(),

			TransactionSignature: signature,

			AmountA:         pointer.Uint64(amountA),
			AmountB:         pointer.Uint64(amountB),
			LiquidityAmount: pointer.Uint64(params.LiquidityAmount),

			ReserveA: poolRecord.ReserveA,
			ReserveB: poolRecord.ReserveB,

			Slot: slot,
		})
	})
	if err != nil {
		log.WithError(err).Warn("failure removing liquidity")
		return "", err
	}

	recordLiquidityChangedEvent(ctx, event.TypeLiquidityRemoved, params.Pool, params.LiquidityAmount)

	return signature, nil
}
