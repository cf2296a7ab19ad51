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

type SwapParams struct {
	User *common.Account

	Pool string

	UserTokenA string
	UserTokenB string

	AmountIn     uint64
	MinAmountOut uint64

	// AToB swaps token A for token B when true, the reverse otherwise
	AToB bool

	Signature []byte
}

// Swap exchanges one side of the pair for the other at the constant product
// price. The invariant k is verified to not decrease before anything is
// committed.
func (s *Server) Swap(ctx context.Context, params *SwapParams) (string, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "Swap",
		"pool":   params.Pool,
		"user":   params.User.PublicKey().ToBase58(),
	})

	if params.AmountIn < curve.MinSwapAmount {
		return "", curve.ErrAmountTooSmall
	}

	poolAccount, err := common.NewAccountFromPublicKeyString(params.Pool)
	if err != nil {
		return "", errors.Wrap(err, "invalid pool address")
	}

	message := swapMessage(params.User, poolAccount, params.AmountIn, params.MinAmountOut, params.AToB)
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

	if !poolRecord.IsInitialized() {
		return "", ErrPoolNotInitialized
	}

	vaults, err := s.getUserAndPoolVaults(ctx, poolRecord, params.User, params.UserTokenA, params.UserTokenB)
	if err != nil {
		return "", err
	}

	reserveIn, reserveOut := poolRecord.ReserveA, poolRecord.ReserveB
	userIn, userOut := vaults.userTokenA, vaults.userTokenB
	vaultIn, vaultOut := vaults.poolVaultA, vaults.poolVaultB
	if !params.AToB {
		reserveIn, reserveOut = reserveOut, reserveIn
		userIn, userOut = userOut, userIn
		vaultIn, vaultOut = vaultOut, vaultIn
	}

	if userIn.Balance < params.AmountIn {
		return "", ErrInsufficientFunds
	}

	amountOut, feeAmount, err := curve.SwapOutput(params.AmountIn, reserveIn, reserveOut, poolRecord.FeeNumerator, poolRecord.FeeDenominator)
	if err != nil {
		return "", err
	}

	if amountOut < params.MinAmountOut {
		return "", ErrSlippageExceeded
	}

	newReserveIn, err := checkedAdd(reserveIn, params.AmountIn)
	if err != nil {
		return "", err
	}
	newReserveOut := reserveOut - amountOut

	newReserveA, newReserveB := newReserveIn, newReserveOut
	if !params.AToB {
		newReserveA, newReserveB = newReserveOut, newReserveIn
	}

	if err := curve.VerifyInvariant(poolRecord.ReserveA, poolRecord.ReserveB, newReserveA, newReserveB); err != nil {
		return "", err
	}

	slot := s.nextSlot()
	signature := base58.Encode(params.Signature)

	volumeA, volumeB, feeA, feeB := params.AmountIn, amountOut, feeAmount, uint64(0)
	if !params.AToB {
		volumeA, volumeB, feeA, feeB = amountOut, params.AmountIn, 0, feeAmount
	}

	poolRecord.ReserveA = newReserveA
	poolRecord.ReserveB = newReserveB
	poolRecord.RecordSwap(volumeA, volumeB, feeA, feeB, slot)

	userIn.Balance -= params.AmountIn
	vaultIn.Balance += params.AmountIn
	vaultOut.Balance -= amountOut
	userOut.Balance += amountOut

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		for _, record := range []*vault.Record{userIn, vaultIn, vaultOut, userOut} {
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
			Type:    event.TypeSwapExecuted,

			Pool:  params.Pool,
			Actor: params.User.PublicKey().ToBase58(),

			TransactionSignature: signature,

			AmountA:   pointer.Uint64(volumeA),
			AmountB:   pointer.Uint64(volumeB),
			FeeAmount: pointer.Uint64(feeAmount),

			ReserveA: poolRecord.ReserveA,
			ReserveB: poolRecord.ReserveB,

			Slot: slot,
		})
	})
	if err != nil {
		log.WithError(err).Warn("failure executing swap")
		return "", err
	}

	recordSwapExecutedEvent(ctx, params.Pool, params.AmountIn, amountOut, feeAmount)

	return signature, nil
}
