package amm

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

type SetPoolPausedParams struct {
	Authority *common.Account

	Pool string

	Paused bool

	Signature []byte
}

// SetPoolPaused flips the pool's emergency pause flag. Only the pool's
// authority can do this. Pausing gates new deposits and swaps, but never
// liquidity removal.
func (s *Server) SetPoolPaused(ctx context.Context, params *SetPoolPausedParams) (string, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "SetPoolPaused",
		"pool":   params.Pool,
	})

	poolAccount, err := common.NewAccountFromPublicKeyString(params.Pool)
	if err != nil {
		return "", errors.Wrap(err, "invalid pool address")
	}

	message := setPoolPausedMessage(params.Authority, poolAccount, params.Paused)
	if !params.Authority.VerifySignature(message, params.Signature) {
		return "", ErrUnauthorized
	}

	lock := s.poolLocks.Get([]byte(params.Pool))
	lock.Lock()
	defer lock.Unlock()

	poolRecord, err := s.data.GetPool(ctx, params.Pool)
	if err != nil {
		return "", err
	}

	if poolRecord.Authority != params.Authority.PublicKey().ToBase58() {
		return "", ErrUnauthorized
	}

	if poolRecord.Paused == params.Paused {
		// Nothing to do
		return base58.Encode(params.Signature), nil
	}

	slot := s.nextSlot()
	signature := base58.Encode(params.Signature)

	poolRecord.Paused = params.Paused
	poolRecord.Slot = slot

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		if err := s.data.UpdatePool(ctx, poolRecord); err != nil {
			return err
		}

		return s.data.CreateEvent(ctx, &event.Record{
			EventId: uuid.New().String(),
			Type:    event.TypePoolPauseUpdated,

			Pool:  params.Pool,
			Actor: params.Authority.PublicKey().ToBase58(),

			TransactionSignature: signature,

			ReserveA: poolRecord.ReserveA,
			ReserveB: poolRecord.ReserveB,

			Slot: slot,
		})
	})
	if err != nil {
		log.WithError(err).Warn("failure updating pool pause state")
		return "", err
	}

	recordPoolPauseUpdatedEvent(ctx, params.Pool, params.Paused)

	return signature, nil
}
