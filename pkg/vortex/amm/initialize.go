package amm

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type InitializePoolParams struct {
	// Payer funds the rent for every account created by the instruction
	Payer *common.Account

	// Authority is the pool's administrative authority going forward
	Authority *common.Account

	TokenAMint *common.Account
	TokenBMint *common.Account

	FeeNumerator   uint64
	FeeDenominator uint64

	// Signatures over the canonical instruction message
	PayerSignature     []byte
	AuthoritySignature []byte
}

// InitializePool brings the pool for a mint pair from absent to initialized
// exactly once. The pool state account, both token vaults and the LP mint
// are created in a single transaction funded by the payer. Concurrent calls
// for the same mint pair race safely, with exactly one winner.
func (s *Server) InitializePool(ctx context.Context, params *InitializePoolParams) (string, error) {
	log := s.log.WithField("method", "InitializePool")

	if s.conf.disablePoolCreation.Get(ctx) {
		return "", ErrPoolCreationDisabled
	}

	if params.TokenAMint.PublicKey().ToBase58() == params.TokenBMint.PublicKey().ToBase58() {
		return "", ErrIdenticalMints
	}

	if !curve.ValidateFee(params.FeeNumerator, params.FeeDenominator) {
		return "", ErrInvalidFee
	}

	accounts, err := common.GetPoolAccounts(params.TokenAMint, params.TokenBMint)
	if err != nil {
		log.WithError(err).Warn("failure deriving pool accounts")
		return "", err
	}

	poolAddress := accounts.State.PublicKey().ToBase58()
	log = log.WithFields(logrus.Fields{
		"pool":  poolAddress,
		"payer": params.Payer.PublicKey().ToBase58(),
	})

	message := initializePoolMessage(params.Payer, params.Authority, accounts, params.FeeNumerator, params.FeeDenominator)
	if !params.Payer.VerifySignature(message, params.PayerSignature) {
		return "", ErrUnauthorized
	}
	if !params.Authority.VerifySignature(message, params.AuthoritySignature) {
		return "", ErrUnauthorized
	}

	allow, err := s.createPoolLimiter.Allow(params.Payer.PublicKey().ToBase58())
	if err != nil {
		log.WithError(err).Warn("failure checking rate limit")
		return "", err
	} else if !allow {
		return "", ErrRateLimited
	}

	lock := s.poolLocks.Get([]byte(poolAddress))
	lock.Lock()
	defer lock.Unlock()

	_, err = s.data.GetPool(ctx, poolAddress)
	if err == nil {
		return "", ErrAlreadyInitialized
	} else if err != pool.ErrPoolNotFound {
		log.WithError(err).Warn("failure checking for existing pool")
		return "", err
	}

	requiredLamports := poolCreationCost()

	payerVault, err := s.data.GetVault(ctx, params.Payer.PublicKey().ToBase58())
	if err == vault.ErrVaultNotFound {
		return "", ErrInsufficientFunds
	} else if err != nil {
		log.WithError(err).Warn("failure getting payer balance")
		return "", err
	}

	if payerVault.Balance < requiredLamports {
		return "", ErrInsufficientFunds
	}

	slot := s.nextSlot()
	signature := base58.Encode(params.PayerSignature)

	poolRecord := &pool.Record{
		Version: curve.ProtocolVersion,

		Address:             poolAddress,
		Bump:                accounts.StateBump,
		LpMintAuthorityBump: accounts.LpMintAuthorityBump,

		TokenAMint: params.TokenAMint.PublicKey().ToBase58(),
		TokenBMint: params.TokenBMint.PublicKey().ToBase58(),

		TokenAVault: accounts.VaultA.PublicKey().ToBase58(),
		TokenBVault: accounts.VaultB.PublicKey().ToBase58(),

		LpMint: accounts.LpMint.PublicKey().ToBase58(),

		FeeNumerator:   params.FeeNumerator,
		FeeDenominator: params.FeeDenominator,

		Authority: params.Authority.PublicKey().ToBase58(),

		Lamports: rentExemptMinimum(poolAccountSize),

		Slot: slot,
	}

	err = s.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		// The insert is the compare-and-create primitive: a concurrent
		// initialization for the same mint pair fails here before any
		// other write happens.
		if err := s.data.CreatePool(ctx, poolRecord); err != nil {
			return err
		}

		for _, vaultRecord := range []*vault.Record{
			{
				Address: poolRecord.TokenAVault,
				Bump:    accounts.VaultABump,
				Mint:    poolRecord.TokenAMint,
				Owner:   poolAddress,
				Slot:    slot,
			},
			{
				Address: poolRecord.TokenBVault,
				Bump:    accounts.VaultBBump,
				Mint:    poolRecord.TokenBMint,
				Owner:   poolAddress,
				Slot:    slot,
			},
		} {
			if err := s.data.CreateVault(ctx, vaultRecord); err != nil {
				return err
			}
		}

		payerVault.Balance -= requiredLamports
		payerVault.Slot = slot
		if err := s.data.SaveVault(ctx, payerVault); err != nil {
			return err
		}

		return s.data.CreateEvent(ctx, &event.Record{
			EventId: uuid.New().String(),
			Type:    event.TypePoolCreated,

			Pool:  poolAddress,
			Actor: params.Payer.PublicKey().ToBase58(),

			TransactionSignature: signature,

			Slot: slot,
		})
	})
	if err == pool.ErrPoolExists {
		return "", ErrAlreadyInitialized
	} else if err != nil {
		log.WithError(err).Warn("failure creating pool")
		return "", err
	}

	recordPoolCreatedEvent(ctx, poolAddress, poolRecord.TokenAMint, poolRecord.TokenBMint, poolRecord.FeeBps())

	log.Info("pool initialized")

	return signature, nil
}
