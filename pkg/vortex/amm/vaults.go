package amm

import (
	"context"

	"github.com/ritikbhatt20/vortex/pkg/vortex/common"
	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type instructionVaults struct {
	poolVaultA *vault.Record
	poolVaultB *vault.Record

	userTokenA *vault.Record
	userTokenB *vault.Record
}

// getUserAndPoolVaults loads both pool vaults and the user's token accounts
// for an instruction, validating mints and ownership along the way.
func (s *Server) getUserAndPoolVaults(ctx context.Context, poolRecord *pool.Record, user *common.Account, userTokenA, userTokenB string) (*instructionVaults, error) {
	records, err := s.data.GetVaultBatch(
		ctx,
		poolRecord.TokenAVault,
		poolRecord.TokenBVault,
		userTokenA,
		userTokenB,
	)
	if err != nil {
		return nil, err
	}

	res := &instructionVaults{
		poolVaultA: records[poolRecord.TokenAVault],
		poolVaultB: records[poolRecord.TokenBVault],
		userTokenA: records[userTokenA],
		userTokenB: records[userTokenB],
	}

	if res.poolVaultA.Owner != poolRecord.Address || res.poolVaultB.Owner != poolRecord.Address {
		return nil, ErrInvalidVault
	}

	if res.userTokenA.Mint != poolRecord.TokenAMint || res.userTokenB.Mint != poolRecord.TokenBMint {
		return nil, ErrInvalidTokenMint
	}

	owner := user.PublicKey().ToBase58()
	if res.userTokenA.Owner != owner || res.userTokenB.Owner != owner {
		return nil, ErrUnauthorized
	}

	return res, nil
}

// getUserVault loads a single user-owned token account and validates it
// against the expected mint.
func (s *Server) getUserVault(ctx context.Context, user *common.Account, address, mint string) (*vault.Record, error) {
	record, err := s.data.GetVault(ctx, address)
	if err != nil {
		return nil, err
	}

	if record.Mint != mint {
		return nil, ErrInvalidTokenMint
	}

	if record.Owner != user.PublicKey().ToBase58() {
		return nil, ErrUnauthorized
	}

	return record, nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	if a+b < a {
		return 0, curve.ErrMathOverflow
	}
	return a + b, nil
}
