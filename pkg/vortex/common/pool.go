package common

import (
	"github.com/pkg/errors"
)

// PDA seeds for pool-derived accounts
var (
	poolSeed            = []byte("pool")
	vaultASeed          = []byte("vault_a")
	vaultBSeed          = []byte("vault_b")
	lpMintSeed          = []byte("lp_mint")
	lpMintAuthoritySeed = []byte("lp_mint_authority")
)

// ProgramAccount is the vortex program's identity. Accounts created by pool
// initialization are owned by this account.
var ProgramAccount = mustAccountFromPublicKeyString("71kECueXZuecQ7ngyxbThU22XyTM1jfk4SpGk7PSVbGY")

// NativeMintAccount is the mint used for native balances (wrapped SOL).
var NativeMintAccount = mustAccountFromPublicKeyString("So11111111111111111111111111111111111111112")

// PoolAccounts is the set of program-derived accounts that make up a pool for
// a pair of token mints.
type PoolAccounts struct {
	TokenAMint *Account
	TokenBMint *Account

	State     *Account
	StateBump uint8

	VaultA     *Account
	VaultABump uint8

	VaultB     *Account
	VaultBBump uint8

	LpMint     *Account
	LpMintBump uint8

	LpMintAuthority     *Account
	LpMintAuthorityBump uint8
}

// GetPoolAccounts derives the full set of pool accounts for a pair of token
// mints. The derivation is deterministic, so any two parties agree on the
// pool's address without coordination.
func GetPoolAccounts(tokenAMint, tokenBMint *Account) (*PoolAccounts, error) {
	if err := tokenAMint.Validate(); err != nil {
		return nil, errors.Wrap(err, "error validating token a mint")
	}
	if err := tokenBMint.Validate(); err != nil {
		return nil, errors.Wrap(err, "error validating token b mint")
	}

	stateAddress, stateBump, err := FindProgramAddressAndBump(
		ProgramAccount.PublicKey().ToBytes(),
		poolSeed,
		tokenAMint.PublicKey().ToBytes(),
		tokenBMint.PublicKey().ToBytes(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving pool state address")
	}

	state, err := NewAccountFromPublicKeyBytes(stateAddress)
	if err != nil {
		return nil, err
	}

	vaultAAddress, vaultABump, err := FindProgramAddressAndBump(
		ProgramAccount.PublicKey().ToBytes(),
		vaultASeed,
		stateAddress,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving token a vault address")
	}

	vaultA, err := NewAccountFromPublicKeyBytes(vaultAAddress)
	if err != nil {
		return nil, err
	}

	vaultBAddress, vaultBBump, err := FindProgramAddressAndBump(
		ProgramAccount.PublicKey().ToBytes(),
		vaultBSeed,
		stateAddress,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving token b vault address")
	}

	vaultB, err := NewAccountFromPublicKeyBytes(vaultBAddress)
	if err != nil {
		return nil, err
	}

	lpMintAddress, lpMintBump, err := FindProgramAddressAndBump(
		ProgramAccount.PublicKey().ToBytes(),
		lpMintSeed,
		stateAddress,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving lp mint address")
	}

	lpMint, err := NewAccountFromPublicKeyBytes(lpMintAddress)
	if err != nil {
		return nil, err
	}

	lpMintAuthorityAddress, lpMintAuthorityBump, err := FindProgramAddressAndBump(
		ProgramAccount.PublicKey().ToBytes(),
		lpMintAuthoritySeed,
		stateAddress,
	)
	if err != nil {
		return nil, errors.Wrap(err, "error deriving lp mint authority address")
	}

	lpMintAuthority, err := NewAccountFromPublicKeyBytes(lpMintAuthorityAddress)
	if err != nil {
		return nil, err
	}

	return &PoolAccounts{
		TokenAMint: tokenAMint,
		TokenBMint: tokenBMint,

		State:     state,
		StateBump: stateBump,

		VaultA:     vaultA,
		VaultABump: vaultABump,

		VaultB:     vaultB,
		VaultBBump: vaultBBump,

		LpMint:     lpMint,
		LpMintBump: lpMintBump,

		LpMintAuthority:     lpMintAuthority,
		LpMintAuthorityBump: lpMintAuthorityBump,
	}, nil
}

func mustAccountFromPublicKeyString(value string) *Account {
	account, err := NewAccountFromPublicKeyString(value)
	if err != nil {
		panic(err)
	}
	return account
}
