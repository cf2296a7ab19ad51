package amm

import (
	"github.com/pkg/errors"
)

var (
	// ErrAlreadyInitialized is returned when a pool already exists for the
	// mint pair. The existing pool is never modified.
	ErrAlreadyInitialized = errors.New("pool is already initialized")

	// ErrInsufficientFunds is returned when the payer can't cover the
	// rent-exempt minimum for the accounts being created, or a user can't
	// cover a transfer. The operation is retryable once funded.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrUnauthorized is returned when a required signature is missing or
	// invalid, or the signer doesn't hold the required authority.
	ErrUnauthorized = errors.New("unauthorized")

	ErrPoolCreationDisabled = errors.New("pool creation is disabled")
	ErrRateLimited          = errors.New("rate limited")

	ErrIdenticalMints     = errors.New("token mints must differ")
	ErrInvalidFee         = errors.New("invalid fee parameters")
	ErrPoolPaused         = errors.New("pool is paused")
	ErrPoolNotInitialized = errors.New("pool is not initialized")
	ErrSlippageExceeded   = errors.New("slippage tolerance exceeded")
	ErrInvalidVault       = errors.New("vault doesn't match pool state")
	ErrInvalidTokenMint   = errors.New("token account mint doesn't match pool")
)
