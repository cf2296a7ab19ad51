package pool

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
)

var (
	ErrPoolNotFound   = errors.New("no records could be found")
	ErrPoolExists     = errors.New("pool already exists")
	ErrStalePoolState = errors.New("pool state is stale")
	ErrInvalidPool    = errors.New("invalid pool")
)

// Based off of the on-chain vortex pool account layout.
//
// The LP mint supply is folded into this record since the pool is the only
// authority that can ever mint or burn it.
type Record struct {
	Id uint64

	Version uint8

	Address             string
	Bump                uint8
	LpMintAuthorityBump uint8

	TokenAMint string
	TokenBMint string

	TokenAVault string
	TokenBVault string

	LpMint   string
	LpSupply uint64

	ReserveA uint64
	ReserveB uint64

	FeeNumerator   uint64
	FeeDenominator uint64

	Authority string

	Paused bool

	TotalSwaps        uint64
	CumulativeVolumeA uint64
	CumulativeVolumeB uint64
	CumulativeFeesA   uint64
	CumulativeFeesB   uint64

	// Lamports funding the pool account's rent
	Lamports uint64

	Slot uint64

	CreatedAt     time.Time
	LastSwapAt    *time.Time
	LastUpdatedAt time.Time
}

func (r *Record) IsInitialized() bool {
	return r.ReserveA > 0 && r.ReserveB > 0
}

// FeeBps gets the pool's fee in basis points
func (r *Record) FeeBps() uint64 {
	if r.FeeDenominator == 0 {
		return 0
	}
	return (r.FeeNumerator * curve.BpsDenominator) / r.FeeDenominator
}

// RecordSwap folds a swap's stats into the record. It does not persist
// anything.
func (r *Record) RecordSwap(volumeA, volumeB, feeA, feeB, slot uint64) {
	now := time.Now()

	r.TotalSwaps++
	r.CumulativeVolumeA += volumeA
	r.CumulativeVolumeB += volumeB
	r.CumulativeFeesA += feeA
	r.CumulativeFeesB += feeB
	r.LastSwapAt = &now
	r.Slot = slot
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.Wrap(ErrInvalidPool, "address is required")
	}

	if len(r.TokenAMint) == 0 {
		return errors.Wrap(ErrInvalidPool, "token a mint is required")
	}

	if len(r.TokenBMint) == 0 {
		return errors.Wrap(ErrInvalidPool, "token b mint is required")
	}

	if r.TokenAMint == r.TokenBMint {
		return errors.Wrap(ErrInvalidPool, "token mints must differ")
	}

	if len(r.TokenAVault) == 0 {
		return errors.Wrap(ErrInvalidPool, "token a vault is required")
	}

	if len(r.TokenBVault) == 0 {
		return errors.Wrap(ErrInvalidPool, "token b vault is required")
	}

	if len(r.LpMint) == 0 {
		return errors.Wrap(ErrInvalidPool, "lp mint is required")
	}

	if len(r.Authority) == 0 {
		return errors.Wrap(ErrInvalidPool, "authority is required")
	}

	if !curve.ValidateFee(r.FeeNumerator, r.FeeDenominator) {
		return errors.Wrap(ErrInvalidPool, "fee is outside the allowed range")
	}

	return nil
}

func (r *Record) Clone() *Record {
	var lastSwapAt *time.Time
	if r.LastSwapAt != nil {
		value := *r.LastSwapAt
		lastSwapAt = &value
	}

	return &Record{
		Id: r.Id,

		Version: r.Version,

		Address:             r.Address,
		Bump:                r.Bump,
		LpMintAuthorityBump: r.LpMintAuthorityBump,

		TokenAMint: r.TokenAMint,
		TokenBMint: r.TokenBMint,

		TokenAVault: r.TokenAVault,
		TokenBVault: r.TokenBVault,

		LpMint:   r.LpMint,
		LpSupply: r.LpSupply,

		ReserveA: r.ReserveA,
		ReserveB: r.ReserveB,

		FeeNumerator:   r.FeeNumerator,
		FeeDenominator: r.FeeDenominator,

		Authority: r.Authority,

		Paused: r.Paused,

		TotalSwaps:        r.TotalSwaps,
		CumulativeVolumeA: r.CumulativeVolumeA,
		CumulativeVolumeB: r.CumulativeVolumeB,
		CumulativeFeesA:   r.CumulativeFeesA,
		CumulativeFeesB:   r.CumulativeFeesB,

		Lamports: r.Lamports,

		Slot: r.Slot,

		CreatedAt:     r.CreatedAt,
		LastSwapAt:    lastSwapAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Version = r.Version

	dst.Address = r.Address
	dst.Bump = r.Bump
	dst.LpMintAuthorityBump = r.LpMintAuthorityBump

	dst.TokenAMint = r.TokenAMint
	dst.TokenBMint = r.TokenBMint

	dst.TokenAVault = r.TokenAVault
	dst.TokenBVault = r.TokenBVault

	dst.LpMint = r.LpMint
	dst.LpSupply = r.LpSupply

	dst.ReserveA = r.ReserveA
	dst.ReserveB = r.ReserveB

	dst.FeeNumerator = r.FeeNumerator
	dst.FeeDenominator = r.FeeDenominator

	dst.Authority = r.Authority

	dst.Paused = r.Paused

	dst.TotalSwaps = r.TotalSwaps
	dst.CumulativeVolumeA = r.CumulativeVolumeA
	dst.CumulativeVolumeB = r.CumulativeVolumeB
	dst.CumulativeFeesA = r.CumulativeFeesA
	dst.CumulativeFeesB = r.CumulativeFeesB

	dst.Lamports = r.Lamports

	dst.Slot = r.Slot

	dst.CreatedAt = r.CreatedAt
	dst.LastSwapAt = r.LastSwapAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
