package vault

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrVaultNotFound   = errors.New("no records could be found")
	ErrVaultExists     = errors.New("vault already exists")
	ErrStaleVaultState = errors.New("vault state is stale")
	ErrInvalidVault    = errors.New("invalid vault")
)

// Record models a token account holding one side of a pool's reserves, or a
// payer's native balance when the mint is the native mint.
type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Mint  string
	Owner string

	Balance uint64

	Slot uint64

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) Validate() error {
	if len(r.Address) == 0 {
		return errors.Wrap(ErrInvalidVault, "address is required")
	}

	if len(r.Mint) == 0 {
		return errors.Wrap(ErrInvalidVault, "mint is required")
	}

	if len(r.Owner) == 0 {
		return errors.Wrap(ErrInvalidVault, "owner is required")
	}

	return nil
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Mint:  r.Mint,
		Owner: r.Owner,

		Balance: r.Balance,

		Slot: r.Slot,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Mint = r.Mint
	dst.Owner = r.Owner

	dst.Balance = r.Balance

	dst.Slot = r.Slot

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}
