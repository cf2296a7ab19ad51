package event

import (
	"time"

	"github.com/pkg/errors"
)

type Type uint8

const (
	TypeUnknown Type = iota
	TypePoolCreated
	TypeLiquidityAdded
	TypeLiquidityRemoved
	TypeSwapExecuted
	TypePoolPauseUpdated
)

var (
	ErrEventNotFound = errors.New("no records could be found")
	ErrEventExists   = errors.New("event already exists")
	ErrInvalidEvent  = errors.New("invalid event")
)

// Record is an append-only audit log entry for a pool operation. Amount
// fields only apply to certain event types, so they're optional.
type Record struct {
	Id uint64

	EventId string
	Type    Type

	Pool  string
	Actor string

	TransactionSignature string

	AmountA         *uint64
	AmountB         *uint64
	LiquidityAmount *uint64
	FeeAmount       *uint64

	ReserveA uint64
	ReserveB uint64

	Slot uint64

	CreatedAt time.Time
}

func (t Type) String() string {
	switch t {
	case TypePoolCreated:
		return "pool_created"
	case TypeLiquidityAdded:
		return "liquidity_added"
	case TypeLiquidityRemoved:
		return "liquidity_removed"
	case TypeSwapExecuted:
		return "swap_executed"
	case TypePoolPauseUpdated:
		return "pool_pause_updated"
	}
	return "unknown"
}

func (r *Record) Validate() error {
	if len(r.EventId) == 0 {
		return errors.Wrap(ErrInvalidEvent, "event id is required")
	}

	if r.Type == TypeUnknown {
		return errors.Wrap(ErrInvalidEvent, "event type is required")
	}

	if len(r.Pool) == 0 {
		return errors.Wrap(ErrInvalidEvent, "pool is required")
	}

	if len(r.Actor) == 0 {
		return errors.Wrap(ErrInvalidEvent, "actor is required")
	}

	if len(r.TransactionSignature) == 0 {
		return errors.Wrap(ErrInvalidEvent, "transaction signature is required")
	}

	return nil
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		EventId: r.EventId,
		Type:    r.Type,

		Pool:  r.Pool,
		Actor: r.Actor,

		TransactionSignature: r.TransactionSignature,

		AmountA:         copyOptional(r.AmountA),
		AmountB:         copyOptional(r.AmountB),
		LiquidityAmount: copyOptional(r.LiquidityAmount),
		FeeAmount:       copyOptional(r.FeeAmount),

		ReserveA: r.ReserveA,
		ReserveB: r.ReserveB,

		Slot: r.Slot,

		CreatedAt: r.CreatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.EventId = r.EventId
	dst.Type = r.Type

	dst.Pool = r.Pool
	dst.Actor = r.Actor

	dst.TransactionSignature = r.TransactionSignature

	dst.AmountA = copyOptional(r.AmountA)
	dst.AmountB = copyOptional(r.AmountB)
	dst.LiquidityAmount = copyOptional(r.LiquidityAmount)
	dst.FeeAmount = copyOptional(r.FeeAmount)

	dst.ReserveA = r.ReserveA
	dst.ReserveB = r.ReserveB

	dst.Slot = r.Slot

	dst.CreatedAt = r.CreatedAt
}

func copyOptional(value *uint64) *uint64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
