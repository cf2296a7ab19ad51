package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/ritikbhatt20/vortex/pkg/database/postgres"
	q "github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

const (
	tableName = "vortex__core_event"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	EventId   string `db:"event_id"`
	EventType uint   `db:"event_type"`

	Pool  string `db:"pool"`
	Actor string `db:"actor"`

	TransactionSignature string `db:"transaction_signature"`

	AmountA         sql.NullInt64 `db:"amount_a"`
	AmountB         sql.NullInt64 `db:"amount_b"`
	LiquidityAmount sql.NullInt64 `db:"liquidity_amount"`
	FeeAmount       sql.NullInt64 `db:"fee_amount"`

	ReserveA uint64 `db:"reserve_a"`
	ReserveB uint64 `db:"reserve_b"`

	Slot uint64 `db:"slot"`

	CreatedAt time.Time `db:"created_at"`
}

func toModel(obj *event.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		EventId:   obj.EventId,
		EventType: uint(obj.Type),

		Pool:  obj.Pool,
		Actor: obj.Actor,

		TransactionSignature: obj.TransactionSignature,

		AmountA:         toNullInt64(obj.AmountA),
		AmountB:         toNullInt64(obj.AmountB),
		LiquidityAmount: toNullInt64(obj.LiquidityAmount),
		FeeAmount:       toNullInt64(obj.FeeAmount),

		ReserveA: obj.ReserveA,
		ReserveB: obj.ReserveB,

		Slot: obj.Slot,

		CreatedAt: obj.CreatedAt,
	}, nil
}

func fromModel(obj *model) *event.Record {
	return &event.Record{
		Id: uint64(obj.Id.Int64),

		EventId: obj.EventId,
		Type:    event.Type(obj.EventType),

		Pool:  obj.Pool,
		Actor: obj.Actor,

		TransactionSignature: obj.TransactionSignature,

		AmountA:         fromNullInt64(obj.AmountA),
		AmountB:         fromNullInt64(obj.AmountB),
		LiquidityAmount: fromNullInt64(obj.LiquidityAmount),
		FeeAmount:       fromNullInt64(obj.FeeAmount),

		ReserveA: obj.ReserveA,
		ReserveB: obj.ReserveB,

		Slot: obj.Slot,

		CreatedAt: obj.CreatedAt,
	}
}

func toNullInt64(value *uint64) sql.NullInt64 {
	var res sql.NullInt64
	if value != nil {
		res.Valid = true
		res.Int64 = int64(*value)
	}
	return res
}

func fromNullInt64(value sql.NullInt64) *uint64 {
	if !value.Valid {
		return nil
	}
	res := uint64(value.Int64)
	return &res
}

const allFields = `id, event_id, event_type, pool, actor, transaction_signature, amount_a, amount_b, liquidity_amount, fee_amount, reserve_a, reserve_b, slot, created_at`

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(event_id, event_type, pool, actor, transaction_signature, amount_a, amount_b, liquidity_amount, fee_amount, reserve_a, reserve_b, slot, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING ` + allFields

		m.CreatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.EventId,
			m.EventType,

			m.Pool,
			m.Actor,

			m.TransactionSignature,

			m.AmountA,
			m.AmountB,
			m.LiquidityAmount,
			m.FeeAmount,

			m.ReserveA,
			m.ReserveB,

			m.Slot,

			m.CreatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, event.ErrEventExists)
	})
}

func dbGet(ctx context.Context, db *sqlx.DB, eventId string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE event_id = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, eventId)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}
	return res, nil
}

func dbGetBySignature(ctx context.Context, db *sqlx.DB, signature string) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE transaction_signature = $1
		ORDER BY id ASC`

	err := db.SelectContext(ctx, &res, query, signature)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}

	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}

func dbGetAllByPool(ctx context.Context, db *sqlx.DB, pool string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE (pool = $1)
	`

	opts := []interface{}{pool}
	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, event.ErrEventNotFound)
	}

	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}

func dbGetCountByType(ctx context.Context, db *sqlx.DB, eventType event.Type) (uint64, error) {
	var res uint64

	query := `SELECT COUNT(*) FROM ` + tableName + ` WHERE event_type = $1`
	err := db.GetContext(ctx, &res, query, eventType)
	if err != nil {
		return 0, err
	}

	return res, nil
}
