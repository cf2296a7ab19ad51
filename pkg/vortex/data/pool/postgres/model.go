package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/ritikbhatt20/vortex/pkg/database/postgres"
	q "github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

const (
	tableName = "vortex__core_pool"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Version uint `db:"version"`

	Address             string `db:"address"`
	Bump                uint   `db:"bump"`
	LpMintAuthorityBump uint   `db:"lp_mint_authority_bump"`

	TokenAMint string `db:"token_a_mint"`
	TokenBMint string `db:"token_b_mint"`

	TokenAVault string `db:"token_a_vault"`
	TokenBVault string `db:"token_b_vault"`

	LpMint   string `db:"lp_mint"`
	LpSupply uint64 `db:"lp_supply"`

	ReserveA uint64 `db:"reserve_a"`
	ReserveB uint64 `db:"reserve_b"`

	FeeNumerator   uint64 `db:"fee_numerator"`
	FeeDenominator uint64 `db:"fee_denominator"`

	Authority string `db:"authority"`

	Paused bool `db:"paused"`

	TotalSwaps        uint64 `db:"total_swaps"`
	CumulativeVolumeA uint64 `db:"cumulative_volume_a"`
	CumulativeVolumeB uint64 `db:"cumulative_volume_b"`
	CumulativeFeesA   uint64 `db:"cumulative_fees_a"`
	CumulativeFeesB   uint64 `db:"cumulative_fees_b"`

	Lamports uint64 `db:"lamports"`

	Slot uint64 `db:"slot"`

	CreatedAt     time.Time    `db:"created_at"`
	LastSwapAt    sql.NullTime `db:"last_swap_at"`
	LastUpdatedAt time.Time    `db:"last_updated_at"`
}

func toModel(obj *pool.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	var lastSwapAt sql.NullTime
	if obj.LastSwapAt != nil {
		lastSwapAt.Valid = true
		lastSwapAt.Time = *obj.LastSwapAt
	}

	return &model{
		Version: uint(obj.Version),

		Address:             obj.Address,
		Bump:                uint(obj.Bump),
		LpMintAuthorityBump: uint(obj.LpMintAuthorityBump),

		TokenAMint: obj.TokenAMint,
		TokenBMint: obj.TokenBMint,

		TokenAVault: obj.TokenAVault,
		TokenBVault: obj.TokenBVault,

		LpMint:   obj.LpMint,
		LpSupply: obj.LpSupply,

		ReserveA: obj.ReserveA,
		ReserveB: obj.ReserveB,

		FeeNumerator:   obj.FeeNumerator,
		FeeDenominator: obj.FeeDenominator,

		Authority: obj.Authority,

		Paused: obj.Paused,

		TotalSwaps:        obj.TotalSwaps,
		CumulativeVolumeA: obj.CumulativeVolumeA,
		CumulativeVolumeB: obj.CumulativeVolumeB,
		CumulativeFeesA:   obj.CumulativeFeesA,
		CumulativeFeesB:   obj.CumulativeFeesB,

		Lamports: obj.Lamports,

		Slot: obj.Slot,

		CreatedAt:     obj.CreatedAt,
		LastSwapAt:    lastSwapAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *pool.Record {
	var lastSwapAt *time.Time
	if obj.LastSwapAt.Valid {
		value := obj.LastSwapAt.Time
		lastSwapAt = &value
	}

	return &pool.Record{
		Id: uint64(obj.Id.Int64),

		Version: uint8(obj.Version),

		Address:             obj.Address,
		Bump:                uint8(obj.Bump),
		LpMintAuthorityBump: uint8(obj.LpMintAuthorityBump),

		TokenAMint: obj.TokenAMint,
		TokenBMint: obj.TokenBMint,

		TokenAVault: obj.TokenAVault,
		TokenBVault: obj.TokenBVault,

		LpMint:   obj.LpMint,
		LpSupply: obj.LpSupply,

		ReserveA: obj.ReserveA,
		ReserveB: obj.ReserveB,

		FeeNumerator:   obj.FeeNumerator,
		FeeDenominator: obj.FeeDenominator,

		Authority: obj.Authority,

		Paused: obj.Paused,

		TotalSwaps:        obj.TotalSwaps,
		CumulativeVolumeA: obj.CumulativeVolumeA,
		CumulativeVolumeB: obj.CumulativeVolumeB,
		CumulativeFeesA:   obj.CumulativeFeesA,
		CumulativeFeesB:   obj.CumulativeFeesB,

		Lamports: obj.Lamports,

		Slot: obj.Slot,

		CreatedAt:     obj.CreatedAt,
		LastSwapAt:    lastSwapAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

const allFields = `id, version, address, bump, lp_mint_authority_bump, token_a_mint, token_b_mint, token_a_vault, token_b_vault, lp_mint, lp_supply, reserve_a, reserve_b, fee_numerator, fee_denominator, authority, paused, total_swaps, cumulative_volume_a, cumulative_volume_b, cumulative_fees_a, cumulative_fees_b, lamports, slot, created_at, last_swap_at, last_updated_at`

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(version, address, bump, lp_mint_authority_bump, token_a_mint, token_b_mint, token_a_vault, token_b_vault, lp_mint, lp_supply, reserve_a, reserve_b, fee_numerator, fee_denominator, authority, paused, total_swaps, cumulative_volume_a, cumulative_volume_b, cumulative_fees_a, cumulative_fees_b, lamports, slot, created_at, last_swap_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
			RETURNING ` + allFields

		m.CreatedAt = time.Now()
		m.LastUpdatedAt = m.CreatedAt

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Version,

			m.Address,
			m.Bump,
			m.LpMintAuthorityBump,

			m.TokenAMint,
			m.TokenBMint,

			m.TokenAVault,
			m.TokenBVault,

			m.LpMint,
			m.LpSupply,

			m.ReserveA,
			m.ReserveB,

			m.FeeNumerator,
			m.FeeDenominator,

			m.Authority,

			m.Paused,

			m.TotalSwaps,
			m.CumulativeVolumeA,
			m.CumulativeVolumeB,
			m.CumulativeFeesA,
			m.CumulativeFeesB,

			m.Lamports,

			m.Slot,

			m.CreatedAt.UTC(),
			m.LastSwapAt,
			m.LastUpdatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, pool.ErrPoolExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + tableName + `
			SET lp_supply = $2, reserve_a = $3, reserve_b = $4, paused = $5, total_swaps = $6, cumulative_volume_a = $7, cumulative_volume_b = $8, cumulative_fees_a = $9, cumulative_fees_b = $10, lamports = $11, slot = $12, last_swap_at = $13, last_updated_at = $14
			WHERE address = $1 AND slot < $12
			RETURNING ` + allFields

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Address,

			m.LpSupply,

			m.ReserveA,
			m.ReserveB,

			m.Paused,

			m.TotalSwaps,
			m.CumulativeVolumeA,
			m.CumulativeVolumeB,
			m.CumulativeFeesA,
			m.CumulativeFeesB,

			m.Lamports,

			m.Slot,

			m.LastSwapAt,
			m.LastUpdatedAt.UTC(),
		).StructScan(m)

		if pgutil.IsNoRows(err) {
			var exists bool
			existsErr := tx.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM `+tableName+` WHERE address = $1)`, m.Address)
			if existsErr != nil {
				return existsErr
			}

			if !exists {
				return pool.ErrPoolNotFound
			}
			return pool.ErrStalePoolState
		}
		return err
	})
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pool.ErrPoolNotFound)
	}
	return res, nil
}

func dbGetByMints(ctx context.Context, db *sqlx.DB, tokenAMint, tokenBMint string) (*model, error) {
	res := &model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE token_a_mint = $1 AND token_b_mint = $2
		LIMIT 1`

	err := db.GetContext(ctx, res, query, tokenAMint, tokenBMint)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pool.ErrPoolNotFound)
	}
	return res, nil
}

func dbGetAllByAuthority(ctx context.Context, db *sqlx.DB, authority string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT ` + allFields + `
		FROM ` + tableName + `
		WHERE (authority = $1)
	`

	opts := []interface{}{authority}
	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, pool.ErrPoolNotFound)
	}

	if len(res) == 0 {
		return nil, pool.ErrPoolNotFound
	}
	return res, nil
}

func dbCount(ctx context.Context, db *sqlx.DB) (uint64, error) {
	var res uint64

	query := `SELECT COUNT(*) FROM ` + tableName
	err := db.GetContext(ctx, &res, query)
	if err != nil {
		return 0, err
	}

	return res, nil
}
