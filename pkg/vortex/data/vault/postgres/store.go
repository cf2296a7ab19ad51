package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed vault.Store
func New(db *sql.DB) vault.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements vault.Store.Put
func (s *store) Put(ctx context.Context, record *vault.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbPut(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// Save implements vault.Store.Save
func (s *store) Save(ctx context.Context, record *vault.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbSave(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// Get implements vault.Store.Get
func (s *store) Get(ctx context.Context, address string) (*vault.Record, error) {
	model, err := dbGet(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetBatch implements vault.Store.GetBatch
func (s *store) GetBatch(ctx context.Context, addresses ...string) (map[string]*vault.Record, error) {
	models, err := dbGetBatch(ctx, s.db, addresses...)
	if err != nil {
		return nil, err
	}

	vaultsByAddress := make(map[string]*vault.Record, len(models))
	for _, model := range models {
		vaultsByAddress[model.Address] = fromModel(model)
	}
	return vaultsByAddress, nil
}

// GetAllByOwner implements vault.Store.GetAllByOwner
func (s *store) GetAllByOwner(ctx context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*vault.Record, error) {
	models, err := dbGetAllByOwner(ctx, s.db, owner, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	vaults := make([]*vault.Record, len(models))
	for i, model := range models {
		vaults[i] = fromModel(model)
	}
	return vaults, nil
}

// Count implements vault.Store.Count
func (s *store) Count(ctx context.Context) (uint64, error) {
	return dbCount(ctx, s.db)
}
