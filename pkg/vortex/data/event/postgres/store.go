package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed event.Store
func New(db *sql.DB) event.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements event.Store.Put
func (s *store) Put(ctx context.Context, record *event.Record) error {
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

// Get implements event.Store.Get
func (s *store) Get(ctx context.Context, eventId string) (*event.Record, error) {
	model, err := dbGet(ctx, s.db, eventId)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetBySignature implements event.Store.GetBySignature
func (s *store) GetBySignature(ctx context.Context, signature string) ([]*event.Record, error) {
	models, err := dbGetBySignature(ctx, s.db, signature)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Record, len(models))
	for i, model := range models {
		events[i] = fromModel(model)
	}
	return events, nil
}

// GetAllByPool implements event.Store.GetAllByPool
func (s *store) GetAllByPool(ctx context.Context, pool string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error) {
	models, err := dbGetAllByPool(ctx, s.db, pool, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Record, len(models))
	for i, model := range models {
		events[i] = fromModel(model)
	}
	return events, nil
}

// GetCountByType implements event.Store.GetCountByType
func (s *store) GetCountByType(ctx context.Context, eventType event.Type) (uint64, error) {
	return dbGetCountByType(ctx, s.db, eventType)
}
