package postgres

import (
	"database/sql"
	"os"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/sirupsen/logrus"

	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool/tests"

	postgrestest "github.com/ritikbhatt20/vortex/pkg/database/postgres/test"

	_ "github.com/jackc/pgx/v4/stdlib"
)

const (
	// Used for testing ONLY, the table and migrations are external to this repository
	tableCreate = `
		CREATE TABLE vortex__core_pool(
			id SERIAL NOT NULL PRIMARY KEY,

			version INTEGER NOT NULL,

			address TEXT NOT NULL,
			bump INTEGER NOT NULL,
			lp_mint_authority_bump INTEGER NOT NULL,

			token_a_mint TEXT NOT NULL,
			token_b_mint TEXT NOT NULL,

			token_a_vault TEXT NOT NULL,
			token_b_vault TEXT NOT NULL,

			lp_mint TEXT NOT NULL,
			lp_supply BIGINT NOT NULL,

			reserve_a BIGINT NOT NULL,
			reserve_b BIGINT NOT NULL,

			fee_numerator BIGINT NOT NULL,
			fee_denominator BIGINT NOT NULL,

			authority TEXT NOT NULL,

			paused BOOL NOT NULL,

			total_swaps BIGINT NOT NULL,
			cumulative_volume_a BIGINT NOT NULL,
			cumulative_volume_b BIGINT NOT NULL,
			cumulative_fees_a BIGINT NOT NULL,
			cumulative_fees_b BIGINT NOT NULL,

			lamports BIGINT NOT NULL,

			slot BIGINT NOT NULL,

			created_at TIMESTAMP WITH TIME ZONE,
			last_swap_at TIMESTAMP WITH TIME ZONE,
			last_updated_at TIMESTAMP WITH TIME ZONE,

			CONSTRAINT vortex__core_pool__uniq__address UNIQUE (address),
			CONSTRAINT vortex__core_pool__uniq__token_a_mint__and__token_b_mint UNIQUE (token_a_mint, token_b_mint),
			CONSTRAINT vortex__core_pool__uniq__lp_mint UNIQUE (lp_mint)
		);
	`

	// Used for testing ONLY, the table and migrations are external to this repository
	tableDestroy = `
		DROP TABLE vortex__core_pool;
	`
)

var (
	testStore pool.Store
	teardown  func()
)

func TestMain(m *testing.M) {
	log := logrus.StandardLogger()

	testPool, err := dockertest.NewPool("")
	if err != nil {
		log.WithError(err).Error("Error creating docker pool")
		os.Exit(1)
	}

	var cleanUpFunc func()
	db, cleanUpFunc, err := postgrestest.StartPostgresDB(testPool)
	if err != nil {
		log.WithError(err).Error("Error starting postgres image")
		os.Exit(1)
	}
	defer db.Close()

	if err := createTestTables(db); err != nil {
		logrus.StandardLogger().WithError(err).Error("Error creating test tables")
		cleanUpFunc()
		os.Exit(1)
	}

	testStore = New(db)
	teardown = func() {
		if pc := recover(); pc != nil {
			cleanUpFunc()
			panic(pc)
		}

		if err := resetTestTables(db); err != nil {
			logrus.StandardLogger().WithError(err).Error("Error resetting test tables")
			cleanUpFunc()
			os.Exit(1)
		}
	}

	code := m.Run()
	cleanUpFunc()
	os.Exit(code)
}

func TestPoolPostgresStore(t *testing.T) {
	tests.RunTests(t, testStore, teardown)
}

func createTestTables(db *sql.DB) error {
	_, err := db.Exec(tableCreate)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not create test tables")
		return err
	}
	return nil
}

func resetTestTables(db *sql.DB) error {
	_, err := db.Exec(tableDestroy)
	if err != nil {
		logrus.StandardLogger().WithError(err).Error("could not drop test tables")
		return err
	}

	return createTestTables(db)
}
