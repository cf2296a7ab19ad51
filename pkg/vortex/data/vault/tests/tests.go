package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

func RunTests(t *testing.T, s vault.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s vault.Store){
		testRoundTrip,
		testSave,
		testBatchedMethods,
		testGetAllByOwner,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s vault.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		expected := newTestRecord(0)
		cloned := expected.Clone()

		_, err := s.Get(ctx, expected.Address)
		assert.Equal(t, vault.ErrVaultNotFound, err)

		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)

		actual, err := s.Get(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		// Double creation fails

		assert.Equal(t, vault.ErrVaultExists, s.Put(ctx, cloned.Clone()))

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		// An invalid record is rejected outright

		invalid := newTestRecord(1)
		invalid.Mint = ""
		assert.True(t, errors.Is(s.Put(ctx, invalid), vault.ErrInvalidVault))
	})
}

func testSave(t *testing.T, s vault.Store) {
	t.Run("testSave", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord(0)

		// Saving a vault that doesn't exist fails

		record.Slot = 1
		assert.Equal(t, vault.ErrVaultNotFound, s.Save(ctx, record))

		record.Slot = 0
		require.NoError(t, s.Put(ctx, record))

		// Advance the balance

		record.Balance = 2_000_000
		record.Slot = 100
		require.NoError(t, s.Save(ctx, record))

		actual, err := s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2_000_000, actual.Balance)
		assert.EqualValues(t, 100, actual.Slot)

		// Stale saves are rejected

		stale := actual.Clone()
		stale.Balance = 1
		assert.Equal(t, vault.ErrStaleVaultState, s.Save(ctx, stale))

		stale.Slot = 99
		assert.Equal(t, vault.ErrStaleVaultState, s.Save(ctx, stale))

		actual, err = s.Get(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 2_000_000, actual.Balance)
	})
}

func testBatchedMethods(t *testing.T, s vault.Store) {
	t.Run("testBatchedMethods", func(t *testing.T) {
		ctx := context.Background()

		records := make([]*vault.Record, 0)
		for i := 0; i < 3; i++ {
			record := newTestRecord(i)
			require.NoError(t, s.Put(ctx, record))
			records = append(records, record)
		}

		addresses := make([]string, len(records))
		for i, record := range records {
			addresses[i] = record.Address
		}

		actual, err := s.GetBatch(ctx, addresses...)
		require.NoError(t, err)
		require.Len(t, actual, len(records))
		for _, record := range records {
			assertEquivalentRecords(t, record, actual[record.Address])
		}

		// Any missing vault fails the entire batch

		_, err = s.GetBatch(ctx, append(addresses, "missing")...)
		assert.Equal(t, vault.ErrVaultNotFound, err)
	})
}

func testGetAllByOwner(t *testing.T, s vault.Store) {
	t.Run("testGetAllByOwner", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByOwner(ctx, "owner", query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, vault.ErrVaultNotFound, err)

		records := make([]*vault.Record, 0)
		for i := 0; i < 4; i++ {
			record := newTestRecord(i)
			record.Owner = "owner"
			require.NoError(t, s.Put(ctx, record))
			records = append(records, record)
		}

		other := newTestRecord(4)
		other.Owner = "other_owner"
		require.NoError(t, s.Put(ctx, other))

		actual, err := s.GetAllByOwner(ctx, "owner", query.EmptyCursor, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 4)
		for i, record := range actual {
			assertEquivalentRecords(t, records[i], record)
		}

		actual, err = s.GetAllByOwner(ctx, "owner", query.EmptyCursor, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 4)
		for i, record := range actual {
			assertEquivalentRecords(t, records[len(records)-1-i], record)
		}

		actual, err = s.GetAllByOwner(ctx, "owner", query.EmptyCursor, 2, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)

		actual, err = s.GetAllByOwner(ctx, "owner", query.ToCursor(actual[1].Id), 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assertEquivalentRecords(t, records[2], actual[0])
	})
}

func newTestRecord(i int) *vault.Record {
	return &vault.Record{
		Address: fmt.Sprintf("vault%d", i),
		Bump:    255,

		Mint:  fmt.Sprintf("mint%d", i),
		Owner: fmt.Sprintf("owner%d", i),

		Balance: 1_000_000,
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *vault.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)
	assert.Equal(t, obj1.Mint, obj2.Mint)
	assert.Equal(t, obj1.Owner, obj2.Owner)
	assert.Equal(t, obj1.Balance, obj2.Balance)
	assert.Equal(t, obj1.Slot, obj2.Slot)
}
