package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/curve"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

func RunTests(t *testing.T, s pool.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s pool.Store){
		testRoundTrip,
		testPutConflicts,
		testUpdate,
		testGetAllByAuthority,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s pool.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		expected := newTestRecord(0)
		cloned := expected.Clone()

		// Validate the record initially doesn't exist

		_, err := s.GetByAddress(ctx, expected.Address)
		assert.Equal(t, pool.ErrPoolNotFound, err)

		_, err = s.GetByMints(ctx, expected.TokenAMint, expected.TokenBMint)
		assert.Equal(t, pool.ErrPoolNotFound, err)

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		// Save the record

		start := time.Now()
		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.False(t, expected.CreatedAt.Before(start.Add(-time.Second)))

		// Ensure we can fetch the same record by all supported indices

		actual, err := s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		actual, err = s.GetByMints(ctx, expected.TokenAMint, expected.TokenBMint)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		// The mint pair is ordered

		_, err = s.GetByMints(ctx, expected.TokenBMint, expected.TokenAMint)
		assert.Equal(t, pool.ErrPoolNotFound, err)

		count, err = s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}

func testPutConflicts(t *testing.T, s pool.Store) {
	t.Run("testPutConflicts", func(t *testing.T) {
		ctx := context.Background()

		existing := newTestRecord(0)
		require.NoError(t, s.Put(ctx, existing))

		// Same address

		conflicting := newTestRecord(1)
		conflicting.Address = existing.Address
		assert.Equal(t, pool.ErrPoolExists, s.Put(ctx, conflicting))

		// Same mint pair

		conflicting = newTestRecord(1)
		conflicting.TokenAMint = existing.TokenAMint
		conflicting.TokenBMint = existing.TokenBMint
		assert.Equal(t, pool.ErrPoolExists, s.Put(ctx, conflicting))

		// Exactly one record survives

		count, err := s.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		// An invalid record is rejected outright

		invalid := newTestRecord(2)
		invalid.TokenBMint = invalid.TokenAMint
		assert.True(t, errors.Is(s.Put(ctx, invalid), pool.ErrInvalidPool))
	})
}

func testUpdate(t *testing.T, s pool.Store) {
	t.Run("testUpdate", func(t *testing.T) {
		ctx := context.Background()

		record := newTestRecord(0)

		// Updating a pool that doesn't exist fails

		record.Slot = 1
		assert.Equal(t, pool.ErrPoolNotFound, s.Update(ctx, record))

		record.Slot = 0
		require.NoError(t, s.Put(ctx, record))

		// Apply a swap's worth of state

		record.ReserveA += 1000
		record.ReserveB -= 500
		record.RecordSwap(1000, 500, 3, 0, 12345)

		require.NoError(t, s.Update(ctx, record))

		actual, err := s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, record, actual)
		assert.EqualValues(t, 1, actual.TotalSwaps)
		require.NotNil(t, actual.LastSwapAt)

		// Stale updates are rejected

		stale := actual.Clone()
		stale.ReserveA = 1
		assert.Equal(t, pool.ErrStalePoolState, s.Update(ctx, stale))

		stale.Slot = 12344
		assert.Equal(t, pool.ErrStalePoolState, s.Update(ctx, stale))

		actual, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, record, actual)

		// Pausing the pool sticks

		record.Paused = true
		record.Slot = 12346
		require.NoError(t, s.Update(ctx, record))

		actual, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.True(t, actual.Paused)
	})
}

func testGetAllByAuthority(t *testing.T, s pool.Store) {
	t.Run("testGetAllByAuthority", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByAuthority(ctx, "authority", query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, pool.ErrPoolNotFound, err)

		records := make([]*pool.Record, 0)
		for i := 0; i < 5; i++ {
			record := newTestRecord(i)
			record.Authority = "authority"
			require.NoError(t, s.Put(ctx, record))
			records = append(records, record)
		}

		other := newTestRecord(5)
		other.Authority = "other_authority"
		require.NoError(t, s.Put(ctx, other))

		// All records, ascending

		actual, err := s.GetAllByAuthority(ctx, "authority", query.EmptyCursor, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i, record := range actual {
			assertEquivalentRecords(t, records[i], record)
		}

		// Descending

		actual, err = s.GetAllByAuthority(ctx, "authority", query.EmptyCursor, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i, record := range actual {
			assertEquivalentRecords(t, records[len(records)-1-i], record)
		}

		// Limited

		actual, err = s.GetAllByAuthority(ctx, "authority", query.EmptyCursor, 2, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)

		// Paged with a cursor

		actual, err = s.GetAllByAuthority(ctx, "authority", query.ToCursor(actual[1].Id), 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 3)
		assertEquivalentRecords(t, records[2], actual[0])

		// Unknown authority

		_, err = s.GetAllByAuthority(ctx, "unknown", query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, pool.ErrPoolNotFound, err)
	})
}

func newTestRecord(i int) *pool.Record {
	return &pool.Record{
		Version: 1,

		Address:             fmt.Sprintf("pool%d", i),
		Bump:                254,
		LpMintAuthorityBump: 253,

		TokenAMint: fmt.Sprintf("mint_a_%d", i),
		TokenBMint: fmt.Sprintf("mint_b_%d", i),

		TokenAVault: fmt.Sprintf("vault_a_%d", i),
		TokenBVault: fmt.Sprintf("vault_b_%d", i),

		LpMint:   fmt.Sprintf("lp_mint_%d", i),
		LpSupply: 1_000_000,

		ReserveA: 1_000_000,
		ReserveB: 1_000_000,

		FeeNumerator:   curve.StandardFeeNumerator,
		FeeDenominator: curve.StandardFeeDenominator,

		Authority: fmt.Sprintf("authority%d", i),

		Lamports: 2_000_000,
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *pool.Record) {
	assert.Equal(t, obj1.Version, obj2.Version)
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)
	assert.Equal(t, obj1.LpMintAuthorityBump, obj2.LpMintAuthorityBump)
	assert.Equal(t, obj1.TokenAMint, obj2.TokenAMint)
	assert.Equal(t, obj1.TokenBMint, obj2.TokenBMint)
	assert.Equal(t, obj1.TokenAVault, obj2.TokenAVault)
	assert.Equal(t, obj1.TokenBVault, obj2.TokenBVault)
	assert.Equal(t, obj1.LpMint, obj2.LpMint)
	assert.Equal(t, obj1.LpSupply, obj2.LpSupply)
	assert.Equal(t, obj1.ReserveA, obj2.ReserveA)
	assert.Equal(t, obj1.ReserveB, obj2.ReserveB)
	assert.Equal(t, obj1.FeeNumerator, obj2.FeeNumerator)
	assert.Equal(t, obj1.FeeDenominator, obj2.FeeDenominator)
	assert.Equal(t, obj1.Authority, obj2.Authority)
	assert.Equal(t, obj1.Paused, obj2.Paused)
	assert.Equal(t, obj1.TotalSwaps, obj2.TotalSwaps)
	assert.Equal(t, obj1.CumulativeVolumeA, obj2.CumulativeVolumeA)
	assert.Equal(t, obj1.CumulativeVolumeB, obj2.CumulativeVolumeB)
	assert.Equal(t, obj1.CumulativeFeesA, obj2.CumulativeFeesA)
	assert.Equal(t, obj1.CumulativeFeesB, obj2.CumulativeFeesB)
	assert.Equal(t, obj1.Lamports, obj2.Lamports)
	assert.Equal(t, obj1.Slot, obj2.Slot)
}
