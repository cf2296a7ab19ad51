package tests

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/pointer"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

func RunTests(t *testing.T, s event.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s event.Store){
		testRoundTrip,
		testGetBySignature,
		testGetAllByPool,
		testGetCountByType,
	} {
		tf(t, s)
		teardown()
	}
}

func testRoundTrip(t *testing.T, s event.Store) {
	t.Run("testRoundTrip", func(t *testing.T) {
		ctx := context.Background()

		expected := newTestRecord(0, event.TypeSwapExecuted)
		expected.AmountA = pointer.Uint64(1000)
		expected.AmountB = pointer.Uint64(996)
		expected.FeeAmount = pointer.Uint64(3)
		cloned := expected.Clone()

		_, err := s.Get(ctx, expected.EventId)
		assert.Equal(t, event.ErrEventNotFound, err)

		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)

		actual, err := s.Get(ctx, expected.EventId)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		// Events are append-only

		assert.Equal(t, event.ErrEventExists, s.Put(ctx, cloned.Clone()))

		// An invalid record is rejected outright

		invalid := newTestRecord(1, event.TypeUnknown)
		assert.True(t, errors.Is(s.Put(ctx, invalid), event.ErrInvalidEvent))
	})
}

func testGetBySignature(t *testing.T, s event.Store) {
	t.Run("testGetBySignature", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetBySignature(ctx, "signature")
		assert.Equal(t, event.ErrEventNotFound, err)

		// A pool creation writes multiple events under one signature

		records := make([]*event.Record, 0)
		for _, eventType := range []event.Type{event.TypePoolCreated, event.TypeLiquidityAdded} {
			record := newTestRecord(len(records), eventType)
			record.TransactionSignature = "signature"
			require.NoError(t, s.Put(ctx, record))
			records = append(records, record)
		}

		actual, err := s.GetBySignature(ctx, "signature")
		require.NoError(t, err)
		require.Len(t, actual, len(records))
		for i, record := range records {
			assertEquivalentRecords(t, record, actual[i])
		}
	})
}

func testGetAllByPool(t *testing.T, s event.Store) {
	t.Run("testGetAllByPool", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAllByPool(ctx, "pool", query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, event.ErrEventNotFound, err)

		records := make([]*event.Record, 0)
		for i := 0; i < 5; i++ {
			record := newTestRecord(i, event.TypeSwapExecuted)
			record.Pool = "pool"
			require.NoError(t, s.Put(ctx, record))
			records = append(records, record)
		}

		other := newTestRecord(5, event.TypeSwapExecuted)
		other.Pool = "other_pool"
		require.NoError(t, s.Put(ctx, other))

		actual, err := s.GetAllByPool(ctx, "pool", query.EmptyCursor, 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i, record := range actual {
			assertEquivalentRecords(t, records[i], record)
		}

		actual, err = s.GetAllByPool(ctx, "pool", query.EmptyCursor, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, actual, 5)
		for i, record := range actual {
			assertEquivalentRecords(t, records[len(records)-1-i], record)
		}

		actual, err = s.GetAllByPool(ctx, "pool", query.EmptyCursor, 3, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 3)

		actual, err = s.GetAllByPool(ctx, "pool", query.ToCursor(actual[2].Id), 10, query.Ascending)
		require.NoError(t, err)
		require.Len(t, actual, 2)
		assertEquivalentRecords(t, records[3], actual[0])
	})
}

func testGetCountByType(t *testing.T, s event.Store) {
	t.Run("testGetCountByType", func(t *testing.T) {
		ctx := context.Background()

		count, err := s.GetCountByType(ctx, event.TypeSwapExecuted)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		for i := 0; i < 3; i++ {
			require.NoError(t, s.Put(ctx, newTestRecord(i, event.TypeSwapExecuted)))
		}
		require.NoError(t, s.Put(ctx, newTestRecord(3, event.TypePoolCreated)))

		count, err = s.GetCountByType(ctx, event.TypeSwapExecuted)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)

		count, err = s.GetCountByType(ctx, event.TypePoolCreated)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		count, err = s.GetCountByType(ctx, event.TypeLiquidityRemoved)
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})
}

func newTestRecord(i int, eventType event.Type) *event.Record {
	return &event.Record{
		EventId: uuid.New().String(),
		Type:    eventType,

		Pool:  fmt.Sprintf("pool%d", i),
		Actor: fmt.Sprintf("actor%d", i),

		TransactionSignature: fmt.Sprintf("signature%d", i),

		ReserveA: 1_000_000,
		ReserveB: 1_000_000,

		Slot: uint64(100 + i),
	}
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *event.Record) {
	assert.Equal(t, obj1.EventId, obj2.EventId)
	assert.Equal(t, obj1.Type, obj2.Type)
	assert.Equal(t, obj1.Pool, obj2.Pool)
	assert.Equal(t, obj1.Actor, obj2.Actor)
	assert.Equal(t, obj1.TransactionSignature, obj2.TransactionSignature)
	assert.EqualValues(t, obj1.AmountA, obj2.AmountA)
	assert.EqualValues(t, obj1.AmountB, obj2.AmountB)
	assert.EqualValues(t, obj1.LiquidityAmount, obj2.LiquidityAmount)
	assert.EqualValues(t, obj1.FeeAmount, obj2.FeeAmount)
	assert.Equal(t, obj1.ReserveA, obj2.ReserveA)
	assert.Equal(t, obj1.ReserveB, obj2.ReserveB)
	assert.Equal(t, obj1.Slot, obj2.Slot)
}
