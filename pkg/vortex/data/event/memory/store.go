package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/event"
)

type store struct {
	mu      sync.Mutex
	records []*event.Record
	last    uint64
}

type ById []*event.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory event.Store
func New() event.Store {
	return &store{}
}

// Put implements event.Store.Put
func (s *store) Put(_ context.Context, data *event.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByEventId(data.EventId); item != nil {
		return event.ErrEventExists
	}

	data.Id = s.last
	data.CreatedAt = time.Now()

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// Get implements event.Store.Get
func (s *store) Get(_ context.Context, eventId string) (*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByEventId(eventId); item != nil {
		return item.Clone(), nil
	}
	return nil, event.ErrEventNotFound
}

// GetBySignature implements event.Store.GetBySignature
func (s *store) GetBySignature(_ context.Context, signature string) ([]*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make([]*event.Record, 0)
	for _, item := range s.records {
		if item.TransactionSignature == signature {
			res = append(res, item.Clone())
		}
	}

	if len(res) == 0 {
		return nil, event.ErrEventNotFound
	}
	return res, nil
}

// GetAllByPool implements event.Store.GetAllByPool
func (s *store) GetAllByPool(_ context.Context, pool string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*event.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items := s.findByPool(pool); len(items) > 0 {
		res := s.filter(items, cursor, limit, direction)

		if len(res) == 0 {
			return nil, event.ErrEventNotFound
		}

		return res, nil
	}

	return nil, event.ErrEventNotFound
}

// GetCountByType implements event.Store.GetCountByType
func (s *store) GetCountByType(_ context.Context, eventType event.Type) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count uint64
	for _, item := range s.records {
		if item.Type == eventType {
			count++
		}
	}
	return count, nil
}

func (s *store) findByEventId(eventId string) *event.Record {
	for _, item := range s.records {
		if eventId == item.EventId {
			return item
		}
	}
	return nil
}

func (s *store) findByPool(pool string) []*event.Record {
	res := make([]*event.Record, 0)
	for _, item := range s.records {
		if item.Pool == pool {
			res = append(res, item.Clone())
		}
	}
	return res
}

func (s *store) filter(items []*event.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*event.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*event.Record
	for _, item := range items {
		if item.Id > start && direction == query.Ascending {
			res = append(res, item)
		}
		if item.Id < start && direction == query.Descending {
			res = append(res, item)
		}
	}

	if direction == query.Descending {
		sort.Sort(sort.Reverse(ById(res)))
	}

	if len(res) >= int(limit) {
		return res[:limit]
	}

	return res
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
