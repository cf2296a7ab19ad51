package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/pool"
)

type store struct {
	mu      sync.Mutex
	records []*pool.Record
	last    uint64
}

type ById []*pool.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory pool.Store
func New() pool.Store {
	return &store{}
}

// Put implements pool.Store.Put
func (s *store) Put(_ context.Context, data *pool.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.find(data); item != nil {
		return pool.ErrPoolExists
	}

	data.Id = s.last
	data.CreatedAt = time.Now()
	data.LastUpdatedAt = time.Now()

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// Update implements pool.Store.Update
func (s *store) Update(_ context.Context, data *pool.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(data.Address)
	if item == nil {
		return pool.ErrPoolNotFound
	}

	if data.Slot <= item.Slot {
		return pool.ErrStalePoolState
	}

	data.Id = item.Id
	data.CreatedAt = item.CreatedAt
	data.LastUpdatedAt = time.Now()

	data.Clone().CopyTo(item)

	return nil
}

// GetByAddress implements pool.Store.GetByAddress
func (s *store) GetByAddress(_ context.Context, address string) (*pool.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(address); item != nil {
		return item.Clone(), nil
	}
	return nil, pool.ErrPoolNotFound
}

// GetByMints implements pool.Store.GetByMints
func (s *store) GetByMints(_ context.Context, tokenAMint, tokenBMint string) (*pool.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByMints(tokenAMint, tokenBMint); item != nil {
		return item.Clone(), nil
	}
	return nil, pool.ErrPoolNotFound
}

// GetAllByAuthority implements pool.Store.GetAllByAuthority
func (s *store) GetAllByAuthority(_ context.Context, authority string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*pool.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items := s.findByAuthority(authority); len(items) > 0 {
		res := s.filter(items, cursor, limit, direction)

		if len(res) == 0 {
			return nil, pool.ErrPoolNotFound
		}

		return res, nil
	}

	return nil, pool.ErrPoolNotFound
}

// Count implements pool.Store.Count
func (s *store) Count(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.records)), nil
}

func (s *store) find(data *pool.Record) *pool.Record {
	for _, item := range s.records {
		if item.Id == data.Id {
			return item
		}
		if data.Address == item.Address {
			return item
		}
		if data.TokenAMint == item.TokenAMint && data.TokenBMint == item.TokenBMint {
			return item
		}
	}
	return nil
}

func (s *store) findByAddress(address string) *pool.Record {
	for _, item := range s.records {
		if address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) findByMints(tokenAMint, tokenBMint string) *pool.Record {
	for _, item := range s.records {
		if tokenAMint == item.TokenAMint && tokenBMint == item.TokenBMint {
			return item
		}
	}
	return nil
}

func (s *store) findByAuthority(authority string) []*pool.Record {
	res := make([]*pool.Record, 0)
	for _, item := range s.records {
		if item.Authority == authority {
			res = append(res, item.Clone())
		}
	}
	return res
}

func (s *store) filter(items []*pool.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*pool.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*pool.Record
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
