package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ritikbhatt20/vortex/pkg/database/query"
	"github.com/ritikbhatt20/vortex/pkg/vortex/data/vault"
)

type store struct {
	mu      sync.Mutex
	records []*vault.Record
	last    uint64
}

type ById []*vault.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory vault.Store
func New() vault.Store {
	return &store{}
}

// Put implements vault.Store.Put
func (s *store) Put(_ context.Context, data *vault.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.last++
	if item := s.findByAddress(data.Address); item != nil {
		return vault.ErrVaultExists
	}

	data.Id = s.last
	data.CreatedAt = time.Now()
	data.LastUpdatedAt = time.Now()

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// Save implements vault.Store.Save
func (s *store) Save(_ context.Context, data *vault.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(data.Address)
	if item == nil {
		return vault.ErrVaultNotFound
	}

	if data.Slot <= item.Slot {
		return vault.ErrStaleVaultState
	}

	item.Balance = data.Balance
	item.Slot = data.Slot
	item.LastUpdatedAt = time.Now()

	item.CopyTo(data)

	return nil
}

// Get implements vault.Store.Get
func (s *store) Get(_ context.Context, address string) (*vault.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(address); item != nil {
		return item.Clone(), nil
	}
	return nil, vault.ErrVaultNotFound
}

// GetBatch implements vault.Store.GetBatch
func (s *store) GetBatch(_ context.Context, addresses ...string) (map[string]*vault.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := make(map[string]*vault.Record)
	for _, address := range addresses {
		item := s.findByAddress(address)
		if item == nil {
			return nil, vault.ErrVaultNotFound
		}

		res[address] = item.Clone()
	}
	return res, nil
}

// GetAllByOwner implements vault.Store.GetAllByOwner
func (s *store) GetAllByOwner(_ context.Context, owner string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*vault.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items := s.findByOwner(owner); len(items) > 0 {
		res := s.filter(items, cursor, limit, direction)

		if len(res) == 0 {
			return nil, vault.ErrVaultNotFound
		}

		return res, nil
	}

	return nil, vault.ErrVaultNotFound
}

// Count implements vault.Store.Count
func (s *store) Count(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return uint64(len(s.records)), nil
}

func (s *store) findByAddress(address string) *vault.Record {
	for _, item := range s.records {
		if address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) findByOwner(owner string) []*vault.Record {
	res := make([]*vault.Record, 0)
	for _, item := range s.records {
		if item.Owner == owner {
			res = append(res, item.Clone())
		}
	}
	return res
}

func (s *store) filter(items []*vault.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*vault.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*vault.Record
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
