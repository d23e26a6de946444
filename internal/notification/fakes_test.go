package notification

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
)

// fakeFinder は固定の入居者一覧を返すOccupantFinder。
type fakeFinder struct {
	occupants []Occupant
	err       error
	filters   []OccupantFilter
}

func (f *fakeFinder) FindOccupants(_ context.Context, _ string, filter OccupantFilter) ([]Occupant, error) {
	f.filters = append(f.filters, filter)
	if f.err != nil {
		return nil, f.err
	}
	return slices.Clone(f.occupants), nil
}

// memStore はレルムごとに履歴を保持するインメモリのNotificationStore。
type memStore struct {
	mu      sync.Mutex
	records map[string]map[string][]Change
	err     error
}

func newMemStore() *memStore {
	return &memStore{records: make(map[string]map[string][]Change)}
}

func (s *memStore) FindAll(_ context.Context, realm string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	records := make([]Record, 0, len(s.records[realm]))
	for id, changes := range s.records[realm] {
		records = append(records, Record{ID: id, Changes: slices.Clone(changes)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records, nil
}

func (s *memStore) FindOne(_ context.Context, realm, id string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	changes, ok := s.records[realm][id]
	if !ok {
		return nil, nil
	}
	return &Record{ID: id, Changes: slices.Clone(changes)}, nil
}

func (s *memStore) Upsert(_ context.Context, realm string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.records[realm] == nil {
		s.records[realm] = make(map[string][]Change)
	}
	s.records[realm][record.ID] = slices.Clone(record.Changes)
	return nil
}

// fakePublisher は送信されたレコードを記録するPublisher。
type fakePublisher struct {
	published []Record
	err       error
}

func (p *fakePublisher) PublishStatusChanged(_ context.Context, _ string, record Record) error {
	p.published = append(p.published, record)
	return p.err
}

var errBoom = errors.New("boom")
