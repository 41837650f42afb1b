package keyval

import (
	"sort"
	"sync"

	"github.com/tokenmart/goapi/base/ctx"
)

// memory is an in-process Store keeping each table as a sorted slice. It
// backs tests and the memory store backend.
type memory struct {
	mu     sync.RWMutex
	tables map[string][]Entry
}

func NewMemory() Store {
	return &memory{
		tables: map[string][]Entry{},
	}
}

// search returns the insert position of key in rows.
func search(rows []Entry, key string) int {
	return sort.Search(len(rows), func(i int) bool {
		return rows[i].Key >= key
	})
}

func (m *memory) Get(c ctx.Ctx, table, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.tables[table]
	i := search(rows, key)
	if i >= len(rows) || rows[i].Key != key {
		return nil, ErrNotFound
	}
	val := make([]byte, len(rows[i].Value))
	copy(val, rows[i].Value)
	return val, nil
}

func (m *memory) Put(c ctx.Ctx, table, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	val := make([]byte, len(value))
	copy(val, value)

	rows := m.tables[table]
	i := search(rows, key)
	if i < len(rows) && rows[i].Key == key {
		rows[i].Value = val
		return nil
	}

	rows = append(rows, Entry{})
	copy(rows[i+1:], rows[i:])
	rows[i] = Entry{Key: key, Value: val}
	m.tables[table] = rows
	return nil
}

func (m *memory) Delete(c ctx.Ctx, table, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.tables[table]
	i := search(rows, key)
	if i >= len(rows) || rows[i].Key != key {
		return nil
	}
	m.tables[table] = append(rows[:i], rows[i+1:]...)
	return nil
}

func (m *memory) RangeScan(c ctx.Ctx, table string, opts ...RangeOptionsFunc) ([]Entry, error) {
	options := GetRangeOptions(opts...)

	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := m.tables[table]

	lo := 0
	if options.Start != nil {
		lo = search(rows, *options.Start)
	}
	hi := len(rows)
	if options.End != nil {
		hi = search(rows, *options.End)
	}
	if lo > hi {
		lo = hi
	}

	res := []Entry{}
	if options.Reverse {
		for i := hi - 1; i >= lo; i-- {
			res = append(res, Entry{Key: rows[i].Key, Value: rows[i].Value})
			if options.Limit != nil && len(res) >= *options.Limit {
				break
			}
		}
	} else {
		for i := lo; i < hi; i++ {
			res = append(res, Entry{Key: rows[i].Key, Value: rows[i].Value})
			if options.Limit != nil && len(res) >= *options.Limit {
				break
			}
		}
	}
	return res, nil
}

func (m *memory) Close() error {
	return nil
}
