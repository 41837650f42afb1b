// Package keyval defines the persistent store contract the marketplace runs
// against: per-key atomic reads and writes plus ordered key iteration.
package keyval

import (
	"errors"

	"github.com/tokenmart/goapi/base/ctx"
)

var (
	ErrNotFound = errors.New("key not found")
)

// Entry is one key/value pair returned by a range scan.
type Entry struct {
	Key   string
	Value []byte
}

// Store is an ordered key-value store partitioned into tables. Iteration
// order is ascending by key unless reversed.
type Store interface {
	Get(c ctx.Ctx, table, key string) ([]byte, error)
	Put(c ctx.Ctx, table, key string, value []byte) error
	Delete(c ctx.Ctx, table, key string) error
	RangeScan(c ctx.Ctx, table string, opts ...RangeOptionsFunc) ([]Entry, error)
	Close() error
}

// RangeOptions bounds a scan. Start is inclusive, End is exclusive.
type RangeOptions struct {
	Start   *string
	End     *string
	Limit   *int
	Reverse bool
}

type RangeOptionsFunc func(*RangeOptions)

func GetRangeOptions(opts ...RangeOptionsFunc) RangeOptions {
	res := RangeOptions{}
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

func WithStart(start string) RangeOptionsFunc {
	return func(o *RangeOptions) {
		o.Start = &start
	}
}

func WithEnd(end string) RangeOptionsFunc {
	return func(o *RangeOptions) {
		o.End = &end
	}
}

func WithLimit(limit int) RangeOptionsFunc {
	return func(o *RangeOptions) {
		o.Limit = &limit
	}
}

func WithReverse() RangeOptionsFunc {
	return func(o *RangeOptions) {
		o.Reverse = true
	}
}
