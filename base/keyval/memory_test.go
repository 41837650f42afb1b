package keyval

import (
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/tokenmart/goapi/base/ctx"
)

type memorySuite struct {
	suite.Suite
	ctx   bCtx.Ctx
	store Store
}

func Test(t *testing.T) {
	suite.Run(t, new(memorySuite))
}

func (s *memorySuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.store = NewMemory()
}

func (s *memorySuite) TestGetPutDelete() {
	_, err := s.store.Get(s.ctx, "t", "a")
	s.Equal(ErrNotFound, err)

	s.Require().NoError(s.store.Put(s.ctx, "t", "a", []byte("1")))
	val, err := s.store.Get(s.ctx, "t", "a")
	s.Require().NoError(err)
	s.Equal([]byte("1"), val)

	// overwrite
	s.Require().NoError(s.store.Put(s.ctx, "t", "a", []byte("2")))
	val, err = s.store.Get(s.ctx, "t", "a")
	s.Require().NoError(err)
	s.Equal([]byte("2"), val)

	// tables are isolated
	_, err = s.store.Get(s.ctx, "u", "a")
	s.Equal(ErrNotFound, err)

	s.Require().NoError(s.store.Delete(s.ctx, "t", "a"))
	_, err = s.store.Get(s.ctx, "t", "a")
	s.Equal(ErrNotFound, err)

	// deleting an absent key is a no-op
	s.Require().NoError(s.store.Delete(s.ctx, "t", "a"))
}

func (s *memorySuite) TestRangeScanOrdering() {
	for _, k := range []string{"c", "a", "e", "b", "d"} {
		s.Require().NoError(s.store.Put(s.ctx, "t", k, []byte(k)))
	}

	entries, err := s.store.RangeScan(s.ctx, "t")
	s.Require().NoError(err)
	keys := []string{}
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	s.Equal([]string{"a", "b", "c", "d", "e"}, keys)

	entries, err = s.store.RangeScan(s.ctx, "t", WithReverse())
	s.Require().NoError(err)
	keys = keys[:0]
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	s.Equal([]string{"e", "d", "c", "b", "a"}, keys)
}

func (s *memorySuite) TestRangeScanBounds() {
	for _, k := range []string{"a", "b", "c", "d"} {
		s.Require().NoError(s.store.Put(s.ctx, "t", k, []byte(k)))
	}

	// start inclusive, end exclusive
	entries, err := s.store.RangeScan(s.ctx, "t", WithStart("b"), WithEnd("d"))
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal("b", entries[0].Key)
	s.Equal("c", entries[1].Key)

	entries, err = s.store.RangeScan(s.ctx, "t", WithLimit(3))
	s.Require().NoError(err)
	s.Len(entries, 3)

	// empty window
	entries, err = s.store.RangeScan(s.ctx, "t", WithStart("x"))
	s.Require().NoError(err)
	s.Len(entries, 0)
}
