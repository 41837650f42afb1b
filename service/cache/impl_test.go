package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/tokenmart/goapi/base/ctx"
)

type cacheSuite struct {
	suite.Suite
	ctx bCtx.Ctx
	svc Service
}

func Test(t *testing.T) {
	suite.Run(t, new(cacheSuite))
}

func (s *cacheSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.svc = New(ServiceConfig{
		Ttl:  time.Minute,
		Pfx:  "test",
		Size: 1,
	})
}

type payload struct {
	Value string `json:"value"`
}

func (s *cacheSuite) TestSetGetDel() {
	container := &payload{}
	s.Equal(ErrNotFound, s.svc.Get(s.ctx, "k", container))

	s.Require().NoError(s.svc.Set(s.ctx, "k", &payload{Value: "v"}))
	s.Require().NoError(s.svc.Get(s.ctx, "k", container))
	s.Equal("v", container.Value)

	s.Require().NoError(s.svc.Del(s.ctx, "k"))
	s.Equal(ErrNotFound, s.svc.Get(s.ctx, "k", container))
}

func (s *cacheSuite) TestGetByFunc() {
	calls := 0
	getter := func() (interface{}, error) {
		calls++
		return &payload{Value: "fresh"}, nil
	}

	container := &payload{}
	s.Require().NoError(s.svc.GetByFunc(s.ctx, "k", container, getter))
	s.Equal("fresh", container.Value)
	s.Equal(1, calls)

	// second read hits the cache
	container = &payload{}
	s.Require().NoError(s.svc.GetByFunc(s.ctx, "k", container, getter))
	s.Equal("fresh", container.Value)
	s.Equal(1, calls)
}
