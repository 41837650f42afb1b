package repository

import (
	"testing"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/domain"
	dListing "github.com/tokenmart/goapi/domain/listing"
)

type listingRepoSuite struct {
	suite.Suite
	ctx     bCtx.Ctx
	subject dListing.Repo
}

func Test(t *testing.T) {
	suite.Run(t, new(listingRepoSuite))
}

func (s *listingRepoSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.subject = NewListingRepo(keyval.NewMemory())
}

func (s *listingRepoSuite) makeListing(tokenId domain.TokenId) *dListing.Listing {
	return &dListing.Listing{
		TokenId:   tokenId,
		Owner:     "seller1",
		Price:     domain.NewCoin("UST", 100),
		Expiry:    2000,
		Approvals: []dListing.Approval{},
	}
}

func (s *listingRepoSuite) TestFindOne() {
	_, err := s.subject.FindOne(s.ctx, "t1")
	s.ErrorIs(err, domain.ErrNotListed)

	want := s.makeListing("t1")
	s.Require().NoError(s.subject.Upsert(s.ctx, want))

	got, err := s.subject.FindOne(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *listingRepoSuite) TestUpsertOverwrites() {
	l := s.makeListing("t1")
	s.Require().NoError(s.subject.Upsert(s.ctx, l))

	l.Price = domain.NewCoin("UST", 250)
	s.Require().NoError(s.subject.Upsert(s.ctx, l))

	got, err := s.subject.FindOne(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(domain.NewCoin("UST", 250), got.Price)
}

func (s *listingRepoSuite) TestDelete() {
	s.Require().NoError(s.subject.Upsert(s.ctx, s.makeListing("t1")))
	s.Require().NoError(s.subject.Delete(s.ctx, "t1"))

	_, err := s.subject.FindOne(s.ctx, "t1")
	s.ErrorIs(err, domain.ErrNotListed)
}

func (s *listingRepoSuite) TestFindAll() {
	for _, tokenId := range []domain.TokenId{"t3", "t1", "t2"} {
		s.Require().NoError(s.subject.Upsert(s.ctx, s.makeListing(tokenId)))
	}

	// token id order regardless of insertion order
	res, err := s.subject.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(res, 3)
	s.Equal(domain.TokenId("t1"), res[0].TokenId)
	s.Equal(domain.TokenId("t2"), res[1].TokenId)
	s.Equal(domain.TokenId("t3"), res[2].TokenId)

	// start is inclusive, end is exclusive
	res, err = s.subject.FindAll(s.ctx, dListing.WithStart("t2"), dListing.WithEnd("t3"))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(domain.TokenId("t2"), res[0].TokenId)

	res, err = s.subject.FindAll(s.ctx, dListing.WithLimit(2))
	s.Require().NoError(err)
	s.Len(res, 2)
}
