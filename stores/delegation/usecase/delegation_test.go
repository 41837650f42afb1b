package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/domain"
	dDelegation "github.com/tokenmart/goapi/domain/delegation"
	delegationRepository "github.com/tokenmart/goapi/stores/delegation/repository"
)

type fakeRegistry struct {
	head domain.BlockInfo
}

func (r *fakeRegistry) OwnerOf(c bCtx.Ctx, tokenId domain.TokenId) (domain.Address, error) {
	return "", domain.ErrNotFound
}

func (r *fakeRegistry) Transfer(c bCtx.Ctx, tokenId domain.TokenId, from, to, operator domain.Address) error {
	return nil
}

func (r *fakeRegistry) HeadBlock(c bCtx.Ctx) (*domain.BlockInfo, error) {
	head := r.head
	return &head, nil
}

type delegationSuite struct {
	suite.Suite
	ctx     bCtx.Ctx
	repo    dDelegation.Repo
	subject dDelegation.UseCase
}

func Test(t *testing.T) {
	suite.Run(t, new(delegationSuite))
}

func (s *delegationSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.repo = delegationRepository.NewDelegationRepo(keyval.NewMemory())
	s.subject = New(&DelegationUseCaseCfg{
		DelegationRepo: s.repo,
		Registry:       &fakeRegistry{head: domain.BlockInfo{Height: 1000, Time: time.Unix(1700000000, 0)}},
	})
}

func (s *delegationSuite) TestApproveAll() {
	exp := domain.ExpireAtHeight(1005)
	res, err := s.subject.ApproveAll(s.ctx, "owner1", "op1", &exp)
	s.Require().NoError(err)
	s.Equal(domain.Address("op1"), res.Operator)

	stored, err := s.repo.FindOne(s.ctx, dDelegation.Id{Owner: "owner1", Operator: "op1"})
	s.Require().NoError(err)
	s.Require().NotNil(stored.Expires.AtHeight)
	s.Equal(domain.BlockHeight(1005), *stored.Expires.AtHeight)
}

func (s *delegationSuite) TestApproveAllDefaultsToNever() {
	res, err := s.subject.ApproveAll(s.ctx, "owner1", "op1", nil)
	s.Require().NoError(err)
	s.True(res.Expires.IsNever())
}

func (s *delegationSuite) TestApproveAllLapsedExpiration() {
	exp := domain.ExpireAtHeight(1000)
	_, err := s.subject.ApproveAll(s.ctx, "owner1", "op1", &exp)
	s.ErrorIs(err, domain.ErrExpired)

	_, err = s.repo.FindOne(s.ctx, dDelegation.Id{Owner: "owner1", Operator: "op1"})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *delegationSuite) TestApproveAllOverwrites() {
	exp := domain.ExpireAtHeight(1005)
	_, err := s.subject.ApproveAll(s.ctx, "owner1", "op1", &exp)
	s.Require().NoError(err)

	_, err = s.subject.ApproveAll(s.ctx, "owner1", "op1", nil)
	s.Require().NoError(err)

	stored, err := s.repo.FindOne(s.ctx, dDelegation.Id{Owner: "owner1", Operator: "op1"})
	s.Require().NoError(err)
	s.True(stored.Expires.IsNever())
}

func (s *delegationSuite) TestRevokeAll() {
	_, err := s.subject.ApproveAll(s.ctx, "owner1", "op1", nil)
	s.Require().NoError(err)

	s.Require().NoError(s.subject.RevokeAll(s.ctx, "owner1", "op1"))
	_, err = s.repo.FindOne(s.ctx, dDelegation.Id{Owner: "owner1", Operator: "op1"})
	s.ErrorIs(err, domain.ErrNotFound)

	// revoking an absent delegation is a no-op
	s.NoError(s.subject.RevokeAll(s.ctx, "owner1", "op1"))
}
