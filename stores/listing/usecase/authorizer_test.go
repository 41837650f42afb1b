package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/domain"
	dDelegation "github.com/tokenmart/goapi/domain/delegation"
	dListing "github.com/tokenmart/goapi/domain/listing"
	delegationRepository "github.com/tokenmart/goapi/stores/delegation/repository"
)

type authorizerSuite struct {
	suite.Suite
	ctx            bCtx.Ctx
	delegationRepo dDelegation.Repo
	subject        dListing.Authorizer
	token          *dListing.Listing
}

func TestAuthorizer(t *testing.T) {
	suite.Run(t, new(authorizerSuite))
}

func (s *authorizerSuite) SetupTest() {
	s.ctx = bCtx.Background()
	s.delegationRepo = delegationRepository.NewDelegationRepo(keyval.NewMemory())
	s.subject = NewAuthorizer(s.delegationRepo)
	s.token = &dListing.Listing{
		TokenId: "t1",
		Owner:   "owner1",
		Price:   domain.NewCoin("UST", 100),
		Expiry:  2000,
	}
}

func (s *authorizerSuite) block(height domain.BlockHeight) *domain.BlockInfo {
	return &domain.BlockInfo{Height: height, Time: time.Unix(1700000000, 0)}
}

func (s *authorizerSuite) TestOwner() {
	s.NoError(s.subject.CanApprove(s.ctx, "owner1", s.token, s.block(1000)))
	s.NoError(s.subject.CanTransfer(s.ctx, "owner1", s.token, s.block(1000)))
	// identity comparison is case-insensitive
	s.NoError(s.subject.CanTransfer(s.ctx, "OWNER1", s.token, s.block(1000)))
}

func (s *authorizerSuite) TestStranger() {
	s.ErrorIs(s.subject.CanApprove(s.ctx, "stranger", s.token, s.block(1000)), domain.ErrUnauthorized)
	s.ErrorIs(s.subject.CanTransfer(s.ctx, "stranger", s.token, s.block(1000)), domain.ErrUnauthorized)
}

func (s *authorizerSuite) TestApprovedSpender() {
	s.token.Approvals = []dListing.Approval{
		{Spender: "spender1", Expires: domain.ExpireAtHeight(1500)},
	}

	s.NoError(s.subject.CanTransfer(s.ctx, "spender1", s.token, s.block(1000)))
	// per-token approval grants transfer rights only
	s.ErrorIs(s.subject.CanApprove(s.ctx, "spender1", s.token, s.block(1000)), domain.ErrUnauthorized)
}

func (s *authorizerSuite) TestLapsedApproval() {
	s.token.Approvals = []dListing.Approval{
		{Spender: "spender1", Expires: domain.ExpireAtHeight(1500)},
	}

	// expiry height itself is already lapsed
	s.ErrorIs(s.subject.CanTransfer(s.ctx, "spender1", s.token, s.block(1500)), domain.ErrExpired)
	s.ErrorIs(s.subject.CanTransfer(s.ctx, "spender1", s.token, s.block(1501)), domain.ErrExpired)
}

func (s *authorizerSuite) TestOperatorDelegation() {
	s.Require().NoError(s.delegationRepo.Upsert(s.ctx, &dDelegation.Delegation{
		Owner:    "owner1",
		Operator: "op1",
		Expires:  domain.ExpireAtHeight(1005),
	}))

	s.NoError(s.subject.CanApprove(s.ctx, "op1", s.token, s.block(1000)))
	s.NoError(s.subject.CanTransfer(s.ctx, "op1", s.token, s.block(1004)))

	// the delegation lapsed; deny, but distinguish from never-granted
	s.ErrorIs(s.subject.CanApprove(s.ctx, "op1", s.token, s.block(1010)), domain.ErrExpired)
	s.ErrorIs(s.subject.CanTransfer(s.ctx, "op1", s.token, s.block(1010)), domain.ErrExpired)
}

func (s *authorizerSuite) TestLapsedApprovalWithLiveDelegation() {
	s.token.Approvals = []dListing.Approval{
		{Spender: "op1", Expires: domain.ExpireAtHeight(1500)},
	}
	s.Require().NoError(s.delegationRepo.Upsert(s.ctx, &dDelegation.Delegation{
		Owner:    "owner1",
		Operator: "op1",
		Expires:  domain.ExpireNever(),
	}))

	// blanket delegation still authorizes after the per-token grant lapsed
	s.NoError(s.subject.CanTransfer(s.ctx, "op1", s.token, s.block(1600)))
}
