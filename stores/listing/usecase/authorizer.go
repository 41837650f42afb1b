package usecase

import (
	"errors"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/delegation"
	"github.com/tokenmart/goapi/domain/listing"
)

type authorizer struct {
	delegationRepo delegation.Repo
}

func NewAuthorizer(delegationRepo delegation.Repo) listing.Authorizer {
	return &authorizer{delegationRepo}
}

// CanApprove holds for the token owner and for operators with a live
// delegation. Per-token approvals grant transfer rights only, so an
// approved spender cannot grant further approvals.
func (a *authorizer) CanApprove(ctx ctx.Ctx, principal domain.Address, token *listing.Listing, block *domain.BlockInfo) error {
	if token.Owner.Equals(principal) {
		return nil
	}
	return a.checkOperator(ctx, principal, token, block)
}

// CanTransfer holds for the owner, for spenders with a live per-token
// approval, and for operators with a live delegation.
func (a *authorizer) CanTransfer(ctx ctx.Ctx, principal domain.Address, token *listing.Listing, block *domain.BlockInfo) error {
	if token.Owner.Equals(principal) {
		return nil
	}

	sawLapsed := false
	if apr := token.ApprovalOf(principal); apr != nil {
		if !apr.Expires.IsExpired(block) {
			return nil
		}
		sawLapsed = true
	}

	err := a.checkOperator(ctx, principal, token, block)
	if errors.Is(err, domain.ErrUnauthorized) && sawLapsed {
		// a grant existed but lapsed; deny either way, keep the distinction
		return domain.ErrExpired
	}
	return err
}

func (a *authorizer) checkOperator(ctx ctx.Ctx, principal domain.Address, token *listing.Listing, block *domain.BlockInfo) error {
	op, err := a.delegationRepo.FindOne(ctx, delegation.Id{Owner: token.Owner, Operator: principal})
	if errors.Is(err, domain.ErrNotFound) {
		return domain.ErrUnauthorized
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"owner":     token.Owner,
			"principal": principal,
		}).Error("failed to delegationRepo.FindOne")
		return err
	}

	if op.Expires.IsExpired(block) {
		ctx.WithFields(log.Fields{
			"owner":     token.Owner,
			"principal": principal,
			"height":    block.Height,
		}).Info("operator delegation lapsed")
		return domain.ErrExpired
	}
	return nil
}
