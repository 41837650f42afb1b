package usecase

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/delegation"
)

type DelegationUseCaseCfg struct {
	DelegationRepo delegation.Repo
	Registry       domain.TokenRegistry
}

type impl struct {
	delegationRepo delegation.Repo
	registry       domain.TokenRegistry
}

func New(cfg *DelegationUseCaseCfg) delegation.UseCase {
	return &impl{
		delegationRepo: cfg.DelegationRepo,
		registry:       cfg.Registry,
	}
}

func (im *impl) ApproveAll(ctx ctx.Ctx, owner, operator domain.Address, expires *domain.Expiration) (*delegation.Delegation, error) {
	block, err := im.registry.HeadBlock(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to registry.HeadBlock")
		return nil, err
	}

	exp := domain.ExpireNever()
	if expires != nil {
		exp = *expires
	}
	if exp.IsExpired(block) {
		return nil, domain.ErrExpired
	}

	d := &delegation.Delegation{
		Owner:    owner,
		Operator: operator,
		Expires:  exp,
	}
	if err := im.delegationRepo.Upsert(ctx, d); err != nil {
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"owner":    owner,
		"operator": operator,
	}).Info("operator delegated")
	return d, nil
}

func (im *impl) RevokeAll(ctx ctx.Ctx, owner, operator domain.Address) error {
	if err := im.delegationRepo.Delete(ctx, delegation.Id{Owner: owner, Operator: operator}); err != nil {
		return err
	}

	ctx.WithFields(log.Fields{
		"owner":    owner,
		"operator": operator,
	}).Info("operator delegation revoked")
	return nil
}
