package delegation

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

// Delegation is a blanket grant from an owner to an operator covering all
// tokens owned by that owner. Expired entries are never auto-deleted; the
// authorizer treats them as absent.
type Delegation struct {
	Owner    domain.Address    `json:"owner"`
	Operator domain.Address    `json:"operator"`
	Expires  domain.Expiration `json:"expires"`
}

func (d *Delegation) ToId() Id {
	return Id{Owner: d.Owner, Operator: d.Operator}
}

type Id struct {
	Owner    domain.Address `json:"owner"`
	Operator domain.Address `json:"operator"`
}

// Repo owns delegation records keyed by (owner, operator). FindOne returns
// domain.ErrNotFound when no delegation was ever granted.
type Repo interface {
	FindOne(ctx ctx.Ctx, id Id) (*Delegation, error)
	Upsert(ctx ctx.Ctx, delegation *Delegation) error
	Delete(ctx ctx.Ctx, id Id) error
}

type UseCase interface {
	// ApproveAll grants or overwrites the operator delegation.
	ApproveAll(ctx ctx.Ctx, owner, operator domain.Address, expires *domain.Expiration) (*Delegation, error)
	// RevokeAll removes the delegation. Removing an absent one is a no-op.
	RevokeAll(ctx ctx.Ctx, owner, operator domain.Address) error
}
