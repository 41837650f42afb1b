package domain

import (
	"github.com/tokenmart/goapi/base/ctx"
)

// TokenRegistry is the external source of truth for asset ownership. The
// marketplace only issues instructions to it and trusts its answers at
// validation time.
type TokenRegistry interface {
	// OwnerOf returns the current registry-recorded owner of the token.
	OwnerOf(ctx ctx.Ctx, tokenId TokenId) (Address, error)
	// Transfer instructs the registry to move the token from one owner to
	// another. The operator must hold a prior approval grant.
	Transfer(ctx ctx.Ctx, tokenId TokenId, from, to, operator Address) error
	// HeadBlock returns the current logical clock of the host ledger.
	HeadBlock(ctx ctx.Ctx) (*BlockInfo, error)
}

// FundsLedger executes balance transfers between principals.
type FundsLedger interface {
	Send(ctx ctx.Ctx, from, to Address, amount Coin) error
}
