package settlement

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
)

// FundTransfer moves the exact listing price from the buyer to the seller.
type FundTransfer struct {
	From   domain.Address `json:"from"`
	To     domain.Address `json:"to"`
	Amount domain.Coin    `json:"amount"`
}

// OwnershipTransfer instructs the asset-ownership registry to move the token
// from seller to buyer. Operator is the marketplace identity holding the
// approval obtained at List time; without it the registry rejects the
// instruction.
type OwnershipTransfer struct {
	TokenId  domain.TokenId `json:"tokenId"`
	From     domain.Address `json:"from"`
	To       domain.Address `json:"to"`
	Operator domain.Address `json:"operator"`
}

// Settlement bundles the state delta and the outbound instructions of one
// validated Buy. The two instructions and the listing deletion take effect
// together or not at all.
type Settlement struct {
	Id                string            `json:"id"`
	TokenId           domain.TokenId    `json:"tokenId"`
	Seller            domain.Address    `json:"seller"`
	Buyer             domain.Address    `json:"buyer"`
	Price             domain.Coin       `json:"price"`
	FundTransfer      FundTransfer      `json:"fundTransfer"`
	OwnershipTransfer OwnershipTransfer `json:"ownershipTransfer"`
}

// UseCase applies a settlement against the external collaborators and the
// listing store.
type UseCase interface {
	Settle(ctx ctx.Ctx, s *Settlement) error
}
