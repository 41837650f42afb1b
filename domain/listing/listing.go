package listing

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/settlement"
)

// Approval is a token-scoped, time-bounded grant of transfer rights to one
// spender. It lives and dies with the listing it is attached to.
type Approval struct {
	Spender domain.Address    `json:"spender"`
	Expires domain.Expiration `json:"expires"`
}

// Listing is an active sell offer for one token. At most one listing exists
// per token id at any time.
type Listing struct {
	TokenId   domain.TokenId     `json:"tokenId"`
	Owner     domain.Address     `json:"owner"`
	Price     domain.Coin        `json:"price"`
	Expiry    domain.BlockHeight `json:"expiry"`
	Approvals []Approval         `json:"approvals"`
}

// ApprovalOf returns the approval held by spender, or nil. Re-approving the
// same spender replaces rather than duplicates, so there is at most one.
func (l *Listing) ApprovalOf(spender domain.Address) *Approval {
	for i := range l.Approvals {
		if l.Approvals[i].Spender.Equals(spender) {
			return &l.Approvals[i]
		}
	}
	return nil
}

// ListCommand carries one List request. MinimumBid is accepted for
// compatibility with the external command surface but neither validated nor
// stored: bidding is not part of this marketplace.
type ListCommand struct {
	Seller     domain.Address
	TokenId    domain.TokenId
	Price      domain.Coin
	Expiry     domain.BlockHeight
	MinimumBid string
}

type FindAllOptions struct {
	Start *domain.TokenId
	End   *domain.TokenId
	Limit *int
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithStart(start domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Start = &start
		return nil
	}
}

func WithEnd(end domain.TokenId) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.End = &end
		return nil
	}
}

func WithLimit(limit int) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Limit = &limit
		return nil
	}
}

// Repo owns listing records. FindOne returns domain.ErrNotListed when no
// listing exists for the token.
type Repo interface {
	FindOne(ctx ctx.Ctx, tokenId domain.TokenId) (*Listing, error)
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	Upsert(ctx ctx.Ctx, listing *Listing) error
	Delete(ctx ctx.Ctx, tokenId domain.TokenId) error
}

// Authorizer answers whether a principal may act on a token right now. It
// reads the delegation store and the listing record, and never mutates.
// Both methods return nil when allowed, domain.ErrUnauthorized when no
// grant exists, and domain.ErrExpired when a grant exists but has lapsed.
type Authorizer interface {
	// CanApprove holds for the owner and for delegated operators. Direct
	// per-token approvals deliberately grant transfer rights only.
	CanApprove(ctx ctx.Ctx, principal domain.Address, token *Listing, block *domain.BlockInfo) error
	// CanTransfer holds for the owner, approved spenders and delegated
	// operators.
	CanTransfer(ctx ctx.Ctx, principal domain.Address, token *Listing, block *domain.BlockInfo) error
}

// UseCase is the listing state machine plus its read-only projections.
type UseCase interface {
	List(ctx ctx.Ctx, cmd *ListCommand) (*Listing, error)
	Approve(ctx ctx.Ctx, caller, spender domain.Address, tokenId domain.TokenId, expires *domain.Expiration) (*Listing, error)
	Revoke(ctx ctx.Ctx, caller, spender domain.Address, tokenId domain.TokenId) (*Listing, error)
	// Buy validates the purchase and returns the settlement to apply. It
	// performs no mutation itself; see settlement.UseCase.
	Buy(ctx ctx.Ctx, buyer domain.Address, tokenId domain.TokenId, funds domain.Coin) (*settlement.Settlement, error)
	Unlist(ctx ctx.Ctx, caller domain.Address, tokenId domain.TokenId) error

	GetListing(ctx ctx.Ctx, tokenId domain.TokenId) (*Listing, error)
	GetAllListings(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
}
