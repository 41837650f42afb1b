package usecase

import (
	"errors"

	"github.com/google/uuid"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/listing"
	"github.com/tokenmart/goapi/domain/settlement"
)

type ListingUseCaseCfg struct {
	ListingRepo listing.Repo
	Authorizer  listing.Authorizer
	Registry    domain.TokenRegistry

	// Denom is the single settlement denomination of the marketplace.
	Denom string
	// MinDuration and MaxDuration bound the listing expiry window relative
	// to the head block at creation time.
	MinDuration domain.BlockHeight
	MaxDuration domain.BlockHeight
	// Operator is the marketplace's own identity. It is granted a transfer
	// approval at List time so it can execute the settlement transfer.
	Operator domain.Address
}

type impl struct {
	listingRepo listing.Repo
	authorizer  listing.Authorizer
	registry    domain.TokenRegistry
	denom       string
	minDuration domain.BlockHeight
	maxDuration domain.BlockHeight
	operator    domain.Address
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		authorizer:  cfg.Authorizer,
		registry:    cfg.Registry,
		denom:       cfg.Denom,
		minDuration: cfg.MinDuration,
		maxDuration: cfg.MaxDuration,
		operator:    cfg.Operator,
	}
}

func (im *impl) List(ctx ctx.Ctx, cmd *listing.ListCommand) (*listing.Listing, error) {
	block, err := im.registry.HeadBlock(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to registry.HeadBlock")
		return nil, err
	}

	owner, err := im.registry.OwnerOf(ctx, cmd.TokenId)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": cmd.TokenId,
		}).Error("failed to registry.OwnerOf")
		return nil, err
	}
	if !owner.Equals(cmd.Seller) {
		return nil, domain.ErrUnauthorized
	}

	if _, err := im.listingRepo.FindOne(ctx, cmd.TokenId); err == nil {
		return nil, domain.ErrAlreadyListed
	} else if !errors.Is(err, domain.ErrNotListed) {
		return nil, err
	}

	if !cmd.Price.IsPositive() {
		return nil, domain.ErrInvalidPrice
	}
	if cmd.Price.Denom != im.denom {
		return nil, domain.ErrUnsupportedDenom
	}

	if cmd.Expiry <= block.Height {
		return nil, domain.ErrExpiryInPast
	}
	if cmd.Expiry < block.Height+im.minDuration {
		return nil, domain.ErrExpiryTooShort
	}
	if cmd.Expiry > block.Height+im.maxDuration {
		return nil, domain.ErrExpiryTooLong
	}

	l := &listing.Listing{
		TokenId:   cmd.TokenId,
		Owner:     cmd.Seller,
		Price:     cmd.Price,
		Expiry:    cmd.Expiry,
		Approvals: []listing.Approval{},
	}
	if err := im.listingRepo.Upsert(ctx, l); err != nil {
		return nil, err
	}

	// the marketplace approves itself as spender so it can execute the
	// ownership transfer on the seller's behalf at sale time
	expires := domain.ExpireAtHeight(cmd.Expiry)
	l, err = im.updateApprovals(ctx, cmd.Seller, im.operator, cmd.TokenId, true, &expires, block)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": cmd.TokenId,
		}).Error("failed to grant marketplace approval")
		if delErr := im.listingRepo.Delete(ctx, cmd.TokenId); delErr != nil {
			ctx.WithFields(log.Fields{
				"err":     delErr,
				"tokenId": cmd.TokenId,
			}).Error("failed to roll back listing")
		}
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"tokenId": cmd.TokenId,
		"seller":  cmd.Seller,
		"price":   cmd.Price.String(),
		"expiry":  cmd.Expiry,
	}).Info("listed")
	return l, nil
}

// updateApprovals removes any approval held by spender and, when add is
// set, inserts the new one. Approve and Revoke share this path; the add
// flag is their only difference.
func (im *impl) updateApprovals(ctx ctx.Ctx, caller, spender domain.Address, tokenId domain.TokenId, add bool, expires *domain.Expiration, block *domain.BlockInfo) (*listing.Listing, error) {
	token, err := im.listingRepo.FindOne(ctx, tokenId)
	if err != nil {
		return nil, err
	}

	if err := im.authorizer.CanApprove(ctx, caller, token, block); err != nil {
		return nil, err
	}

	approvals := token.Approvals[:0]
	for _, apr := range token.Approvals {
		if !apr.Spender.Equals(spender) {
			approvals = append(approvals, apr)
		}
	}
	token.Approvals = approvals

	if add {
		exp := domain.ExpireNever()
		if expires != nil {
			exp = *expires
		}
		// reject already-lapsed grants as invalid
		if exp.IsExpired(block) {
			return nil, domain.ErrExpired
		}
		token.Approvals = append(token.Approvals, listing.Approval{
			Spender: spender,
			Expires: exp,
		})
	}

	if err := im.listingRepo.Upsert(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

func (im *impl) Approve(ctx ctx.Ctx, caller, spender domain.Address, tokenId domain.TokenId, expires *domain.Expiration) (*listing.Listing, error) {
	block, err := im.registry.HeadBlock(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to registry.HeadBlock")
		return nil, err
	}

	token, err := im.updateApprovals(ctx, caller, spender, tokenId, true, expires, block)
	if err != nil {
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"tokenId": tokenId,
		"caller":  caller,
		"spender": spender,
	}).Info("approved")
	return token, nil
}

func (im *impl) Revoke(ctx ctx.Ctx, caller, spender domain.Address, tokenId domain.TokenId) (*listing.Listing, error) {
	block, err := im.registry.HeadBlock(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to registry.HeadBlock")
		return nil, err
	}

	token, err := im.updateApprovals(ctx, caller, spender, tokenId, false, nil, block)
	if err != nil {
		return nil, err
	}

	ctx.WithFields(log.Fields{
		"tokenId": tokenId,
		"caller":  caller,
		"spender": spender,
	}).Info("revoked")
	return token, nil
}

func (im *impl) Buy(ctx ctx.Ctx, buyer domain.Address, tokenId domain.TokenId, funds domain.Coin) (*settlement.Settlement, error) {
	block, err := im.registry.HeadBlock(ctx)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to registry.HeadBlock")
		return nil, err
	}

	token, err := im.listingRepo.FindOne(ctx, tokenId)
	if err != nil {
		return nil, err
	}

	if !token.Price.Matches(funds) {
		return nil, domain.ErrInvalidFunds
	}

	if block.Height >= token.Expiry {
		return nil, domain.ErrExpired
	}

	// the marketplace executes the transfer with the approval obtained at
	// List time; the registry rejects the instruction without it
	if err := im.authorizer.CanTransfer(ctx, im.operator, token, block); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("marketplace transfer approval missing")
		return nil, err
	}

	return &settlement.Settlement{
		Id:      uuid.New().String(),
		TokenId: token.TokenId,
		Seller:  token.Owner,
		Buyer:   buyer,
		Price:   token.Price,
		FundTransfer: settlement.FundTransfer{
			From:   buyer,
			To:     token.Owner,
			Amount: token.Price,
		},
		OwnershipTransfer: settlement.OwnershipTransfer{
			TokenId:  token.TokenId,
			From:     token.Owner,
			To:       buyer,
			Operator: im.operator,
		},
	}, nil
}

func (im *impl) Unlist(ctx ctx.Ctx, caller domain.Address, tokenId domain.TokenId) error {
	token, err := im.listingRepo.FindOne(ctx, tokenId)
	if err != nil {
		return err
	}

	if !token.Owner.Equals(caller) {
		return domain.ErrUnauthorized
	}

	if err := im.listingRepo.Delete(ctx, tokenId); err != nil {
		return err
	}

	ctx.WithFields(log.Fields{
		"tokenId": tokenId,
		"caller":  caller,
	}).Info("unlisted")
	return nil
}

func (im *impl) GetListing(ctx ctx.Ctx, tokenId domain.TokenId) (*listing.Listing, error) {
	return im.listingRepo.FindOne(ctx, tokenId)
}

func (im *impl) GetAllListings(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	res, err := im.listingRepo.FindAll(ctx, opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to listingRepo.FindAll")
		return nil, err
	}
	return res, nil
}
