package usecase

import (
	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/base/metrics"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/listing"
	"github.com/tokenmart/goapi/domain/settlement"
)

type SettlementUseCaseCfg struct {
	ListingRepo listing.Repo
	Registry    domain.TokenRegistry
	Bank        domain.FundsLedger
}

type impl struct {
	listingRepo listing.Repo
	registry    domain.TokenRegistry
	bank        domain.FundsLedger
	met         metrics.Service
}

func New(cfg *SettlementUseCaseCfg) settlement.UseCase {
	return &impl{
		listingRepo: cfg.ListingRepo,
		registry:    cfg.Registry,
		bank:        cfg.Bank,
		met:         metrics.New("settlement"),
	}
}

// Settle applies the settlement in the order that keeps the compensation
// surface smallest: ownership transfer, then funds, then listing deletion.
// The listing record is only deleted once both external instructions are
// confirmed; earlier failures leave it purchasable again.
func (im *impl) Settle(ctx ctx.Ctx, s *settlement.Settlement) error {
	defer im.met.BumpTime("settle.time").End()

	ot := s.OwnershipTransfer
	if err := im.registry.Transfer(ctx, ot.TokenId, ot.From, ot.To, ot.Operator); err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"settlementId": s.Id,
			"tokenId":      s.TokenId,
		}).Error("failed to registry.Transfer")
		im.met.BumpSum("settle.err", 1, "stage", "ownership")
		return err
	}

	ft := s.FundTransfer
	if err := im.bank.Send(ctx, ft.From, ft.To, ft.Amount); err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"settlementId": s.Id,
			"tokenId":      s.TokenId,
		}).Error("failed to bank.Send")
		im.met.BumpSum("settle.err", 1, "stage", "funds")

		// hand the token back; the fund transfer never happened so the
		// listing stays live
		if cErr := im.registry.Transfer(ctx, ot.TokenId, ot.To, ot.From, ot.Operator); cErr != nil {
			ctx.WithFields(log.Fields{
				"err":          cErr,
				"settlementId": s.Id,
				"tokenId":      s.TokenId,
			}).Error("failed to compensate ownership transfer")
			im.met.BumpSum("settle.compensation.err", 1)
		}
		return err
	}

	if err := im.listingRepo.Delete(ctx, s.TokenId); err != nil {
		ctx.WithFields(log.Fields{
			"err":          err,
			"settlementId": s.Id,
			"tokenId":      s.TokenId,
		}).Error("failed to listingRepo.Delete")
		im.met.BumpSum("settle.err", 1, "stage", "delete")
		return err
	}

	ctx.WithFields(log.Fields{
		"settlementId": s.Id,
		"tokenId":      s.TokenId,
		"seller":       s.Seller,
		"buyer":        s.Buyer,
		"price":        s.Price.String(),
	}).Info("settled")
	im.met.BumpSum("settle.ok", 1)
	return nil
}
