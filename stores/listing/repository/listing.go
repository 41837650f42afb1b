package repository

import (
	"encoding/json"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/listing"
)

type impl struct {
	store keyval.Store
}

func NewListingRepo(store keyval.Store) listing.Repo {
	return &impl{store}
}

func (im *impl) FindOne(ctx ctx.Ctx, tokenId domain.TokenId) (*listing.Listing, error) {
	val, err := im.store.Get(ctx, domain.TableListings, tokenId.String())
	if err == keyval.ErrNotFound {
		return nil, domain.ErrNotListed
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to store.Get")
		return nil, err
	}

	res := &listing.Listing{}
	if err := json.Unmarshal(val, res); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to unmarshal listing")
		return nil, err
	}
	return res, nil
}

func (im *impl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	rangeOpts := []keyval.RangeOptionsFunc{}
	if options.Start != nil {
		rangeOpts = append(rangeOpts, keyval.WithStart(options.Start.String()))
	}
	if options.End != nil {
		rangeOpts = append(rangeOpts, keyval.WithEnd(options.End.String()))
	}
	if options.Limit != nil {
		rangeOpts = append(rangeOpts, keyval.WithLimit(*options.Limit))
	}

	entries, err := im.store.RangeScan(ctx, domain.TableListings, rangeOpts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to store.RangeScan")
		return nil, err
	}

	res := []*listing.Listing{}
	for _, entry := range entries {
		l := &listing.Listing{}
		if err := json.Unmarshal(entry.Value, l); err != nil {
			ctx.WithFields(log.Fields{
				"err": err,
				"key": entry.Key,
			}).Error("failed to unmarshal listing")
			return nil, err
		}
		res = append(res, l)
	}
	return res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, l *listing.Listing) error {
	val, err := json.Marshal(l)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": l.TokenId,
		}).Error("failed to marshal listing")
		return err
	}

	if err := im.store.Put(ctx, domain.TableListings, l.TokenId.String(), val); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": l.TokenId,
		}).Error("failed to store.Put")
		return err
	}
	return nil
}

func (im *impl) Delete(ctx ctx.Ctx, tokenId domain.TokenId) error {
	if err := im.store.Delete(ctx, domain.TableListings, tokenId.String()); err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"tokenId": tokenId,
		}).Error("failed to store.Delete")
		return err
	}
	return nil
}
