package repository

import (
	"encoding/json"

	"github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/keyval"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/tokenmart/goapi/domain/delegation"
)

type impl struct {
	store keyval.Store
}

func NewDelegationRepo(store keyval.Store) delegation.Repo {
	return &impl{store}
}

// makeKey composes the (owner, operator) store key. Identities are
// lowercased so a delegation cannot be shadowed by casing.
func makeKey(id delegation.Id) string {
	return id.Owner.ToLowerStr() + "/" + id.Operator.ToLowerStr()
}

func (im *impl) FindOne(ctx ctx.Ctx, id delegation.Id) (*delegation.Delegation, error) {
	val, err := im.store.Get(ctx, domain.TableOperators, makeKey(id))
	if err == keyval.ErrNotFound {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"owner":    id.Owner,
			"operator": id.Operator,
		}).Error("failed to store.Get")
		return nil, err
	}

	res := &delegation.Delegation{}
	if err := json.Unmarshal(val, res); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"owner":    id.Owner,
			"operator": id.Operator,
		}).Error("failed to unmarshal delegation")
		return nil, err
	}
	return res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, d *delegation.Delegation) error {
	val, err := json.Marshal(d)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"owner":    d.Owner,
			"operator": d.Operator,
		}).Error("failed to marshal delegation")
		return err
	}

	if err := im.store.Put(ctx, domain.TableOperators, makeKey(d.ToId()), val); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"owner":    d.Owner,
			"operator": d.Operator,
		}).Error("failed to store.Put")
		return err
	}
	return nil
}

func (im *impl) Delete(ctx ctx.Ctx, id delegation.Id) error {
	if err := im.store.Delete(ctx, domain.TableOperators, makeKey(id)); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"owner":    id.Owner,
			"operator": id.Operator,
		}).Error("failed to store.Delete")
		return err
	}
	return nil
}
