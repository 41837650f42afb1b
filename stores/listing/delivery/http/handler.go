package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/delivery"
	"github.com/tokenmart/goapi/base/ptr"
	"github.com/tokenmart/goapi/base/validator"
	"github.com/tokenmart/goapi/domain"
	dListing "github.com/tokenmart/goapi/domain/listing"
	dSettlement "github.com/tokenmart/goapi/domain/settlement"
	"github.com/tokenmart/goapi/service/cache"
)

const maxPageSize = 500

type handler struct {
	listing    dListing.UseCase
	settlement dSettlement.UseCase
	cache      cache.Service
}

func New(e *echo.Echo, _listing dListing.UseCase, _settlement dSettlement.UseCase) {
	h := &handler{
		listing:    _listing,
		settlement: _settlement,
		cache: cache.New(cache.ServiceConfig{
			Ttl:  5 * time.Second,
			Pfx:  "listings",
			Size: 8,
		}),
	}

	g := e.Group("/marketplace")
	g.GET("/listings", h.getListings)
	g.POST("/listings", h.list)
	g.GET("/listings/:tokenId", h.getListing)
	g.DELETE("/listings/:tokenId", h.unlist)
	g.POST("/listings/:tokenId/buy", h.buy)
	g.POST("/listings/:tokenId/approvals", h.approve)
	g.DELETE("/listings/:tokenId/approvals/:spender", h.revoke)
}

type coinParams struct {
	Denom  string          `json:"denom" validate:"required"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func (p *coinParams) toCoin() domain.Coin {
	return domain.Coin{Denom: p.Denom, Amount: p.Amount}
}

type expirationParams struct {
	AtHeight *domain.BlockHeight `json:"atHeight"`
	AtTime   *time.Time          `json:"atTime"`
}

func (p *expirationParams) toExpiration() *domain.Expiration {
	if p == nil {
		return nil
	}
	return &domain.Expiration{AtHeight: p.AtHeight, AtTime: p.AtTime}
}

func (h *handler) list(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Seller     string             `json:"seller" validate:"required"`
		TokenId    string             `json:"tokenId" validate:"required"`
		Price      coinParams         `json:"price" validate:"required"`
		Expiry     domain.BlockHeight `json:"expiry" validate:"required"`
		MinimumBid string             `json:"minimumBid"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}
	if !validator.IsValidIdentity(p.Seller) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidIdentity)
	}

	cmd := &dListing.ListCommand{
		Seller:     domain.Address(p.Seller),
		TokenId:    domain.TokenId(p.TokenId),
		Price:      p.Price.toCoin(),
		Expiry:     p.Expiry,
		MinimumBid: p.MinimumBid,
	}

	res, err := h.listing.List(ctx, cmd)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, res)
}

func (h *handler) unlist(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Caller string `json:"caller" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	tokenId := domain.TokenId(_ctx.Param("tokenId"))
	if err := h.listing.Unlist(ctx, domain.Address(p.Caller), tokenId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) buy(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Buyer string     `json:"buyer" validate:"required"`
		Funds coinParams `json:"funds" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}
	if !validator.IsValidIdentity(p.Buyer) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidIdentity)
	}

	tokenId := domain.TokenId(_ctx.Param("tokenId"))

	stl, err := h.listing.Buy(ctx, domain.Address(p.Buyer), tokenId, p.Funds.toCoin())
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}

	if err := h.settlement.Settle(ctx, stl); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, stl)
}

func (h *handler) approve(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Caller  string            `json:"caller" validate:"required"`
		Spender string            `json:"spender" validate:"required"`
		Expires *expirationParams `json:"expires"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}
	if !validator.IsValidIdentity(p.Spender) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidIdentity)
	}

	tokenId := domain.TokenId(_ctx.Param("tokenId"))

	res, err := h.listing.Approve(ctx, domain.Address(p.Caller), domain.Address(p.Spender), tokenId, p.Expires.toExpiration())
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) revoke(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Caller string `json:"caller" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	tokenId := domain.TokenId(_ctx.Param("tokenId"))
	spender := domain.Address(_ctx.Param("spender"))

	res, err := h.listing.Revoke(ctx, domain.Address(p.Caller), spender, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getListing(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	tokenId := domain.TokenId(_ctx.Param("tokenId"))

	res, err := h.listing.GetListing(ctx, tokenId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getListings(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Start *string `query:"start"`
		End   *string `query:"end"`
		Limit *int    `query:"limit"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if p.Limit == nil || *p.Limit <= 0 || *p.Limit > maxPageSize {
		p.Limit = ptr.Int(maxPageSize)
	}

	opts := []dListing.FindAllOptionsFunc{}
	key := ""
	if p.Start != nil {
		opts = append(opts, dListing.WithStart(domain.TokenId(*p.Start)))
		key = cache.Key(key, "start", *p.Start)
	}
	if p.End != nil {
		opts = append(opts, dListing.WithEnd(domain.TokenId(*p.End)))
		key = cache.Key(key, "end", *p.End)
	}
	if p.Limit != nil {
		opts = append(opts, dListing.WithLimit(*p.Limit))
		key = cache.Key(key, "limit", strconv.Itoa(*p.Limit))
	}

	res := []*dListing.Listing{}
	err := h.cache.GetByFunc(ctx, key, &res, func() (interface{}, error) {
		listings, err := h.listing.GetAllListings(ctx, opts...)
		if err != nil {
			return nil, err
		}
		return &listings, nil
	})
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}
