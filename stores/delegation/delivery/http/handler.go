package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/delivery"
	"github.com/tokenmart/goapi/base/validator"
	"github.com/tokenmart/goapi/domain"
	dDelegation "github.com/tokenmart/goapi/domain/delegation"
)

type handler struct {
	delegation dDelegation.UseCase
}

func New(e *echo.Echo, _delegation dDelegation.UseCase) {
	h := &handler{_delegation}

	g := e.Group("/marketplace")
	g.POST("/operators", h.approveAll)
	g.DELETE("/operators/:operator", h.revokeAll)
}

func (h *handler) approveAll(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Owner    string              `json:"owner" validate:"required"`
		Operator string              `json:"operator" validate:"required"`
		AtHeight *domain.BlockHeight `json:"atHeight"`
		AtTime   *time.Time          `json:"atTime"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}
	if !validator.IsValidIdentity(p.Owner) || !validator.IsValidIdentity(p.Operator) {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, domain.ErrInvalidIdentity)
	}

	var expires *domain.Expiration
	if p.AtHeight != nil || p.AtTime != nil {
		expires = &domain.Expiration{AtHeight: p.AtHeight, AtTime: p.AtTime}
	}

	res, err := h.delegation.ApproveAll(ctx, domain.Address(p.Owner), domain.Address(p.Operator), expires)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) revokeAll(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Owner string `json:"owner" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	operator := domain.Address(_ctx.Param("operator"))
	if err := h.delegation.RevokeAll(ctx, domain.Address(p.Owner), operator); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
