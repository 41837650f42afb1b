package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tokenmart/goapi/domain"
)

type JsonResponseStatus string

const (
	JsonResponseStatusSuccess JsonResponseStatus = "success"
	JsonResponseStatusFail    JsonResponseStatus = "fail"
)

type JsonResponse struct {
	Data   interface{}        `json:"data"`
	Status JsonResponseStatus `json:"status"`
}

func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		switch {
		case errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrNotListed):
			status = http.StatusNotFound
		case errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrExpired):
			status = http.StatusForbidden
		case errors.Is(err, domain.ErrAlreadyListed):
			status = http.StatusConflict
		case errors.Is(err, domain.ErrBadParamInput),
			errors.Is(err, domain.ErrInvalidPrice),
			errors.Is(err, domain.ErrUnsupportedDenom),
			errors.Is(err, domain.ErrInvalidFunds),
			errors.Is(err, domain.ErrInvalidIdentity),
			errors.Is(err, domain.ErrExpiryInPast),
			errors.Is(err, domain.ErrExpiryTooShort),
			errors.Is(err, domain.ErrExpiryTooLong):
			status = http.StatusBadRequest
		}
		data = err.Error()
	}

	if status >= 400 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusFail})
	}

	if status >= 200 && status < 300 {
		return c.JSON(status, JsonResponse{data, JsonResponseStatusSuccess})
	}

	return c.JSON(status, data)
}
