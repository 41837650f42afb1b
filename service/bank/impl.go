package bank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
	"github.com/shopspring/decimal"
)

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
}

func NewClient(cfg *ClientCfg) domain.FundsLedger {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
	}
}

type sendRequest struct {
	From   domain.Address  `json:"from"`
	To     domain.Address  `json:"to"`
	Amount decimal.Decimal `json:"amount"`
	Denom  string          `json:"denom"`
}

func (c *client) Send(ctx bCtx.Ctx, from, to domain.Address, amount domain.Coin) error {
	url := fmt.Sprintf("%s/transfers", c.endpoint)

	payload, err := json.Marshal(sendRequest{
		From:   from,
		To:     to,
		Amount: amount.Amount,
		Denom:  amount.Denom,
	})
	if err != nil {
		return err
	}

	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("client.Do failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("unexpected status code")
		return ErrStatusCodeNotOk
	}
	return nil
}
