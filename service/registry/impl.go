package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	bCtx "github.com/tokenmart/goapi/base/ctx"
	"github.com/tokenmart/goapi/base/log"
	"github.com/tokenmart/goapi/domain"
)

type client struct {
	client   http.Client
	timeout  time.Duration
	endpoint string
}

func NewClient(cfg *ClientCfg) domain.TokenRegistry {
	return &client{
		client:   cfg.HttpClient,
		timeout:  cfg.Timeout,
		endpoint: cfg.Endpoint,
	}
}

type ownerOfResponse struct {
	Owner domain.Address `json:"owner"`
}

func (c *client) OwnerOf(ctx bCtx.Ctx, tokenId domain.TokenId) (domain.Address, error) {
	url := fmt.Sprintf("%s/tokens/%s/owner", c.endpoint, tokenId)

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.do failed")
		return "", err
	}

	res := ownerOfResponse{}
	if err := json.Unmarshal(body, &res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("json.Unmarshal failed")
		return "", err
	}
	return res.Owner, nil
}

type transferRequest struct {
	From     domain.Address `json:"from"`
	To       domain.Address `json:"to"`
	Operator domain.Address `json:"operator"`
}

func (c *client) Transfer(ctx bCtx.Ctx, tokenId domain.TokenId, from, to, operator domain.Address) error {
	url := fmt.Sprintf("%s/tokens/%s/transfer", c.endpoint, tokenId)

	payload, err := json.Marshal(transferRequest{From: from, To: to, Operator: operator})
	if err != nil {
		return err
	}

	if _, err := c.do(ctx, http.MethodPost, url, payload); err != nil {
		ctx.WithFields(log.Fields{
			"url":     url,
			"tokenId": tokenId,
			"err":     err,
		}).Error("c.do failed")
		return err
	}
	return nil
}

func (c *client) HeadBlock(ctx bCtx.Ctx) (*domain.BlockInfo, error) {
	url := fmt.Sprintf("%s/chain/head", c.endpoint)

	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("c.do failed")
		return nil, err
	}

	res := &domain.BlockInfo{}
	if err := json.Unmarshal(body, res); err != nil {
		ctx.WithFields(log.Fields{
			"url": url,
			"err": err,
		}).Error("json.Unmarshal failed")
		return nil, err
	}
	return res, nil
}

func (c *client) do(ctx bCtx.Ctx, method, url string, payload []byte) ([]byte, error) {
	ctx, cancel := bCtx.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		ctx.WithFields(log.Fields{
			"url":        url,
			"statusCode": resp.StatusCode,
		}).Error("unexpected status code")
		return nil, ErrStatusCodeNotOk
	}
	return io.ReadAll(resp.Body)
}
