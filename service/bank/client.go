// Package bank talks to the funds ledger that executes balance transfers.
package bank

import (
	"errors"
	"net/http"
	"time"
)

var (
	ErrStatusCodeNotOk = errors.New("http.status != 200")
)

type ClientCfg struct {
	HttpClient http.Client
	Timeout    time.Duration
	Endpoint   string
}
