// Package registry talks to the asset-ownership registry, the source of
// truth for who currently owns a token.
package registry

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
