package cache

import (
	"errors"
	"strings"
	"time"

	"github.com/tokenmart/goapi/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

// high order cache service
type Service interface {
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

type ServiceConfig struct {
	Ttl time.Duration
	Pfx string
	// Size is the freecache capacity in MB
	Size        int
	Serialize   Serializer
	Deserialize Deserializer
}

// Key joins key components with the cache delimiter
func Key(components ...string) string {
	return strings.Join(components, ":")
}
