package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExpiration(t *testing.T) {
	req := require.New(t)

	t0 := time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC)
	block := &BlockInfo{Height: 100, Time: t0}

	cases := []struct {
		name    string
		exp     Expiration
		expired bool
	}{
		{name: "zero value never expires", exp: Expiration{}, expired: false},
		{name: "never", exp: ExpireNever(), expired: false},
		{name: "height in future", exp: ExpireAtHeight(101), expired: false},
		{name: "height at current", exp: ExpireAtHeight(100), expired: true},
		{name: "height in past", exp: ExpireAtHeight(99), expired: true},
		{name: "time in future", exp: ExpireAtTime(t0.Add(time.Second)), expired: false},
		{name: "time at current", exp: ExpireAtTime(t0), expired: true},
		{name: "time in past", exp: ExpireAtTime(t0.Add(-time.Second)), expired: true},
	}

	for _, c := range cases {
		req.Equal(c.expired, c.exp.IsExpired(block), c.name)
	}

	req.True(ExpireNever().IsNever())
	req.False(ExpireAtHeight(1).IsNever())
}
