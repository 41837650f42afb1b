package domain

import (
	"time"
)

// Expiration describes when a grant lapses: at an absolute block height, at
// an absolute time, or never. The zero value never expires.
type Expiration struct {
	AtHeight *BlockHeight `json:"atHeight,omitempty"`
	AtTime   *time.Time   `json:"atTime,omitempty"`
}

func ExpireNever() Expiration {
	return Expiration{}
}

func ExpireAtHeight(h BlockHeight) Expiration {
	return Expiration{AtHeight: &h}
}

func ExpireAtTime(t time.Time) Expiration {
	return Expiration{AtTime: &t}
}

// IsExpired reports whether the grant has lapsed relative to the given block.
func (e Expiration) IsExpired(block *BlockInfo) bool {
	if e.AtHeight != nil {
		return block.Height >= *e.AtHeight
	}
	if e.AtTime != nil {
		return !block.Time.Before(*e.AtTime)
	}
	return false
}

func (e Expiration) IsNever() bool {
	return e.AtHeight == nil && e.AtTime == nil
}
