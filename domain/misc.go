package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Address is the canonical identity of a principal as issued by the
// asset-ownership registry. It is opaque to this module.
type Address string

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// TokenId is the unique identifier of one asset in the registry.
type TokenId string

func (i TokenId) String() string {
	return string(i)
}

// BlockHeight is the logical clock of the host ledger.
type BlockHeight uint64

// BlockInfo is a snapshot of the host ledger clock, taken once per command.
type BlockInfo struct {
	Height BlockHeight `json:"height"`
	Time   time.Time   `json:"time"`
}

// Coin is a single-denomination amount.
type Coin struct {
	Denom  string          `json:"denom"`
	Amount decimal.Decimal `json:"amount"`
}

func NewCoin(denom string, amount int64) Coin {
	return Coin{Denom: denom, Amount: decimal.NewFromInt(amount)}
}

func (c Coin) IsPositive() bool {
	return c.Amount.IsPositive()
}

// Matches reports whether other is the exact same denom and amount.
// Settlement accepts no partial payment, no change-making and no overpayment.
func (c Coin) Matches(other Coin) bool {
	return c.Denom == other.Denom && c.Amount.Equal(other.Amount)
}

func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}
