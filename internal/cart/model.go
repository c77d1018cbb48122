package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending quantity of one menu item for one customer. The
// unit price is a snapshot taken when the line was added.
type CartLine struct {
	ID            uint            `json:"id"`
	UserID        uint            `json:"user"`
	MenuItemID    uint            `json:"menuitem_id"`
	MenuItemTitle string          `json:"menuitem"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Price         decimal.Decimal `json:"price"`
	CreatedAt     time.Time       `json:"-"`
}

// LinePrice is quantity × unit price.
func LinePrice(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Total sums the line prices.
func Total(lines []*CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price)
	}
	return total
}
