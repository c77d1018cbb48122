package order

import (
	"time"

	"littlelemon-be/internal/cart"
)

// FromCart builds an unsaved open order from cart lines. Quantities and
// unit prices are copied, never re-read from the menu.
func FromCart(userID uint, lines []*cart.CartLine, placedAt time.Time) *Order {
	o := &Order{
		UserID: userID,
		Status: false,
		Total:  cart.Total(lines),
		Date:   placedAt,
		Items:  make([]*OrderItem, 0, len(lines)),
	}

	for _, l := range lines {
		o.Items = append(o.Items, &OrderItem{
			MenuItemID:    l.MenuItemID,
			MenuItemTitle: l.MenuItemTitle,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Price:         cart.LinePrice(l.Quantity, l.UnitPrice),
		})
	}

	return o
}
