package cart

import (
	"littlelemon-be/internal/apperr"

	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation = "23505"
	pgNumericOverflow = "22003"

	maxQuantity = 32767
)

var (
	ErrInvalidQuantity  = apperr.BadRequest("quantity must be between 1 and 32767")
	ErrMenuItemRequired = apperr.BadRequest("menuitem is required")
	ErrDuplicateItem    = apperr.Conflict("item already in cart")
	ErrLineNotFound     = apperr.NotFound("item is not in the cart")

	ErrLinePriceTooLarge = apperr.BadRequest("line price must not exceed 999999.99")
)

// MaxLinePrice is the largest amount carts.price holds.
var MaxLinePrice = decimal.RequireFromString("999999.99")
