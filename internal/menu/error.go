package menu

import (
	"littlelemon-be/internal/apperr"

	"github.com/shopspring/decimal"
)

// MaxPrice is the largest amount menu_items.price holds.
var MaxPrice = decimal.RequireFromString("9999.99")

var (
	ErrMenuItemNotFound = apperr.NotFound("menu item not found")
	ErrTitleRequired    = apperr.BadRequest("title is required")
	ErrInvalidPrice     = apperr.BadRequest("price must be a positive amount")
	ErrPriceTooLarge    = apperr.BadRequest("price must not exceed 9999.99")
	ErrInvalidCategory  = apperr.BadRequest("category does not exist")
	ErrInvalidOrdering  = apperr.BadRequest("unsupported ordering field")
	ErrNothingToUpdate  = apperr.BadRequest("no fields to update")
	ErrMenuItemInUse    = apperr.Conflict("menu item is referenced by placed orders")
)
