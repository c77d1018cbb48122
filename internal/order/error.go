package order

import (
	"littlelemon-be/internal/apperr"

	"github.com/shopspring/decimal"
)

const pgNumericOverflow = "22003"

// MaxTotal is the largest amount orders.total holds.
var MaxTotal = decimal.RequireFromString("999999.99")

var (
	ErrOrderNotFound       = apperr.NotFound("order not found")
	ErrEmptyCart           = apperr.New(apperr.KindEmptyCart, "no items in the cart")
	ErrInvalidAssignee     = apperr.New(apperr.KindInvalidAssignee, "assignee is not a delivery crew member")
	ErrAssigneeNotFound    = apperr.NotFound("delivery crew user not found")
	ErrDeliveryCrewMissing = apperr.BadRequest("delivery_crew is required")
	ErrStatusMissing       = apperr.BadRequest("status is required")
	ErrOrderCompleted      = apperr.BadRequest("order already completed")
	ErrNotAssignedCrew     = apperr.Forbidden("you are not the delivery crew assigned to this order")
	ErrNotOwner            = apperr.Forbidden("you are not the owner of the order")
	ErrInvalidState        = apperr.BadRequest("status must be open or completed")
	ErrTotalTooLarge       = apperr.BadRequest("order total must not exceed 999999.99")
)
