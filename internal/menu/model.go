package menu

import (
	"littlelemon-be/internal/category"

	"github.com/shopspring/decimal"
)

type MenuItem struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Price      decimal.Decimal   `json:"price"`
	Featured   bool              `json:"featured"`
	CategoryID uint              `json:"category_id"`
	Category   category.Category `json:"category"`
}

type Ordering string

const (
	OrderByID        Ordering = ""
	OrderByPrice     Ordering = "price"
	OrderByPriceDesc Ordering = "-price"
	OrderByTitle     Ordering = "title"
	OrderByTitleDesc Ordering = "-title"
)

type ListParams struct {
	Search     string
	Ordering   Ordering
	CategoryID uint
	Limit      int
	Page       int
}

// MenuItemInput carries every mutable field; used by create and full update.
type MenuItemInput struct {
	Title      string
	Price      decimal.Decimal
	Featured   bool
	CategoryID uint
}

// MenuItemPatch updates only the non-nil fields.
type MenuItemPatch struct {
	Title      *string
	Price      *decimal.Decimal
	Featured   *bool
	CategoryID *uint
}

func (p MenuItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Price == nil && p.Featured == nil && p.CategoryID == nil
}
