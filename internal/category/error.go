package category

import "littlelemon-be/internal/apperr"

var (
	ErrCategoryNotFound = apperr.NotFound("category not found")
	ErrTitleRequired    = apperr.BadRequest("title is required")
	ErrSlugExists       = apperr.Conflict("category with this slug already exists")
)
