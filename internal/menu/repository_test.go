package menu

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menuColumns = []string{"id", "title", "price", "featured", "category_id", "c_id", "c_slug", "c_title"}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Defaults", func(t *testing.T) {
		rows := sqlmock.NewRows(menuColumns).
			AddRow(1, "Greek Salad", "12.50", false, 2, 2, "starters", "Starters")

		mock.ExpectQuery("SELECT .* FROM menu_items m JOIN categories c .* ORDER BY m.id ASC LIMIT \\$1 OFFSET \\$2").
			WithArgs(20, 0).
			WillReturnRows(rows)

		items, err := repo.List(context.Background(), ListParams{})
		assert.NoError(t, err)
		require.Len(t, items, 1)
		assert.True(t, decimal.RequireFromString("12.50").Equal(items[0].Price))
		assert.Equal(t, "Starters", items[0].Category.Title)
	})

	t.Run("Search category ordering and paging", func(t *testing.T) {
		mock.ExpectQuery("WHERE m.title ILIKE \\$1 AND m.category_id = \\$2 ORDER BY m.price DESC, m.id ASC LIMIT \\$3 OFFSET \\$4").
			WithArgs("%salad%", uint(2), 100, 100).
			WillReturnRows(sqlmock.NewRows(menuColumns))

		items, err := repo.List(context.Background(), ListParams{
			Search:     "salad",
			CategoryID: 2,
			Ordering:   OrderByPriceDesc,
			Limit:      500,
			Page:       2,
		})
		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Invalid ordering", func(t *testing.T) {
		_, err := repo.List(context.Background(), ListParams{Ordering: "calories"})
		assert.ErrorIs(t, err, ErrInvalidOrdering)
	})

	t.Run("DB error", func(t *testing.T) {
		mock.ExpectQuery("SELECT .* FROM menu_items").WillReturnError(errors.New("db error"))

		_, err := repo.List(context.Background(), ListParams{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Missing", func(t *testing.T) {
		mock.ExpectQuery("WHERE m.id = \\$1").
			WithArgs(uint(42)).
			WillReturnRows(sqlmock.NewRows(menuColumns))

		m, err := repo.GetByID(context.Background(), 42)
		assert.NoError(t, err)
		assert.Nil(t, m)
	})
}

func TestRepository_CreateUpdateDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	input := MenuItemInput{Title: "Bruschetta", Price: decimal.RequireFromString("7.00"), CategoryID: 2}

	t.Run("Create", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO menu_items").
			WithArgs("Bruschetta", sqlmock.AnyArg(), false, uint(2)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectQuery("WHERE m.id = \\$1").
			WithArgs(uint(9)).
			WillReturnRows(sqlmock.NewRows(menuColumns).AddRow(9, "Bruschetta", "7.00", false, 2, 2, "starters", "Starters"))

		m, err := repo.Create(context.Background(), input)
		assert.NoError(t, err)
		assert.Equal(t, uint(9), m.ID)
	})

	t.Run("Create price overflow", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO menu_items").
			WillReturnError(&pq.Error{Code: "22003"})

		_, err := repo.Create(context.Background(), input)
		assert.EqualError(t, err, ErrPriceTooLarge.Error())
	})

	t.Run("Update price overflow", func(t *testing.T) {
		mock.ExpectExec("UPDATE menu_items").
			WillReturnError(&pq.Error{Code: "22003"})

		_, err := repo.Update(context.Background(), 9, input)
		assert.EqualError(t, err, ErrPriceTooLarge.Error())
	})

	t.Run("Update missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE menu_items").
			WithArgs("Bruschetta", sqlmock.AnyArg(), false, uint(2), uint(77)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(context.Background(), 77, input)
		assert.ErrorIs(t, err, ErrMenuItemNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM menu_items WHERE id = \\$1").
			WithArgs(uint(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 9))
	})

	t.Run("Delete missing", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM menu_items").
			WithArgs(uint(10)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 10), ErrMenuItemNotFound)
	})

	t.Run("Delete referenced by orders", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM menu_items").
			WithArgs(uint(11)).
			WillReturnError(&pq.Error{Code: "23503"})

		assert.ErrorIs(t, repo.Delete(context.Background(), 11), ErrMenuItemInUse)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
