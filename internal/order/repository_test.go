package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderCols = []string{
	"id", "user_id", "restaurant_id", "items", "total", "status", "delivery_address",
	"created_at", "updated_at", "r_name", "u_name", "u_email", "u_contact", "u_address",
}

const pizzaItems = `[{"name":"Pizza","price":200,"quantity":2}]`

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID, restID, orderID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	o := Order{
		UserID:          userID,
		RestaurantID:    restID,
		Items:           LineItems{{Name: "Pizza", Price: 200, Quantity: 2}},
		Total:           400,
		Status:          StatusPending,
		DeliveryAddress: "Main St 1",
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders \(user_id, restaurant_id, items, total, status, delivery_address\)`).
			WithArgs(userID, restID, []byte(pizzaItems), 400.0, "Pending", "Main St 1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(orderID.String(), now, now))

		created, err := repo.Create(ctx, o)
		require.NoError(t, err)
		assert.Equal(t, orderID, created.ID)
		assert.Equal(t, StatusPending, created.Status)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO orders`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, o)
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID, restID, orderID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	t.Run("Enriched", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o LEFT JOIN restaurants r ON r.id = o.restaurant_id LEFT JOIN users u ON u.id = o.user_id WHERE o.id = \$1`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(orderID.String(), userID.String(), restID.String(), pizzaItems, 400.0, "Pending", "Main St 1",
					now, now, "Luigi", "John", "john@example.com", "0812", "Main St 1"))

		o, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, "Luigi", o.RestaurantName)
		require.NotNil(t, o.Requester)
		assert.Equal(t, "John", o.Requester.Name)
		assert.Equal(t, "john@example.com", o.Requester.Email)
		assert.Equal(t, 2, o.Items[0].Quantity)
	})

	t.Run("Dangling References", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o`).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(orderID.String(), userID.String(), restID.String(), pizzaItems, 400.0, "Delivered", "",
					now, now, nil, nil, nil, nil, nil))

		o, err := repo.GetByID(ctx, orderID)
		require.NoError(t, err)
		assert.Equal(t, "Deleted Restaurant", o.RestaurantName)
		assert.Equal(t, "Unknown", o.Requester.Name)
		assert.Equal(t, userID, o.Requester.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders o`).
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(ctx, orderID)
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID, restID, orderID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	t.Run("Compare And Set", func(t *testing.T) {
		mock.ExpectQuery(`WITH o AS \( UPDATE orders SET status = \$3, updated_at = NOW\(\) WHERE id = \$1 AND status = \$2 RETURNING \* \) SELECT .* FROM o o`).
			WithArgs(orderID, "Pending", "Accepted").
			WillReturnRows(sqlmock.NewRows(orderCols).
				AddRow(orderID.String(), userID.String(), restID.String(), pizzaItems, 400.0, "Accepted", "Main St 1",
					now, now, "Luigi", "John", "john@example.com", "", ""))

		o, err := repo.UpdateStatus(ctx, orderID, StatusPending, StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, o.Status)
	})

	t.Run("Lost Race", func(t *testing.T) {
		mock.ExpectQuery(`WITH o AS`).
			WithArgs(orderID, "Pending", "Accepted").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateStatus(ctx, orderID, StatusPending, StatusAccepted)
		assert.ErrorIs(t, err, ErrStatusChanged)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Lists(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	userID, restID := uuid.New(), uuid.New()
	newer, older := time.Now(), time.Now().Add(-time.Hour)

	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows(orderCols).
			AddRow(uuid.New().String(), userID.String(), restID.String(), pizzaItems, 400.0, "Pending", "",
				newer, newer, nil, "John", "", "", "").
			AddRow(uuid.New().String(), userID.String(), restID.String(), pizzaItems, 400.0, "Delivered", "",
				older, older, "Luigi", "John", "", "", "")
	}

	mock.ExpectQuery(`WHERE o.user_id = \$1 ORDER BY o.created_at DESC`).
		WithArgs(userID).
		WillReturnRows(rows())

	orders, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "Deleted Restaurant", orders[0].RestaurantName)
	assert.Equal(t, "Luigi", orders[1].RestaurantName)

	mock.ExpectQuery(`WHERE o.restaurant_id = \$1 ORDER BY o.created_at DESC`).
		WithArgs(restID).
		WillReturnRows(rows())

	orders, err = repo.ListByRestaurant(ctx, restID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	mock.ExpectQuery(`WHERE o.user_id = \$1`).
		WithArgs(userID).
		WillReturnError(errors.New("db error"))

	_, err = repo.ListByUser(ctx, userID)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
