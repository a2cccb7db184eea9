package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestRepositoryCreate_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	o := &Order{
		ID:          "order-123",
		UserID:      "user-1",
		TotalAmount: 40,
		CreatedAt:   now,
		Lines: []Line{
			{ProductID: "pA", Size: "M", Quantity: 2, Price: 10},
			{ProductID: "pB", Size: "L", Quantity: 1, Price: 20},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("order-123", "user-1", 40.0, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), "order-123", "pA", "M", 2, 10.0, 0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), "order-123", "pB", "L", 1, 20.0, 1).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_AssignsIDAndTimestamp(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	o := &Order{UserID: "user-1", TotalAmount: 5}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs(pgxmock.AnyArg(), "user-1", 5.0, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	require.NotEmpty(t, o.ID)
	require.False(t, o.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryCreate_LineInsertErrorRollsBack(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	o := &Order{
		ID:          "order-err",
		UserID:      "user-1",
		TotalAmount: 10,
		CreatedAt:   now,
		Lines:       []Line{{ProductID: "pA", Size: "M", Quantity: 1, Price: 10}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orders`).
		WithArgs("order-err", "user-1", 10.0, now).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(pgxmock.AnyArg(), "order-err", "pA", "M", 1, 10.0, 0).
		WillReturnError(errors.New("item insert failed"))
	mock.ExpectRollback()

	require.Error(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, user_id, total_amount, created_at FROM orders`).
		WithArgs("order-123").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "total_amount", "created_at"}).
			AddRow("order-123", "user-1", 40.0, now))
	mock.ExpectQuery(`SELECT product_id, size, quantity, price FROM order_items`).
		WithArgs("order-123").
		WillReturnRows(pgxmock.NewRows([]string{"product_id", "size", "quantity", "price"}).
			AddRow("pA", "M", 2, 10.0).
			AddRow("pB", "L", 1, 20.0))

	o, err := repo.GetByID(context.Background(), "order-123")
	require.NoError(t, err)
	require.Equal(t, 40.0, o.TotalAmount)
	require.Equal(t, []Line{
		{ProductID: "pA", Size: "M", Quantity: 2, Price: 10},
		{ProductID: "pB", Size: "L", Quantity: 1, Price: 20},
	}, o.Lines)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery(`SELECT id, user_id, total_amount, created_at FROM orders`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
