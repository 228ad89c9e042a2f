package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wizariya/store-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func orderRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "student_name", "telegram_username", "phone_number", "email",
		"contact_method", "contact_value", "client_key", "grade", "purchase_type",
		"selected_subjects", "card_numbers", "total_amount", "status", "admin_notes",
		"created_at", "confirmed_at",
	})
}

func TestOrderRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec("INSERT INTO orders").
		WithArgs(
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	order := &models.Order{
		StudentName:  "Ahmed",
		Grade:        models.GradeSixthPrimary,
		PurchaseType: models.PurchaseSingleSubject,
		TotalAmount:  20,
		Status:       models.OrderStatusPending,
	}
	err := repo.Create(context.Background(), order)
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryListWithStatusFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	rows := orderRows().AddRow(
		"o1", "Ahmed", "", "", "", nil, nil, nil, "sixth_primary", "single",
		"{math}", "{1234}", 10, "confirmed", "", time.Now(), time.Now(),
	)
	mock.ExpectQuery(`(?s)SELECT .+ FROM orders WHERE 1=1 AND status = \$1 ORDER BY created_at DESC LIMIT 100 OFFSET 0`).
		WithArgs(models.OrderStatusConfirmed).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE 1=1 AND status = \$1`).
		WithArgs(models.OrderStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	status := models.OrderStatusConfirmed
	orders, total, err := repo.List(context.Background(), models.OrderFilter{Status: &status})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, []string{"math"}, []string(orders[0].SelectedSubjects))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryListUnfiltered(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM orders WHERE 1=1 ORDER BY created_at DESC LIMIT 100 OFFSET 0`).
		WillReturnRows(orderRows())
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM orders WHERE 1=1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	orders, total, err := repo.List(context.Background(), models.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectQuery(`(?s)SELECT .+ FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryUpdateStatusConfirm(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	now := time.Now().UTC()
	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WithArgs(models.OrderStatusConfirmed, nil, now, "o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatus(context.Background(), "o1", models.OrderStatusConfirmed, nil, &now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryUpdateStatusNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec(`UPDATE orders SET status = \$1`).
		WithArgs(models.OrderStatusRejected, nil, nil, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.OrderStatusRejected, nil, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewOrderRepository(db)

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs("o1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), "o1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
