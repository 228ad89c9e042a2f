package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wizariya/store-api/internal/models"
)

const orderColumns = `id, student_name, telegram_username, phone_number, email, contact_method, contact_value, client_key,
        grade, purchase_type, selected_subjects, card_numbers, total_amount, status, admin_notes, created_at, confirmed_at`

// OrderRepository handles persistence for customer orders.
type OrderRepository struct {
	db *sqlx.DB
}

// NewOrderRepository creates a new repository instance.
func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a canonical order.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	if order.SelectedSubjects == nil {
		order.SelectedSubjects = []string{}
	}
	if order.CardNumbers == nil {
		order.CardNumbers = []string{}
	}

	const query = `INSERT INTO orders (id, student_name, telegram_username, phone_number, email, contact_method, contact_value, client_key,
        grade, purchase_type, selected_subjects, card_numbers, total_amount, status, admin_notes, created_at, confirmed_at)
        VALUES (:id, :student_name, :telegram_username, :phone_number, :email, :contact_method, :contact_value, :client_key,
        :grade, :purchase_type, :selected_subjects, :card_numbers, :total_amount, :status, :admin_notes, :created_at, :confirmed_at)`
	if _, err := r.db.NamedExecContext(ctx, query, order); err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// List returns orders newest-first, optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	base := "FROM orders WHERE 1=1"
	var args []interface{}

	if filter.Status != nil {
		base += fmt.Sprintf(" AND status = $%d", len(args)+1)
		args = append(args, *filter.Status)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 100
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", orderColumns, base, size, offset)
	orders := []models.Order{}
	if err := r.db.SelectContext(ctx, &orders, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	return orders, total, nil
}

// FindByID returns an order by id.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)
	var order models.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus applies a status change, optional admin notes and the
// confirmation timestamp in a single statement. Returns sql.ErrNoRows when
// the id is unknown.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, adminNotes *string, confirmedAt *time.Time) error {
	const query = `UPDATE orders SET status = $1,
        admin_notes = COALESCE($2, admin_notes),
        confirmed_at = COALESCE($3, confirmed_at)
        WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, status, adminNotes, confirmedAt, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an order. Returns sql.ErrNoRows when the id is unknown.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
