package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wizariya/store-api/internal/models"
	"github.com/wizariya/store-api/internal/notify"
	appErrors "github.com/wizariya/store-api/pkg/errors"
	"github.com/wizariya/store-api/pkg/export"
)

type orderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error)
	FindByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus, adminNotes *string, confirmedAt *time.Time) error
	Delete(ctx context.Context, id string) error
}

// CreateOrderRequest is the untrusted customer submission. The card payment
// field is polymorphic: clients send either card_numbers (array) or
// card_number (one comma-joined string); the array wins when both appear.
type CreateOrderRequest struct {
	StudentName      string   `json:"student_name" validate:"required"`
	TelegramUsername string   `json:"telegram_username"`
	PhoneNumber      string   `json:"phone_number"`
	Email            string   `json:"email"`
	ContactMethod    *string  `json:"contact_method"`
	ContactValue     *string  `json:"contact_value"`
	ClientKey        *string  `json:"client_key"`
	Grade            string   `json:"grade" validate:"required"`
	PurchaseType     string   `json:"purchase_type" validate:"required"`
	SelectedSubjects []string `json:"selected_subjects"`
	CardNumbers      []string `json:"card_numbers"`
	CardNumber       string   `json:"card_number"`
}

// UpdateOrderRequest captures the admin review decision.
type UpdateOrderRequest struct {
	Status     string  `json:"status" validate:"required"`
	AdminNotes *string `json:"admin_notes"`
}

// OrderService owns order intake (normalization and pricing), admin review
// and the best-effort admin notification.
type OrderService struct {
	repo      orderRepository
	notifier  notify.Notifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOrderService creates a new order service. notifier and metrics may be nil.
func NewOrderService(repo orderRepository, notifier notify.Notifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *OrderService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{repo: repo, notifier: notifier, metrics: metrics, validator: validate, logger: logger}
}

// Create normalizes and prices the submission, persists the canonical order
// and fires the admin notification without awaiting its outcome.
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order payload")
	}

	order, err := normalizeOrder(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create order")
	}

	if s.metrics != nil {
		s.metrics.RecordOrderCreated()
	}
	s.notifyNewOrder(order)

	return order, nil
}

// normalizeOrder converts the loose submission into a canonical pending order.
// Pure transform: no persistence, no clock beyond the creation timestamp.
func normalizeOrder(req CreateOrderRequest) (*models.Order, error) {
	studentName := strings.TrimSpace(req.StudentName)
	if studentName == "" {
		return nil, appErrors.Validation("student_name", "must not be blank")
	}

	grade, ok := models.ParseGrade(strings.TrimSpace(req.Grade))
	if !ok {
		return nil, appErrors.Validation("grade", "unknown grade")
	}

	purchaseType, ok := models.ParsePurchaseType(strings.TrimSpace(req.PurchaseType))
	if !ok {
		return nil, appErrors.Validation("purchase_type", "must be \"single\" or \"all\"")
	}

	selected := req.SelectedSubjects
	if selected == nil {
		selected = []string{}
	}

	return &models.Order{
		StudentName:      studentName,
		TelegramUsername: req.TelegramUsername,
		PhoneNumber:      req.PhoneNumber,
		Email:            req.Email,
		ContactMethod:    req.ContactMethod,
		ContactValue:     req.ContactValue,
		ClientKey:        req.ClientKey,
		Grade:            grade,
		PurchaseType:     purchaseType,
		SelectedSubjects: selected,
		CardNumbers:      normalizeCardNumbers(req.CardNumbers, req.CardNumber),
		TotalAmount:      computeTotal(purchaseType, selected),
		Status:           models.OrderStatusPending,
		CreatedAt:        time.Now().UTC(),
	}, nil
}

// normalizeCardNumbers accepts the two card-field shapes. Array entries have
// every whitespace run removed; the comma-joined form is only trimmed per
// entry. Blank entries are dropped and order is preserved.
func normalizeCardNumbers(arrayForm []string, stringForm string) []string {
	out := []string{}
	if len(arrayForm) > 0 {
		for _, raw := range arrayForm {
			cleaned := strings.Join(strings.Fields(raw), "")
			if cleaned != "" {
				out = append(out, cleaned)
			}
		}
		return out
	}
	for _, part := range strings.Split(stringForm, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// computeTotal prices the order. A single-subject order always charges for at
// least one subject even when nothing is selected yet.
func computeTotal(purchaseType models.PurchaseType, selected []string) int {
	if purchaseType == models.PurchaseAllSubjects {
		return models.PriceAllSubjectsUSD
	}
	count := len(selected)
	if count < 1 {
		count = 1
	}
	return models.PriceSingleSubjectUSD * count
}

func (s *OrderService) notifyNewOrder(order *models.Order) {
	if s.notifier == nil {
		return
	}
	text := fmt.Sprintf("طلب جديد 🛒\nالطالب: %s\nالمرحلة: %s\nنوع الشراء: %s\nالمبلغ: %d$\nرقم الطلب: %s",
		order.StudentName, order.Grade.Label(), order.PurchaseType, order.TotalAmount, order.ID)

	// Single attempt, detached from the request lifecycle. Failure never
	// reaches the customer.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		err := s.notifier.Send(ctx, text)
		if s.metrics != nil {
			s.metrics.RecordNotification(err == nil)
		}
		if err != nil {
			s.logger.Warn("order notification failed", zap.String("order_id", order.ID), zap.Error(err))
		}
	}()
}

// List returns orders newest-first, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, rawStatus string, page, pageSize int) ([]models.Order, *models.Pagination, error) {
	filter := models.OrderFilter{Page: page, PageSize: pageSize}
	if rawStatus != "" {
		status, ok := models.ParseOrderStatus(rawStatus)
		if !ok {
			return nil, nil, appErrors.Validation("status", "unknown order status")
		}
		filter.Status = &status
	}

	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list orders")
	}

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 100
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}
	return orders, pagination, nil
}

// Get returns an order by identifier.
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order")
	}
	return order, nil
}

// UpdateStatus applies the admin decision. Confirming stamps confirmed_at in
// the same update; rejecting leaves it untouched. Transitions are permissive.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req UpdateOrderRequest) (*models.Order, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid order update payload")
	}

	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return nil, appErrors.Validation("status", "unknown order status")
	}

	var confirmedAt *time.Time
	if status == models.OrderStatusConfirmed {
		now := time.Now().UTC()
		confirmedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, id, status, req.AdminNotes, confirmedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update order")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load updated order")
	}
	return order, nil
}

// Delete removes an order.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "order not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete order")
	}
	return nil
}

// Export renders the order book for the administrator as CSV or PDF.
func (s *OrderService) Export(ctx context.Context, format, rawStatus string) ([]byte, string, error) {
	orders, _, err := s.List(ctx, rawStatus, 1, 500)
	if err != nil {
		return nil, "", err
	}

	table := export.Table{
		Columns: []string{"ID", "Student", "Grade", "Type", "Subjects", "Total (USD)", "Status", "Created At"},
	}
	for _, order := range orders {
		table.Rows = append(table.Rows, []string{
			order.ID,
			order.StudentName,
			string(order.Grade),
			string(order.PurchaseType),
			strconv.Itoa(len(order.SelectedSubjects)),
			strconv.Itoa(order.TotalAmount),
			string(order.Status),
			order.CreatedAt.Format(time.RFC3339),
		})
	}

	switch format {
	case "csv", "":
		payload, err := export.RenderCSV(table)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "pdf":
		payload, err := export.RenderPDF(table, "orders")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Validation("format", "must be \"csv\" or \"pdf\"")
	}
}
