package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wizariya/store-api/internal/models"
	"github.com/wizariya/store-api/internal/notify"
	appErrors "github.com/wizariya/store-api/pkg/errors"
)

type mockOrderRepo struct {
	items           map[string]*models.Order
	created         []*models.Order
	listResult      []models.Order
	listTotal       int
	lastFilter      models.OrderFilter
	lastStatus      models.OrderStatus
	lastNotes       *string
	lastConfirmedAt *time.Time
}

func (m *mockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(m.created)+1)
	}
	if m.items == nil {
		m.items = make(map[string]*models.Order)
	}
	cp := *order
	m.items[order.ID] = &cp
	m.created = append(m.created, &cp)
	return nil
}

func (m *mockOrderRepo) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, int, error) {
	m.lastFilter = filter
	return m.listResult, m.listTotal, nil
}

func (m *mockOrderRepo) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if order, ok := m.items[id]; ok {
		cp := *order
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, id string, status models.OrderStatus, adminNotes *string, confirmedAt *time.Time) error {
	m.lastStatus = status
	m.lastNotes = adminNotes
	m.lastConfirmedAt = confirmedAt
	order, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	order.Status = status
	if adminNotes != nil {
		order.AdminNotes = *adminNotes
	}
	if confirmedAt != nil {
		order.ConfirmedAt = confirmedAt
	}
	return nil
}

func (m *mockOrderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

type mockNotifier struct {
	sent chan string
	err  error
}

func (m *mockNotifier) Send(ctx context.Context, text string) error {
	if m.sent != nil {
		m.sent <- text
	}
	return m.err
}

func newOrderService(repo *mockOrderRepo, notifier notify.Notifier) *OrderService {
	return NewOrderService(repo, notifier, nil, validator.New(), zap.NewNop())
}

func TestOrderServiceCreateSingleSubjectPricing(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := newOrderService(repo, nil)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:      "Ahmed",
		Grade:            "sixth_primary",
		PurchaseType:     "single",
		SelectedSubjects: []string{"math", "arabic"},
		CardNumbers:      []string{"1234 5678 9012 3456"},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, order.TotalAmount)
	assert.Equal(t, []string{"1234567890123456"}, []string(order.CardNumbers))
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Nil(t, order.ConfirmedAt)
	assert.NotEmpty(t, order.ID)
	assert.Len(t, repo.created, 1)
}

func TestOrderServiceCreateAllSubjectsFlatPrice(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:      "Ahmed",
		Grade:            "third_intermediate",
		PurchaseType:     "all",
		SelectedSubjects: []string{"a", "b", "c", "d", "e", "f", "g"},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, order.TotalAmount)
}

func TestOrderServiceCreateSingleSubjectEmptySelectionChargesFloor(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Sara",
		Grade:        "sixth_preparatory_literary",
		PurchaseType: "single",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, order.TotalAmount)
	assert.Empty(t, order.SelectedSubjects)
}

func TestOrderServiceCreateAcceptsGradeLabel(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Sara",
		Grade:        "السادس ابتدائي",
		PurchaseType: "all",
	})
	require.NoError(t, err)
	assert.Equal(t, models.GradeSixthPrimary, order.Grade)
}

func TestOrderServiceCreateRejectsBlankStudentName(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "   ",
		Grade:        "sixth_primary",
		PurchaseType: "all",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestOrderServiceCreateRejectsUnknownGrade(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Ahmed",
		Grade:        "fifth_primary",
		PurchaseType: "all",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "grade")
}

func TestOrderServiceCreateRejectsUnknownPurchaseType(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Ahmed",
		Grade:        "sixth_primary",
		PurchaseType: "bundle",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase_type")
}

func TestNormalizeCardNumbersArrayForm(t *testing.T) {
	got := normalizeCardNumbers([]string{"1234 5678", " ", "9876"}, "")
	assert.Equal(t, []string{"12345678", "9876"}, got)
}

func TestNormalizeCardNumbersStringForm(t *testing.T) {
	got := normalizeCardNumbers(nil, "111, 222 ,  ,333")
	assert.Equal(t, []string{"111", "222", "333"}, got)
}

func TestNormalizeCardNumbersArrayTakesPrecedence(t *testing.T) {
	got := normalizeCardNumbers([]string{"555"}, "111,222")
	assert.Equal(t, []string{"555"}, got)
}

func TestNormalizeCardNumbersEmptyInput(t *testing.T) {
	got := normalizeCardNumbers(nil, "")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestComputeTotalProperties(t *testing.T) {
	for k := 0; k < 10; k++ {
		selected := make([]string, k)
		want := 10 * k
		if k == 0 {
			want = 10
		}
		assert.Equal(t, want, computeTotal(models.PurchaseSingleSubject, selected), "k=%d", k)
		assert.Equal(t, 50, computeTotal(models.PurchaseAllSubjects, selected), "k=%d", k)
	}
}

func TestOrderServiceCreateNotifiesAdmin(t *testing.T) {
	repo := &mockOrderRepo{}
	notifier := &mockNotifier{sent: make(chan string, 1)}
	svc := newOrderService(repo, notifier)

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Ahmed",
		Grade:        "sixth_primary",
		PurchaseType: "all",
	})
	require.NoError(t, err)

	select {
	case text := <-notifier.sent:
		assert.Contains(t, text, "Ahmed")
		assert.Contains(t, text, order.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification")
	}
}

func TestOrderServiceCreateSwallowsNotificationFailure(t *testing.T) {
	repo := &mockOrderRepo{}
	notifier := &mockNotifier{sent: make(chan string, 1), err: errors.New("telegram down")}
	svc := newOrderService(repo, notifier)

	_, err := svc.Create(context.Background(), CreateOrderRequest{
		StudentName:  "Ahmed",
		Grade:        "sixth_primary",
		PurchaseType: "all",
	})
	require.NoError(t, err)

	select {
	case <-notifier.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a notification attempt")
	}
	assert.Len(t, repo.created, 1)
}

func TestOrderServiceUpdateStatusConfirmSetsTimestamp(t *testing.T) {
	repo := &mockOrderRepo{items: map[string]*models.Order{
		"o1": {ID: "o1", StudentName: "Ahmed", Status: models.OrderStatusPending},
	}}
	svc := newOrderService(repo, nil)

	order, err := svc.UpdateStatus(context.Background(), "o1", UpdateOrderRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)
	assert.WithinDuration(t, time.Now().UTC(), *order.ConfirmedAt, time.Minute)
}

func TestOrderServiceUpdateStatusRejectLeavesTimestampUnset(t *testing.T) {
	repo := &mockOrderRepo{items: map[string]*models.Order{
		"o1": {ID: "o1", StudentName: "Ahmed", Status: models.OrderStatusPending},
	}}
	svc := newOrderService(repo, nil)

	notes := "card invalid"
	order, err := svc.UpdateStatus(context.Background(), "o1", UpdateOrderRequest{Status: "rejected", AdminNotes: &notes})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusRejected, order.Status)
	assert.Nil(t, order.ConfirmedAt)
	assert.Equal(t, "card invalid", order.AdminNotes)
	assert.Nil(t, repo.lastConfirmedAt)
}

func TestOrderServiceUpdateStatusUnknownValue(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "o1", UpdateOrderRequest{Status: "shipped"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestOrderServiceNotFoundMapping(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)

	err = svc.Delete(context.Background(), "missing")
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)

	_, err = svc.UpdateStatus(context.Background(), "missing", UpdateOrderRequest{Status: "confirmed"})
	assert.Equal(t, appErrors.ErrNotFound.Status, appErrors.FromError(err).Status)
}

func TestOrderServiceListStatusFilter(t *testing.T) {
	repo := &mockOrderRepo{listResult: []models.Order{{ID: "o1"}}, listTotal: 1}
	svc := newOrderService(repo, nil)

	orders, pagination, err := svc.List(context.Background(), "confirmed", 1, 20)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 1, pagination.TotalCount)
	require.NotNil(t, repo.lastFilter.Status)
	assert.Equal(t, models.OrderStatusConfirmed, *repo.lastFilter.Status)
}

func TestOrderServiceListRejectsUnknownStatus(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, _, err := svc.List(context.Background(), "archived", 1, 20)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}

func TestOrderServiceExportCSV(t *testing.T) {
	repo := &mockOrderRepo{listResult: []models.Order{
		{ID: "o1", StudentName: "Ahmed", Grade: models.GradeSixthPrimary, PurchaseType: models.PurchaseAllSubjects, TotalAmount: 50, Status: models.OrderStatusPending, CreatedAt: time.Now()},
	}, listTotal: 1}
	svc := newOrderService(repo, nil)

	payload, contentType, err := svc.Export(context.Background(), "csv", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Ahmed")
}

func TestOrderServiceExportRejectsUnknownFormat(t *testing.T) {
	svc := newOrderService(&mockOrderRepo{}, nil)

	_, _, err := svc.Export(context.Background(), "xlsx", "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Status, appErrors.FromError(err).Status)
}
