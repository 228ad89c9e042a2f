package models

import (
	"time"

	"github.com/lib/pq"
)

// OrderStatus tracks where an order sits in the admin review flow.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusRejected  OrderStatus = "rejected"
)

// ParseOrderStatus resolves a status token, returning false for unknown values.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusRejected:
		return OrderStatus(raw), true
	}
	return "", false
}

// PurchaseType distinguishes per-subject purchases from full-grade bundles.
type PurchaseType string

const (
	PurchaseSingleSubject PurchaseType = "single"
	PurchaseAllSubjects   PurchaseType = "all"
)

// ParsePurchaseType resolves a purchase type token. Unrecognized values are
// rejected rather than defaulted.
func ParsePurchaseType(raw string) (PurchaseType, bool) {
	switch PurchaseType(raw) {
	case PurchaseSingleSubject, PurchaseAllSubjects:
		return PurchaseType(raw), true
	}
	return "", false
}

// Pricing in whole USD.
const (
	PriceSingleSubjectUSD = 10
	PriceAllSubjectsUSD   = 50
)

// Order is the canonical, server-computed record of a customer submission.
type Order struct {
	ID               string         `db:"id" json:"id"`
	StudentName      string         `db:"student_name" json:"student_name"`
	TelegramUsername string         `db:"telegram_username" json:"telegram_username"`
	PhoneNumber      string         `db:"phone_number" json:"phone_number"`
	Email            string         `db:"email" json:"email"`
	ContactMethod    *string        `db:"contact_method" json:"contact_method,omitempty"`
	ContactValue     *string        `db:"contact_value" json:"contact_value,omitempty"`
	ClientKey        *string        `db:"client_key" json:"client_key,omitempty"`
	Grade            Grade          `db:"grade" json:"grade"`
	PurchaseType     PurchaseType   `db:"purchase_type" json:"purchase_type"`
	SelectedSubjects pq.StringArray `db:"selected_subjects" json:"selected_subjects"`
	CardNumbers      pq.StringArray `db:"card_numbers" json:"card_numbers"`
	TotalAmount      int            `db:"total_amount" json:"total_amount"`
	Status           OrderStatus    `db:"status" json:"status"`
	AdminNotes       string         `db:"admin_notes" json:"admin_notes"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	ConfirmedAt      *time.Time     `db:"confirmed_at" json:"confirmed_at,omitempty"`
}

// OrderFilter captures supported filters for listing orders.
type OrderFilter struct {
	Status   *OrderStatus
	Page     int
	PageSize int
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
