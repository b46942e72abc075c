package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the lifecycle states of an order.
type Status string

const (
	StatusPending        Status = "PENDING"
	StatusConfirmed      Status = "CONFIRMED"
	StatusPreparing      Status = "PREPARING"
	StatusOutForDelivery Status = "OUT_FOR_DELIVERY"
	StatusDelivered      Status = "DELIVERED"
	StatusCancelled      Status = "CANCELLED"
)

// Statuses lists every valid status in declaration order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// ParseStatus resolves a status symbol case-insensitively.
func ParseStatus(s string) (Status, error) {
	candidate := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, status := range Statuses() {
		if candidate == status {
			return status, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s. Valid values are: %s", s, statusNames())
}

func statusNames() string {
	names := make([]string, 0, len(Statuses()))
	for _, status := range Statuses() {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}

// Customer identifies who placed an order.
type Customer struct {
	CustomerID  string
	Name        string
	Email       string
	PhoneNumber string
}

// DeliveryAddress is where an order should be dropped off.
type DeliveryAddress struct {
	Street       string
	City         string
	State        string
	PostalCode   string
	Country      string
	Instructions string
}

// OrderItem is a single rice dish line within an order.
type OrderItem struct {
	ItemID       string
	RiceType     string
	Quantity     int
	PricePerUnit decimal.Decimal
	SpiceLevel   string
	Notes        string
}

// Subtotal returns price times quantity; zero when either is unset.
func (i OrderItem) Subtotal() decimal.Decimal {
	if i.Quantity <= 0 || i.PricePerUnit.IsZero() {
		return decimal.Zero
	}
	return i.PricePerUnit.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order is the aggregate root keyed by OrderID.
//
// OrderDate uses the zero time to mean "not supplied"; TotalAmount uses a nil
// pointer for the same, so a caller-supplied zero total survives intact.
type Order struct {
	OrderID         string
	Customer        *Customer
	Items           []OrderItem
	DeliveryAddress *DeliveryAddress
	Status          Status
	OrderDate       time.Time
	DeliveryTime    *time.Time
	PaymentMethod   string
	TotalAmount     *decimal.Decimal
}

// CalculateTotal sums the subtotals of the current items.
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// ItemCount reports how many line items the order carries.
func (o *Order) ItemCount() int {
	if o == nil {
		return 0
	}
	return len(o.Items)
}

// OrderPatch carries a partial update. A nil field means "leave untouched".
// Items is a pointer to a slice so an explicitly empty list is distinct from
// an omitted one: empty still forces the total back to zero.
type OrderPatch struct {
	Customer        *Customer
	Items           *[]OrderItem
	DeliveryAddress *DeliveryAddress
	Status          *Status
	DeliveryTime    *time.Time
	PaymentMethod   *string
	TotalAmount     *decimal.Decimal
}
