package entity

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"PENDING", StatusPending},
		{"pending", StatusPending},
		{"Out_For_Delivery", StatusOutForDelivery},
		{" delivered ", StatusDelivered},
		{"CANCELLED", StatusCancelled},
	}
	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if err != nil {
			t.Fatalf("ParseStatus(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseStatusInvalid(t *testing.T) {
	_, err := ParseStatus("SHIPPED")
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
	for _, symbol := range Statuses() {
		if !strings.Contains(err.Error(), string(symbol)) {
			t.Errorf("error %q does not list valid symbol %s", err, symbol)
		}
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 2, PricePerUnit: decimal.NewFromInt(45000)}
	if got := item.Subtotal(); !got.Equal(decimal.NewFromInt(90000)) {
		t.Errorf("subtotal = %s, want 90000", got)
	}

	if got := (OrderItem{Quantity: 3}).Subtotal(); !got.IsZero() {
		t.Errorf("subtotal without price = %s, want 0", got)
	}
	if got := (OrderItem{PricePerUnit: decimal.NewFromInt(100)}).Subtotal(); !got.IsZero() {
		t.Errorf("subtotal without quantity = %s, want 0", got)
	}
}

func TestCalculateTotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Quantity: 2, PricePerUnit: decimal.NewFromInt(50000)},
			{Quantity: 1, PricePerUnit: decimal.NewFromInt(35000)},
		},
	}
	if got := order.CalculateTotal(); !got.Equal(decimal.NewFromInt(135000)) {
		t.Errorf("total = %s, want 135000", got)
	}

	if got := (&Order{}).CalculateTotal(); !got.IsZero() {
		t.Errorf("total of empty order = %s, want 0", got)
	}
}

func TestItemCount(t *testing.T) {
	var nilOrder *Order
	if got := nilOrder.ItemCount(); got != 0 {
		t.Errorf("nil order item count = %d, want 0", got)
	}
	order := &Order{Items: []OrderItem{{}, {}}}
	if got := order.ItemCount(); got != 2 {
		t.Errorf("item count = %d, want 2", got)
	}
}
