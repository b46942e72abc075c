package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDTO is the wire shape of an order's customer.
type CustomerDTO struct {
	CustomerID  string `json:"customerId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

// DeliveryAddressDTO is the wire shape of a delivery address.
type DeliveryAddressDTO struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Instructions string `json:"additionalInstructions"`
}

// OrderItemDTO is the wire shape of a single order line.
type OrderItemDTO struct {
	ItemID       string          `json:"itemId"`
	RiceType     string          `json:"riceType"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	SpiceLevel   string          `json:"spiceLevel"`
	Notes        string          `json:"additionalNotes"`
}

// OrderRequest is the inbound payload for create, replace and patch.
//
// Optional fields are pointers so that an omitted field, a null field and an
// explicitly supplied zero value stay distinguishable after decoding; partial
// updates depend on that distinction.
type OrderRequest struct {
	OrderID         string              `json:"orderId"`
	Customer        *CustomerDTO        `json:"customer"`
	Items           *[]OrderItemDTO     `json:"orderItems"`
	DeliveryAddress *DeliveryAddressDTO `json:"deliveryAddress"`
	Status          string              `json:"status"`
	OrderDate       *time.Time          `json:"orderDate"`
	DeliveryTime    *time.Time          `json:"deliveryTime"`
	PaymentMethod   *string             `json:"paymentMethod"`
	TotalAmount     *decimal.Decimal    `json:"totalAmount"`
}

// OrderResponse represents an order as exposed via transport layers.
type OrderResponse struct {
	OrderID         string              `json:"orderId"`
	Customer        *CustomerDTO        `json:"customer,omitempty"`
	Items           []OrderItemDTO      `json:"orderItems"`
	DeliveryAddress *DeliveryAddressDTO `json:"deliveryAddress,omitempty"`
	Status          string              `json:"status,omitempty"`
	OrderDate       *time.Time          `json:"orderDate,omitempty"`
	DeliveryTime    *time.Time          `json:"deliveryTime,omitempty"`
	PaymentMethod   string              `json:"paymentMethod,omitempty"`
	TotalAmount     *decimal.Decimal    `json:"totalAmount,omitempty"`
	ItemCount       int                 `json:"itemCount"`
}

// BatchOrderRequest wraps multiple create requests.
type BatchOrderRequest struct {
	Orders []OrderRequest `json:"orders"`
}

// BatchOrderResult reports per-item outcomes of a batch create.
type BatchOrderResult struct {
	Created      []OrderResponse   `json:"created"`
	SuccessCount int               `json:"successCount"`
	TotalCount   int               `json:"totalCount"`
	Errors       map[string]string `json:"errors,omitempty"`
}
