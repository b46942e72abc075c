package order

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/ricebowl/internal/entity"
	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

var repoTracer = otel.Tracer("github.com/Additional-Code/ricebowl/repository/order")

// ErrNotFound is returned when an order is missing. Callers treat it as a
// normal outcome, not a validation failure.
var ErrNotFound = errors.New("order not found")

// Repository is the in-memory order store. All operations are safe for
// concurrent use; list operations return point-in-time snapshots.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*entity.Order
}

// NewRepository builds an empty store.
func NewRepository() *Repository {
	return &Repository{orders: make(map[string]*entity.Order)}
}

// List returns a snapshot of all stored orders.
func (r *Repository) List(ctx context.Context) []*entity.Order {
	_, span := repoTracer.Start(ctx, "OrderRepository.List")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*entity.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders
}

// ListByStatus returns orders whose status matches exactly.
func (r *Repository) ListByStatus(ctx context.Context, status entity.Status) []*entity.Order {
	_, span := repoTracer.Start(ctx, "OrderRepository.ListByStatus", trace.WithAttributes(attribute.String("order.status", string(status))))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entity.Order
	for _, order := range r.orders {
		if order.Status == status {
			orders = append(orders, order)
		}
	}
	return orders
}

// ListByCustomer returns orders placed by the given customer. Orders without
// a customer never match.
func (r *Repository) ListByCustomer(ctx context.Context, customerID string) []*entity.Order {
	_, span := repoTracer.Start(ctx, "OrderRepository.ListByCustomer", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*entity.Order
	for _, order := range r.orders {
		if order.Customer != nil && order.Customer.CustomerID == customerID {
			orders = append(orders, order)
		}
	}
	return orders
}

// Get fetches an order by id, returning ErrNotFound when absent.
func (r *Repository) Get(ctx context.Context, id string) (*entity.Order, error) {
	_, span := repoTracer.Start(ctx, "OrderRepository.Get", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}
	return order, nil
}

// Insert stores a new order. The id must be unique; detection and insertion
// happen under a single lock so concurrent inserts of the same id cannot both
// win. Missing order date and total amount are filled in before storing.
func (r *Repository) Insert(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	if order == nil {
		return nil, errorbank.BadRequest("order cannot be nil")
	}
	if strings.TrimSpace(order.OrderID) == "" {
		return nil, errorbank.BadRequest("order ID cannot be empty")
	}

	_, span := repoTracer.Start(ctx, "OrderRepository.Insert", trace.WithAttributes(attribute.String("order.id", order.OrderID)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; exists {
		span.SetStatus(codes.Error, "duplicate id")
		return nil, errorbank.Conflict("order with ID " + order.OrderID + " already exists")
	}

	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if order.TotalAmount == nil {
		total := order.CalculateTotal()
		order.TotalAmount = &total
	}

	r.orders[order.OrderID] = order
	return order, nil
}

// Replace substitutes the stored order wholesale. The stored id always wins
// over whatever id the replacement carries, and the original order date is
// kept when the replacement does not supply one.
func (r *Repository) Replace(ctx context.Context, id string, order *entity.Order) (*entity.Order, error) {
	if order == nil {
		return nil, errorbank.BadRequest("updated order cannot be nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, errorbank.BadRequest("order ID cannot be empty")
	}

	_, span := repoTracer.Start(ctx, "OrderRepository.Replace", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}

	order.OrderID = id
	if order.OrderDate.IsZero() {
		order.OrderDate = existing.OrderDate
	}
	if order.TotalAmount == nil {
		total := order.CalculateTotal()
		order.TotalAmount = &total
	}

	r.orders[id] = order
	return order, nil
}

// Patch applies only the supplied fields to the stored order, in place.
// A supplied item list, even an empty one, forces the total back to the sum
// of the new items and overrides any total also carried by the patch.
func (r *Repository) Patch(ctx context.Context, id string, patch *entity.OrderPatch) (*entity.Order, error) {
	if patch == nil {
		return nil, errorbank.BadRequest("updates cannot be nil")
	}
	if strings.TrimSpace(id) == "" {
		return nil, errorbank.BadRequest("order ID cannot be empty")
	}

	_, span := repoTracer.Start(ctx, "OrderRepository.Patch", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[id]
	if !ok {
		span.SetStatus(codes.Error, "not found")
		return nil, ErrNotFound
	}

	if patch.Customer != nil {
		existing.Customer = patch.Customer
	}
	if patch.Items != nil {
		existing.Items = *patch.Items
	}
	if patch.DeliveryAddress != nil {
		existing.DeliveryAddress = patch.DeliveryAddress
	}
	if patch.Status != nil {
		existing.Status = *patch.Status
	}
	if patch.DeliveryTime != nil {
		existing.DeliveryTime = patch.DeliveryTime
	}
	if patch.PaymentMethod != nil {
		existing.PaymentMethod = *patch.PaymentMethod
	}

	if patch.Items != nil {
		total := existing.CalculateTotal()
		existing.TotalAmount = &total
	} else if patch.TotalAmount != nil {
		existing.TotalAmount = patch.TotalAmount
	}

	return existing, nil
}

// Remove deletes an order by id, reporting whether it existed.
func (r *Repository) Remove(ctx context.Context, id string) (bool, error) {
	if strings.TrimSpace(id) == "" {
		return false, errorbank.BadRequest("order ID cannot be empty")
	}

	_, span := repoTracer.Start(ctx, "OrderRepository.Remove", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return false, nil
	}
	delete(r.orders, id)
	return true, nil
}

// Clear removes every order unconditionally.
func (r *Repository) Clear(ctx context.Context) {
	_, span := repoTracer.Start(ctx, "OrderRepository.Clear")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = make(map[string]*entity.Order)
}

// Count reports the number of stored orders.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.orders)
}

// Exists reports whether an order with the given id is present.
func (r *Repository) Exists(id string) bool {
	if id == "" {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.orders[id]
	return ok
}
