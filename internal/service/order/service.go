package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ricebowl/internal/cache"
	"github.com/Additional-Code/ricebowl/internal/config"
	"github.com/Additional-Code/ricebowl/internal/entity"
	"github.com/Additional-Code/ricebowl/internal/messaging"
	repo "github.com/Additional-Code/ricebowl/internal/repository/order"
	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

var serviceTracer = otel.Tracer("github.com/Additional-Code/ricebowl/service/order")

// Event actions published to the order stream.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// Service orchestrates order operations on top of the in-memory repository:
// cache bookkeeping, event publishing, and translation of repository outcomes
// into the shared error taxonomy.
type Service struct {
	repo      *repo.Repository
	cache     cache.Store
	cacheTTL  time.Duration
	logger    *zap.Logger
	publisher messaging.Client
	messaging messagingConfig
}

type messagingConfig struct {
	enabled bool
	topic   string
}

// Params defines dependencies for constructing Service.
type Params struct {
	fx.In

	Repository *repo.Repository
	Cache      cache.Store
	Config     config.Config
	Logger     *zap.Logger
	Publisher  messaging.Client
}

// NewService wires a new Service instance.
func NewService(p Params) *Service {
	return &Service{
		repo:      p.Repository,
		cache:     p.Cache,
		cacheTTL:  p.Config.Cache.DefaultTTL,
		logger:    p.Logger,
		publisher: p.Publisher,
		messaging: messagingConfig{
			enabled: p.Config.Messaging.Enabled,
			topic:   p.Config.Messaging.Kafka.Topic,
		},
	}
}

// List returns a snapshot of every order.
func (s *Service) List(ctx context.Context) []*entity.Order {
	ctx, span := serviceTracer.Start(ctx, "OrderService.List")
	defer span.End()

	return s.repo.List(ctx)
}

// ListByStatus validates the status symbol and filters orders by it.
func (s *Service) ListByStatus(ctx context.Context, status string) ([]*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ListByStatus", trace.WithAttributes(attribute.String("order.status", status)))
	defer span.End()

	parsed, err := entity.ParseStatus(status)
	if err != nil {
		span.SetStatus(codes.Error, "invalid status")
		return nil, errorbank.BadRequest(err.Error())
	}
	return s.repo.ListByStatus(ctx, parsed), nil
}

// ListByCustomer filters orders by the embedded customer id.
func (s *Service) ListByCustomer(ctx context.Context, customerID string) []*entity.Order {
	ctx, span := serviceTracer.Start(ctx, "OrderService.ListByCustomer", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	return s.repo.ListByCustomer(ctx, customerID)
}

// Get retrieves an order by id, consulting the cache first.
func (s *Service) Get(ctx context.Context, id string) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Get", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	if order, err := s.getFromCache(ctx, id); err == nil {
		return order, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("orders cache read failed", zap.String("id", id), zap.Error(err))
	}

	order, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound(fmt.Sprintf("Order with ID %s not found", id))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "repository error")
		return nil, errorbank.Internal("failed to load order", errorbank.WithCause(err))
	}

	s.refreshCache(ctx, order)
	return order, nil
}

// Create inserts a new order, filling defaults in the repository, then
// caches it and publishes a created event.
func (s *Service) Create(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Create")
	defer span.End()

	created, err := s.repo.Insert(ctx, order)
	if err != nil {
		span.SetStatus(codes.Error, "insert rejected")
		return nil, err
	}
	span.SetAttributes(attribute.String("order.id", created.OrderID))

	s.refreshCache(ctx, created)
	s.publishEvent(ctx, EventCreated, created)
	return created, nil
}

// Replace swaps the stored order for the supplied one, keeping the target id
// and, when absent in the payload, the original order date.
func (s *Service) Replace(ctx context.Context, id string, order *entity.Order) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Replace", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	updated, err := s.repo.Replace(ctx, id, order)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound(fmt.Sprintf("Order with ID %s not found", id))
		}
		span.SetStatus(codes.Error, "replace rejected")
		return nil, err
	}

	s.refreshCache(ctx, updated)
	s.publishEvent(ctx, EventUpdated, updated)
	return updated, nil
}

// Patch applies a partial update to the stored order.
func (s *Service) Patch(ctx context.Context, id string, patch *entity.OrderPatch) (*entity.Order, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Patch", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	updated, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, errorbank.NotFound(fmt.Sprintf("Order with ID %s not found", id))
		}
		span.SetStatus(codes.Error, "patch rejected")
		return nil, err
	}

	s.refreshCache(ctx, updated)
	s.publishEvent(ctx, EventUpdated, updated)
	return updated, nil
}

// Delete removes an order, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	ctx, span := serviceTracer.Start(ctx, "OrderService.Delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	removed, err := s.repo.Remove(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, "remove rejected")
		return false, err
	}
	if !removed {
		return false, nil
	}

	s.dropFromCache(ctx, id)
	s.publishEvent(ctx, EventDeleted, &entity.Order{OrderID: id})
	return true, nil
}

// DeleteAll empties the store and returns how many orders were removed.
func (s *Service) DeleteAll(ctx context.Context) int {
	ctx, span := serviceTracer.Start(ctx, "OrderService.DeleteAll")
	defer span.End()

	orders := s.repo.List(ctx)
	for _, order := range orders {
		s.dropFromCache(ctx, order.OrderID)
	}
	s.repo.Clear(ctx)
	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return len(orders)
}

// Count reports the number of stored orders.
func (s *Service) Count() int {
	return s.repo.Count()
}

func (s *Service) publishEvent(ctx context.Context, action string, order *entity.Order) {
	if !s.messaging.enabled || s.publisher == nil {
		return
	}
	event := OrderEvent{
		Action:      action,
		OrderID:     order.OrderID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal order event", zap.Error(err))
		return
	}
	if err := s.publisher.Publish(ctx, []byte("order-"+order.OrderID), payload); err != nil {
		s.logger.Error("publish order event", zap.String("action", action), zap.Error(err))
	}
}

func (s *Service) cacheKey(id string) string {
	return "orders:" + id
}

func (s *Service) getFromCache(ctx context.Context, id string) (*entity.Order, error) {
	if s.cache == nil {
		return nil, cache.ErrCacheMiss
	}
	bytes, err := s.cache.Get(ctx, s.cacheKey(id))
	if err != nil {
		return nil, err
	}
	var order entity.Order
	if err := json.Unmarshal(bytes, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) refreshCache(ctx context.Context, order *entity.Order) {
	if s.cache == nil || order == nil {
		return
	}
	bytes, err := json.Marshal(order)
	if err != nil {
		s.logger.Warn("orders cache encode failed", zap.String("id", order.OrderID), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(order.OrderID), bytes, s.cacheTTL); err != nil {
		s.logger.Warn("orders cache write failed", zap.String("id", order.OrderID), zap.Error(err))
	}
}

func (s *Service) dropFromCache(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(id)); err != nil {
		s.logger.Warn("orders cache delete failed", zap.String("id", id), zap.Error(err))
	}
}

// OrderEvent is emitted whenever an order is created, updated or deleted.
type OrderEvent struct {
	Action      string           `json:"action"`
	OrderID     string           `json:"orderId"`
	Status      entity.Status    `json:"status,omitempty"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	OccurredAt  time.Time        `json:"occurredAt"`
}
