package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Additional-Code/ricebowl/internal/cache"
	"github.com/Additional-Code/ricebowl/internal/config"
	"github.com/Additional-Code/ricebowl/internal/entity"
	"github.com/Additional-Code/ricebowl/internal/messaging"
	repo "github.com/Additional-Code/ricebowl/internal/repository/order"
	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return value, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	keys   []string
	values [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, key []byte, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, string(key))
	p.values = append(p.values, value)
	return nil
}

func (p *capturingPublisher) Consume(ctx context.Context, _ messaging.Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (p *capturingPublisher) Topic() string { return "rice-orders.events" }

func (p *capturingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.keys)
}

func newTestService(store cache.Store, publisher messaging.Client) *Service {
	cfg := config.Config{
		Cache: config.Cache{DefaultTTL: time.Minute},
		Messaging: config.Messaging{
			Enabled: publisher != nil,
			Kafka:   config.Kafka{Topic: "rice-orders.events"},
		},
	}
	return NewService(Params{
		Repository: repo.NewRepository(),
		Cache:      store,
		Config:     cfg,
		Logger:     zap.NewNop(),
		Publisher:  publisher,
	})
}

func sampleOrder(id string) *entity.Order {
	return &entity.Order{
		OrderID:  id,
		Customer: &entity.Customer{CustomerID: "CUST-" + id},
		Items: []entity.OrderItem{
			{ItemID: "I1", Quantity: 3, PricePerUnit: decimal.NewFromInt(100)},
		},
		Status: entity.StatusPending,
	}
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newTestService(newMemoryCache(), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, sampleOrder("A1"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !created.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Errorf("total = %s, want 300", created.TotalAmount)
	}

	got, err := svc.Get(ctx, "A1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OrderID != "A1" {
		t.Errorf("id = %s", got.OrderID)
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected not-found error")
	}
	if errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Errorf("kind = %s, want not_found", errorbank.From(err).Kind())
	}
}

func TestServiceListByStatusInvalid(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.ListByStatus(context.Background(), "SHIPPED")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if errorbank.From(err).Kind() != errorbank.KindBadRequest {
		t.Errorf("kind = %s, want bad_request", errorbank.From(err).Kind())
	}
}

func TestServiceListByStatus(t *testing.T) {
	svc := newTestService(nil, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleOrder("A1")); err != nil {
		t.Fatalf("create: %v", err)
	}

	orders, err := svc.ListByStatus(ctx, "pending")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("len = %d, want 1", len(orders))
	}
}

func TestServiceDeleteInvalidatesCache(t *testing.T) {
	store := newMemoryCache()
	svc := newTestService(store, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleOrder("A1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Get(ctx, "orders:A1"); err != nil {
		t.Fatal("expected order to be cached after create")
	}

	deleted, err := svc.Delete(ctx, "A1")
	if err != nil || !deleted {
		t.Fatalf("delete = (%v, %v)", deleted, err)
	}
	if _, err := store.Get(ctx, "orders:A1"); err == nil {
		t.Error("cache entry must be dropped on delete")
	}

	deleted, err = svc.Delete(ctx, "A1")
	if err != nil || deleted {
		t.Errorf("second delete = (%v, %v), want (false, nil)", deleted, err)
	}
}

func TestServiceDeleteAll(t *testing.T) {
	svc := newTestService(newMemoryCache(), nil)
	ctx := context.Background()

	for _, id := range []string{"A1", "A2", "A3"} {
		if _, err := svc.Create(ctx, sampleOrder(id)); err != nil {
			t.Fatalf("create %s: %v", id, err)
		}
	}

	if count := svc.DeleteAll(ctx); count != 3 {
		t.Errorf("deleted = %d, want 3", count)
	}
	if svc.Count() != 0 {
		t.Errorf("count after delete all = %d", svc.Count())
	}
}

func TestServicePublishesEvents(t *testing.T) {
	publisher := &capturingPublisher{}
	svc := newTestService(nil, publisher)
	ctx := context.Background()

	if _, err := svc.Create(ctx, sampleOrder("A1")); err != nil {
		t.Fatalf("create: %v", err)
	}
	status := entity.StatusDelivered
	if _, err := svc.Patch(ctx, "A1", &entity.OrderPatch{Status: &status}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	if _, err := svc.Delete(ctx, "A1"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if got := publisher.count(); got != 3 {
		t.Errorf("published %d events, want 3", got)
	}
}

func TestServiceReplaceNotFound(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Replace(context.Background(), "missing", sampleOrder("X"))
	if errorbank.From(err).Kind() != errorbank.KindNotFound {
		t.Errorf("kind = %v, want not_found", errorbank.From(err).Kind())
	}
}
