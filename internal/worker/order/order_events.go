package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Additional-Code/ricebowl/internal/config"
	"github.com/Additional-Code/ricebowl/internal/messaging"
	ordersvc "github.com/Additional-Code/ricebowl/internal/service/order"
	"github.com/Additional-Code/ricebowl/internal/worker"
)

var workerTracer = otel.Tracer("github.com/Additional-Code/ricebowl/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewOrderEventHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewOrderEventHandler sets up a worker handler that audits the order stream.
func NewOrderEventHandler(logger *zap.Logger, cfg config.Config) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.process", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode order event", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		fields := []zap.Field{
			zap.String("action", event.Action),
			zap.String("orderId", event.OrderID),
			zap.String("status", string(event.Status)),
		}
		if event.TotalAmount != nil {
			fields = append(fields, zap.String("totalAmount", event.TotalAmount.String()))
		}
		logger.Info("order event processed", fields...)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
