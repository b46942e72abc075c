package order

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Additional-Code/ricebowl/internal/dto"
	"github.com/Additional-Code/ricebowl/internal/mapper"
	"github.com/Additional-Code/ricebowl/internal/presentation/http/response"
	service "github.com/Additional-Code/ricebowl/internal/service/order"
	"github.com/Additional-Code/ricebowl/internal/transport/http/middleware"
	"github.com/Additional-Code/ricebowl/pkg/errorbank"
)

var httpTracer = otel.Tracer("github.com/Additional-Code/ricebowl/transport/http/order")

// Handler exposes order endpoints over HTTP.
type Handler struct {
	svc *service.Service
}

// NewHandler constructs an order Handler.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Register routes with provided Echo instance.
func Register(e *echo.Echo, h *Handler) {
	g := e.Group("/api/v1/orders")
	g.GET("", h.list)
	g.GET("/:orderId", h.getByID)
	g.GET("/status/:status", h.listByStatus)
	g.GET("/customer/:customerId", h.listByCustomer)
	g.POST("", h.create)
	g.POST("/batch", h.createBatch)
	g.PUT("/:orderId", h.replace)
	g.PATCH("/:orderId", h.patch)
	g.DELETE("/:orderId", h.delete)
	g.DELETE("", h.deleteAll)
}

func (h *Handler) list(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.list")
	defer span.End()

	orders := h.svc.List(ctx)
	payload := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, mapper.OrderToResponse(order))
	}

	return b.WithData(payload).
		WithMessage(fmt.Sprintf("Retrieved %d orders successfully", len(payload))).
		Build()
}

func (h *Handler) getByID(c echo.Context) error {
	b := response.New(c)
	id := c.Param("orderId")

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.getByID", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := h.svc.Get(ctx, id)
	if err != nil {
		return b.WithError(err).Build()
	}

	return b.WithData(mapper.OrderToResponse(order)).
		WithMessage("Order retrieved successfully").
		Build()
}

func (h *Handler) listByStatus(c echo.Context) error {
	b := response.New(c)
	status := c.Param("status")

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.listByStatus", trace.WithAttributes(attribute.String("order.status", status)))
	defer span.End()

	orders, err := h.svc.ListByStatus(ctx, status)
	if err != nil {
		return b.WithError(err).Build()
	}

	payload := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, mapper.OrderToResponse(order))
	}

	return b.WithData(payload).
		WithMessage(fmt.Sprintf("Retrieved %d orders with status: %s", len(payload), status)).
		Build()
}

func (h *Handler) listByCustomer(c echo.Context) error {
	b := response.New(c)
	customerID := c.Param("customerId")

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.listByCustomer", trace.WithAttributes(attribute.String("customer.id", customerID)))
	defer span.End()

	orders := h.svc.ListByCustomer(ctx, customerID)
	payload := make([]*dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, mapper.OrderToResponse(order))
	}

	return b.WithData(payload).
		WithMessage(fmt.Sprintf("Retrieved %d orders for customer: %s", len(payload), customerID)).
		Build()
}

func (h *Handler) create(c echo.Context) error {
	b := response.New(c)

	var req dto.OrderRequest
	if err := c.Bind(&req); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.create", trace.WithAttributes(attribute.String("order.id", req.OrderID)))
	defer span.End()

	order, err := mapper.OrderFromRequest(&req)
	if err != nil {
		middleware.RecordOrderOperation("create", false)
		return b.WithError(err).Build()
	}

	created, err := h.svc.Create(ctx, order)
	if err != nil {
		middleware.RecordOrderOperation("create", false)
		return b.WithError(err).Build()
	}

	middleware.RecordOrderOperation("create", true)
	return b.WithStatus(http.StatusCreated).
		WithData(mapper.OrderToResponse(created)).
		WithMessage("Order created successfully with ID: " + created.OrderID).
		Build()
}

func (h *Handler) createBatch(c echo.Context) error {
	b := response.New(c)

	var req dto.BatchOrderRequest
	if err := c.Bind(&req); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}
	if len(req.Orders) == 0 {
		return b.WithError(errorbank.BadRequest("Request body must contain a list of orders")).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.createBatch", trace.WithAttributes(attribute.Int("batch.size", len(req.Orders))))
	defer span.End()

	result := dto.BatchOrderResult{
		Created:    []dto.OrderResponse{},
		TotalCount: len(req.Orders),
		Errors:     map[string]string{},
	}

	// One bad item never aborts its siblings.
	for i := range req.Orders {
		itemReq := req.Orders[i]
		order, err := mapper.OrderFromRequest(&itemReq)
		if err == nil {
			order, err = h.svc.Create(ctx, order)
		}
		if err != nil {
			middleware.RecordOrderOperation("create", false)
			result.Errors[itemReq.OrderID] = errorbank.From(err).Message()
			continue
		}
		middleware.RecordOrderOperation("create", true)
		result.Created = append(result.Created, *mapper.OrderToResponse(order))
	}
	result.SuccessCount = len(result.Created)
	if len(result.Errors) == 0 {
		result.Errors = nil
	}

	status := http.StatusCreated
	if result.SuccessCount == 0 {
		status = http.StatusBadRequest
	}

	return b.WithStatus(status).
		WithData(result).
		WithMessage(fmt.Sprintf("Successfully added %d out of %d orders", result.SuccessCount, result.TotalCount)).
		Build()
}

func (h *Handler) replace(c echo.Context) error {
	b := response.New(c)
	id := c.Param("orderId")

	var req dto.OrderRequest
	if err := c.Bind(&req); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.replace", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	order, err := mapper.OrderFromRequest(&req)
	if err != nil {
		middleware.RecordOrderOperation("replace", false)
		return b.WithError(err).Build()
	}

	updated, err := h.svc.Replace(ctx, id, order)
	if err != nil {
		middleware.RecordOrderOperation("replace", false)
		return b.WithError(err).Build()
	}

	middleware.RecordOrderOperation("replace", true)
	return b.WithData(mapper.OrderToResponse(updated)).
		WithMessage("Order updated successfully").
		Build()
}

func (h *Handler) patch(c echo.Context) error {
	b := response.New(c)
	id := c.Param("orderId")

	var req dto.OrderRequest
	if err := c.Bind(&req); err != nil {
		return b.WithError(errorbank.BadRequest("invalid payload", errorbank.WithCause(err))).Build()
	}

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.patch", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	patch, err := mapper.PatchFromRequest(&req)
	if err != nil {
		middleware.RecordOrderOperation("patch", false)
		return b.WithError(err).Build()
	}

	updated, err := h.svc.Patch(ctx, id, patch)
	if err != nil {
		middleware.RecordOrderOperation("patch", false)
		return b.WithError(err).Build()
	}

	middleware.RecordOrderOperation("patch", true)
	return b.WithData(mapper.OrderToResponse(updated)).
		WithMessage("Order partially updated successfully").
		Build()
}

func (h *Handler) delete(c echo.Context) error {
	b := response.New(c)
	id := c.Param("orderId")

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.delete", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	deleted, err := h.svc.Delete(ctx, id)
	if err != nil {
		middleware.RecordOrderOperation("delete", false)
		return b.WithError(err).Build()
	}
	if !deleted {
		middleware.RecordOrderOperation("delete", false)
		return b.WithError(errorbank.NotFound(fmt.Sprintf("Order with ID %s not found", id))).Build()
	}

	middleware.RecordOrderOperation("delete", true)
	return b.WithMessage("Order deleted successfully").Build()
}

func (h *Handler) deleteAll(c echo.Context) error {
	b := response.New(c)

	ctx, span := httpTracer.Start(c.Request().Context(), "orders.deleteAll")
	defer span.End()

	count := h.svc.DeleteAll(ctx)

	middleware.RecordOrderOperation("delete_all", true)
	return b.WithMessage(fmt.Sprintf("Successfully deleted %d orders", count)).Build()
}
