// Package http exposes the ordering platform over a REST API built on echo.
// Lifecycle endpoints translate HTTP calls into domain events and run them
// through the dispatcher; create and read endpoints map onto the command and
// query handlers.
package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/application/eventhandlers"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/events"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Error is the JSON error body returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Location is the JSON representation of a grid location.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewOrderItem is one ordered line in a create order request.
type NewOrderItem struct {
	Name           string `json:"name"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int    `json:"unit_price_cents"`
}

// NewOrder is the request body of POST /api/v1/orders.
type NewOrder struct {
	Location Location       `json:"location"`
	Items    []NewOrderItem `json:"items"`
}

// OrderCreated is the response body of POST /api/v1/orders.
type OrderCreated struct {
	ID string `json:"id"`
}

// OrderSummary is one element of the GET /api/v1/orders response.
type OrderSummary struct {
	ID       string   `json:"id"`
	Status   string   `json:"status"`
	Location Location `json:"location"`
}

// Server coordinates between HTTP handlers, use cases and the event
// dispatcher.
type Server struct {
	createOrderHandler          commands.CreateOrderCommandHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
	getOrderHandler             queries.GetOrderQueryHandler
	dispatcher                  *eventhandlers.Dispatcher
	uowFactory                  ports.UnitOfWorkFactory
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	dispatcher *eventhandlers.Dispatcher,
	uowFactory ports.UnitOfWorkFactory,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
		getOrderHandler:             getOrderHandler,
		dispatcher:                  dispatcher,
		uowFactory:                  uowFactory,
	}
}

// RegisterRoutes wires all endpoints onto the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/refuse", s.RefuseOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.POST("/orders/:id/fulfill", s.FulfillOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateOrder handles POST /api/v1/orders - opens a new cart order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	location, err := kernel.NewLocation(
		kernel.Coordinate(body.Location.X), kernel.Coordinate(body.Location.Y))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid location: " + err.Error(),
		})
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, line := range body.Items {
		item, itemErr := order.NewItem(line.Name, line.Quantity, line.UnitPriceCents)
		if itemErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid item: " + itemErr.Error(),
			})
		}
		items = append(items, item)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, location, items)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, OrderCreated{ID: orderID.String()})
}

// GetOrders handles GET /api/v1/orders - retrieves all in-flight orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:     o.ID.String(),
			Status: o.Status,
			Location: Location{
				X: int(o.Location.X()),
				Y: int(o.Location.Y()),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with its
// payment history and timeline.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve order",
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/orders/:id/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	return s.dispatchLifecycleEvent(ctx, func(o *order.Order) (events.Event, error) {
		return events.NewOrderAccepted(o)
	})
}

// RefuseOrder handles POST /api/v1/orders/:id/refuse.
func (s *Server) RefuseOrder(ctx echo.Context) error {
	return s.dispatchLifecycleEvent(ctx, func(o *order.Order) (events.Event, error) {
		return events.NewOrderRefused(o)
	})
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	return s.dispatchLifecycleEvent(ctx, func(o *order.Order) (events.Event, error) {
		return events.NewOrderCancelled(o)
	})
}

// FulfillOrder handles POST /api/v1/orders/:id/fulfill. The fulfilment event
// carries the order's active payment, which settles on delivery.
func (s *Server) FulfillOrder(ctx echo.Context) error {
	return s.dispatchLifecycleEvent(ctx, func(o *order.Order) (events.Event, error) {
		active, err := o.ActivePayment()
		if err != nil {
			return nil, err
		}
		return events.NewOrderFulfilled(o, active)
	})
}

// dispatchLifecycleEvent loads the order, builds the lifecycle event and runs
// it through the dispatcher. Invalid transitions map to 409, unknown orders
// to 404.
func (s *Server) dispatchLifecycleEvent(
	ctx echo.Context,
	buildEvent func(o *order.Order) (events.Event, error),
) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	aggregate, err := s.uowFactory.Create().OrderRepository().Get(ctx.Request().Context(), orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load order",
		})
	}

	event, err := buildEvent(aggregate)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order has no active payment",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to build event",
		})
	}

	if err = s.dispatcher.Dispatch(ctx.Request().Context(), event); err != nil {
		if errors.Is(err, errs.ErrInvalidTransition) {
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: err.Error(),
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to process event",
		})
	}

	return ctx.NoContent(http.StatusOK)
}
