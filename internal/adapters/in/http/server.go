package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/application/usecases/queries"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/core/domain/services"
	"mealdispatch/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Handler is the shape shared by command and query handlers.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

type FeeConfigurationUpdater interface {
	Handle(ctx context.Context, command commands.UpdateFeeConfigurationCommand) error
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateOrder       Handler[commands.CreateOrderCommand, commands.CreateOrderResult]
	TransitionOrder   Handler[commands.TransitionOrderStatusCommand, *order.Order]
	AcceptOrder       Handler[commands.AcceptOrderCommand, *assignment.Assignment]
	AdvanceAssignment Handler[commands.AdvanceAssignmentCommand, *assignment.Assignment]
	UpdateNotes       Handler[commands.UpdateAssignmentNotesCommand, *assignment.Assignment]
	AssignRider       Handler[commands.AssignRiderCommand, *assignment.Assignment]
	RegisterRider     Handler[commands.RegisterRiderCommand, *rider.Rider]
	SetRiderOnline    Handler[commands.SetRiderOnlineCommand, *rider.Rider]
	ChangeApproval    Handler[commands.ChangeRiderApprovalCommand, *rider.Rider]
	SetRiderActive    Handler[commands.SetRiderActiveCommand, *rider.Rider]
	CreateRestaurant  Handler[commands.CreateRestaurantCommand, *catalog.Restaurant]
	AddMeal           Handler[commands.AddMealCommand, *catalog.Meal]
	CreatePayout      Handler[commands.CreatePayoutCommand, commands.Payout]
	UpdateFees        FeeConfigurationUpdater

	GetOrder              Handler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetAvailableOrders    Handler[queries.GetAvailableOrdersQuery, []queries.AvailableOrderResponse]
	GetRiderEligibility   Handler[queries.GetRiderEligibilityQuery, queries.GetRiderEligibilityQueryResponse]
	GetRiderAssignments   Handler[queries.GetRiderAssignmentsQuery, []queries.RiderAssignmentResponse]
	GetRiderEarnings      Handler[queries.GetRiderEarningsQuery, queries.GetRiderEarningsQueryResponse]
	GetEligibleRiders     Handler[queries.GetEligibleRidersQuery, []queries.EligibleRiderResponse]
	GetRestaurantEarnings Handler[queries.GetRestaurantEarningsQuery, queries.GetRestaurantEarningsQueryResponse]
	GetFees               Handler[queries.GetFeeConfigurationQuery, queries.GetFeeConfigurationQueryResponse]
	GetFeeQuote           Handler[queries.GetFeeQuoteQuery, services.Quote]
}

// Server implements ServerInterface on top of the application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
	now    func() time.Time
}

var _ ServerInterface = (*Server)(nil)

// NewServer creates the HTTP adapter over the application handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      handlers,
		logger: logger.With("component", "http"),
		now:    time.Now,
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	lines := make([]commands.OrderLine, len(req.Items))
	for i, item := range req.Items {
		mealID, err := kernel.UUIDFromGoogle(item.MealID)
		if err != nil {
			return s.fail(ctx, err)
		}
		lines[i] = commands.OrderLine{MealID: mealID, Quantity: item.Quantity}
	}

	customerID, err := kernel.UUIDFromGoogle(req.CustomerID)
	if err != nil {
		return s.fail(ctx, err)
	}
	restaurantID, err := kernel.UUIDFromGoogle(req.RestaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(customerID, restaurantID, lines, req.DeliveryAddress, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	result, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.OrdersCreated.Inc()

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:       result.OrderID,
		Total:         result.Total,
		CustomerTotal: toQuoteResponse(result.CustomerTotal),
	})
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context, id uuid.UUID) error {
	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	response, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(response))
}

// TransitionOrderStatus handles POST /api/v1/orders/{id}/status.
func (s *Server) TransitionOrderStatus(ctx echo.Context, id uuid.UUID) error {
	var req StatusChangeRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderStatusCommand(orderID, target, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.OrderTransitions.WithLabelValues(o.Status().String()).Inc()

	return ctx.JSON(http.StatusOK, toOrderStatusResponse(o))
}

// RegisterRider handles POST /api/v1/riders.
func (s *Server) RegisterRider(ctx echo.Context) error {
	var req RegisterRiderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterRiderCommand(req.Name)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.h.RegisterRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toRiderResponse(r))
}

// GetAvailableOrders handles GET /api/v1/riders/available-orders.
func (s *Server) GetAvailableOrders(ctx echo.Context, params GetAvailableOrdersParams) error {
	riderID, err := kernel.UUIDFromGoogle(params.XRiderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetAvailableOrdersQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	available, err := s.h.GetAvailableOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]AvailableOrderResponse, len(available))
	for i, o := range available {
		response[i] = AvailableOrderResponse{
			ID:              o.ID,
			RestaurantID:    o.RestaurantID,
			Total:           o.Total,
			DeliveryAddress: o.DeliveryAddress,
			Items:           o.Items,
			CreatedAt:       o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptOrder handles POST /api/v1/riders/{id}/accept/{order_id}.
func (s *Server) AcceptOrder(ctx echo.Context, id uuid.UUID, orderID uuid.UUID) error {
	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	oid, err := kernel.UUIDFromGoogle(orderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(oid, riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.AcceptOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.AssignmentsCreated.WithLabelValues("accept").Inc()

	return ctx.JSON(http.StatusCreated, toAssignmentResponse(a))
}

// SetRiderOnline handles PUT /api/v1/riders/{id}/online.
func (s *Server) SetRiderOnline(ctx echo.Context, id uuid.UUID) error {
	var req SetOnlineRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetRiderOnlineCommand(riderID, *req.Online)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.h.SetRiderOnline.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRiderResponse(r))
}

// GetRiderEligibility handles GET /api/v1/riders/{id}/eligibility.
func (s *Server) GetRiderEligibility(ctx echo.Context, id uuid.UUID) error {
	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRiderEligibilityQuery(riderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	e, err := s.h.GetRiderEligibility.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EligibilityResponse{
		RiderID:  e.RiderID,
		Eligible: e.Eligible,
		Approval: e.Approval,
		Online:   e.Online,
		Active:   e.Active,
		Reason:   e.Reason,
	})
}

// GetRiderAssignments handles GET /api/v1/riders/{id}/assignments.
func (s *Server) GetRiderAssignments(ctx echo.Context, id uuid.UUID, params GetRiderAssignmentsParams) error {
	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	var rawScope string
	if params.Scope != nil {
		rawScope = *params.Scope
	}
	scope, err := queries.ParseAssignmentScope(rawScope)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRiderAssignmentsQuery(riderID, scope)
	if err != nil {
		return s.fail(ctx, err)
	}

	assignments, err := s.h.GetRiderAssignments.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]RiderAssignmentResponse, len(assignments))
	for i, a := range assignments {
		response[i] = toRiderAssignmentResponse(riderID, a)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRiderEarnings handles GET /api/v1/riders/{id}/earnings.
func (s *Server) GetRiderEarnings(ctx echo.Context, id uuid.UUID) error {
	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRiderEarningsQuery(riderID, s.now())
	if err != nil {
		return s.fail(ctx, err)
	}

	e, err := s.h.GetRiderEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RiderEarningsResponse{
		RiderID:    e.RiderID,
		Total:      e.Total,
		Today:      e.Today,
		ThisWeek:   e.ThisWeek,
		ThisMonth:  e.ThisMonth,
		Deliveries: e.Deliveries,
		Average:    e.Average,
	})
}

// AdvanceAssignment handles PUT /api/v1/assignments/{id}. The caller must own the assignment.
func (s *Server) AdvanceAssignment(ctx echo.Context, id uuid.UUID, params AdvanceAssignmentParams) error {
	var req StatusChangeRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	assignmentID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	riderID, err := kernel.UUIDFromGoogle(params.XRiderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := assignment.ParseStatus(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdvanceAssignmentCommand(assignmentID, riderID, target, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.AdvanceAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(a))
}

// UpdateAssignmentNotes handles PUT /api/v1/assignments/{id}/notes.
func (s *Server) UpdateAssignmentNotes(ctx echo.Context, id uuid.UUID) error {
	var req UpdateNotesRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	assignmentID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewUpdateAssignmentNotesCommand(assignmentID, req.Notes)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.UpdateNotes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(a))
}

// AssignRider handles POST /api/v1/admin/assign.
func (s *Server) AssignRider(ctx echo.Context) error {
	var req AssignRiderRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromGoogle(req.OrderID)
	if err != nil {
		return s.fail(ctx, err)
	}
	riderID, err := kernel.UUIDFromGoogle(req.RiderID)
	if err != nil {
		return s.fail(ctx, err)
	}

	var deliveryFee *kernel.Money
	if req.DeliveryFee != nil {
		fee, parseErr := kernel.MoneyFromString(*req.DeliveryFee)
		if parseErr != nil {
			return s.fail(ctx, parseErr)
		}
		deliveryFee = &fee
	}

	cmd, err := commands.NewAssignRiderCommand(orderID, riderID, deliveryFee)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.AssignRider.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	metrics.AssignmentsCreated.WithLabelValues("admin").Inc()

	return ctx.JSON(http.StatusCreated, toAssignmentResponse(a))
}

// AdminCancelAssignment handles POST /api/v1/admin/assignments/{id}/cancel.
func (s *Server) AdminCancelAssignment(ctx echo.Context, id uuid.UUID) error {
	var req CancelAssignmentRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	assignmentID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewAdminCancelAssignmentCommand(assignmentID, req.Reason)
	if err != nil {
		return s.fail(ctx, err)
	}

	a, err := s.h.AdvanceAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toAssignmentResponse(a))
}

// GetEligibleRiders handles GET /api/v1/admin/riders/eligible.
func (s *Server) GetEligibleRiders(ctx echo.Context) error {
	riders, err := s.h.GetEligibleRiders.Handle(ctx.Request().Context(), queries.NewGetEligibleRidersQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]EligibleRiderResponse, len(riders))
	for i, r := range riders {
		response[i] = EligibleRiderResponse{
			ID:              r.ID,
			Name:            r.Name,
			LastActiveAt:    r.LastActiveAt,
			TotalDeliveries: r.TotalDeliveries,
			Busy:            r.Busy,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeRiderApproval handles PUT /api/v1/admin/riders/{id}/approval.
func (s *Server) ChangeRiderApproval(ctx echo.Context, id uuid.UUID) error {
	var req ChangeApprovalRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	approval, err := rider.ParseApproval(req.Status)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewChangeRiderApprovalCommand(riderID, approval)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.h.ChangeApproval.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRiderResponse(r))
}

// SetRiderActive handles PUT /api/v1/admin/riders/{id}/active.
func (s *Server) SetRiderActive(ctx echo.Context, id uuid.UUID) error {
	var req SetActiveRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	riderID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewSetRiderActiveCommand(riderID, *req.Active)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.h.SetRiderActive.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toRiderResponse(r))
}

// GetFeeConfiguration handles GET /api/v1/admin/fees.
func (s *Server) GetFeeConfiguration(ctx echo.Context) error {
	cfg, err := s.h.GetFees.Handle(ctx.Request().Context(), queries.NewGetFeeConfigurationQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, FeeConfigurationResponse{
		DeliveryFee:    cfg.DeliveryFee,
		CommissionRate: cfg.CommissionRate,
		TaxRate:        cfg.TaxRate,
	})
}

// UpdateFeeConfiguration handles PUT /api/v1/admin/fees.
func (s *Server) UpdateFeeConfiguration(ctx echo.Context) error {
	var req FeeConfigurationRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	deliveryFee, err := kernel.MoneyFromString(req.DeliveryFee)
	if err != nil {
		return s.fail(ctx, err)
	}
	commissionRate, err := kernel.PercentFromString(req.CommissionRate)
	if err != nil {
		return s.fail(ctx, err)
	}
	taxRate, err := kernel.PercentFromString(req.TaxRate)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd := commands.NewUpdateFeeConfigurationCommand(deliveryFee, commissionRate, taxRate)
	if err = s.h.UpdateFees.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, FeeConfigurationResponse{
		DeliveryFee:    deliveryFee,
		CommissionRate: commissionRate,
		TaxRate:        taxRate,
	})
}

// GetFeeQuote handles GET /api/v1/fees/quote.
func (s *Server) GetFeeQuote(ctx echo.Context, params GetFeeQuoteParams) error {
	subtotal, err := kernel.MoneyFromString(params.Subtotal)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.h.GetFeeQuote.Handle(ctx.Request().Context(), queries.NewGetFeeQuoteQuery(subtotal))
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toQuoteResponse(quote))
}

// CreateRestaurant handles POST /api/v1/admin/restaurants.
func (s *Server) CreateRestaurant(ctx echo.Context) error {
	var req CreateRestaurantRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	cmd, err := commands.NewCreateRestaurantCommand(req.Name, req.ContactEmail, req.OwnerEmail)
	if err != nil {
		return s.fail(ctx, err)
	}

	r, err := s.h.CreateRestaurant.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toRestaurantResponse(r))
}

// AddMeal handles POST /api/v1/admin/restaurants/{id}/meals. Meals are available unless
// the request says otherwise.
func (s *Server) AddMeal(ctx echo.Context, id uuid.UUID) error {
	var req AddMealRequest
	if err := bindAndValidate(ctx, &req); err != nil {
		return err
	}

	restaurantID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}
	price, err := kernel.MoneyFromString(req.Price)
	if err != nil {
		return s.fail(ctx, err)
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	cmd, err := commands.NewAddMealCommand(restaurantID, req.Name, price, available)
	if err != nil {
		return s.fail(ctx, err)
	}

	m, err := s.h.AddMeal.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toMealResponse(m))
}

// CreatePayout handles POST /api/v1/admin/restaurants/{id}/payouts.
func (s *Server) CreatePayout(ctx echo.Context, id uuid.UUID) error {
	restaurantID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewCreatePayoutCommand(restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	payout, err := s.h.CreatePayout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toPayoutResponse(payout))
}

// GetRestaurantEarnings handles GET /api/v1/restaurants/{id}/earnings.
func (s *Server) GetRestaurantEarnings(ctx echo.Context, id uuid.UUID) error {
	restaurantID, err := kernel.UUIDFromGoogle(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetRestaurantEarningsQuery(restaurantID)
	if err != nil {
		return s.fail(ctx, err)
	}

	e, err := s.h.GetRestaurantEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RestaurantEarningsResponse{
		RestaurantID:    e.RestaurantID,
		TotalNet:        e.TotalNet,
		UnpaidNet:       e.UnpaidNet,
		TotalCommission: e.TotalCommission,
		Earnings:        e.Earnings,
		UnpaidEarnings:  e.UnpaidEarnings,
	})
}

// bindAndValidate decodes the JSON body into req and runs its validate tags.
func bindAndValidate(ctx echo.Context, req any) error {
	if err := ctx.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := ctx.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
