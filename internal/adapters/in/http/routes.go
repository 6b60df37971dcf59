package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

const BaseURL = "/api/v1"

// GetAvailableOrdersParams defines parameters for GetAvailableOrders.
type GetAvailableOrdersParams struct {
	XRiderID uuid.UUID
}

// AdvanceAssignmentParams defines parameters for AdvanceAssignment.
type AdvanceAssignmentParams struct {
	XRiderID uuid.UUID
}

// GetRiderAssignmentsParams defines parameters for GetRiderAssignments.
type GetRiderAssignmentsParams struct {
	Scope *string
}

// GetFeeQuoteParams defines parameters for GetFeeQuote.
type GetFeeQuoteParams struct {
	Subtotal string
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// (GET /orders/{id})
	GetOrder(ctx echo.Context, id uuid.UUID) error
	// (POST /orders/{id}/status)
	TransitionOrderStatus(ctx echo.Context, id uuid.UUID) error

	// (POST /riders)
	RegisterRider(ctx echo.Context) error
	// (GET /riders/available-orders)
	GetAvailableOrders(ctx echo.Context, params GetAvailableOrdersParams) error
	// (POST /riders/{id}/accept/{order_id})
	AcceptOrder(ctx echo.Context, id uuid.UUID, orderID uuid.UUID) error
	// (PUT /riders/{id}/online)
	SetRiderOnline(ctx echo.Context, id uuid.UUID) error
	// (GET /riders/{id}/eligibility)
	GetRiderEligibility(ctx echo.Context, id uuid.UUID) error
	// (GET /riders/{id}/assignments)
	GetRiderAssignments(ctx echo.Context, id uuid.UUID, params GetRiderAssignmentsParams) error
	// (GET /riders/{id}/earnings)
	GetRiderEarnings(ctx echo.Context, id uuid.UUID) error

	// (PUT /assignments/{id})
	AdvanceAssignment(ctx echo.Context, id uuid.UUID, params AdvanceAssignmentParams) error
	// (PUT /assignments/{id}/notes)
	UpdateAssignmentNotes(ctx echo.Context, id uuid.UUID) error

	// (POST /admin/assign)
	AssignRider(ctx echo.Context) error
	// (POST /admin/assignments/{id}/cancel)
	AdminCancelAssignment(ctx echo.Context, id uuid.UUID) error
	// (GET /admin/riders/eligible)
	GetEligibleRiders(ctx echo.Context) error
	// (PUT /admin/riders/{id}/approval)
	ChangeRiderApproval(ctx echo.Context, id uuid.UUID) error
	// (PUT /admin/riders/{id}/active)
	SetRiderActive(ctx echo.Context, id uuid.UUID) error
	// (GET /admin/fees)
	GetFeeConfiguration(ctx echo.Context) error
	// (PUT /admin/fees)
	UpdateFeeConfiguration(ctx echo.Context) error
	// (POST /admin/restaurants)
	CreateRestaurant(ctx echo.Context) error
	// (POST /admin/restaurants/{id}/meals)
	AddMeal(ctx echo.Context, id uuid.UUID) error
	// (POST /admin/restaurants/{id}/payouts)
	CreatePayout(ctx echo.Context, id uuid.UUID) error

	// (GET /fees/quote)
	GetFeeQuote(ctx echo.Context, params GetFeeQuoteParams) error
	// (GET /restaurants/{id}/earnings)
	GetRestaurantEarnings(ctx echo.Context, id uuid.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	return w.Handler.CreateOrder(ctx)
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetOrder(ctx, id)
}

// TransitionOrderStatus converts echo context to params.
func (w *ServerInterfaceWrapper) TransitionOrderStatus(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.TransitionOrderStatus(ctx, id)
}

// RegisterRider converts echo context to params.
func (w *ServerInterfaceWrapper) RegisterRider(ctx echo.Context) error {
	return w.Handler.RegisterRider(ctx)
}

// GetAvailableOrders converts echo context to params.
func (w *ServerInterfaceWrapper) GetAvailableOrders(ctx echo.Context) error {
	var params GetAvailableOrdersParams

	riderID, err := bindHeaderUUID(ctx, "X-Rider-ID")
	if err != nil {
		return err
	}
	params.XRiderID = riderID

	return w.Handler.GetAvailableOrders(ctx, params)
}

// AcceptOrder converts echo context to params.
func (w *ServerInterfaceWrapper) AcceptOrder(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	orderID, err := bindPathUUID(ctx, "order_id")
	if err != nil {
		return err
	}
	return w.Handler.AcceptOrder(ctx, id, orderID)
}

// SetRiderOnline converts echo context to params.
func (w *ServerInterfaceWrapper) SetRiderOnline(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.SetRiderOnline(ctx, id)
}

// GetRiderEligibility converts echo context to params.
func (w *ServerInterfaceWrapper) GetRiderEligibility(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetRiderEligibility(ctx, id)
}

// GetRiderAssignments converts echo context to params.
func (w *ServerInterfaceWrapper) GetRiderAssignments(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var params GetRiderAssignmentsParams
	err = runtime.BindQueryParameter("form", true, false, "scope", ctx.QueryParams(), &params.Scope)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter scope: %s", err))
	}

	return w.Handler.GetRiderAssignments(ctx, id, params)
}

// GetRiderEarnings converts echo context to params.
func (w *ServerInterfaceWrapper) GetRiderEarnings(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetRiderEarnings(ctx, id)
}

// AdvanceAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) AdvanceAssignment(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}

	var params AdvanceAssignmentParams
	riderID, err := bindHeaderUUID(ctx, "X-Rider-ID")
	if err != nil {
		return err
	}
	params.XRiderID = riderID

	return w.Handler.AdvanceAssignment(ctx, id, params)
}

// UpdateAssignmentNotes converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateAssignmentNotes(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.UpdateAssignmentNotes(ctx, id)
}

// AssignRider converts echo context to params.
func (w *ServerInterfaceWrapper) AssignRider(ctx echo.Context) error {
	return w.Handler.AssignRider(ctx)
}

// AdminCancelAssignment converts echo context to params.
func (w *ServerInterfaceWrapper) AdminCancelAssignment(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.AdminCancelAssignment(ctx, id)
}

// GetEligibleRiders converts echo context to params.
func (w *ServerInterfaceWrapper) GetEligibleRiders(ctx echo.Context) error {
	return w.Handler.GetEligibleRiders(ctx)
}

// ChangeRiderApproval converts echo context to params.
func (w *ServerInterfaceWrapper) ChangeRiderApproval(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.ChangeRiderApproval(ctx, id)
}

// SetRiderActive converts echo context to params.
func (w *ServerInterfaceWrapper) SetRiderActive(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.SetRiderActive(ctx, id)
}

// GetFeeConfiguration converts echo context to params.
func (w *ServerInterfaceWrapper) GetFeeConfiguration(ctx echo.Context) error {
	return w.Handler.GetFeeConfiguration(ctx)
}

// UpdateFeeConfiguration converts echo context to params.
func (w *ServerInterfaceWrapper) UpdateFeeConfiguration(ctx echo.Context) error {
	return w.Handler.UpdateFeeConfiguration(ctx)
}

// CreateRestaurant converts echo context to params.
func (w *ServerInterfaceWrapper) CreateRestaurant(ctx echo.Context) error {
	return w.Handler.CreateRestaurant(ctx)
}

// AddMeal converts echo context to params.
func (w *ServerInterfaceWrapper) AddMeal(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.AddMeal(ctx, id)
}

// CreatePayout converts echo context to params.
func (w *ServerInterfaceWrapper) CreatePayout(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.CreatePayout(ctx, id)
}

// GetFeeQuote converts echo context to params.
func (w *ServerInterfaceWrapper) GetFeeQuote(ctx echo.Context) error {
	var params GetFeeQuoteParams
	err := runtime.BindQueryParameter("form", true, true, "subtotal", ctx.QueryParams(), &params.Subtotal)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter subtotal: %s", err))
	}
	return w.Handler.GetFeeQuote(ctx, params)
}

// GetRestaurantEarnings converts echo context to params.
func (w *ServerInterfaceWrapper) GetRestaurantEarnings(ctx echo.Context) error {
	id, err := bindPathUUID(ctx, "id")
	if err != nil {
		return err
	}
	return w.Handler.GetRestaurantEarnings(ctx, id)
}

func bindPathUUID(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindHeaderUUID(ctx echo.Context, name string) (uuid.UUID, error) {
	valueList, found := ctx.Request().Header[http.CanonicalHeaderKey(name)]
	if !found {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Header parameter %s is required, but not found", name))
	}
	if n := len(valueList); n != 1 {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Expected one value for %s, got %d", name, n))
	}

	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, valueList[0], &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationHeader, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

// EchoRouter is the subset of echo used to register routes, satisfied by *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the router under baseURL.
func RegisterHandlers(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/orders", w.CreateOrder)
	router.GET(baseURL+"/orders/:id", w.GetOrder)
	router.POST(baseURL+"/orders/:id/status", w.TransitionOrderStatus)

	router.POST(baseURL+"/riders", w.RegisterRider)
	router.GET(baseURL+"/riders/available-orders", w.GetAvailableOrders)
	router.POST(baseURL+"/riders/:id/accept/:order_id", w.AcceptOrder)
	router.PUT(baseURL+"/riders/:id/online", w.SetRiderOnline)
	router.GET(baseURL+"/riders/:id/eligibility", w.GetRiderEligibility)
	router.GET(baseURL+"/riders/:id/assignments", w.GetRiderAssignments)
	router.GET(baseURL+"/riders/:id/earnings", w.GetRiderEarnings)

	router.PUT(baseURL+"/assignments/:id", w.AdvanceAssignment)
	router.PUT(baseURL+"/assignments/:id/notes", w.UpdateAssignmentNotes)

	router.POST(baseURL+"/admin/assign", w.AssignRider)
	router.POST(baseURL+"/admin/assignments/:id/cancel", w.AdminCancelAssignment)
	router.GET(baseURL+"/admin/riders/eligible", w.GetEligibleRiders)
	router.PUT(baseURL+"/admin/riders/:id/approval", w.ChangeRiderApproval)
	router.PUT(baseURL+"/admin/riders/:id/active", w.SetRiderActive)
	router.GET(baseURL+"/admin/fees", w.GetFeeConfiguration)
	router.PUT(baseURL+"/admin/fees", w.UpdateFeeConfiguration)
	router.POST(baseURL+"/admin/restaurants", w.CreateRestaurant)
	router.POST(baseURL+"/admin/restaurants/:id/meals", w.AddMeal)
	router.POST(baseURL+"/admin/restaurants/:id/payouts", w.CreatePayout)

	router.GET(baseURL+"/fees/quote", w.GetFeeQuote)
	router.GET(baseURL+"/restaurants/:id/earnings", w.GetRestaurantEarnings)
}
