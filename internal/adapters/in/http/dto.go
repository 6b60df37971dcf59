package http

import (
	"time"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/application/usecases/queries"
	"mealdispatch/internal/core/domain/model/assignment"
	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/core/domain/services"

	"github.com/google/uuid"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type OrderLineRequest struct {
	MealID   uuid.UUID `json:"meal_id"  validate:"required"`
	Quantity int       `json:"quantity" validate:"gte=1,lte=1000"`
}

type CreateOrderRequest struct {
	CustomerID      uuid.UUID          `json:"customer_id"      validate:"required"`
	RestaurantID    uuid.UUID          `json:"restaurant_id"    validate:"required"`
	Items           []OrderLineRequest `json:"items"            validate:"required,min=1,dive"`
	DeliveryAddress string             `json:"delivery_address" validate:"required"`
	Notes           string             `json:"notes"`
}

type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

type RegisterRiderRequest struct {
	Name string `json:"name" validate:"required"`
}

type SetOnlineRequest struct {
	Online *bool `json:"online" validate:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type ChangeApprovalRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected suspended"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

type AssignRiderRequest struct {
	OrderID     uuid.UUID `json:"order_id"     validate:"required"`
	RiderID     uuid.UUID `json:"rider_id"     validate:"required"`
	DeliveryFee *string   `json:"delivery_fee" validate:"omitempty,numeric"`
}

type CancelAssignmentRequest struct {
	Reason string `json:"reason"`
}

type FeeConfigurationRequest struct {
	DeliveryFee    string `json:"delivery_fee"    validate:"required,numeric"`
	CommissionRate string `json:"commission_rate" validate:"required,numeric"`
	TaxRate        string `json:"tax_rate"        validate:"required,numeric"`
}

type CreateRestaurantRequest struct {
	Name         string `json:"name"          validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	OwnerEmail   string `json:"owner_email"   validate:"omitempty,email"`
}

type AddMealRequest struct {
	Name      string `json:"name"      validate:"required"`
	Price     string `json:"price"     validate:"required,numeric"`
	Available *bool  `json:"available"`
}

type QuoteResponse struct {
	Subtotal    kernel.Money `json:"subtotal"`
	DeliveryFee kernel.Money `json:"delivery_fee"`
	Tax         kernel.Money `json:"tax"`
	Total       kernel.Money `json:"total"`
}

func toQuoteResponse(q services.Quote) QuoteResponse {
	return QuoteResponse{Subtotal: q.Subtotal, DeliveryFee: q.DeliveryFee, Tax: q.Tax, Total: q.Total}
}

type CreateOrderResponse struct {
	OrderID       kernel.UUID   `json:"order_id"`
	Total         kernel.Money  `json:"total"`
	CustomerTotal QuoteResponse `json:"customer_total"`
}

type OrderStatusResponse struct {
	ID                 kernel.UUID `json:"id"`
	Status             string      `json:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty"`
}

func toOrderStatusResponse(o *order.Order) OrderStatusResponse {
	return OrderStatusResponse{ID: o.ID(), Status: o.Status().String(), CancellationReason: o.CancellationReason()}
}

type OrderItemResponse struct {
	MealID    kernel.UUID  `json:"meal_id"`
	MealName  string       `json:"meal_name"`
	Quantity  int          `json:"quantity"`
	UnitPrice kernel.Money `json:"unit_price"`
	Subtotal  kernel.Money `json:"subtotal"`
}

type OrderAssignmentResponse struct {
	ID         kernel.UUID `json:"id"`
	RiderID    kernel.UUID `json:"rider_id"`
	Status     string      `json:"status"`
	AssignedAt time.Time   `json:"assigned_at"`
}

type OrderResponse struct {
	ID                 kernel.UUID              `json:"id"`
	CustomerID         kernel.UUID              `json:"customer_id"`
	RestaurantID       kernel.UUID              `json:"restaurant_id"`
	Status             string                   `json:"status"`
	Total              kernel.Money             `json:"total"`
	DeliveryAddress    string                   `json:"delivery_address"`
	Notes              string                   `json:"notes,omitempty"`
	CancellationReason string                   `json:"cancellation_reason,omitempty"`
	Items              []OrderItemResponse      `json:"items"`
	Assignment         *OrderAssignmentResponse `json:"assignment"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

func toOrderResponse(o queries.GetOrderQueryResponse) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			MealID:    item.MealID,
			MealName:  item.MealName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}

	response := OrderResponse{
		ID:                 o.ID,
		CustomerID:         o.CustomerID,
		RestaurantID:       o.RestaurantID,
		Status:             o.Status,
		Total:              o.Total,
		DeliveryAddress:    o.DeliveryAddress,
		Notes:              o.Notes,
		CancellationReason: o.CancellationReason,
		Items:              items,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
	if o.Assignment != nil {
		response.Assignment = &OrderAssignmentResponse{
			ID:         o.Assignment.ID,
			RiderID:    o.Assignment.RiderID,
			Status:     o.Assignment.Status,
			AssignedAt: o.Assignment.AssignedAt,
		}
	}
	return response
}

type AvailableOrderResponse struct {
	ID              kernel.UUID  `json:"id"`
	RestaurantID    kernel.UUID  `json:"restaurant_id"`
	Total           kernel.Money `json:"total"`
	DeliveryAddress string       `json:"delivery_address"`
	Items           int          `json:"items"`
	CreatedAt       time.Time    `json:"created_at"`
}

type AssignmentResponse struct {
	ID          kernel.UUID  `json:"id"`
	OrderID     kernel.UUID  `json:"order_id"`
	RiderID     kernel.UUID  `json:"rider_id"`
	Status      string       `json:"status"`
	DeliveryFee kernel.Money `json:"delivery_fee"`
	Notes       string       `json:"notes,omitempty"`
	Reason      string       `json:"reason,omitempty"`
	AssignedAt  time.Time    `json:"assigned_at"`
	PickedUpAt  *time.Time   `json:"picked_up_at"`
	DeliveredAt *time.Time   `json:"delivered_at"`
}

func toAssignmentResponse(a *assignment.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          a.ID(),
		OrderID:     a.OrderID(),
		RiderID:     a.RiderID(),
		Status:      a.Status().String(),
		DeliveryFee: a.DeliveryFee(),
		Notes:       a.Notes(),
		Reason:      a.Reason(),
		AssignedAt:  a.AssignedAt(),
		PickedUpAt:  a.PickedUpAt(),
		DeliveredAt: a.DeliveredAt(),
	}
}

type RiderAssignmentResponse struct {
	AssignmentResponse
	DeliveryAddress string       `json:"delivery_address"`
	OrderTotal      kernel.Money `json:"order_total"`
}

func toRiderAssignmentResponse(riderID kernel.UUID, a queries.RiderAssignmentResponse) RiderAssignmentResponse {
	return RiderAssignmentResponse{
		AssignmentResponse: AssignmentResponse{
			ID:          a.ID,
			OrderID:     a.OrderID,
			RiderID:     riderID,
			Status:      a.Status,
			DeliveryFee: a.DeliveryFee,
			Notes:       a.Notes,
			Reason:      a.Reason,
			AssignedAt:  a.AssignedAt,
			PickedUpAt:  a.PickedUpAt,
			DeliveredAt: a.DeliveredAt,
		},
		DeliveryAddress: a.DeliveryAddress,
		OrderTotal:      a.OrderTotal,
	}
}

type RiderResponse struct {
	ID              kernel.UUID `json:"id"`
	Name            string      `json:"name"`
	Approval        string      `json:"approval"`
	Online          bool        `json:"online"`
	Active          bool        `json:"active"`
	TotalDeliveries int         `json:"total_deliveries"`
	LastActiveAt    *time.Time  `json:"last_active_at"`
}

func toRiderResponse(r *rider.Rider) RiderResponse {
	return RiderResponse{
		ID:              r.ID(),
		Name:            r.Name(),
		Approval:        r.Approval().String(),
		Online:          r.IsOnline(),
		Active:          r.IsActive(),
		TotalDeliveries: r.TotalDeliveries(),
		LastActiveAt:    r.LastActiveAt(),
	}
}

type EligibleRiderResponse struct {
	ID              kernel.UUID `json:"id"`
	Name            string      `json:"name"`
	LastActiveAt    *time.Time  `json:"last_active_at"`
	TotalDeliveries int         `json:"total_deliveries"`
	Busy            bool        `json:"busy"`
}

type EligibilityResponse struct {
	RiderID  kernel.UUID `json:"rider_id"`
	Eligible bool        `json:"eligible"`
	Approval string      `json:"approval"`
	Online   bool        `json:"online"`
	Active   bool        `json:"active"`
	Reason   string      `json:"reason,omitempty"`
}

type RiderEarningsResponse struct {
	RiderID    kernel.UUID  `json:"rider_id"`
	Total      kernel.Money `json:"total"`
	Today      kernel.Money `json:"today"`
	ThisWeek   kernel.Money `json:"this_week"`
	ThisMonth  kernel.Money `json:"this_month"`
	Deliveries int          `json:"deliveries"`
	Average    kernel.Money `json:"average"`
}

type FeeConfigurationResponse struct {
	DeliveryFee    kernel.Money   `json:"delivery_fee"`
	CommissionRate kernel.Percent `json:"commission_rate"`
	TaxRate        kernel.Percent `json:"tax_rate"`
}

type RestaurantResponse struct {
	ID                kernel.UUID `json:"id"`
	Name              string      `json:"name"`
	NotificationEmail string      `json:"notification_email"`
	Active            bool        `json:"active"`
}

func toRestaurantResponse(r *catalog.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:                r.ID(),
		Name:              r.Name(),
		NotificationEmail: r.NotificationEmail(),
		Active:            r.IsActive(),
	}
}

type MealResponse struct {
	ID           kernel.UUID  `json:"id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	Name         string       `json:"name"`
	Price        kernel.Money `json:"price"`
	Available    bool         `json:"available"`
}

func toMealResponse(m *catalog.Meal) MealResponse {
	return MealResponse{
		ID:           m.ID(),
		RestaurantID: m.RestaurantID(),
		Name:         m.Name(),
		Price:        m.Price(),
		Available:    m.IsAvailable(),
	}
}

type RestaurantEarningsResponse struct {
	RestaurantID    kernel.UUID  `json:"restaurant_id"`
	TotalNet        kernel.Money `json:"total_net"`
	UnpaidNet       kernel.Money `json:"unpaid_net"`
	TotalCommission kernel.Money `json:"total_commission"`
	Earnings        int          `json:"earnings"`
	UnpaidEarnings  int          `json:"unpaid_earnings"`
}

type PayoutResponse struct {
	BatchID      kernel.UUID  `json:"batch_id"`
	RestaurantID kernel.UUID  `json:"restaurant_id"`
	Earnings     int          `json:"earnings"`
	Amount       kernel.Money `json:"amount"`
	PaidAt       time.Time    `json:"paid_at"`
}

func toPayoutResponse(p commands.Payout) PayoutResponse {
	return PayoutResponse{
		BatchID:      p.BatchID,
		RestaurantID: p.RestaurantID,
		Earnings:     p.Earnings,
		Amount:       p.Amount,
		PaidAt:       p.PaidAt,
	}
}
