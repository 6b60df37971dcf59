package commands_test

import (
	"errors"
	"testing"
	"time"

	"mealdispatch/internal/core/application/usecases/commands"
	"mealdispatch/internal/core/domain/model/catalog"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createOrderFixture struct {
	restaurant  *catalog.Restaurant
	meal        *catalog.Meal
	restaurants *MockRestaurantRepository
	meals       *MockMealRepository
	orders      *MockOrderRepository
	uow         *MockUoW
	factory     *MockOrderUoWFactory
}

func newCreateOrderFixture(t *testing.T) createOrderFixture {
	t.Helper()
	restaurant, err := catalog.NewRestaurant(kernel.NewUUID(), "Thai Corner", "orders@thai.example", "", time.Now())
	require.NoError(t, err)
	meal, err := catalog.NewMeal(kernel.NewUUID(), restaurant.ID(), "Pad Thai", money(t, "12.50"), true)
	require.NoError(t, err)

	f := createOrderFixture{
		restaurant:  restaurant,
		meal:        meal,
		restaurants: new(MockRestaurantRepository),
		meals:       new(MockMealRepository),
		orders:      new(MockOrderRepository),
		uow:         new(MockUoW),
		factory:     new(MockOrderUoWFactory),
	}
	f.factory.On("Create").Return(f.uow).Once()
	f.uow.On("RestaurantRepository").Return(f.restaurants).Maybe()
	f.uow.On("MealRepository").Return(f.meals).Maybe()
	f.uow.On("OrderRepository").Return(f.orders).Maybe()
	return f
}

func (f createOrderFixture) command(t *testing.T, quantity int) commands.CreateOrderCommand {
	t.Helper()
	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		f.restaurant.ID(),
		[]commands.OrderLine{{MealID: f.meal.ID(), Quantity: quantity}},
		"12 Baker St",
		"leave at the door",
	)
	require.NoError(t, err)
	return cmd
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t, 2)

	var stored *order.Order
	mock.InOrder(
		f.uow.On("Begin", ctx).Return(nil).Once(),
		f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once(),
		f.meals.On("Get", ctx, f.meal.ID()).Return(f.meal, nil).Once(),
		f.orders.On("Add", ctx, mock.AnythingOfType("*order.Order")).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*order.Order) }).
			Return(nil).Once(),
		f.uow.On("Commit", ctx).Return(nil).Once(),
		f.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewCreateOrderCommandHandler(f.factory, defaultFees())
	res, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, stored.ID(), res.OrderID)
	assert.Equal(t, order.Pending, stored.Status())
	assert.Equal(t, "25.00", res.Total.String())
	assert.Equal(t, "50.00", res.CustomerTotal.DeliveryFee.String())
	assert.Equal(t, "6.00", res.CustomerTotal.Tax.String())
	assert.Equal(t, "81.00", res.CustomerTotal.Total.String())

	items := stored.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Pad Thai", items[0].MealName())
	assert.Equal(t, "12.50", items[0].UnitPrice().String())

	f.uow.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.factory.AssertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_InactiveRestaurant(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	f.restaurant.SetActive(false)
	cmd := f.command(t, 1)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()

	handler := commands.NewCreateOrderCommandHandler(f.factory, defaultFees())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownMeal(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t, 1)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
	f.meals.On("Get", ctx, f.meal.ID()).
		Return(nil, errs.NewObjectNotFoundError("meal", f.meal.ID().String())).Once()

	handler := commands.NewCreateOrderCommandHandler(f.factory, defaultFees())
	_, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	f.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_MealFromAnotherRestaurant(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t, 1)

	foreign, err := catalog.NewMeal(f.meal.ID(), kernel.NewUUID(), "Burger", money(t, "9.00"), true)
	require.NoError(t, err)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
	f.meals.On("Get", ctx, f.meal.ID()).Return(foreign, nil).Once()

	handler := commands.NewCreateOrderCommandHandler(f.factory, defaultFees())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	f := newCreateOrderFixture(t)
	cmd := f.command(t, 1)

	f.uow.On("Begin", ctx).Return(nil).Once()
	f.uow.On("Rollback", ctx).Return(nil).Once()
	f.restaurants.On("Get", ctx, f.restaurant.ID()).Return(f.restaurant, nil).Once()
	f.meals.On("Get", ctx, f.meal.ID()).Return(f.meal, nil).Once()
	f.orders.On("Add", ctx, mock.Anything).Return(errors.New("insert failed")).Once()

	handler := commands.NewCreateOrderCommandHandler(f.factory, defaultFees())
	_, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "insert failed")
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_NotConstructed(t *testing.T) {
	factory := new(MockOrderUoWFactory)
	handler := commands.NewCreateOrderCommandHandler(factory, defaultFees())

	_, err := handler.Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestNewCreateOrderCommand_Validation(t *testing.T) {
	customerID, restaurantID, mealID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	tests := []struct {
		name    string
		lines   []commands.OrderLine
		address string
		wantErr error
	}{
		{"no items", nil, "12 Baker St", errs.ErrValueIsRequired},
		{"zero quantity", []commands.OrderLine{{MealID: mealID, Quantity: 0}}, "12 Baker St", errs.ErrValueIsOutOfRange},
		{"quantity above limit", []commands.OrderLine{{MealID: mealID, Quantity: 1_000_000_000}}, "12 Baker St", errs.ErrValueIsOutOfRange},
		{"missing meal id", []commands.OrderLine{{Quantity: 1}}, "12 Baker St", errs.ErrValueIsRequired},
		{"blank address", []commands.OrderLine{{MealID: mealID, Quantity: 1}}, "  ", errs.ErrValueIsRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := commands.NewCreateOrderCommand(customerID, restaurantID, tt.lines, tt.address, "")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewCreateOrderCommand_CopiesLines(t *testing.T) {
	lines := []commands.OrderLine{{MealID: kernel.NewUUID(), Quantity: 1}}
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), kernel.NewUUID(), lines, "12 Baker St", "")
	require.NoError(t, err)

	lines[0].Quantity = 99

	assert.Equal(t, 1, cmd.Lines()[0].Quantity)
	require.NoError(t, cmd.Validate())
}
