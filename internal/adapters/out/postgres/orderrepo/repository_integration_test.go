package orderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "mealdispatch/internal/adapters/out/postgres"
	"mealdispatch/internal/adapters/out/postgres/orderrepo"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/order"
	"mealdispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite checks order persistence against PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(ctx, connStr)
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(ctx, db))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments, order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return().Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_StoresItemsInOrder() {
	ctx := context.Background()
	o := suite.newOrder(order.Pending, time.Now().UTC(), "Pad Thai", "Spring Rolls", "Mango Sticky Rice")

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.CustomerID(), stored.CustomerID())
	suite.Equal(o.RestaurantID(), stored.RestaurantID())
	suite.Equal(order.Pending, stored.Status())
	suite.Equal("12 Baker St", stored.DeliveryAddress())
	suite.True(o.Total().IsEqual(stored.Total()), "total %s, got %s", o.Total(), stored.Total())

	items := stored.Items()
	suite.Require().Len(items, 3)
	suite.Equal("Pad Thai", items[0].MealName())
	suite.Equal("Spring Rolls", items[1].MealName())
	suite.Equal("Mango Sticky Rice", items[2].MealName())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_WritesStatusAndReason() {
	ctx := context.Background()
	o := suite.newOrder(order.Confirmed, time.Now().UTC(), "Pad Thai")
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Cancel("  kitchen closed ", time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, stored.Status())
	suite.Equal("kitchen closed", stored.CancellationReason())
	suite.Empty(stored.DomainEvents(), "restored orders carry no events")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	o := suite.newOrder(order.Pending, time.Now().UTC(), "Pad Thai")

	err := suite.repository.Update(context.Background(), o)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOldestReadyUnassigned() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	oldestButAssigned := suite.newOrder(order.Ready, base, "Pad Thai")
	oldestFree := suite.newOrder(order.Ready, base.Add(time.Minute), "Pad Thai")
	newer := suite.newOrder(order.Ready, base.Add(2*time.Minute), "Pad Thai")
	notReady := suite.newOrder(order.Preparing, base.Add(-time.Minute), "Pad Thai")
	for _, o := range []*order.Order{oldestButAssigned, oldestFree, newer, notReady} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO assignments (id, order_id, rider_id, status, delivery_fee, assigned_at, updated_at) VALUES (?, ?, ?, 1, 50, now(), now())",
		kernel.NewUUID().String(), oldestButAssigned.ID().String(), kernel.NewUUID().String(),
	).Error)

	found, err := suite.repository.GetOldestReadyUnassigned(ctx)
	suite.Require().NoError(err)
	suite.Equal(oldestFree.ID(), found.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOldestReadyUnassigned_NoneReady() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(order.Pending, time.Now().UTC(), "Pad Thai")))

	_, err := suite.repository.GetOldestReadyUnassigned(ctx)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetOldestReadyUnassigned_SkipsLockedRows() {
	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)
	first := suite.newOrder(order.Ready, base, "Pad Thai")
	second := suite.newOrder(order.Ready, base.Add(time.Minute), "Pad Thai")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	tx1 := suite.db.WithContext(ctx).Begin()
	defer tx1.Rollback()
	tx2 := suite.db.WithContext(ctx).Begin()
	defer tx2.Rollback()

	locked, err := orderrepo.NewGormOrderRepository(tx1, suite.tracker).GetOldestReadyUnassigned(ctx)
	suite.Require().NoError(err)
	suite.Equal(first.ID(), locked.ID())

	next, err := orderrepo.NewGormOrderRepository(tx2, suite.tracker).GetOldestReadyUnassigned(ctx)
	suite.Require().NoError(err)
	suite.Equal(second.ID(), next.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(status order.Status, createdAt time.Time, meals ...string) *order.Order {
	price, err := kernel.NewMoney(decimal.RequireFromString("9.90"))
	suite.Require().NoError(err)

	items := make([]order.Item, 0, len(meals))
	total := kernel.ZeroMoney()
	for _, name := range meals {
		item, err := order.NewItem(kernel.NewUUID(), name, 2, price)
		suite.Require().NoError(err)
		items = append(items, item)
		total = total.Add(item.Subtotal())
	}

	o, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		items, total, status, "12 Baker St", "", "", createdAt, createdAt,
	)
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
