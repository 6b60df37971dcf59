package riderrepo_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "mealdispatch/internal/adapters/out/postgres"
	"mealdispatch/internal/adapters/out/postgres/riderrepo"
	"mealdispatch/internal/core/domain/model/kernel"
	"mealdispatch/internal/core/domain/model/rider"
	"mealdispatch/internal/pkg/errs"

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

type RiderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *riderrepo.GormRiderRepository
	tracker    *MockAggregateTracker
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupSuite() {
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

func (suite *RiderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE assignments, riders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return().Maybe()
	suite.repository = riderrepo.NewGormRiderRepository(suite.db, suite.tracker)
}

func (suite *RiderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RiderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	r, err := rider.NewRider(kernel.NewUUID(), "Alex", time.Now().UTC())
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, r))

	stored, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal("Alex", stored.Name())
	suite.Equal(rider.ApprovalPending, stored.Approval())
	suite.True(stored.IsActive())
	suite.False(stored.IsOnline())
	suite.Nil(stored.LastActiveAt())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestUpdate() {
	ctx := context.Background()
	r, err := rider.NewRider(kernel.NewUUID(), "Alex", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, r))

	now := time.Now().UTC()
	suite.Require().NoError(r.ChangeApproval(rider.Approved, now))
	suite.Require().NoError(r.SetOnline(true, now))
	r.RecordDelivery(now)
	suite.Require().NoError(suite.repository.Update(ctx, r))

	stored, err := suite.repository.Get(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.Approved, stored.Approval())
	suite.True(stored.IsOnline())
	suite.Equal(1, stored.TotalDeliveries())
	suite.Require().NotNil(stored.LastActiveAt())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGetAllFree_FiltersAndOrdersByIdleTime() {
	ctx := context.Background()
	now := time.Now().UTC()
	longAgo := now.Add(-2 * time.Hour)
	recently := now.Add(-5 * time.Minute)

	neverActive := suite.addRider("Never", rider.Approved, true, true, nil)
	idleLong := suite.addRider("Idle", rider.Approved, true, true, &longAgo)
	busyRecent := suite.addRider("Recent", rider.Approved, true, true, &recently)
	suite.addRider("Offline", rider.Approved, false, true, nil)
	suite.addRider("Pending", rider.ApprovalPending, true, true, nil)
	suite.addRider("Inactive", rider.Approved, true, false, nil)
	withLiveAssignment := suite.addRider("Carrying", rider.Approved, true, true, nil)

	suite.Require().NoError(suite.db.Exec(
		"INSERT INTO assignments (id, order_id, rider_id, status, delivery_fee, assigned_at, updated_at) VALUES (?, ?, ?, 2, 50, now(), now())",
		kernel.NewUUID().String(), kernel.NewUUID().String(), withLiveAssignment.ID().String(),
	).Error)

	free, err := suite.repository.GetAllFree(ctx)
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(free))
	for _, r := range free {
		ids = append(ids, r.ID())
	}
	suite.Equal([]kernel.UUID{neverActive.ID(), idleLong.ID(), busyRecent.ID()}, ids)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGetAllFree_SkipsRidersLockedByAnotherTransaction() {
	ctx := context.Background()
	suite.addRider("Alex", rider.Approved, true, true, nil)
	suite.addRider("Sam", rider.Approved, true, true, nil)

	first := suite.db.Begin()
	suite.Require().NoError(first.Error)
	defer first.Rollback()
	second := suite.db.Begin()
	suite.Require().NoError(second.Error)
	defer second.Rollback()

	claimed, err := riderrepo.NewGormRiderRepository(first, suite.tracker).GetAllFree(ctx)
	suite.Require().NoError(err)
	suite.Len(claimed, 2)

	concurrent := riderrepo.NewGormRiderRepository(second, suite.tracker)
	skipped, err := concurrent.GetAllFree(ctx)
	suite.Require().NoError(err)
	suite.Empty(skipped)

	suite.Require().NoError(first.Rollback().Error)

	released, err := concurrent.GetAllFree(ctx)
	suite.Require().NoError(err)
	suite.Len(released, 2)
}

func (suite *RiderRepositoryIntegrationTestSuite) addRider(
	name string,
	approval rider.Approval,
	online, active bool,
	lastActiveAt *time.Time,
) *rider.Rider {
	now := time.Now().UTC()
	r, err := rider.RestoreRider(kernel.NewUUID(), name, approval, online, active, lastActiveAt, 0, now, now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), r))
	return r
}

func TestRiderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(RiderRepositoryIntegrationTestSuite))
}
