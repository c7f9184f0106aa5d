package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/domain/model/payment"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers to verify database persistence
// behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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

	// Get connection string and connect to database
	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Auto-migrate the schema
	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.PaymentDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	// Clean the database before each test
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, payments").Error)

	// Create fresh repository and tracker for each test
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Error() {
	ctx := context.Background()

	err := suite.repository.Add(ctx, &order.Order{})

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTrip() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	attempt, err := payment.NewPayment(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddPayment(attempt))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(testOrder.Status(), loaded.Status())
	suite.True(loaded.DeliveryLocation().IsEqual(testOrder.DeliveryLocation()))
	suite.Equal(testOrder.TotalCents(), loaded.TotalCents())
	suite.Require().Len(loaded.Payments(), 1)
	suite.True(loaded.Payments()[0].IsEqual(attempt))
	suite.Equal(payment.New, loaded.Payments()[0].Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusAndPayments() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	attempt, err := payment.NewPayment(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddPayment(attempt))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Advance the lifecycle and the payment state, then persist
	suite.Require().NoError(testOrder.Create())
	suite.Require().NoError(attempt.Authorize())
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Created, loaded.Status())
	suite.Require().Len(loaded.Payments(), 1)
	suite.Equal(payment.Authorized, loaded.Payments()[0].Status())

	// Items must not be duplicated by the update
	suite.Len(loaded.Items(), len(testOrder.Items()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_AppendsNewPayment() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	first, err := payment.NewPayment(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddPayment(first))

	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Fail the first attempt and open a second one
	first.SetLastError("card declined")
	suite.Require().NoError(first.Fail())
	second, err := payment.NewPayment(kernel.NewUUID(), testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddPayment(second))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(loaded.Payments(), 2)

	failed, err := loaded.PaymentByID(first.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.Failed, failed.Status())
	suite.Require().NotNil(failed.LastError())
	suite.Equal("card declined", *failed.LastError())

	active, err := loaded.ActivePayment()
	suite.Require().NoError(err)
	suite.True(active.IsEqual(second))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_UnknownOrder_Error() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	location, err := kernel.NewLocation(5, 5)
	suite.Require().NoError(err)
	item, err := order.NewItem("Margherita", 2, 950)
	suite.Require().NoError(err)
	testOrder, err := order.NewOrder(kernel.NewUUID(), location, []order.Item{item})
	suite.Require().NoError(err)

	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
