package cmd

import (
	"log/slog"

	"ordering/internal/adapters/in/http"
	"ordering/internal/adapters/in/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/redispub"
	"ordering/internal/adapters/out/routing"
	"ordering/internal/adapters/out/serialization"
	"ordering/internal/core/application/eventhandlers"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/services"
	"ordering/internal/jobs"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config             Config
	gormDB             *gorm.DB
	uowFactory         *postgres.GormUnitOfWorkFactory
	dispatcher         *eventhandlers.Dispatcher
	timelineCalculator *services.OrderTimelineCalculator
	logger             *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)

	publisher, err := redispub.NewRedisChangePublisher(redisClient)
	if err != nil {
		return nil, err
	}

	orderProcessor := services.NewPaymentProcessor()

	handler, err := eventhandlers.NewUpdateStateHandler(
		FuncEventUoWFactory(func() eventhandlers.OrderUoW {
			return uowFactory.Create()
		}),
		publisher,
		serialization.NewJSONOrderSerializer(),
		orderProcessor,
		logger,
	)
	if err != nil {
		return nil, err
	}

	dispatcher, err := eventhandlers.NewDispatcher(handler)
	if err != nil {
		return nil, err
	}

	storeLocation, err := kernel.NewLocation(
		kernel.Coordinate(config.StoreLocationX), kernel.Coordinate(config.StoreLocationY))
	if err != nil {
		return nil, err
	}

	timelineCalculator, err := services.NewOrderTimelineCalculator(
		routing.NewGridRoutingService(), storeLocation)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:             config,
		gormDB:             gormDB,
		uowFactory:         uowFactory,
		dispatcher:         dispatcher,
		timelineCalculator: timelineCalculator,
		logger:             logger,
	}, nil
}

func (c *CompositionRoot) Dispatcher() *eventhandlers.Dispatcher {
	return c.dispatcher
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateGetUncompletedOrdersQueryHandler() queries.GetUncompletedOrdersQueryHandler {
	return queries.NewGetUncompletedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB, c.timelineCalculator)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	return http.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateGetUncompletedOrdersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.dispatcher,
		c.uowFactory,
	)
}

func (c *CompositionRoot) CreateKafkaConsumer() (*kafka.Consumer, error) {
	return kafka.NewConsumer(
		[]string{c.config.KafkaHost},
		c.config.KafkaConsumerGroup,
		c.config.KafkaOrderEventsTopic,
		c.dispatcher,
		c.uowFactory,
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetUncompletedOrdersQueryHandler(), c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncEventUoWFactory func() eventhandlers.OrderUoW

func (f FuncEventUoWFactory) Create() eventhandlers.OrderUoW {
	return f()
}
