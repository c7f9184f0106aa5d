package jobs

import (
	"context"
	"log/slog"

	"ordering/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OrderMonitoringJob periodically reports the number of in-flight orders.
// Runs every minute.
type OrderMonitoringJob struct {
	handler queries.GetUncompletedOrdersQueryHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderMonitoringJob creates a new monitoring job around the uncompleted
// orders query handler.
func NewOrderMonitoringJob(handler queries.GetUncompletedOrdersQueryHandler, logger *slog.Logger) *OrderMonitoringJob {
	return &OrderMonitoringJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "order_monitoring_job"),
	}
}

// Start begins the monitoring job to run every minute.
func (j *OrderMonitoringJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		query := queries.NewGetUncompletedOrdersQuery()

		orders, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.ErrorContext(ctx, "Order monitoring job failed", "error", err)
			return
		}

		j.logger.InfoContext(ctx, "Order pipeline status", "uncompleted_orders", len(orders))
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order monitoring job started (running every minute)")
	return nil
}

// Stop stops the monitoring job.
func (j *OrderMonitoringJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order monitoring job stopped")
}
