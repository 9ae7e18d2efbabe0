package app

import (
	"context"
	"time"

	delivery_claim_post "dispatch/internal/handlers/rest/delivery_claim_post"
	delivery_complete_post "dispatch/internal/handlers/rest/delivery_complete_post"
	delivery_feed_events_get "dispatch/internal/handlers/rest/delivery_feed_events_get"
	delivery_feed_get "dispatch/internal/handlers/rest/delivery_feed_get"
	earnings_get "dispatch/internal/handlers/rest/earnings_get"
	order_events_get "dispatch/internal/handlers/rest/order_events_get"
	order_post "dispatch/internal/handlers/rest/order_post"
	orders_get "dispatch/internal/handlers/rest/orders_get"
	"dispatch/internal/handlers/tasks/projection_reseed"
	"dispatch/internal/pkg/config"
	"dispatch/internal/projection/admin"

	deliveryRepo "dispatch/internal/repository/delivery"
	ledgerRepo "dispatch/internal/repository/ledger"
	orderRepo "dispatch/internal/repository/order"
	deliveryService "dispatch/internal/service/delivery"
	earningsService "dispatch/internal/service/earnings"
	orderService "dispatch/internal/service/order"

	"dispatch/pkg/background"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type (
	ReseedInterval time.Duration
	EarningAmount  int64
)

type Application struct {
	ServiceOrder      ServiceOrder
	ServiceDelivery   ServiceDelivery
	ServiceEarnings   ServiceEarnings
	AdminBoard        *admin.Board
	BackgroundWorkers *background.Worker
}

type ServiceOrder interface {
	order_post.Service
	orders_get.OrderService
	order_events_get.OrderService
}

type ServiceDelivery interface {
	delivery_claim_post.Service
	delivery_complete_post.Service
	orders_get.DeliveryService
	order_events_get.DeliveryService
	delivery_feed_get.DeliveryService
	delivery_feed_events_get.DeliveryService
}

type ServiceEarnings interface {
	earnings_get.Service
	delivery_feed_get.EarningsService
	delivery_feed_events_get.EarningsService
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideOrderRepository(querier *querier.Querier) *orderRepo.Repository {
	return orderRepo.New(querier)
}

func provideDeliveryRepository(querier *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(querier)
}

func provideLedgerRepository(querier *querier.Querier) *ledgerRepo.Repository {
	return ledgerRepo.New(querier)
}

func provideServiceOrder(repository orderService.Repository) *orderService.Service {
	return orderService.New(repository)
}

func provideServiceDelivery(
	repository deliveryService.Repository,
	orderSvc deliveryService.OrderService,
	ledger deliveryService.Ledger,
	txManager deliveryService.TxManager,
	earningAmount EarningAmount,
) *deliveryService.Delivery {
	return deliveryService.New(
		repository,
		orderSvc,
		ledger,
		txManager,
		int64(earningAmount),
	)
}

func provideServiceEarnings(ledger earningsService.Ledger) *earningsService.Service {
	return earningsService.New(ledger)
}

func provideEarningAmount(cfg *config.Config) EarningAmount {
	return EarningAmount(cfg.Delivery.EarningAmount)
}

func provideReseedInterval(cfg *config.Config) ReseedInterval {
	return ReseedInterval(cfg.Tasks.ProjectionReseedInterval)
}

func provideAdminBoard(
	log logger.Logger,
	bus admin.Bus,
	orderSvc admin.OrderService,
	deliverySvc admin.DeliveryService,
) *admin.Board {
	return admin.New(log, bus, orderSvc, deliverySvc)
}

func provideProjectionReseedTask(
	log logger.Logger,
	board projection_reseed.Board,
	interval ReseedInterval,
) *projection_reseed.ProjectionReseed {
	return projection_reseed.NewProjectionReseed(log, board, time.Duration(interval))
}

func provideTaskList(
	projectionReseedTask *projection_reseed.ProjectionReseed,
) []background.Task {
	return []background.Task{
		projectionReseedTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
