//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/handlers/tasks/projection_reseed"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/notify"
	"dispatch/internal/projection/admin"

	deliveryRepo "dispatch/internal/repository/delivery"
	ledgerRepo "dispatch/internal/repository/ledger"
	orderRepo "dispatch/internal/repository/order"
	deliveryService "dispatch/internal/service/delivery"
	earningsService "dispatch/internal/service/earnings"
	orderService "dispatch/internal/service/order"

	"dispatch/pkg/logger"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	bus *notify.Listener,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideEarningAmount,
		provideReseedInterval,

		provideOrderRepository,
		provideDeliveryRepository,
		provideLedgerRepository,

		provideServiceOrder,
		provideServiceDelivery,
		provideServiceEarnings,

		provideAdminBoard,
		provideProjectionReseedTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
		wire.Bind(new(ServiceDelivery), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceEarnings), new(*earningsService.Service)),

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),
		wire.Bind(new(deliveryService.Repository), new(*deliveryRepo.Repository)),
		wire.Bind(new(deliveryService.OrderService), new(*orderService.Service)),
		wire.Bind(new(deliveryService.Ledger), new(*ledgerRepo.Repository)),
		wire.Bind(new(deliveryService.TxManager), new(*tx.Manager)),
		wire.Bind(new(earningsService.Ledger), new(*ledgerRepo.Repository)),

		wire.Bind(new(admin.Bus), new(*notify.Listener)),
		wire.Bind(new(admin.OrderService), new(*orderService.Service)),
		wire.Bind(new(admin.DeliveryService), new(*deliveryService.Delivery)),
		wire.Bind(new(projection_reseed.Board), new(*admin.Board)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-payment-completed)
func InitializeKafkaWorkerApp(
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideQuerier,

		provideOrderRepository,
		provideServiceOrder,

		wire.Bind(new(orderService.Repository), new(*orderRepo.Repository)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
