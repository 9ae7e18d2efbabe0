//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_events_get_test
package order_events_get

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Bus interface {
	Subscribe(table string) (<-chan notify.Event, func())
}

type OrderService interface {
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
}

type DeliveryService interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error)
}
