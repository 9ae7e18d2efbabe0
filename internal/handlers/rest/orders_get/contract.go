//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=orders_get_test
package orders_get

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type OrderService interface {
	ListByUser(ctx context.Context, userID string) ([]entities.Order, error)
}

type DeliveryService interface {
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]entities.Delivery, error)
}
