//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_feed_get_test
package delivery_feed_get

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

type DeliveryService interface {
	ClaimablePool(ctx context.Context) ([]entities.Order, error)
	ListByPartner(ctx context.Context, partnerID string) ([]entities.Delivery, error)
}

type EarningsService interface {
	Summary(ctx context.Context, partnerID string, window entities.EarningsWindowType) (*entities.EarningsSummary, error)
}
