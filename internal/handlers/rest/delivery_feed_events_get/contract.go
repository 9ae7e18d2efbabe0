//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_feed_events_get_test
package delivery_feed_events_get

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

type DeliveryService interface {
	ClaimablePool(ctx context.Context) ([]entities.Order, error)
	ListByPartner(ctx context.Context, partnerID string) ([]entities.Delivery, error)
}

type EarningsService interface {
	Summary(ctx context.Context, partnerID string, window entities.EarningsWindowType) (*entities.EarningsSummary, error)
}
