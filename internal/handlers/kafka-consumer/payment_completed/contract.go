//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=payment_completed_test
package payment_completed

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

type Service interface {
	MarkPaid(ctx context.Context, orderID string, finalAmount int64) (*entities.Order, error)
}

// Dedup отсеивает повторные доставки события по его event_ID.
// Seen — чтение без записи, Mark ставит пометку после успешной обработки.
type Dedup interface {
	Seen(ctx context.Context, scope, id string) (bool, error)
	Mark(ctx context.Context, scope, id string) error
}
