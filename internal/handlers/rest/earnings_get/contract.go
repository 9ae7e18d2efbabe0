//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=earnings_get_test
package earnings_get

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
	Summary(ctx context.Context, partnerID string, window entities.EarningsWindowType) (*entities.EarningsSummary, error)
}
