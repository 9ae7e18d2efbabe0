//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=partner_test
package partner

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/internal/pkg/notify"
)

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
